package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/histsh/core"
	"github.com/josephlewis42/histsh/core/config"
	"github.com/josephlewis42/histsh/core/logger"
	"github.com/spf13/cobra"
)

var (
	cfgPath    string
	debug      bool
	exitStatus int
)

func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "histsh",
	Short: "A small interactive shell with history recall",
	Long: `An interactive shell with the builtins exit, pwd, cd and history.

The last commands are kept in memory and can be run again with !! (the most
recent) or !N (command number N). Interrupting the shell with ^C prints the
history.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		events := logger.NewNopLogger()
		switch fd, err := configuration.OpenEventLog(); {
		case errors.Is(err, config.ErrEventLogDisabled):
			// Nothing to record.
		case err != nil:
			return err
		default:
			defer fd.Close()
			events = logger.NewJsonLinesLogRecorder(fd)
		}

		input, err := core.NewReadline(os.Stdin, cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer input.Close()

		shell := core.NewShell(configuration, input, os.Stdin, cmd.OutOrStdout(), cmd.ErrOrStderr())
		shell.Events = events.NewSession("")
		if debug {
			shell.Diagnostics = log.New(cmd.ErrOrStderr(), "[histsh] ", 0)
		}

		exitStatus = shell.Run()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitStatus)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config path, the built-in defaults are used if empty")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "print internal errors such as event log failures to stderr")
}
