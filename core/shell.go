package core

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/histsh/core/config"
	"github.com/josephlewis42/histsh/core/history"
	"github.com/josephlewis42/histsh/core/logger"
	"github.com/josephlewis42/histsh/core/tokenizer"
)

// Exit statuses of the shell.
const (
	StatusOK           = 0
	StatusSpawnFailure = 1
	StatusReadFailure  = 255
)

// ErrReadFailure is returned when input can't be read.
var ErrReadFailure = errors.New("unable to read command")

var promptColor = color.New(color.FgBlue, color.Bold)

// LineReader reads input lines after displaying a prompt.
// *readline.Instance implements it; an interrupted read returns
// readline.ErrInterrupt.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// Shell is an interactive command interpreter with bounded history recall.
type Shell struct {
	Config  *config.Configuration
	Input   LineReader
	Stdout  io.Writer
	Stderr  io.Writer
	OS      OS
	History *history.Store

	Processes *Supervisor
	Events    *logger.SessionLogger
	// Diagnostics receives internal errors such as event log failures. They
	// aren't part of the shell's output and are discarded by default.
	Diagnostics *log.Logger

	// Set to true to quit the shell
	Quit   bool
	status int
}

// NewShell creates a shell reading from input and running programs with the
// given standard streams.
func NewShell(cfg *config.Configuration, input LineReader, stdin io.Reader, stdout, stderr io.Writer) *Shell {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Shell{
		Config:  cfg,
		Input:   input,
		Stdout:  stdout,
		Stderr:  stderr,
		OS:      HostOS{},
		History: history.NewStore(cfg.HistoryDepth),
		Processes: &Supervisor{
			Stdin:  stdin,
			Stdout: stdout,
			Stderr: stderr,
			Reap:   cfg.ReapBackground,
		},
		Events:      logger.NewNopLogger().Sessionless(),
		Diagnostics: log.New(io.Discard, "", 0),
	}
}

// NewReadline creates the terminal line reader used by interactive shells.
func NewReadline(stdin io.ReadCloser, stdout, stderr io.Writer) (*readline.Instance, error) {
	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(stdin),
		Stdout: stdout,
		Stderr: stderr,
		// Only write the newline on ^C, the shell prints the rest.
		InterruptPrompt: "\n",
		// Recall is handled by the shell's own history.
		HistoryLimit: -1,
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}

func (s *Shell) prompt() string {
	wd, err := s.OS.Getwd()
	if err != nil {
		s.Diagnostics.Printf("getwd: %v", err)
	}
	if s.Config.ColorPrompt {
		wd = promptColor.Sprint(wd)
	}
	return wd + s.Config.PromptSuffix
}

// Run reads and executes lines until exit, end of input or a fatal error and
// returns the shell's exit status. Interrupts display the history.
func (s *Shell) Run() int {
	stop := s.handleInterrupts()
	defer stop()

	s.record(s.Events.SessionStart())
	status := s.runInteractive()
	s.record(s.Events.SessionEnd(status))
	return status
}

func (s *Shell) runInteractive() int {
	for !s.Quit {
		s.Input.SetPrompt(s.prompt())
		line, err := s.Input.Readline()

		switch {
		case err == io.EOF:
			return StatusOK // Input closed, quit.

		case errors.Is(err, readline.ErrInterrupt):
			// Interrupt discards the line; the reader already moved to a new one.
			s.displayHistory(false)

		case err != nil:
			fmt.Fprintln(s.Stderr, "Unable to read command. Terminating.")
			s.Diagnostics.Printf("%v: %v", ErrReadFailure, err)
			return StatusReadFailure

		default:
			s.RunLine(line)
		}
	}
	return s.status
}

// RunLine interprets a single input line. It reports whether the shell
// should stop and with which status.
func (s *Shell) RunLine(line string) (status int, quit bool) {
	switch {
	case len(line) == 0:
		return StatusOK, false // empty line
	case line[0] == ' ' || line[0] == '\t':
		return StatusOK, false // lines starting with whitespace are ignored
	}

	tokens, background := tokenizer.Tokenize(line)

	if directive, ok := history.ParseDirective(line); ok {
		text, err := history.Resolve(s.History, directive)
		if err != nil {
			fmt.Fprintln(s.Stdout, "SHELL: Unknown history command.")
			s.record(s.Events.UnknownHistory(directive.String(), err))
			return StatusOK, false
		}

		if s.Config.EchoRecalled {
			fmt.Fprintln(s.Stdout, text)
		}
		s.record(s.Events.HistoryRecall(directive.String(), text))
		tokens, background = tokenizer.Tokenize(text)
	}

	if len(tokens) == 0 {
		return StatusOK, false
	}

	s.dispatch(tokens, background)
	return s.status, s.Quit
}

// dispatch runs the tokens as a builtin or an external program and records
// the command.
func (s *Shell) dispatch(tokens []string, background bool) {
	if pos, builtin, ok := findBuiltin(tokens); ok {
		args := tokens[pos:]
		recorded, err := builtin.Main(s, args)
		if s.Quit {
			return
		}

		s.record(s.Events.Builtin(args[0], tokens, recorded, err))
		s.History.Append(recorded)
		return
	}

	_, err := s.Processes.Run(tokens, background)
	switch {
	case errors.Is(err, ErrSpawnFailure):
		s.record(s.Events.SpawnFailure(tokens, err))
		s.Quit = true
		s.status = StatusSpawnFailure
		return
	case errors.Is(err, ErrExecFailure):
		s.record(s.Events.UnknownCommand(tokens, err))
	default:
		s.record(s.Events.RunCommand(tokens, background))
	}

	s.History.Append(tokenizer.Join(tokens, background))
}

// record reports event logging failures without interrupting the user.
func (s *Shell) record(err error) {
	if err != nil {
		s.Diagnostics.Printf("event log: %v", err)
	}
}
