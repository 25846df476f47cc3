package core

import (
	"errors"
	"fmt"
	"strings"
)

// NotImplementedBuiltin is a reserved command name that always reports it
// wasn't found.
const NotImplementedBuiltin = "type"

// ErrInvalidDirectory is returned when cd can't enter its target.
var ErrInvalidDirectory = errors.New("invalid directory")

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

// ShellBuiltin is a command run inside the shell process.
type ShellBuiltin interface {
	// Main runs the builtin. args[0] is the builtin's name followed by the
	// tokens after it. The returned text is recorded in the history; empty
	// text records nothing. Errors have already been reported to the user.
	Main(s *Shell, args []string) (recorded string, err error)
}

type ShellBuiltinFunc func(s *Shell, args []string) (string, error)

func (f ShellBuiltinFunc) Main(s *Shell, args []string) (string, error) {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// findBuiltin returns the position and implementation of the first builtin
// named in tokens.
func findBuiltin(tokens []string) (int, ShellBuiltin, bool) {
	for i, tok := range tokens {
		if builtin, ok := AllBuiltins[tok]; ok {
			return i, builtin, true
		}
	}
	return -1, nil, false
}

// Exit quits the shell
func Exit(s *Shell, args []string) (string, error) {
	s.Quit = true
	s.status = StatusOK
	return "", nil
}

// Pwd prints the working directory.
func Pwd(s *Shell, args []string) (string, error) {
	wd, err := s.OS.Getwd()
	if err != nil {
		fmt.Fprintf(s.Stderr, "%s: %v\n", args[0], err)
	} else {
		fmt.Fprintln(s.Stdout, wd)
	}
	return "pwd", err
}

// Cd is the cd shell builtin. The attempt is recorded even if it fails.
func Cd(s *Shell, args []string) (string, error) {
	var target string
	if len(args) > 1 {
		target = args[1]
	}

	err := s.chdir(target)
	if err != nil {
		fmt.Fprintln(s.Stdout, "Invalid directory.")
	}

	var record strings.Builder
	record.WriteString("cd ")
	for _, arg := range args[1:] {
		record.WriteString(arg)
		record.WriteString(" ")
	}
	return record.String(), err
}

func (s *Shell) chdir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: no directory given", ErrInvalidDirectory)
	}
	if err := s.OS.Chdir(dir); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
	}
	return nil
}

// History prints the stored history, oldest first.
func History(s *Shell, args []string) (string, error) {
	_, err := s.History.WriteTo(s.Stdout)
	return "history", err
}

// NotImplemented handles reserved command names.
func NotImplemented(s *Shell, args []string) (string, error) {
	fmt.Fprintln(s.Stdout, "Command not found")
	return args[0], nil
}

func init() {
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["pwd"] = ShellBuiltinFunc(Pwd)
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
	AllBuiltins["history"] = ShellBuiltinFunc(History)
	AllBuiltins[NotImplementedBuiltin] = ShellBuiltinFunc(NotImplemented)
}
