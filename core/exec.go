package core

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

var (
	// ErrSpawnFailure is returned when the OS can't create a new process.
	ErrSpawnFailure = errors.New("spawn failure")

	// ErrExecFailure is returned when the program can't be found or run.
	ErrExecFailure = errors.New("exec failure")
)

// Outcome describes how an external command finished.
type Outcome int

const (
	// OutcomeExited means a foreground child ran and exited.
	OutcomeExited Outcome = iota
	// OutcomeBackground means the child was started and left running.
	OutcomeBackground
	// OutcomeUnknown means the program couldn't be executed.
	OutcomeUnknown
	// OutcomeSpawnFailed means no process could be created.
	OutcomeSpawnFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExited:
		return "exited"
	case OutcomeBackground:
		return "background"
	case OutcomeUnknown:
		return "unknown"
	case OutcomeSpawnFailed:
		return "spawn-failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Supervisor starts external programs for the shell.
type Supervisor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env is the environment of new processes, nil inherits the shell's.
	Env []string

	// Reap waits on background children so they don't linger as zombies.
	Reap bool

	// start launches the process, (*exec.Cmd).Start if nil.
	start      func(*exec.Cmd) error
	background sync.WaitGroup
}

// Run starts tokens[0] with tokens as its arguments. Foreground commands are
// waited on without a timeout; their exit status is discarded.
//
// Programs that can't be executed are reported on Stdout and return
// ErrExecFailure. If the OS can't create a process "Fork failed" is written
// and ErrSpawnFailure is returned; callers should terminate.
func (p *Supervisor) Run(tokens []string, background bool) (Outcome, error) {
	if len(tokens) == 0 {
		return OutcomeExited, nil
	}

	cmd := exec.Command(tokens[0], tokens[1:]...)
	cmd.Env = p.Env
	cmd.Stdin = p.Stdin
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr

	start := p.start
	if start == nil {
		start = (*exec.Cmd).Start
	}

	if err := start(cmd); err != nil {
		if isSpawnFailure(err) {
			fmt.Fprintln(p.Stdout, "Fork failed")
			return OutcomeSpawnFailed, fmt.Errorf("%w: %v", ErrSpawnFailure, err)
		}

		fmt.Fprintf(p.Stdout, "%s: Unknown command.\n", tokens[0])
		return OutcomeUnknown, fmt.Errorf("%w: %v", ErrExecFailure, err)
	}

	if background {
		if p.Reap {
			p.background.Add(1)
			go func() {
				defer p.background.Done()
				_ = cmd.Wait()
			}()
		}
		return OutcomeBackground, nil
	}

	_ = cmd.Wait()
	return OutcomeExited, nil
}

// WaitBackground blocks until every reaped background child has exited.
func (p *Supervisor) WaitBackground() {
	p.background.Wait()
}
