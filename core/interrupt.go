package core

import (
	"os"
	"os/signal"
)

var newline = []byte{'\n'}

// handleInterrupts displays the history whenever the process receives an
// interrupt until stop is called. The shell keeps running.
func (s *Shell) handleInterrupts() (stop func()) {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt)

	go func() {
		for {
			select {
			case <-sigs:
				s.displayHistory(true)
				if r, ok := s.Input.(interface{ Refresh() }); ok {
					r.Refresh()
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// displayHistory writes the history as published by the last append. It
// doesn't touch the store so it can run while the shell is mid-command.
func (s *Shell) displayHistory(leadingNewline bool) {
	if leadingNewline {
		s.Stdout.Write(newline)
	}
	s.Stdout.Write(s.History.Rendered())
	s.record(s.Events.Interrupt())
}
