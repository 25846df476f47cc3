//go:build unix

package core

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isSpawnFailure reports whether a start error came from creating the
// process rather than from loading the program.
func isSpawnFailure(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.ENOMEM)
}
