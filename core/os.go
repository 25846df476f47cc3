package core

import (
	"os"
)

// OS provides the parts of the operating system the shell reads and changes
// directly. Child processes always run against the real OS.
type OS interface {
	// Getwd returns a rooted path name corresponding to the current directory.
	Getwd() (dir string, err error)

	// Chdir changes the directory.
	Chdir(dir string) error
}

// HostOS is the OS the shell process runs on.
type HostOS struct{}

var _ OS = HostOS{}

// Getwd implements OS.Getwd.
func (HostOS) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir implements OS.Chdir.
func (HostOS) Chdir(dir string) error {
	return os.Chdir(dir)
}
