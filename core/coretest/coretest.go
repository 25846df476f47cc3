// Package coretest contains deterministic stand-ins for the terminal and the
// operating system so shell sessions can be replayed in tests.
package coretest

import (
	"errors"
	"io"
	"os"
	"path"
	"sync"

	"github.com/abiosoft/readline"
	"github.com/spf13/afero"
)

// Step is a single scripted read. If Err is set it's returned instead of Line.
type Step struct {
	Line string
	Err  error
}

// Interrupt is a read cut short by ^C.
var Interrupt = Step{Err: readline.ErrInterrupt}

// Lines creates steps that type each line.
func Lines(lines ...string) []Step {
	var out []Step
	for _, l := range lines {
		out = append(out, Step{Line: l})
	}
	return out
}

// ScriptReader replays steps like a user typing at a terminal. Prompts and
// typed lines are echoed to Transcript. After the last step it returns io.EOF.
type ScriptReader struct {
	Steps      []Step
	Transcript io.Writer

	mu     sync.Mutex
	prompt string
	pos    int
}

// SetPrompt implements core.LineReader.
func (r *ScriptReader) SetPrompt(prompt string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompt = prompt
}

// Readline implements core.LineReader.
func (r *ScriptReader) Readline() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.write(r.prompt)
	if r.pos >= len(r.Steps) {
		return "", io.EOF
	}

	step := r.Steps[r.pos]
	r.pos++
	if step.Err != nil {
		// The terminal moves to a fresh line when the user hits ^C.
		if errors.Is(step.Err, readline.ErrInterrupt) {
			r.write("\n")
		}
		return "", step.Err
	}

	r.write(step.Line + "\n")
	return step.Line, nil
}

// Remaining returns the number of steps not yet read.
func (r *ScriptReader) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Steps) - r.pos
}

func (r *ScriptReader) write(s string) {
	if r.Transcript != nil {
		io.WriteString(r.Transcript, s)
	}
}

var errNotDir = errors.New("not a directory")

// MemOS tracks a working directory over an in-memory filesystem.
type MemOS struct {
	Fs  afero.Fs
	cwd string
}

// NewMemOS creates an OS rooted at "/" containing the given directories.
func NewMemOS(dirs ...string) *MemOS {
	fs := afero.NewMemMapFs()
	for _, d := range dirs {
		if err := fs.MkdirAll(d, 0755); err != nil {
			panic(err)
		}
	}
	return &MemOS{Fs: fs, cwd: "/"}
}

// Getwd implements core.OS.
func (m *MemOS) Getwd() (string, error) {
	return m.cwd, nil
}

// Chdir implements core.OS.
func (m *MemOS) Chdir(dir string) error {
	if !path.IsAbs(dir) {
		dir = path.Join(m.cwd, dir)
	}
	dir = path.Clean(dir)

	info, err := m.Fs.Stat(dir)
	if err != nil {
		return &os.PathError{Op: "chdir", Path: dir, Err: os.ErrNotExist}
	}
	if !info.IsDir() {
		return &os.PathError{Op: "chdir", Path: dir, Err: errNotDir}
	}

	m.cwd = dir
	return nil
}
