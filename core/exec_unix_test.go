//go:build unix

package core

import (
	"bytes"
	"fmt"
	"os/exec"
	"testing"

	"github.com/josephlewis42/histsh/core/coretest"
	"github.com/josephlewis42/histsh/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// failFork simulates the OS refusing to create a process.
func failFork(cmd *exec.Cmd) error {
	return &exec.Error{Name: cmd.Path, Err: fmt.Errorf("fork/exec %s: %w", cmd.Path, unix.EAGAIN)}
}

func TestIsSpawnFailure(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"eagain":    {fmt.Errorf("fork/exec /bin/ls: %w", unix.EAGAIN), true},
		"enomem":    {fmt.Errorf("fork/exec /bin/ls: %w", unix.ENOMEM), true},
		"not-found": {exec.ErrNotFound, false},
		"enoent":    {fmt.Errorf("fork/exec /bin/nope: %w", unix.ENOENT), false},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.want, isSpawnFailure(tc.err))
		})
	}
}

func TestSupervisor_SpawnFailure(t *testing.T) {
	out := &bytes.Buffer{}
	p := &Supervisor{Stdout: out, Stderr: out, start: failFork}

	outcome, err := p.Run([]string{"ls", "-l"}, false)

	assert.ErrorIs(t, err, ErrSpawnFailure)
	assert.Equal(t, OutcomeSpawnFailed, outcome)
	assert.Equal(t, "Fork failed\n", out.String())
}

func TestShell_SpawnFailureIsFatal(t *testing.T) {
	s, reader, out := newTestShell(t, coretest.Lines("pwd", "ls -l", "pwd", "exit"))
	s.Processes.start = failFork

	buf := &bytes.Buffer{}
	s.Events = logger.NewJsonLinesLogRecorder(buf).NewSession("fork")

	status := s.Run()

	assert.Equal(t, StatusSpawnFailure, status)
	assert.Equal(t, "/> pwd\n/\n/> ls -l\nFork failed\n", out.String())
	assert.Equal(t, uint64(1), s.History.Count(), "the failed line isn't recorded")
	assert.Equal(t, 2, reader.Remaining(), "no further lines are read")

	var types []logger.EventType
	require.NoError(t, logger.ReadJSONLinesLog(buf, func(le *logger.LogEntry) {
		types = append(types, le.Type)
	}))
	assert.Equal(t, []logger.EventType{
		logger.EventSessionStart,
		logger.EventBuiltin,
		logger.EventSpawnFailure,
		logger.EventSessionEnd,
	}, types)
}
