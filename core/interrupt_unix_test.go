//go:build unix

package core

import (
	"bytes"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type refreshCounter struct {
	LineReader
	mu        sync.Mutex
	refreshes int
}

func (r *refreshCounter) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshes++
}

func (r *refreshCounter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshes
}

func TestHandleInterrupts(t *testing.T) {
	s, reader, _ := newTestShell(t, nil)
	s.RunLine("pwd")

	out := &syncBuffer{}
	s.Stdout = out
	input := &refreshCounter{LineReader: reader}
	s.Input = input

	stop := s.handleInterrupts()
	defer stop()

	require.NoError(t, unix.Kill(os.Getpid(), unix.SIGINT))

	assert.Eventually(t, func() bool {
		return out.String() == "\n1\tpwd\n" && input.count() == 1
	}, 5*time.Second, 10*time.Millisecond)
}
