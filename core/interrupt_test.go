package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayHistory(t *testing.T) {
	s, _, out := newTestShell(t, nil)
	s.RunLine("pwd")
	s.RunLine("history")
	out.Reset()

	s.displayHistory(true)
	assert.Equal(t, "\n1\tpwd\n2\thistory\n", out.String())

	out.Reset()
	s.displayHistory(false)
	assert.Equal(t, "1\tpwd\n2\thistory\n", out.String())
}

func TestDisplayHistory_Empty(t *testing.T) {
	s, _, out := newTestShell(t, nil)

	s.displayHistory(true)

	assert.Equal(t, "\n", out.String())
	assert.Equal(t, uint64(0), s.History.Count())
}

func TestDisplayHistory_DoesNotRecord(t *testing.T) {
	s, _, _ := newTestShell(t, nil)
	s.Stdout = &bytes.Buffer{}
	s.RunLine("pwd")

	s.displayHistory(true)

	assert.Equal(t, uint64(1), s.History.Count())
}
