// Package history holds the shell's bounded command history and resolves
// recall directives against it.
package history

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
)

// DefaultCapacity is the number of entries the shell keeps.
const DefaultCapacity = 10

// ErrMalformedEntry is returned when parsing a rendered entry fails.
var ErrMalformedEntry = errors.New("malformed history entry")

// Entry is a single recorded command.
type Entry struct {
	// Sequence is assigned when the entry is recorded and never changes.
	Sequence uint64
	Text     string
}

// String renders the entry as "<sequence>\t<text>".
func (e Entry) String() string {
	return fmt.Sprintf("%d\t%s", e.Sequence, e.Text)
}

// ParseEntry is the inverse of Entry.String.
func ParseEntry(rendered string) (Entry, error) {
	seq, text, ok := strings.Cut(rendered, "\t")
	if !ok {
		return Entry{}, fmt.Errorf("%w: no separator in %q", ErrMalformedEntry, rendered)
	}
	n, err := strconv.ParseUint(seq, 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}
	return Entry{Sequence: n, Text: text}, nil
}

// Store is a fixed capacity ring of the most recent entries.
//
// Store has a single writer. Rendered may be called from any goroutine.
type Store struct {
	ring  []Entry
	head  int // position of the oldest entry in ring
	size  int
	next  uint64
	views atomic.Pointer[[]byte]
}

// NewStore creates an empty store holding at most capacity entries.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{
		ring: make([]Entry, capacity),
		next: 1,
	}
	s.publish()
	return s
}

// Capacity returns the maximum number of stored entries.
func (s *Store) Capacity() int {
	return len(s.ring)
}

// Len returns the number of entries currently stored.
func (s *Store) Len() int {
	return s.size
}

// Count returns how many entries were ever appended, including evicted ones.
func (s *Store) Count() uint64 {
	return s.next - 1
}

// Append records text and returns its sequence number. Empty text is ignored.
func (s *Store) Append(text string) (uint64, bool) {
	if text == "" {
		return 0, false
	}

	seq := s.next
	s.next++

	entry := Entry{Sequence: seq, Text: text}
	if s.size < len(s.ring) {
		s.ring[(s.head+s.size)%len(s.ring)] = entry
		s.size++
	} else {
		// Full: overwrite the oldest and advance.
		s.ring[s.head] = entry
		s.head = (s.head + 1) % len(s.ring)
	}

	s.publish()
	return seq, true
}

// At returns the entry at pos, where 0 is the oldest stored entry.
func (s *Store) At(pos int) (Entry, bool) {
	if pos < 0 || pos >= s.size {
		return Entry{}, false
	}
	return s.ring[(s.head+pos)%len(s.ring)], true
}

// Snapshot returns the stored entries oldest first.
func (s *Store) Snapshot() []Entry {
	out := make([]Entry, 0, s.size)
	for i := 0; i < s.size; i++ {
		e, _ := s.At(i)
		out = append(out, e)
	}
	return out
}

// Rendered returns the snapshot formatted one entry per line as it was after
// the last append. The returned slice must not be modified.
func (s *Store) Rendered() []byte {
	if p := s.views.Load(); p != nil {
		return *p
	}
	return nil
}

// WriteTo writes the rendered snapshot to w.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Rendered())
	return int64(n), err
}

func (s *Store) publish() {
	var buf bytes.Buffer
	for _, e := range s.Snapshot() {
		buf.WriteString(e.String())
		buf.WriteByte('\n')
	}
	rendered := buf.Bytes()
	s.views.Store(&rendered)
}
