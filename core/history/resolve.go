package history

import (
	"errors"
	"fmt"
)

// ErrUnknownHistoryCommand is returned when a directive names an entry that
// was never recorded or has been evicted.
var ErrUnknownHistoryCommand = errors.New("unknown history command")

// DirectivePrefix starts every recall directive.
const DirectivePrefix = '!'

// Directive selects an entry to recall.
type Directive struct {
	// Last is set for "!!".
	Last bool
	// Number is the requested sequence number for "!N".
	Number uint64
}

// LastDirective recalls the most recent entry.
func LastDirective() Directive {
	return Directive{Last: true}
}

// NumberedDirective recalls the entry with sequence number n.
func NumberedDirective(n uint64) Directive {
	return Directive{Number: n}
}

func (d Directive) String() string {
	if d.Last {
		return "!!"
	}
	return fmt.Sprintf("!%d", d.Number)
}

// ParseDirective reports whether line is a recall directive and parses it.
//
// "!!" followed by anything recalls the last entry. Otherwise the number
// after "!" is read like C's atoi; anything that doesn't produce a positive
// number becomes directive 0, which never resolves.
func ParseDirective(line string) (Directive, bool) {
	if len(line) == 0 || line[0] != DirectivePrefix {
		return Directive{}, false
	}
	if len(line) > 1 && line[1] == DirectivePrefix {
		return LastDirective(), true
	}
	return NumberedDirective(atou(line[1:])), true
}

// atou parses leading whitespace, an optional sign and leading digits.
// Negative values and overflow yield 0.
func atou(s string) uint64 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	negative := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		negative = s[i] == '-'
		i++
	}

	var n uint64
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := uint64(s[i] - '0')
		if n > (^uint64(0)-d)/10 {
			return 0
		}
		n = n*10 + d
	}
	if negative {
		return 0
	}
	return n
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Resolve returns the text of the entry selected by d.
func Resolve(s *Store, d Directive) (string, error) {
	total := s.Count()
	if total == 0 {
		return "", ErrUnknownHistoryCommand
	}

	requested := total
	if !d.Last {
		requested = d.Number
		if requested == 0 || requested > total {
			return "", fmt.Errorf("%w: %s", ErrUnknownHistoryCommand, d)
		}
	}

	effective := uint64(s.Len())
	pos := effective - 1
	if requested != total {
		age := total - requested
		if age > effective-1 {
			return "", fmt.Errorf("%w: %s was evicted", ErrUnknownHistoryCommand, d)
		}
		pos = effective - age - 1
	}

	entry, ok := s.At(int(pos))
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownHistoryCommand, d)
	}
	return entry.Text, nil
}
