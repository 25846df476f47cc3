package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_empty(t *testing.T) {
	s := NewStore(DefaultCapacity)

	for _, d := range []Directive{LastDirective(), NumberedDirective(0), NumberedDirective(1)} {
		_, err := Resolve(s, d)
		assert.ErrorIs(t, err, ErrUnknownHistoryCommand, d.String())
	}
}

func TestResolve_last(t *testing.T) {
	s := NewStore(DefaultCapacity)
	for i := 1; i <= 25; i++ {
		line := fmt.Sprintf("cmd%d", i)
		s.Append(line)

		got, err := Resolve(s, LastDirective())
		assert.Nil(t, err)
		assert.Equal(t, line, got)
	}
}

func TestResolve_numbered(t *testing.T) {
	for _, total := range []int{1, 5, 10, 11, 23} {
		t.Run(fmt.Sprint(total), func(t *testing.T) {
			s := NewStore(DefaultCapacity)
			appendN(s, total)

			effective := total
			if effective > DefaultCapacity {
				effective = DefaultCapacity
			}

			for n := 0; n <= total+2; n++ {
				got, err := Resolve(s, NumberedDirective(uint64(n)))

				if n == 0 || n > total || total-n >= effective {
					assert.ErrorIs(t, err, ErrUnknownHistoryCommand, "!%d", n)
					continue
				}
				assert.Nil(t, err, "!%d", n)
				assert.Equal(t, fmt.Sprintf("cmd%d", n), got)
			}
		})
	}
}

func TestResolve_afterEviction(t *testing.T) {
	s := NewStore(DefaultCapacity)
	appendN(s, 11)

	_, err := Resolve(s, NumberedDirective(1))
	assert.ErrorIs(t, err, ErrUnknownHistoryCommand)

	got, err := Resolve(s, NumberedDirective(2))
	assert.Nil(t, err)
	assert.Equal(t, "cmd2", got)

	got, err = Resolve(s, NumberedDirective(11))
	assert.Nil(t, err)
	assert.Equal(t, "cmd11", got)
}

func TestParseDirective(t *testing.T) {
	cases := map[string]struct {
		line      string
		directive Directive
		ok        bool
	}{
		"not-directive":   {line: "ls", ok: false},
		"empty":           {line: "", ok: false},
		"last":            {line: "!!", directive: LastDirective(), ok: true},
		"last-suffix":     {line: "!!ignored", directive: LastDirective(), ok: true},
		"numbered":        {line: "!7", directive: NumberedDirective(7), ok: true},
		"numbered-suffix": {line: "!12abc", directive: NumberedDirective(12), ok: true},
		"leading-space":   {line: "! 3", directive: NumberedDirective(3), ok: true},
		"bare":            {line: "!", directive: NumberedDirective(0), ok: true},
		"zero":            {line: "!0", directive: NumberedDirective(0), ok: true},
		"non-numeric":     {line: "!ls", directive: NumberedDirective(0), ok: true},
		"negative":        {line: "!-2", directive: NumberedDirective(0), ok: true},
		"overflow":        {line: "!99999999999999999999999", directive: NumberedDirective(0), ok: true},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			d, ok := ParseDirective(tc.line)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.directive, d)
			}
		})
	}
}
