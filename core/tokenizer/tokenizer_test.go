package tokenizer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleTokenize() {
	tokens, background := Tokenize("sleep 10 &")
	fmt.Printf("%q %v\n", tokens, background)

	// Output: ["sleep" "10"] true
}

func TestTokenize(t *testing.T) {
	cases := map[string]struct {
		line       string
		tokens     []string
		background bool
	}{
		"empty":            {line: "", tokens: []string{}},
		"whitespace":       {line: " \t\n ", tokens: []string{}},
		"mixed-delimiters": {line: "a  b\tc\n", tokens: []string{"a", "b", "c"}},
		"background":       {line: "a b &", tokens: []string{"a", "b"}, background: true},
		"only-marker":      {line: "&", tokens: []string{}, background: true},
		"glued-marker":     {line: "a b&", tokens: []string{"a", "b&"}},
		"marker-not-last":  {line: "a & b", tokens: []string{"a", "&", "b"}},
		"double-marker":    {line: "a & &", tokens: []string{"a", "&"}, background: true},
		"leading-space":    {line: "  ls -l", tokens: []string{"ls", "-l"}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			tokens, background := Tokenize(tc.line)

			assert.Equal(t, tc.background, background)
			assert.Len(t, tokens, len(tc.tokens))
			if len(tc.tokens) > 0 {
				assert.Equal(t, tc.tokens, tokens)
			}
			for _, tok := range tokens {
				assert.NotEmpty(t, tok)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "ls -l", Join([]string{"ls", "-l"}, false))
	assert.Equal(t, "sleep 1 &", Join([]string{"sleep", "1"}, true))
	assert.Equal(t, "", Join(nil, false))
}
