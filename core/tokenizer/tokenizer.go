// Package tokenizer splits shell input lines into words.
package tokenizer

import "strings"

// BackgroundMarker is the final token that requests background execution.
const BackgroundMarker = "&"

func isDelimiter(r rune) bool {
	switch r {
	case ' ', '\t', '\n':
		return true
	default:
		return false
	}
}

// Split breaks line into non-empty words separated by spaces, tabs or
// newlines.
func Split(line string) []string {
	return strings.FieldsFunc(line, isDelimiter)
}

// Tokenize splits line into words and strips a single trailing "&" token,
// reporting it as a background request.
func Tokenize(line string) (tokens []string, background bool) {
	tokens = Split(line)
	if n := len(tokens); n > 0 && tokens[n-1] == BackgroundMarker {
		return tokens[:n-1], true
	}
	return tokens, false
}

// Join rebuilds a command line from its tokens, re-adding the background
// marker if requested.
func Join(tokens []string, background bool) string {
	line := strings.Join(tokens, " ")
	if background {
		line += " " + BackgroundMarker
	}
	return line
}
