package patcher

import (
	"strings"
	"unicode"
)

// NormalizeLine converts a raw source line into the canonical token stream
// used by every fuzzy comparison: whitespace runs are deleted, runs of
// alphanumeric-or-underscore characters become one token, every other
// character becomes its own token, and tokens are joined with single
// spaces. Two lines that differ only in indentation or inter-token spacing
// normalize identically; a blank line normalizes to the empty string.
func NormalizeLine(line string) string {
	var tokens []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}
	for _, r := range line {
		switch {
		case unicode.IsSpace(r):
			flush()
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			word.WriteRune(r)
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()
	return strings.Join(tokens, " ")
}

// leadingWhitespace returns the run of spaces and tabs at the start of the
// line. Matching indentation is a structural signal independent of content.
func leadingWhitespace(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}
