package patcher

import "github.com/kvit-s/mend/internal/diff"

// ApplyHunk builds a new line array with the hunk spliced over the matched
// span: everything before start unchanged, then the hunk's context and
// addition lines in order, then everything after the span. The matched
// lines are discarded unconditionally; the span boundaries chosen by the
// matcher are trusted exactly. The input slice is not modified.
func ApplyHunk(lines []string, h *diff.Hunk, start, matchedLength int) []string {
	if start > len(lines) {
		start = len(lines)
	}
	out := make([]string, 0, len(lines)-matchedLength+len(h.Lines))
	out = append(out, lines[:start]...)
	for _, l := range h.Lines {
		if l.Kind == diff.LineContext || l.Kind == diff.LineAddition {
			out = append(out, l.Text)
		}
	}
	if end := start + matchedLength; end < len(lines) {
		out = append(out, lines[end:]...)
	}
	return out
}
