package parser

import "strings"

// sourceLine carries a sanitized line together with its 1-based line number
// in the original input, so parse errors can point at the raw text.
type sourceLine struct {
	num  int
	text string
}

// gitMetadataPrefixes are non-hunk lines emitted by git that carry no line
// content. They survive sanitization and are skipped by the parser.
var gitMetadataPrefixes = []string{
	"index ",
	"new file mode ",
	"deleted file mode ",
	"similarity index ",
	"rename from ",
	"rename to ",
	"Binary files ",
	`\ No newline at end of file`,
}

func isGitMetadata(line string) bool {
	for _, p := range gitMetadataPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// isBareSeparator matches header markers with no path payload, most often
// markdown horizontal rules between chat commentary and the diff itself.
func isBareSeparator(line string) bool {
	switch strings.TrimRight(line, " \t") {
	case "---", "+++":
		return true
	}
	return false
}

func isStructural(line string) bool {
	return strings.HasPrefix(line, "---") ||
		strings.HasPrefix(line, "+++") ||
		strings.HasPrefix(line, "@@") ||
		strings.HasPrefix(line, "diff --git ")
}

func isFenceOpener(line string) bool {
	switch line {
	case "```diff", "```patch", "```":
		return true
	}
	return false
}

// stripFences removes LLM chat wrapping: everything up to and including a
// markdown fence opener, and everything from the closing bare fence (found
// scanning from the end) onward. Input without fences passes through.
func stripFences(lines []sourceLine) []sourceLine {
	open := -1
	for i, ln := range lines {
		if isFenceOpener(strings.TrimRight(ln.text, "\r")) {
			open = i
			break
		}
	}
	if open < 0 {
		return lines
	}
	for end := len(lines) - 1; end > open; end-- {
		if strings.TrimRight(lines[end].text, "\r") == "```" {
			return lines[open+1 : end]
		}
	}
	return lines[open+1:]
}

// sanitize turns raw, possibly LLM-mangled text into a clean line stream:
// fences stripped, commentary outside diff structure dropped, and hunk lines
// that lost their leading space marker repaired with a synthetic one.
func sanitize(text string) []sourceLine {
	raw := strings.Split(text, "\n")
	lines := make([]sourceLine, len(raw))
	for i, t := range raw {
		lines[i] = sourceLine{num: i + 1, text: strings.TrimRight(t, "\r")}
	}
	lines = stripFences(lines)

	var kept []sourceLine
	seenStructural := false
	inHunk := false
	for _, ln := range lines {
		if isBareSeparator(ln.text) {
			continue
		}
		if isStructural(ln.text) {
			seenStructural = true
			inHunk = strings.HasPrefix(ln.text, "@@")
			kept = append(kept, ln)
			continue
		}
		if !seenStructural {
			continue
		}
		if isGitMetadata(ln.text) {
			kept = append(kept, ln)
			continue
		}
		if len(ln.text) == 0 {
			continue
		}
		switch ln.text[0] {
		case '+', '-', ' ':
			kept = append(kept, ln)
		default:
			if inHunk {
				// Copy-paste diffs often lose the space marker on
				// context lines; restore it.
				kept = append(kept, sourceLine{num: ln.num, text: " " + ln.text})
			}
		}
	}
	return kept
}
