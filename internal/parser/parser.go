// Package parser turns raw unified-diff text, including diffs mangled by
// LLM output (markdown fences, commentary, lost line markers), into a
// structured diff.Patch.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kvit-s/mend/internal/diff"
)

// ParseError reports a malformed hunk header. No partial patch is returned
// alongside one.
type ParseError struct {
	LineNum int    // 1-based line number in the original input
	Line    string // raw line text
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.LineNum, e.Message, e.Line)
}

// hunkHeaderRe matches "@@ -O,L +O2,L2 @@"; the ,L counts are optional and
// default to 1.
var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))?\s*@@`)

// Parse converts raw diff text into a Patch. It is deliberately lenient:
// markdown fences and commentary are stripped, missing "diff --git" and
// "---"/"+++" headers are tolerated, and context lines that lost their
// leading space are repaired. The only fatal condition is a hunk header
// whose numbers cannot be parsed.
func Parse(text string) (*diff.Patch, error) {
	patch := &diff.Patch{}

	var current *diff.FileDiff
	var hunk *diff.Hunk
	sawOldHeader := false

	flush := func() {
		if current == nil {
			return
		}
		if len(current.Hunks) > 0 {
			// A section that declared an old file but never a new one
			// describes a deletion.
			if sawOldHeader && current.NewFile == "" {
				current.NewFile = diff.DevNull
			}
			patch.Diffs = append(patch.Diffs, current)
		}
		current = nil
		hunk = nil
		sawOldHeader = false
	}

	for _, ln := range sanitize(text) {
		line := ln.text
		switch {
		case strings.HasPrefix(line, "diff --git "):
			flush()
			current = &diff.FileDiff{}

		case strings.HasPrefix(line, "--- "):
			if current == nil || len(current.Hunks) > 0 {
				flush()
				current = &diff.FileDiff{}
			}
			current.OldFile = headerPath(line[4:])
			sawOldHeader = true
			hunk = nil

		case strings.HasPrefix(line, "+++ "):
			if current == nil {
				current = &diff.FileDiff{}
			}
			current.NewFile = headerPath(line[4:])
			if current.OldFile == "" && !sawOldHeader {
				current.OldFile = diff.DevNull
			}
			hunk = nil

		case strings.HasPrefix(line, "@@"):
			h, err := parseHunkHeader(line)
			if err != nil {
				return nil, &ParseError{LineNum: ln.num, Line: line, Message: err.Error()}
			}
			if current == nil {
				current = &diff.FileDiff{}
			}
			hunk = h
			current.Hunks = append(current.Hunks, hunk)

		case isGitMetadata(line):
			// no line content, skip

		default:
			if hunk == nil {
				if len(line) == 0 {
					continue
				}
				switch line[0] {
				case '+', '-', ' ':
					// Header-less diff: open an implicit empty-path
					// file and hunk so the lines have a home.
					if current == nil {
						current = &diff.FileDiff{}
					}
					hunk = &diff.Hunk{}
					current.Hunks = append(current.Hunks, hunk)
				default:
					continue
				}
			}
			hunk.Lines = append(hunk.Lines, classifyLine(line))
		}
	}
	flush()

	return patch, nil
}

func classifyLine(line string) diff.Line {
	switch line[0] {
	case '+':
		return diff.Addition(line[1:])
	case '-':
		return diff.Removal(line[1:])
	case ' ':
		return diff.Context(line[1:])
	default:
		// Sanitization should have repaired the marker; record the line
		// verbatim as context rather than lose it.
		return diff.Context(line)
	}
}

func parseHunkHeader(line string) (*diff.Hunk, error) {
	m := hunkHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("malformed hunk header")
	}
	nums := [4]int{0, 1, 0, 1}
	for i, group := range m[1:] {
		if group == "" {
			continue
		}
		n, err := strconv.Atoi(group)
		if err != nil {
			return nil, fmt.Errorf("invalid number in hunk header: %q", group)
		}
		nums[i] = n
	}
	return &diff.Hunk{
		OldStart: nums[0],
		OldLines: nums[1],
		NewStart: nums[2],
		NewLines: nums[3],
	}, nil
}

// headerPath extracts the file path from the remainder of a "---" or "+++"
// header line. Git prefixes (a/, b/) are stripped, trailing tab metadata is
// dropped, and every spelling of /dev/null collapses to one sentinel.
func headerPath(rest string) string {
	rest = strings.TrimSpace(rest)
	if i := strings.IndexByte(rest, '\t'); i >= 0 {
		rest = strings.TrimSpace(rest[:i])
	}
	if fields := strings.Fields(rest); len(fields) > 0 {
		rest = fields[0]
	}
	switch rest {
	case diff.DevNull, "a/dev/null", "b/dev/null":
		return diff.DevNull
	}
	if strings.HasPrefix(rest, "a/") || strings.HasPrefix(rest, "b/") {
		rest = rest[2:]
	}
	return rest
}
