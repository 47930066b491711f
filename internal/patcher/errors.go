package patcher

import "fmt"

// NoMatchError reports that a hunk's context could not be located in the
// target file at the configured fuzziness. Recoverable: the caller decides
// whether to skip the hunk, abort the file, or hard-fail.
type NoMatchError struct {
	File      string
	HunkIndex int // 0-based
	HunkCount int
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("%s: hunk %d/%d: could not find matching context",
		e.File, e.HunkIndex+1, e.HunkCount)
}

// AmbiguousMatchError reports multiple near-top-score candidate locations
// for one hunk. Not an error by itself; surfaced as one in modes that
// demand a deterministic outcome.
type AmbiguousMatchError struct {
	File      string
	HunkIndex int // 0-based
	Matches   []HunkMatch
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("%s: hunk %d matches at %d locations",
		e.File, e.HunkIndex+1, len(e.Matches))
}
