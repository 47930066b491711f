// Package diff defines the structured representation of a unified diff:
// lines, hunks, per-file diffs, and the patch that groups them. The parser
// produces these values and the patcher consumes them read-only.
package diff

// DevNull is the sentinel path signalling whole-file creation (as OldFile)
// or deletion (as NewFile).
const DevNull = "/dev/null"

// LineKind classifies a hunk line by its diff marker.
type LineKind int

const (
	// LineContext is an unchanged line present in both versions.
	LineContext LineKind = iota
	// LineAddition is a line added by the patch.
	LineAddition
	// LineRemoval is a line removed by the patch.
	LineRemoval
)

// Line is a single hunk line with its one-character marker stripped.
type Line struct {
	Kind LineKind
	Text string
}

// Context creates a context line.
func Context(text string) Line { return Line{Kind: LineContext, Text: text} }

// Addition creates an addition line.
func Addition(text string) Line { return Line{Kind: LineAddition, Text: text} }

// Removal creates a removal line.
func Removal(text string) Line { return Line{Kind: LineRemoval, Text: text} }

// IsAnchor reports whether the line carries positional evidence for
// matching. Context and removal lines exist in the original file; addition
// lines do not.
func (l Line) IsAnchor() bool { return l.Kind != LineAddition }

// Invert flips the line for a reverse patch: additions become removals and
// vice versa, context lines are unchanged.
func (l Line) Invert() Line {
	switch l.Kind {
	case LineAddition:
		return Line{Kind: LineRemoval, Text: l.Text}
	case LineRemoval:
		return Line{Kind: LineAddition, Text: l.Text}
	default:
		return l
	}
}

// Hunk is one contiguous block of changes. The header numbers record what
// the diff claimed about the original file; the matcher uses them only as a
// proximity hint, never as ground truth.
type Hunk struct {
	OldStart int // 1-based start line in the old file
	OldLines int
	NewStart int // 1-based start line in the new file
	NewLines int
	Lines    []Line
}

// AnchorLines returns the hunk's context and removal line texts in order.
// These are the only lines searched for in the target file.
func (h *Hunk) AnchorLines() []string {
	anchors := make([]string, 0, len(h.Lines))
	for _, l := range h.Lines {
		if l.IsAnchor() {
			anchors = append(anchors, l.Text)
		}
	}
	return anchors
}

// Counts returns the number of addition and removal lines in the hunk.
func (h *Hunk) Counts() (additions, removals int) {
	for _, l := range h.Lines {
		switch l.Kind {
		case LineAddition:
			additions++
		case LineRemoval:
			removals++
		}
	}
	return additions, removals
}

// Invert swaps the old/new header fields and flips every line.
func (h *Hunk) Invert() *Hunk {
	inv := &Hunk{
		OldStart: h.NewStart,
		OldLines: h.NewLines,
		NewStart: h.OldStart,
		NewLines: h.OldLines,
		Lines:    make([]Line, len(h.Lines)),
	}
	for i, l := range h.Lines {
		inv.Lines[i] = l.Invert()
	}
	return inv
}

// FileDiff groups the hunks targeting a single file.
type FileDiff struct {
	OldFile string
	NewFile string
	Hunks   []*Hunk
}

// IsCreation reports whether the diff creates the file from scratch.
func (fd *FileDiff) IsCreation() bool { return fd.OldFile == DevNull }

// IsDeletion reports whether the diff removes the whole file. A deletion
// diff carries no line-level semantics.
func (fd *FileDiff) IsDeletion() bool { return fd.NewFile == DevNull }

// TargetFile returns the on-disk path the diff should be applied to.
func (fd *FileDiff) TargetFile() string {
	if fd.IsDeletion() {
		return fd.OldFile
	}
	return fd.NewFile
}

// Invert swaps the file names and inverts every hunk, producing a
// structurally valid reverse patch for "revert" semantics.
func (fd *FileDiff) Invert() *FileDiff {
	inv := &FileDiff{
		OldFile: fd.NewFile,
		NewFile: fd.OldFile,
		Hunks:   make([]*Hunk, len(fd.Hunks)),
	}
	for i, h := range fd.Hunks {
		inv.Hunks[i] = h.Invert()
	}
	return inv
}

// Patch is an ordered list of file diffs, one per parse call.
type Patch struct {
	Diffs []*FileDiff
}

// Invert returns the reverse patch.
func (p *Patch) Invert() *Patch {
	inv := &Patch{Diffs: make([]*FileDiff, len(p.Diffs))}
	for i, fd := range p.Diffs {
		inv.Diffs[i] = fd.Invert()
	}
	return inv
}

// FilterByTarget returns a patch containing only the file diffs whose old
// or new path equals target. The receiver is not modified.
func (p *Patch) FilterByTarget(target string) *Patch {
	filtered := &Patch{}
	for _, fd := range p.Diffs {
		if fd.OldFile == target || fd.NewFile == target {
			filtered.Diffs = append(filtered.Diffs, fd)
		}
	}
	return filtered
}
