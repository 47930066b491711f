// Package patcher locates diff hunks in a possibly-drifted source file and
// applies them. Matching runs in three escalating tiers: strict byte
// equality, whitespace-insensitive comparison over normalized lines, and an
// anchor-point heuristic scored with a longest-common-subsequence measure.
package patcher

import (
	"sort"

	"github.com/kvit-s/mend/internal/diff"
)

// Tuning policy. These are empirically chosen constants, not derived
// values; tune them here rather than in the algorithm.
const (
	// DefaultThreshold is the conventional minimum accepted tier-2 score.
	DefaultThreshold = 0.7

	// whitespaceMatchScore is the fixed confidence of a tier-1 match.
	whitespaceMatchScore = 0.9

	// lcsWeight and densityWeight combine the two tier-2 signals.
	lcsWeight     = 0.7
	densityWeight = 0.3

	// proximityMaxBonus decays linearly to zero at proximityDecayDistance
	// lines from where the hunk header expected the match.
	proximityMaxBonus      = 0.05
	proximityDecayDistance = 50

	// indentBonus rewards a candidate whose first line shares the hunk's
	// original indentation.
	indentBonus = 0.05

	// dedupRetentionBand keeps only candidates within this fraction of the
	// top score after deduplication.
	dedupRetentionBand = 0.9

	// Adaptive tier-2 window sizing: base slack, extra slack per edited
	// line, and the hard cap on window size.
	windowSlackMin     = 10
	windowSlackPerEdit = 4
	maxWindowSize      = 400
)

// Options configures a Locate call.
type Options struct {
	// Fuzziness gates the tiers: 0 strict only, 1 adds the
	// whitespace-insensitive tier, 2 adds the anchor-point heuristic.
	Fuzziness int
	// Threshold is the minimum accepted tier-2 score. Zero means
	// DefaultThreshold.
	Threshold float64
	// MinLine is a lower bound on acceptable start indices, for callers
	// that scan forward through a single evolving buffer. The reverse-order
	// application flow always passes zero.
	MinLine int
}

func (o Options) threshold() float64 {
	if o.Threshold == 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

// HunkMatch is one candidate location for a hunk in the current file state.
type HunkMatch struct {
	StartIndex    int     // 0-based line index
	MatchedLength int     // original lines consumed by the span
	Score         float64 // 0.0-1.0 confidence
	Density       float64 // anchor count over span length
}

// Locate returns the ranked, deduplicated candidate locations for a hunk.
// An empty result means no match; more than one means the hunk is
// ambiguous and the caller must disambiguate.
func Locate(lines []string, srcMap CleanSourceMap, idxMap CleanIndexMap, h *diff.Hunk, opts Options) []HunkMatch {
	anchors := h.AnchorLines()

	// A pure insertion carries no positional evidence; it is always
	// "found" at the line the diff header recorded.
	if len(anchors) == 0 {
		start := h.OldStart
		if start < opts.MinLine {
			start = opts.MinLine
		}
		if start > len(lines) {
			start = len(lines)
		}
		return []HunkMatch{{StartIndex: start, MatchedLength: 0, Score: 1.0, Density: 1.0}}
	}

	// Tier 0: strict sliding window over the raw lines. This is the
	// trusted case and bypasses every heuristic.
	if m, ok := strictMatch(lines, anchors, opts.MinLine); ok {
		return []HunkMatch{m}
	}
	if opts.Fuzziness < 1 {
		return nil
	}

	cleanAnchors := make([]string, 0, len(anchors))
	for _, a := range anchors {
		if n := NormalizeLine(a); n != "" {
			cleanAnchors = append(cleanAnchors, n)
		}
	}
	if len(cleanAnchors) == 0 {
		return nil
	}

	// Tier 1: whitespace-insensitive window over the non-blank normalized
	// line sequence.
	if cands := whitespaceMatches(srcMap, cleanAnchors, opts.MinLine); len(cands) > 0 {
		applyProximityBonus(cands, h)
		return dedupe(cands)
	}
	if opts.Fuzziness < 2 {
		return nil
	}

	// Tier 2: anchor-point heuristic for hunks whose interior context
	// drifted but whose boundary lines are still recognizable.
	cands := anchorPointMatches(lines, srcMap, idxMap, h, anchors, cleanAnchors, opts)
	if len(cands) == 0 {
		return nil
	}
	applyProximityBonus(cands, h)
	return dedupe(cands)
}

func strictMatch(lines, anchors []string, minLine int) (HunkMatch, bool) {
	n := len(anchors)
	for i := minLine; i+n <= len(lines); i++ {
		match := true
		for j := 0; j < n; j++ {
			if lines[i+j] != anchors[j] {
				match = false
				break
			}
		}
		if match {
			return HunkMatch{StartIndex: i, MatchedLength: n, Score: 1.0, Density: 1.0}, true
		}
	}
	return HunkMatch{}, false
}

func whitespaceMatches(srcMap CleanSourceMap, cleanAnchors []string, minLine int) []HunkMatch {
	sub := srcMap.from(minLine)
	n := len(cleanAnchors)
	var cands []HunkMatch
	for i := 0; i+n <= len(sub); i++ {
		match := true
		for j := 0; j < n; j++ {
			if sub[i+j].Text != cleanAnchors[j] {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		// The replaced span runs from the first to the last matched
		// original index, so interior blank lines are consumed too.
		start := sub[i].Index
		length := sub[i+n-1].Index - start + 1
		cands = append(cands, HunkMatch{
			StartIndex:    start,
			MatchedLength: length,
			Score:         whitespaceMatchScore,
			Density:       float64(n) / float64(length),
		})
	}
	return cands
}

func anchorPointMatches(lines []string, srcMap CleanSourceMap, idxMap CleanIndexMap, h *diff.Hunk, anchors, cleanAnchors []string, opts Options) []HunkMatch {
	topRaw, topNorm := pickAnchor(anchors[:(len(anchors)+1)/2], anchors[0])
	_, bottomNorm := pickAnchor(anchors[(len(anchors)+1)/2:], anchors[len(anchors)-1])

	additions, removals := h.Counts()
	slack := windowSlackPerEdit * (additions + removals)
	if slack < windowSlackMin {
		slack = windowSlackMin
	}
	window := len(anchors) + slack
	if window > maxWindowSize {
		window = maxWindowSize
	}

	n := len(cleanAnchors)
	threshold := opts.threshold()
	topIndent := leadingWhitespace(topRaw)

	var cands []HunkMatch
	for _, top := range idxMap[topNorm] {
		if top < opts.MinLine {
			continue
		}
		// The anchors can only coincide when both halves picked the same
		// normalized line; otherwise the bottom occurrence must lie
		// strictly below the top.
		minBottom := top + 1
		if topNorm == bottomNorm {
			minBottom = top
		}
		for _, bottom := range idxMap[bottomNorm] {
			if bottom < minBottom || bottom-top >= window {
				continue
			}
			spanLen := bottom - top + 1
			density := float64(n) / float64(spanLen)
			if density > 1.0 {
				density = 1.0
			}
			// Upper bound with a perfect LCS; prunes the expensive
			// LCS computation for hopeless spans.
			if lcsWeight+densityWeight*density < threshold {
				continue
			}
			spanNorm := srcMap.between(top, bottom)
			lcsScore := float64(lcsLength(cleanAnchors, spanNorm)) / float64(n)
			score := lcsWeight*lcsScore + densityWeight*density
			if leadingWhitespace(lines[top]) == topIndent {
				score += indentBonus
				if score > 1.0 {
					score = 1.0
				}
			}
			if score < threshold {
				continue
			}
			cands = append(cands, HunkMatch{
				StartIndex:    top,
				MatchedLength: spanLen,
				Score:         score,
				Density:       density,
			})
		}
	}
	return cands
}

// pickAnchor chooses the longest non-blank line from half of the anchor
// list, falling back to the given literal line. Longest-line selection
// avoids anchoring on trivial lines such as a lone brace.
func pickAnchor(half []string, fallback string) (raw, norm string) {
	best := ""
	bestLen := 0
	for _, a := range half {
		if n := len(NormalizeLine(a)); n > bestLen {
			best = a
			bestLen = n
		}
	}
	if bestLen == 0 {
		return fallback, NormalizeLine(fallback)
	}
	return best, NormalizeLine(best)
}

// lcsLength computes the longest common subsequence length of two line
// sequences with a rolling-row DP. LCS rather than set containment, so
// reordered or duplicated lines are penalized proportionally.
func lcsLength(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
		for k := range curr {
			curr[k] = 0
		}
	}
	return prev[len(b)]
}

// applyProximityBonus nudges candidates near where the diff's own line
// numbers expected the hunk. It breaks ties; it can never manufacture a
// match that content scoring rejected.
func applyProximityBonus(cands []HunkMatch, h *diff.Hunk) {
	expected := h.OldStart - 1
	for k := range cands {
		d := cands[k].StartIndex - expected
		if d < 0 {
			d = -d
		}
		if d > proximityDecayDistance {
			continue
		}
		cands[k].Score += proximityMaxBonus * float64(proximityDecayDistance-d) / float64(proximityDecayDistance)
		if cands[k].Score > 1.0 {
			cands[k].Score = 1.0
		}
	}
}

// dedupe keeps the best candidate per start index, orders by score then
// density then position, and drops everything below the retention band of
// the top score.
func dedupe(cands []HunkMatch) []HunkMatch {
	if len(cands) == 0 {
		return nil
	}
	best := make(map[int]HunkMatch, len(cands))
	for _, c := range cands {
		b, ok := best[c.StartIndex]
		if !ok || c.Score > b.Score || (c.Score == b.Score && c.Density > b.Density) {
			best[c.StartIndex] = c
		}
	}
	out := make([]HunkMatch, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Density != out[j].Density {
			return out[i].Density > out[j].Density
		}
		return out[i].StartIndex < out[j].StartIndex
	})
	cut := out[0].Score * dedupRetentionBand
	for i, c := range out {
		if c.Score < cut {
			return out[:i]
		}
	}
	return out
}
