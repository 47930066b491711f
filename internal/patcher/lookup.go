package patcher

import "sort"

// CleanLine pairs an original line index with its normalized text.
type CleanLine struct {
	Index int
	Text  string
}

// CleanSourceMap is the ordered sequence of non-blank normalized lines for
// one source file. Blank lines carry no positional signal and are excluded,
// but the preserved original indices keep span lengths computable against
// the real line array.
type CleanSourceMap []CleanLine

// CleanIndexMap maps normalized text to the original indices where it
// occurs, in order of appearance.
type CleanIndexMap map[string][]int

// BuildLookup precomputes the lookup tables for a source file. It is built
// once per file per matching session, which is what makes scanning many
// hunks against one file practical.
func BuildLookup(lines []string) (CleanSourceMap, CleanIndexMap) {
	srcMap := make(CleanSourceMap, 0, len(lines))
	idxMap := make(CleanIndexMap, len(lines))
	for i, line := range lines {
		norm := NormalizeLine(line)
		if norm == "" {
			continue
		}
		srcMap = append(srcMap, CleanLine{Index: i, Text: norm})
		idxMap[norm] = append(idxMap[norm], i)
	}
	return srcMap, idxMap
}

// from returns the suffix of the map whose original indices are at or after
// minLine.
func (m CleanSourceMap) from(minLine int) CleanSourceMap {
	if minLine <= 0 {
		return m
	}
	i := sort.Search(len(m), func(i int) bool { return m[i].Index >= minLine })
	return m[i:]
}

// between returns the normalized texts of entries whose original indices
// fall in [start, end].
func (m CleanSourceMap) between(start, end int) []string {
	lo := sort.Search(len(m), func(i int) bool { return m[i].Index >= start })
	var texts []string
	for i := lo; i < len(m) && m[i].Index <= end; i++ {
		texts = append(texts, m[i].Text)
	}
	return texts
}
