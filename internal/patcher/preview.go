package patcher

import (
	"github.com/pmezard/go-difflib/difflib"
)

// RenderDiff produces a unified diff of the before and after file content,
// used for dry-run and summary output.
func RenderDiff(before, after, path string) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(ud)
}
