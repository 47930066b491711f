package diff

import (
	"reflect"
	"testing"
)

func TestLineInvert(t *testing.T) {
	tests := []struct {
		name string
		in   Line
		want Line
	}{
		{"addition becomes removal", Addition("x"), Removal("x")},
		{"removal becomes addition", Removal("x"), Addition("x")},
		{"context unchanged", Context("x"), Context("x")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Invert(); got != tt.want {
				t.Errorf("Invert() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHunkInvertSwapsHeaders(t *testing.T) {
	h := &Hunk{
		OldStart: 3, OldLines: 4, NewStart: 7, NewLines: 5,
		Lines: []Line{Context("a"), Removal("b"), Addition("c")},
	}
	inv := h.Invert()

	if inv.OldStart != 7 || inv.OldLines != 5 || inv.NewStart != 3 || inv.NewLines != 4 {
		t.Errorf("header not swapped: %+v", inv)
	}
	want := []Line{Context("a"), Addition("b"), Removal("c")}
	if !reflect.DeepEqual(inv.Lines, want) {
		t.Errorf("lines = %v, want %v", inv.Lines, want)
	}
	// Original must not be mutated.
	if h.OldStart != 3 || h.Lines[1].Kind != LineRemoval {
		t.Error("Invert() mutated the receiver")
	}
}

func TestPatchInvertRoundTrip(t *testing.T) {
	p := &Patch{Diffs: []*FileDiff{
		{
			OldFile: "a.txt",
			NewFile: "b.txt",
			Hunks: []*Hunk{
				{OldStart: 1, OldLines: 2, NewStart: 1, NewLines: 3,
					Lines: []Line{Context("x"), Removal("y"), Addition("z"), Addition("w")}},
			},
		},
		{OldFile: DevNull, NewFile: "new.txt",
			Hunks: []*Hunk{{NewStart: 1, NewLines: 1, Lines: []Line{Addition("hello")}}}},
	}}

	back := p.Invert().Invert()
	if !reflect.DeepEqual(back, p) {
		t.Errorf("invert round trip mismatch:\ngot  %+v\nwant %+v", back, p)
	}
}

func TestFileDiffInvertSwapsCreationDeletion(t *testing.T) {
	fd := &FileDiff{OldFile: DevNull, NewFile: "new.txt",
		Hunks: []*Hunk{{Lines: []Line{Addition("a")}}}}
	if !fd.IsCreation() {
		t.Fatal("expected creation diff")
	}
	inv := fd.Invert()
	if !inv.IsDeletion() {
		t.Error("inverted creation should be a deletion")
	}
	if inv.Hunks[0].Lines[0].Kind != LineRemoval {
		t.Error("inverted addition should be a removal")
	}
}

func TestAnchorLines(t *testing.T) {
	h := &Hunk{Lines: []Line{
		Context("one"), Removal("two"), Addition("three"), Context("four"),
	}}
	want := []string{"one", "two", "four"}
	if got := h.AnchorLines(); !reflect.DeepEqual(got, want) {
		t.Errorf("AnchorLines() = %v, want %v", got, want)
	}
}

func TestCounts(t *testing.T) {
	h := &Hunk{Lines: []Line{
		Context("a"), Addition("b"), Addition("c"), Removal("d"),
	}}
	adds, dels := h.Counts()
	if adds != 2 || dels != 1 {
		t.Errorf("Counts() = (%d, %d), want (2, 1)", adds, dels)
	}
}

func TestTargetFile(t *testing.T) {
	tests := []struct {
		name string
		fd   FileDiff
		want string
	}{
		{"normal update", FileDiff{OldFile: "a.txt", NewFile: "a.txt"}, "a.txt"},
		{"creation", FileDiff{OldFile: DevNull, NewFile: "new.txt"}, "new.txt"},
		{"deletion", FileDiff{OldFile: "gone.txt", NewFile: DevNull}, "gone.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fd.TargetFile(); got != tt.want {
				t.Errorf("TargetFile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilterByTarget(t *testing.T) {
	p := &Patch{Diffs: []*FileDiff{
		{OldFile: "a.txt", NewFile: "a.txt"},
		{OldFile: "b.txt", NewFile: "b.txt"},
	}}
	got := p.FilterByTarget("b.txt")
	if len(got.Diffs) != 1 || got.Diffs[0].NewFile != "b.txt" {
		t.Errorf("FilterByTarget() = %+v", got.Diffs)
	}
	if len(p.Diffs) != 2 {
		t.Error("FilterByTarget() mutated the receiver")
	}
	if got := p.FilterByTarget("missing.txt"); len(got.Diffs) != 0 {
		t.Errorf("expected empty result, got %d diffs", len(got.Diffs))
	}
}
