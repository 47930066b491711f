package patcher

import "testing"

func TestNormalizeLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t  ", ""},
		{"single word", "foo", "foo"},
		{"indentation dropped", "    foo", "foo"},
		{"identifier run kept together", "foo_bar123", "foo_bar123"},
		{"punctuation split out", "foo(a,b)", "foo ( a , b )"},
		{"inter-token spacing collapses", "foo( a, b )", "foo ( a , b )"},
		{"mixed spacing same result", "foo(a, b)", "foo ( a , b )"},
		{"operators separate", "x+=1;", "x + = 1 ;"},
		{"tabs and spaces equivalent", "\tif x {", "if x {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLine(tt.in); got != tt.want {
				t.Errorf("NormalizeLine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Re-inserting arbitrary whitespace between tokens must not change the
// normalized form.
func TestNormalizeWhitespaceInvariance(t *testing.T) {
	variants := []string{
		"void func(int a, int b) {",
		"void func( int a, int b ) {",
		"void  func(int a,int b){",
		"\tvoid func(int a , int b) {",
	}
	want := NormalizeLine(variants[0])
	for _, v := range variants[1:] {
		if got := NormalizeLine(v); got != want {
			t.Errorf("NormalizeLine(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestLeadingWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"foo", ""},
		{"  foo", "  "},
		{"\t\tfoo", "\t\t"},
		{"   ", "   "},
	}
	for _, tt := range tests {
		if got := leadingWhitespace(tt.in); got != tt.want {
			t.Errorf("leadingWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
