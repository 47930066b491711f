// Package ui provides mend's terminal output: a colored writer for status
// messages and diff echo, and an interactive picker for ambiguous matches.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Color definitions for consistent output
var (
	infoColor    = color.New(color.FgWhite, color.Faint)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)

	diffHeaderColor = color.New(color.FgCyan)
	diffHunkColor   = color.New(color.FgMagenta)
	diffAddColor    = color.New(color.FgGreen)
	diffDelColor    = color.New(color.FgRed)
)

// Writer provides formatted output with consistent prefixes and optional
// colors. Status goes to stderr so stdout stays clean for piped output.
type Writer struct {
	out   io.Writer
	quiet bool
}

// NewWriter creates a Writer. When colorEnabled is false all color is
// suppressed globally; quiet suppresses info-level messages.
func NewWriter(colorEnabled, quiet bool) *Writer {
	if !colorEnabled {
		color.NoColor = true
	}
	return &Writer{out: os.Stderr, quiet: quiet}
}

// Info prints a faint informational message.
func (w *Writer) Info(format string, args ...any) {
	if w.quiet {
		return
	}
	infoColor.Fprintf(w.out, format+"\n", args...)
}

// Success prints a green success message.
func (w *Writer) Success(format string, args ...any) {
	if w.quiet {
		return
	}
	successColor.Fprintf(w.out, format+"\n", args...)
}

// Warning prints a yellow warning message.
func (w *Writer) Warning(format string, args ...any) {
	warnColor.Fprintf(w.out, format+"\n", args...)
}

// Error prints a red error message.
func (w *Writer) Error(format string, args ...any) {
	errorColor.Fprintf(w.out, format+"\n", args...)
}

// PrintDiff echoes a unified diff with per-line coloring, used by dry-run
// output.
func (w *Writer) PrintDiff(diffText string) {
	for _, line := range strings.Split(strings.TrimRight(diffText, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			diffHeaderColor.Fprintln(w.out, line)
		case strings.HasPrefix(line, "@@"):
			diffHunkColor.Fprintln(w.out, line)
		case strings.HasPrefix(line, "+"):
			diffAddColor.Fprintln(w.out, line)
		case strings.HasPrefix(line, "-"):
			diffDelColor.Fprintln(w.out, line)
		default:
			fmt.Fprintln(w.out, line)
		}
	}
}
