// Package input acquires the raw diff text from one of three sources: an
// explicit file argument, the system clipboard, or a stdin pipe.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// ErrNoInput means no diff file, clipboard flag, or stdin pipe was
// provided.
var ErrNoInput = errors.New("no diff file, clipboard flag, or stdin pipe was provided")

// Read returns the diff text from the first available source, in priority
// order: path, clipboard, stdin pipe.
func Read(path string, useClipboard bool) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read diff file: %w", err)
		}
		return string(data), nil
	}

	if useClipboard {
		text, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("could not access the clipboard: %w", err)
		}
		return text, nil
	}

	if stdinIsPipe() {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	return "", ErrNoInput
}

func stdinIsPipe() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice == 0
}
