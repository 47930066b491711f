package app

import (
	"errors"
	"fmt"
)

// ErrEmptyDiff means the input contained no usable diff content after
// sanitization.
var ErrEmptyDiff = errors.New("the provided diff content is empty")

// NoChangesError means the patch parsed fine but contains nothing for the
// requested target file.
type NoChangesError struct {
	TargetFile string
}

func (e *NoChangesError) Error() string {
	return fmt.Sprintf("the diff contains no changes for the specified file: %s", e.TargetFile)
}
