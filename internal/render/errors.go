// Package render formats ranked palettes for the terminal, as PNG swatches
// and as text reports.
package render

import (
	"errors"
	"fmt"
)

// ErrOutputWrite matches any *OutputWriteError with errors.Is.
var ErrOutputWrite = errors.New("output write failed")

// OutputWriteError reports a failure to produce an output file.
// When it is returned no file exists at Path from the failed attempt.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrOutputWrite.
func (e *OutputWriteError) Is(target error) bool {
	return target == ErrOutputWrite
}
