package pathment

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned by the splitters for blank input.
	ErrEmptyInput = errors.New("empty input")
	// ErrNoMatch is returned when the input does not have the expected shape.
	ErrNoMatch = errors.New("input does not match")
)

// SplitError describes why a splitter or validator rejected its input.
type SplitError struct {
	Op     string
	Input  string
	Reason string
	Err    error
}

func (e *SplitError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %q: %s", e.Op, e.Input, e.Reason)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Input, e.Err)
}

func (e *SplitError) Unwrap() error {
	return e.Err
}

func newSplitError(op, input, reason string, err error) *SplitError {
	return &SplitError{Op: op, Input: input, Reason: reason, Err: err}
}
