package script

import (
	"errors"
	"fmt"
)

// ErrClosed indicates the runner was closed.
var ErrClosed = errors.New("script runner closed")

// Error is a failed script run.
type Error struct {
	Script string // file path or chunk name
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script %s: %v", e.Script, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
