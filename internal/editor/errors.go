package editor

import (
	"errors"
	"fmt"
)

// Editor errors.
var (
	// ErrNoPath indicates the session has no file path to save to or
	// reload from.
	ErrNoPath = errors.New("no file path")

	// ErrPromptActive indicates a prompt is already open.
	ErrPromptActive = errors.New("prompt already active")

	// ErrNoPrompt indicates there is no prompt to answer.
	ErrNoPrompt = errors.New("no active prompt")
)

// FileError represents a failed file operation. The underlying error is
// reachable with errors.Is and errors.As.
type FileError struct {
	Op   string // "open", "save" or "reload"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s", e.Op, e.Path)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}
