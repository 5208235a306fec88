package service

import (
	"errors"
	"fmt"
)

// ErrSelectionCancelled means a prompt closed without a choice. Callers
// treat it as a no-op rather than a failure.
var ErrSelectionCancelled = errors.New("selection cancelled")

// ErrNotReady is returned by Export before a catalog has been generated.
var ErrNotReady = errors.New("no generated commands to export")

// GenerationError wraps a failed or malformed generation call.
type GenerationError struct {
	Path string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("Failed to generate commands: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ExportError wraps a failed catalog write.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("Failed to export commands: %v", e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// ValidationError reports rejected saved-location input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Msg
}

// ClipboardError wraps a failed clipboard write.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("Failed to copy: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error { return e.Err }
