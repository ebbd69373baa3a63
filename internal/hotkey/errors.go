package hotkey

import (
	"errors"
	"fmt"
)

// Registration errors.
var (
	// ErrEmptyKey indicates a binding without a key.
	ErrEmptyKey = errors.New("hotkey: empty key")

	// ErrNilHandler indicates a binding without a handler.
	ErrNilHandler = errors.New("hotkey: nil handler")

	// ErrShiftSymbolKey indicates Shift combined with a symbol-class
	// key. Shift changes which character a symbol key produces, so the
	// combination is ambiguous unless the binding is "code:"-bound.
	ErrShiftSymbolKey = errors.New("hotkey: shift cannot be combined with a symbol key")
)

// BindError wraps a registration failure with the position and key of
// the offending binding, for batch registration diagnostics.
type BindError struct {
	// Index is the binding's position in the batch.
	Index int

	// Key is the binding's key as supplied by the caller.
	Key string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *BindError) Error() string {
	return fmt.Sprintf("binding %d (%q): %v", e.Index, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *BindError) Unwrap() error {
	return e.Err
}
