package config

import (
	"errors"
	"fmt"
)

// ErrUnknownAction indicates a binding declaration naming an action the
// registry does not hold.
var ErrUnknownAction = errors.New("config: unknown action")

// ErrDuplicateAction indicates a second registration under a name that
// is already taken.
var ErrDuplicateAction = errors.New("config: duplicate action")

// ParseError describes a failure to parse a configuration source.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ApplyError describes a binding declaration that could not be applied.
type ApplyError struct {
	Index  int
	Action string
	Err    error
}

// Error implements the error interface.
func (e *ApplyError) Error() string {
	return fmt.Sprintf("applying binding %d (action %q): %v", e.Index, e.Action, e.Err)
}

// Unwrap returns the underlying error.
func (e *ApplyError) Unwrap() error {
	return e.Err
}
