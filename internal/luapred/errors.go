package luapred

import (
	"errors"
	"fmt"
)

// ErrEngineClosed is returned when compiling on a closed engine.
var ErrEngineClosed = errors.New("luapred: engine is closed")

// CompileError describes a predicate source that failed to compile.
type CompileError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling predicate %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
