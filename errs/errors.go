// Package errs defines the error values shared across the jsontree library.
//
// Every failure mode surfaces as one of the sentinel errors below, possibly
// wrapped with additional context via fmt.Errorf("...: %w", err). Callers
// should match with errors.Is rather than comparing strings.
//
// Parse failures are the one structured case: they carry the 1-based line
// and column of the offending input position as fields on ParseError.
package errs

import (
	"errors"
	"fmt"
)

// Value handle and type errors.
var (
	// ErrInvalidHandle indicates an operation on a released or zero Value.
	ErrInvalidHandle = errors.New("operation on released or uninitialized value")

	// ErrTypeMismatch indicates a typed accessor invoked against a value
	// holding a different type.
	ErrTypeMismatch = errors.New("value type mismatch")
)

// Array bounds errors.
var (
	// ErrIndexOutOfRange indicates an array index outside [0, Len).
	ErrIndexOutOfRange = errors.New("array index out of range")

	// ErrEmptyArray indicates a pop on an array with no elements.
	ErrEmptyArray = errors.New("pop from empty array")
)

// Object errors.
var (
	// ErrKeyNotFound indicates a lookup of an absent object key.
	ErrKeyNotFound = errors.New("object key not found")
)

// Serialization errors.
var (
	// ErrCycleDetected indicates the serializer revisited a node within its
	// own subtree, i.e. the value graph contains a cycle.
	ErrCycleDetected = errors.New("cycle detected during serialization")
)

// Parse errors.
var (
	// ErrParse is the sentinel matched by every ParseError.
	ErrParse = errors.New("json parse error")
)

// Packed document errors.
var (
	// ErrInvalidPackedData indicates a packed document with a corrupt or
	// truncated header.
	ErrInvalidPackedData = errors.New("invalid packed document data")

	// ErrUnsupportedCodec indicates an unknown compression type in a packed
	// document header or pack option.
	ErrUnsupportedCodec = errors.New("unsupported compression codec")
)

// ParseError describes a malformed JSON input. Line and Column are 1-based
// and point at the offending position.
type ParseError struct {
	Msg    string
	Line   int
	Column int
}

// NewParseError creates a ParseError at the given position.
func NewParseError(msg string, line, column int) *ParseError {
	return &ParseError{Msg: msg, Line: line, Column: column}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Msg, e.Line, e.Column)
}

// Is reports whether target is ErrParse, so errors.Is(err, errs.ErrParse)
// matches any parse failure.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
