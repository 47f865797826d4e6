package convert

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a conversion failure.
type ErrorKind string

const (
	// KindFileNotFound: the input is missing or unreadable.
	KindFileNotFound ErrorKind = "file_not_found"
	// KindParse: a line is not a JSON object, or a Parquet file is corrupt.
	KindParse ErrorKind = "parse"
	// KindEmptyInput: no records after blank lines were dropped. Not a failure.
	KindEmptyInput ErrorKind = "empty_input"
	// KindWrite: the output could not be written or moved into place.
	KindWrite ErrorKind = "write"
	// KindFormat: an unknown input or output format was requested.
	KindFormat ErrorKind = "format"
)

// Error is the error type returned by Converter.Convert.
type Error struct {
	Kind ErrorKind
	Path string
	// Line is the 1-based input line for KindParse errors from JSON Lines
	// input, zero otherwise.
	Line int
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindFileNotFound:
		return fmt.Sprintf("input file %s not found or unreadable: %v", e.Path, e.Err)
	case KindParse:
		if e.Line > 0 {
			return fmt.Sprintf("parse error in %s at line %d: %v", e.Path, e.Line, e.Err)
		}
		return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
	case KindEmptyInput:
		return fmt.Sprintf("no data found in %s", e.Path)
	case KindWrite:
		return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
	default:
		if e.Err == nil {
			return string(e.Kind)
		}
		return e.Err.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Soft reports whether the error is a notice rather than a failure.
func (e *Error) Soft() bool {
	return e.Kind == KindEmptyInput
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) ErrorKind {
	var convErr *Error
	if errors.As(err, &convErr) {
		return convErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
