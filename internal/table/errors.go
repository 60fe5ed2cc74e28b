package table

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed indicates a token that is not a number.
	ErrMalformed = errors.New("table: malformed numeric token")

	// ErrRagged indicates a row whose column count differs from the first row.
	ErrRagged = errors.New("table: inconsistent column count")

	// ErrTooNarrow indicates fewer columns than the caller needs.
	ErrTooNarrow = errors.New("table: too few columns")
)

// ParseError wraps a parse failure with its 1-based line number.
type ParseError struct {
	Line    int
	Token   string
	Wrapped error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v (%q)", e.Line, e.Wrapped, e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

type ShapeError struct {
	Want    int
	Got     int
	Wrapped error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: need %d, have %d", e.Wrapped, e.Want, e.Got)
}

func (e *ShapeError) Unwrap() error {
	return e.Wrapped
}
