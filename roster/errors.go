package roster

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingFile is returned when an upload carries no file. Callers ignore it.
var ErrMissingFile = errors.New("no file selected")

// ErrTooLarge is wrapped in a ParseError when an upload exceeds the size limit.
var ErrTooLarge = errors.New("file exceeds upload limit")

// ParseError reports a roster file that could not be parsed.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse roster: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ValidationError reports a lookup attempted without the required fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required lookup fields: " + strings.Join(e.Fields, ", ")
}
