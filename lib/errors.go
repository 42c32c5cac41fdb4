package lib

import (
	"errors"
	"fmt"
)

// Category values returned by Error.Unwrap so callers can use errors.Is.
var (
	ErrSyntax = errors.New("SyntaxError")
	ErrParse  = errors.New("ParseError")
	ErrType   = errors.New("TypeError")
)

// Error is raised by the parser. Offset is the byte offset of the token being
// examined when parsing stopped, or len(Source) when the input ran out.
// Mapping the offset to a line and column is left to the caller, see
// RenderError.
type Error struct {
	Category error
	Message  string
	Offset   int
	File     string
	Source   string
}

func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %s (offset %d)", e.Category, e.Message, e.Offset)
	}
	return fmt.Sprintf("%s: offset %d: %s: %s", e.File, e.Offset, e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Category
}
