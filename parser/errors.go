package parser

import "fmt"

// Error is a single parse failure: a short message plus the position of
// the token that triggered it. The parser is fail-fast (see Parser.Parse)
// so callers only ever see the first Error, never an accumulated list.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Column)
}

func newError(message string, line, column int) *Error {
	return &Error{Message: message, Line: line, Column: column}
}
