package lexer

import "fmt"

// Error is raised by the scanner for unterminated strings, inconsistent
// indentation, and unexpected characters. Line and Column follow the same
// indexing the scanner was configured with.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Column)
}

// NewError creates a new lexer Error.
func NewError(message string, line, column int) *Error {
	return &Error{Message: message, Line: line, Column: column}
}
