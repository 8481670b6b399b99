// Package unparser prints an AST back out as Python source. It mirrors
// parser's shape: a single-pass, recursive printer that prints a "?"
// placeholder for a missing expression and, rather than panicking,
// returns an *Error for a tree it cannot print at all.
package unparser

import (
	"fmt"
	"log/slog"
	"strings"

	"pythia/ast"
)

// Options configures an Unparser the way parser.Options configures a
// Parser.
type Options struct {
	// Indent is repeated once per nesting level. Defaults to four spaces.
	Indent string

	// Logger receives Debug-level unparse-boundary diagnostics. Defaults
	// to slog.Default() when nil.
	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{Indent: "    ", Logger: slog.Default()}
}

// Error marks an input tree Unparse cannot print: a compound statement
// with an empty suite, or a node of a kind the unparser does not know.
// A nil expression field is not an error; it prints as "?".
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unparser holds the print buffer and the indentation depth. One
// Unparser prints exactly one tree; callers reach for the package-level
// Unparse function rather than constructing this directly.
type Unparser struct {
	out    strings.Builder
	indent string
	depth  int
	first  bool
	logger *slog.Logger
}

func New(opts Options) *Unparser {
	if opts.Indent == "" {
		opts.Indent = "    "
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Unparser{indent: opts.Indent, first: true, logger: opts.Logger}
}

// Unparse prints node (a *ast.Module, or any Stmt/Expr) as source text.
func Unparse(node ast.Node, opts Options) (string, error) {
	u := New(opts)
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if ue, ok := r.(*Error); ok {
					err = ue
					return
				}
				panic(r)
			}
		}()
		u.unparseNode(node)
	}()
	if err != nil {
		return "", err
	}
	u.logger.Debug("unparse complete", "bytes", u.out.Len())
	return u.out.String(), nil
}

func (u *Unparser) unparseNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.Module:
		for _, stmt := range n.Body {
			u.statement(stmt)
		}
	case *ast.Interactive:
		for _, stmt := range n.Body {
			u.statement(stmt)
		}
	case *ast.Expression:
		u.expr(n.Body, precTuple)
	case *ast.FunctionType:
		u.writeIndent()
		u.out.WriteString("(")
		for i, a := range n.ArgTypes {
			if i > 0 {
				u.out.WriteString(", ")
			}
			u.expr(a, precTest)
		}
		u.out.WriteString(") -> ")
		u.expr(n.Returns, precTest)
	case ast.Stmt:
		u.statement(n)
	case ast.Expr:
		u.expr(n, precTuple)
	default:
		u.fail("cannot unparse node of type %T", node)
	}
}

func (u *Unparser) fail(format string, args ...any) {
	panic(&Error{Message: fmt.Sprintf(format, args...)})
}

// writeIndent starts a new physical line at the current depth, except
// before the very first line of output.
func (u *Unparser) writeIndent() {
	if !u.first {
		u.out.WriteString("\n")
	}
	u.first = false
	u.out.WriteString(strings.Repeat(u.indent, u.depth))
}

func (u *Unparser) line(s string) {
	u.writeIndent()
	u.out.WriteString(s)
}

func (u *Unparser) block(body []ast.Stmt) {
	if len(body) == 0 {
		u.fail("suite has no statements")
	}
	u.depth++
	for _, stmt := range body {
		u.statement(stmt)
	}
	u.depth--
}
