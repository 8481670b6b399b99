// Package pythia parses Python source into a CPython-shaped AST and
// unparses that AST back into source text. See ast, lexer, parser, and
// unparser for the pieces; this file wires them into the two entry
// points external callers use.
package pythia

import (
	"fmt"
	"log/slog"

	"pythia/ast"
	"pythia/lexer"
	"pythia/parser"
	"pythia/unparser"
)

// LexError, ParseError, and UnparseError are the three typed errors
// Parse/Unparse can return, distinguished by kind per the error
// contract. Each wraps the underlying package's own error type rather
// than duplicating its fields.
type LexError struct{ Err *lexer.Error }

func (e *LexError) Error() string { return e.Err.Error() }
func (e *LexError) Unwrap() error { return e.Err }

type ParseError struct{ Err *parser.Error }

func (e *ParseError) Error() string { return e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

type UnparseError struct{ Err *unparser.Error }

func (e *UnparseError) Error() string { return e.Err.Error() }
func (e *UnparseError) Unwrap() error { return e.Err }

// ParseOptions configures Parse. Filename is purely informational and
// attached to nothing but caller-facing messages today (the parser
// itself never needs it); FeatureVersion is advisory and unused by the
// grammar, recorded here only because callers expect to be able to pass
// it the way CPython's own `ast.parse` accepts one.
type ParseOptions struct {
	Filename       string
	Comments       bool
	FeatureVersion string
	Logger         *slog.Logger
}

func DefaultParseOptions() ParseOptions {
	return ParseOptions{Logger: slog.Default()}
}

// UnparseOptions configures Unparse.
type UnparseOptions struct {
	Indent string
	Logger *slog.Logger
}

func DefaultUnparseOptions() UnparseOptions {
	return UnparseOptions{Indent: "    ", Logger: slog.Default()}
}

// Parse scans and parses source, returning the resulting Module or the
// first LexError/ParseError encountered. There is no error recovery:
// the scanner collects every lex error but only the first is returned,
// and the parser stops at its first bad token.
func Parse(source []byte, opts ParseOptions) (*ast.Module, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	scanner := lexer.NewScanner(source)
	tokens := scanner.ScanTokens()
	if len(scanner.Errors) > 0 {
		lexErr, ok := scanner.Errors[0].(*lexer.Error)
		if !ok {
			return nil, fmt.Errorf("%s: %w", opts.Filename, scanner.Errors[0])
		}
		opts.Logger.Debug("lex failed", "file", opts.Filename, "error", lexErr)
		return nil, &LexError{Err: lexErr}
	}

	p := parser.New(tokens, parser.Options{Comments: opts.Comments, Logger: opts.Logger})
	mod, err := p.Parse()
	if err != nil {
		parseErr, ok := err.(*parser.Error)
		if !ok {
			return nil, fmt.Errorf("%s: %w", opts.Filename, err)
		}
		opts.Logger.Debug("parse failed", "file", opts.Filename, "error", parseErr)
		return nil, &ParseError{Err: parseErr}
	}
	return mod, nil
}

// Unparse prints node as Python source, or returns the first
// UnparseError encountered for a structurally malformed tree.
func Unparse(node ast.Node, opts UnparseOptions) (string, error) {
	if opts.Indent == "" {
		opts.Indent = "    "
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	text, err := unparser.Unparse(node, unparser.Options{Indent: opts.Indent, Logger: opts.Logger})
	if err != nil {
		uerr, ok := err.(*unparser.Error)
		if !ok {
			return "", err
		}
		return "", &UnparseError{Err: uerr}
	}
	return text, nil
}
