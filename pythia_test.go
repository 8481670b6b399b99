package pythia

import (
	"errors"
	"strings"
	"testing"

	"pythia/lexer"
	"pythia/parser"
	"pythia/unparser"
)

func TestParseSimpleModule(t *testing.T) {
	mod, err := Parse([]byte("x = 1\n"), DefaultParseOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mod.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Body))
	}
}

func TestParseLexErrorWrapsLexerError(t *testing.T) {
	_, err := Parse([]byte("x = 1 $\n"), DefaultParseOptions())
	if err == nil {
		t.Fatal("expected an error for an invalid character")
	}
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *LexError, got %T", err)
	}
	var underlying *lexer.Error
	if !errors.As(err, &underlying) {
		t.Fatalf("expected errors.As to reach *lexer.Error, got %v", err)
	}
}

func TestParseSyntaxErrorWrapsParserError(t *testing.T) {
	opts := DefaultParseOptions()
	opts.Filename = "test.py"
	_, err := Parse([]byte("def f(:\n    pass\n"), opts)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	var underlying *parser.Error
	if !errors.As(err, &underlying) {
		t.Fatalf("expected errors.As to reach *parser.Error, got %v", err)
	}
}

func TestUnparseRoundTrip(t *testing.T) {
	mod, err := Parse([]byte("def f(x):\n    return x + 1\n"), DefaultParseOptions())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	out, err := Unparse(mod, DefaultUnparseOptions())
	if err != nil {
		t.Fatalf("unparse error: %v", err)
	}
	if !strings.Contains(out, "def f(x):") {
		t.Fatalf("expected function signature preserved, got:\n%s", out)
	}
	if !strings.Contains(out, "return x + 1") {
		t.Fatalf("expected return statement preserved, got:\n%s", out)
	}
}

func TestUnparseErrorWrapsUnparserError(t *testing.T) {
	// brokenNode satisfies ast.Node but no other AST interface, forcing the
	// unparser's "cannot unparse node of type" failure path.
	bad := brokenNode{}
	_, err := Unparse(bad, DefaultUnparseOptions())
	if err == nil {
		t.Fatal("expected an error for an unsupported node kind")
	}
	var unparseErr *UnparseError
	if !errors.As(err, &unparseErr) {
		t.Fatalf("expected *UnparseError, got %T", err)
	}
	var underlying *unparser.Error
	if !errors.As(err, &underlying) {
		t.Fatalf("expected errors.As to reach *unparser.Error, got %v", err)
	}
}

type brokenNode struct{}

func (brokenNode) GetSpan() lexer.Span { return lexer.Span{} }

func TestDefaultOptionsSetIndentAndLogger(t *testing.T) {
	po := DefaultParseOptions()
	if po.Logger == nil {
		t.Fatal("expected a default logger")
	}
	uo := DefaultUnparseOptions()
	if uo.Indent != "    " {
		t.Fatalf("expected default 4-space indent, got %q", uo.Indent)
	}
	if uo.Logger == nil {
		t.Fatal("expected a default logger")
	}
}

func TestUnparseDefaultsEmptyIndent(t *testing.T) {
	mod, err := Parse([]byte("pass\n"), DefaultParseOptions())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	out, err := Unparse(mod, UnparseOptions{})
	if err != nil {
		t.Fatalf("unparse error: %v", err)
	}
	if out != "pass" {
		t.Fatalf("got %q, want %q", out, "pass")
	}
}
