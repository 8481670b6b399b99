package ast

import "pythia/lexer"

// Module is the only Mod variant Parse ever produces: a flat sequence of
// top-level statements.
type Module struct {
	Loc
	Body []Stmt
}

func (m *Module) modNode() {}

func NewModule(body []Stmt, s lexer.Span) *Module {
	return &Module{Loc: NewLoc(s), Body: body}
}

// Interactive represents a single REPL-style input line. The parser
// never produces one; it exists so the unparser can round-trip ASTs
// built by other tools that target CPython's grammar.
type Interactive struct {
	Loc
	Body []Stmt
}

func (m *Interactive) modNode() {}

// Expression wraps a single bare expression, CPython's "eval" mode root.
type Expression struct {
	Loc
	Body Expr
}

func (m *Expression) modNode() {}

// FunctionType is CPython's "func_type" mode root, used by type-comment
// tooling to describe a callable's signature as a standalone AST.
type FunctionType struct {
	Loc
	ArgTypes []Expr
	Returns  Expr
}

func (m *FunctionType) modNode() {}
