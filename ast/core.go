// Package ast defines the tagged-variant syntax tree this module parses
// Python source into and unparses back to source. Every node kind is its
// own Go struct; there is no generic "Node{Type, Children}" blob and no
// type assertion is needed beyond an ordinary type switch.
//
// Field names follow CPython's own ASDL grammar (Orelse, Finalbody,
// Handlers, …) so readers already familiar with the `ast` module in
// Python feel at home.
package ast

import "pythia/lexer"

// Node is satisfied by every tree element: modules, statements,
// expressions, patterns, type parameters, and the small helper types
// (Arg, Keyword, Alias, …) that hang off of them.
type Node interface {
	GetSpan() lexer.Span
}

// ModNode is the root of a parsed unit (the "mod" family; the name Mod
// belongs to the modulo Operator). Only Module is ever produced by
// Parse; Interactive, Expression, and FunctionType exist so the
// unparser can round-trip ASTs built by hand or by other tools.
type ModNode interface {
	Node
	modNode()
}

// Stmt is any statement-level node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is any expression-level node.
type Expr interface {
	Node
	exprNode()
}

// Pattern is any match-statement pattern node.
type Pattern interface {
	Node
	patternNode()
}

// TypeParamNode is a generic type-parameter declaration: TypeVar,
// ParamSpec, or TypeVarTuple.
type TypeParamNode interface {
	Node
	typeParamNode()
}

// ExprContext marks whether a Name/Attribute/Subscript/Starred/List/Tuple
// occurrence is read, written, or deleted.
type ExprContext int

const (
	Load ExprContext = iota
	Store
	Del
)

func (c ExprContext) String() string {
	switch c {
	case Load:
		return "Load"
	case Store:
		return "Store"
	case Del:
		return "Del"
	default:
		return "Load"
	}
}

// Loc is embedded in every node to carry its source span, as a shared
// exported type rather than a `Span lexer.Span` field repeated in every
// struct, so other packages can set it in a struct literal:
// `ast.Name{Loc: ast.Loc{Span: s}, Id: "x"}`.
type Loc struct {
	Span lexer.Span
}

func (l Loc) GetSpan() lexer.Span { return l.Span }

func NewLoc(s lexer.Span) Loc { return Loc{Span: s} }
