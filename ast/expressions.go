package ast

import (
	"fmt"
	"pythia/lexer"
)

type BoolOp struct {
	Loc
	Op     BoolOperator
	Values []Expr
}

func (b *BoolOp) exprNode() {}

// NamedExpr is the walrus operator: `target := value`.
type NamedExpr struct {
	Loc
	Target Expr
	Value  Expr
}

func (n *NamedExpr) exprNode() {}

type BinOp struct {
	Loc
	Left  Expr
	Op    Operator
	Right Expr
}

func (b *BinOp) exprNode() {}

func (b *BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op.Symbol(), b.Right)
}

type UnaryOp struct {
	Loc
	Op      UnaryOperator
	Operand Expr
}

func (u *UnaryOp) exprNode() {}

// Lambda shares Arguments with FunctionDef, but the grammar that builds
// it never allows annotations or positional-only markers.
type Lambda struct {
	Loc
	Args *Arguments
	Body Expr
}

func (l *Lambda) exprNode() {}

type IfExp struct {
	Loc
	Test   Expr
	Body   Expr
	Orelse Expr
}

func (i *IfExp) exprNode() {}

// Dict holds parallel Keys/Values slices. A nil entry in Keys at index i
// means Values[i] is a `**mapping` unpack, not a key: value pair.
type Dict struct {
	Loc
	Keys   []Expr
	Values []Expr
}

func (d *Dict) exprNode() {}

type Set struct {
	Loc
	Elts []Expr
}

func (s *Set) exprNode() {}

type ListComp struct {
	Loc
	Elt    Expr
	Generators []*Comprehension
}

func (l *ListComp) exprNode() {}

type SetComp struct {
	Loc
	Elt        Expr
	Generators []*Comprehension
}

func (s *SetComp) exprNode() {}

type DictComp struct {
	Loc
	Key        Expr
	Value      Expr
	Generators []*Comprehension
}

func (d *DictComp) exprNode() {}

type GeneratorExp struct {
	Loc
	Elt        Expr
	Generators []*Comprehension
}

func (g *GeneratorExp) exprNode() {}

type Await struct {
	Loc
	Value Expr
}

func (a *Await) exprNode() {}

type Yield struct {
	Loc
	Value Expr // nil for a bare `yield`
}

func (y *Yield) exprNode() {}

type YieldFrom struct {
	Loc
	Value Expr
}

func (y *YieldFrom) exprNode() {}

// Compare is a (possibly chained) comparison: `left Ops[0] Comparators[0]
// Ops[1] Comparators[1] ...`. len(Ops) == len(Comparators) always.
type Compare struct {
	Loc
	Left        Expr
	Ops         []CmpOp
	Comparators []Expr
}

func (c *Compare) exprNode() {}

type Call struct {
	Loc
	Func     Expr
	Args     []Expr
	Keywords []*Keyword
}

func (c *Call) exprNode() {}

// FormattedValue is one `{expr[!conv][:format_spec]}` replacement field
// inside a JoinedStr. Conversion is ConversionNone unless `!s`/`!r`/`!a`
// was present.
type FormattedValue struct {
	Loc
	Value      Expr
	Conversion int
	FormatSpec Expr // nil, or a *JoinedStr
}

func (f *FormattedValue) exprNode() {}

// JoinedStr is an f-string: a sequence of Constant (string) and
// FormattedValue fragments. Kind preserves the original quote/prefix
// style so the unparser can reproduce it exactly; the 'f' prefix letter
// itself is left out, since the node kind already implies it.
type JoinedStr struct {
	Loc
	Values []Expr
	Kind   string
}

func (j *JoinedStr) exprNode() {}

// Constant is every literal: numbers, strings, bytes, True/False/None,
// and Ellipsis. Kind records the original quote style for strings (e.g.
// `'`, `"`, `'''`, `"""`, with an `r`/`b`/`u` prefix marker) so the
// unparser reproduces the source form rather than a canonical one.
type Constant struct {
	Loc
	Value any
	Kind  string
}

func (c *Constant) exprNode() {}

// Ellipsis is Constant.Value's type for a bare `...` literal.
type Ellipsis struct{}

func (c *Constant) String() string {
	return fmt.Sprintf("%v", c.Value)
}

type Attribute struct {
	Loc
	Value Expr
	Attr  string
	Ctx   ExprContext
}

func (a *Attribute) exprNode() {}

type Subscript struct {
	Loc
	Value Expr
	Slice Expr // an ordinary Expr, a *Slice, or a Tuple of slices
	Ctx   ExprContext
}

func (s *Subscript) exprNode() {}

type Starred struct {
	Loc
	Value Expr
	Ctx   ExprContext
}

func (s *Starred) exprNode() {}

type Name struct {
	Loc
	Id  string
	Ctx ExprContext
}

func (n *Name) exprNode() {}

func (n *Name) String() string { return n.Id }

func NewName(id string, ctx ExprContext, s lexer.Span) *Name {
	return &Name{Loc: NewLoc(s), Id: id, Ctx: ctx}
}

type List struct {
	Loc
	Elts []Expr
	Ctx  ExprContext
}

func (l *List) exprNode() {}

type Tuple struct {
	Loc
	Elts []Expr
	Ctx  ExprContext
}

func (t *Tuple) exprNode() {}

// Slice is a `lower:upper:step` subscript component; any of the three
// may be nil.
type Slice struct {
	Loc
	Lower Expr
	Upper Expr
	Step  Expr
}

func (s *Slice) exprNode() {}
