package ast

// Operator enumerations. These mirror CPython's operator_ty/cmpop_ty/
// boolop_ty/unaryop_ty exactly, kind for kind, so a reader who knows the
// `ast` module recognizes every name.

type Operator int

const (
	Add Operator = iota
	Sub
	Mult
	MatMult
	Div
	Mod
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd
	FloorDiv
)

type UnaryOperator int

const (
	Invert UnaryOperator = iota
	Not
	UAdd
	USub
)

type CmpOp int

const (
	Eq CmpOp = iota
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

type BoolOperator int

const (
	And BoolOperator = iota
	Or
)

// binOpSymbols/unaryOpSymbols/cmpOpSymbols/boolOpSymbols are the single
// source of truth for both the parser (recognizing an operator token)
// and the unparser (printing one back out), so the two can never drift
// out of sync with each other.
var binOpSymbols = map[Operator]string{
	Add: "+", Sub: "-", Mult: "*", MatMult: "@", Div: "/", Mod: "%",
	Pow: "**", LShift: "<<", RShift: ">>", BitOr: "|", BitXor: "^",
	BitAnd: "&", FloorDiv: "//",
}

var unaryOpSymbols = map[UnaryOperator]string{
	Invert: "~", Not: "not ", UAdd: "+", USub: "-",
}

var cmpOpSymbols = map[CmpOp]string{
	Eq: "==", NotEq: "!=", Lt: "<", LtE: "<=", Gt: ">", GtE: ">=",
	Is: "is", IsNot: "is not", In: "in", NotIn: "not in",
}

var boolOpSymbols = map[BoolOperator]string{
	And: "and", Or: "or",
}

func (o Operator) Symbol() string      { return binOpSymbols[o] }
func (o UnaryOperator) Symbol() string { return unaryOpSymbols[o] }
func (o CmpOp) Symbol() string         { return cmpOpSymbols[o] }
func (o BoolOperator) Symbol() string  { return boolOpSymbols[o] }

// augAssignSymbols are the binOp-suffixed-with-'=' spellings AugAssign
// prints, keyed by the same Operator used for plain BinOp.
var augAssignSymbols = map[Operator]string{
	Add: "+=", Sub: "-=", Mult: "*=", MatMult: "@=", Div: "/=", Mod: "%=",
	Pow: "**=", LShift: "<<=", RShift: ">>=", BitOr: "|=", BitXor: "^=",
	BitAnd: "&=", FloorDiv: "//=",
}

func (o Operator) AugSymbol() string { return augAssignSymbols[o] }

// Conversion byte codes for FormattedValue.Conversion, matching
// CPython's ast.FormattedValue exactly (-1 means "no conversion").
const (
	ConversionNone = -1
	ConversionStr  = 's'
	ConversionRepr = 'r'
	ConversionAscii = 'a'
)
