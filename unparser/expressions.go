package unparser

import (
	"fmt"
	"strconv"
	"strings"

	"pythia/ast"
)

// precedence mirrors the table in the parser's expression grammar
// (lowest first), so the two stay readable side by side even though
// they're never consulted directly by one another.
type precedence int

const (
	precTuple precedence = iota
	precYield
	precTest // lambda, ifexp
	precOr
	precAnd
	precNot
	precCmp
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precArith  // binary + -
	precTerm   // * / // % @
	precFactor // unary + - ~
	precPower
	precAwait
	precAtom
)

var binOpPrec = map[ast.Operator]precedence{
	ast.BitOr:    precBitOr,
	ast.BitXor:   precBitXor,
	ast.BitAnd:   precBitAnd,
	ast.LShift:   precShift,
	ast.RShift:   precShift,
	ast.Add:      precArith,
	ast.Sub:      precArith,
	ast.Mult:     precTerm,
	ast.MatMult:  precTerm,
	ast.Div:      precTerm,
	ast.Mod:      precTerm,
	ast.FloorDiv: precTerm,
	ast.Pow:      precPower,
}

// expr prints e, wrapping it in parentheses if its own precedence is
// lower than required.
func (u *Unparser) expr(e ast.Expr, required precedence) {
	if e == nil {
		u.out.WriteString("?")
		return
	}
	own, write := u.exprPrec(e)
	if own < required {
		u.out.WriteString("(")
		write()
		u.out.WriteString(")")
		return
	}
	write()
}

// exprPrec returns e's own precedence and a thunk that prints it with no
// surrounding parentheses of its own (callers add those).
func (u *Unparser) exprPrec(e ast.Expr) (precedence, func()) {
	switch n := e.(type) {
	case *ast.BoolOp:
		p := precOr
		kw := " or "
		if n.Op == ast.And {
			p = precAnd
			kw = " and "
		}
		return p, func() {
			for i, v := range n.Values {
				if i > 0 {
					u.out.WriteString(kw)
				}
				u.expr(v, p+1)
			}
		}
	case *ast.NamedExpr:
		return precTest, func() {
			u.expr(n.Target, precAtom)
			u.out.WriteString(" := ")
			u.expr(n.Value, precTest)
		}
	case *ast.BinOp:
		// Left-associative operators admit a same-precedence left operand
		// without parens (`a - b - c` prints flat); the right operand
		// always needs strictly higher precedence to preserve grouping.
		// `**` is the one right-associative operator, so its rule is
		// flipped.
		p := binOpPrec[n.Op]
		left, right := p, p+1
		if n.Op == ast.Pow {
			left, right = p+1, p
		}
		return p, func() {
			u.expr(n.Left, left)
			u.out.WriteString(" " + n.Op.Symbol() + " ")
			u.expr(n.Right, right)
		}
	case *ast.UnaryOp:
		p := precFactor
		if n.Op == ast.Not {
			p = precNot
		}
		return p, func() {
			u.out.WriteString(n.Op.Symbol())
			u.expr(n.Operand, p)
		}
	case *ast.Lambda:
		return precTest, func() {
			u.out.WriteString("lambda")
			if hasAnyParams(n.Args) {
				u.out.WriteString(" ")
				u.parameterList(n.Args, false)
			}
			u.out.WriteString(": ")
			u.expr(n.Body, precTest)
		}
	case *ast.IfExp:
		// body/test sit at or_test level in CPython's grammar (one above
		// ternary); orelse is the recursive `test` production itself, so
		// a chained `a if b else c if d else e` needs no parens on the
		// right.
		return precTest, func() {
			u.expr(n.Body, precOr)
			u.out.WriteString(" if ")
			u.expr(n.Test, precOr)
			u.out.WriteString(" else ")
			u.expr(n.Orelse, precTest)
		}
	case *ast.Dict:
		return precAtom, func() {
			u.out.WriteString("{")
			for i := range n.Keys {
				if i > 0 {
					u.out.WriteString(", ")
				}
				if n.Keys[i] == nil {
					u.out.WriteString("**")
					u.expr(n.Values[i], precOr+1)
					continue
				}
				u.expr(n.Keys[i], precTest+1)
				u.out.WriteString(": ")
				u.expr(n.Values[i], precTest+1)
			}
			u.out.WriteString("}")
		}
	case *ast.Set:
		return precAtom, func() {
			u.out.WriteString("{")
			u.exprList(n.Elts)
			u.out.WriteString("}")
		}
	case *ast.ListComp:
		return precAtom, func() {
			u.out.WriteString("[")
			u.expr(n.Elt, precTest+1)
			u.comprehensions(n.Generators)
			u.out.WriteString("]")
		}
	case *ast.SetComp:
		return precAtom, func() {
			u.out.WriteString("{")
			u.expr(n.Elt, precTest+1)
			u.comprehensions(n.Generators)
			u.out.WriteString("}")
		}
	case *ast.DictComp:
		return precAtom, func() {
			u.out.WriteString("{")
			u.expr(n.Key, precTest+1)
			u.out.WriteString(": ")
			u.expr(n.Value, precTest+1)
			u.comprehensions(n.Generators)
			u.out.WriteString("}")
		}
	case *ast.GeneratorExp:
		return precAtom, func() {
			u.out.WriteString("(")
			u.expr(n.Elt, precTest+1)
			u.comprehensions(n.Generators)
			u.out.WriteString(")")
		}
	case *ast.Await:
		return precAwait, func() {
			u.out.WriteString("await ")
			u.expr(n.Value, precAtom)
		}
	case *ast.Yield:
		return precYield, func() {
			u.out.WriteString("yield")
			if n.Value != nil {
				u.out.WriteString(" ")
				u.expr(n.Value, precTest)
			}
		}
	case *ast.YieldFrom:
		return precYield, func() {
			u.out.WriteString("yield from ")
			u.expr(n.Value, precTest)
		}
	case *ast.Compare:
		return precCmp, func() {
			u.expr(n.Left, precCmp+1)
			for i, op := range n.Ops {
				u.out.WriteString(" " + op.Symbol() + " ")
				u.expr(n.Comparators[i], precCmp+1)
			}
		}
	case *ast.Call:
		return precAtom, func() {
			u.expr(n.Func, precAtom)
			u.out.WriteString("(")
			u.callArgs(n)
			u.out.WriteString(")")
		}
	case *ast.FormattedValue:
		return precAtom, func() { u.formattedValue(n) }
	case *ast.JoinedStr:
		return precAtom, func() { u.joinedStr(n) }
	case *ast.Constant:
		return precAtom, func() { u.constant(n) }
	case *ast.Attribute:
		return precAtom, func() {
			u.expr(n.Value, precAtom)
			u.out.WriteString("." + n.Attr)
		}
	case *ast.Subscript:
		return precAtom, func() {
			u.expr(n.Value, precAtom)
			u.out.WriteString("[")
			u.sliceExpr(n.Slice)
			u.out.WriteString("]")
		}
	case *ast.Starred:
		return precAtom, func() {
			u.out.WriteString("*")
			u.expr(n.Value, precAtom)
		}
	case *ast.Name:
		return precAtom, func() { u.out.WriteString(n.Id) }
	case *ast.List:
		return precAtom, func() {
			u.out.WriteString("[")
			u.exprList(n.Elts)
			u.out.WriteString("]")
		}
	case *ast.Tuple:
		return precAtom, func() { u.tuple(n, true) }
	case *ast.Slice:
		return precAtom, func() { u.sliceExpr(n) }
	default:
		return precAtom, func() { u.out.WriteString("?") }
	}
}

// tuple prints a Tuple's elements comma-joined, parenthesized unless
// parens is false (the bare form used directly inside a subscript).
func (u *Unparser) tuple(n *ast.Tuple, parens bool) {
	if parens {
		u.out.WriteString("(")
	}
	u.exprList(n.Elts)
	if len(n.Elts) == 1 {
		u.out.WriteString(",")
	}
	if parens {
		u.out.WriteString(")")
	}
}

func (u *Unparser) exprList(elts []ast.Expr) {
	for i, e := range elts {
		if i > 0 {
			u.out.WriteString(", ")
		}
		u.expr(e, precTest+1)
	}
}

// sliceExpr prints a subscript's slice operand. A bare Tuple drops its
// surrounding parentheses here; a *Slice prints lower:upper:step.
func (u *Unparser) sliceExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Tuple:
		u.tuple(n, false)
	case *ast.Slice:
		if n.Lower != nil {
			u.expr(n.Lower, precTest+1)
		}
		u.out.WriteString(":")
		if n.Upper != nil {
			u.expr(n.Upper, precTest+1)
		}
		if n.Step != nil {
			u.out.WriteString(":")
			u.expr(n.Step, precTest+1)
		}
	default:
		u.expr(e, precTest+1)
	}
}

func (u *Unparser) comprehensions(gens []*ast.Comprehension) {
	for _, g := range gens {
		if g.IsAsync {
			u.out.WriteString(" async for ")
		} else {
			u.out.WriteString(" for ")
		}
		u.expr(g.Target, precTest+1)
		u.out.WriteString(" in ")
		u.expr(g.Iter, precTest+1)
		for _, cond := range g.Ifs {
			u.out.WriteString(" if ")
			u.expr(cond, precTest+1)
		}
	}
}

// callArgs prints a Call's argument list: positional args in source
// order (Starred prints as *arg inline), then keyword args and **kwarg
// splats (Keyword with Arg == "").
func (u *Unparser) callArgs(n *ast.Call) {
	wrote := false
	for _, a := range n.Args {
		if wrote {
			u.out.WriteString(", ")
		}
		u.expr(a, precTest+1)
		wrote = true
	}
	for _, kw := range n.Keywords {
		if wrote {
			u.out.WriteString(", ")
		}
		if kw.Arg == "" {
			u.out.WriteString("**")
		} else {
			u.out.WriteString(kw.Arg + "=")
		}
		u.expr(kw.Value, precTest+1)
		wrote = true
	}
}

func hasAnyParams(a *ast.Arguments) bool {
	if a == nil {
		return false
	}
	return len(a.PosOnlyArgs) > 0 || len(a.Args) > 0 || a.Vararg != nil ||
		len(a.KwOnlyArgs) > 0 || a.Kwarg != nil
}

// parameterList prints a function or lambda's formal parameters,
// including the positional-only '/' marker and keyword-only section.
// Defaults align to the rightmost entries of PosOnlyArgs++Args, matching
// how Arguments is documented in ast.
func (u *Unparser) parameterList(a *ast.Arguments, annotations bool) {
	if a == nil {
		return
	}
	all := append(append([]*ast.Arg{}, a.PosOnlyArgs...), a.Args...)
	firstDefault := len(all) - len(a.Defaults)

	wrote := false
	comma := func() {
		if wrote {
			u.out.WriteString(", ")
		}
		wrote = true
	}

	for i, arg := range all {
		comma()
		u.parameter(arg, annotations)
		if i >= firstDefault {
			u.out.WriteString("=")
			u.expr(a.Defaults[i-firstDefault], precTest+1)
		}
		if i == len(a.PosOnlyArgs)-1 {
			u.out.WriteString(", /")
		}
	}

	if len(a.KwOnlyArgs) > 0 || a.Vararg != nil {
		comma()
		if a.Vararg != nil {
			u.out.WriteString("*")
			u.parameter(a.Vararg, annotations)
		} else {
			u.out.WriteString("*")
		}
	}

	for i, arg := range a.KwOnlyArgs {
		comma()
		u.parameter(arg, annotations)
		if def := a.KwDefaults[i]; def != nil {
			u.out.WriteString("=")
			u.expr(def, precTest+1)
		}
	}

	if a.Kwarg != nil {
		comma()
		u.out.WriteString("**")
		u.parameter(a.Kwarg, annotations)
	}
}

func (u *Unparser) parameter(arg *ast.Arg, annotations bool) {
	u.out.WriteString(arg.Arg)
	if annotations && arg.Annotation != nil {
		u.out.WriteString(": ")
		u.expr(arg.Annotation, precTest+1)
	}
}

func (u *Unparser) constant(n *ast.Constant) {
	switch v := n.Value.(type) {
	case nil:
		u.out.WriteString("None")
	case bool:
		if v {
			u.out.WriteString("True")
		} else {
			u.out.WriteString("False")
		}
	case ast.Ellipsis:
		u.out.WriteString("...")
	case string:
		u.writeString(v, n.Kind, false)
	case []byte:
		u.writeString(string(v), n.Kind, true)
	case int64:
		fmt.Fprintf(&u.out, "%d", v)
	case float64:
		u.out.WriteString(formatFloat(v))
	case complex128:
		u.out.WriteString(formatComplex(v))
	default:
		fmt.Fprintf(&u.out, "%v", v)
	}
}

// formatFloat renders v so it always re-lexes as a float literal rather
// than an int: strconv's shortest representation drops the fractional
// part for a whole number like 3.0, which would silently change the
// constant's type on a parse/unparse round trip.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && !strings.Contains(s, "NaN") {
		s += ".0"
	}
	return s
}

// formatComplex renders an imaginary Constant. The parser only ever
// produces a pure-imaginary complex128 (Python has no literal for a
// complex number with both parts; `1+2j` parses as a BinOp), but a
// non-zero real part is still rendered as a valid, re-parseable
// parenthesized sum rather than Go's "(a+bi)" syntax.
func formatComplex(v complex128) string {
	re, im := real(v), imag(v)
	if re == 0 {
		return formatFloat(im) + "j"
	}
	if im < 0 {
		return "(" + formatFloat(re) + formatFloat(im) + "j)"
	}
	return "(" + formatFloat(re) + "+" + formatFloat(im) + "j)"
}

// writeString reproduces a string or bytes literal using its stored
// quote style, falling back to a plain double-quoted form when Kind is
// empty (a node built by hand rather than by the parser).
func (u *Unparser) writeString(s, kind string, isBytes bool) {
	prefix, quote, triple := decodeKind(kind)
	if isBytes && !strings.ContainsAny(prefix, "bB") {
		prefix = "b" + prefix
	}
	u.out.WriteString(prefix)
	q := quote
	if triple {
		q = strings.Repeat(quote, 3)
	}
	u.out.WriteString(q)
	u.out.WriteString(escapeStringBody(s, quote, triple))
	u.out.WriteString(q)
}

// decodeKind splits a Constant/JoinedStr Kind like `rb"""` into its
// prefix letters, its quote character, and whether it was triple-quoted.
// An empty or malformed kind falls back to a plain double quote.
func decodeKind(kind string) (prefix, quote string, triple bool) {
	quote = `"`
	if kind == "" {
		return "", quote, false
	}
	i := 0
	for i < len(kind) && kind[i] != '\'' && kind[i] != '"' {
		i++
	}
	prefix = kind[:i]
	rest := kind[i:]
	if rest == "" {
		return prefix, quote, false
	}
	quote = rest[:1]
	triple = strings.HasPrefix(rest, quote+quote+quote)
	return prefix, quote, triple
}

func escapeStringBody(s, quote string, triple bool) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			if triple {
				b.WriteRune('\n')
			} else {
				b.WriteString(`\n`)
			}
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if string(r) == quote && !triple {
				b.WriteString(`\`)
				b.WriteRune(r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func (u *Unparser) joinedStr(n *ast.JoinedStr) {
	prefix, quote, triple := decodeKind(n.Kind)
	q := quote
	if triple {
		q = strings.Repeat(quote, 3)
	}
	u.out.WriteString("f" + prefix)
	u.out.WriteString(q)
	for _, v := range n.Values {
		switch piece := v.(type) {
		case *ast.Constant:
			s, _ := piece.Value.(string)
			u.out.WriteString(escapeFStringLiteral(s, quote, triple))
		case *ast.FormattedValue:
			u.formattedValue(piece)
		default:
			u.expr(v, precTest+1)
		}
	}
	u.out.WriteString(q)
}

func escapeFStringLiteral(s, quote string, triple bool) string {
	s = strings.ReplaceAll(s, "{", "{{")
	s = strings.ReplaceAll(s, "}", "}}")
	return escapeStringBody(s, quote, triple)
}

func (u *Unparser) formattedValue(n *ast.FormattedValue) {
	u.out.WriteString("{")
	u.expr(n.Value, precTest+1)
	switch n.Conversion {
	case ast.ConversionStr:
		u.out.WriteString("!s")
	case ast.ConversionRepr:
		u.out.WriteString("!r")
	case ast.ConversionAscii:
		u.out.WriteString("!a")
	}
	if n.FormatSpec != nil {
		u.out.WriteString(":")
		if spec, ok := n.FormatSpec.(*ast.JoinedStr); ok {
			for _, v := range spec.Values {
				switch piece := v.(type) {
				case *ast.Constant:
					s, _ := piece.Value.(string)
					u.out.WriteString(s)
				case *ast.FormattedValue:
					u.formattedValue(piece)
				}
			}
		} else {
			u.expr(n.FormatSpec, precTest+1)
		}
	}
	u.out.WriteString("}")
}
