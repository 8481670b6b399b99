package ast

import "iter"

// Walk returns a lazy pre-order iterator over node and every node in its
// subtree, itself included first. Because it's built on range-over-func
// recursion instead of collecting into a slice, stopping early (a
// `break` in the consuming `for … range`) costs nothing beyond the
// frames already on the stack.
func Walk(node Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		walk1(node, yield)
	}
}

func walk1(node Node, yield func(Node) bool) bool {
	if node == nil || isNilNode(node) {
		return true
	}
	if !yield(node) {
		return false
	}
	for child := range Children(node) {
		if !walk1(child, yield) {
			return false
		}
	}
	return true
}

// Children returns a lazy iterator over every node directly contained in
// node — one level of any slice field is unwrapped, so a statement list
// yields each statement rather than the list itself.
func Children(node Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, v := range fieldValues(node) {
			if !emitChildren(v, yield) {
				return
			}
		}
	}
}

// emitChildren recognizes the handful of shapes a field value can take
// (a single Node-ish value, a slice of them, or something with no
// child nodes) and yields accordingly.
func emitChildren(v any, yield func(Node) bool) bool {
	switch val := v.(type) {
	case Stmt:
		return yieldIfPresent(val, yield)
	case Expr:
		return yieldIfPresent(val, yield)
	case Pattern:
		return yieldIfPresent(val, yield)
	case TypeParamNode:
		return yieldIfPresent(val, yield)
	case ModNode:
		return yieldIfPresent(val, yield)
	case *Arg:
		if val == nil {
			return true
		}
		return yield(val)
	case *Arguments:
		if val == nil {
			return true
		}
		return emitArguments(val, yield)
	case *Keyword:
		if val == nil {
			return true
		}
		return yield(val)
	case *Alias:
		if val == nil {
			return true
		}
		return yield(val)
	case *WithItem:
		if val == nil {
			return true
		}
		if !emitChildren(val.ContextExpr, yield) {
			return false
		}
		if val.OptionalVars != nil {
			return emitChildren(val.OptionalVars, yield)
		}
		return true
	case *MatchCase:
		if val == nil {
			return true
		}
		if !yield(val.Pattern) {
			return false
		}
		if val.Guard != nil && !emitChildren(val.Guard, yield) {
			return false
		}
		return emitChildren(val.Body, yield)
	case *Comprehension:
		if val == nil {
			return true
		}
		if !emitChildren(val.Target, yield) || !emitChildren(val.Iter, yield) {
			return false
		}
		return emitChildren(val.Ifs, yield)
	case *ExceptHandler:
		if val == nil {
			return true
		}
		return yield(val)
	case []Stmt:
		for _, s := range val {
			if !yieldIfPresent(s, yield) {
				return false
			}
		}
	case []Expr:
		for _, e := range val {
			if !yieldIfPresent(e, yield) {
				return false
			}
		}
	case []*Arg:
		for _, a := range val {
			if a != nil && !yield(a) {
				return false
			}
		}
	case []*Keyword:
		for _, k := range val {
			if k != nil && !yield(k) {
				return false
			}
		}
	case []*Alias:
		for _, a := range val {
			if a != nil && !yield(a) {
				return false
			}
		}
	case []*WithItem:
		for _, w := range val {
			if !emitChildren(w, yield) {
				return false
			}
		}
	case []*MatchCase:
		for _, c := range val {
			if !emitChildren(c, yield) {
				return false
			}
		}
	case []*Comprehension:
		for _, c := range val {
			if !emitChildren(c, yield) {
				return false
			}
		}
	case []*ExceptHandler:
		for _, h := range val {
			if h != nil && !yield(h) {
				return false
			}
		}
	case []Pattern:
		for _, p := range val {
			if !yieldIfPresent(p, yield) {
				return false
			}
		}
	case []TypeParamNode:
		for _, tp := range val {
			if !yieldIfPresent(tp, yield) {
				return false
			}
		}
	case []CmpOp, []string, string, int, bool, ExprContext, Operator, UnaryOperator, BoolOperator, any:
		// leaf data, no child nodes
	}
	return true
}

func emitArguments(a *Arguments, yield func(Node) bool) bool {
	groups := [][]*Arg{a.PosOnlyArgs, a.Args, a.KwOnlyArgs}
	for _, g := range groups {
		for _, arg := range g {
			if arg != nil && !yield(arg) {
				return false
			}
		}
	}
	if a.Vararg != nil && !yield(a.Vararg) {
		return false
	}
	if a.Kwarg != nil && !yield(a.Kwarg) {
		return false
	}
	for _, d := range a.Defaults {
		if !yieldIfPresent(d, yield) {
			return false
		}
	}
	for _, d := range a.KwDefaults {
		if d != nil && !yieldIfPresent(d, yield) {
			return false
		}
	}
	return true
}

func yieldIfPresent[T Node](v T, yield func(Node) bool) bool {
	if isNilNode(v) {
		return true
	}
	return yield(v)
}

// isNilNode reports whether a Node-typed interface value wraps a nil
// pointer, which happens constantly here (an unset `Value Expr` field is
// a nil `*Name`/`*Call`/… wrapped in a non-nil Expr interface value).
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *FunctionDef:
		return v == nil
	case *AsyncFunctionDef:
		return v == nil
	case *ClassDef:
		return v == nil
	case *Return:
		return v == nil
	case *Delete:
		return v == nil
	case *Assign:
		return v == nil
	case *AugAssign:
		return v == nil
	case *AnnAssign:
		return v == nil
	case *TypeAlias:
		return v == nil
	case *For:
		return v == nil
	case *AsyncFor:
		return v == nil
	case *While:
		return v == nil
	case *If:
		return v == nil
	case *With:
		return v == nil
	case *AsyncWith:
		return v == nil
	case *Try:
		return v == nil
	case *TryStar:
		return v == nil
	case *Assert:
		return v == nil
	case *Import:
		return v == nil
	case *ImportFrom:
		return v == nil
	case *Global:
		return v == nil
	case *Nonlocal:
		return v == nil
	case *Raise:
		return v == nil
	case *ExprStmt:
		return v == nil
	case *Pass:
		return v == nil
	case *Break:
		return v == nil
	case *Continue:
		return v == nil
	case *Match:
		return v == nil
	case *Comment:
		return v == nil
	case *BoolOp:
		return v == nil
	case *NamedExpr:
		return v == nil
	case *BinOp:
		return v == nil
	case *UnaryOp:
		return v == nil
	case *Lambda:
		return v == nil
	case *IfExp:
		return v == nil
	case *Dict:
		return v == nil
	case *Set:
		return v == nil
	case *ListComp:
		return v == nil
	case *SetComp:
		return v == nil
	case *DictComp:
		return v == nil
	case *GeneratorExp:
		return v == nil
	case *Await:
		return v == nil
	case *Yield:
		return v == nil
	case *YieldFrom:
		return v == nil
	case *Compare:
		return v == nil
	case *Call:
		return v == nil
	case *FormattedValue:
		return v == nil
	case *JoinedStr:
		return v == nil
	case *Constant:
		return v == nil
	case *Attribute:
		return v == nil
	case *Subscript:
		return v == nil
	case *Starred:
		return v == nil
	case *Name:
		return v == nil
	case *List:
		return v == nil
	case *Tuple:
		return v == nil
	case *Slice:
		return v == nil
	case *MatchValue:
		return v == nil
	case *MatchSingleton:
		return v == nil
	case *MatchSequence:
		return v == nil
	case *MatchMapping:
		return v == nil
	case *MatchClass:
		return v == nil
	case *MatchStar:
		return v == nil
	case *MatchAs:
		return v == nil
	case *MatchOr:
		return v == nil
	case *TypeVar:
		return v == nil
	case *ParamSpec:
		return v == nil
	case *TypeVarTuple:
		return v == nil
	default:
		return n == nil
	}
}

// Docstring returns the string value of the first statement of a
// module/function/class when that statement is a bare string-constant
// expression statement, and false otherwise.
func Docstring(node Node) (string, bool) {
	var body []Stmt
	switch n := node.(type) {
	case *Module:
		body = n.Body
	case *FunctionDef:
		body = n.Body
	case *AsyncFunctionDef:
		body = n.Body
	case *ClassDef:
		body = n.Body
	default:
		return "", false
	}
	if len(body) == 0 {
		return "", false
	}
	es, ok := body[0].(*ExprStmt)
	if !ok {
		return "", false
	}
	c, ok := es.Value.(*Constant)
	if !ok {
		return "", false
	}
	s, ok := c.Value.(string)
	return s, ok
}
