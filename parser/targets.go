package parser

import (
	"fmt"

	"pythia/ast"
	"pythia/lexer"
)

// setContext rewrites target's (and, recursively, any nested target's)
// Ctx field to ctx, validating along the way that only assignable
// expression kinds appear: Name, Attribute, Subscript, Starred, List, or
// Tuple. Anything else — a Constant, a Call, a BinOp — raises a
// parse error naming the offending kind.
func (p *Parser) setContext(target ast.Expr, ctx ast.ExprContext) ast.Expr {
	switch t := target.(type) {
	case *ast.Name:
		t.Ctx = ctx
	case *ast.Attribute:
		t.Ctx = ctx
	case *ast.Subscript:
		t.Ctx = ctx
	case *ast.Starred:
		t.Ctx = ctx
		p.setContext(t.Value, ctx)
	case *ast.List:
		t.Ctx = ctx
		for _, e := range t.Elts {
			p.setContext(e, ctx)
		}
	case *ast.Tuple:
		t.Ctx = ctx
		for _, e := range t.Elts {
			p.setContext(e, ctx)
		}
	default:
		p.failTarget(target)
	}
	return target
}

func (p *Parser) failTarget(target ast.Expr) {
	start := target.GetSpan().Start
	tok := lexer.Token{Span: lexer.Span{Start: start, End: target.GetSpan().End}}
	p.fail(tok, fmt.Sprintf("cannot assign to %T", target))
}

// targetList parses a `for`-clause or comprehension target: a single
// target, or a bare comma-separated list of targets collapsed into one
// Tuple, always rewritten to Store context.
func (p *Parser) targetList() ast.Expr {
	first := p.targetAtom()
	if !p.check(lexer.Comma) {
		return p.setContext(first, ast.Store)
	}
	elts := []ast.Expr{first}
	for p.match(lexer.Comma) {
		if p.check(lexer.In) {
			break
		}
		elts = append(elts, p.targetAtom())
	}
	tuple := &ast.Tuple{Loc: ast.NewLoc(exprSpan(elts[0], elts[len(elts)-1])), Elts: elts, Ctx: ast.Store}
	return p.setContext(tuple, ast.Store)
}

// targetAtom parses one target in a for-clause target list: a primary
// expression, a starred target, or a parenthesized/bracketed sub-list.
func (p *Parser) targetAtom() ast.Expr {
	if p.match(lexer.Star) {
		star := p.previous()
		value := p.targetAtom()
		return &ast.Starred{Loc: ast.NewLoc(span(star.Start(), value.GetSpan().End)), Value: value, Ctx: ast.Store}
	}
	return p.primary()
}
