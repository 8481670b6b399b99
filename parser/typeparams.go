package parser

import (
	"pythia/ast"
	"pythia/lexer"
)

// typeParamList parses a PEP 695 `[T, *Ts, **P, U: bound, V = default]`
// type-parameter list, used after a function, class, or `type` alias
// name. Returns nil if no '[' follows.
func (p *Parser) typeParamList() []ast.TypeParamNode {
	if !p.check(lexer.LeftBracket) {
		return nil
	}
	p.advance()
	var params []ast.TypeParamNode
	for !p.check(lexer.RightBracket) {
		switch {
		case p.match(lexer.StarStar):
			name := p.consume(lexer.Identifier, "expected type parameter name")
			spec := &ast.ParamSpec{Loc: ast.NewLoc(name.Span), Name: name.Lexeme}
			if p.match(lexer.Equal) {
				spec.Default = p.expression()
			}
			params = append(params, spec)
		case p.match(lexer.Star):
			name := p.consume(lexer.Identifier, "expected type parameter name")
			tup := &ast.TypeVarTuple{Loc: ast.NewLoc(name.Span), Name: name.Lexeme}
			if p.match(lexer.Equal) {
				tup.Default = p.expression()
			}
			params = append(params, tup)
		default:
			name := p.consume(lexer.Identifier, "expected type parameter name")
			tv := &ast.TypeVar{Loc: ast.NewLoc(name.Span), Name: name.Lexeme}
			if p.match(lexer.Colon) {
				tv.Bound = p.expression()
			}
			if p.match(lexer.Equal) {
				tv.Default = p.expression()
			}
			params = append(params, tv)
		}
		if !p.match(lexer.Comma) {
			break
		}
	}
	p.consume(lexer.RightBracket, "expected ']' after type parameter list")
	return params
}
