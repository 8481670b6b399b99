package parser

import (
	"pythia/ast"
	"pythia/lexer"
)

// parameterList parses a function's formal parameter list, including
// the positional-only '/' marker, *args, keyword-only
// parameters, and **kwargs. allowAnnotations is false for lambda, which
// never allows `: annotation` on its parameters or the '/' marker.
func (p *Parser) parameterList(allowAnnotations bool) *ast.Arguments {
	args := &ast.Arguments{}
	seenStar := false

	for !p.atParameterListEnd() {
		switch {
		case allowAnnotations && p.match(lexer.Slash):
			// Everything seen so far was positional-only.
			args.PosOnlyArgs = args.Args
			args.Args = nil
		case p.match(lexer.StarStar):
			args.Kwarg = p.parameter(allowAnnotations)
		case p.match(lexer.Star):
			seenStar = true
			if p.check(lexer.Identifier) {
				args.Vararg = p.parameter(allowAnnotations)
			}
		default:
			arg := p.parameter(allowAnnotations)
			var def ast.Expr
			if p.match(lexer.Equal) {
				def = p.expression()
			}
			switch {
			case seenStar:
				args.KwOnlyArgs = append(args.KwOnlyArgs, arg)
				args.KwDefaults = append(args.KwDefaults, def)
			default:
				args.Args = append(args.Args, arg)
				if def != nil {
					args.Defaults = append(args.Defaults, def)
				}
			}
		}
		if !p.match(lexer.Comma) {
			break
		}
	}
	return args
}

func (p *Parser) atParameterListEnd() bool {
	switch p.peek().Type {
	case lexer.RightParen, lexer.Colon, lexer.Newline, lexer.EOF:
		return true
	}
	return false
}

func (p *Parser) parameter(allowAnnotations bool) *ast.Arg {
	name := p.consume(lexer.Identifier, "expected parameter name")
	arg := &ast.Arg{Loc: ast.NewLoc(name.Span), Arg: name.Lexeme}
	if allowAnnotations && p.match(lexer.Colon) {
		arg.Annotation = p.expression()
		arg.Loc = ast.NewLoc(span(name.Start(), arg.Annotation.GetSpan().End))
	}
	return arg
}
