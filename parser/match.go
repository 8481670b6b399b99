package parser

import (
	"pythia/ast"
	"pythia/lexer"
)

// matchStatement parses a PEP 634 `match subject: case pattern: ...`
// statement. Unlike most compound statements, its suite must be
// multi-line (a bare `match x: case 1: pass` on one line isn't legal
// Python), so it parses its own NEWLINE INDENT ... DEDENT directly
// instead of going through suite().
func (p *Parser) matchStatement() ast.Stmt {
	start := p.advance() // 'match' (soft keyword)
	subject := p.subjectExpr()
	p.consume(lexer.Colon, "expected ':' after match subject")
	p.consume(lexer.Newline, "expected newline after match subject")
	p.skipNewlines()
	p.skipComments()
	p.consume(lexer.Indent, "expected indented block of case clauses")

	var cases []*ast.MatchCase
	p.skipComments()
	for p.check(lexer.Identifier) && p.peek().Lexeme == "case" {
		cases = append(cases, p.caseClause())
		p.skipComments()
	}
	end := p.previous().End()
	p.consume(lexer.Dedent, "expected dedent at end of match statement")

	return &ast.Match{Loc: ast.NewLoc(span(start.Start(), end)), Subject: subject, Cases: cases}
}

// subjectExpr parses a match statement's subject: a star-expression
// list collapsed to a tuple when more than one is given, matching
// CPython's `subject_expr` grammar rule.
func (p *Parser) subjectExpr() ast.Expr {
	first := p.starNamedExpression()
	if !p.check(lexer.Comma) {
		return first
	}
	elts := []ast.Expr{first}
	for p.match(lexer.Comma) {
		if p.check(lexer.Colon) {
			break
		}
		elts = append(elts, p.starNamedExpression())
	}
	return &ast.Tuple{Loc: ast.NewLoc(exprSpan(elts[0], elts[len(elts)-1])), Elts: elts, Ctx: ast.Load}
}

func (p *Parser) caseClause() *ast.MatchCase {
	p.advance() // 'case'
	pattern := p.patterns()
	var guard ast.Expr
	if p.match(lexer.If) {
		guard = p.namedExpression()
	}
	body := p.suite()
	return &ast.MatchCase{Pattern: pattern, Guard: guard, Body: body}
}

// patterns parses the top of the pattern grammar: an or-pattern,
// possibly comma-joined into an implicit sequence pattern, possibly
// bound with 'as'.
func (p *Parser) patterns() ast.Pattern {
	first := p.orPattern()
	if p.check(lexer.Comma) {
		elts := []ast.Pattern{first}
		for p.match(lexer.Comma) {
			if p.check(lexer.Colon) || p.check(lexer.If) {
				break
			}
			elts = append(elts, p.orPattern())
		}
		first = &ast.MatchSequence{Patterns: elts}
	}
	return p.maybeAsPattern(first)
}

func (p *Parser) maybeAsPattern(pat ast.Pattern) ast.Pattern {
	if p.match(lexer.As) {
		name := p.consume(lexer.Identifier, "expected capture name after 'as'")
		return &ast.MatchAs{Pattern: pat, Name: name.Lexeme}
	}
	return pat
}

func (p *Parser) orPattern() ast.Pattern {
	first := p.closedPattern()
	if !p.check(lexer.Pipe) {
		return first
	}
	alts := []ast.Pattern{first}
	for p.match(lexer.Pipe) {
		alts = append(alts, p.closedPattern())
	}
	return &ast.MatchOr{Patterns: alts}
}

func (p *Parser) closedPattern() ast.Pattern {
	switch p.peek().Type {
	case lexer.Star:
		p.advance()
		name := p.consume(lexer.Identifier, "expected name after '*' in pattern")
		n := name.Lexeme
		if n == "_" {
			n = ""
		}
		return &ast.MatchStar{Name: n}
	case lexer.LeftBracket:
		return p.sequencePattern(lexer.LeftBracket, lexer.RightBracket)
	case lexer.LeftParen:
		return p.sequencePattern(lexer.LeftParen, lexer.RightParen)
	case lexer.LeftBrace:
		return p.mappingPattern()
	case lexer.None:
		tok := p.advance()
		return &ast.MatchSingleton{Loc: ast.NewLoc(tok.Span), Value: nil}
	case lexer.True:
		tok := p.advance()
		return &ast.MatchSingleton{Loc: ast.NewLoc(tok.Span), Value: true}
	case lexer.False:
		tok := p.advance()
		return &ast.MatchSingleton{Loc: ast.NewLoc(tok.Span), Value: false}
	case lexer.Identifier:
		if p.peek().Lexeme == "_" && !p.checkNext(lexer.Dot) && !p.checkNext(lexer.LeftParen) {
			tok := p.advance()
			return &ast.MatchAs{Loc: ast.NewLoc(tok.Span), Name: "_"}
		}
		return p.valueOrCapturePattern()
	default:
		value := p.signedNumberOrString()
		return &ast.MatchValue{Loc: ast.NewLoc(value.GetSpan()), Value: value}
	}
}

// valueOrCapturePattern handles a bare NAME (a capture pattern), a
// dotted NAME (a value pattern), and ClassName(...) (a class pattern).
func (p *Parser) valueOrCapturePattern() ast.Pattern {
	start := p.peek()
	expr := ast.Expr(ast.NewName(p.advance().Lexeme, ast.Load, start.Span))
	dotted := false
	for p.check(lexer.Dot) {
		p.advance()
		attr := p.consume(lexer.Identifier, "expected attribute name in pattern")
		expr = &ast.Attribute{Loc: ast.NewLoc(span(expr.GetSpan().Start, attr.End())), Value: expr, Attr: attr.Lexeme, Ctx: ast.Load}
		dotted = true
	}
	if p.check(lexer.LeftParen) {
		return p.classPattern(expr)
	}
	if dotted {
		return &ast.MatchValue{Loc: ast.NewLoc(expr.GetSpan()), Value: expr}
	}
	if name, ok := expr.(*ast.Name); ok {
		return &ast.MatchAs{Loc: ast.NewLoc(name.GetSpan()), Name: name.Id}
	}
	return &ast.MatchValue{Loc: ast.NewLoc(expr.GetSpan()), Value: expr}
}

func (p *Parser) classPattern(cls ast.Expr) ast.Pattern {
	p.consume(lexer.LeftParen, "expected '(' in class pattern")
	var positional []ast.Pattern
	var kwdAttrs []string
	var kwdPatterns []ast.Pattern
	for !p.check(lexer.RightParen) {
		if p.check(lexer.Identifier) && p.checkNext(lexer.Equal) {
			name := p.advance().Lexeme
			p.advance() // '='
			kwdAttrs = append(kwdAttrs, name)
			kwdPatterns = append(kwdPatterns, p.orPattern())
		} else {
			positional = append(positional, p.orPattern())
		}
		if !p.match(lexer.Comma) {
			break
		}
	}
	end := p.consume(lexer.RightParen, "expected ')' after class pattern arguments")
	return &ast.MatchClass{
		Loc:         ast.NewLoc(span(cls.GetSpan().Start, end.End())),
		Cls:         cls,
		Patterns:    positional,
		KwdAttrs:    kwdAttrs,
		KwdPatterns: kwdPatterns,
	}
}

func (p *Parser) sequencePattern(openT, closeT lexer.TokenType) ast.Pattern {
	start := p.consume(openT, "expected pattern sequence opener")
	var elts []ast.Pattern
	for !p.check(closeT) {
		elts = append(elts, p.orPatternOrStar())
		if !p.match(lexer.Comma) {
			break
		}
	}
	end := p.consume(closeT, "expected pattern sequence closer")
	return &ast.MatchSequence{Loc: ast.NewLoc(span(start.Start(), end.End())), Patterns: elts}
}

func (p *Parser) orPatternOrStar() ast.Pattern {
	if p.check(lexer.Star) {
		return p.closedPattern()
	}
	return p.maybeAsPattern(p.orPattern())
}

func (p *Parser) mappingPattern() ast.Pattern {
	start := p.consume(lexer.LeftBrace, "expected '{' in mapping pattern")
	var keys []ast.Expr
	var patterns []ast.Pattern
	rest := ""
	for !p.check(lexer.RightBrace) {
		if p.match(lexer.StarStar) {
			rest = p.consume(lexer.Identifier, "expected name after '**' in mapping pattern").Lexeme
		} else {
			key := p.signedNumberOrString()
			p.consume(lexer.Colon, "expected ':' in mapping pattern")
			keys = append(keys, key)
			patterns = append(patterns, p.maybeAsPattern(p.orPattern()))
		}
		if !p.match(lexer.Comma) {
			break
		}
	}
	end := p.consume(lexer.RightBrace, "expected '}' after mapping pattern")
	return &ast.MatchMapping{Loc: ast.NewLoc(span(start.Start(), end.End())), Keys: keys, Patterns: patterns, Rest: rest}
}

// signedNumberOrString parses a literal pattern value: an optionally
// signed number, a string, or whatever single atom follows (a bare name
// or a literal). A dotted name is not followed here: atom stops at the
// first name.
func (p *Parser) signedNumberOrString() ast.Expr {
	if p.check(lexer.Minus) || p.check(lexer.Plus) {
		return p.factor()
	}
	if p.check(lexer.String) {
		return p.stringAtom()
	}
	return p.atom()
}
