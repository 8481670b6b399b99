package parser

import (
	"pythia/ast"
	"pythia/lexer"
)

// filterComments drops every COMMENT token from tokens, used when
// Options.Comments is false so the rest of the grammar never has to
// special-case them.
func filterComments(tokens []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type != lexer.Comment {
			out = append(out, tok)
		}
	}
	return out
}

// collectComment buffers a COMMENT token seen between statements. A
// comment trailing a just-finished statement is built by
// consumeTrailingComment instead and appended to the same buffer by
// endSimpleStatement. flushPendingAsStatements later drains the buffer
// into ast.Comment statements.
func (p *Parser) collectComment(tok lexer.Token) {
	p.pendingComments = append(p.pendingComments, &ast.Comment{
		Loc:  ast.NewLoc(tok.Span),
		Text: tok.Lexeme,
	})
}

// flushPendingAsStatements drains the pending-comment buffer into
// standalone Comment statements, in source order.
func (p *Parser) flushPendingAsStatements() []ast.Stmt {
	if len(p.pendingComments) == 0 {
		return nil
	}
	out := make([]ast.Stmt, len(p.pendingComments))
	for i, c := range p.pendingComments {
		out[i] = c
	}
	p.pendingComments = nil
	return out
}

// skipComments buffers any COMMENT tokens sitting in front of the
// cursor, consuming the NEWLINE that ends each comment line. Used right
// before a lookahead for a decorator, an INDENT, or a continuation
// keyword (elif/else/except/case) that would otherwise be hidden behind
// a comment line.
func (p *Parser) skipComments() {
	for p.check(lexer.Comment) {
		p.collectComment(p.advance())
		p.skipNewlines()
	}
}

// consumeTrailingComment looks for a COMMENT token on the same physical
// line as the token that just closed a statement, consuming it and
// returning an inline *ast.Comment if found (nil otherwise).
func (p *Parser) consumeTrailingComment(lastLine int) *ast.Comment {
	if !p.opts.Comments {
		return nil
	}
	if p.check(lexer.Comment) && p.peek().Start().Line == lastLine {
		tok := p.advance()
		return &ast.Comment{
			Loc:    ast.NewLoc(tok.Span),
			Text:   tok.Lexeme,
			Inline: true,
		}
	}
	return nil
}
