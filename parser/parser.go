// Package parser turns a lexer.Token stream into the tagged-variant AST
// defined in package ast, by hand-written recursive descent with
// precedence climbing. A Parser is single-pass and single-use: construct
// one per token stream with New, call Parse once.
package parser

import (
	"log/slog"

	"pythia/ast"
	"pythia/lexer"
)

// Parser holds a cursor into a token vector plus the small amount of
// state the grammar needs: whether to collect comments, and a buffer of
// comments seen since the last statement was closed.
type Parser struct {
	tokens  []lexer.Token
	current int
	opts    Options
	logger  *slog.Logger

	pendingComments []*ast.Comment
	lastStmtLine    int
}

// New constructs a Parser over tokens produced by a lexer.Scanner.
func New(tokens []lexer.Token, opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if !opts.Comments {
		tokens = filterComments(tokens)
	}
	return &Parser{tokens: tokens, opts: opts, logger: opts.Logger}
}

// Parse consumes the whole token vector and returns a *ast.Module, or the
// first parse error encountered. Parsing is fail-fast: no recovery is
// attempted once an expectation fails.
func (p *Parser) Parse() (mod *ast.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*Error); ok {
				mod, err = nil, pe
				return
			}
			panic(r)
		}
	}()

	start := p.here()
	stmts := make([]ast.Stmt, 0)
	for !p.isAtEnd() {
		if p.check(lexer.Newline) {
			p.advance()
			continue
		}
		if p.check(lexer.Comment) {
			p.collectComment(p.advance())
			continue
		}
		stmts = append(stmts, p.flushPendingAsStatements()...)
		stmts = append(stmts, p.statement()...)
	}
	stmts = append(stmts, p.flushPendingAsStatements()...)
	end := p.previous().End()
	p.logger.Debug("parse complete", "statements", len(stmts))
	return ast.NewModule(stmts, lexer.Span{Start: start, End: end}), nil
}

// Stmt and Expr are local aliases used throughout this package purely to
// cut down on the ast. prefix in function signatures.
type Stmt = ast.Stmt
type Expr = ast.Expr

func (p *Parser) here() lexer.Position {
	if p.current < len(p.tokens) {
		return p.tokens[p.current].Start()
	}
	return lexer.Position{}
}

func (p *Parser) fail(tok lexer.Token, message string) {
	panic(newError(message, tok.Start().Line, tok.Start().Column))
}
