package parser

import (
	"pythia/ast"
	"pythia/lexer"
)

// statement dispatches on the current token to a compound or simple
// statement parser and returns every statement it produced —
// more than one only for a ';'-joined simple-statement line. Soft
// keywords (match/type) are recognized here from lookahead, since the
// lexer always tags them Identifier.
func (p *Parser) statement() []ast.Stmt {
	switch p.peek().Type {
	case lexer.If:
		return []ast.Stmt{p.ifStatement()}
	case lexer.While:
		return []ast.Stmt{p.whileStatement()}
	case lexer.For:
		return []ast.Stmt{p.forStatement(false)}
	case lexer.With:
		return []ast.Stmt{p.withStatement(false)}
	case lexer.Try:
		return []ast.Stmt{p.tryStatement()}
	case lexer.Class:
		return []ast.Stmt{p.classStatement(nil)}
	case lexer.Def:
		return []ast.Stmt{p.functionDef(nil, false)}
	case lexer.At:
		return []ast.Stmt{p.decorated()}
	case lexer.Async:
		switch p.peekN(1).Type {
		case lexer.Def:
			p.advance()
			return []ast.Stmt{p.functionDef(nil, true)}
		case lexer.For:
			p.advance()
			return []ast.Stmt{p.forStatement(true)}
		case lexer.With:
			p.advance()
			return []ast.Stmt{p.withStatement(true)}
		}
	case lexer.Identifier:
		if p.peek().Lexeme == "match" && p.looksLikeMatchStatement() {
			return []ast.Stmt{p.matchStatement()}
		}
		if p.peek().Lexeme == "type" && p.checkNext(lexer.Identifier) {
			return []ast.Stmt{p.typeAliasStatement()}
		}
	}
	return p.simpleStatementsOnLine()
}

// looksLikeMatchStatement disambiguates the `match` soft keyword from an
// ordinary call/assignment to a variable named `match`: a real match
// statement is followed by a subject expression and then ':' NEWLINE.
func (p *Parser) looksLikeMatchStatement() bool {
	switch p.peekN(1).Type {
	case lexer.Equal, lexer.Dot, lexer.LeftParen, lexer.LeftBracket,
		lexer.Comma, lexer.Newline, lexer.Semicolon, lexer.EOF,
		lexer.PlusEqual, lexer.MinusEqual, lexer.StarEqual, lexer.SlashEqual:
		return false
	}
	return true
}

// suite parses either a single-line simple-statement body following
// ':', or a NEWLINE INDENT statement+ DEDENT block.
func (p *Parser) suite() []ast.Stmt {
	p.consume(lexer.Colon, "expected ':'")
	if !p.check(lexer.Newline) {
		return p.simpleStatementsOnLine()
	}
	p.advance()
	p.skipNewlines()
	p.skipComments()
	p.consume(lexer.Indent, "expected an indented block")

	var stmts []ast.Stmt
	for !p.isAtEnd() && !p.check(lexer.Dedent) {
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
	p.consume(lexer.Dedent, "expected dedent at end of block")
	return stmts
}

// ── compound statements ──────────────────────────────────────────────

func (p *Parser) ifStatement() ast.Stmt {
	start := p.consume(lexer.If, "expected 'if'")
	test := p.namedExpression()
	body := p.suite()
	orelse := p.elifOrElse()
	return &ast.If{Loc: ast.NewLoc(span(start.Start(), p.lastEnd(body, orelse))), Test: test, Body: body, Orelse: orelse}
}

// elifOrElse parses a trailing `elif`/`else` chain. An `elif` becomes a
// single nested *If wrapped in a one-element Orelse slice, matching how
// the unparser reconstructs `elif` from an If-shaped Orelse.
func (p *Parser) elifOrElse() []ast.Stmt {
	p.skipComments()
	if p.check(lexer.Elif) {
		start := p.advance()
		test := p.namedExpression()
		body := p.suite()
		orelse := p.elifOrElse()
		nested := &ast.If{Loc: ast.NewLoc(span(start.Start(), p.lastEnd(body, orelse))), Test: test, Body: body, Orelse: orelse}
		return []ast.Stmt{nested}
	}
	if p.match(lexer.Else) {
		return p.suite()
	}
	return nil
}

// lastEnd returns the end position of the last statement in the last
// non-empty of the given bodies, searched back to front (so callers
// pass them in source order, e.g. body, orelse, finally), falling back to the
// most recently consumed token.
func (p *Parser) lastEnd(bodies ...[]ast.Stmt) lexer.Position {
	for i := len(bodies) - 1; i >= 0; i-- {
		if len(bodies[i]) > 0 {
			return bodies[i][len(bodies[i])-1].GetSpan().End
		}
	}
	return p.previous().End()
}

func (p *Parser) whileStatement() ast.Stmt {
	start := p.consume(lexer.While, "expected 'while'")
	test := p.namedExpression()
	body := p.suite()
	p.skipComments()
	var orelse []ast.Stmt
	if p.match(lexer.Else) {
		orelse = p.suite()
	}
	return &ast.While{Loc: ast.NewLoc(span(start.Start(), p.lastEnd(body, orelse))), Test: test, Body: body, Orelse: orelse}
}

func (p *Parser) forStatement(isAsync bool) ast.Stmt {
	start := p.consume(lexer.For, "expected 'for'")
	target := p.targetList()
	p.consume(lexer.In, "expected 'in' in for statement")
	iter := p.starExpressions()
	body := p.suite()
	p.skipComments()
	var orelse []ast.Stmt
	if p.match(lexer.Else) {
		orelse = p.suite()
	}
	loc := ast.NewLoc(span(start.Start(), p.lastEnd(body, orelse)))
	if isAsync {
		return &ast.AsyncFor{Loc: loc, Target: target, Iter: iter, Body: body, Orelse: orelse}
	}
	return &ast.For{Loc: loc, Target: target, Iter: iter, Body: body, Orelse: orelse}
}

func (p *Parser) withStatement(isAsync bool) ast.Stmt {
	start := p.consume(lexer.With, "expected 'with'")
	parenthesized := p.match(lexer.LeftParen)
	items := []*ast.WithItem{p.withItem()}
	for p.match(lexer.Comma) {
		if parenthesized && p.check(lexer.RightParen) {
			break
		}
		items = append(items, p.withItem())
	}
	if parenthesized {
		p.consume(lexer.RightParen, "expected ')' after with items")
	}
	body := p.suite()
	loc := ast.NewLoc(span(start.Start(), p.lastEnd(body, nil)))
	if isAsync {
		return &ast.AsyncWith{Loc: loc, Items: items, Body: body}
	}
	return &ast.With{Loc: loc, Items: items, Body: body}
}

func (p *Parser) withItem() *ast.WithItem {
	expr := p.expression()
	var optVars ast.Expr
	if p.match(lexer.As) {
		optVars = p.setContext(p.targetAtom(), ast.Store)
	}
	return &ast.WithItem{ContextExpr: expr, OptionalVars: optVars}
}

func (p *Parser) tryStatement() ast.Stmt {
	start := p.consume(lexer.Try, "expected 'try'")
	body := p.suite()
	p.skipComments()

	starForm := p.peek().Type == lexer.Except && p.peekN(1).Type == lexer.Star
	var handlers []*ast.ExceptHandler
	for p.check(lexer.Except) {
		handlerTok := p.peek()
		handler, star := p.exceptHandler()
		if star != starForm {
			p.fail(handlerTok, "cannot have both 'except' and 'except*' on the same try statement")
		}
		handlers = append(handlers, handler)
		p.skipComments()
	}
	var orelse, finally []ast.Stmt
	if p.match(lexer.Else) {
		orelse = p.suite()
		p.skipComments()
	}
	if p.match(lexer.Finally) {
		finally = p.suite()
	}

	var lastHandlerBody []ast.Stmt
	if len(handlers) > 0 {
		lastHandlerBody = handlers[len(handlers)-1].Body
	}
	end := p.lastEnd(body, lastHandlerBody, orelse, finally)
	if starForm {
		return &ast.TryStar{Loc: ast.NewLoc(span(start.Start(), end)), Body: body, Handlers: handlers, Orelse: orelse, Finally: finally}
	}
	return &ast.Try{Loc: ast.NewLoc(span(start.Start(), end)), Body: body, Handlers: handlers, Orelse: orelse, Finally: finally}
}

// exceptHandler parses one 'except' or 'except*' clause and reports
// whether it was starred, so tryStatement can reject a try block that
// mixes the two forms across its handlers.
func (p *Parser) exceptHandler() (*ast.ExceptHandler, bool) {
	start := p.consume(lexer.Except, "expected 'except'")
	star := p.match(lexer.Star)
	var typ ast.Expr
	var name string
	if !p.check(lexer.Colon) {
		typ = p.expression()
		if p.match(lexer.As) {
			nameTok := p.consume(lexer.Identifier, "expected identifier after 'as'")
			name = nameTok.Lexeme
		}
	}
	body := p.suite()
	return &ast.ExceptHandler{Loc: ast.NewLoc(span(start.Start(), p.lastEnd(body, nil))), Type: typ, Name: name, Body: body}, star
}

func (p *Parser) classStatement(decorators []ast.Expr) ast.Stmt {
	start := p.consume(lexer.Class, "expected 'class'")
	name := p.consume(lexer.Identifier, "expected class name")
	typeParams := p.typeParamList()

	var bases []ast.Expr
	var keywords []*ast.Keyword
	if p.match(lexer.LeftParen) {
		bases, keywords = p.callArguments()
		p.consume(lexer.RightParen, "expected ')' after class bases")
	}
	body := p.suite()
	return &ast.ClassDef{
		Loc:           ast.NewLoc(span(start.Start(), p.lastEnd(body, nil))),
		Name:          name.Lexeme,
		Bases:         bases,
		Keywords:      keywords,
		Body:          body,
		DecoratorList: decorators,
		TypeParams:    typeParams,
	}
}

func (p *Parser) functionDef(decorators []ast.Expr, isAsync bool) ast.Stmt {
	start := p.consume(lexer.Def, "expected 'def'")
	name := p.consume(lexer.Identifier, "expected function name")
	typeParams := p.typeParamList()
	p.consume(lexer.LeftParen, "expected '(' after function name")
	args := p.parameterList(true)
	p.consume(lexer.RightParen, "expected ')' after parameters")

	var returns ast.Expr
	if p.match(lexer.Arrow) {
		returns = p.expression()
	}
	body := p.suite()
	loc := ast.NewLoc(span(start.Start(), p.lastEnd(body, nil)))
	if isAsync {
		return &ast.AsyncFunctionDef{
			Loc: loc, Name: name.Lexeme, Args: args, Body: body,
			DecoratorList: decorators, Returns: returns, TypeParams: typeParams,
		}
	}
	return &ast.FunctionDef{
		Loc: loc, Name: name.Lexeme, Args: args, Body: body,
		DecoratorList: decorators, Returns: returns, TypeParams: typeParams,
	}
}

// decorated parses a run of '@decorator' lines followed by the class or
// function definition they decorate.
func (p *Parser) decorated() ast.Stmt {
	var decorators []ast.Expr
	for {
		p.skipComments()
		if !p.check(lexer.At) {
			break
		}
		p.advance()
		decorators = append(decorators, p.namedExpression())
		p.consume(lexer.Newline, "expected newline after decorator")
		p.skipNewlines()
	}
	switch p.peek().Type {
	case lexer.Class:
		return p.classStatement(decorators)
	case lexer.Def:
		return p.functionDef(decorators, false)
	case lexer.Async:
		p.advance()
		p.consume(lexer.Def, "expected 'def' after 'async'")
		return p.functionDef(decorators, true)
	}
	p.fail(p.peek(), "expected function or class definition after decorator")
	return nil
}

func (p *Parser) typeAliasStatement() ast.Stmt {
	start := p.advance() // 'type' (soft keyword, still Identifier)
	nameTok := p.consume(lexer.Identifier, "expected alias name")
	name := ast.NewName(nameTok.Lexeme, ast.Store, nameTok.Span)
	typeParams := p.typeParamList()
	p.consume(lexer.Equal, "expected '=' in type alias")
	value := p.expression()
	p.endSimpleStatement()
	return &ast.TypeAlias{
		Loc:        ast.NewLoc(span(start.Start(), value.GetSpan().End)),
		Name:       name,
		TypeParams: typeParams,
		Value:      value,
	}
}

// ── simple statements ────────────────────────────────────────────────

// simpleStatementsOnLine parses one or more semicolon-separated simple
// statements terminated by NEWLINE, attaching a same-line trailing
// comment to the last one when comment collection is enabled.
func (p *Parser) simpleStatementsOnLine() []ast.Stmt {
	first := p.simpleStatement()
	stmts := []ast.Stmt{first}
	for p.match(lexer.Semicolon) {
		if p.check(lexer.Newline) || p.isAtEnd() || p.check(lexer.Dedent) {
			break
		}
		stmts = append(stmts, p.simpleStatement())
	}
	p.endSimpleStatement()
	return stmts
}

// endSimpleStatement consumes the NEWLINE (or EOF/DEDENT at end of
// input) that terminates a simple-statement line, attaching a trailing
// comment on the same line first.
func (p *Parser) endSimpleStatement() {
	lastLine := p.previous().End().Line
	if c := p.consumeTrailingComment(lastLine); c != nil {
		p.pendingComments = append(p.pendingComments, c)
	}
	if p.check(lexer.Newline) {
		p.advance()
		return
	}
	if p.isAtEnd() || p.check(lexer.Dedent) {
		return
	}
	p.fail(p.peek(), "expected newline after simple statement")
}

func (p *Parser) simpleStatement() ast.Stmt {
	tok := p.peek()
	switch tok.Type {
	case lexer.Pass:
		p.advance()
		return &ast.Pass{Loc: ast.NewLoc(tok.Span)}
	case lexer.Break:
		p.advance()
		return &ast.Break{Loc: ast.NewLoc(tok.Span)}
	case lexer.Continue:
		p.advance()
		return &ast.Continue{Loc: ast.NewLoc(tok.Span)}
	case lexer.Return:
		return p.returnStatement()
	case lexer.Del:
		return p.delStatement()
	case lexer.Global:
		return p.globalStatement()
	case lexer.Nonlocal:
		return p.nonlocalStatement()
	case lexer.Raise:
		return p.raiseStatement()
	case lexer.Assert:
		return p.assertStatement()
	case lexer.Import:
		return p.importStatement()
	case lexer.From:
		return p.importFromStatement()
	}
	return p.expressionOrAssignStatement()
}

func (p *Parser) returnStatement() ast.Stmt {
	start := p.consume(lexer.Return, "expected 'return'")
	if p.atExpressionEnd() {
		return &ast.Return{Loc: ast.NewLoc(start.Span)}
	}
	value := p.starExpressions()
	return &ast.Return{Loc: ast.NewLoc(span(start.Start(), value.GetSpan().End)), Value: value}
}

func (p *Parser) delStatement() ast.Stmt {
	start := p.consume(lexer.Del, "expected 'del'")
	first := p.setContext(p.primary(), ast.Del)
	targets := []ast.Expr{first}
	for p.match(lexer.Comma) {
		if p.atExpressionEnd() {
			break
		}
		targets = append(targets, p.setContext(p.primary(), ast.Del))
	}
	return &ast.Delete{Loc: ast.NewLoc(span(start.Start(), targets[len(targets)-1].GetSpan().End)), Targets: targets}
}

func (p *Parser) globalStatement() ast.Stmt {
	start := p.consume(lexer.Global, "expected 'global'")
	names := p.nameList()
	return &ast.Global{Loc: ast.NewLoc(span(start.Start(), p.previous().End())), Names: names}
}

func (p *Parser) nonlocalStatement() ast.Stmt {
	start := p.consume(lexer.Nonlocal, "expected 'nonlocal'")
	names := p.nameList()
	return &ast.Nonlocal{Loc: ast.NewLoc(span(start.Start(), p.previous().End())), Names: names}
}

func (p *Parser) nameList() []string {
	names := []string{p.consume(lexer.Identifier, "expected identifier").Lexeme}
	for p.match(lexer.Comma) {
		names = append(names, p.consume(lexer.Identifier, "expected identifier").Lexeme)
	}
	return names
}

func (p *Parser) raiseStatement() ast.Stmt {
	start := p.consume(lexer.Raise, "expected 'raise'")
	if p.atExpressionEnd() {
		return &ast.Raise{Loc: ast.NewLoc(start.Span)}
	}
	exc := p.expression()
	end := exc.GetSpan().End
	var cause ast.Expr
	if p.match(lexer.From) {
		cause = p.expression()
		end = cause.GetSpan().End
	}
	return &ast.Raise{Loc: ast.NewLoc(span(start.Start(), end)), Exc: exc, Cause: cause}
}

func (p *Parser) assertStatement() ast.Stmt {
	start := p.consume(lexer.Assert, "expected 'assert'")
	test := p.expression()
	end := test.GetSpan().End
	var msg ast.Expr
	if p.match(lexer.Comma) {
		msg = p.expression()
		end = msg.GetSpan().End
	}
	return &ast.Assert{Loc: ast.NewLoc(span(start.Start(), end)), Test: test, Msg: msg}
}

func (p *Parser) importStatement() ast.Stmt {
	start := p.consume(lexer.Import, "expected 'import'")
	names := p.dottedAsNameList()
	return &ast.Import{Loc: ast.NewLoc(span(start.Start(), p.previous().End())), Names: names}
}

func (p *Parser) importFromStatement() ast.Stmt {
	start := p.consume(lexer.From, "expected 'from'")
	level := 0
	for p.check(lexer.Dot) || p.check(lexer.Ellipsis) {
		tok := p.advance()
		if tok.Type == lexer.Ellipsis {
			level += 3
		} else {
			level++
		}
	}
	module := ""
	if p.check(lexer.Identifier) {
		module = p.dottedName()
	}
	p.consume(lexer.Import, "expected 'import' in from-import statement")

	var names []*ast.Alias
	switch {
	case p.match(lexer.Star):
		star := p.previous()
		names = []*ast.Alias{{Loc: ast.NewLoc(star.Span), Name: "*"}}
	case p.match(lexer.LeftParen):
		names = p.importAsNameList()
		p.consume(lexer.RightParen, "expected ')' after imported names")
	default:
		names = p.importAsNameList()
	}
	return &ast.ImportFrom{Loc: ast.NewLoc(span(start.Start(), p.previous().End())), Module: module, Names: names, Level: level}
}

func (p *Parser) dottedName() string {
	name := p.consume(lexer.Identifier, "expected module name").Lexeme
	for p.check(lexer.Dot) && p.peekN(1).Type == lexer.Identifier {
		p.advance()
		name += "." + p.advance().Lexeme
	}
	return name
}

func (p *Parser) dottedAsNameList() []*ast.Alias {
	names := []*ast.Alias{p.dottedAsName()}
	for p.match(lexer.Comma) {
		names = append(names, p.dottedAsName())
	}
	return names
}

func (p *Parser) dottedAsName() *ast.Alias {
	start := p.peek()
	name := p.dottedName()
	asName := ""
	if p.match(lexer.As) {
		asName = p.consume(lexer.Identifier, "expected identifier after 'as'").Lexeme
	}
	return &ast.Alias{Loc: ast.NewLoc(span(start.Start(), p.previous().End())), Name: name, AsName: asName}
}

func (p *Parser) importAsNameList() []*ast.Alias {
	names := []*ast.Alias{p.importAsName()}
	for p.match(lexer.Comma) {
		if p.check(lexer.RightParen) {
			break
		}
		names = append(names, p.importAsName())
	}
	return names
}

func (p *Parser) importAsName() *ast.Alias {
	nameTok := p.consume(lexer.Identifier, "expected identifier")
	asName := ""
	end := nameTok.End()
	if p.match(lexer.As) {
		asTok := p.consume(lexer.Identifier, "expected identifier after 'as'")
		asName = asTok.Lexeme
		end = asTok.End()
	}
	return &ast.Alias{Loc: ast.NewLoc(span(nameTok.Start(), end)), Name: nameTok.Lexeme, AsName: asName}
}

// expressionOrAssignStatement parses a bare expression statement or any
// of the three assignment forms: plain/chained `=`, augmented `+=` etc,
// and annotated `: annotation [= value]`.
func (p *Parser) expressionOrAssignStatement() ast.Stmt {
	start := p.here()
	parenthesized := p.check(lexer.LeftParen)
	expr := p.starExpressions()

	if op, ok := augAssignTokens[p.peek().Type]; ok {
		p.advance()
		target := p.setContext(expr, ast.Store)
		value := p.rhsExpression()
		return &ast.AugAssign{Loc: ast.NewLoc(span(start, value.GetSpan().End)), Target: target, Op: op, Value: value}
	}

	if p.match(lexer.Colon) {
		annotation := p.expression()
		simple := isSimpleName(expr) && !parenthesized
		target := p.setContext(expr, ast.Store)
		end := annotation.GetSpan().End
		var value ast.Expr
		if p.match(lexer.Equal) {
			value = p.rhsExpression()
			end = value.GetSpan().End
		}
		return &ast.AnnAssign{Loc: ast.NewLoc(span(start, end)), Target: target, Annotation: annotation, Value: value, Simple: simple}
	}

	if p.check(lexer.Equal) {
		targets := []ast.Expr{expr}
		p.advance()
		value := p.rhsExpression()
		for p.match(lexer.Equal) {
			targets = append(targets, value)
			value = p.rhsExpression()
		}
		for i, t := range targets {
			targets[i] = p.setContext(t, ast.Store)
		}
		return &ast.Assign{Loc: ast.NewLoc(span(start, value.GetSpan().End)), Targets: targets, Value: value}
	}

	return &ast.ExprStmt{Loc: ast.NewLoc(expr.GetSpan()), Value: expr}
}

// rhsExpression parses an assignment's right-hand side, which may itself
// be a `yield` expression or a comma-joined tuple.
func (p *Parser) rhsExpression() ast.Expr {
	if p.check(lexer.Yield) {
		return p.yieldExpr()
	}
	return p.starExpressions()
}

func isSimpleName(e ast.Expr) bool {
	_, ok := e.(*ast.Name)
	return ok
}

var augAssignTokens = map[lexer.TokenType]ast.Operator{
	lexer.PlusEqual: ast.Add, lexer.MinusEqual: ast.Sub, lexer.StarEqual: ast.Mult,
	lexer.SlashEqual: ast.Div, lexer.SlashSlashEqual: ast.FloorDiv, lexer.PercentEqual: ast.Mod,
	lexer.StarStarEqual: ast.Pow, lexer.AtEqual: ast.MatMult, lexer.AmpEqual: ast.BitAnd,
	lexer.PipeEqual: ast.BitOr, lexer.CaretEqual: ast.BitXor,
	lexer.LessLessEqual: ast.LShift, lexer.GreaterGreaterEqual: ast.RShift,
}
