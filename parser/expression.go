package parser

import (
	"strings"

	"pythia/ast"
	"pythia/lexer"
)

// The expression grammar, precedence-climbing from the bottom up:
// atom-with-trailers, await, '**', unary, mul-class, add/sub, shifts, '&',
// '^', '|', comparison (chained into one Compare node), 'not', 'and',
// 'or', ternary, lambda, then the comma-joined tuple/star forms at the
// very top.

func span(start lexer.Position, end lexer.Position) lexer.Span {
	return lexer.Span{Start: start, End: end}
}

func exprSpan(a, b ast.Expr) lexer.Span {
	return span(a.GetSpan().Start, b.GetSpan().End)
}

// expression is the entry point for a single (non-star, non-tuple)
// expression: ternary, or lower.
func (p *Parser) expression() ast.Expr {
	if p.check(lexer.Lambda) {
		return p.lambdaExpr()
	}

	expr := p.disjunction()
	if p.match(lexer.If) {
		test := p.disjunction()
		p.consume(lexer.Else, "expected 'else' in conditional expression")
		orelse := p.expression()
		return &ast.IfExp{
			Loc:    ast.NewLoc(exprSpan(expr, orelse)),
			Test:   test,
			Body:   expr,
			Orelse: orelse,
		}
	}
	return expr
}

// namedExpression allows a bare walrus assignment at the top, used in
// contexts like `if`/`while` tests and comprehension clauses.
func (p *Parser) namedExpression() ast.Expr {
	if p.check(lexer.Identifier) && p.checkNext(lexer.Walrus) {
		nameTok := p.advance()
		p.advance() // ':='
		value := p.expression()
		target := ast.NewName(nameTok.Lexeme, ast.Store, nameTok.Span)
		return &ast.NamedExpr{
			Loc:    ast.NewLoc(span(nameTok.Start(), value.GetSpan().End)),
			Target: target,
			Value:  value,
		}
	}
	return p.expression()
}

func (p *Parser) lambdaExpr() ast.Expr {
	start := p.consume(lexer.Lambda, "expected 'lambda'")
	args := &ast.Arguments{}
	if !p.check(lexer.Colon) {
		args = p.parameterList(false)
	}
	p.consume(lexer.Colon, "expected ':' after lambda parameters")
	body := p.expression()
	return &ast.Lambda{
		Loc:  ast.NewLoc(span(start.Start(), body.GetSpan().End)),
		Args: args,
		Body: body,
	}
}

func (p *Parser) disjunction() ast.Expr {
	expr := p.conjunction()
	for p.check(lexer.Or) {
		p.advance()
		values := []ast.Expr{expr}
		for {
			values = append(values, p.conjunction())
			if !p.match(lexer.Or) {
				break
			}
		}
		expr = &ast.BoolOp{
			Loc:    ast.NewLoc(exprSpan(values[0], values[len(values)-1])),
			Op:     ast.Or,
			Values: values,
		}
	}
	return expr
}

func (p *Parser) conjunction() ast.Expr {
	expr := p.inversion()
	for p.check(lexer.And) {
		p.advance()
		values := []ast.Expr{expr}
		for {
			values = append(values, p.inversion())
			if !p.match(lexer.And) {
				break
			}
		}
		expr = &ast.BoolOp{
			Loc:    ast.NewLoc(exprSpan(values[0], values[len(values)-1])),
			Op:     ast.And,
			Values: values,
		}
	}
	return expr
}

func (p *Parser) inversion() ast.Expr {
	if p.match(lexer.Not) {
		op := p.previous()
		operand := p.inversion()
		return &ast.UnaryOp{
			Loc:     ast.NewLoc(span(op.Start(), operand.GetSpan().End)),
			Op:      ast.Not,
			Operand: operand,
		}
	}
	return p.comparison()
}

var cmpOpTokens = map[lexer.TokenType]ast.CmpOp{
	lexer.EqualEqual: ast.Eq, lexer.BangEqual: ast.NotEq,
	lexer.Less: ast.Lt, lexer.LessEqual: ast.LtE,
	lexer.Greater: ast.Gt, lexer.GreaterEqual: ast.GtE,
	lexer.Is: ast.Is, lexer.IsNot: ast.IsNot,
	lexer.In: ast.In, lexer.NotIn: ast.NotIn,
}

// comparison parses a chained comparison into a single Compare node with
// parallel Ops/Comparators slices, never desugared into nested BoolOps.
func (p *Parser) comparison() ast.Expr {
	left := p.bitwiseOr()
	var ops []ast.CmpOp
	var comparators []ast.Expr
	for {
		tt := p.peek().Type
		op, ok := cmpOpTokens[tt]
		if !ok {
			break
		}
		p.advance()
		ops = append(ops, op)
		comparators = append(comparators, p.bitwiseOr())
	}
	if len(ops) == 0 {
		return left
	}
	return &ast.Compare{
		Loc:         ast.NewLoc(exprSpan(left, comparators[len(comparators)-1])),
		Left:        left,
		Ops:         ops,
		Comparators: comparators,
	}
}

func (p *Parser) bitwiseOr() ast.Expr {
	expr := p.bitwiseXor()
	for p.match(lexer.Pipe) {
		right := p.bitwiseXor()
		expr = &ast.BinOp{Loc: ast.NewLoc(exprSpan(expr, right)), Left: expr, Op: ast.BitOr, Right: right}
	}
	return expr
}

func (p *Parser) bitwiseXor() ast.Expr {
	expr := p.bitwiseAnd()
	for p.match(lexer.Caret) {
		right := p.bitwiseAnd()
		expr = &ast.BinOp{Loc: ast.NewLoc(exprSpan(expr, right)), Left: expr, Op: ast.BitXor, Right: right}
	}
	return expr
}

func (p *Parser) bitwiseAnd() ast.Expr {
	expr := p.shiftExpr()
	for p.match(lexer.Ampersand) {
		right := p.shiftExpr()
		expr = &ast.BinOp{Loc: ast.NewLoc(exprSpan(expr, right)), Left: expr, Op: ast.BitAnd, Right: right}
	}
	return expr
}

func (p *Parser) shiftExpr() ast.Expr {
	expr := p.sum()
	for {
		var op ast.Operator
		switch {
		case p.match(lexer.LessLess):
			op = ast.LShift
		case p.match(lexer.GreaterGreater):
			op = ast.RShift
		default:
			return expr
		}
		right := p.sum()
		expr = &ast.BinOp{Loc: ast.NewLoc(exprSpan(expr, right)), Left: expr, Op: op, Right: right}
	}
}

func (p *Parser) sum() ast.Expr {
	expr := p.term()
	for {
		var op ast.Operator
		switch {
		case p.match(lexer.Plus):
			op = ast.Add
		case p.match(lexer.Minus):
			op = ast.Sub
		default:
			return expr
		}
		right := p.term()
		expr = &ast.BinOp{Loc: ast.NewLoc(exprSpan(expr, right)), Left: expr, Op: op, Right: right}
	}
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for {
		var op ast.Operator
		switch {
		case p.match(lexer.Star):
			op = ast.Mult
		case p.match(lexer.Slash):
			op = ast.Div
		case p.match(lexer.SlashSlash):
			op = ast.FloorDiv
		case p.match(lexer.Percent):
			op = ast.Mod
		case p.match(lexer.At):
			op = ast.MatMult
		default:
			return expr
		}
		right := p.factor()
		expr = &ast.BinOp{Loc: ast.NewLoc(exprSpan(expr, right)), Left: expr, Op: op, Right: right}
	}
}

func (p *Parser) factor() ast.Expr {
	var op ast.UnaryOperator
	switch {
	case p.match(lexer.Plus):
		op = ast.UAdd
	case p.match(lexer.Minus):
		op = ast.USub
	case p.match(lexer.Tilde):
		op = ast.Invert
	default:
		return p.power()
	}
	tok := p.previous()
	operand := p.factor()
	return &ast.UnaryOp{Loc: ast.NewLoc(span(tok.Start(), operand.GetSpan().End)), Op: op, Operand: operand}
}

// power is right-associative: `2 ** 3 ** 2 == 2 ** (3 ** 2)`.
func (p *Parser) power() ast.Expr {
	expr := p.awaitExpr()
	if p.match(lexer.StarStar) {
		right := p.factor()
		return &ast.BinOp{Loc: ast.NewLoc(exprSpan(expr, right)), Left: expr, Op: ast.Pow, Right: right}
	}
	return expr
}

func (p *Parser) awaitExpr() ast.Expr {
	if p.match(lexer.Await) {
		tok := p.previous()
		operand := p.primary()
		return &ast.Await{Loc: ast.NewLoc(span(tok.Start(), operand.GetSpan().End)), Value: operand}
	}
	return p.primary()
}

// primary parses an atom followed by zero or more trailers: attribute
// access, call, and subscript.
func (p *Parser) primary() ast.Expr {
	expr := p.atom()
	for {
		switch {
		case p.match(lexer.Dot):
			name := p.consume(lexer.Identifier, "expected attribute name after '.'")
			expr = &ast.Attribute{
				Loc:   ast.NewLoc(span(expr.GetSpan().Start, name.End())),
				Value: expr,
				Attr:  name.Lexeme,
				Ctx:   ast.Load,
			}
		case p.match(lexer.LeftParen):
			expr = p.finishCall(expr)
		case p.match(lexer.LeftBracket):
			expr = p.finishSubscript(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	args, keywords := p.callArguments()
	end := p.consume(lexer.RightParen, "expected ')' after call arguments")
	return &ast.Call{
		Loc:      ast.NewLoc(span(callee.GetSpan().Start, end.End())),
		Func:     callee,
		Args:     args,
		Keywords: keywords,
	}
}

// callArguments parses a call's positional and keyword arguments,
// allowing *args/**kwargs unpacking and generator-expression sugar for a
// single unparenthesized comprehension argument.
func (p *Parser) callArguments() ([]ast.Expr, []*ast.Keyword) {
	var args []ast.Expr
	var keywords []*ast.Keyword
	for !p.check(lexer.RightParen) {
		switch {
		case p.check(lexer.StarStar):
			star := p.advance()
			value := p.expression()
			keywords = append(keywords, &ast.Keyword{Loc: ast.NewLoc(span(star.Start(), value.GetSpan().End)), Arg: "", Value: value})
		case p.check(lexer.Star):
			star := p.advance()
			value := p.bitwiseOr()
			args = append(args, &ast.Starred{Loc: ast.NewLoc(span(star.Start(), value.GetSpan().End)), Value: value, Ctx: ast.Load})
		case p.check(lexer.Identifier) && p.checkNext(lexer.Equal):
			nameTok := p.advance()
			p.advance()
			value := p.expression()
			keywords = append(keywords, &ast.Keyword{Loc: ast.NewLoc(span(nameTok.Start(), value.GetSpan().End)), Arg: nameTok.Lexeme, Value: value})
		default:
			value := p.namedExpression()
			if p.check(lexer.For) || (p.check(lexer.Async) && p.checkNext(lexer.For)) {
				generators := p.comprehensionClauses()
				value = &ast.GeneratorExp{
					Loc:        ast.NewLoc(exprSpan(value, generators[len(generators)-1].Iter)),
					Elt:        value,
					Generators: generators,
				}
			}
			args = append(args, value)
		}
		if !p.match(lexer.Comma) {
			break
		}
	}
	return args, keywords
}

func (p *Parser) finishSubscript(value ast.Expr) ast.Expr {
	slice := p.subscriptBody()
	end := p.consume(lexer.RightBracket, "expected ']' after subscript")
	return &ast.Subscript{
		Loc:   ast.NewLoc(span(value.GetSpan().Start, end.End())),
		Value: value,
		Slice: slice,
		Ctx:   ast.Load,
	}
}

// subscriptBody parses one or more comma-separated slice items; a
// single item is returned bare, multiple become a Tuple of slices.
func (p *Parser) subscriptBody() ast.Expr {
	first := p.sliceItem()
	if !p.check(lexer.Comma) {
		return first
	}
	items := []ast.Expr{first}
	for p.match(lexer.Comma) {
		if p.check(lexer.RightBracket) {
			break
		}
		items = append(items, p.sliceItem())
	}
	return &ast.Tuple{
		Loc:  ast.NewLoc(exprSpan(items[0], items[len(items)-1])),
		Elts: items,
		Ctx:  ast.Load,
	}
}

func (p *Parser) sliceItem() ast.Expr {
	start := p.here()
	var lower, upper, step ast.Expr
	if !p.check(lexer.Colon) {
		lower = p.expression()
	}
	if !p.match(lexer.Colon) {
		return lower
	}
	if !p.check(lexer.Colon) && !p.check(lexer.RightBracket) && !p.check(lexer.Comma) {
		upper = p.expression()
	}
	if p.match(lexer.Colon) {
		if !p.check(lexer.RightBracket) && !p.check(lexer.Comma) {
			step = p.expression()
		}
	}
	end := p.previous().End()
	return &ast.Slice{Loc: ast.NewLoc(span(start, end)), Lower: lower, Upper: upper, Step: step}
}

// atom parses a literal, name, or parenthesized/bracketed display.
func (p *Parser) atom() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case lexer.False:
		p.advance()
		return &ast.Constant{Loc: ast.NewLoc(tok.Span), Value: false}
	case lexer.True:
		p.advance()
		return &ast.Constant{Loc: ast.NewLoc(tok.Span), Value: true}
	case lexer.None:
		p.advance()
		return &ast.Constant{Loc: ast.NewLoc(tok.Span), Value: nil}
	case lexer.Ellipsis:
		p.advance()
		return &ast.Constant{Loc: ast.NewLoc(tok.Span), Value: ast.Ellipsis{}}
	case lexer.Number:
		p.advance()
		return &ast.Constant{Loc: ast.NewLoc(tok.Span), Value: tok.Literal}
	case lexer.String:
		return p.stringAtom()
	case lexer.Identifier:
		p.advance()
		return ast.NewName(tok.Lexeme, ast.Load, tok.Span)
	case lexer.LeftParen:
		return p.parenAtom()
	case lexer.LeftBracket:
		return p.listAtom()
	case lexer.LeftBrace:
		return p.braceAtom()
	case lexer.Yield:
		return p.yieldExpr()
	}
	p.fail(tok, "expected expression")
	return nil
}

// stringAtom consumes one or more adjacent String tokens (implicit
// concatenation) and builds either a Constant or, if any piece is an
// f-string, a JoinedStr splicing the plain pieces in as Constants.
func (p *Parser) stringAtom() ast.Expr {
	start := p.peek()
	var pieces []ast.Expr
	anyF := false
	var text strings.Builder
	var bytesVal []byte
	anyBytes := false
	bytesKind := ""
	strKind := ""
	fKind := ""

	flushPlain := func() {
		if text.Len() == 0 {
			return
		}
		pieces = append(pieces, &ast.Constant{Loc: ast.NewLoc(start.Span), Value: text.String(), Kind: strKind})
		text.Reset()
	}

	for p.check(lexer.String) {
		tok := p.advance()
		lit := splitStringLexeme(tok.Lexeme)
		if lit.isF {
			anyF = true
			flushPlain()
			joined := p.parseFString(tok)
			if fKind == "" {
				// The unparser writes the 'f' itself, so Kind keeps the rest.
				fKind = strings.NewReplacer("f", "", "F", "").Replace(joined.Kind)
			}
			pieces = append(pieces, joined.Values...)
			continue
		}
		if lit.isBytes {
			if !anyBytes {
				bytesKind = lit.kind
			}
			anyBytes = true
			bytesVal = append(bytesVal, []byte(decodeBody(lit))...)
			continue
		}
		if strKind == "" {
			strKind = lit.kind
		}
		text.WriteString(decodeBody(lit))
	}
	flushPlain()

	end := p.previous()
	if !anyF {
		if anyBytes {
			return &ast.Constant{Loc: ast.NewLoc(span(start.Start(), end.End())), Value: bytesVal, Kind: bytesKind}
		}
		if len(pieces) == 1 {
			if c, ok := pieces[0].(*ast.Constant); ok {
				c.Loc = ast.NewLoc(span(start.Start(), end.End()))
				return c
			}
		}
		var sb strings.Builder
		for _, piece := range pieces {
			if c, ok := piece.(*ast.Constant); ok {
				if s, ok := c.Value.(string); ok {
					sb.WriteString(s)
				}
			}
		}
		return &ast.Constant{Loc: ast.NewLoc(span(start.Start(), end.End())), Value: sb.String(), Kind: strKind}
	}
	return &ast.JoinedStr{Loc: ast.NewLoc(span(start.Start(), end.End())), Values: pieces, Kind: fKind}
}

func decodeBody(lit stringLiteral) string {
	if lit.isRaw {
		return lit.body
	}
	return decodeEscapes(lit.body)
}

func (p *Parser) yieldExpr() ast.Expr {
	start := p.consume(lexer.Yield, "expected 'yield'")
	if p.match(lexer.From) {
		value := p.expression()
		return &ast.YieldFrom{Loc: ast.NewLoc(span(start.Start(), value.GetSpan().End)), Value: value}
	}
	if p.atExpressionEnd() {
		return &ast.Yield{Loc: ast.NewLoc(start.Span)}
	}
	value := p.starExpressions()
	return &ast.Yield{Loc: ast.NewLoc(span(start.Start(), value.GetSpan().End)), Value: value}
}

func (p *Parser) atExpressionEnd() bool {
	switch p.peek().Type {
	case lexer.Newline, lexer.Semicolon, lexer.RightParen, lexer.RightBracket,
		lexer.RightBrace, lexer.Comma, lexer.Colon, lexer.EOF, lexer.Dedent:
		return true
	}
	return false
}

// parenAtom disambiguates between a parenthesized expression, a
// generator expression, and a tuple display.
func (p *Parser) parenAtom() ast.Expr {
	start := p.consume(lexer.LeftParen, "expected '('")
	if p.match(lexer.RightParen) {
		return &ast.Tuple{Loc: ast.NewLoc(span(start.Start(), p.previous().End())), Ctx: ast.Load}
	}
	if p.check(lexer.Yield) {
		value := p.yieldExpr()
		end := p.consume(lexer.RightParen, "expected ')' after yield expression")
		return withSpan(value, span(start.Start(), end.End()))
	}

	first := p.starNamedExpression()
	if p.check(lexer.For) || (p.check(lexer.Async) && p.checkNext(lexer.For)) {
		generators := p.comprehensionClauses()
		end := p.consume(lexer.RightParen, "expected ')' after generator expression")
		return &ast.GeneratorExp{
			Loc:        ast.NewLoc(span(start.Start(), end.End())),
			Elt:        first,
			Generators: generators,
		}
	}

	if !p.check(lexer.Comma) {
		end := p.consume(lexer.RightParen, "expected ')'")
		return withSpan(first, span(start.Start(), end.End()))
	}

	elts := []ast.Expr{first}
	for p.match(lexer.Comma) {
		if p.check(lexer.RightParen) {
			break
		}
		elts = append(elts, p.starNamedExpression())
	}
	end := p.consume(lexer.RightParen, "expected ')' after tuple")
	return &ast.Tuple{Loc: ast.NewLoc(span(start.Start(), end.End())), Elts: elts, Ctx: ast.Load}
}

// withSpan rewraps a parenthesized expression's span to include the
// surrounding parens, without discarding its inner node type.
func withSpan(e ast.Expr, s lexer.Span) ast.Expr {
	switch n := e.(type) {
	case *ast.Name:
		n.Loc = ast.NewLoc(s)
	case *ast.Constant:
		n.Loc = ast.NewLoc(s)
	case *ast.BinOp:
		n.Loc = ast.NewLoc(s)
	case *ast.BoolOp:
		n.Loc = ast.NewLoc(s)
	case *ast.UnaryOp:
		n.Loc = ast.NewLoc(s)
	case *ast.Compare:
		n.Loc = ast.NewLoc(s)
	case *ast.Call:
		n.Loc = ast.NewLoc(s)
	case *ast.Attribute:
		n.Loc = ast.NewLoc(s)
	case *ast.Subscript:
		n.Loc = ast.NewLoc(s)
	case *ast.Lambda:
		n.Loc = ast.NewLoc(s)
	case *ast.IfExp:
		n.Loc = ast.NewLoc(s)
	case *ast.NamedExpr:
		n.Loc = ast.NewLoc(s)
	case *ast.Yield:
		n.Loc = ast.NewLoc(s)
	case *ast.YieldFrom:
		n.Loc = ast.NewLoc(s)
	case *ast.Await:
		n.Loc = ast.NewLoc(s)
	case *ast.Starred:
		n.Loc = ast.NewLoc(s)
	case *ast.Tuple:
		n.Loc = ast.NewLoc(s)
	case *ast.List:
		n.Loc = ast.NewLoc(s)
	case *ast.Dict:
		n.Loc = ast.NewLoc(s)
	case *ast.Set:
		n.Loc = ast.NewLoc(s)
	case *ast.GeneratorExp:
		n.Loc = ast.NewLoc(s)
	case *ast.ListComp:
		n.Loc = ast.NewLoc(s)
	case *ast.SetComp:
		n.Loc = ast.NewLoc(s)
	case *ast.DictComp:
		n.Loc = ast.NewLoc(s)
	case *ast.JoinedStr:
		n.Loc = ast.NewLoc(s)
	case *ast.FormattedValue:
		n.Loc = ast.NewLoc(s)
	}
	return e
}

func (p *Parser) listAtom() ast.Expr {
	start := p.consume(lexer.LeftBracket, "expected '['")
	if p.match(lexer.RightBracket) {
		return &ast.List{Loc: ast.NewLoc(span(start.Start(), p.previous().End())), Ctx: ast.Load}
	}
	first := p.starNamedExpression()
	if p.check(lexer.For) || (p.check(lexer.Async) && p.checkNext(lexer.For)) {
		generators := p.comprehensionClauses()
		end := p.consume(lexer.RightBracket, "expected ']' after list comprehension")
		return &ast.ListComp{Loc: ast.NewLoc(span(start.Start(), end.End())), Elt: first, Generators: generators}
	}
	elts := []ast.Expr{first}
	for p.match(lexer.Comma) {
		if p.check(lexer.RightBracket) {
			break
		}
		elts = append(elts, p.starNamedExpression())
	}
	end := p.consume(lexer.RightBracket, "expected ']' after list")
	return &ast.List{Loc: ast.NewLoc(span(start.Start(), end.End())), Elts: elts, Ctx: ast.Load}
}

// braceAtom disambiguates set/dict displays and their comprehension
// forms, all of which start with '{'.
func (p *Parser) braceAtom() ast.Expr {
	start := p.consume(lexer.LeftBrace, "expected '{'")
	if p.match(lexer.RightBrace) {
		return &ast.Dict{Loc: ast.NewLoc(span(start.Start(), p.previous().End()))}
	}

	if p.match(lexer.StarStar) {
		value := p.bitwiseOr()
		keys := []ast.Expr{nil}
		values := []ast.Expr{value}
		for p.match(lexer.Comma) {
			if p.check(lexer.RightBrace) {
				break
			}
			k, v := p.dictItem()
			keys = append(keys, k)
			values = append(values, v)
		}
		end := p.consume(lexer.RightBrace, "expected '}' after dict")
		return &ast.Dict{Loc: ast.NewLoc(span(start.Start(), end.End())), Keys: keys, Values: values}
	}

	firstKey := p.expression()
	if p.match(lexer.Colon) {
		firstValue := p.expression()
		if p.check(lexer.For) || (p.check(lexer.Async) && p.checkNext(lexer.For)) {
			generators := p.comprehensionClauses()
			end := p.consume(lexer.RightBrace, "expected '}' after dict comprehension")
			return &ast.DictComp{Loc: ast.NewLoc(span(start.Start(), end.End())), Key: firstKey, Value: firstValue, Generators: generators}
		}
		keys := []ast.Expr{firstKey}
		values := []ast.Expr{firstValue}
		for p.match(lexer.Comma) {
			if p.check(lexer.RightBrace) {
				break
			}
			k, v := p.dictItem()
			keys = append(keys, k)
			values = append(values, v)
		}
		end := p.consume(lexer.RightBrace, "expected '}' after dict")
		return &ast.Dict{Loc: ast.NewLoc(span(start.Start(), end.End())), Keys: keys, Values: values}
	}

	// Set display or set comprehension.
	if p.check(lexer.For) || (p.check(lexer.Async) && p.checkNext(lexer.For)) {
		generators := p.comprehensionClauses()
		end := p.consume(lexer.RightBrace, "expected '}' after set comprehension")
		return &ast.SetComp{Loc: ast.NewLoc(span(start.Start(), end.End())), Elt: firstKey, Generators: generators}
	}
	elts := []ast.Expr{firstKey}
	for p.match(lexer.Comma) {
		if p.check(lexer.RightBrace) {
			break
		}
		elts = append(elts, p.starNamedExpression())
	}
	end := p.consume(lexer.RightBrace, "expected '}' after set")
	return &ast.Set{Loc: ast.NewLoc(span(start.Start(), end.End())), Elts: elts}
}

func (p *Parser) dictItem() (ast.Expr, ast.Expr) {
	if p.match(lexer.StarStar) {
		return nil, p.bitwiseOr()
	}
	k := p.expression()
	p.consume(lexer.Colon, "expected ':' in dict entry")
	v := p.expression()
	return k, v
}

func (p *Parser) comprehensionClauses() []*ast.Comprehension {
	var clauses []*ast.Comprehension
	for p.check(lexer.For) || (p.check(lexer.Async) && p.checkNext(lexer.For)) {
		isAsync := p.match(lexer.Async)
		p.consume(lexer.For, "expected 'for' in comprehension")
		target := p.targetList()
		p.consume(lexer.In, "expected 'in' in comprehension")
		iter := p.disjunction()
		var ifs []ast.Expr
		for p.match(lexer.If) {
			ifs = append(ifs, p.disjunctionOrWalrus())
		}
		clauses = append(clauses, &ast.Comprehension{Target: target, Iter: iter, Ifs: ifs, IsAsync: isAsync})
	}
	return clauses
}

// disjunctionOrWalrus handles a comprehension `if` clause, which may
// itself be a walrus assignment.
func (p *Parser) disjunctionOrWalrus() ast.Expr {
	if p.check(lexer.Identifier) && p.checkNext(lexer.Walrus) {
		return p.namedExpression()
	}
	return p.disjunction()
}

// starExpressions parses the comma-joined top level used by expression
// statements, return values, and assignment right-hand sides: a single
// expression, or a Tuple if a comma follows.
func (p *Parser) starExpressions() ast.Expr {
	first := p.starExpression()
	if !p.check(lexer.Comma) {
		return first
	}
	elts := []ast.Expr{first}
	for p.match(lexer.Comma) {
		if p.atExpressionEnd() {
			break
		}
		elts = append(elts, p.starExpression())
	}
	return &ast.Tuple{Loc: ast.NewLoc(exprSpan(elts[0], elts[len(elts)-1])), Elts: elts, Ctx: ast.Load}
}

func (p *Parser) starExpression() ast.Expr {
	if p.match(lexer.Star) {
		star := p.previous()
		value := p.bitwiseOr()
		return &ast.Starred{Loc: ast.NewLoc(span(star.Start(), value.GetSpan().End)), Value: value, Ctx: ast.Load}
	}
	return p.expression()
}

func (p *Parser) starNamedExpression() ast.Expr {
	if p.match(lexer.Star) {
		star := p.previous()
		value := p.bitwiseOr()
		return &ast.Starred{Loc: ast.NewLoc(span(star.Start(), value.GetSpan().End)), Value: value, Ctx: ast.Load}
	}
	return p.namedExpression()
}
