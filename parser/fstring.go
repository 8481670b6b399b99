package parser

import (
	"strings"

	"pythia/ast"
	"pythia/lexer"
)

// parseFString splits a scanned f-string's body into Constant and
// FormattedValue fragments. The scanner handed us the whole
// literal as one String token; everything from here on — finding
// replacement-field boundaries, the optional `!conv`/`:format_spec`
// suffix, and recursively parsing each interpolated expression —
// happens in this package. A trailing `=` debug marker is not split
// off: it stays part of the expression text.
func (p *Parser) parseFString(tok lexer.Token) *ast.JoinedStr {
	lit := splitStringLexeme(tok.Lexeme)
	values := p.parseFStringBody(lit.body, lit.isRaw, tok)
	return &ast.JoinedStr{
		Loc:    ast.NewLoc(tok.Span),
		Values: values,
		Kind:   lit.kind,
	}
}

func (p *Parser) parseFStringBody(body string, isRaw bool, tok lexer.Token) []ast.Expr {
	values := make([]ast.Expr, 0, 4)
	var lit strings.Builder

	flush := func() {
		if lit.Len() == 0 {
			return
		}
		text := lit.String()
		if !isRaw {
			text = decodeEscapes(text)
		}
		values = append(values, &ast.Constant{Loc: ast.NewLoc(tok.Span), Value: text})
		lit.Reset()
	}

	i := 0
	for i < len(body) {
		c := body[i]
		switch c {
		case '{':
			if i+1 < len(body) && body[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			flush()
			field, next := scanReplacementField(body, i+1)
			values = append(values, p.parseReplacementField(field, tok))
			i = next
		case '}':
			if i+1 < len(body) && body[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			lit.WriteByte('}')
			i++
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return values
}

// scanReplacementField scans from just after an opening '{' to its
// matching '}', tracking nested brackets and quoted strings so that a
// brace, colon, or bang inside a nested call or string literal doesn't
// get mistaken for the field's own delimiters.
func scanReplacementField(body string, start int) (field string, next int) {
	depth := 0
	i := start
	for i < len(body) {
		c := body[i]
		switch c {
		case '{', '(', '[':
			depth++
		case ')', ']':
			depth--
		case '}':
			if depth == 0 {
				return body[start:i], i + 1
			}
			depth--
		case '\'', '"':
			i = skipNestedFStringString(body, i)
			continue
		}
		i++
	}
	return body[start:], len(body)
}

func skipNestedFStringString(body string, start int) int {
	quote := body[start]
	triple := start+2 < len(body) && body[start+1] == quote && body[start+2] == quote
	i := start + 1
	if triple {
		i += 2
	}
	for i < len(body) {
		if body[i] == '\\' {
			i += 2
			continue
		}
		if body[i] == quote {
			if triple {
				if i+2 < len(body) && body[i+1] == quote && body[i+2] == quote {
					return i + 3
				}
			} else {
				return i + 1
			}
		}
		i++
	}
	return i
}

// parseReplacementField parses one `expr [=] [!conv] [:format_spec]`
// field, recursively invoking a fresh Scanner and Parser over the
// expression text.
func (p *Parser) parseReplacementField(field string, tok lexer.Token) *ast.FormattedValue {
	exprText, conversion, formatSpec := splitReplacementField(field)

	value := p.parseFStringExpr(exprText, tok)

	var specExpr ast.Expr
	if formatSpec != "" {
		specValues := p.parseFStringBody(formatSpec, false, tok)
		specExpr = &ast.JoinedStr{Loc: ast.NewLoc(tok.Span), Values: specValues}
	}

	return &ast.FormattedValue{
		Loc:        ast.NewLoc(tok.Span),
		Value:      value,
		Conversion: conversion,
		FormatSpec: specExpr,
	}
}

// splitReplacementField separates the expression text from an optional
// `!s`/`!r`/`!a` conversion and `:format_spec`, scanning left to right
// and stopping nesting-depth tracking at each top-level delimiter. A
// trailing `=` debug marker is left in exprText (`{x=}` yields "x=").
func splitReplacementField(field string) (exprText string, conversion int, formatSpec string) {
	conversion = ast.ConversionNone
	depth := 0
	bangAt, colonAt := -1, -1
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		case '\'', '"':
			i = skipNestedFStringString(field, i) - 1
		case '!':
			if depth == 0 && bangAt == -1 && i+1 < len(field) && field[i+1] != '=' {
				bangAt = i
			}
		case ':':
			if depth == 0 && colonAt == -1 {
				colonAt = i
			}
		}
	}

	end := len(field)
	if colonAt != -1 {
		formatSpec = field[colonAt+1:]
		end = colonAt
	}
	if bangAt != -1 && bangAt < end {
		conv := field[bangAt+1 : end]
		switch conv {
		case "s":
			conversion = ast.ConversionStr
		case "r":
			conversion = ast.ConversionRepr
		case "a":
			conversion = ast.ConversionAscii
		}
		end = bangAt
	}
	exprText = strings.TrimSpace(field[:end])
	return exprText, conversion, formatSpec
}

// parseFStringExpr recursively lexes and parses one interpolation's
// expression text, reusing this parser's options (comment handling is
// irrelevant here since interpolations never contain comments). An
// expression that fails to lex or parse doesn't fail the whole file: it
// degrades to a bare Name carrying the raw text, so a malformed
// interpolation can't take down an otherwise well-formed module.
func (p *Parser) parseFStringExpr(text string, outer lexer.Token) (expr ast.Expr) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*Error); ok {
				expr = ast.NewName(text, ast.Load, outer.Span)
				return
			}
			panic(r)
		}
	}()

	scanner := lexer.NewScanner([]byte(text))
	tokens := scanner.ScanTokens()
	if len(scanner.Errors) > 0 {
		return ast.NewName(text, ast.Load, outer.Span)
	}
	sub := New(tokens, p.opts)
	result := sub.starExpressions()
	sub.skipNewlines()
	if !sub.isAtEnd() {
		p.fail(outer, "invalid syntax in f-string expression")
	}
	return result
}
