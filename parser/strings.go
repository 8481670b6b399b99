package parser

import (
	"strconv"
	"strings"
)

// stringLiteral is the result of splitting a scanned String token's raw
// lexeme into its prefix, quote style, and body text.
type stringLiteral struct {
	isF       bool
	isBytes   bool
	isRaw     bool
	kind      string // e.g. "'", `"`, `'''`, `"""`, prefixed with r/b/u as scanned
	body      string // text between the quotes, still escaped for non-raw strings
	isTriple  bool
}

// splitStringLexeme separates a raw lexeme like `rb'''abc'''` into its
// prefix letters, quote character/width, and inner body.
func splitStringLexeme(lexeme string) stringLiteral {
	i := 0
	for i < len(lexeme) && lexeme[i] != '"' && lexeme[i] != '\'' {
		i++
	}
	prefix := strings.ToLower(lexeme[:i])
	rest := lexeme[i:]

	quote := rest[0]
	triple := len(rest) >= 6 && rest[1] == quote && rest[2] == quote
	var body string
	if triple {
		body = rest[3 : len(rest)-3]
	} else {
		body = rest[1 : len(rest)-1]
	}

	quoteStr := string(quote)
	if triple {
		quoteStr = strings.Repeat(string(quote), 3)
	}

	return stringLiteral{
		isF:      strings.Contains(prefix, "f"),
		isBytes:  strings.Contains(prefix, "b"),
		isRaw:    strings.Contains(prefix, "r"),
		kind:     lexeme[:i] + quoteStr,
		body:     body,
		isTriple: triple,
	}
}

// decodeEscapes unescapes a non-raw string body's backslash escapes,
// per CPython's str.format escape table. Unknown escapes are left as-is
// (backslash and following char both kept), matching CPython's lenient
// DeprecationWarning-only behavior for invalid escapes.
func decodeEscapes(body string) string {
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i == len(body)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(body) && j < i+3 && body[j] >= '0' && body[j] <= '7' {
				j++
			}
			if n, err := strconv.ParseInt(body[i:j], 8, 32); err == nil {
				b.WriteRune(rune(n))
			}
			i = j - 1
		case '\n':
			// backslash-newline inside a string literal is a line
			// continuation: contributes nothing to the value.
		case 'x':
			if i+2 < len(body) {
				if n, err := strconv.ParseInt(body[i+1:i+3], 16, 32); err == nil {
					b.WriteRune(rune(n))
					i += 2
					continue
				}
			}
			b.WriteByte('\\')
			b.WriteByte(body[i])
		case 'u':
			if i+4 < len(body) {
				if n, err := strconv.ParseInt(body[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(n))
					i += 4
					continue
				}
			}
			b.WriteByte('\\')
			b.WriteByte(body[i])
		case 'U':
			if i+8 < len(body) {
				if n, err := strconv.ParseInt(body[i+1:i+9], 16, 32); err == nil {
					b.WriteRune(rune(n))
					i += 8
					continue
				}
			}
			b.WriteByte('\\')
			b.WriteByte(body[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String()
}
