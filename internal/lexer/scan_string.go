package lexer

import (
	"strings"

	"aegis/internal/diag"
	"aegis/internal/token"
)

// stringPrefix reports whether a string literal with a prefix starts here
// (r, u, b, f, br, rb, fr, rf in any case) and returns the prefix length.
func (lx *Lexer) stringPrefix() (int, bool) {
	rest := lx.cursor.Rest()
	for n := 0; n < len(rest) && n <= 2; n++ {
		switch rest[n] {
		case '\'', '"':
			if n == 0 {
				return 0, false
			}
			return n, validStringPrefix(strings.ToLower(string(rest[:n])))
		case 'r', 'R', 'u', 'U', 'b', 'B', 'f', 'F':
			continue
		default:
			return 0, false
		}
	}
	return 0, false
}

func validStringPrefix(p string) bool {
	switch p {
	case "r", "u", "b", "f", "br", "rb", "fr", "rf":
		return true
	}
	return false
}

// scanString scans a single- or triple-quoted literal after a prefix of prefixLen bytes.
// Escapes are not decoded: '\' only protects the next byte.
// A newline inside a single-quoted literal is an error.
func (lx *Lexer) scanString(prefixLen int) token.Token {
	start := lx.cursor.Mark()
	prefix := ""
	for range prefixLen {
		prefix += string(lx.cursor.Bump())
	}
	prefix = strings.ToLower(prefix)

	kind := token.StringLit
	switch {
	case strings.Contains(prefix, "b"):
		kind = token.BytesLit
	case strings.Contains(prefix, "f"):
		kind = token.FStringLit
	}

	quote := lx.cursor.Bump()
	triple := false
	closing := string([]byte{quote})
	if lx.cursor.At(0) == quote && lx.cursor.At(1) == quote {
		lx.cursor.Bump()
		lx.cursor.Bump()
		triple = true
		closing = strings.Repeat(closing, 3)
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		case triple && b == quote:
			if lx.cursor.EatPrefix(closing) {
				return lx.emitString(start, kind)
			}
		case !triple && b == quote:
			lx.cursor.Bump()
			return lx.emitString(start, kind)
		case !triple && b == '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}

	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	msg := "unterminated string literal"
	if triple {
		msg = "unterminated triple-quoted string literal"
	}
	lx.errLex(diag.LexUnterminatedString, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emitString(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
