package lexer

import (
	"strings"

	"aegis/internal/diag"
	"aegis/internal/token"
)

// Supports 0, 123, 1_000, 0b..., 0o..., 0x..., 1.0, .5, 1., 1e-3, 1.0E+10, 3j, 1.5e2J.
// A single '_' is allowed only between digits. A decimal integer with leading zeros
// (other than "0", "00") is an error, as in Python 3.
// Malformed numbers are reported and returned as Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	bad := ""

	if lx.cursor.Peek() == '0' {
		{
			b1 := lx.cursor.At(1)
			var digit func(byte) bool
			var name string
			switch b1 {
			case 'x', 'X':
				digit, name = isHex, "hexadecimal"
			case 'o', 'O':
				digit, name = isOct, "octal"
			case 'b', 'B':
				digit, name = isBin, "binary"
			}
			if digit != nil {
				lx.cursor.Bump()
				lx.cursor.Bump()
				n, ok := lx.digitsWith(digit, true)
				if n == 0 || !ok || isIdentContinueByte(lx.cursor.Peek()) {
					for isIdentContinueByte(lx.cursor.Peek()) {
						lx.cursor.Bump()
					}
					bad = "invalid " + name + " literal"
				}
				return lx.emitNumber(start, kind, bad)
			}
		}
	}

	intDigits := 0
	if lx.cursor.Peek() != '.' {
		n, ok := lx.digitsWith(isDec, false)
		intDigits = n
		if !ok {
			bad = "invalid decimal literal"
		}
	}

	// дробная часть
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		if isDec(lx.cursor.Peek()) {
			if _, ok := lx.digitsWith(isDec, false); !ok {
				bad = "invalid decimal literal"
			}
		} else if intDigits == 0 {
			bad = "invalid decimal literal"
		}
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		kind = token.FloatLit
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		n, ok := lx.digitsWith(isDec, false)
		if n == 0 || !ok {
			bad = "invalid decimal literal"
		}
	}

	// мнимая часть
	if b := lx.cursor.Peek(); b == 'j' || b == 'J' {
		lx.cursor.Bump()
		kind = token.ImagLit
	}

	if bad == "" && kind == token.IntLit {
		text := string(lx.file.Content[start:lx.cursor.Off])
		digits := strings.ReplaceAll(text, "_", "")
		if len(digits) > 1 && digits[0] == '0' && strings.Trim(digits, "0") != "" {
			bad = "leading zeros in decimal integer literals are not permitted"
		}
	}
	return lx.emitNumber(start, kind, bad)
}

func (lx *Lexer) emitNumber(start Mark, kind token.Kind, bad string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if bad != "" {
		lx.errLex(diag.LexBadNumber, sp, bad)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

// digitsWith consumes digits with single '_' separators.
// leadingUnderscore allows '_' before the first digit (0x_ff).
// ok is false when a '_' is not between digits.
func (lx *Lexer) digitsWith(digit func(byte) bool, leadingUnderscore bool) (n int, ok bool) {
	ok = true
	for {
		b := lx.cursor.Peek()
		switch {
		case lx.cursor.EOF():
			return n, ok
		case digit(b):
			lx.cursor.Bump()
			n++
		case b == '_':
			if !digit(lx.cursor.At(1)) || (n == 0 && !leadingUnderscore) {
				lx.cursor.Bump()
				return n, false
			}
			lx.cursor.Bump()
		default:
			return n, ok
		}
	}
}
