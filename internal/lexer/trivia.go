package lexer

import (
	"aegis/internal/diag"
	"aegis/internal/token"
)

// collectLeadingTrivia gathers the trivia before a significant token.
// - ' ', '\t', '\f', '\r' коалесцируются в один TriviaSpace
// - # ... до \n -> TriviaComment
// - '\' + '\n' -> TriviaContinuation
// - '\n' внутри скобок -> TriviaNewline (неявное продолжение строки)
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case isSpaceByte(b):
			for isSpaceByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.holdSpan(token.TriviaSpace, lx.cursor.SpanFrom(start))

		case b == '#':
			lx.scanCommentIntoHold()

		case b == '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
				lx.holdSpan(token.TriviaContinuation, lx.cursor.SpanFrom(start))
				continue
			}
			sp := lx.cursor.SpanFrom(start)
			if lx.cursor.EOF() {
				lx.errLex(diag.LexBadContinuation, sp, "unexpected EOF after line continuation character")
			} else {
				lx.errLex(diag.LexBadContinuation, sp, "unexpected character after line continuation character")
			}

		case b == '\n' && len(lx.parens) > 0:
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.holdSpan(token.TriviaNewline, lx.cursor.SpanFrom(start))

		default:
			// нет больше trivia
			return
		}
	}
}

// # ... до конца строки, сам '\n' не съедаем
func (lx *Lexer) scanCommentIntoHold() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.holdSpan(token.TriviaComment, lx.cursor.SpanFrom(start))
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\f' || b == '\r'
}
