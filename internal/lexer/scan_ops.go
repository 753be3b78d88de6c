package lexer

import (
	"fmt"

	"aegis/internal/diag"
	"aegis/internal/token"
)

// Longest match first: 3-byte operators, then 2-byte, then single bytes.
// A lone '!', '$', '?' or '`' is not a Python operator.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}
	}

	switch {
	case lx.cursor.EatPrefix("..."):
		return emit(token.Ellipsis)
	case lx.cursor.EatPrefix("**="):
		return emit(token.DoubleStarAssign)
	case lx.cursor.EatPrefix("//="):
		return emit(token.DoubleSlashAssign)
	case lx.cursor.EatPrefix(">>="):
		return emit(token.ShrAssign)
	case lx.cursor.EatPrefix("<<="):
		return emit(token.ShlAssign)
	}

	switch {
	case lx.cursor.EatPrefix("**"):
		return emit(token.DoubleStar)
	case lx.cursor.EatPrefix("//"):
		return emit(token.DoubleSlash)
	case lx.cursor.EatPrefix("<<"):
		return emit(token.Shl)
	case lx.cursor.EatPrefix(">>"):
		return emit(token.Shr)
	case lx.cursor.EatPrefix("<="):
		return emit(token.LtEq)
	case lx.cursor.EatPrefix(">="):
		return emit(token.GtEq)
	case lx.cursor.EatPrefix("=="):
		return emit(token.EqEq)
	case lx.cursor.EatPrefix("!="):
		return emit(token.NotEq)
	case lx.cursor.EatPrefix("->"):
		return emit(token.Arrow)
	case lx.cursor.EatPrefix(":="):
		return emit(token.Walrus)
	case lx.cursor.EatPrefix("+="):
		return emit(token.PlusAssign)
	case lx.cursor.EatPrefix("-="):
		return emit(token.MinusAssign)
	case lx.cursor.EatPrefix("*="):
		return emit(token.StarAssign)
	case lx.cursor.EatPrefix("/="):
		return emit(token.SlashAssign)
	case lx.cursor.EatPrefix("%="):
		return emit(token.PercentAssign)
	case lx.cursor.EatPrefix("@="):
		return emit(token.AtAssign)
	case lx.cursor.EatPrefix("&="):
		return emit(token.AmpAssign)
	case lx.cursor.EatPrefix("|="):
		return emit(token.PipeAssign)
	case lx.cursor.EatPrefix("^="):
		return emit(token.CaretAssign)
	}

	// односимвольные
	if lx.cursor.Peek() >= utf8RuneSelf {
		r, _ := lx.peekRune()
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("invalid character '%c' (U+%04X)", r, r))
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '@':
		return emit(token.At)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case '^':
		return emit(token.Caret)
	case '~':
		return emit(token.Tilde)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case ',':
		return emit(token.Comma)
	case ':':
		return emit(token.Colon)
	case '.':
		return emit(token.Dot)
	case ';':
		return emit(token.Semicolon)
	case '=':
		return emit(token.Assign)
	default:
		// неизвестный символ
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("invalid character '%c'", ch))
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
}
