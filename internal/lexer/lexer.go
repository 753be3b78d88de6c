package lexer

import (
	"fmt"

	"aegis/internal/diag"
	"aegis/internal/source"
	"aegis/internal/token"
)

// maxTokenLength caps a single token; past it the lexer gives up.
const maxTokenLength = 1 << 16

// indentLevel stores indentation width in two metrics:
// col expands tabs to a multiple of 8, alt counts a tab as one column.
// If they disagree, tabs and spaces were mixed.
type indentLevel struct {
	col int
	alt int
}

type Lexer struct {
	file      *source.File
	cursor    Cursor
	opts      Options
	look      []token.Token  // lookahead buffer
	hold      []token.Trivia // накопленные leading trivia
	pending   []token.Token  // synthesized NEWLINE/INDENT/DEDENT
	indents   []indentLevel  // indentation stack, bottom is always 0
	parens    []token.Token  // open brackets
	lineStart bool
	lastKind  token.Kind
	done      bool // EOF уже выдан (или лексер остановлен)
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		indents:   []indentLevel{{}},
		lineStart: true,
		lastKind:  token.Newline,
	}
}

// Next returns the next significant token with Leading already collected.
// The stream always ends with NEWLINE (if there was a logical line),
// the closing DEDENTs and EOF. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if len(lx.look) > 0 {
		tok := lx.look[0]
		lx.look = lx.look[1:]
		return tok
	}
	return lx.lex()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	return lx.PeekAt(0)
}

// PeekAt returns the n-th upcoming token (0 is the same as Peek) without consuming it.
// The stream ends with EOF, so peeking past the end keeps returning EOF.
func (lx *Lexer) PeekAt(n int) token.Token {
	for len(lx.look) <= n {
		lx.look = append(lx.look, lx.lex())
	}
	return lx.look[n]
}

func (lx *Lexer) lex() token.Token {
	tok := lx.next()
	lx.lastKind = tok.Kind
	return tok
}

// EmptySpan is a zero-length span at the cursor.
func (lx *Lexer) EmptySpan() source.Span {
	return lx.emptySpan()
}

func (lx *Lexer) next() token.Token {
	if len(lx.pending) > 0 {
		tok := lx.pending[0]
		lx.pending = lx.pending[1:]
		return tok
	}
	if lx.done {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	if lx.lineStart && len(lx.parens) == 0 {
		lx.lineStart = false
		if tok, ok := lx.scanIndentation(); ok {
			return tok
		}
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return lx.finish()
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '\n':
		// конец логической строки; внутри скобок '\n' уже ушёл в trivia
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		tok = token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(start), Text: "\n"}
		lx.lineStart = true

	case ch == '\'' || ch == '"':
		tok = lx.scanString(0)

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		if n, ok := lx.stringPrefix(); ok {
			tok = lx.scanString(n)
		} else {
			tok = lx.scanIdentOrKeyword()
		}

	case isDec(ch), ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	lx.trackBrackets(tok)

	tok.Leading = lx.hold
	lx.hold = nil

	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, fmt.Sprintf("token is longer than %d bytes", maxTokenLength))
		lx.cursor.Off = lx.cursor.limit()
		lx.done = true
		tok.Kind = token.Invalid
		tok.Text = ""
	}
	return tok
}

// scanIndentation skips blank and comment-only lines at line start
// and compares the indentation of the first real line against the stack.
func (lx *Lexer) scanIndentation() (token.Token, bool) {
	for {
		start := lx.cursor.Mark()
		col, alt := lx.measureIndent()
		ws := lx.cursor.SpanFrom(start)

		if lx.cursor.EOF() {
			lx.holdSpan(token.TriviaSpace, ws)
			return token.Token{}, false
		}
		switch lx.cursor.Peek() {
		case '#', '\n':
			lx.holdSpan(token.TriviaSpace, ws)
			if lx.cursor.Peek() == '#' {
				lx.scanCommentIntoHold()
			}
			if lx.cursor.Peek() == '\n' {
				nl := lx.cursor.Mark()
				lx.cursor.Bump()
				lx.holdSpan(token.TriviaNewline, lx.cursor.SpanFrom(nl))
			}
			continue
		}

		top := lx.indents[len(lx.indents)-1]
		switch {
		case col == top.col:
			if alt != top.alt {
				lx.errLex(diag.LexTabSpaceMix, ws, "inconsistent use of tabs and spaces in indentation")
			}
			lx.holdSpan(token.TriviaSpace, ws)
			return token.Token{}, false

		case col > top.col:
			if alt <= top.alt {
				lx.errLex(diag.LexTabSpaceMix, ws, "inconsistent use of tabs and spaces in indentation")
			}
			lx.indents = append(lx.indents, indentLevel{col: col, alt: alt})
			tok := token.Token{
				Kind:    token.Indent,
				Span:    ws,
				Text:    string(lx.file.Content[ws.Start:ws.End]),
				Leading: lx.hold,
			}
			lx.hold = nil
			return tok, true

		default:
			lx.holdSpan(token.TriviaSpace, ws)
			at := lx.emptySpan()
			for len(lx.indents) > 1 && col < lx.indents[len(lx.indents)-1].col {
				lx.indents = lx.indents[:len(lx.indents)-1]
				lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: at})
			}
			cur := lx.indents[len(lx.indents)-1]
			if col != cur.col {
				lx.errLex(diag.LexInconsistentDedent, ws, "unindent does not match any outer indentation level")
			} else if alt != cur.alt {
				lx.errLex(diag.LexTabSpaceMix, ws, "inconsistent use of tabs and spaces in indentation")
			}
			tok := lx.pending[0]
			lx.pending = lx.pending[1:]
			tok.Leading = lx.hold
			lx.hold = nil
			return tok, true
		}
	}
}

func (lx *Lexer) measureIndent() (col, alt int) {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ':
			col++
			alt++
		case '\t':
			col = (col/8 + 1) * 8
			alt++
		case '\f':
			col, alt = 0, 0
		default:
			return col, alt
		}
		lx.cursor.Bump()
	}
	return col, alt
}

// finish emits the stream tail: NEWLINE, a DEDENT per level, then EOF.
func (lx *Lexer) finish() token.Token {
	lx.done = true
	at := lx.emptySpan()
	if n := len(lx.parens); n > 0 {
		open := lx.parens[n-1]
		lx.errLex(diag.LexUnbalancedBracket, open.Span, fmt.Sprintf("'%s' was never closed", open.Text))
		lx.parens = nil
	}
	if lx.lastKind != token.Newline && lx.lastKind != token.Dedent {
		lx.pending = append(lx.pending, token.Token{Kind: token.Newline, Span: at})
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: at})
	}
	lx.pending = append(lx.pending, token.Token{Kind: token.EOF, Span: at})
	lx.hold = nil
	tok := lx.pending[0]
	lx.pending = lx.pending[1:]
	return tok
}

// trackBrackets maintains the bracket stack for implicit line joining.
func (lx *Lexer) trackBrackets(tok token.Token) {
	switch tok.Kind {
	case token.LParen, token.LBracket, token.LBrace:
		lx.parens = append(lx.parens, tok)
	case token.RParen, token.RBracket, token.RBrace:
		n := len(lx.parens)
		if n == 0 {
			lx.errLex(diag.LexUnbalancedBracket, tok.Span, fmt.Sprintf("unmatched '%s'", tok.Text))
			return
		}
		open := lx.parens[n-1]
		lx.parens = lx.parens[:n-1]
		if closerFor(open.Kind) != tok.Kind {
			lx.errLex(diag.LexUnbalancedBracket, tok.Span,
				fmt.Sprintf("closing parenthesis '%s' does not match opening parenthesis '%s'", tok.Text, open.Text))
		}
	}
}

func closerFor(k token.Kind) token.Kind {
	switch k {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	case token.LBrace:
		return token.RBrace
	}
	return token.Invalid
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) holdSpan(kind token.TriviaKind, sp source.Span) {
	if sp.Empty() {
		return
	}
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}
