package parser

import (
	"aegis/internal/diag"
	"aegis/internal/source"
	"aegis/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && !tok.IsLayout() {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan — span текущего токена; для NEWLINE/INDENT/DEDENT/EOF —
// позиция сразу после последнего съеденного токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if (peek.Kind == token.EOF || peek.IsLayout()) && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) bool {
	return p.report(code, diag.SevError, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	return p.emit(diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg))
}

// emit counts errors and forwards the diagnostic until MaxErrors is reached.
func (p *Parser) emit(b *diag.ReportBuilder) bool {
	if b.Diagnostic().Severity == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil {
		return false // нет reporter - ничего не записали
	}
	if p.opts.MaxErrors != 0 && p.opts.CurrentErrors > p.opts.MaxErrors {
		return false // достигли максимального количества ошибок
	}
	b.Emit()
	return true
}

// expectColon consumes the ':' after a compound statement header.
// When it is missing, the diagnostic suggests inserting ':' right after the header.
func (p *Parser) expectColon() bool {
	if p.at(token.Colon) {
		p.advance()
		return true
	}
	at := source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	p.emit(diag.ReportError(p.opts.Reporter, diag.SynExpectColon, p.getDiagnosticSpan(), "expected ':'").
		WithFix("insert ':'", diag.FixEdit{Span: at, NewText: ":"}))
	return false
}

// errorsMark/errorsSince позволяют понять, упал ли разбор конструкции.
func (p *Parser) errorsMark() uint { return p.opts.CurrentErrors }

func (p *Parser) errorsSince(mark uint) bool { return p.opts.CurrentErrors > mark }

// spanFrom — от начала конструкции до последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

// resyncLine прокручивает до конца логической строки (NEWLINE съедается) или EOF.
func (p *Parser) resyncLine() {
	for !p.atOr(token.Newline, token.EOF) {
		p.advance()
	}
	if p.at(token.Newline) {
		p.advance()
	}
}

// recoverHeader — восстановление после ошибки в заголовке составного оператора:
// строка пропускается вместе с телом, если оно есть.
func (p *Parser) recoverHeader() {
	p.resyncLine()
	if p.at(token.Indent) {
		p.skipIndentedBlock()
	}
}

// skipIndentedBlock пропускает INDENT ... парный DEDENT.
func (p *Parser) skipIndentedBlock() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.advance().Kind {
		case token.Indent:
			depth++
		case token.Dedent:
			depth--
			if depth <= 0 {
				return
			}
		}
	}
}

func describeToken(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Newline:
		return "end of line"
	case token.Indent:
		return "indent"
	case token.Dedent:
		return "dedent"
	}
	return "'" + tok.Text + "'"
}
