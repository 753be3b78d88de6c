package parser

import (
	"slices"

	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/lexer"
	"aegis/internal/source"
	"aegis/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Module  *ast.Module
	Builder *ast.Builder
	Bag     *diag.Bag
	Errors  uint
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer // поток токенов (Peek/Next)
	b        *ast.Builder // построитель аренных узлов
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile — входная точка для разбора одного модуля.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(lx *lexer.Lexer, b *ast.Builder, opts Options) Result {
	p := Parser{
		lx:       lx,
		b:        b,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	mod := p.parseModule()
	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = br.Bag
	case diag.BagReporter:
		bag = br.Bag
	}
	return Result{
		Module:  mod,
		Builder: b,
		Bag:     bag,
		Errors:  p.opts.CurrentErrors,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

// parseModule — основной цикл верхнего уровня: пока не EOF — parseStatement.
func (p *Parser) parseModule() *ast.Module {
	mod := &ast.Module{}
	startSpan := p.peek().Span
	for !p.at(token.EOF) && !p.opts.Enough() {
		switch p.peek().Kind {
		case token.Newline, token.Dedent:
			p.advance()
			continue
		case token.Indent:
			p.err(diag.SynUnexpectedIndent, "unexpected indent")
			p.skipIndentedBlock()
			continue
		}
		mod.Body = append(mod.Body, p.parseStatement()...)
	}
	mod.Span = startSpan.Cover(p.lastSpan)
	return mod
}
