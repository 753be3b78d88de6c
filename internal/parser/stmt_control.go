package parser

import (
	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/token"
)

// parseBlock разбирает тело составного оператора после ':'.
// Либо NEWLINE INDENT statements DEDENT, либо simple_stmts на той же строке.
func (p *Parser) parseBlock(owner string) []ast.StmtID {
	if !p.expectColon() {
		p.recoverHeader()
		return nil
	}
	if !p.at(token.Newline) {
		return p.parseSimpleStmts()
	}
	p.advance()
	if !p.at(token.Indent) {
		p.err(diag.SynExpectIndent, "expected an indented block after "+owner)
		return nil
	}
	p.advance()

	var body []ast.StmtID
	extra := 0 // лишние INDENT внутри блока
	for !p.at(token.EOF) && !p.opts.Enough() {
		switch p.peek().Kind {
		case token.Dedent:
			p.advance()
			if extra == 0 {
				return body
			}
			extra--
			continue
		case token.Indent:
			p.err(diag.SynUnexpectedIndent, "unexpected indent")
			p.advance()
			extra++
			continue
		case token.Newline:
			p.advance()
			continue
		}
		body = append(body, p.parseStatement()...)
	}
	return body
}

// if_stmt: 'if' named_expression ':' block ('elif' ...)* ['else' ':' block]
func (p *Parser) parseIf() ast.StmtID {
	start := p.advance().Span
	test := p.parseNamedExpr()
	body := p.parseBlock("'if' statement")
	var orElse []ast.StmtID
	switch {
	case p.at(token.KwElif):
		orElse = one(p.parseIf())
	case p.at(token.KwElse):
		p.advance()
		orElse = p.parseBlock("'else' statement")
	}
	return p.b.Stmts.NewCond(ast.StmtIf, p.spanFrom(start), ast.StmtCondData{Test: test, Body: body, OrElse: orElse})
}

func (p *Parser) parseWhile() ast.StmtID {
	start := p.advance().Span
	test := p.parseNamedExpr()
	body := p.parseBlock("'while' statement")
	orElse := p.parseElse()
	return p.b.Stmts.NewCond(ast.StmtWhile, p.spanFrom(start), ast.StmtCondData{Test: test, Body: body, OrElse: orElse})
}

func (p *Parser) parseElse() []ast.StmtID {
	if !p.at(token.KwElse) {
		return nil
	}
	p.advance()
	return p.parseBlock("'else' statement")
}

// for_stmt: 'for' star_targets 'in' star_expressions ':' block ['else' ':' block]
func (p *Parser) parseFor(async bool) ast.StmtID {
	start := p.advance().Span
	target := p.parseTargetList()
	if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in'"); !ok {
		p.recoverHeader()
		return p.b.Stmts.NewSimple(ast.StmtBad, p.spanFrom(start))
	}
	iter := p.parseStarExprs()
	body := p.parseBlock("'for' statement")
	orElse := p.parseElse()
	return p.b.Stmts.NewFor(p.spanFrom(start), ast.StmtForData{
		Target: target, Iter: iter, Body: body, OrElse: orElse, Async: async,
	})
}

// try_stmt: 'try' ':' block (except_block+ [else] [finally] | finally)
func (p *Parser) parseTry() ast.StmtID {
	tryTok := p.advance()
	start := tryTok.Span
	data := ast.StmtTryData{Body: p.parseBlock("'try' statement")}
	for p.at(token.KwExcept) {
		hstart := p.advance().Span
		if p.at(token.Star) {
			p.advance()
			data.Star = true
		}
		h := ast.ExceptHandler{Type: ast.NoExprID}
		if !p.at(token.Colon) {
			h.Type = p.parseExpr()
			if p.at(token.Comma) {
				// except A, B:: только в скобках
				p.err(diag.SynUnexpectedToken, "multiple exception types must be parenthesized")
				p.recoverHeader()
				continue
			}
			if p.at(token.KwAs) {
				p.advance()
				name, _ := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name after 'as'")
				h.Name = name.Text
			}
		}
		h.Body = p.parseBlock("'except' statement")
		h.Span = p.spanFrom(hstart)
		data.Handlers = append(data.Handlers, h)
	}
	if len(data.Handlers) > 0 {
		data.OrElse = p.parseElse()
	}
	if p.at(token.KwFinally) {
		p.advance()
		data.Finally = p.parseBlock("'finally' statement")
	}
	if len(data.Handlers) == 0 && data.Finally == nil {
		p.err(diag.SynTryWithoutHandler, "expected 'except' or 'finally' block")
	}
	return p.b.Stmts.NewTry(p.spanFrom(start), data)
}

// with_stmt: 'with' ( '(' with_item, ... ')' | with_item, ... ) ':' block
func (p *Parser) parseWith(async bool) ast.StmtID {
	start := p.advance().Span
	var items []ast.WithItem
	if p.at(token.LParen) {
		items = p.parseParenWithItems()
	} else {
		items = p.parseWithItems(token.Colon)
	}
	body := p.parseBlock("'with' statement")
	return p.b.Stmts.NewWith(p.spanFrom(start), ast.StmtWithData{Items: items, Body: body, Async: async})
}

func (p *Parser) parseWithItems(stop token.Kind) []ast.WithItem {
	var items []ast.WithItem
	for {
		item := ast.WithItem{Context: p.parseExpr()}
		if p.at(token.KwAs) {
			p.advance()
			item.Vars = p.parseTarget()
		}
		items = append(items, item)
		if !p.at(token.Comma) {
			return items
		}
		p.advance()
		if p.at(stop) {
			return items
		}
	}
}

// parseParenWithItems: "with (a as b, c):" или "with (a, b) as c:".
func (p *Parser) parseParenWithItems() []ast.WithItem {
	open := p.advance().Span
	items := p.parseWithItems(token.RParen)
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	if !p.at(token.KwAs) {
		return items
	}
	// скобки были частью выражения контекста
	elts := make([]ast.ExprID, 0, len(items))
	for _, it := range items {
		if it.Vars.IsValid() {
			p.err(diag.SynUnexpectedToken, "invalid syntax: unexpected 'as'")
		}
		elts = append(elts, it.Context)
	}
	ctx := elts[0]
	if len(elts) > 1 {
		ctx = p.b.Exprs.NewSeq(ast.ExprTuple, p.spanFrom(open), elts)
	}
	p.advance()
	return []ast.WithItem{{Context: ctx, Vars: p.parseTarget()}}
}

// class_def: decorators 'class' NAME [type_params] ['(' arguments ')'] ':' block
func (p *Parser) parseClass(decorators []ast.ExprID) ast.StmtID {
	start := p.advance().Span
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected class name")
	if !ok {
		p.recoverHeader()
		return p.b.Stmts.NewSimple(ast.StmtBad, p.spanFrom(start))
	}
	p.skipTypeParams()
	data := ast.StmtClassData{Name: name.Text, Decorators: decorators}
	if p.at(token.LParen) {
		p.advance()
		data.Bases, data.Keywords = p.parseCallArgs()
	}
	data.Body = p.parseBlock("class definition")
	return p.b.Stmts.NewClass(p.spanFrom(start), data)
}

// decorators: ('@' named_expression NEWLINE)+ (def | class | async def)
func (p *Parser) parseDecorated() ast.StmtID {
	var decorators []ast.ExprID
	for p.at(token.At) {
		p.advance()
		decorators = append(decorators, p.parseNamedExpr())
		if _, ok := p.expect(token.Newline, diag.SynExpectNewline, "expected newline after decorator"); !ok {
			p.resyncLine()
		}
	}
	switch p.peek().Kind {
	case token.KwDef:
		return p.parseDef(decorators, false)
	case token.KwClass:
		return p.parseClass(decorators)
	case token.KwAsync:
		return p.parseAsync(decorators)
	}
	p.err(diag.SynUnexpectedToken, "expected 'def' or 'class' after decorator")
	p.resyncLine()
	return ast.NoStmtID
}

// async (def | for | with)
func (p *Parser) parseAsync(decorators []ast.ExprID) ast.StmtID {
	asyncTok := p.advance()
	switch {
	case p.at(token.KwDef):
		id := p.parseDef(decorators, true)
		if st := p.b.Stmts.Get(id); st != nil {
			st.Span = asyncTok.Span.Cover(st.Span)
		}
		return id
	case decorators == nil && p.at(token.KwFor):
		return p.parseFor(true)
	case decorators == nil && p.at(token.KwWith):
		return p.parseWith(true)
	}
	p.err(diag.SynUnexpectedToken, "expected 'def', 'for' or 'with' after 'async'")
	p.recoverHeader()
	return ast.NoStmtID
}
