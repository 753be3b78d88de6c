package parser

import (
	"strings"

	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/token"
)

// parseStatement разбирает один оператор; simple_stmts может дать несколько узлов.
func (p *Parser) parseStatement() []ast.StmtID {
	switch p.peek().Kind {
	case token.KwDef:
		return one(p.parseDef(nil, false))
	case token.KwAsync:
		return one(p.parseAsync(nil))
	case token.At:
		return one(p.parseDecorated())
	case token.KwClass:
		return one(p.parseClass(nil))
	case token.KwIf:
		return one(p.parseIf())
	case token.KwWhile:
		return one(p.parseWhile())
	case token.KwFor:
		return one(p.parseFor(false))
	case token.KwTry:
		return one(p.parseTry())
	case token.KwWith:
		return one(p.parseWith(false))
	case token.Ident:
		if p.atMatchHeader("match") {
			return one(p.parseMatch())
		}
		return p.parseSimpleStmts()
	default:
		return p.parseSimpleStmts()
	}
}

func one(id ast.StmtID) []ast.StmtID {
	if !id.IsValid() {
		return nil
	}
	return []ast.StmtID{id}
}

// simple_stmts: simple_stmt (';' simple_stmt)* [';'] NEWLINE
func (p *Parser) parseSimpleStmts() []ast.StmtID {
	var out []ast.StmtID
	mark := p.errorsMark()
	for {
		out = append(out, p.parseSimpleStmt())
		if p.errorsSince(mark) {
			p.resyncLine()
			return out
		}
		if !p.at(token.Semicolon) {
			break
		}
		p.advance()
		if p.atOr(token.Newline, token.EOF) {
			break
		}
	}
	switch {
	case p.at(token.Newline):
		p.advance()
	case p.at(token.EOF):
	default:
		// два выражения подряд: "invalid code", "print 'x'"
		p.err(diag.SynExpectNewline, "invalid syntax: unexpected "+describeToken(p.peek()))
		p.resyncLine()
	}
	return out
}

func (p *Parser) parseSimpleStmt() ast.StmtID {
	tok := p.peek()
	start := tok.Span
	switch tok.Kind {
	case token.KwPass:
		p.advance()
		return p.b.Stmts.NewSimple(ast.StmtPass, tok.Span)
	case token.KwBreak:
		p.advance()
		return p.b.Stmts.NewSimple(ast.StmtBreak, tok.Span)
	case token.KwContinue:
		p.advance()
		return p.b.Stmts.NewSimple(ast.StmtContinue, tok.Span)

	case token.KwReturn:
		p.advance()
		value := ast.NoExprID
		if !p.atStmtEnd() {
			value = p.parseStarExprs()
		}
		return p.b.Stmts.NewValue(ast.StmtReturn, p.spanFrom(start), value)

	case token.KwRaise:
		p.advance()
		exc, cause := ast.NoExprID, ast.NoExprID
		if !p.atStmtEnd() {
			exc = p.parseExpr()
			if p.at(token.KwFrom) {
				p.advance()
				cause = p.parseExpr()
			}
		}
		return p.b.Stmts.NewPair(ast.StmtRaise, p.spanFrom(start), exc, cause)

	case token.KwAssert:
		p.advance()
		test := p.parseExpr()
		msg := ast.NoExprID
		if p.at(token.Comma) {
			p.advance()
			msg = p.parseExpr()
		}
		return p.b.Stmts.NewPair(ast.StmtAssert, p.spanFrom(start), test, msg)

	case token.KwGlobal, token.KwNonlocal:
		p.advance()
		kind := ast.StmtGlobal
		if tok.Kind == token.KwNonlocal {
			kind = ast.StmtNonlocal
		}
		names := p.parseNameList()
		return p.b.Stmts.NewNames(kind, p.spanFrom(start), names)

	case token.KwDel:
		p.advance()
		targets := p.parseExprList()
		for _, t := range targets {
			p.checkTarget(t, true)
		}
		return p.b.Stmts.NewTargets(ast.StmtDelete, p.spanFrom(start), targets, ast.NoExprID)

	case token.KwImport:
		return p.parseImport()
	case token.KwFrom:
		return p.parseFromImport()
	}
	return p.parseExprStmt()
}

func (p *Parser) atStmtEnd() bool {
	return p.atOr(token.Newline, token.Semicolon, token.EOF)
}

// parseExprStmt: выражение, присваивание, аннотированное или составное присваивание.
func (p *Parser) parseExprStmt() ast.StmtID {
	start := p.peek().Span
	first := p.parseStarExprsOrYield()

	switch {
	case p.at(token.Colon):
		p.advance()
		p.checkAnnTarget(first)
		ann := p.parseExpr()
		value := ast.NoExprID
		if p.at(token.Assign) {
			p.advance()
			value = p.parseStarExprsOrYield()
		}
		return p.b.Stmts.NewAnnAssign(p.spanFrom(start), first, ann, value)

	case p.peek().IsAugAssign():
		opTok := p.advance()
		p.checkAugTarget(first)
		value := p.parseStarExprsOrYield()
		op := ast.Op(strings.TrimSuffix(opTok.Text, "="))
		return p.b.Stmts.NewAugAssign(p.spanFrom(start), first, op, value)

	case p.at(token.Assign):
		targets := []ast.ExprID{first}
		value := ast.NoExprID
		for p.at(token.Assign) {
			p.advance()
			value = p.parseStarExprsOrYield()
			if p.at(token.Assign) {
				targets = append(targets, value)
			}
		}
		for _, t := range targets {
			p.checkTarget(t, false)
		}
		return p.b.Stmts.NewTargets(ast.StmtAssign, p.spanFrom(start), targets, value)
	}
	return p.b.Stmts.NewValue(ast.StmtExpr, p.spanFrom(start), first)
}

func (p *Parser) parseNameList() []string {
	var names []string
	for {
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name")
		if !ok {
			return names
		}
		names = append(names, tok.Text)
		if !p.at(token.Comma) {
			return names
		}
		p.advance()
	}
}

// dotted_name: NAME ('.' NAME)*
func (p *Parser) parseDottedName() (string, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected module name")
	if !ok {
		return "", false
	}
	var sb strings.Builder
	sb.WriteString(tok.Text)
	for p.at(token.Dot) {
		p.advance()
		part, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name after '.'")
		if !ok {
			return sb.String(), false
		}
		sb.WriteByte('.')
		sb.WriteString(part.Text)
	}
	return sb.String(), true
}

func (p *Parser) parseAsName() string {
	if !p.at(token.KwAs) {
		return ""
	}
	p.advance()
	tok, _ := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name after 'as'")
	return tok.Text
}

// import a.b as c, d
func (p *Parser) parseImport() ast.StmtID {
	start := p.advance().Span
	var names []ast.Alias
	for {
		name, ok := p.parseDottedName()
		if !ok {
			break
		}
		names = append(names, ast.Alias{Name: name, AsName: p.parseAsName()})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return p.b.Stmts.NewImport(ast.StmtImport, p.spanFrom(start), ast.StmtImportData{Names: names})
}

// from ..pkg import (a as b, c) | *
func (p *Parser) parseFromImport() ast.StmtID {
	start := p.advance().Span
	data := ast.StmtImportData{}
	for p.atOr(token.Dot, token.Ellipsis) {
		if p.advance().Kind == token.Ellipsis {
			data.Level += 3
		} else {
			data.Level++
		}
	}
	if !p.at(token.KwImport) || data.Level == 0 {
		name, ok := p.parseDottedName()
		if !ok {
			return p.b.Stmts.NewSimple(ast.StmtBad, p.spanFrom(start))
		}
		data.Module = name
	}
	if _, ok := p.expect(token.KwImport, diag.SynUnexpectedToken, "expected 'import'"); !ok {
		return p.b.Stmts.NewSimple(ast.StmtBad, p.spanFrom(start))
	}
	if p.at(token.Star) {
		p.advance()
		data.Names = []ast.Alias{{Name: "*"}}
		return p.b.Stmts.NewImport(ast.StmtImportFrom, p.spanFrom(start), data)
	}
	paren := p.at(token.LParen)
	if paren {
		p.advance()
	}
	for {
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name to import")
		if !ok {
			break
		}
		data.Names = append(data.Names, ast.Alias{Name: tok.Text, AsName: p.parseAsName()})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		if paren && p.at(token.RParen) {
			break
		}
	}
	if paren {
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	}
	return p.b.Stmts.NewImport(ast.StmtImportFrom, p.spanFrom(start), data)
}
