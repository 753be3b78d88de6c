package parser

import (
	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/token"
)

// atMatchHeader: match and case are soft keywords. The line is a header
// when a non-empty expression follows the word and ':' ends the line.
func (p *Parser) atMatchHeader(word string) bool {
	tok := p.peek()
	if tok.Kind != token.Ident || tok.Text != word {
		return false
	}
	i, ok := p.headerColonAt(1)
	return ok && i > 1 && p.lx.PeekAt(i+1).Kind == token.Newline
}

// headerColonAt finds the first ':' outside brackets, starting n tokens ahead.
// Colons that belong to a lambda are skipped.
func (p *Parser) headerColonAt(n int) (int, bool) {
	depth, lambdas := 0, 0
	for i := n; ; i++ {
		switch p.lx.PeekAt(i).Kind {
		case token.Newline, token.EOF:
			return i, false
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth > 0 {
				depth--
			}
		case token.KwLambda:
			if depth == 0 {
				lambdas++
			}
		case token.Colon:
			if depth > 0 {
				continue
			}
			if lambdas > 0 {
				lambdas--
				continue
			}
			return i, true
		}
	}
}

// match_stmt: "match" subject ':' NEWLINE INDENT case_block+ DEDENT
func (p *Parser) parseMatch() ast.StmtID {
	start := p.advance().Span
	mark := p.errorsMark()
	data := ast.StmtMatchData{Subject: p.parseStarExprs()}
	if !p.errorsSince(mark) {
		p.expectColon()
	}
	if p.errorsSince(mark) {
		p.recoverHeader()
		return p.b.Stmts.NewSimple(ast.StmtBad, p.spanFrom(start))
	}
	p.advance() // NEWLINE
	if !p.at(token.Indent) {
		p.err(diag.SynExpectIndent, "expected an indented block after 'match' statement")
		return p.b.Stmts.NewMatch(p.spanFrom(start), data)
	}
	p.advance()

loop:
	for !p.at(token.EOF) && !p.opts.Enough() {
		switch {
		case p.at(token.Dedent):
			p.advance()
			break loop
		case p.at(token.Newline):
			p.advance()
		case p.at(token.Indent):
			p.err(diag.SynUnexpectedIndent, "unexpected indent")
			p.skipIndentedBlock()
		case p.atCaseHeader():
			data.Cases = append(data.Cases, p.parseCase())
		default:
			p.err(diag.SynUnexpectedToken, "expected 'case' block")
			p.recoverHeader()
		}
	}
	if len(data.Cases) == 0 && !p.errorsSince(mark) {
		p.errAt(diag.SynUnexpectedToken, start, "'match' statement has no 'case' blocks")
	}
	return p.b.Stmts.NewMatch(p.spanFrom(start), data)
}

func (p *Parser) atCaseHeader() bool {
	tok := p.peek()
	if tok.Kind != token.Ident || tok.Text != "case" {
		return false
	}
	i, ok := p.headerColonAt(1)
	return ok && i > 1
}

// case_block: "case" patterns [guard] ':' block
// The pattern and guard are not parsed; only their span is kept.
func (p *Parser) parseCase() ast.MatchCase {
	start := p.advance().Span
	colon, _ := p.headerColonAt(0)
	c := ast.MatchCase{Pattern: p.peek().Span}
	for range colon {
		p.advance()
	}
	c.Pattern = c.Pattern.Cover(p.lastSpan)
	c.Body = p.parseBlock("'case' statement")
	c.Span = p.spanFrom(start)
	return c
}
