package parser

import (
	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/token"
)

// Приоритеты (от слабого к сильному):
//   lambda, if-else, or, and, not, сравнения, |, ^, &, << >>, + -, * / // % @,
//   унарные + - ~, **, await, primary.

// parseStarExprs parses star_expressions: a comma makes an unparenthesized tuple.
func (p *Parser) parseStarExprs() ast.ExprID {
	start := p.peek().Span
	first := p.parseStarNamedExpr()
	if !p.at(token.Comma) {
		return first
	}
	elts := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if !p.startsExpr() {
			break
		}
		elts = append(elts, p.parseStarNamedExpr())
	}
	return p.b.Exprs.NewSeq(ast.ExprTuple, p.spanFrom(start), elts)
}

// parseStarExprsOrYield parses an assignment right side or an expression statement.
func (p *Parser) parseStarExprsOrYield() ast.ExprID {
	if p.at(token.KwYield) {
		return p.parseYield()
	}
	return p.parseStarExprs()
}

// parseExprList parses a comma-separated expression list (del, PEP 695 and so on).
func (p *Parser) parseExprList() []ast.ExprID {
	out := []ast.ExprID{p.parseExpr()}
	for p.at(token.Comma) {
		p.advance()
		if !p.startsExpr() {
			break
		}
		out = append(out, p.parseExpr())
	}
	return out
}

func (p *Parser) parseStarNamedExpr() ast.ExprID {
	if p.at(token.Star) {
		start := p.advance().Span
		value := p.parseBitOr()
		return p.b.Exprs.NewValue(ast.ExprStarred, p.spanFrom(start), value)
	}
	return p.parseNamedExpr()
}

// named_expression: NAME ':=' expression | expression
func (p *Parser) parseNamedExpr() ast.ExprID {
	start := p.peek().Span
	e := p.parseExpr()
	if !p.at(token.Walrus) {
		return e
	}
	walrus := p.advance()
	if _, ok := p.b.Exprs.Name(e); !ok {
		p.errAt(diag.SynInvalidTarget, walrus.Span, "cannot use assignment expressions with "+p.describeExpr(e))
	}
	value := p.parseExpr()
	return p.b.Exprs.NewNamed(p.spanFrom(start), e, value)
}

// expression: lambda | disjunction ['if' disjunction 'else' expression]
func (p *Parser) parseExpr() ast.ExprID {
	if p.at(token.KwLambda) {
		return p.parseLambda()
	}
	start := p.peek().Span
	body := p.parseOr()
	if !p.at(token.KwIf) {
		return body
	}
	p.advance()
	test := p.parseOr()
	if _, ok := p.expect(token.KwElse, diag.SynUnexpectedToken, "expected 'else' after 'if' expression"); !ok {
		return p.b.Exprs.NewBad(p.spanFrom(start))
	}
	orElse := p.parseExpr()
	return p.b.Exprs.NewTernary(p.spanFrom(start), test, body, orElse)
}

func (p *Parser) parseLambda() ast.ExprID {
	start := p.advance().Span
	args := p.parseParams(token.Colon, false)
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in lambda"); !ok {
		return p.b.Exprs.NewBad(p.spanFrom(start))
	}
	body := p.parseExpr()
	return p.b.Exprs.NewLambda(p.spanFrom(start), args, body)
}

func (p *Parser) parseOr() ast.ExprID {
	return p.parseBoolChain(token.KwOr, "or", p.parseAnd)
}

func (p *Parser) parseAnd() ast.ExprID {
	return p.parseBoolChain(token.KwAnd, "and", p.parseNot)
}

func (p *Parser) parseBoolChain(k token.Kind, op ast.Op, next func() ast.ExprID) ast.ExprID {
	start := p.peek().Span
	first := next()
	if !p.at(k) {
		return first
	}
	values := []ast.ExprID{first}
	for p.at(k) {
		p.advance()
		values = append(values, next())
	}
	return p.b.Exprs.NewBoolOp(p.spanFrom(start), op, values)
}

func (p *Parser) parseNot() ast.ExprID {
	if !p.at(token.KwNot) {
		return p.parseComparison()
	}
	start := p.advance().Span
	operand := p.parseNot()
	return p.b.Exprs.NewUnary(p.spanFrom(start), "not", operand)
}

func (p *Parser) parseComparison() ast.ExprID {
	start := p.peek().Span
	left := p.parseBitOr()
	var ops []ast.Op
	var comparators []ast.ExprID
	for {
		op, ok := p.compareOp()
		if !ok {
			break
		}
		ops = append(ops, op)
		comparators = append(comparators, p.parseBitOr())
	}
	if len(ops) == 0 {
		return left
	}
	return p.b.Exprs.NewCompare(p.spanFrom(start), left, ops, comparators)
}

// compareOp consumes a comparison operator, including "not in" and "is not".
func (p *Parser) compareOp() (ast.Op, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Lt, token.Gt, token.EqEq, token.GtEq, token.LtEq, token.NotEq, token.KwIn:
		p.advance()
		return ast.Op(tok.Text), true
	case token.KwIs:
		p.advance()
		if p.at(token.KwNot) {
			p.advance()
			return "is not", true
		}
		return "is", true
	case token.KwNot:
		p.advance()
		if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' after 'not'"); !ok {
			return "not in", false
		}
		return "not in", true
	}
	return "", false
}

// binaryLevels — левоассоциативные бинарные уровни от слабого к сильному.
var binaryLevels = [][]token.Kind{
	{token.Pipe},
	{token.Caret},
	{token.Amp},
	{token.Shl, token.Shr},
	{token.Plus, token.Minus},
	{token.Star, token.Slash, token.DoubleSlash, token.Percent, token.At},
}

func (p *Parser) parseBitOr() ast.ExprID {
	return p.parseBinaryLevel(0)
}

func (p *Parser) parseBinaryLevel(level int) ast.ExprID {
	if level >= len(binaryLevels) {
		return p.parseFactor()
	}
	start := p.peek().Span
	left := p.parseBinaryLevel(level + 1)
	for p.atOr(binaryLevels[level]...) {
		op := p.advance()
		right := p.parseBinaryLevel(level + 1)
		left = p.b.Exprs.NewBinary(p.spanFrom(start), ast.Op(op.Text), left, right)
	}
	return left
}

// factor: ('+' | '-' | '~') factor | power
func (p *Parser) parseFactor() ast.ExprID {
	if p.atOr(token.Plus, token.Minus, token.Tilde) {
		op := p.advance()
		operand := p.parseFactor()
		return p.b.Exprs.NewUnary(p.spanFrom(op.Span), ast.Op(op.Text), operand)
	}
	return p.parsePower()
}

// power: await_primary ['**' factor]
func (p *Parser) parsePower() ast.ExprID {
	start := p.peek().Span
	base := p.parseAwaitPrimary()
	if !p.at(token.DoubleStar) {
		return base
	}
	p.advance()
	exp := p.parseFactor()
	return p.b.Exprs.NewBinary(p.spanFrom(start), "**", base, exp)
}

func (p *Parser) parseAwaitPrimary() ast.ExprID {
	if !p.at(token.KwAwait) {
		return p.parsePrimary()
	}
	start := p.advance().Span
	value := p.parsePrimary()
	return p.b.Exprs.NewValue(ast.ExprAwait, p.spanFrom(start), value)
}

// yield_expr: 'yield' 'from' expression | 'yield' [star_expressions]
func (p *Parser) parseYield() ast.ExprID {
	start := p.advance().Span
	if p.at(token.KwFrom) {
		p.advance()
		value := p.parseExpr()
		return p.b.Exprs.NewValue(ast.ExprYieldFrom, p.spanFrom(start), value)
	}
	value := ast.NoExprID
	if p.startsExpr() {
		value = p.parseStarExprs()
	}
	return p.b.Exprs.NewValue(ast.ExprYield, p.spanFrom(start), value)
}

// startsExpr reports whether the current token can start an expression.
func (p *Parser) startsExpr() bool {
	tok := p.peek()
	if tok.IsLiteral() {
		return true
	}
	switch tok.Kind {
	case token.Ident, token.Invalid,
		token.KwNone, token.KwTrue, token.KwFalse, token.KwNot, token.KwLambda, token.KwAwait, token.KwYield,
		token.LParen, token.LBracket, token.LBrace,
		token.Plus, token.Minus, token.Tilde, token.Star, token.DoubleStar, token.Ellipsis:
		return true
	}
	return false
}
