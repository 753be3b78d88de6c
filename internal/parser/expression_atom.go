package parser

import (
	"strings"

	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/token"
)

// primary: atom ('.' NAME | '(' args ')' | '[' slices ']')*
func (p *Parser) parsePrimary() ast.ExprID {
	start := p.peek().Span
	e := p.parseAtom()
	for {
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected attribute name after '.'")
			if !ok {
				return p.b.Exprs.NewBad(p.spanFrom(start))
			}
			e = p.b.Exprs.NewAttribute(p.spanFrom(start), e, name.Text)
		case token.LParen:
			p.advance()
			args, kws := p.parseCallArgs()
			e = p.b.Exprs.NewCall(p.spanFrom(start), e, args, kws)
		case token.LBracket:
			p.advance()
			index := p.parseSlices()
			p.expect(token.RBracket, diag.SynUnclosedParen, "expected ']'")
			e = p.b.Exprs.NewSubscript(p.spanFrom(start), e, index)
		default:
			return e
		}
	}
}

func (p *Parser) parseAtom() ast.ExprID {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.b.Exprs.NewName(tok.Span, tok.Text)
	case token.KwTrue:
		p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitTrue, tok.Text)
	case token.KwFalse:
		p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitFalse, tok.Text)
	case token.KwNone:
		p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitNone, tok.Text)
	case token.Ellipsis:
		p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitEllipsis, tok.Text)
	case token.IntLit:
		p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitInt, tok.Text)
	case token.FloatLit:
		p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitFloat, tok.Text)
	case token.ImagLit:
		p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitImag, tok.Text)
	case token.StringLit, token.BytesLit, token.FStringLit:
		return p.parseStrings()
	case token.LParen:
		return p.parseParenAtom()
	case token.LBracket:
		return p.parseListAtom()
	case token.LBrace:
		return p.parseBraceAtom()
	case token.Invalid:
		// лексер уже сообщил об ошибке
		p.advance()
		p.opts.CurrentErrors++
		return p.b.Exprs.NewBad(tok.Span)
	}
	p.err(diag.SynExpectExpression, "expected expression, got "+describeToken(tok))
	return p.b.Exprs.NewBad(p.getDiagnosticSpan())
}

// parseStrings joins adjacent string literals: "a" 'b' -> one constant.
func (p *Parser) parseStrings() ast.ExprID {
	start := p.peek().Span
	kind := ast.LitString
	var parts []string
	sawBytes, sawText := false, false
	for p.atOr(token.StringLit, token.BytesLit, token.FStringLit) {
		tok := p.advance()
		switch tok.Kind {
		case token.BytesLit:
			sawBytes = true
			kind = ast.LitBytes
		case token.FStringLit:
			sawText = true
			kind = ast.LitFString
		default:
			sawText = true
		}
		parts = append(parts, tok.Text)
	}
	if sawBytes && sawText {
		p.errAt(diag.SynUnexpectedToken, p.spanFrom(start), "cannot mix bytes and nonbytes literals")
		return p.b.Exprs.NewBad(p.spanFrom(start))
	}
	return p.b.Exprs.NewLiteral(p.spanFrom(start), kind, strings.Join(parts, " "))
}

// '(' ')' | '(' yield ')' | '(' named ')' | '(' a, b ')' | '(' genexp ')'
func (p *Parser) parseParenAtom() ast.ExprID {
	start := p.advance().Span
	if p.at(token.RParen) {
		p.advance()
		return p.b.Exprs.NewSeq(ast.ExprTuple, p.spanFrom(start), nil)
	}
	if p.at(token.KwYield) {
		e := p.parseYield()
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		return e
	}
	first := p.parseStarNamedExpr()
	if p.atOr(token.KwFor, token.KwAsync) {
		gens := p.parseComprehensions()
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		return p.b.Exprs.NewComp(ast.ExprGenerator, p.spanFrom(start), first, ast.NoExprID, gens)
	}
	if !p.at(token.Comma) {
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		// скобки не меняют узел, расширяем только span
		if e := p.b.Exprs.Get(first); e != nil {
			e.Span = p.spanFrom(start)
		}
		return first
	}
	elts := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RParen) {
			break
		}
		elts = append(elts, p.parseStarNamedExpr())
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	return p.b.Exprs.NewSeq(ast.ExprTuple, p.spanFrom(start), elts)
}

func (p *Parser) parseListAtom() ast.ExprID {
	start := p.advance().Span
	if p.at(token.RBracket) {
		p.advance()
		return p.b.Exprs.NewSeq(ast.ExprList, p.spanFrom(start), nil)
	}
	first := p.parseStarNamedExpr()
	if p.atOr(token.KwFor, token.KwAsync) {
		gens := p.parseComprehensions()
		p.expect(token.RBracket, diag.SynUnclosedParen, "expected ']'")
		return p.b.Exprs.NewComp(ast.ExprListComp, p.spanFrom(start), first, ast.NoExprID, gens)
	}
	elts := p.parseSeqTail(first, token.RBracket)
	p.expect(token.RBracket, diag.SynUnclosedParen, "expected ']'")
	return p.b.Exprs.NewSeq(ast.ExprList, p.spanFrom(start), elts)
}

// parseSeqTail reads ", elt" items up to closer without consuming it.
func (p *Parser) parseSeqTail(first ast.ExprID, closer token.Kind) []ast.ExprID {
	elts := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at(closer) {
			break
		}
		elts = append(elts, p.parseStarNamedExpr())
	}
	return elts
}

// '{' '}' | dict | set | dictcomp | setcomp
func (p *Parser) parseBraceAtom() ast.ExprID {
	start := p.advance().Span
	if p.at(token.RBrace) {
		p.advance()
		return p.b.Exprs.NewDict(p.spanFrom(start), nil, nil)
	}

	var keys, values []ast.ExprID
	if p.at(token.DoubleStar) {
		p.advance()
		keys = append(keys, ast.NoExprID)
		values = append(values, p.parseBitOr())
	} else {
		first := p.parseStarNamedExpr()
		if !p.at(token.Colon) {
			// set
			if p.atOr(token.KwFor, token.KwAsync) {
				gens := p.parseComprehensions()
				p.expect(token.RBrace, diag.SynUnclosedParen, "expected '}'")
				return p.b.Exprs.NewComp(ast.ExprSetComp, p.spanFrom(start), first, ast.NoExprID, gens)
			}
			elts := p.parseSeqTail(first, token.RBrace)
			p.expect(token.RBrace, diag.SynUnclosedParen, "expected '}'")
			return p.b.Exprs.NewSeq(ast.ExprSet, p.spanFrom(start), elts)
		}
		p.advance()
		value := p.parseExpr()
		if p.atOr(token.KwFor, token.KwAsync) {
			gens := p.parseComprehensions()
			p.expect(token.RBrace, diag.SynUnclosedParen, "expected '}'")
			return p.b.Exprs.NewComp(ast.ExprDictComp, p.spanFrom(start), first, value, gens)
		}
		keys = append(keys, first)
		values = append(values, value)
	}

	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RBrace) {
			break
		}
		if p.at(token.DoubleStar) {
			p.advance()
			keys = append(keys, ast.NoExprID)
			values = append(values, p.parseBitOr())
			continue
		}
		key := p.parseExpr()
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after dictionary key"); !ok {
			break
		}
		keys = append(keys, key)
		values = append(values, p.parseExpr())
	}
	p.expect(token.RBrace, diag.SynUnclosedParen, "expected '}'")
	return p.b.Exprs.NewDict(p.spanFrom(start), keys, values)
}

// for_if_clauses: (['async'] 'for' star_targets 'in' disjunction ('if' disjunction)*)+
func (p *Parser) parseComprehensions() []ast.Comprehension {
	var gens []ast.Comprehension
	for p.atOr(token.KwFor, token.KwAsync) {
		gen := ast.Comprehension{}
		if p.at(token.KwAsync) {
			p.advance()
			gen.Async = true
			if _, ok := p.expect(token.KwFor, diag.SynUnexpectedToken, "expected 'for' after 'async'"); !ok {
				return gens
			}
		} else {
			p.advance()
		}
		gen.Target = p.parseTargetList()
		if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in'"); !ok {
			return gens
		}
		gen.Iter = p.parseOr()
		for p.at(token.KwIf) {
			p.advance()
			gen.Ifs = append(gen.Ifs, p.parseOr())
		}
		gens = append(gens, gen)
	}
	return gens
}

// slices: slice (',' slice)* [',']: несколько срезов дают Tuple.
func (p *Parser) parseSlices() ast.ExprID {
	start := p.peek().Span
	first := p.parseSliceItem()
	if !p.at(token.Comma) {
		return first
	}
	elts := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RBracket) {
			break
		}
		elts = append(elts, p.parseSliceItem())
	}
	return p.b.Exprs.NewSeq(ast.ExprTuple, p.spanFrom(start), elts)
}

// slice: [expr] ':' [expr] [':' [expr]] | named_expression | starred
func (p *Parser) parseSliceItem() ast.ExprID {
	start := p.peek().Span
	if p.at(token.Star) {
		return p.parseStarNamedExpr()
	}
	lower := ast.NoExprID
	if !p.at(token.Colon) {
		lower = p.parseNamedExpr()
		if !p.at(token.Colon) {
			return lower
		}
	}
	p.advance()
	upper, step := ast.NoExprID, ast.NoExprID
	if !p.atOr(token.Colon, token.Comma, token.RBracket) {
		upper = p.parseExpr()
	}
	if p.at(token.Colon) {
		p.advance()
		if !p.atOr(token.Comma, token.RBracket) {
			step = p.parseExpr()
		}
	}
	return p.b.Exprs.NewSlice(p.spanFrom(start), lower, upper, step)
}

// parseCallArgs parses call arguments after '(' and consumes ')'.
// Class bases use it too.
func (p *Parser) parseCallArgs() ([]ast.ExprID, []ast.Keyword) {
	var (
		args      []ast.ExprID
		kws       []ast.Keyword
		sawKw     bool // name=value
		sawKwPack bool // **mapping
		genexp    ast.ExprID
	)
	for !p.at(token.RParen) {
		start := p.peek().Span
		switch {
		case p.at(token.Star):
			p.advance()
			value := p.parseExpr()
			if sawKwPack {
				p.errAt(diag.SynBadParamOrder, p.spanFrom(start), "iterable argument unpacking follows keyword argument unpacking")
			}
			args = append(args, p.b.Exprs.NewValue(ast.ExprStarred, p.spanFrom(start), value))

		case p.at(token.DoubleStar):
			p.advance()
			value := p.parseExpr()
			sawKwPack = true
			kws = append(kws, ast.Keyword{Value: value, Span: p.spanFrom(start)})

		default:
			e := p.parseNamedExpr()
			switch {
			case p.at(token.Assign):
				eq := p.advance()
				name, ok := p.b.Exprs.Name(e)
				if !ok {
					p.errAt(diag.SynInvalidTarget, eq.Span, `expression cannot contain assignment, perhaps you meant "=="?`)
					p.parseExpr()
					break
				}
				value := p.parseExpr()
				sawKw = true
				kws = append(kws, ast.Keyword{Name: name.Name, Value: value, Span: p.spanFrom(start)})
			case p.atOr(token.KwFor, token.KwAsync):
				gens := p.parseComprehensions()
				e = p.b.Exprs.NewComp(ast.ExprGenerator, p.spanFrom(start), e, ast.NoExprID, gens)
				genexp = e
				args = append(args, e)
			default:
				switch {
				case sawKwPack:
					p.errAt(diag.SynBadParamOrder, p.spanFrom(start), "positional argument follows keyword argument unpacking")
				case sawKw:
					p.errAt(diag.SynBadParamOrder, p.spanFrom(start), "positional argument follows keyword argument")
				}
				args = append(args, e)
			}
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if genexp.IsValid() && len(args)+len(kws) > 1 {
		if e := p.b.Exprs.Get(genexp); e != nil {
			p.errAt(diag.SynUnexpectedToken, e.Span, "generator expression must be parenthesized")
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	return args, kws
}
