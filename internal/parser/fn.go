package parser

import (
	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/token"
)

// function_def: decorators ['async'] 'def' NAME [type_params] '(' [params] ')' ['->' expression] ':' block
func (p *Parser) parseDef(decorators []ast.ExprID, async bool) ast.StmtID {
	start := p.advance().Span // 'def'
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name")
	if !ok {
		p.recoverHeader()
		return p.b.Stmts.NewSimple(ast.StmtBad, p.spanFrom(start))
	}
	p.skipTypeParams()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		p.recoverHeader()
		return p.b.Stmts.NewSimple(ast.StmtBad, p.spanFrom(start))
	}
	mark := p.errorsMark()
	args := p.parseParams(token.RParen, true)
	if p.errorsSince(mark) {
		p.recoverHeader()
		return p.b.Stmts.NewSimple(ast.StmtBad, p.spanFrom(start))
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list"); !ok {
		p.recoverHeader()
		return p.b.Stmts.NewSimple(ast.StmtBad, p.spanFrom(start))
	}
	returns := ast.NoExprID
	if p.at(token.Arrow) {
		p.advance()
		returns = p.parseExpr()
	}
	// span заголовка: тело не входит, чтобы подсветка диагностик была короткой
	header := p.spanFrom(start)
	body := p.parseBlock("function definition")
	return p.b.Stmts.NewDef(header.Cover(p.lastSpan), ast.StmtDefData{
		Name:       name.Text,
		NameSpan:   name.Span,
		Args:       args,
		Body:       body,
		Decorators: decorators,
		Returns:    returns,
		Async:      async,
	})
}

// parseParams parses parameters up to closer without consuming it.
// For def the closer is ')', for lambda ':' (no annotations).
//
//	[posonly, /] [args] [*vararg | *] [kwonly] [**kwarg]
func (p *Parser) parseParams(closer token.Kind, annotations bool) ast.Arguments {
	var (
		args       ast.Arguments
		seenSlash  bool
		seenStar   bool
		bareStar   bool
		seenKwArg  bool
		seenDefArg bool
		names      = map[string]bool{}
	)

	param := func() (ast.Arg, bool) {
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if !ok {
			return ast.Arg{}, false
		}
		if names[tok.Text] {
			p.errAt(diag.SynDuplicateParam, tok.Span, "duplicate argument '"+tok.Text+"' in function definition")
		}
		names[tok.Text] = true
		arg := ast.Arg{Name: tok.Text, Span: tok.Span, Annotation: ast.NoExprID}
		if annotations && p.at(token.Colon) {
			p.advance()
			arg.Annotation = p.parseExpr()
		}
		arg.Span = p.spanFrom(tok.Span)
		return arg, true
	}

	for !p.at(closer) {
		if seenKwArg {
			p.err(diag.SynBadParamOrder, "arguments cannot follow var-keyword argument")
			return args
		}
		switch p.peek().Kind {
		case token.Slash:
			slash := p.advance()
			switch {
			case seenSlash:
				p.errAt(diag.SynBadParamOrder, slash.Span, "/ may appear only once")
				return args
			case seenStar:
				p.errAt(diag.SynBadParamOrder, slash.Span, "/ must be ahead of *")
				return args
			case len(args.Args) == 0:
				p.errAt(diag.SynBadParamOrder, slash.Span, "at least one argument must precede /")
				return args
			}
			seenSlash = true
			args.PosOnly, args.Args = args.Args, nil

		case token.Star:
			star := p.advance()
			if seenStar {
				p.errAt(diag.SynBadParamOrder, star.Span, "* argument may appear only once")
				return args
			}
			seenStar = true
			if p.atOr(token.Comma, closer) {
				bareStar = true
				break
			}
			arg, ok := param()
			if !ok {
				return args
			}
			args.VarArg = &arg

		case token.DoubleStar:
			p.advance()
			arg, ok := param()
			if !ok {
				return args
			}
			args.KwArg = &arg
			seenKwArg = true

		default:
			arg, ok := param()
			if !ok {
				return args
			}
			def := ast.NoExprID
			if p.at(token.Assign) {
				p.advance()
				def = p.parseExpr()
			}
			if seenStar {
				args.KwOnly = append(args.KwOnly, arg)
				args.KwDefaults = append(args.KwDefaults, def)
				bareStar = false
				break
			}
			if def.IsValid() {
				seenDefArg = true
				args.Defaults = append(args.Defaults, def)
			} else if seenDefArg {
				p.errAt(diag.SynNonDefaultAfterDefault, arg.Span, "parameter without a default follows parameter with a default")
				return args
			}
			args.Args = append(args.Args, arg)
		}

		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}

	if bareStar {
		p.err(diag.SynBadParamOrder, "named arguments must follow bare *")
	}
	return args
}

// skipTypeParams skips PEP 695 "[T, *Ts, **P]" after a def or class name.
func (p *Parser) skipTypeParams() {
	if !p.at(token.LBracket) {
		return
	}
	p.advance()
	for !p.atOr(token.RBracket, token.Newline, token.EOF) {
		if p.atOr(token.Star, token.DoubleStar) {
			p.advance()
		}
		if _, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type parameter name"); !ok {
			return
		}
		if p.at(token.Colon) {
			p.advance()
			p.parseExpr()
		}
		if p.at(token.Assign) {
			p.advance()
			p.parseExpr()
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RBracket, diag.SynUnclosedParen, "expected ']'")
}
