package parser

import (
	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/token"
)

// parseTargetList parses star_targets for for/comprehension; a comma makes a Tuple.
// It stops before 'in'.
func (p *Parser) parseTargetList() ast.ExprID {
	start := p.peek().Span
	first := p.parseTarget()
	if !p.at(token.Comma) {
		return first
	}
	elts := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.atOr(token.KwIn, token.Assign, token.Colon) {
			break
		}
		elts = append(elts, p.parseTarget())
	}
	return p.b.Exprs.NewSeq(ast.ExprTuple, p.spanFrom(start), elts)
}

// parseTarget parses ['*'] primary and checks it as an assignment target.
func (p *Parser) parseTarget() ast.ExprID {
	start := p.peek().Span
	var e ast.ExprID
	if p.at(token.Star) {
		p.advance()
		value := p.parsePrimary()
		e = p.b.Exprs.NewValue(ast.ExprStarred, p.spanFrom(start), value)
	} else {
		e = p.parsePrimary()
	}
	p.checkTarget(e, false)
	return e
}

// checkTarget reports an error if e cannot be assigned (or deleted when isDel).
func (p *Parser) checkTarget(e ast.ExprID, isDel bool) bool {
	node := p.b.Exprs.Get(e)
	if node == nil {
		return false
	}
	switch node.Kind {
	case ast.ExprBad:
		return false // уже сообщено
	case ast.ExprName, ast.ExprAttribute, ast.ExprSubscript:
		return true
	case ast.ExprTuple, ast.ExprList:
		seq, _ := p.b.Exprs.Seq(e)
		ok := true
		for _, elt := range seq.Elts {
			ok = p.checkTarget(elt, isDel) && ok
		}
		return ok
	case ast.ExprStarred:
		if isDel {
			break
		}
		v, _ := p.b.Exprs.Value(e)
		return p.checkTarget(v.Value, isDel)
	}
	verb := "assign to"
	if isDel {
		verb = "delete"
	}
	p.errAt(diag.SynInvalidTarget, node.Span, "cannot "+verb+" "+p.describeExpr(e))
	return false
}

// checkAnnTarget: only a single target can be annotated.
func (p *Parser) checkAnnTarget(e ast.ExprID) {
	node := p.b.Exprs.Get(e)
	if node == nil {
		return
	}
	switch node.Kind {
	case ast.ExprBad, ast.ExprName, ast.ExprAttribute, ast.ExprSubscript:
		return
	case ast.ExprTuple, ast.ExprList:
		p.errAt(diag.SynInvalidTarget, node.Span, "only single target (not "+p.describeExpr(e)+") can be annotated")
		return
	}
	p.errAt(diag.SynInvalidTarget, node.Span, "illegal target for annotation")
}

func (p *Parser) checkAugTarget(e ast.ExprID) {
	node := p.b.Exprs.Get(e)
	if node == nil {
		return
	}
	switch node.Kind {
	case ast.ExprBad, ast.ExprName, ast.ExprAttribute, ast.ExprSubscript:
		return
	}
	p.errAt(diag.SynInvalidTarget, node.Span, "'"+p.describeExpr(e)+"' is an illegal expression for augmented assignment")
}

func (p *Parser) describeExpr(e ast.ExprID) string {
	node := p.b.Exprs.Get(e)
	if node == nil {
		return "expression"
	}
	switch node.Kind {
	case ast.ExprName:
		return "name"
	case ast.ExprLiteral:
		if lit, ok := p.b.Exprs.Literal(e); ok {
			switch lit.Kind {
			case ast.LitTrue, ast.LitFalse, ast.LitNone:
				return lit.Raw
			case ast.LitEllipsis:
				return "ellipsis"
			}
		}
		return "literal"
	case ast.ExprAttribute:
		return "attribute"
	case ast.ExprSubscript:
		return "subscript"
	case ast.ExprCall:
		return "function call"
	case ast.ExprCompare:
		return "comparison"
	case ast.ExprTernary:
		return "conditional expression"
	case ast.ExprLambda:
		return "lambda"
	case ast.ExprTuple:
		return "tuple"
	case ast.ExprList:
		return "list"
	case ast.ExprSet:
		return "set display"
	case ast.ExprDict:
		return "dict literal"
	case ast.ExprListComp:
		return "list comprehension"
	case ast.ExprSetComp:
		return "set comprehension"
	case ast.ExprDictComp:
		return "dict comprehension"
	case ast.ExprGenerator:
		return "generator expression"
	case ast.ExprStarred:
		return "starred"
	case ast.ExprAwait:
		return "await expression"
	case ast.ExprYield, ast.ExprYieldFrom:
		return "yield expression"
	case ast.ExprNamed:
		return "named expression"
	}
	return "expression"
}
