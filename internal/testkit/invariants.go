// Package testkit holds shared checks for parser and extraction tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"aegis/internal/ast"
	"aegis/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed module:
// every statement and expression span lies inside the file content and points to
// the same file; top-level statements do not go backwards; def parameters lie
// inside the def span.
func CheckSpanInvariants(b *ast.Builder, mod *ast.Module, sf *source.File) error {
	if b == nil || mod == nil || sf == nil {
		return fmt.Errorf("nil builder, module or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	check := func(what string, sp source.Span) error {
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.End < sp.Start {
			return fmt.Errorf("%s span is inverted: %v", what, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s span end beyond content: %d > %d", what, sp.End, lenContent)
		}
		return nil
	}

	var prev uint32
	for i, id := range mod.Body {
		st := b.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		if st.Span.Start < prev {
			return fmt.Errorf("top-level statement %d starts at %d before previous %d", i, st.Span.Start, prev)
		}
		prev = st.Span.Start
	}

	var walkErr error
	b.Walk(mod, func(n ast.Node) bool {
		switch n.Kind {
		case ast.NodeStmt:
			st := b.Stmts.Get(n.Stmt)
			if walkErr = check(st.Kind.String(), st.Span); walkErr != nil {
				return false
			}
			if def, ok := b.Stmts.Def(n.Stmt); ok {
				walkErr = checkParams(def, st.Span)
			}
		case ast.NodeExpr:
			ex := b.Exprs.Get(n.Expr)
			if ex == nil {
				walkErr = fmt.Errorf("nil expression for id=%d", n.Expr)
				break
			}
			walkErr = check("expression", ex.Span)
		}
		return walkErr == nil
	})
	return walkErr
}

func checkParams(def *ast.StmtDefData, defSpan source.Span) error {
	params := def.Args.Positional()
	if def.Args.VarArg != nil {
		params = append(params, *def.Args.VarArg)
	}
	params = append(params, def.Args.KwOnly...)
	if def.Args.KwArg != nil {
		params = append(params, *def.Args.KwArg)
	}
	for _, p := range params {
		if p.Span.Start < defSpan.Start || p.Span.End > defSpan.End {
			return fmt.Errorf("parameter %q span %v is outside def %q span %v", p.Name, p.Span, def.Name, defSpan)
		}
	}
	return nil
}
