package ast

type Hints struct{ Stmts, Exprs uint }

// Builder owns the arenas of one parsed module.
type Builder struct {
	Stmts *Stmts
	Exprs *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
	}
}

// HintsFor estimates arena sizes from the source length.
func HintsFor(srcLen int) Hints {
	if srcLen <= 0 {
		return Hints{}
	}
	n := uint(srcLen) // #nosec G115 -- srcLen > 0
	return Hints{Stmts: n/40 + 8, Exprs: n/8 + 16}
}
