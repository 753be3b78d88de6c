package ast

type NodeKind uint8

const (
	NodeModule NodeKind = iota
	NodeStmt
	NodeExpr
	NodeHandler
	NodeCase
)

// Node refers to a node of any kind during a walk.
// Case patterns are not expanded.
// arguments, keyword, withitem and comprehension are not separate nodes;
// their expressions are visited at the owner's level.
type Node struct {
	Kind    NodeKind
	Stmt    StmtID
	Expr    ExprID
	Handler *ExceptHandler
	Case    *MatchCase
	Depth   int
}

// Walk visits the module breadth-first in ast.walk order: a node, then its
// children in field order. fn returns false to stop.
func (b *Builder) Walk(mod *Module, fn func(Node) bool) {
	if mod == nil {
		return
	}
	queue := []Node{{Kind: NodeModule}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if !fn(n) {
			return
		}
		queue = b.appendChildren(queue, mod, n)
	}
}

// Children returns the direct children of n.
func (b *Builder) Children(mod *Module, n Node) []Node {
	return b.appendChildren(nil, mod, n)
}

func (b *Builder) appendChildren(out []Node, mod *Module, n Node) []Node {
	d := n.Depth + 1
	stmts := func(ids []StmtID) {
		for _, id := range ids {
			if id.IsValid() {
				out = append(out, Node{Kind: NodeStmt, Stmt: id, Depth: d})
			}
		}
	}
	exprs := func(ids ...ExprID) {
		for _, id := range ids {
			if id.IsValid() {
				out = append(out, Node{Kind: NodeExpr, Expr: id, Depth: d})
			}
		}
	}
	keywords := func(kws []Keyword) {
		for _, kw := range kws {
			exprs(kw.Value)
		}
	}
	comps := func(gens []Comprehension) {
		for _, g := range gens {
			exprs(g.Target, g.Iter)
			exprs(g.Ifs...)
		}
	}

	switch n.Kind {
	case NodeModule:
		stmts(mod.Body)

	case NodeHandler:
		exprs(n.Handler.Type)
		stmts(n.Handler.Body)

	case NodeCase:
		stmts(n.Case.Body)

	case NodeStmt:
		st := b.Stmts.Get(n.Stmt)
		if st == nil {
			return out
		}
		switch st.Kind {
		case StmtFunctionDef:
			def, _ := b.Stmts.Def(n.Stmt)
			exprs(def.Args.exprs()...)
			stmts(def.Body)
			exprs(def.Decorators...)
			exprs(def.Returns)
		case StmtClassDef:
			cls, _ := b.Stmts.Class(n.Stmt)
			exprs(cls.Bases...)
			keywords(cls.Keywords)
			stmts(cls.Body)
			exprs(cls.Decorators...)
		case StmtReturn, StmtExpr:
			v, _ := b.Stmts.Value(n.Stmt)
			exprs(v.Value)
		case StmtAssign, StmtDelete:
			t, _ := b.Stmts.TargetList(n.Stmt)
			exprs(t.Targets...)
			exprs(t.Value)
		case StmtAugAssign:
			a, _ := b.Stmts.Aug(n.Stmt)
			exprs(a.Target, a.Value)
		case StmtAnnAssign:
			a, _ := b.Stmts.Ann(n.Stmt)
			exprs(a.Target, a.Annotation, a.Value)
		case StmtFor:
			f, _ := b.Stmts.For(n.Stmt)
			exprs(f.Target, f.Iter)
			stmts(f.Body)
			stmts(f.OrElse)
		case StmtIf, StmtWhile:
			c, _ := b.Stmts.Cond(n.Stmt)
			exprs(c.Test)
			stmts(c.Body)
			stmts(c.OrElse)
		case StmtWith:
			w, _ := b.Stmts.With(n.Stmt)
			for _, item := range w.Items {
				exprs(item.Context, item.Vars)
			}
			stmts(w.Body)
		case StmtRaise, StmtAssert:
			p, _ := b.Stmts.Pair(n.Stmt)
			exprs(p.First, p.Second)
		case StmtTry:
			t, _ := b.Stmts.Try(n.Stmt)
			stmts(t.Body)
			for i := range t.Handlers {
				out = append(out, Node{Kind: NodeHandler, Handler: &t.Handlers[i], Depth: d})
			}
			stmts(t.OrElse)
			stmts(t.Finally)
		case StmtMatch:
			m, _ := b.Stmts.Match(n.Stmt)
			exprs(m.Subject)
			for i := range m.Cases {
				out = append(out, Node{Kind: NodeCase, Case: &m.Cases[i], Depth: d})
			}
		}

	case NodeExpr:
		e := b.Exprs.Get(n.Expr)
		if e == nil {
			return out
		}
		switch e.Kind {
		case ExprAttribute:
			a, _ := b.Exprs.Attribute(n.Expr)
			exprs(a.Value)
		case ExprSubscript:
			s, _ := b.Exprs.Subscript(n.Expr)
			exprs(s.Value, s.Index)
		case ExprSlice:
			s, _ := b.Exprs.Slice(n.Expr)
			exprs(s.Lower, s.Upper, s.Step)
		case ExprCall:
			c, _ := b.Exprs.Call(n.Expr)
			exprs(c.Func)
			exprs(c.Args...)
			keywords(c.Keywords)
		case ExprBinary:
			bin, _ := b.Exprs.Binary(n.Expr)
			exprs(bin.Left, bin.Right)
		case ExprBoolOp:
			bo, _ := b.Exprs.BoolOp(n.Expr)
			exprs(bo.Values...)
		case ExprUnary:
			u, _ := b.Exprs.Unary(n.Expr)
			exprs(u.Operand)
		case ExprCompare:
			c, _ := b.Exprs.Compare(n.Expr)
			exprs(c.Left)
			exprs(c.Comparators...)
		case ExprTernary:
			t, _ := b.Exprs.Ternary(n.Expr)
			exprs(t.Test, t.Body, t.OrElse)
		case ExprLambda:
			l, _ := b.Exprs.Lambda(n.Expr)
			exprs(l.Args.exprs()...)
			exprs(l.Body)
		case ExprTuple, ExprList, ExprSet:
			s, _ := b.Exprs.Seq(n.Expr)
			exprs(s.Elts...)
		case ExprDict:
			dict, _ := b.Exprs.Dict(n.Expr)
			exprs(dict.Keys...)
			exprs(dict.Values...)
		case ExprListComp, ExprSetComp, ExprGenerator, ExprDictComp:
			c, _ := b.Exprs.Comp(n.Expr)
			exprs(c.Elt, c.Value)
			comps(c.Generators)
		case ExprStarred, ExprAwait, ExprYield, ExprYieldFrom:
			v, _ := b.Exprs.Value(n.Expr)
			exprs(v.Value)
		case ExprNamed:
			nm, _ := b.Exprs.Named(n.Expr)
			exprs(nm.Target, nm.Value)
		}
	}
	return out
}

// FirstDef returns the first def in breadth-first order.
// async def counts only when includeAsync is set.
func (b *Builder) FirstDef(mod *Module, includeAsync bool) (StmtID, bool) {
	found := NoStmtID
	b.Walk(mod, func(n Node) bool {
		if n.Kind != NodeStmt {
			return true
		}
		def, ok := b.Stmts.Def(n.Stmt)
		if !ok || (def.Async && !includeAsync) {
			return true
		}
		found = n.Stmt
		return false
	})
	return found, found.IsValid()
}
