package sig

import (
	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/lexer"
	"aegis/internal/parser"
	"aegis/internal/source"
)

// Resolve turns an annotation expression into a tag, one level deep:
//
//	no annotation        -> any
//	Name                 -> the name as written
//	outer[inner]         -> outer[inner], non-name inner -> any
//	outer[a, b]          -> outer[a, b]
//	non-name outer       -> any[...]
//	anything else        -> any
func Resolve(b *ast.Builder, e ast.ExprID) Type {
	if !e.IsValid() {
		return Any()
	}
	if name, ok := b.Exprs.Name(e); ok {
		return Named(name.Name)
	}
	sub, ok := b.Exprs.Subscript(e)
	if !ok {
		return Any()
	}
	outer := ""
	if name, ok := b.Exprs.Name(sub.Value); ok {
		outer = name.Name
	}
	var args []Type
	if tuple, ok := b.Exprs.Seq(sub.Index); ok && b.Exprs.Get(sub.Index).Kind == ast.ExprTuple {
		args = make([]Type, 0, len(tuple.Elts))
		for _, elt := range tuple.Elts {
			args = append(args, resolveInner(b, elt))
		}
	} else {
		args = []Type{resolveInner(b, sub.Index)}
	}
	return Generic(outer, args...)
}

func resolveInner(b *ast.Builder, e ast.ExprID) Type {
	if name, ok := b.Exprs.Name(e); ok {
		return Named(name.Name)
	}
	return Any()
}

// ParseAnnotation parses annotation text as a Python expression and
// resolves it with Resolve. Text that does not parse yields any.
func ParseAnnotation(text string) Type {
	src := "(" + text + "\n)\n"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<annotation>", []byte(src)))
	b := ast.NewBuilder(ast.HintsFor(len(src)))
	rep := diag.NopReporter{}
	res := parser.ParseFile(lexer.New(file, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep, MaxErrors: 1})
	if res.Errors > 0 || res.Module == nil || len(res.Module.Body) != 1 {
		return Any()
	}
	st := b.Stmts.Get(res.Module.Body[0])
	if st == nil || st.Kind != ast.StmtExpr {
		return Any()
	}
	v, _ := b.Stmts.Value(res.Module.Body[0])
	return Resolve(b, v.Value)
}
