package extract

import (
	"context"

	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/lexer"
	"aegis/internal/parser"
	"aegis/internal/sig"
	"aegis/internal/source"
)

// native uses the in-tree lexer and recursive-descent parser.
type native struct{}

func (native) Name() string { return EngineNative }

func (native) Extract(_ context.Context, file *source.File, opts Options) (*sig.Signature, error) {
	b, mod, bag := ParseModule(file, opts.MaxErrors)
	if bag.HasErrors() {
		return nil, &ParseError{Engine: EngineNative, Bag: bag}
	}
	id, ok := b.FirstDef(mod, opts.IncludeAsync)
	if !ok {
		return nil, ErrNoDefinition
	}
	return SignatureOf(b, id), nil
}

// ParseModule parses the whole file. Lexer and parser errors share one bag.
func ParseModule(file *source.File, maxErrors uint) (*ast.Builder, *ast.Module, *diag.Bag) {
	limit := int(maxErrors) // #nosec G115 -- NewBag caps the size itself
	if limit == 0 {
		limit = 64
	}
	bag := diag.NewBag(limit)
	// the lexer and the parser may report the same error at the same place
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	b := ast.NewBuilder(ast.HintsFor(len(file.Content)))
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := parser.ParseFile(lx, b, parser.Options{Reporter: rep, MaxErrors: maxErrors})
	bag.Sort()
	return b, res.Module, bag
}

// SignatureOf builds a signature from a FunctionDef.
// Positional defaults align with the tail of PosOnly+Args.
func SignatureOf(b *ast.Builder, id ast.StmtID) *sig.Signature {
	def, ok := b.Stmts.Def(id)
	if !ok {
		return nil
	}
	out := &sig.Signature{
		Name:    def.Name,
		Async:   def.Async,
		Returns: sig.Resolve(b, def.Returns),
		Params:  make([]sig.Param, 0, def.Args.Len()),
	}
	if st := b.Stmts.Get(id); st != nil {
		out.Span = st.Span
	}

	positional := def.Args.Positional()
	firstDefault := len(positional) - len(def.Args.Defaults)
	for i, arg := range positional {
		kind := sig.PositionalOrKeyword
		if i < len(def.Args.PosOnly) {
			kind = sig.PositionalOnly
		}
		out.Params = append(out.Params, paramOf(b, arg, kind, i >= firstDefault))
	}
	if def.Args.VarArg != nil {
		out.Params = append(out.Params, paramOf(b, *def.Args.VarArg, sig.VarPositional, false))
	}
	for i, arg := range def.Args.KwOnly {
		hasDefault := i < len(def.Args.KwDefaults) && def.Args.KwDefaults[i].IsValid()
		out.Params = append(out.Params, paramOf(b, arg, sig.KeywordOnly, hasDefault))
	}
	if def.Args.KwArg != nil {
		out.Params = append(out.Params, paramOf(b, *def.Args.KwArg, sig.VarKeyword, false))
	}
	return out
}

func paramOf(b *ast.Builder, arg ast.Arg, kind sig.ParamKind, hasDefault bool) sig.Param {
	t := sig.Resolve(b, arg.Annotation)
	if hasDefault {
		t = sig.Optional(t)
	}
	return sig.Param{
		Name:       arg.Name,
		Type:       t,
		Kind:       kind,
		HasDefault: hasDefault,
		Span:       arg.Span,
	}
}
