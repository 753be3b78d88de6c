package ast

import "aegis/internal/source"

// Arg is one formal parameter.
type Arg struct {
	Name       string
	Annotation ExprID
	Span       source.Span
}

// Arguments mirrors Python's ast.arguments: positional defaults live in
// Defaults, aligned with the tail of PosOnly+Args, and each keyword-only
// parameter has its own KwDefaults slot (NoExprID when absent).
type Arguments struct {
	PosOnly    []Arg
	Args       []Arg
	VarArg     *Arg
	KwOnly     []Arg
	KwDefaults []ExprID
	KwArg      *Arg
	Defaults   []ExprID
}

// Positional returns PosOnly and Args as one slice.
func (a *Arguments) Positional() []Arg {
	out := make([]Arg, 0, len(a.PosOnly)+len(a.Args))
	out = append(out, a.PosOnly...)
	return append(out, a.Args...)
}

// Len is the total number of parameters.
func (a *Arguments) Len() int {
	n := len(a.PosOnly) + len(a.Args) + len(a.KwOnly)
	if a.VarArg != nil {
		n++
	}
	if a.KwArg != nil {
		n++
	}
	return n
}

// exprs returns the parameter expressions in ast.arguments field order.
func (a *Arguments) exprs() []ExprID {
	var out []ExprID
	add := func(args ...Arg) {
		for _, arg := range args {
			if arg.Annotation.IsValid() {
				out = append(out, arg.Annotation)
			}
		}
	}
	add(a.PosOnly...)
	add(a.Args...)
	if a.VarArg != nil {
		add(*a.VarArg)
	}
	add(a.KwOnly...)
	for _, d := range a.KwDefaults {
		if d.IsValid() {
			out = append(out, d)
		}
	}
	if a.KwArg != nil {
		add(*a.KwArg)
	}
	return append(out, a.Defaults...)
}
