package ast

import (
	"slices"

	"aegis/internal/source"
)

// Exprs manages allocation of expressions and their per-kind payloads.
type Exprs struct {
	Arena      *Arena[Expr]
	Names      *Arena[ExprNameData]
	Literals   *Arena[ExprLiteralData]
	Attributes *Arena[ExprAttributeData]
	Subscripts *Arena[ExprSubscriptData]
	Slices     *Arena[ExprSliceData]
	Calls      *Arena[ExprCallData]
	Binaries   *Arena[ExprBinaryData]
	BoolOps    *Arena[ExprBoolOpData]
	Unaries    *Arena[ExprUnaryData]
	Compares   *Arena[ExprCompareData]
	Ternaries  *Arena[ExprTernaryData]
	Lambdas    *Arena[ExprLambdaData]
	Seqs       *Arena[ExprSeqData]
	Dicts      *Arena[ExprDictData]
	Comps      *Arena[ExprCompData]
	Values     *Arena[ExprUnaryValueData]
	Nameds     *Arena[ExprNamedData]
}

// NewExprs creates per-kind arenas preallocated with capHint (1<<8 when zero).
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Names:      NewArena[ExprNameData](capHint),
		Literals:   NewArena[ExprLiteralData](capHint),
		Attributes: NewArena[ExprAttributeData](small),
		Subscripts: NewArena[ExprSubscriptData](small),
		Slices:     NewArena[ExprSliceData](small),
		Calls:      NewArena[ExprCallData](small),
		Binaries:   NewArena[ExprBinaryData](small),
		BoolOps:    NewArena[ExprBoolOpData](small),
		Unaries:    NewArena[ExprUnaryData](small),
		Compares:   NewArena[ExprCompareData](small),
		Ternaries:  NewArena[ExprTernaryData](small),
		Lambdas:    NewArena[ExprLambdaData](small),
		Seqs:       NewArena[ExprSeqData](small),
		Dicts:      NewArena[ExprDictData](small),
		Comps:      NewArena[ExprCompData](small),
		Values:     NewArena[ExprUnaryValueData](small),
		Nameds:     NewArena[ExprNamedData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func payloadOf[T any](e *Exprs, id ExprID, arena *Arena[T], kinds ...ExprKind) (*T, bool) {
	expr := e.Get(id)
	if expr == nil || !slices.Contains(kinds, expr.Kind) {
		return nil, false
	}
	return arena.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBad(span source.Span) ExprID {
	return e.new(ExprBad, span, 0)
}

func (e *Exprs) NewName(span source.Span, name string) ExprID {
	return e.new(ExprName, span, e.Names.Allocate(ExprNameData{Name: name}))
}

func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	return payloadOf(e, id, e.Names, ExprName)
}

func (e *Exprs) NewLiteral(span source.Span, kind LitKind, raw string) ExprID {
	return e.new(ExprLiteral, span, e.Literals.Allocate(ExprLiteralData{Kind: kind, Raw: raw}))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	return payloadOf(e, id, e.Literals, ExprLiteral)
}

func (e *Exprs) NewAttribute(span source.Span, value ExprID, attr string) ExprID {
	return e.new(ExprAttribute, span, e.Attributes.Allocate(ExprAttributeData{Value: value, Attr: attr}))
}

func (e *Exprs) Attribute(id ExprID) (*ExprAttributeData, bool) {
	return payloadOf(e, id, e.Attributes, ExprAttribute)
}

func (e *Exprs) NewSubscript(span source.Span, value, index ExprID) ExprID {
	return e.new(ExprSubscript, span, e.Subscripts.Allocate(ExprSubscriptData{Value: value, Index: index}))
}

func (e *Exprs) Subscript(id ExprID) (*ExprSubscriptData, bool) {
	return payloadOf(e, id, e.Subscripts, ExprSubscript)
}

func (e *Exprs) NewSlice(span source.Span, lower, upper, step ExprID) ExprID {
	return e.new(ExprSlice, span, e.Slices.Allocate(ExprSliceData{Lower: lower, Upper: upper, Step: step}))
}

func (e *Exprs) Slice(id ExprID) (*ExprSliceData, bool) {
	return payloadOf(e, id, e.Slices, ExprSlice)
}

func (e *Exprs) NewCall(span source.Span, fn ExprID, args []ExprID, kws []Keyword) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Func: fn, Args: args, Keywords: kws}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	return payloadOf(e, id, e.Calls, ExprCall)
}

func (e *Exprs) NewBinary(span source.Span, op Op, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	return payloadOf(e, id, e.Binaries, ExprBinary)
}

func (e *Exprs) NewBoolOp(span source.Span, op Op, values []ExprID) ExprID {
	return e.new(ExprBoolOp, span, e.BoolOps.Allocate(ExprBoolOpData{Op: op, Values: values}))
}

func (e *Exprs) BoolOp(id ExprID) (*ExprBoolOpData, bool) {
	return payloadOf(e, id, e.BoolOps, ExprBoolOp)
}

func (e *Exprs) NewUnary(span source.Span, op Op, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	return payloadOf(e, id, e.Unaries, ExprUnary)
}

func (e *Exprs) NewCompare(span source.Span, left ExprID, ops []Op, comparators []ExprID) ExprID {
	return e.new(ExprCompare, span, e.Compares.Allocate(ExprCompareData{Left: left, Ops: ops, Comparators: comparators}))
}

func (e *Exprs) Compare(id ExprID) (*ExprCompareData, bool) {
	return payloadOf(e, id, e.Compares, ExprCompare)
}

func (e *Exprs) NewTernary(span source.Span, test, body, orElse ExprID) ExprID {
	return e.new(ExprTernary, span, e.Ternaries.Allocate(ExprTernaryData{Test: test, Body: body, OrElse: orElse}))
}

func (e *Exprs) Ternary(id ExprID) (*ExprTernaryData, bool) {
	return payloadOf(e, id, e.Ternaries, ExprTernary)
}

func (e *Exprs) NewLambda(span source.Span, args Arguments, body ExprID) ExprID {
	return e.new(ExprLambda, span, e.Lambdas.Allocate(ExprLambdaData{Args: args, Body: body}))
}

func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	return payloadOf(e, id, e.Lambdas, ExprLambda)
}

// NewSeq creates a Tuple, List or Set.
func (e *Exprs) NewSeq(kind ExprKind, span source.Span, elts []ExprID) ExprID {
	return e.new(kind, span, e.Seqs.Allocate(ExprSeqData{Elts: elts}))
}

func (e *Exprs) Seq(id ExprID) (*ExprSeqData, bool) {
	return payloadOf(e, id, e.Seqs, ExprTuple, ExprList, ExprSet)
}

func (e *Exprs) NewDict(span source.Span, keys, values []ExprID) ExprID {
	return e.new(ExprDict, span, e.Dicts.Allocate(ExprDictData{Keys: keys, Values: values}))
}

func (e *Exprs) Dict(id ExprID) (*ExprDictData, bool) {
	return payloadOf(e, id, e.Dicts, ExprDict)
}

// NewComp creates a ListComp, SetComp, DictComp or GeneratorExp.
func (e *Exprs) NewComp(kind ExprKind, span source.Span, elt, value ExprID, gens []Comprehension) ExprID {
	return e.new(kind, span, e.Comps.Allocate(ExprCompData{Elt: elt, Value: value, Generators: gens}))
}

func (e *Exprs) Comp(id ExprID) (*ExprCompData, bool) {
	return payloadOf(e, id, e.Comps, ExprListComp, ExprSetComp, ExprDictComp, ExprGenerator)
}

// NewValue creates a Starred, Await, Yield or YieldFrom.
func (e *Exprs) NewValue(kind ExprKind, span source.Span, value ExprID) ExprID {
	return e.new(kind, span, e.Values.Allocate(ExprUnaryValueData{Value: value}))
}

func (e *Exprs) Value(id ExprID) (*ExprUnaryValueData, bool) {
	return payloadOf(e, id, e.Values, ExprStarred, ExprAwait, ExprYield, ExprYieldFrom)
}

func (e *Exprs) NewNamed(span source.Span, target, value ExprID) ExprID {
	return e.new(ExprNamed, span, e.Nameds.Allocate(ExprNamedData{Target: target, Value: value}))
}

func (e *Exprs) Named(id ExprID) (*ExprNamedData, bool) {
	return payloadOf(e, id, e.Nameds, ExprNamed)
}
