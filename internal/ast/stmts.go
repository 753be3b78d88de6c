package ast

import (
	"slices"

	"aegis/internal/source"
)

type Stmts struct {
	Arena     *Arena[Stmt]
	Defs      *Arena[StmtDefData]
	Classes   *Arena[StmtClassData]
	Values    *Arena[StmtValueData]
	Targets   *Arena[StmtTargetsData]
	AugAssign *Arena[StmtAugAssignData]
	AnnAssign *Arena[StmtAnnAssignData]
	Fors      *Arena[StmtForData]
	Conds     *Arena[StmtCondData]
	Withs     *Arena[StmtWithData]
	Pairs     *Arena[StmtPairData]
	Tries     *Arena[StmtTryData]
	Imports   *Arena[StmtImportData]
	Names     *Arena[StmtNamesData]
	Matches   *Arena[StmtMatchData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 7
	}
	small := capHint/8 + 1
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Defs:      NewArena[StmtDefData](small),
		Classes:   NewArena[StmtClassData](small),
		Values:    NewArena[StmtValueData](capHint),
		Targets:   NewArena[StmtTargetsData](small),
		AugAssign: NewArena[StmtAugAssignData](small),
		AnnAssign: NewArena[StmtAnnAssignData](small),
		Fors:      NewArena[StmtForData](small),
		Conds:     NewArena[StmtCondData](small),
		Withs:     NewArena[StmtWithData](small),
		Pairs:     NewArena[StmtPairData](small),
		Tries:     NewArena[StmtTryData](small),
		Imports:   NewArena[StmtImportData](small),
		Names:     NewArena[StmtNamesData](small),
		Matches:   NewArena[StmtMatchData](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func stmtPayload[T any](s *Stmts, id StmtID, arena *Arena[T], kinds ...StmtKind) (*T, bool) {
	st := s.Get(id)
	if st == nil || !slices.Contains(kinds, st.Kind) {
		return nil, false
	}
	return arena.Get(uint32(st.Payload)), true
}

// NewSimple creates a statement without payload: Pass, Break, Continue, Bad.
func (s *Stmts) NewSimple(kind StmtKind, span source.Span) StmtID {
	return s.new(kind, span, 0)
}

func (s *Stmts) NewDef(span source.Span, data StmtDefData) StmtID {
	return s.new(StmtFunctionDef, span, s.Defs.Allocate(data))
}

func (s *Stmts) Def(id StmtID) (*StmtDefData, bool) {
	return stmtPayload(s, id, s.Defs, StmtFunctionDef)
}

func (s *Stmts) NewClass(span source.Span, data StmtClassData) StmtID {
	return s.new(StmtClassDef, span, s.Classes.Allocate(data))
}

func (s *Stmts) Class(id StmtID) (*StmtClassData, bool) {
	return stmtPayload(s, id, s.Classes, StmtClassDef)
}

// NewValue creates a Return or Expr.
func (s *Stmts) NewValue(kind StmtKind, span source.Span, value ExprID) StmtID {
	return s.new(kind, span, s.Values.Allocate(StmtValueData{Value: value}))
}

func (s *Stmts) Value(id StmtID) (*StmtValueData, bool) {
	return stmtPayload(s, id, s.Values, StmtReturn, StmtExpr)
}

// NewTargets creates an Assign or Delete.
func (s *Stmts) NewTargets(kind StmtKind, span source.Span, targets []ExprID, value ExprID) StmtID {
	return s.new(kind, span, s.Targets.Allocate(StmtTargetsData{Targets: targets, Value: value}))
}

func (s *Stmts) TargetList(id StmtID) (*StmtTargetsData, bool) {
	return stmtPayload(s, id, s.Targets, StmtAssign, StmtDelete)
}

func (s *Stmts) NewAugAssign(span source.Span, target ExprID, op Op, value ExprID) StmtID {
	return s.new(StmtAugAssign, span, s.AugAssign.Allocate(StmtAugAssignData{Target: target, Op: op, Value: value}))
}

func (s *Stmts) Aug(id StmtID) (*StmtAugAssignData, bool) {
	return stmtPayload(s, id, s.AugAssign, StmtAugAssign)
}

func (s *Stmts) NewAnnAssign(span source.Span, target, annotation, value ExprID) StmtID {
	return s.new(StmtAnnAssign, span, s.AnnAssign.Allocate(StmtAnnAssignData{Target: target, Annotation: annotation, Value: value}))
}

func (s *Stmts) Ann(id StmtID) (*StmtAnnAssignData, bool) {
	return stmtPayload(s, id, s.AnnAssign, StmtAnnAssign)
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	return stmtPayload(s, id, s.Fors, StmtFor)
}

// NewCond creates an If or While.
func (s *Stmts) NewCond(kind StmtKind, span source.Span, data StmtCondData) StmtID {
	return s.new(kind, span, s.Conds.Allocate(data))
}

func (s *Stmts) Cond(id StmtID) (*StmtCondData, bool) {
	return stmtPayload(s, id, s.Conds, StmtIf, StmtWhile)
}

func (s *Stmts) NewWith(span source.Span, data StmtWithData) StmtID {
	return s.new(StmtWith, span, s.Withs.Allocate(data))
}

func (s *Stmts) With(id StmtID) (*StmtWithData, bool) {
	return stmtPayload(s, id, s.Withs, StmtWith)
}

// NewPair creates a Raise or Assert.
func (s *Stmts) NewPair(kind StmtKind, span source.Span, first, second ExprID) StmtID {
	return s.new(kind, span, s.Pairs.Allocate(StmtPairData{First: first, Second: second}))
}

func (s *Stmts) Pair(id StmtID) (*StmtPairData, bool) {
	return stmtPayload(s, id, s.Pairs, StmtRaise, StmtAssert)
}

func (s *Stmts) NewTry(span source.Span, data StmtTryData) StmtID {
	return s.new(StmtTry, span, s.Tries.Allocate(data))
}

func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) {
	return stmtPayload(s, id, s.Tries, StmtTry)
}

func (s *Stmts) NewMatch(span source.Span, data StmtMatchData) StmtID {
	return s.new(StmtMatch, span, s.Matches.Allocate(data))
}

func (s *Stmts) Match(id StmtID) (*StmtMatchData, bool) {
	return stmtPayload(s, id, s.Matches, StmtMatch)
}

// NewImport creates an Import or ImportFrom.
func (s *Stmts) NewImport(kind StmtKind, span source.Span, data StmtImportData) StmtID {
	return s.new(kind, span, s.Imports.Allocate(data))
}

func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	return stmtPayload(s, id, s.Imports, StmtImport, StmtImportFrom)
}

// NewNames creates a Global or Nonlocal.
func (s *Stmts) NewNames(kind StmtKind, span source.Span, names []string) StmtID {
	return s.new(kind, span, s.Names.Allocate(StmtNamesData{Names: names}))
}
