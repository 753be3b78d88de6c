package ast

import (
	"aegis/internal/source"
)

type StmtKind uint8

const (
	StmtBad StmtKind = iota
	StmtFunctionDef
	StmtClassDef
	StmtReturn
	StmtDelete
	StmtAssign
	StmtAugAssign
	StmtAnnAssign
	StmtFor
	StmtWhile
	StmtIf
	StmtWith
	StmtRaise
	StmtTry
	StmtAssert
	StmtImport
	StmtImportFrom
	StmtGlobal
	StmtNonlocal
	StmtExpr
	StmtPass
	StmtBreak
	StmtContinue
	StmtMatch
)

var stmtKindNames = [...]string{
	StmtBad:         "Bad",
	StmtFunctionDef: "FunctionDef",
	StmtClassDef:    "ClassDef",
	StmtReturn:      "Return",
	StmtDelete:      "Delete",
	StmtAssign:      "Assign",
	StmtAugAssign:   "AugAssign",
	StmtAnnAssign:   "AnnAssign",
	StmtFor:         "For",
	StmtWhile:       "While",
	StmtIf:          "If",
	StmtWith:        "With",
	StmtRaise:       "Raise",
	StmtTry:         "Try",
	StmtAssert:      "Assert",
	StmtImport:      "Import",
	StmtImportFrom:  "ImportFrom",
	StmtGlobal:      "Global",
	StmtNonlocal:    "Nonlocal",
	StmtExpr:        "Expr",
	StmtPass:        "Pass",
	StmtBreak:       "Break",
	StmtContinue:    "Continue",
	StmtMatch:       "Match",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// StmtDefData covers def and async def.
type StmtDefData struct {
	Name       string
	NameSpan   source.Span
	Args       Arguments
	Body       []StmtID
	Decorators []ExprID
	Returns    ExprID
	Async      bool
}

type StmtClassData struct {
	Name       string
	Bases      []ExprID
	Keywords   []Keyword
	Body       []StmtID
	Decorators []ExprID
}

// StmtValueData covers Return (Value may be absent) and Expr.
type StmtValueData struct {
	Value ExprID
}

// StmtTargetsData covers Assign (a = b = value) and Delete (no Value).
type StmtTargetsData struct {
	Targets []ExprID
	Value   ExprID
}

type StmtAugAssignData struct {
	Target ExprID
	Op     Op // "+", "//", ...
	Value  ExprID
}

type StmtAnnAssignData struct {
	Target     ExprID
	Annotation ExprID
	Value      ExprID
}

type StmtForData struct {
	Target ExprID
	Iter   ExprID
	Body   []StmtID
	OrElse []StmtID
	Async  bool
}

// StmtCondData covers If and While.
type StmtCondData struct {
	Test   ExprID
	Body   []StmtID
	OrElse []StmtID
}

type WithItem struct {
	Context ExprID
	Vars    ExprID
}

type StmtWithData struct {
	Items []WithItem
	Body  []StmtID
	Async bool
}

// StmtPairData covers Raise (exc, cause) and Assert (test, msg).
type StmtPairData struct {
	First  ExprID
	Second ExprID
}

type ExceptHandler struct {
	Type ExprID
	Name string
	Body []StmtID
	Span source.Span
}

type StmtTryData struct {
	Body     []StmtID
	Handlers []ExceptHandler
	OrElse   []StmtID
	Finally  []StmtID
	Star     bool // except*
}

// MatchCase is one case arm. The pattern and guard are kept only as a span.
type MatchCase struct {
	Pattern source.Span
	Body    []StmtID
	Span    source.Span
}

type StmtMatchData struct {
	Subject ExprID
	Cases   []MatchCase
}

type Alias struct {
	Name   string
	AsName string
}

// StmtImportData covers Import and ImportFrom (Module and Level are for from only).
type StmtImportData struct {
	Module string
	Level  int
	Names  []Alias
}

// StmtNamesData covers Global and Nonlocal.
type StmtNamesData struct {
	Names []string
}

// Module is the root of a parsed file.
type Module struct {
	Body []StmtID
	Span source.Span
}
