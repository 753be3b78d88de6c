package ast

import (
	"aegis/internal/source"
)

type ExprKind uint8

const (
	ExprBad ExprKind = iota // восстановление после ошибки
	ExprName
	ExprLiteral
	ExprAttribute
	ExprSubscript
	ExprSlice
	ExprCall
	ExprBinary
	ExprBoolOp
	ExprUnary
	ExprCompare
	ExprTernary
	ExprLambda
	ExprTuple
	ExprList
	ExprSet
	ExprDict
	ExprListComp
	ExprSetComp
	ExprDictComp
	ExprGenerator
	ExprStarred
	ExprAwait
	ExprYield
	ExprYieldFrom
	ExprNamed // :=
)

var exprKindNames = [...]string{
	ExprBad:       "Bad",
	ExprName:      "Name",
	ExprLiteral:   "Constant",
	ExprAttribute: "Attribute",
	ExprSubscript: "Subscript",
	ExprSlice:     "Slice",
	ExprCall:      "Call",
	ExprBinary:    "BinOp",
	ExprBoolOp:    "BoolOp",
	ExprUnary:     "UnaryOp",
	ExprCompare:   "Compare",
	ExprTernary:   "IfExp",
	ExprLambda:    "Lambda",
	ExprTuple:     "Tuple",
	ExprList:      "List",
	ExprSet:       "Set",
	ExprDict:      "Dict",
	ExprListComp:  "ListComp",
	ExprSetComp:   "SetComp",
	ExprDictComp:  "DictComp",
	ExprGenerator: "GeneratorExp",
	ExprStarred:   "Starred",
	ExprAwait:     "Await",
	ExprYield:     "Yield",
	ExprYieldFrom: "YieldFrom",
	ExprNamed:     "NamedExpr",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitImag
	LitString
	LitBytes
	LitFString
	LitTrue
	LitFalse
	LitNone
	LitEllipsis
)

// Op is a binary, unary or boolean operator kept as source text.
type Op string

type ExprNameData struct {
	Name string
}

type ExprLiteralData struct {
	Kind LitKind
	Raw  string // исходный текст; соседние строки склеены через пробел
}

type ExprAttributeData struct {
	Value ExprID
	Attr  string
}

type ExprSubscriptData struct {
	Value ExprID
	Index ExprID // Tuple для a[x, y]
}

type ExprSliceData struct {
	Lower, Upper, Step ExprID
}

// Keyword is a named call argument; Name is "" for **kwargs.
type Keyword struct {
	Name  string
	Value ExprID
	Span  source.Span
}

type ExprCallData struct {
	Func     ExprID
	Args     []ExprID // позиционные, включая Starred
	Keywords []Keyword
}

type ExprBinaryData struct {
	Op          Op
	Left, Right ExprID
}

type ExprBoolOpData struct {
	Op     Op // "and" | "or"
	Values []ExprID
}

type ExprUnaryData struct {
	Op      Op // "not" | "-" | "+" | "~"
	Operand ExprID
}

type ExprCompareData struct {
	Left        ExprID
	Ops         []Op // "<", "not in", "is not", ...
	Comparators []ExprID
}

type ExprTernaryData struct {
	Test, Body, OrElse ExprID
}

type ExprLambdaData struct {
	Args Arguments
	Body ExprID
}

// ExprSeqData holds the elements of a Tuple, List or Set.
type ExprSeqData struct {
	Elts []ExprID
}

// ExprDictData: Keys[i] == NoExprID means **Values[i] unpacking.
type ExprDictData struct {
	Keys   []ExprID
	Values []ExprID
}

type Comprehension struct {
	Target ExprID
	Iter   ExprID
	Ifs    []ExprID
	Async  bool
}

// ExprCompData covers ListComp/SetComp/GeneratorExp (Elt) and DictComp (Elt is the key, plus Value).
type ExprCompData struct {
	Elt        ExprID
	Value      ExprID
	Generators []Comprehension
}

// ExprUnaryValueData covers Starred/Await/Yield/YieldFrom with one optional value.
type ExprUnaryValueData struct {
	Value ExprID
}

type ExprNamedData struct {
	Target ExprID
	Value  ExprID
}
