package ast

import (
	"stylecheck/internal/source"
	"stylecheck/internal/token"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprName represents a bare identifier.
	ExprName ExprKind = iota
	// ExprLit represents a literal (number, string, bytes, True/False/None, ...).
	ExprLit
	// ExprUnary represents a prefix operator: -x, +x, ~x, not x.
	ExprUnary
	// ExprBinary represents an arithmetic or bitwise binary operator.
	ExprBinary
	// ExprBoolOp represents `and` / `or`.
	ExprBoolOp
	// ExprCompare represents a comparison chain link.
	ExprCompare
	ExprCall
	ExprAttr
	ExprSubscript
	ExprSlice
	ExprTuple
	ExprList
	ExprSet
	ExprDict
	ExprComp
	ExprLambda
	ExprTernary
	ExprWalrus
	ExprAwait
	ExprYield
	ExprYieldFrom
	ExprStarred
	ExprDoubleStarred
)

var exprKindNames = [...]string{
	ExprName:          "Name",
	ExprLit:           "Lit",
	ExprUnary:         "Unary",
	ExprBinary:        "Binary",
	ExprBoolOp:        "BoolOp",
	ExprCompare:       "Compare",
	ExprCall:          "Call",
	ExprAttr:          "Attr",
	ExprSubscript:     "Subscript",
	ExprSlice:         "Slice",
	ExprTuple:         "Tuple",
	ExprList:          "List",
	ExprSet:           "Set",
	ExprDict:          "Dict",
	ExprComp:          "Comp",
	ExprLambda:        "Lambda",
	ExprTernary:       "Ternary",
	ExprWalrus:        "Walrus",
	ExprAwait:         "Await",
	ExprYield:         "Yield",
	ExprYieldFrom:     "YieldFrom",
	ExprStarred:       "Starred",
	ExprDoubleStarred: "DoubleStarred",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) && exprKindNames[k] != "" {
		return exprKindNames[k]
	}
	return "Expr?"
}

// Expr: заголовок выражения; данные конкретного вида лежат в отдельной арене по Payload.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Line    int
	Payload PayloadID
}

// LitKind классифицирует литералы.
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

type ExprNameData struct {
	Name string
}

// ExprLiteralData. Для неявной конкатенации строк ("a" "b") Parts содержит
// исходный текст каждой части.
type ExprLiteralData struct {
	Kind  LitKind
	Parts []string
}

// Text returns the source text of the literal, parts joined by a space.
func (d *ExprLiteralData) Text() string {
	switch len(d.Parts) {
	case 0:
		return ""
	case 1:
		return d.Parts[0]
	}
	n := len(d.Parts) - 1
	for _, p := range d.Parts {
		n += len(p)
	}
	buf := make([]byte, 0, n)
	for i, p := range d.Parts {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, p...)
	}
	return string(buf)
}

type ExprUnaryData struct {
	Op      token.Kind
	Operand ExprID
}

// ExprBinaryData используется для ExprBinary, ExprBoolOp, ExprCompare и ExprWalrus.
// Для `not in` / `is not` выставлен Not.
type ExprBinaryData struct {
	Op    token.Kind
	Not   bool
	Left  ExprID
	Right ExprID
}

// CallArg: аргумент вызова или базовый класс в заголовке class.
// Star: 0 - обычный, 1 - *args, 2 - **kwargs.
type CallArg struct {
	Name  string
	Value ExprID
	Star  uint8
}

type ExprCallData struct {
	Callee ExprID
	Args   []CallArg
}

type ExprAttrData struct {
	Target ExprID
	Name   string
}

type ExprSubscriptData struct {
	Target ExprID
	Index  ExprID
}

type ExprSliceData struct {
	Lower ExprID
	Upper ExprID
	Step  ExprID
}

// ExprSeqData хранит элементы tuple/list/set.
type ExprSeqData struct {
	Elts []ExprID
}

// DictEntry: Key == NoExprID означает распаковку **mapping.
type DictEntry struct {
	Key   ExprID
	Value ExprID
}

type ExprDictData struct {
	Entries []DictEntry
}

// CompKind различает виды comprehension.
type CompKind uint8

const (
	CompGenerator CompKind = iota
	CompList
	CompSet
	CompDict
)

type CompClause struct {
	IsAsync bool
	Target  ExprID
	Iter    ExprID
	Ifs     []ExprID
}

type ExprCompData struct {
	Kind    CompKind
	Elt     ExprID
	Value   ExprID // только для CompDict
	Clauses []CompClause
}

type ExprLambdaData struct {
	Params []Param
	Body   ExprID
}

type ExprTernaryData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}
