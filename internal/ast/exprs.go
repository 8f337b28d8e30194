package ast

import (
	"stylecheck/internal/source"
	"stylecheck/internal/token"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena      *Arena[Expr]
	Names      *Arena[ExprNameData]
	Literals   *Arena[ExprLiteralData]
	Unaries    *Arena[ExprUnaryData]
	Binaries   *Arena[ExprBinaryData]
	Calls      *Arena[ExprCallData]
	Attrs      *Arena[ExprAttrData]
	Subscripts *Arena[ExprSubscriptData]
	Slices     *Arena[ExprSliceData]
	Seqs       *Arena[ExprSeqData]
	Dicts      *Arena[ExprDictData]
	Comps      *Arena[ExprCompData]
	Lambdas    *Arena[ExprLambdaData]
	Ternaries  *Arena[ExprTernaryData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 4
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Names:      NewArena[ExprNameData](capHint),
		Literals:   NewArena[ExprLiteralData](capHint),
		Unaries:    NewArena[ExprUnaryData](small),
		Binaries:   NewArena[ExprBinaryData](small),
		Calls:      NewArena[ExprCallData](small),
		Attrs:      NewArena[ExprAttrData](small),
		Subscripts: NewArena[ExprSubscriptData](small),
		Slices:     NewArena[ExprSliceData](small),
		Seqs:       NewArena[ExprSeqData](small),
		Dicts:      NewArena[ExprDictData](small),
		Comps:      NewArena[ExprCompData](small),
		Lambdas:    NewArena[ExprLambdaData](small),
		Ternaries:  NewArena[ExprTernaryData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, line int, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Line:    line,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kinds ...ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil {
		return 0, false
	}
	for _, k := range kinds {
		if expr.Kind == k {
			return uint32(expr.Payload), true
		}
	}
	return 0, false
}

// NewName creates a new identifier expression.
func (e *Exprs) NewName(span source.Span, line int, name string) ExprID {
	return e.new(ExprName, span, line, e.Names.Allocate(ExprNameData{Name: name}))
}

// Name returns the identifier data for the given expression ID.
func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	p, ok := e.payload(id, ExprName)
	if !ok {
		return nil, false
	}
	return e.Names.Get(p), true
}

// NewLiteral creates a new literal expression.
func (e *Exprs) NewLiteral(span source.Span, line int, kind LitKind, parts ...string) ExprID {
	return e.new(ExprLit, span, line, e.Literals.Allocate(ExprLiteralData{Kind: kind, Parts: parts}))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(p), true
}

// NewUnary creates a prefix expression. The same payload serves await, yield,
// yield from and starred expressions; kind selects which.
func (e *Exprs) NewUnary(kind ExprKind, span source.Span, line int, op token.Kind, operand ExprID) ExprID {
	return e.new(kind, span, line, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

// Unary returns the operand data for unary-shaped expressions.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary, ExprAwait, ExprYield, ExprYieldFrom, ExprStarred, ExprDoubleStarred)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

// NewBinary creates a binary-shaped expression (binary, boolop, compare, walrus).
func (e *Exprs) NewBinary(kind ExprKind, span source.Span, line int, op token.Kind, not bool, left, right ExprID) ExprID {
	return e.new(kind, span, line, e.Binaries.Allocate(ExprBinaryData{Op: op, Not: not, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary, ExprBoolOp, ExprCompare, ExprWalrus)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewCall(span source.Span, line int, callee ExprID, args []CallArg) ExprID {
	return e.new(ExprCall, span, line, e.Calls.Allocate(ExprCallData{Callee: callee, Args: args}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewAttr(span source.Span, line int, target ExprID, name string) ExprID {
	return e.new(ExprAttr, span, line, e.Attrs.Allocate(ExprAttrData{Target: target, Name: name}))
}

func (e *Exprs) Attr(id ExprID) (*ExprAttrData, bool) {
	p, ok := e.payload(id, ExprAttr)
	if !ok {
		return nil, false
	}
	return e.Attrs.Get(p), true
}

func (e *Exprs) NewSubscript(span source.Span, line int, target, index ExprID) ExprID {
	return e.new(ExprSubscript, span, line, e.Subscripts.Allocate(ExprSubscriptData{Target: target, Index: index}))
}

func (e *Exprs) Subscript(id ExprID) (*ExprSubscriptData, bool) {
	p, ok := e.payload(id, ExprSubscript)
	if !ok {
		return nil, false
	}
	return e.Subscripts.Get(p), true
}

func (e *Exprs) NewSlice(span source.Span, line int, lower, upper, step ExprID) ExprID {
	return e.new(ExprSlice, span, line, e.Slices.Allocate(ExprSliceData{Lower: lower, Upper: upper, Step: step}))
}

func (e *Exprs) Slice(id ExprID) (*ExprSliceData, bool) {
	p, ok := e.payload(id, ExprSlice)
	if !ok {
		return nil, false
	}
	return e.Slices.Get(p), true
}

// NewSeq creates a tuple, list or set display.
func (e *Exprs) NewSeq(kind ExprKind, span source.Span, line int, elts []ExprID) ExprID {
	return e.new(kind, span, line, e.Seqs.Allocate(ExprSeqData{Elts: elts}))
}

func (e *Exprs) Seq(id ExprID) (*ExprSeqData, bool) {
	p, ok := e.payload(id, ExprTuple, ExprList, ExprSet)
	if !ok {
		return nil, false
	}
	return e.Seqs.Get(p), true
}

func (e *Exprs) NewDict(span source.Span, line int, entries []DictEntry) ExprID {
	return e.new(ExprDict, span, line, e.Dicts.Allocate(ExprDictData{Entries: entries}))
}

func (e *Exprs) Dict(id ExprID) (*ExprDictData, bool) {
	p, ok := e.payload(id, ExprDict)
	if !ok {
		return nil, false
	}
	return e.Dicts.Get(p), true
}

func (e *Exprs) NewComp(span source.Span, line int, data ExprCompData) ExprID {
	return e.new(ExprComp, span, line, e.Comps.Allocate(data))
}

func (e *Exprs) Comp(id ExprID) (*ExprCompData, bool) {
	p, ok := e.payload(id, ExprComp)
	if !ok {
		return nil, false
	}
	return e.Comps.Get(p), true
}

func (e *Exprs) NewLambda(span source.Span, line int, params []Param, body ExprID) ExprID {
	return e.new(ExprLambda, span, line, e.Lambdas.Allocate(ExprLambdaData{Params: params, Body: body}))
}

func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	p, ok := e.payload(id, ExprLambda)
	if !ok {
		return nil, false
	}
	return e.Lambdas.Get(p), true
}

func (e *Exprs) NewTernary(span source.Span, line int, cond, then, els ExprID) ExprID {
	return e.new(ExprTernary, span, line, e.Ternaries.Allocate(ExprTernaryData{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) Ternary(id ExprID) (*ExprTernaryData, bool) {
	p, ok := e.payload(id, ExprTernary)
	if !ok {
		return nil, false
	}
	return e.Ternaries.Get(p), true
}
