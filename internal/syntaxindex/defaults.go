package syntaxindex

import (
	"stylecheck/internal/ast"
	"stylecheck/internal/token"
)

// Kind: класс значения по умолчанию, как его увидел бы literal_eval.
type Kind uint8

const (
	KindOpaque Kind = iota // не литерал: имя, вызов, comprehension, ...
	KindInt
	KindFloat
	KindComplex
	KindString
	KindBytes
	KindBool
	KindNone
	KindTuple
	KindFrozenSet
	KindList
	KindDict
	KindSet
)

var kindNames = [...]string{
	KindOpaque:    "opaque",
	KindInt:       "int",
	KindFloat:     "float",
	KindComplex:   "complex",
	KindString:    "str",
	KindBytes:     "bytes",
	KindBool:      "bool",
	KindNone:      "None",
	KindTuple:     "tuple",
	KindFrozenSet: "frozenset",
	KindList:      "list",
	KindDict:      "dict",
	KindSet:       "set",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind?"
}

// Immutable reports whether values of this kind are safe as defaults.
func (k Kind) Immutable() bool {
	switch k {
	case KindInt, KindString, KindBool, KindTuple, KindFrozenSet, KindNone:
		return true
	}
	return false
}

// DefaultValue: значение по умолчанию параметра. Repr - исходный текст.
type DefaultValue struct {
	Kind Kind
	Repr string
}

func (ix *indexer) classify(id ast.ExprID) DefaultValue {
	dv := DefaultValue{Kind: ix.kindOf(id)}
	if ix.src != nil {
		if e := ix.builder.Exprs.Get(id); e != nil && int(e.Span.End) <= len(ix.src.Content) {
			dv.Repr = string(ix.src.Content[e.Span.Start:e.Span.End])
		}
	}
	return dv
}

func (ix *indexer) kindOf(id ast.ExprID) Kind {
	exprs := ix.builder.Exprs
	e := exprs.Get(id)
	if e == nil {
		return KindOpaque
	}
	switch e.Kind {
	case ast.ExprLit:
		lit, _ := exprs.Literal(id)
		return literalKind(lit.Kind)

	case ast.ExprUnary:
		// -1, +2.5, -3j
		un, _ := exprs.Unary(id)
		if un.Op != token.Minus && un.Op != token.Plus {
			return KindOpaque
		}
		if k := ix.kindOf(un.Operand); k == KindInt || k == KindFloat || k == KindComplex {
			if _, isLit := exprs.Literal(un.Operand); isLit {
				return k
			}
		}
		return KindOpaque

	case ast.ExprBinary:
		// 1+2j, -1-2j
		bin, _ := exprs.Binary(id)
		if bin.Op != token.Plus && bin.Op != token.Minus {
			return KindOpaque
		}
		left, right := ix.kindOf(bin.Left), ix.kindOf(bin.Right)
		if (left == KindInt || left == KindFloat) && right == KindComplex && ix.isPlainNumber(bin.Left) {
			if r, ok := exprs.Literal(bin.Right); ok && r.Kind == ast.LitImag {
				return KindComplex
			}
		}
		return KindOpaque

	case ast.ExprTuple, ast.ExprList, ast.ExprSet:
		seq, _ := exprs.Seq(id)
		for _, elt := range seq.Elts {
			if ix.kindOf(elt) == KindOpaque {
				return KindOpaque
			}
		}
		switch e.Kind {
		case ast.ExprTuple:
			return KindTuple
		case ast.ExprList:
			return KindList
		}
		return KindSet

	case ast.ExprDict:
		d, _ := exprs.Dict(id)
		for _, entry := range d.Entries {
			if !entry.Key.IsValid() || ix.kindOf(entry.Key) == KindOpaque || ix.kindOf(entry.Value) == KindOpaque {
				return KindOpaque
			}
		}
		return KindDict

	case ast.ExprCall:
		return ix.callKind(id)
	}
	return KindOpaque
}

// callKind: frozenset() / frozenset(<literal>) и set() считаются литералами.
func (ix *indexer) callKind(id ast.ExprID) Kind {
	exprs := ix.builder.Exprs
	call, _ := exprs.Call(id)
	callee, ok := exprs.Name(call.Callee)
	if !ok {
		return KindOpaque
	}
	switch callee.Name {
	case "frozenset":
		switch len(call.Args) {
		case 0:
			return KindFrozenSet
		case 1:
			arg := call.Args[0]
			if arg.Star == 0 && arg.Name == "" && ix.kindOf(arg.Value) != KindOpaque {
				return KindFrozenSet
			}
		}
	case "set":
		if len(call.Args) == 0 {
			return KindSet
		}
	}
	return KindOpaque
}

// isPlainNumber проверяет вещественную часть комплексного литерала: число со
// знаком или без.
func (ix *indexer) isPlainNumber(id ast.ExprID) bool {
	exprs := ix.builder.Exprs
	if lit, ok := exprs.Literal(id); ok {
		return lit.Kind == ast.LitInt || lit.Kind == ast.LitFloat
	}
	if un, ok := exprs.Unary(id); ok && exprs.Get(id).Kind == ast.ExprUnary {
		lit, isLit := exprs.Literal(un.Operand)
		return isLit && (lit.Kind == ast.LitInt || lit.Kind == ast.LitFloat)
	}
	return false
}

func literalKind(k ast.LitKind) Kind {
	switch k {
	case ast.LitInt:
		return KindInt
	case ast.LitFloat:
		return KindFloat
	case ast.LitImag:
		return KindComplex
	case ast.LitString:
		return KindString
	case ast.LitBytes:
		return KindBytes
	case ast.LitTrue, ast.LitFalse:
		return KindBool
	case ast.LitNone:
		return KindNone
	}
	// f-строки literal_eval не принимает; для Ellipsis отдельного класса нет
	return KindOpaque
}
