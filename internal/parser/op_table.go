package parser

import (
	"stylecheck/internal/ast"
	"stylecheck/internal/token"
)

// Уровни приоритета бинарных операторов (больше - сильнее связывает).
const (
	precLowest = iota
	precOr
	precAnd
	precNot
	precCompare
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precSum
	precProduct
)

type binaryOp struct {
	kind  ast.ExprKind
	prec  int
	width int // сколько токенов занимает оператор: 2 для `not in` / `is not`
	not   bool
}

// binaryInfo: оператор в текущей позиции, если он есть.
func (p *Parser) binaryInfo() (binaryOp, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwOr:
		return binaryOp{kind: ast.ExprBoolOp, prec: precOr, width: 1}, true
	case token.KwAnd:
		return binaryOp{kind: ast.ExprBoolOp, prec: precAnd, width: 1}, true
	case token.Lt, token.Gt, token.LtEq, token.GtEq, token.EqEq, token.BangEq, token.KwIn:
		return binaryOp{kind: ast.ExprCompare, prec: precCompare, width: 1}, true
	case token.KwIs:
		if p.peekN(1).Kind == token.KwNot {
			return binaryOp{kind: ast.ExprCompare, prec: precCompare, width: 2, not: true}, true
		}
		return binaryOp{kind: ast.ExprCompare, prec: precCompare, width: 1}, true
	case token.KwNot:
		if p.peekN(1).Kind == token.KwIn {
			return binaryOp{kind: ast.ExprCompare, prec: precCompare, width: 2, not: true}, true
		}
	case token.Pipe:
		return binaryOp{kind: ast.ExprBinary, prec: precBitOr, width: 1}, true
	case token.Caret:
		return binaryOp{kind: ast.ExprBinary, prec: precBitXor, width: 1}, true
	case token.Amp:
		return binaryOp{kind: ast.ExprBinary, prec: precBitAnd, width: 1}, true
	case token.Shl, token.Shr:
		return binaryOp{kind: ast.ExprBinary, prec: precShift, width: 1}, true
	case token.Plus, token.Minus:
		return binaryOp{kind: ast.ExprBinary, prec: precSum, width: 1}, true
	case token.Star, token.Slash, token.SlashSlash, token.Percent, token.At:
		return binaryOp{kind: ast.ExprBinary, prec: precProduct, width: 1}, true
	}
	return binaryOp{}, false
}
