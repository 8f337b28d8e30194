package lexer

import (
	"stylecheck/internal/token"
)

// scanNumber сканирует целые (dec/hex/oct/bin), вещественные и мнимые литералы.
// Подчёркивания между цифрами допускаются и не проверяются строго.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		var digit func(byte) bool
		switch b1 {
		case 'x', 'X':
			digit = isHex
		case 'o', 'O':
			digit = isOct
		case 'b', 'B':
			digit = isBin
		}
		if digit != nil {
			lx.cursor.Bump()
			lx.cursor.Bump()
			n := lx.eatDigits(digit)
			if n == 0 {
				sp := lx.cursor.SpanFrom(start)
				lx.report(sp, "invalid number literal")
				return lx.makeSpan(token.Invalid, sp)
			}
			return lx.finishNumber(start, token.IntLit)
		}
	}

	lx.eatDigits(isDec)
	if lx.cursor.Peek() == '.' && !lx.cursor.EOF() {
		lx.cursor.Bump()
		lx.eatDigits(isDec)
		kind = token.FloatLit
	}
	if b := lx.cursor.Peek(); (b == 'e' || b == 'E') && !lx.cursor.EOF() {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if lx.eatDigits(isDec) == 0 {
			lx.cursor.Reset(m)
		} else {
			kind = token.FloatLit
		}
	}
	if b := lx.cursor.Peek(); (b == 'j' || b == 'J') && !lx.cursor.EOF() {
		lx.cursor.Bump()
		kind = token.ImagLit
	}
	return lx.finishNumber(start, kind)
}

func (lx *Lexer) eatDigits(digit func(byte) bool) int {
	n := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if digit(b) {
			n++
		} else if b != '_' {
			break
		}
		lx.cursor.Bump()
	}
	return n
}

// finishNumber отклоняет литералы, к которым вплотную прилип идентификатор (1abc).
func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	if b := lx.cursor.Peek(); !lx.cursor.EOF() && isIdentStartByte(b) {
		for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.report(sp, "invalid decimal literal")
		return lx.makeSpan(token.Invalid, sp)
	}
	return lx.make(kind, start)
}
