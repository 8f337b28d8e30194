package lexer

import (
	"stylecheck/internal/token"
)

// scanString сканирует строковый литерал; курсор стоит на открывающей кавычке,
// start указывает на начало префикса (если он есть). Escape-последовательности
// не валидируются: '\' просто экранирует следующий байт, как и в raw-строках
// (r"\"" - корректная строка).
func (lx *Lexer) scanString(start Mark, kind token.Kind) token.Token {
	quote := lx.cursor.Bump()
	triple := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == quote && b1 == quote {
		lx.cursor.Bump()
		lx.cursor.Bump()
		triple = true
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		case b == quote && !triple:
			lx.cursor.Bump()
			return lx.make(kind, start)
		case b == quote && triple:
			if lx.try3(quote, quote, quote) {
				return lx.make(kind, start)
			}
			lx.cursor.Bump()
			continue
		case b == '\n' && !triple:
			sp := lx.cursor.SpanFrom(start)
			lx.report(sp, "unterminated string literal")
			return lx.makeSpan(token.Invalid, sp)
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	if triple {
		lx.report(sp, "unterminated triple-quoted string literal")
	} else {
		lx.report(sp, "unterminated string literal")
	}
	return lx.makeSpan(token.Invalid, sp)
}
