package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"stylecheck/internal/token"
)

// scanIdentOrString сканирует идентификатор, ключевое слово или строку с
// префиксом (r"", b'', f"""...""" и т.п.). Token.Text - ровно исходный срез.
func (lx *Lexer) scanIdentOrString() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.cursor.PeekRune()
	if sz == 0 || !(isIdentStartRune(r)) {
		lx.cursor.BumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.report(sp, fmt.Sprintf("invalid character '%c' (U+%04X)", r, r))
		return lx.makeSpan(token.Invalid, sp)
	}

	for {
		if b := lx.cursor.Peek(); b < utf8.RuneSelf {
			if lx.cursor.EOF() || !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.cursor.PeekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.cursor.BumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.TextFrom(start)

	if q := lx.cursor.Peek(); (q == '"' || q == '\'') && !lx.cursor.EOF() {
		if kind, ok := stringPrefixKind(text); ok {
			return lx.scanString(start, kind)
		}
	}

	if kw, ok := token.LookupKeyword(text); ok {
		return lx.makeSpan(kw, sp)
	}
	return lx.makeSpan(token.Ident, sp)
}

// stringPrefixKind проверяет допустимые префиксы строковых литералов.
func stringPrefixKind(prefix string) (token.Kind, bool) {
	switch strings.ToLower(prefix) {
	case "r", "u":
		return token.StringLit, true
	case "b", "br", "rb":
		return token.BytesLit, true
	case "f", "fr", "rf", "t", "tr", "rt":
		return token.FStringLit, true
	}
	return token.Invalid, false
}
