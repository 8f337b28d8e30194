package lexer

import (
	"fmt"

	"stylecheck/internal/token"
)

// scanOperatorOrPunct: жадно распознаём самые длинные операторы.
// Скобки дополнительно ведут стек lx.brackets для неявного продолжения строки.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	// 3 байта
	switch {
	case lx.try3('.', '.', '.'):
		return lx.make(token.Ellipsis, start)
	case lx.try3('*', '*', '='):
		return lx.make(token.PowAssign, start)
	case lx.try3('/', '/', '='):
		return lx.make(token.FloorAssign, start)
	case lx.try3('>', '>', '='):
		return lx.make(token.ShrAssign, start)
	case lx.try3('<', '<', '='):
		return lx.make(token.ShlAssign, start)
	}

	// 2 байта
	switch {
	case lx.try2('*', '*'):
		return lx.make(token.StarStar, start)
	case lx.try2('/', '/'):
		return lx.make(token.SlashSlash, start)
	case lx.try2('<', '<'):
		return lx.make(token.Shl, start)
	case lx.try2('>', '>'):
		return lx.make(token.Shr, start)
	case lx.try2('<', '='):
		return lx.make(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.make(token.GtEq, start)
	case lx.try2('=', '='):
		return lx.make(token.EqEq, start)
	case lx.try2('!', '='):
		return lx.make(token.BangEq, start)
	case lx.try2(':', '='):
		return lx.make(token.Walrus, start)
	case lx.try2('-', '>'):
		return lx.make(token.Arrow, start)
	case lx.try2('+', '='):
		return lx.make(token.PlusAssign, start)
	case lx.try2('-', '='):
		return lx.make(token.MinusAssign, start)
	case lx.try2('*', '='):
		return lx.make(token.StarAssign, start)
	case lx.try2('/', '='):
		return lx.make(token.SlashAssign, start)
	case lx.try2('%', '='):
		return lx.make(token.PercentAssign, start)
	case lx.try2('@', '='):
		return lx.make(token.AtAssign, start)
	case lx.try2('&', '='):
		return lx.make(token.AmpAssign, start)
	case lx.try2('|', '='):
		return lx.make(token.PipeAssign, start)
	case lx.try2('^', '='):
		return lx.make(token.CaretAssign, start)
	case lx.try2('<', '>'):
		// PEP 401 - только в шутку; для Python 3 это ошибка
		sp := lx.cursor.SpanFrom(start)
		lx.report(sp, "invalid syntax '<>'")
		return lx.makeSpan(token.Invalid, sp)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '(', '[', '{':
		tok := lx.make(openKind(ch), start)
		lx.brackets = append(lx.brackets, openBracket{ch: ch, span: tok.Span})
		return tok
	case ')', ']', '}':
		return lx.closeBracket(ch, start)
	case '+':
		return lx.make(token.Plus, start)
	case '-':
		return lx.make(token.Minus, start)
	case '*':
		return lx.make(token.Star, start)
	case '/':
		return lx.make(token.Slash, start)
	case '%':
		return lx.make(token.Percent, start)
	case '@':
		return lx.make(token.At, start)
	case '&':
		return lx.make(token.Amp, start)
	case '|':
		return lx.make(token.Pipe, start)
	case '^':
		return lx.make(token.Caret, start)
	case '~':
		return lx.make(token.Tilde, start)
	case '<':
		return lx.make(token.Lt, start)
	case '>':
		return lx.make(token.Gt, start)
	case '=':
		return lx.make(token.Assign, start)
	case ',':
		return lx.make(token.Comma, start)
	case ':':
		return lx.make(token.Colon, start)
	case '.':
		return lx.make(token.Dot, start)
	case ';':
		return lx.make(token.Semicolon, start)
	case '!':
		return lx.make(token.Bang, start)
	}

	sp := lx.cursor.SpanFrom(start)
	lx.report(sp, fmt.Sprintf("invalid character '%c' (U+%04X)", ch, ch))
	return lx.makeSpan(token.Invalid, sp)
}

func (lx *Lexer) closeBracket(ch byte, start Mark) token.Token {
	kind := closeKind(ch)
	if len(lx.brackets) == 0 {
		sp := lx.cursor.SpanFrom(start)
		lx.report(sp, fmt.Sprintf("unmatched '%c'", ch))
		return lx.makeSpan(kind, sp)
	}
	open := lx.brackets[len(lx.brackets)-1]
	lx.brackets = lx.brackets[:len(lx.brackets)-1]
	if matching(open.ch) != ch {
		lx.report(lx.cursor.SpanFrom(start),
			fmt.Sprintf("closing parenthesis '%c' does not match opening parenthesis '%c'", ch, open.ch))
	}
	return lx.make(kind, start)
}

func openKind(ch byte) token.Kind {
	switch ch {
	case '(':
		return token.LParen
	case '[':
		return token.LBracket
	default:
		return token.LBrace
	}
}

func closeKind(ch byte) token.Kind {
	switch ch {
	case ')':
		return token.RParen
	case ']':
		return token.RBracket
	default:
		return token.RBrace
	}
}

func matching(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}
