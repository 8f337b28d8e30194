package lexer

import (
	"fmt"
	"unicode/utf8"

	"stylecheck/internal/source"
	"stylecheck/internal/token"
)

// openBracket: открывающая скобка и где она стоит.
type openBracket struct {
	ch   byte
	span source.Span
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token  // 1 элементный буфер для токена
	queue  []token.Token // отложенные DEDENT-ы

	indents     []int  // стек уровней отступа, indents[0] == 0
	brackets    []openBracket // открытые скобки для неявного продолжения строки
	atLineStart bool
	lineHasTok  bool // на текущей логической строке уже был значимый токен
	done        bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		indents:     []int{0},
		atLineStart: true,
	}
}

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if len(lx.queue) > 0 {
		tok := lx.queue[0]
		lx.queue = lx.queue[1:]
		return tok
	}
	if lx.done {
		return lx.make(token.EOF, lx.cursor.Mark())
	}

	if lx.atLineStart && len(lx.brackets) == 0 {
		if tok, ok := lx.scanIndentation(); ok {
			return tok
		}
	}

	lx.skipInlineSpace()

	if lx.cursor.EOF() {
		return lx.finish()
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '\n':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		if len(lx.brackets) > 0 {
			// неявное продолжение внутри скобок
			return lx.Next()
		}
		lx.atLineStart = true
		lx.lineHasTok = false
		return lx.make(token.Newline, start)

	case isIdentStartByte(ch) || ch >= utf8.RuneSelf:
		return lx.emit(lx.scanIdentOrString())

	case isDec(ch) || (ch == '.' && lx.isNumberAfterDot()):
		return lx.emit(lx.scanNumber())

	case ch == '"' || ch == '\'':
		return lx.emit(lx.scanString(lx.cursor.Mark(), token.StringLit))

	default:
		return lx.emit(lx.scanOperatorOrPunct())
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All drains the lexer, EOF included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) emit(tok token.Token) token.Token {
	lx.lineHasTok = true
	return tok
}

// scanIndentation измеряет отступ в начале физической строки. Пустые строки и
// строки из одного комментария пропускаются целиком.
func (lx *Lexer) scanIndentation() (token.Token, bool) {
	for {
		lineStart := lx.cursor.Mark()
		col := lx.measureIndent()
		if lx.cursor.EOF() {
			return token.Token{}, false
		}
		switch lx.cursor.Peek() {
		case '#':
			lx.skipComment()
			if lx.cursor.Eat('\n') {
				continue
			}
			return token.Token{}, false
		case '\n':
			lx.cursor.Bump()
			continue
		}

		lx.atLineStart = false
		top := lx.indents[len(lx.indents)-1]
		switch {
		case col > top:
			lx.indents = append(lx.indents, col)
			return lx.make(token.Indent, lineStart), true
		case col < top:
			for len(lx.indents) > 1 && col < lx.indents[len(lx.indents)-1] {
				lx.indents = lx.indents[:len(lx.indents)-1]
				lx.queue = append(lx.queue, lx.make(token.Dedent, lx.cursor.Mark()))
			}
			if col != lx.indents[len(lx.indents)-1] {
				lx.report(lx.cursor.SpanFrom(lineStart), "unindent does not match any outer indentation level")
			}
			tok := lx.queue[0]
			lx.queue = lx.queue[1:]
			return tok, true
		}
		return token.Token{}, false
	}
}

// measureIndent съедает ведущие пробелы/табы и возвращает колонку отступа.
// Табуляция выравнивает до следующего кратного 8.
func (lx *Lexer) measureIndent() int {
	col := 0
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ':
			col++
		case '\t':
			col = (col/8 + 1) * 8
		case '\f':
			col = 0
		default:
			return col
		}
		lx.cursor.Bump()
	}
	return col
}

func (lx *Lexer) skipInlineSpace() {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case ' ', '\t', '\f', '\r':
			lx.cursor.Bump()
		case '#':
			lx.skipComment()
		case '\\':
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			if !lx.cursor.Eat('\n') {
				if lx.cursor.EOF() {
					lx.report(lx.cursor.SpanFrom(start), "unexpected EOF after line continuation character")
				} else {
					lx.report(lx.cursor.SpanFrom(start), "unexpected character after line continuation character")
				}
			}
		default:
			return
		}
	}
}

func (lx *Lexer) skipComment() {
	lx.cursor.SkipToEOL()
}

// finish выдаёт завершающие NEWLINE/DEDENT/EOF.
func (lx *Lexer) finish() token.Token {
	lx.done = true
	at := lx.cursor.Mark()
	// ошибка указывает на саму скобку, но обнаружена только здесь, в конце файла
	for i := len(lx.brackets) - 1; i >= 0; i-- {
		open := lx.brackets[i]
		lx.reportAt(open.span, uint32(at), fmt.Sprintf("'%c' was never closed", open.ch))
	}
	if lx.lineHasTok {
		lx.queue = append(lx.queue, lx.make(token.Newline, at))
		lx.lineHasTok = false
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.queue = append(lx.queue, lx.make(token.Dedent, at))
	}
	lx.queue = append(lx.queue, lx.make(token.EOF, at))
	tok := lx.queue[0]
	lx.queue = lx.queue[1:]
	return tok
}

func (lx *Lexer) make(kind token.Kind, start Mark) token.Token {
	return lx.makeSpan(kind, lx.cursor.SpanFrom(start))
}

func (lx *Lexer) makeSpan(kind token.Kind, sp source.Span) token.Token {
	pos := lx.file.Position(sp.Start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Line: int(pos.Line),
		Col:  int(pos.Col),
	}
}
