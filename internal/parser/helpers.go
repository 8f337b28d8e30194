package parser

import (
	"fmt"

	"stylecheck/internal/ast"
	"stylecheck/internal/source"
	"stylecheck/internal/token"
)

// advance: съедает следующий токен. EOF не съедается никогда.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect: ожидаем конкретный токен; иначе синтаксическая ошибка.
func (p *Parser) expect(k token.Kind, msg string) token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.fail(msg)
	return token.Token{}
}

// prev: последний съеденный токен.
func (p *Parser) prev() token.Token {
	if p.pos == 0 {
		return p.toks[0]
	}
	return p.toks[p.pos-1]
}

// fail репортит ошибку на текущем токене и прерывает разбор.
func (p *Parser) fail(msg string) {
	p.failAt(p.peek(), msg)
}

func (p *Parser) failAt(tok token.Token, msg string) {
	p.err = &SyntaxError{Line: tok.Line, Col: tok.Col, Msg: msg, span: tok.Span}
	panic(bailout{})
}

func (p *Parser) failExpr(id ast.ExprID, msg string) {
	e := p.arenas.Exprs.Get(id)
	pos := p.file.Position(e.Span.Start)
	p.err = &SyntaxError{Line: int(pos.Line), Col: int(pos.Col), Msg: msg, span: e.Span}
	panic(bailout{})
}

// unexpected формирует сообщение для токена, который не подходит грамматике.
func (p *Parser) unexpected() {
	tok := p.peek()
	switch tok.Kind {
	case token.Indent:
		p.fail("unexpected indent")
	case token.Dedent:
		p.fail("unindent does not match any outer indentation level")
	case token.EOF:
		p.fail("unexpected EOF while parsing")
	case token.Newline:
		p.fail("invalid syntax")
	}
	p.fail(fmt.Sprintf("invalid syntax: unexpected %q", tok.Text))
}

// spanFrom: спан от start до последнего съеденного токена.
func (p *Parser) spanFrom(start token.Token) source.Span {
	return start.Span.Cover(p.prev().Span)
}

// spanFromExpr: спан от начала выражения до последнего съеденного токена.
func (p *Parser) spanFromExpr(id ast.ExprID) (source.Span, int) {
	e := p.arenas.Exprs.Get(id)
	return e.Span.Cover(p.prev().Span), e.Line
}

func (p *Parser) enter() {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		p.fail("too many nested parentheses")
	}
}

func (p *Parser) leave() {
	p.depth--
}

// canStartExpr: может ли токен начинать выражение.
func canStartExpr(k token.Kind) bool {
	switch k {
	case token.Ident, token.IntLit, token.FloatLit, token.ImagLit,
		token.StringLit, token.BytesLit, token.FStringLit,
		token.LParen, token.LBracket, token.LBrace,
		token.Minus, token.Plus, token.Tilde, token.Star, token.Ellipsis,
		token.KwNot, token.KwLambda, token.KwAwait,
		token.KwTrue, token.KwFalse, token.KwNone:
		return true
	}
	return false
}

// atEndOfSimple: конец простой инструкции.
func (p *Parser) atEndOfSimple() bool {
	return p.atOr(token.Newline, token.Semicolon, token.EOF)
}
