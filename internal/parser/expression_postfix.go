package parser

import (
	"stylecheck/internal/ast"
	"stylecheck/internal/token"
)

// parsePrimary: atom ('.' NAME | '(' args ')' | '[' slices ']')*
func (p *Parser) parsePrimary() ast.ExprID {
	expr := p.parseAtom()
	exprs := p.arenas.Exprs
	for {
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			name := p.expect(token.Ident, "invalid syntax").Text
			span, line := p.spanFromExpr(expr)
			expr = exprs.NewAttr(span, line, expr, name)
		case token.LParen:
			p.advance()
			args := p.parseCallArgs()
			p.expect(token.RParen, "invalid syntax")
			span, line := p.spanFromExpr(expr)
			expr = exprs.NewCall(span, line, expr, args)
		case token.LBracket:
			p.advance()
			index := p.parseSlices()
			p.expect(token.RBracket, "invalid syntax")
			span, line := p.spanFromExpr(expr)
			expr = exprs.NewSubscript(span, line, expr, index)
		default:
			return expr
		}
	}
}

// parseCallArgs разбирает аргументы вызова до ')' (не съедая её).
// Единственный аргумент-генератор без скобок допускается: f(x for x in y).
func (p *Parser) parseCallArgs() []ast.CallArg {
	var (
		args         []ast.CallArg
		seenKeyword  bool
		seenKwUnpack bool
	)
	p.enter()
	defer p.leave()

	for !p.at(token.RParen) {
		switch {
		case p.at(token.StarStar):
			p.advance()
			args = append(args, ast.CallArg{Value: p.parseExpr(), Star: 2})
			seenKwUnpack = true

		case p.at(token.Star):
			p.advance()
			if seenKwUnpack {
				p.fail("iterable argument unpacking follows keyword argument unpacking")
			}
			args = append(args, ast.CallArg{Value: p.parseExpr(), Star: 1})

		case p.at(token.Ident) && p.peekN(1).Kind == token.Assign:
			name := p.advance().Text
			p.advance()
			args = append(args, ast.CallArg{Name: name, Value: p.parseExpr()})
			seenKeyword = true

		default:
			argTok := p.peek()
			value := p.parseNamedExpr()
			if p.atComp() {
				if len(args) > 0 || p.hasMoreArgs() {
					p.failAt(argTok, "Generator expression must be parenthesized")
				}
				// без своих скобок: span кончается на последней клаузе
				data := p.parseCompClauses(ast.CompGenerator, value, ast.NoExprID)
				value = p.arenas.Exprs.NewComp(p.spanFrom(argTok), argTok.Line, data)
			}
			if seenKwUnpack {
				p.failAt(argTok, "positional argument follows keyword argument unpacking")
			}
			if seenKeyword {
				p.failAt(argTok, "positional argument follows keyword argument")
			}
			args = append(args, ast.CallArg{Value: value})
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	return args
}

// hasMoreArgs: после генератора в вызове идёт ещё что-то, кроме ')'.
func (p *Parser) hasMoreArgs() bool {
	depth := 0
	for i := 0; ; i++ {
		tok := p.peekN(i)
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth == 0 {
				return false
			}
			depth--
		case token.Comma:
			if depth == 0 {
				next := p.peekN(i + 1).Kind
				return next != token.RParen
			}
		case token.EOF:
			return false
		}
	}
}

// parseSlices: slice (',' slice)* [','] - несколько элементов дают tuple.
// Элемент после запятой может начинаться с ':' (a[1, :]), поэтому свой цикл.
func (p *Parser) parseSlices() ast.ExprID {
	p.enter()
	defer p.leave()
	first := p.parseSliceItem()
	if !p.at(token.Comma) {
		return first
	}
	elts := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if !p.at(token.Colon) && !canStartExpr(p.peek().Kind) {
			break
		}
		elts = append(elts, p.parseSliceItem())
	}
	span, line := p.spanFromExpr(first)
	return p.arenas.Exprs.NewSeq(ast.ExprTuple, span, line, elts)
}

// parseSliceItem: [expr] ':' [expr] [':' [expr]] | star_named_expression
func (p *Parser) parseSliceItem() ast.ExprID {
	start := p.peek()
	lower := ast.NoExprID
	if !p.at(token.Colon) {
		lower = p.parseStarNamedExpr()
		if !p.at(token.Colon) {
			return lower
		}
	}
	p.advance()
	upper, step := ast.NoExprID, ast.NoExprID
	if canStartExpr(p.peek().Kind) {
		upper = p.parseExpr()
	}
	if p.eat(token.Colon) && canStartExpr(p.peek().Kind) {
		step = p.parseExpr()
	}
	return p.arenas.Exprs.NewSlice(p.spanFrom(start), start.Line, lower, upper, step)
}
