package parser

import (
	"stylecheck/internal/ast"
	"stylecheck/internal/token"
)

// parseExpr: lambda | disjunction ['if' disjunction 'else' expression]
func (p *Parser) parseExpr() ast.ExprID {
	p.enter()
	defer p.leave()

	if p.at(token.KwLambda) {
		return p.parseLambda()
	}
	body := p.parseBinary(precOr)
	if !p.at(token.KwIf) {
		return body
	}
	p.advance()
	cond := p.parseBinary(precOr)
	p.expect(token.KwElse, "expected 'else' after 'if' expression")
	els := p.parseExpr()
	span, line := p.spanFromExpr(body)
	return p.arenas.Exprs.NewTernary(span, line, cond, body, els)
}

// parseNamedExpr: NAME ':=' expression | expression
func (p *Parser) parseNamedExpr() ast.ExprID {
	if p.at(token.Ident) && p.peekN(1).Kind == token.Walrus {
		nameTok := p.advance()
		target := p.arenas.Exprs.NewName(nameTok.Span, nameTok.Line, nameTok.Text)
		p.advance()
		value := p.parseExpr()
		span, line := p.spanFromExpr(target)
		return p.arenas.Exprs.NewBinary(ast.ExprWalrus, span, line, token.Walrus, false, target, value)
	}
	expr := p.parseExpr()
	if p.at(token.Walrus) {
		p.failExpr(expr, "cannot use assignment expressions with "+describeExpr(p.arenas.Exprs.Get(expr).Kind))
	}
	return expr
}

// parseBinary: Pratt-цикл для бинарных операторов с приоритетом >= minPrec.
// Префиксный `not` обрабатывается здесь же, так как он слабее сравнений.
func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	var left ast.ExprID
	if p.at(token.KwNot) && minPrec <= precNot {
		notTok := p.advance()
		operand := p.parseBinary(precNot)
		left = p.arenas.Exprs.NewUnary(ast.ExprUnary, p.spanFrom(notTok), notTok.Line, token.KwNot, operand)
	} else {
		left = p.parseUnary()
	}

	for {
		op, ok := p.binaryInfo()
		if !ok || op.prec < minPrec {
			return left
		}
		opTok := p.advance()
		if op.width == 2 {
			p.advance()
		}
		right := p.parseBinary(op.prec + 1)
		span, line := p.spanFromExpr(left)
		left = p.arenas.Exprs.NewBinary(op.kind, span, line, opTok.Kind, op.not, left, right)
	}
}

// parseUnary: ('-' | '+' | '~') factor | power
func (p *Parser) parseUnary() ast.ExprID {
	if p.atOr(token.Minus, token.Plus, token.Tilde) {
		opTok := p.advance()
		p.enter()
		operand := p.parseUnary()
		p.leave()
		return p.arenas.Exprs.NewUnary(ast.ExprUnary, p.spanFrom(opTok), opTok.Line, opTok.Kind, operand)
	}
	return p.parsePower()
}

// parsePower: await_primary ['**' factor] - правоассоциативно.
func (p *Parser) parsePower() ast.ExprID {
	base := p.parseAwait()
	if !p.at(token.StarStar) {
		return base
	}
	opTok := p.advance()
	exp := p.parseUnary()
	span, line := p.spanFromExpr(base)
	return p.arenas.Exprs.NewBinary(ast.ExprBinary, span, line, opTok.Kind, false, base, exp)
}

func (p *Parser) parseAwait() ast.ExprID {
	if !p.at(token.KwAwait) {
		return p.parsePrimary()
	}
	awaitTok := p.advance()
	operand := p.parsePrimary()
	return p.arenas.Exprs.NewUnary(ast.ExprAwait, p.spanFrom(awaitTok), awaitTok.Line, token.KwAwait, operand)
}

func (p *Parser) parseLambda() ast.ExprID {
	start := p.advance()
	params := p.parseParams(token.Colon, false)
	p.expect(token.Colon, "expected ':'")
	body := p.parseExpr()
	return p.arenas.Exprs.NewLambda(p.spanFrom(start), start.Line, params, body)
}

// parseStarExpr: '*' bitwise_or | expression
func (p *Parser) parseStarExpr() ast.ExprID {
	if p.at(token.Star) {
		starTok := p.advance()
		operand := p.parseBinary(precBitOr)
		return p.arenas.Exprs.NewUnary(ast.ExprStarred, p.spanFrom(starTok), starTok.Line, token.Star, operand)
	}
	return p.parseExpr()
}

// parseStarNamedExpr: '*' bitwise_or | named_expression
func (p *Parser) parseStarNamedExpr() ast.ExprID {
	if p.at(token.Star) {
		return p.parseStarExpr()
	}
	return p.parseNamedExpr()
}

// parseStarExprs: star_expression (',' star_expression)* [','] - несколько
// элементов (или висячая запятая) дают tuple без скобок.
func (p *Parser) parseStarExprs() ast.ExprID {
	return p.parseTupleOf(p.parseStarExpr)
}

// parseStarNamedExprs: то же для subject у match.
func (p *Parser) parseStarNamedExprs() ast.ExprID {
	return p.parseTupleOf(p.parseStarNamedExpr)
}

// parseExprList: expression (',' expression)* [',']
func (p *Parser) parseExprList() ast.ExprID {
	return p.parseTupleOf(p.parseExpr)
}

// parseTargetList разбирает цели for/del/comprehension: элементы разбираются на уровне
// bitwise_or, чтобы не съесть `in`.
func (p *Parser) parseTargetList() ast.ExprID {
	return p.parseTupleOf(p.parseTarget)
}

func (p *Parser) parseTarget() ast.ExprID {
	if p.at(token.Star) {
		return p.parseStarExpr()
	}
	return p.parseBinary(precBitOr)
}

func (p *Parser) parseTupleOf(elem func() ast.ExprID) ast.ExprID {
	first := elem()
	if !p.at(token.Comma) {
		return first
	}
	elts := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if !canStartExpr(p.peek().Kind) {
			break
		}
		elts = append(elts, elem())
	}
	span, line := p.spanFromExpr(first)
	return p.arenas.Exprs.NewSeq(ast.ExprTuple, span, line, elts)
}

// parseStarExprsOrYield: yield_expr | star_expressions
func (p *Parser) parseStarExprsOrYield() ast.ExprID {
	if p.at(token.KwYield) {
		return p.parseYield()
	}
	return p.parseStarExprs()
}

// parseYield: 'yield' 'from' expression | 'yield' [star_expressions]
func (p *Parser) parseYield() ast.ExprID {
	start := p.advance()
	if p.eat(token.KwFrom) {
		value := p.parseExpr()
		return p.arenas.Exprs.NewUnary(ast.ExprYieldFrom, p.spanFrom(start), start.Line, token.KwFrom, value)
	}
	value := ast.NoExprID
	if canStartExpr(p.peek().Kind) {
		value = p.parseStarExprs()
	}
	return p.arenas.Exprs.NewUnary(ast.ExprYield, p.spanFrom(start), start.Line, token.KwYield, value)
}
