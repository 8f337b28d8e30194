package parser

import (
	"stylecheck/internal/ast"
	"stylecheck/internal/token"
)

// if/elif цепочка: elif разворачивается во вложенный If в Orelse.
func (p *Parser) parseIf() ast.StmtID {
	start := p.advance() // if | elif
	data := ast.StmtBlockData{Test: p.parseNamedExpr()}
	data.Body = p.parseSuite()
	switch {
	case p.at(token.KwElif):
		data.Orelse = []ast.StmtID{p.parseIf()}
	case p.eat(token.KwElse):
		data.Orelse = p.parseSuite()
	}
	return p.arenas.Stmts.NewBlock(ast.StmtIf, p.spanFrom(start), start.Line, data)
}

func (p *Parser) parseWhile() ast.StmtID {
	start := p.advance()
	data := ast.StmtBlockData{Test: p.parseNamedExpr()}
	data.Body = p.parseSuite()
	if p.eat(token.KwElse) {
		data.Orelse = p.parseSuite()
	}
	return p.arenas.Stmts.NewBlock(ast.StmtWhile, p.spanFrom(start), start.Line, data)
}

// parseFor; asyncTok.Kind == token.KwAsync для async for.
func (p *Parser) parseFor(asyncTok token.Token) ast.StmtID {
	start := p.advance()
	isAsync := asyncTok.Kind == token.KwAsync
	if isAsync {
		start = asyncTok
	}
	data := ast.StmtBlockData{IsAsync: isAsync, Target: p.parseTargetList()}
	p.checkTarget(data.Target, "assign to")
	p.expect(token.KwIn, "expected 'in'")
	data.Test = p.parseStarExprs()
	data.Body = p.parseSuite()
	if p.eat(token.KwElse) {
		data.Orelse = p.parseSuite()
	}
	return p.arenas.Stmts.NewBlock(ast.StmtFor, p.spanFrom(start), start.Line, data)
}

func (p *Parser) parseTry() ast.StmtID {
	start := p.advance()
	var data ast.StmtTryData
	data.Body = p.parseSuite()

	for p.at(token.KwExcept) {
		hTok := p.advance()
		h := ast.ExceptHandler{Line: hTok.Line, Star: p.eat(token.Star)}
		if !p.at(token.Colon) {
			h.Type = p.parseExprList()
			if p.eat(token.KwAs) {
				h.Name = p.expect(token.Ident, "invalid syntax").Text
			}
		} else if h.Star {
			p.fail("expected one or more exception types")
		}
		h.Body = p.parseSuite()
		data.Handlers = append(data.Handlers, h)
	}

	if p.at(token.KwElse) {
		if len(data.Handlers) == 0 {
			p.unexpected()
		}
		p.advance()
		data.Orelse = p.parseSuite()
	}
	hasFinally := false
	if p.eat(token.KwFinally) {
		hasFinally = true
		data.Finalbody = p.parseSuite()
	}
	if len(data.Handlers) == 0 && !hasFinally {
		p.fail("expected 'except' or 'finally' block")
	}
	return p.arenas.Stmts.NewTry(p.spanFrom(start), start.Line, data)
}

// parseWith: with a as b, c: / with (a as b, c,):
func (p *Parser) parseWith(asyncTok token.Token) ast.StmtID {
	start := p.advance()
	isAsync := asyncTok.Kind == token.KwAsync
	if isAsync {
		start = asyncTok
	}
	data := ast.StmtBlockData{IsAsync: isAsync}

	if p.at(token.LParen) && p.parenthesizedWithItems() {
		p.advance()
		for !p.at(token.RParen) {
			data.Items = append(data.Items, p.parseWithItem())
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RParen, "invalid syntax")
	} else {
		for {
			data.Items = append(data.Items, p.parseWithItem())
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	data.Body = p.parseSuite()
	return p.arenas.Stmts.NewBlock(ast.StmtWith, p.spanFrom(start), start.Line, data)
}

func (p *Parser) parseWithItem() ast.ExprID {
	ctx := p.parseExpr()
	if p.eat(token.KwAs) {
		target := p.parseTarget()
		p.checkTarget(target, "assign to")
	}
	return ctx
}

// parenthesizedWithItems: скобка после with открывает список with-элементов,
// а не выражение: за парной ')' сразу идёт ':' и внутри на глубине 1 есть
// `as` или запятая.
func (p *Parser) parenthesizedWithItems() bool {
	depth := 0
	sawItemSep := false
	for i := 0; ; i++ {
		tok := p.peekN(i)
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 {
				return sawItemSep && p.peekN(i+1).Kind == token.Colon
			}
		case token.KwAs, token.Comma:
			if depth == 1 {
				sawItemSep = true
			}
		case token.Newline, token.EOF:
			return false
		}
	}
}

func (p *Parser) parseAsync(decorators []ast.ExprID) ast.StmtID {
	asyncTok := p.advance()
	switch p.peek().Kind {
	case token.KwDef:
		return p.parseFuncDef(decorators, asyncTok)
	case token.KwFor:
		if decorators == nil {
			return p.parseFor(asyncTok)
		}
	case token.KwWith:
		if decorators == nil {
			return p.parseWith(asyncTok)
		}
	}
	p.unexpected()
	return ast.NoStmtID
}

// parseDecorated: ('@' named_expr NEWLINE)+ (def | async def | class)
func (p *Parser) parseDecorated() ast.StmtID {
	var decorators []ast.ExprID
	for p.eat(token.At) {
		decorators = append(decorators, p.parseNamedExpr())
		if !p.eat(token.Newline) {
			p.unexpected()
		}
	}
	switch p.peek().Kind {
	case token.KwDef:
		return p.parseFuncDef(decorators, token.Token{})
	case token.KwAsync:
		return p.parseAsync(decorators)
	case token.KwClass:
		return p.parseClassDef(decorators)
	}
	p.unexpected()
	return ast.NoStmtID
}

// isMatchStmt различает `match` как мягкое ключевое слово и как имя:
// логическая строка должна заканчиваться на ':' и следующий токен не может
// продолжать выражение с именем match.
func (p *Parser) isMatchStmt() bool {
	next := p.peekN(1)
	switch next.Kind {
	case token.Newline, token.EOF, token.Assign, token.Dot, token.Colon, token.Comma,
		token.Semicolon, token.RParen, token.RBracket, token.RBrace, token.Walrus:
		return false
	}
	if next.Kind.IsAugAssign() {
		return false
	}
	for i := 1; ; i++ {
		tok := p.peekN(i)
		if tok.Kind == token.Newline || tok.Kind == token.EOF {
			return p.peekN(i-1).Kind == token.Colon
		}
	}
}

// match subject:
//
//	case pattern [if guard]: body
//
// Паттерны в дереве не нужны и пропускаются как последовательность токенов до
// ':' верхнего уровня.
func (p *Parser) parseMatch() ast.StmtID {
	start := p.advance()
	data := ast.StmtMatchData{Subject: p.parseStarNamedExprs()}
	p.expect(token.Colon, "expected ':'")
	if !p.eat(token.Newline) {
		p.unexpected()
	}
	if !p.eat(token.Indent) {
		p.fail("expected an indented block")
	}
	for !p.atOr(token.Dedent, token.EOF) {
		caseTok := p.peek()
		if !p.atSoft("case") {
			p.unexpected()
		}
		p.advance()
		p.skipPattern()
		data.Cases = append(data.Cases, ast.MatchCase{Line: caseTok.Line, Body: p.parseSuite()})
	}
	p.eat(token.Dedent)
	return p.arenas.Stmts.NewMatch(p.spanFrom(start), start.Line, data)
}

func (p *Parser) skipPattern() {
	depth := 0
	empty := true
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		case token.Colon:
			if depth == 0 {
				if empty {
					p.fail("invalid syntax")
				}
				return
			}
		case token.Newline, token.EOF:
			p.fail("expected ':'")
		}
		p.advance()
		empty = false
	}
}
