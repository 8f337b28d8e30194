package parser

import (
	"stylecheck/internal/ast"
	"stylecheck/internal/token"
)

// parseStatement разбирает одну инструкцию. Строка простых инструкций через ';'
// даёт несколько StmtID.
func (p *Parser) parseStatement() []ast.StmtID {
	p.enter()
	defer p.leave()

	tok := p.peek()
	switch tok.Kind {
	case token.Indent:
		p.fail("unexpected indent")
	case token.KwDef:
		return []ast.StmtID{p.parseFuncDef(nil, token.Token{})}
	case token.KwClass:
		return []ast.StmtID{p.parseClassDef(nil)}
	case token.At:
		return []ast.StmtID{p.parseDecorated()}
	case token.KwAsync:
		return []ast.StmtID{p.parseAsync(nil)}
	case token.KwIf:
		return []ast.StmtID{p.parseIf()}
	case token.KwWhile:
		return []ast.StmtID{p.parseWhile()}
	case token.KwFor:
		return []ast.StmtID{p.parseFor(token.Token{})}
	case token.KwTry:
		return []ast.StmtID{p.parseTry()}
	case token.KwWith:
		return []ast.StmtID{p.parseWith(token.Token{})}
	case token.Ident:
		if tok.Text == "match" && p.isMatchStmt() {
			return []ast.StmtID{p.parseMatch()}
		}
	}
	return p.parseSimpleStatements()
}

// parseSimpleStatements: small_stmt (';' small_stmt)* [';'] NEWLINE
func (p *Parser) parseSimpleStatements() []ast.StmtID {
	var out []ast.StmtID
	for {
		out = append(out, p.parseSmallStmt())
		if !p.eat(token.Semicolon) || p.at(token.Newline) {
			break
		}
	}
	if !p.eat(token.Newline) {
		p.unexpected()
	}
	return out
}

func (p *Parser) parseSmallStmt() ast.StmtID {
	tok := p.peek()
	stmts := p.arenas.Stmts
	switch tok.Kind {
	case token.KwPass:
		p.advance()
		return stmts.NewSimple(ast.StmtPass, tok.Span, tok.Line)
	case token.KwBreak:
		p.advance()
		return stmts.NewSimple(ast.StmtBreak, tok.Span, tok.Line)
	case token.KwContinue:
		p.advance()
		return stmts.NewSimple(ast.StmtContinue, tok.Span, tok.Line)

	case token.KwReturn:
		p.advance()
		var vals []ast.ExprID
		if !p.atEndOfSimple() {
			vals = append(vals, p.parseStarExprs())
		}
		return stmts.NewExprs(ast.StmtReturn, p.spanFrom(tok), tok.Line, vals)

	case token.KwRaise:
		p.advance()
		var vals []ast.ExprID
		if !p.atEndOfSimple() {
			vals = append(vals, p.parseExpr())
			if p.eat(token.KwFrom) {
				vals = append(vals, p.parseExpr())
			}
		}
		return stmts.NewExprs(ast.StmtRaise, p.spanFrom(tok), tok.Line, vals)

	case token.KwDel:
		p.advance()
		target := p.parseTargetList()
		p.checkTarget(target, "delete")
		return stmts.NewExprs(ast.StmtDel, p.spanFrom(tok), tok.Line, []ast.ExprID{target})

	case token.KwAssert:
		p.advance()
		vals := []ast.ExprID{p.parseExpr()}
		if p.eat(token.Comma) {
			vals = append(vals, p.parseExpr())
		}
		return stmts.NewExprs(ast.StmtAssert, p.spanFrom(tok), tok.Line, vals)

	case token.KwGlobal, token.KwNonlocal:
		p.advance()
		kind := ast.StmtGlobal
		if tok.Kind == token.KwNonlocal {
			kind = ast.StmtNonlocal
		}
		var names []string
		for {
			names = append(names, p.expect(token.Ident, "invalid syntax").Text)
			if !p.eat(token.Comma) {
				break
			}
		}
		return stmts.NewNames(kind, p.spanFrom(tok), tok.Line, ast.StmtNamesData{Names: names})

	case token.KwImport:
		return p.parseImport()
	case token.KwFrom:
		return p.parseFromImport()

	case token.Ident:
		if tok.Text == "type" && p.peekN(1).Kind == token.Ident &&
			(p.peekN(2).Kind == token.Assign || p.peekN(2).Kind == token.LBracket) {
			return p.parseTypeAlias()
		}
	}
	return p.parseExprStmt()
}

// parseExprStmt: выражение, присваивание (в т.ч. цепочкой), аннотированное или
// составное присваивание.
func (p *Parser) parseExprStmt() ast.StmtID {
	start := p.peek()
	stmts := p.arenas.Stmts
	lhs := p.parseStarExprsOrYield()

	switch {
	case p.at(token.Colon):
		p.advance()
		p.checkSingleTarget(lhs, "annotated")
		data := ast.StmtAnnAssignData{Target: lhs, Annotation: p.parseExpr()}
		if p.eat(token.Assign) {
			data.Value = p.parseStarExprsOrYield()
		}
		return stmts.NewAnnAssign(p.spanFrom(start), start.Line, data)

	case p.peek().Kind.IsAugAssign():
		op := p.advance().Kind
		p.checkSingleTarget(lhs, "augmented assignment")
		data := ast.StmtAugAssignData{Target: lhs, Op: op, Value: p.parseStarExprsOrYield()}
		return stmts.NewAugAssign(p.spanFrom(start), start.Line, data)

	case p.at(token.Assign):
		targets := []ast.ExprID{lhs}
		p.checkTarget(lhs, "assign to")
		p.advance()
		value := p.parseStarExprsOrYield()
		for p.at(token.Assign) {
			p.checkTarget(value, "assign to")
			targets = append(targets, value)
			p.advance()
			value = p.parseStarExprsOrYield()
		}
		return stmts.NewAssign(p.spanFrom(start), start.Line, targets, value)
	}

	return stmts.NewExprs(ast.StmtExpr, p.spanFrom(start), start.Line, []ast.ExprID{lhs})
}

// checkTarget проверяет цель присваивания/удаления.
func (p *Parser) checkTarget(id ast.ExprID, verb string) {
	e := p.arenas.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprName, ast.ExprAttr, ast.ExprSubscript:
		return
	case ast.ExprTuple, ast.ExprList:
		seq, _ := p.arenas.Exprs.Seq(id)
		for _, elt := range seq.Elts {
			if verb != "delete" {
				if star, ok := p.arenas.Exprs.Unary(elt); ok && p.arenas.Exprs.Get(elt).Kind == ast.ExprStarred {
					p.checkTarget(star.Operand, verb)
					continue
				}
			}
			p.checkTarget(elt, verb)
		}
		return
	case ast.ExprStarred:
		p.failExpr(id, "starred assignment target must be in a list or tuple")
	}
	p.failExpr(id, "cannot "+verb+" "+describeExpr(e.Kind))
}

// checkSingleTarget: для аннотаций и составного присваивания допустима только
// одиночная цель.
func (p *Parser) checkSingleTarget(id ast.ExprID, what string) {
	e := p.arenas.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprName, ast.ExprAttr, ast.ExprSubscript:
		return
	}
	p.failExpr(id, "illegal target for "+what+": "+describeExpr(e.Kind))
}

func describeExpr(k ast.ExprKind) string {
	switch k {
	case ast.ExprLit:
		return "literal"
	case ast.ExprCall:
		return "function call"
	case ast.ExprTuple:
		return "tuple"
	case ast.ExprList:
		return "list"
	case ast.ExprSet, ast.ExprDict:
		return "display"
	case ast.ExprComp:
		return "comprehension"
	case ast.ExprLambda:
		return "lambda"
	case ast.ExprTernary:
		return "conditional expression"
	case ast.ExprAwait:
		return "await expression"
	case ast.ExprYield, ast.ExprYieldFrom:
		return "yield expression"
	case ast.ExprWalrus:
		return "named expression"
	}
	return "expression"
}

// import a.b as c, d
func (p *Parser) parseImport() ast.StmtID {
	start := p.advance()
	var names []string
	for {
		name := p.parseDottedName()
		if p.eat(token.KwAs) {
			name = p.expect(token.Ident, "invalid syntax").Text
		}
		names = append(names, name)
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.arenas.Stmts.NewNames(ast.StmtImport, p.spanFrom(start), start.Line, ast.StmtNamesData{Names: names})
}

// from ..pkg.mod import (a as b, c)
func (p *Parser) parseFromImport() ast.StmtID {
	start := p.advance()
	module := ""
	for p.atOr(token.Dot, token.Ellipsis) {
		module += p.advance().Text
	}
	if p.at(token.Ident) {
		module += p.parseDottedName()
	}
	if module == "" {
		p.unexpected()
	}
	p.expect(token.KwImport, "invalid syntax")

	var names []string
	switch {
	case p.eat(token.Star):
		names = []string{"*"}
	case p.eat(token.LParen):
		for !p.at(token.RParen) {
			names = append(names, p.parseImportAlias())
			if !p.eat(token.Comma) {
				break
			}
		}
		if len(names) == 0 {
			p.unexpected()
		}
		p.expect(token.RParen, "invalid syntax")
	default:
		for {
			names = append(names, p.parseImportAlias())
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	return p.arenas.Stmts.NewNames(ast.StmtFromImport, p.spanFrom(start), start.Line,
		ast.StmtNamesData{Module: module, Names: names})
}

func (p *Parser) parseImportAlias() string {
	name := p.expect(token.Ident, "invalid syntax").Text
	if p.eat(token.KwAs) {
		name = p.expect(token.Ident, "invalid syntax").Text
	}
	return name
}

func (p *Parser) parseDottedName() string {
	name := p.expect(token.Ident, "invalid syntax").Text
	for p.eat(token.Dot) {
		name += "." + p.expect(token.Ident, "invalid syntax").Text
	}
	return name
}

// type Alias[T] = expr
func (p *Parser) parseTypeAlias() ast.StmtID {
	start := p.advance()
	name := p.advance().Text
	if p.at(token.LBracket) {
		p.skipBalanced()
	}
	p.expect(token.Assign, "invalid syntax")
	p.parseExpr()
	return p.arenas.Stmts.NewNames(ast.StmtTypeAlias, p.spanFrom(start), start.Line, ast.StmtNamesData{Names: []string{name}})
}

// skipBalanced пропускает скобочную группу, начиная с открывающей скобки.
// Используется для списков type-параметров, которые в дереве не нужны.
func (p *Parser) skipBalanced() {
	depth := 0
	for {
		tok := p.advance()
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		case token.EOF:
			p.failAt(tok, "unexpected EOF while parsing")
		}
		if depth == 0 {
			return
		}
	}
}

// parseSuite: ':' (simple_stmts | NEWLINE INDENT statement+ DEDENT)
func (p *Parser) parseSuite() []ast.StmtID {
	p.expect(token.Colon, "expected ':'")
	return p.parseBlockBody()
}

func (p *Parser) parseBlockBody() []ast.StmtID {
	if !p.at(token.Newline) {
		return p.parseSimpleStatements()
	}
	p.advance()
	if !p.at(token.Indent) {
		p.fail("expected an indented block")
	}
	p.advance()
	var body []ast.StmtID
	for !p.atOr(token.Dedent, token.EOF) {
		body = append(body, p.parseStatement()...)
	}
	p.eat(token.Dedent)
	return body
}
