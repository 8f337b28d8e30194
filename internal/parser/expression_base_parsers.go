package parser

import (
	"stylecheck/internal/ast"
	"stylecheck/internal/token"
)

// parseAtom: NAME | literal | strings | (...) | [...] | {...} | ...
func (p *Parser) parseAtom() ast.ExprID {
	tok := p.peek()
	exprs := p.arenas.Exprs
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return exprs.NewName(tok.Span, tok.Line, tok.Text)
	case token.IntLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, tok.Line, ast.LitInt, tok.Text)
	case token.FloatLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, tok.Line, ast.LitFloat, tok.Text)
	case token.ImagLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, tok.Line, ast.LitImag, tok.Text)
	case token.KwTrue:
		p.advance()
		return exprs.NewLiteral(tok.Span, tok.Line, ast.LitTrue, tok.Text)
	case token.KwFalse:
		p.advance()
		return exprs.NewLiteral(tok.Span, tok.Line, ast.LitFalse, tok.Text)
	case token.KwNone:
		p.advance()
		return exprs.NewLiteral(tok.Span, tok.Line, ast.LitNone, tok.Text)
	case token.Ellipsis:
		p.advance()
		return exprs.NewLiteral(tok.Span, tok.Line, ast.LitEllipsis, tok.Text)
	case token.StringLit, token.BytesLit, token.FStringLit:
		return p.parseStrings()
	case token.LParen:
		return p.parseParenthesized()
	case token.LBracket:
		return p.parseList()
	case token.LBrace:
		return p.parseBraced()
	}
	p.unexpected()
	return ast.NoExprID
}

// parseStrings склеивает соседние строковые литералы ("a" 'b').
func (p *Parser) parseStrings() ast.ExprID {
	start := p.peek()
	var parts []string
	hasBytes, hasText, hasF := false, false, false
	for p.atOr(token.StringLit, token.BytesLit, token.FStringLit) {
		tok := p.advance()
		parts = append(parts, tok.Text)
		switch tok.Kind {
		case token.BytesLit:
			hasBytes = true
		case token.FStringLit:
			hasF, hasText = true, true
		default:
			hasText = true
		}
	}
	if hasBytes && hasText {
		p.failAt(start, "cannot mix bytes and nonbytes literals")
	}
	kind := ast.LitString
	switch {
	case hasBytes:
		kind = ast.LitBytes
	case hasF:
		kind = ast.LitFString
	}
	return p.arenas.Exprs.NewLiteral(p.spanFrom(start), start.Line, kind, parts...)
}

// parseParenthesized: () | (yield ...) | (expr) | (a, b) | (x for x in y)
// Скобки вокруг одиночного выражения в дерево не попадают.
func (p *Parser) parseParenthesized() ast.ExprID {
	p.enter()
	defer p.leave()

	open := p.advance()
	exprs := p.arenas.Exprs
	if p.eat(token.RParen) {
		return exprs.NewSeq(ast.ExprTuple, p.spanFrom(open), open.Line, nil)
	}
	if p.at(token.KwYield) {
		y := p.parseYield()
		p.expect(token.RParen, "invalid syntax")
		return y
	}

	first := p.parseStarNamedExpr()
	if p.atComp() {
		return p.parseComp(ast.CompGenerator, first, ast.NoExprID, open, token.RParen)
	}
	if !p.at(token.Comma) {
		p.expect(token.RParen, "invalid syntax")
		return first
	}
	elts := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if p.at(token.RParen) {
			break
		}
		elts = append(elts, p.parseStarNamedExpr())
	}
	p.expect(token.RParen, "invalid syntax")
	return exprs.NewSeq(ast.ExprTuple, p.spanFrom(open), open.Line, elts)
}

// parseList: [] | [a, b] | [x for x in y]
func (p *Parser) parseList() ast.ExprID {
	p.enter()
	defer p.leave()

	open := p.advance()
	exprs := p.arenas.Exprs
	if p.eat(token.RBracket) {
		return exprs.NewSeq(ast.ExprList, p.spanFrom(open), open.Line, nil)
	}
	first := p.parseStarNamedExpr()
	if p.atComp() {
		return p.parseComp(ast.CompList, first, ast.NoExprID, open, token.RBracket)
	}
	elts := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if p.at(token.RBracket) {
			break
		}
		elts = append(elts, p.parseStarNamedExpr())
	}
	p.expect(token.RBracket, "invalid syntax")
	return exprs.NewSeq(ast.ExprList, p.spanFrom(open), open.Line, elts)
}

// parseBraced: {} (dict) | {k: v, **m} | {a, b} | {k: v for ...} | {x for ...}
func (p *Parser) parseBraced() ast.ExprID {
	p.enter()
	defer p.leave()

	open := p.advance()
	exprs := p.arenas.Exprs
	if p.eat(token.RBrace) {
		return exprs.NewDict(p.spanFrom(open), open.Line, nil)
	}

	if p.at(token.StarStar) {
		return p.parseDictRest(open, nil)
	}

	first := p.parseStarNamedExpr()
	if p.eat(token.Colon) {
		value := p.parseExpr()
		if p.atComp() {
			return p.parseComp(ast.CompDict, first, value, open, token.RBrace)
		}
		entries := []ast.DictEntry{{Key: first, Value: value}}
		if !p.eat(token.Comma) {
			p.expect(token.RBrace, "invalid syntax")
			return exprs.NewDict(p.spanFrom(open), open.Line, entries)
		}
		return p.parseDictRest(open, entries)
	}

	if p.atComp() {
		return p.parseComp(ast.CompSet, first, ast.NoExprID, open, token.RBrace)
	}
	elts := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if p.at(token.RBrace) {
			break
		}
		elts = append(elts, p.parseStarNamedExpr())
	}
	p.expect(token.RBrace, "invalid syntax")
	return exprs.NewSeq(ast.ExprSet, p.spanFrom(open), open.Line, elts)
}

// parseDictRest дочитывает элементы словаря после уже разобранных entries.
func (p *Parser) parseDictRest(open token.Token, entries []ast.DictEntry) ast.ExprID {
	for !p.at(token.RBrace) {
		if p.eat(token.StarStar) {
			entries = append(entries, ast.DictEntry{Value: p.parseBinary(precBitOr)})
		} else {
			key := p.parseExpr()
			p.expect(token.Colon, "':' expected after dictionary key")
			entries = append(entries, ast.DictEntry{Key: key, Value: p.parseExpr()})
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, "invalid syntax")
	return p.arenas.Exprs.NewDict(p.spanFrom(open), open.Line, entries)
}

// atComp: начинается ли for-клауза comprehension.
func (p *Parser) atComp() bool {
	return p.at(token.KwFor) || (p.at(token.KwAsync) && p.peekN(1).Kind == token.KwFor)
}

// parseComp: comprehension в собственных скобках; span включает закрывающую.
func (p *Parser) parseComp(kind ast.CompKind, elt, value ast.ExprID, open token.Token, closer token.Kind) ast.ExprID {
	data := p.parseCompClauses(kind, elt, value)
	p.expect(closer, "invalid syntax")
	return p.arenas.Exprs.NewComp(p.spanFrom(open), open.Line, data)
}

// parseCompClauses: ('async'? 'for' targets 'in' disjunction ('if' disjunction)*)+
func (p *Parser) parseCompClauses(kind ast.CompKind, elt, value ast.ExprID) ast.ExprCompData {
	if e := p.arenas.Exprs.Get(elt); e.Kind == ast.ExprStarred {
		p.failExpr(elt, "iterable unpacking cannot be used in comprehension")
	}
	data := ast.ExprCompData{Kind: kind, Elt: elt, Value: value}
	for p.atComp() {
		clause := ast.CompClause{IsAsync: p.eat(token.KwAsync)}
		p.advance() // for
		clause.Target = p.parseTargetList()
		p.checkTarget(clause.Target, "assign to")
		p.expect(token.KwIn, "expected 'in'")
		clause.Iter = p.parseBinary(precOr)
		for p.eat(token.KwIf) {
			clause.Ifs = append(clause.Ifs, p.parseBinary(precOr))
		}
		data.Clauses = append(data.Clauses, clause)
	}
	return data
}
