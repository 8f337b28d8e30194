package parser

import (
	"stylecheck/internal/ast"
	"stylecheck/internal/token"
)

// parseFuncDef: 'def' NAME [type_params] '(' [params] ')' ['->' expr] ':' block
// Line: строка `def` (или `async`), декораторы на неё не влияют.
func (p *Parser) parseFuncDef(decorators []ast.ExprID, asyncTok token.Token) ast.StmtID {
	defTok := p.expect(token.KwDef, "invalid syntax")
	start := defTok
	data := ast.StmtFuncDefData{Decorators: decorators}
	if asyncTok.Kind == token.KwAsync {
		start = asyncTok
		data.IsAsync = true
	}

	data.Name = p.expect(token.Ident, "invalid syntax").Text
	if p.at(token.LBracket) {
		p.skipBalanced()
	}
	p.expect(token.LParen, "expected '('")
	data.Params = p.parseParams(token.RParen, true)
	p.expect(token.RParen, "invalid syntax")
	if p.eat(token.Arrow) {
		data.Returns = p.parseExpr()
	}
	data.Body = p.parseSuite()
	return p.arenas.Stmts.NewFuncDef(p.spanFrom(start), start.Line, data)
}

// parseClassDef: 'class' NAME [type_params] ['(' [arguments] ')'] ':' block
func (p *Parser) parseClassDef(decorators []ast.ExprID) ast.StmtID {
	start := p.advance()
	data := ast.StmtClassDefData{Decorators: decorators}
	data.Name = p.expect(token.Ident, "invalid syntax").Text
	if p.at(token.LBracket) {
		p.skipBalanced()
	}
	if p.eat(token.LParen) {
		data.Bases = p.parseCallArgs()
		p.expect(token.RParen, "invalid syntax")
	}
	data.Body = p.parseSuite()
	return p.arenas.Stmts.NewClassDef(p.spanFrom(start), start.Line, data)
}

// parseParams разбирает список параметров до closer (')' для def, ':' для
// lambda). Аннотации допустимы только в def.
func (p *Parser) parseParams(closer token.Kind, annotations bool) []ast.Param {
	var (
		params     []ast.Param
		seenSlash  bool
		seenStar   bool // '*' или '*args'
		bareStar   bool
		seenVarKw  bool
		seenDefPos bool // позиционный параметр со значением по умолчанию
		kwOnly     int
	)

	for !p.at(closer) {
		if seenVarKw {
			p.fail("arguments cannot follow var-keyword argument")
		}
		tok := p.peek()
		switch tok.Kind {
		case token.Slash:
			if seenSlash {
				p.fail("/ may appear only once")
			}
			if seenStar {
				p.fail("/ must be ahead of *")
			}
			if len(params) == 0 {
				p.fail("at least one argument must precede /")
			}
			p.advance()
			seenSlash = true
			for i := range params {
				params[i].Kind = ast.ParamPosOnly
			}

		case token.StarStar:
			p.advance()
			param := ast.Param{Kind: ast.ParamVarKw, Line: tok.Line}
			param.Name = p.expect(token.Ident, "invalid syntax").Text
			param.Annotation = p.parseAnnotation(annotations, false)
			if p.at(token.Assign) {
				p.fail("var-keyword argument cannot have default value")
			}
			params = append(params, param)
			seenVarKw = true

		case token.Star:
			if seenStar {
				p.fail("* argument may appear only once")
			}
			p.advance()
			seenStar = true
			if !p.at(token.Ident) {
				bareStar = true
				if p.at(closer) || (p.at(token.Comma) && p.peekN(1).Kind == closer) {
					p.fail("named arguments must follow bare *")
				}
				break
			}
			param := ast.Param{Kind: ast.ParamVarArgs, Line: tok.Line}
			param.Name = p.advance().Text
			param.Annotation = p.parseAnnotation(annotations, true)
			if p.at(token.Assign) {
				p.fail("var-positional argument cannot have default value")
			}
			params = append(params, param)

		case token.Ident:
			p.advance()
			param := ast.Param{Name: tok.Text, Kind: ast.ParamRegular, Line: tok.Line}
			if seenStar {
				param.Kind = ast.ParamKwOnly
				kwOnly++
			}
			param.Annotation = p.parseAnnotation(annotations, false)
			if p.eat(token.Assign) {
				param.Default = p.parseExpr()
				if !seenStar {
					seenDefPos = true
				}
			} else if seenDefPos && !seenStar {
				p.failAt(tok, "parameter without a default follows parameter with a default")
			}
			params = append(params, param)

		default:
			p.unexpected()
		}

		if !p.eat(token.Comma) {
			break
		}
	}

	if bareStar && kwOnly == 0 {
		p.fail("named arguments must follow bare *")
	}
	return params
}

// parseAnnotation: [':' expression]; для *args допускается '*expr'.
func (p *Parser) parseAnnotation(allowed, starOK bool) ast.ExprID {
	if !allowed || !p.at(token.Colon) {
		return ast.NoExprID
	}
	p.advance()
	if starOK && p.at(token.Star) {
		return p.parseStarExpr()
	}
	return p.parseExpr()
}
