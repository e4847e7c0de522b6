package parser

import (
	"mica/internal/ast"
	"mica/internal/diag"
	"mica/internal/token"
)

func (p *Parser) parseStmt() (*ast.Stmt, bool) {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwPrint:
		return p.parsePrint()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwInt, token.KwBoolean:
		p.err(diag.SynUnexpectedToken, "local variable declarations must come before statements")
		return nil, false
	default:
		if p.at(token.Ident) && p.peekN(1).Kind == token.Ident {
			p.err(diag.SynUnexpectedToken, "local variable declarations must come before statements")
			return nil, false
		}
		return p.parseAssignOrCall()
	}
}

// parseBlock parses: "{" stmt* "}". Blocks do not open a scope; they only
// group statements.
func (p *Parser) parseBlock() (*ast.Stmt, bool) {
	openTok := p.advance() // '{'
	var stmts []*ast.Stmt

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStatement()
			continue
		}
		stmts = append(stmts, stmt)
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	if !ok {
		return nil, false
	}
	return ast.NewBlock(stmts, openTok.Span.Cover(closeTok.Span)), true
}

func (p *Parser) parseIf() (*ast.Stmt, bool) {
	ifTok := p.advance() // 'if'

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'if'"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after condition"); !ok {
		return nil, false
	}

	then, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	var els *ast.Stmt
	if p.at(token.KwElse) {
		p.advance()
		els, ok = p.parseStmt()
		if !ok {
			return nil, false
		}
	}
	return ast.NewIf(cond, then, els, ifTok.Span.Cover(p.lastSpan)), true
}

func (p *Parser) parseWhile() (*ast.Stmt, bool) {
	whileTok := p.advance() // 'while'

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'while'"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after condition"); !ok {
		return nil, false
	}

	body, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	return ast.NewWhile(cond, body, whileTok.Span.Cover(p.lastSpan)), true
}

// parsePrint parses: "print" "(" [expr] ")" ";". The argument may be any
// expression or a string literal, or absent entirely.
func (p *Parser) parsePrint() (*ast.Stmt, bool) {
	printTok := p.advance() // 'print'

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'print'"); !ok {
		return nil, false
	}
	var arg *ast.Expr
	if !p.at(token.RParen) {
		var ok bool
		arg, ok = p.parseExpr()
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after print argument"); !ok {
		return nil, false
	}
	if !p.expectSemicolon("expected ';' after print statement") {
		return nil, false
	}
	return ast.NewPrint(arg, printTok.Span.Cover(p.lastSpan)), true
}

func (p *Parser) parseReturn() (*ast.Stmt, bool) {
	retTok := p.advance() // 'return'

	var value *ast.Expr
	if !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.at(token.EOF) {
		var ok bool
		value, ok = p.parseExpr()
		if !ok {
			return nil, false
		}
	}
	if !p.expectSemicolon("expected ';' after return statement") {
		return nil, false
	}
	return ast.NewReturn(value, retTok.Span.Cover(p.lastSpan)), true
}

// parseAssignOrCall parses the two statement forms that begin with an
// expression: an assignment to a variable or field, or a bare method call.
func (p *Parser) parseAssignOrCall() (*ast.Stmt, bool) {
	expr, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	if p.at(token.Assign) {
		if expr.Kind != ast.ExprIdent && expr.Kind != ast.ExprField {
			p.report(diag.SynBadLValue, diag.SevError, expr.Span,
				"cannot assign to this expression; only variables and fields are assignable")
			return nil, false
		}
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if !p.expectSemicolon("expected ';' after assignment") {
			return nil, false
		}
		return ast.NewAssign(expr, value, expr.Span.Cover(p.lastSpan)), true
	}

	if expr.Kind != ast.ExprCall {
		p.report(diag.SynBadCallStmt, diag.SevError, expr.Span,
			"expression statement must be a method call")
		return nil, false
	}
	if !p.expectSemicolon("expected ';' after call") {
		return nil, false
	}
	return ast.NewCallStmt(expr, expr.Span.Cover(p.lastSpan)), true
}
