package parser

import (
	"mica/internal/ast"
	"mica/internal/diag"
	"mica/internal/token"
)

// parseProgram is the top-level loop: class declarations until EOF.
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.at(token.EOF) {
		if !p.at(token.KwClass) {
			p.err(diag.SynUnexpectedTopLevel,
				"expected 'class' at top level, got "+p.peek().Kind.String())
			p.resyncUntil(token.KwClass)
			continue
		}
		if decl, ok := p.parseClassDecl(); ok {
			prog.Classes = append(prog.Classes, decl)
		} else {
			p.resyncUntil(token.KwClass)
		}
	}
	return prog
}

// parseClassDecl parses: "class" ID ("extends" ID)? "{" fieldDecl* methodDecl* "}".
func (p *Parser) parseClassDecl() (*ast.ClassDecl, bool) {
	classTok := p.advance() // 'class'

	nameTok, ok := p.expectIdent("class name")
	if !ok {
		return nil, false
	}
	decl := &ast.ClassDecl{Name: nameTok.Text, NameSpan: nameTok.Span}

	if p.at(token.KwExtends) {
		p.advance()
		parentTok, ok := p.expectIdent("parent class name after 'extends'")
		if !ok {
			return nil, false
		}
		decl.Parent = parentTok.Text
		decl.ParentSpan = parentTok.Span
	}

	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open class body"); !ok {
		return nil, false
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if !p.parseMember(decl) {
			p.resyncStatement()
		}
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close class body")
	if !ok {
		return decl, false
	}
	decl.Span = classTok.Span.Cover(closeTok.Span)
	return decl, true
}

// parseMember parses one field or method declaration and appends it to
// decl. Both start with a type, so the decision is made after the name:
// '(' begins a method, anything else is a field.
func (p *Parser) parseMember(decl *ast.ClassDecl) bool {
	start := p.peek().Span

	retType, ok := p.parseReturnType()
	if !ok {
		return false
	}
	nameTok, ok := p.expectIdent("member name")
	if !ok {
		return false
	}

	if p.at(token.LParen) {
		method, ok := p.parseMethodRest(retType, nameTok)
		if !ok {
			return false
		}
		method.Span = start.Cover(p.lastSpan)
		decl.Methods = append(decl.Methods, method)
		return true
	}

	if retType.Kind == ast.TypeVoid {
		p.report(diag.SynExpectType, diag.SevError, retType.Span,
			"'void' is only valid as a method return type")
		return false
	}
	if len(decl.Methods) > 0 {
		p.report(diag.SynUnexpectedToken, diag.SevError, nameTok.Span,
			"field declarations must come before methods")
		return false
	}
	if !p.expectSemicolon("expected ';' after field") {
		return false
	}
	decl.Fields = append(decl.Fields, &ast.VarDecl{
		Type: retType,
		Name: nameTok.Text,
		Span: start.Cover(p.lastSpan),
	})
	return true
}

// parseMethodRest parses everything after the method name: parameters,
// local variable declarations, then the statement list.
func (p *Parser) parseMethodRest(ret ast.Type, nameTok token.Token) (*ast.MethodDecl, bool) {
	method := &ast.MethodDecl{Return: ret, Name: nameTok.Text, NameSpan: nameTok.Span}

	p.advance() // '('
	if !p.at(token.RParen) {
		for {
			param, ok := p.parseParam()
			if !ok {
				return nil, false
			}
			method.Params = append(method.Params, param)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameter list"); !ok {
		return nil, false
	}

	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open method body"); !ok {
		return nil, false
	}

	// Locals are declared up front. An identifier starts a declaration
	// only when another identifier follows (an object-typed local);
	// otherwise it starts a statement.
	for {
		if p.atAny(token.KwInt, token.KwBoolean) ||
			(p.at(token.Ident) && p.peekN(1).Kind == token.Ident) {
			local, ok := p.parseVarDecl()
			if !ok {
				p.resyncStatement()
				continue
			}
			method.Vars = append(method.Vars, local)
			continue
		}
		break
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStatement()
			continue
		}
		method.Stmts = append(method.Stmts, stmt)
	}

	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close method body"); !ok {
		return nil, false
	}
	return method, true
}

func (p *Parser) parseParam() (*ast.Param, bool) {
	typ, ok := p.parseType()
	if !ok {
		return nil, false
	}
	nameTok, ok := p.expectIdent("parameter name")
	if !ok {
		return nil, false
	}
	return &ast.Param{
		Type: typ,
		Name: nameTok.Text,
		Span: typ.Span.Cover(nameTok.Span),
	}, true
}

// parseVarDecl parses: type ID ["=" expr] ";".
func (p *Parser) parseVarDecl() (*ast.VarDecl, bool) {
	typ, ok := p.parseType()
	if !ok {
		return nil, false
	}
	nameTok, ok := p.expectIdent("variable name")
	if !ok {
		return nil, false
	}
	decl := &ast.VarDecl{Type: typ, Name: nameTok.Text}

	if p.at(token.Assign) {
		p.advance()
		init, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		decl.Init = init
	}
	if !p.expectSemicolon("expected ';' after variable declaration") {
		return nil, false
	}
	decl.Span = typ.Span.Cover(p.lastSpan)
	return decl, true
}

// parseType parses a value type: "int", "boolean", or a class name.
func (p *Parser) parseType() (ast.Type, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwInt:
		p.advance()
		return ast.IntType(tok.Span), true
	case token.KwBoolean:
		p.advance()
		return ast.BoolType(tok.Span), true
	case token.Ident:
		p.advance()
		return ast.ObjectType(tok.Text, tok.Span), true
	default:
		p.err(diag.SynExpectType, "expected type, got "+tok.Kind.String())
		return ast.Type{}, false
	}
}

// parseReturnType parses a method return type: "void" or a value type.
func (p *Parser) parseReturnType() (ast.Type, bool) {
	if p.at(token.KwVoid) {
		tok := p.advance()
		return ast.VoidType(tok.Span), true
	}
	return p.parseType()
}
