package parser

import (
	"strconv"
	"strings"

	"mica/internal/ast"
	"mica/internal/diag"
	"mica/internal/token"
)

// parseExpr parses a primary expression followed by any chain of field
// accesses and method calls. There are no operators in the language, so
// precedence never comes into play.
func (p *Parser) parseExpr() (*ast.Expr, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}

	for p.at(token.Dot) {
		p.advance()
		nameTok, ok := p.expectIdent("field or method name after '.'")
		if !ok {
			return nil, false
		}
		if p.at(token.LParen) {
			args, ok := p.parseArgs()
			if !ok {
				return nil, false
			}
			expr = ast.NewCall(expr, nameTok.Text, args, expr.Span.Cover(p.lastSpan))
			continue
		}
		expr = ast.NewField(expr, nameTok.Text, expr.Span.Cover(nameTok.Span))
	}
	return expr, true
}

func (p *Parser) parsePrimary() (*ast.Expr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwNew:
		return p.parseNew()
	case token.KwThis:
		p.advance()
		return ast.NewThis(tok.Span), true
	case token.Ident:
		p.advance()
		return ast.NewIdent(tok.Text, tok.Span), true
	case token.IntLit:
		p.advance()
		value, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.report(diag.LexBadNumber, diag.SevError, tok.Span, "integer literal out of range")
			return nil, false
		}
		return ast.NewIntLit(value, tok.Span), true
	case token.KwTrue:
		p.advance()
		return ast.NewBoolLit(true, tok.Span), true
	case token.KwFalse:
		p.advance()
		return ast.NewBoolLit(false, tok.Span), true
	case token.StringLit:
		p.advance()
		return ast.NewStrLit(decodeString(tok.Text), tok.Span), true
	case token.LParen:
		p.advance()
		expr, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after expression"); !ok {
			return nil, false
		}
		return expr, true
	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+tok.Kind.String())
		return nil, false
	}
}

// parseNew parses: "new" ID "(" ")". Constructors take no arguments.
func (p *Parser) parseNew() (*ast.Expr, bool) {
	newTok := p.advance() // 'new'

	nameTok, ok := p.expectIdent("class name after 'new'")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after class name"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')': constructors take no arguments"); !ok {
		return nil, false
	}
	return ast.NewNew(nameTok.Text, newTok.Span.Cover(p.lastSpan)), true
}

// parseArgs parses a parenthesized, comma-separated argument list.
func (p *Parser) parseArgs() ([]*ast.Expr, bool) {
	p.advance() // '('
	var args []*ast.Expr

	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after arguments"); !ok {
		return nil, false
	}
	return args, true
}

// decodeString turns a raw quoted lexeme into its value. The scanner has
// already diagnosed malformed escapes, so unknown sequences decode to the
// escaped character itself.
func decodeString(raw string) string {
	body := strings.TrimSuffix(strings.TrimPrefix(raw, `"`), `"`)
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		default:
			sb.WriteByte(body[i])
		}
	}
	return sb.String()
}
