// Package parser builds a mica AST from a token stream by recursive
// descent. Errors are reported through diag and recovery resynchronizes
// on statement and member boundaries, so one malformed construct does not
// hide the rest of the file.
package parser

import (
	"slices"

	"mica/internal/ast"
	"mica/internal/diag"
	"mica/internal/lexer"
	"mica/internal/source"
	"mica/internal/token"
)

// Options configure a parse. MaxErrors of zero means unlimited; once the
// limit is reached further errors are counted but not reported.
type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
}

// Result is what a parse produces. Program is never nil, though it may be
// partial when errors were reported. Bag is the reporter's bag when the
// reporter is a BagReporter, nil otherwise.
type Result struct {
	Program *ast.Program
	Bag     *diag.Bag
}

// Parser holds the state for parsing one file.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	buf      []token.Token // lookahead buffer, at most two tokens
	lastSpan source.Span   // span of the last consumed token
	errors   uint
}

// ParseFile parses the token stream of one file into a program. The lexer
// should share the reporter with opts so lexical and syntactic diagnostics
// land in the same place.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := Parser{lx: lx, opts: opts}
	prog := p.parseProgram()

	var bag *diag.Bag
	switch r := opts.Reporter.(type) {
	case diag.BagReporter:
		bag = r.Bag
	case *diag.BagReporter:
		bag = r.Bag
	}
	return Result{Program: prog, Bag: bag}
}

func (p *Parser) peekN(n int) token.Token {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.lx.Next())
	}
	return p.buf[n]
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance consumes the next token and remembers its span for diagnostics
// that point just past the last thing successfully parsed.
func (p *Parser) advance() token.Token {
	tok := p.peekN(0)
	p.buf = p.buf[1:]
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// afterLast returns a zero-width span just past the last consumed token.
// Used for "expected ';'" style diagnostics so the caret points where the
// missing token belongs instead of at whatever came next.
func (p *Parser) afterLast() source.Span {
	if p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return p.peek().Span
}

// expect consumes a token of kind k or reports code with msg and leaves
// the stream untouched.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.report(code, diag.SevError, p.peek().Span, msg)
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}, false
}

// expectSemicolon is expect specialized to point just past the previous
// token, where the semicolon should have been.
func (p *Parser) expectSemicolon(msg string) bool {
	if p.at(token.Semicolon) {
		p.advance()
		return true
	}
	p.report(diag.SynExpectSemicolon, diag.SevError, p.afterLast(), msg)
	return false
}

// expectIdent consumes an identifier or reports SynExpectIdentifier.
func (p *Parser) expectIdent(what string) (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	p.report(diag.SynExpectIdentifier, diag.SevError, p.peek().Span,
		"expected "+what+", got "+p.peek().Kind.String())
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}, false
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.peek().Span, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		if p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors {
			p.errors++
			return
		}
		p.errors++
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

// resyncUntil skips tokens until one of kinds or EOF is next.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) && !p.atAny(kinds...) {
		p.advance()
	}
}

// resyncStatement recovers after a failed statement or member: skip to the
// nearest ';' or '}', eating the ';' so the next parse starts fresh.
func (p *Parser) resyncStatement() {
	p.resyncUntil(token.Semicolon, token.RBrace)
	if p.at(token.Semicolon) {
		p.advance()
	}
}
