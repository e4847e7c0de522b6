package token_test

import (
	"testing"

	"mica/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k}
}

func TestLookupKeyword_Positive(t *testing.T) {
	tests := []struct {
		ident string
		want  token.Kind
	}{
		{"class", token.KwClass},
		{"extends", token.KwExtends},
		{"int", token.KwInt},
		{"boolean", token.KwBoolean},
		{"void", token.KwVoid},
		{"if", token.KwIf},
		{"else", token.KwElse},
		{"while", token.KwWhile},
		{"print", token.KwPrint},
		{"return", token.KwReturn},
		{"new", token.KwNew},
		{"this", token.KwThis},
		{"true", token.KwTrue},
		{"false", token.KwFalse},
	}

	for _, tt := range tests {
		got, ok := token.LookupKeyword(tt.ident)
		if !ok {
			t.Errorf("LookupKeyword(%q) not found", tt.ident)
			continue
		}
		if got != tt.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	for _, ident := range []string{"Class", "main", "obj", "integer", "", "CLASS"} {
		if k, ok := token.LookupKeyword(ident); ok {
			t.Errorf("LookupKeyword(%q) = %v, want miss", ident, k)
		}
	}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.StringLit, token.KwTrue, token.KwFalse} {
		if !tok(k).IsLiteral() {
			t.Errorf("IsLiteral() = false for %v", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwClass, token.Semicolon, token.EOF} {
		if tok(k).IsLiteral() {
			t.Errorf("IsLiteral() = true for %v", k)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	if !tok(token.KwWhile).IsKeyword() {
		t.Error("IsKeyword() = false for 'while'")
	}
	if tok(token.Ident).IsKeyword() {
		t.Error("IsKeyword() = true for identifier")
	}
	if tok(token.IntLit).IsKeyword() {
		t.Error("IsKeyword() = true for integer literal")
	}
}

func TestIsTypeStart(t *testing.T) {
	for _, k := range []token.Kind{token.KwInt, token.KwBoolean, token.Ident} {
		if !tok(k).IsTypeStart() {
			t.Errorf("IsTypeStart() = false for %v", k)
		}
	}
	if tok(token.KwVoid).IsTypeStart() {
		t.Error("IsTypeStart() = true for 'void'")
	}
}
