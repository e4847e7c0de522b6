package token

import "mica/internal/source"

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is an integer, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwClass, KwExtends, KwInt, KwBoolean, KwVoid, KwIf, KwElse,
		KwWhile, KwPrint, KwReturn, KwNew, KwThis, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is punctuation.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case Assign, Semicolon, Comma, Dot, LParen, RParen, LBrace, RBrace:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsTypeStart reports whether the token can begin a type: 'int', 'boolean',
// or a class name.
func (t Token) IsTypeStart() bool {
	switch t.Kind {
	case KwInt, KwBoolean, Ident:
		return true
	default:
		return false
	}
}
