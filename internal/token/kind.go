// Package token defines the lexical token kinds of the mica language.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly.
//   - Class and method names are plain identifiers; only the words below
//     are keywords.
package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwExtends represents the 'extends' keyword.
	KwExtends // extends
	// KwInt represents the 'int' type keyword.
	KwInt // int
	// KwBoolean represents the 'boolean' type keyword.
	KwBoolean // boolean
	// KwVoid represents the 'void' keyword.
	KwVoid // void
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwPrint represents the 'print' keyword.
	KwPrint // print
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwNew represents the 'new' keyword.
	KwNew // new
	// KwThis represents the 'this' keyword.
	KwThis // this
	// KwTrue represents the 'true' literal keyword.
	KwTrue // true
	// KwFalse represents the 'false' literal keyword.
	KwFalse // false

	// IntLit represents an integer literal token.
	IntLit
	// StringLit represents a string literal token.
	StringLit

	// Assign represents the assignment operator token.
	Assign // =
	// Semicolon represents the ';' token.
	Semicolon // ;
	// Comma represents the ',' token.
	Comma // ,
	// Dot represents the '.' token.
	Dot // .
	// LParen represents the '(' token.
	LParen // (
	// RParen represents the ')' token.
	RParen // )
	// LBrace represents the '{' token.
	LBrace // {
	// RBrace represents the '}' token.
	RBrace // }
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "end of file"
	case Ident:
		return "identifier"
	case KwClass:
		return "'class'"
	case KwExtends:
		return "'extends'"
	case KwInt:
		return "'int'"
	case KwBoolean:
		return "'boolean'"
	case KwVoid:
		return "'void'"
	case KwIf:
		return "'if'"
	case KwElse:
		return "'else'"
	case KwWhile:
		return "'while'"
	case KwPrint:
		return "'print'"
	case KwReturn:
		return "'return'"
	case KwNew:
		return "'new'"
	case KwThis:
		return "'this'"
	case KwTrue:
		return "'true'"
	case KwFalse:
		return "'false'"
	case IntLit:
		return "integer literal"
	case StringLit:
		return "string literal"
	case Assign:
		return "'='"
	case Semicolon:
		return "';'"
	case Comma:
		return "','"
	case Dot:
		return "'.'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	}
	return "unknown"
}
