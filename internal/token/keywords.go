package token

var keywords = map[string]Kind{
	"class":   KwClass,
	"extends": KwExtends,
	"int":     KwInt,
	"boolean": KwBoolean,
	"void":    KwVoid,
	"if":      KwIf,
	"else":    KwElse,
	"while":   KwWhile,
	"print":   KwPrint,
	"return":  KwReturn,
	"new":     KwNew,
	"this":    KwThis,
	"true":    KwTrue,
	"false":   KwFalse,
}

// LookupKeyword maps an identifier spelling to its keyword kind.
// Keywords are case-sensitive; only lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
