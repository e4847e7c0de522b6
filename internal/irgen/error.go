package irgen

import "mica/internal/source"

// UnsupportedError reports an expression or statement shape outside the
// closed set the generator can lower. It is fatal: the first one aborts
// the translation.
type UnsupportedError struct {
	What string
	Span source.Span
}

func (e *UnsupportedError) Error() string {
	return "unsupported " + e.What
}

func unsupported(what string, span source.Span) error {
	return &UnsupportedError{What: what, Span: span}
}
