// Package fuzztests houses the Go fuzz harnesses for the front half of
// the translator (source -> lexer -> parser -> lowering). They exist to
// catch panics, hangs and span corruption on arbitrary inputs; they never
// assert anything about what a given program means.
package fuzztests
