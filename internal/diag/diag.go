// Package diag carries the diagnostics produced by the frontend phases.
//
// Phases report through the Reporter interface and never print directly;
// the CLI decides how a Bag is rendered. Codes are numbered per phase so
// output stays stable as messages are reworded.
package diag

import "fmt"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	// SevError is for diagnostics that abort translation.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Code identifies a diagnostic kind. Ranges: 1000-1999 lexical,
// 2000-2999 syntactic, 3000-3999 file and driver I/O.
type Code uint16

const (
	// UnknownCode is the zero value; real reports always carry a phase code.
	UnknownCode Code = 0

	// Lexical.
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexBadNumber           Code = 1004
	LexBadEscape           Code = 1005

	// Syntactic.
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectType         Code = 2003
	SynExpectSemicolon    Code = 2004
	SynExpectExpression   Code = 2005
	SynUnclosedBrace      Code = 2006
	SynUnclosedParen      Code = 2007
	SynUnexpectedTopLevel Code = 2008
	SynBadLValue          Code = 2009
	SynBadCallStmt        Code = 2010

	// I/O.
	IOLoadFile  Code = 3001
	IOWriteFile Code = 3002
)

// ID renders the stable user-facing identifier, e.g. LEX1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) String() string {
	return c.ID()
}
