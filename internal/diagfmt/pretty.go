// Package diagfmt renders diagnostics for terminal output: a location
// header, the offending source line and a caret underline over the span.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"mica/internal/diag"
	"mica/internal/source"
)

// Pretty renders every diagnostic in the bag. For each one it prints
//
//	<path>:<line>:<col>: <sev> <CODE>: <message>
//	<line number> | <source line>
//	              | <caret underline>
//
// followed by notes when enabled. The iteration preserves bag order;
// callers sort the bag first when they want positional order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	items := bag.Items()
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeDiagnostic(w, &items[i], fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	head := severityText(d.Severity) + " " + d.Code.ID()
	if opts.Color {
		head = paint(severityColor(d.Severity), head)
	}

	loc, ok := resolve(fs, d.Primary)
	if !ok {
		fmt.Fprintf(w, "%s: %s\n", head, d.Message)
	} else {
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
			displayPath(loc.path, opts.PathMode), loc.start.Line, loc.start.Col, head, d.Message)
		writeContext(w, loc, d.Severity, opts)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		if nloc, ok := resolve(fs, n.Span); ok {
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				displayPath(nloc.path, opts.PathMode), nloc.start.Line, nloc.start.Col, n.Msg)
		} else {
			fmt.Fprintf(w, "  note: %s\n", n.Msg)
		}
	}
}

type location struct {
	path  string
	file  *source.File
	start source.LineCol
	end   source.LineCol
}

// resolve guards against spans that do not belong to fs; I/O failures
// carry zero spans with no backing file.
func resolve(fs *source.FileSet, span source.Span) (loc location, ok bool) {
	if fs == nil || span == (source.Span{}) {
		return location{}, false
	}
	defer func() {
		if recover() != nil {
			loc, ok = location{}, false
		}
	}()
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)
	return location{path: file.Path, file: file, start: start, end: end}, true
}

func writeContext(w io.Writer, loc location, sev diag.Severity, opts PrettyOpts) {
	first := loc.start.Line
	if opts.Context > 0 {
		back := uint32(opts.Context)
		if back >= first {
			first = 1
		} else {
			first -= back
		}
	}
	for line := first; line < loc.start.Line; line++ {
		fmt.Fprintf(w, "%5d | %s\n", line, loc.file.Line(line))
	}

	text := loc.file.Line(loc.start.Line)
	fmt.Fprintf(w, "%5d | %s\n", loc.start.Line, text)

	marks := caretLine(text, loc)
	if opts.Color {
		marks = paint(severityColor(sev), marks)
	}
	fmt.Fprintf(w, "      | %s%s\n", caretPad(text, loc.start.Col), marks)
}

// caretPad mirrors the line's leading bytes up to col so the caret lands
// under the right column even when the line is tab-indented.
func caretPad(text string, col uint32) string {
	n := int(col) - 1
	if n < 0 {
		n = 0
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i < len(text) && text[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// caretLine sizes the underline: the span width on a single line, or to
// the end of the line when the span continues past it. Zero-width spans
// still get one caret.
func caretLine(text string, loc location) string {
	width := 1
	switch {
	case loc.end.Line == loc.start.Line && loc.end.Col > loc.start.Col:
		width = int(loc.end.Col - loc.start.Col)
	case loc.end.Line > loc.start.Line:
		if rest := len(text) - int(loc.start.Col) + 1; rest > width {
			width = rest
		}
	}
	if width <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", width-1)
}

func severityText(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

// paint forces the escape codes on, so explicit --color=on wins even
// without a terminal.
func paint(c *color.Color, s string) string {
	c.EnableColor()
	return c.Sprint(s)
}
