package diagfmt_test

import (
	"strings"
	"testing"

	"mica/internal/diag"
	"mica/internal/diagfmt"
	"mica/internal/source"
)

const prettySource = "class A {\n\tint x\n}\n"

func prettyFixture(t *testing.T) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.mica", []byte(prettySource))
	return fs, id
}

func render(bag *diag.Bag, fs *source.FileSet, opts diagfmt.PrettyOpts) string {
	var b strings.Builder
	diagfmt.Pretty(&b, bag, fs, opts)
	return b.String()
}

func TestPrettyCaretUnderSpan(t *testing.T) {
	fs, id := prettyFixture(t)
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynExpectType,
		source.Span{File: id, Start: 11, End: 14}, "expected a type"))

	want := "t.mica:2:2: error SYN2003: expected a type\n" +
		"    2 | \tint x\n" +
		"      | \t^~~\n"
	if got := render(bag, fs, diagfmt.PrettyOpts{}); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyZeroWidthSpan(t *testing.T) {
	fs, id := prettyFixture(t)
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynExpectSemicolon,
		source.Span{File: id, Start: 16, End: 16}, "expected ';' after field declaration"))

	want := "t.mica:2:7: error SYN2004: expected ';' after field declaration\n" +
		"    2 | \tint x\n" +
		"      | \t     ^\n"
	if got := render(bag, fs, diagfmt.PrettyOpts{}); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyMultilineSpan(t *testing.T) {
	fs, id := prettyFixture(t)
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynUnclosedBrace,
		source.Span{File: id, Start: 11, End: 18}, "missing '}'"))

	got := render(bag, fs, diagfmt.PrettyOpts{})
	if !strings.Contains(got, "      | \t^~~~~\n") {
		t.Errorf("underline must extend to the end of the line:\n%s", got)
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs, id := prettyFixture(t)
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynExpectType,
		source.Span{File: id, Start: 11, End: 14}, "expected a type"))

	got := render(bag, fs, diagfmt.PrettyOpts{Context: 2})
	want := "t.mica:2:2: error SYN2003: expected a type\n" +
		"    1 | class A {\n" +
		"    2 | \tint x\n" +
		"      | \t^~~\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs, id := prettyFixture(t)
	bag := diag.NewBag(4)
	d := diag.NewError(diag.SynUnexpectedToken,
		source.Span{File: id, Start: 11, End: 14}, "field declarations must come before methods")
	d = d.WithNote(source.Span{File: id, Start: 0, End: 5}, "class starts here")
	d = d.WithNote(source.Span{}, "move the field up")
	bag.Add(d)

	got := render(bag, fs, diagfmt.PrettyOpts{ShowNotes: true})
	if !strings.Contains(got, "  note: t.mica:1:1: class starts here\n") {
		t.Errorf("located note missing:\n%s", got)
	}
	if !strings.Contains(got, "  note: move the field up\n") {
		t.Errorf("bare note missing:\n%s", got)
	}

	muted := render(bag, fs, diagfmt.PrettyOpts{})
	if strings.Contains(muted, "note:") {
		t.Errorf("notes rendered without ShowNotes:\n%s", muted)
	}
}

func TestPrettyWithoutLocation(t *testing.T) {
	fs, _ := prettyFixture(t)
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.IOLoadFile, source.Span{}, "failed to load file: boom"))

	want := "error IO3001: failed to load file: boom\n"
	if got := render(bag, fs, diagfmt.PrettyOpts{}); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrettySeparatesDiagnostics(t *testing.T) {
	fs, id := prettyFixture(t)
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynExpectType,
		source.Span{File: id, Start: 11, End: 14}, "first"))
	bag.Add(diag.NewError(diag.SynExpectType,
		source.Span{File: id, Start: 11, End: 14}, "second"))

	got := render(bag, fs, diagfmt.PrettyOpts{})
	if strings.Count(got, "\n\n") != 1 {
		t.Errorf("expected one blank separator:\n%s", got)
	}
}

func TestPrettyColor(t *testing.T) {
	fs, id := prettyFixture(t)
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynExpectType,
		source.Span{File: id, Start: 11, End: 14}, "expected a type"))

	got := render(bag, fs, diagfmt.PrettyOpts{Color: true})
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected escape codes with Color on:\n%q", got)
	}
	plain := render(bag, fs, diagfmt.PrettyOpts{})
	if strings.Contains(plain, "\x1b[") {
		t.Errorf("expected no escape codes with Color off:\n%q", plain)
	}
}

func TestPrettyBasename(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("deep/nested/t.mica", []byte(prettySource))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynExpectType,
		source.Span{File: id, Start: 11, End: 14}, "expected a type"))

	got := render(bag, fs, diagfmt.PrettyOpts{PathMode: diagfmt.PathModeBasename})
	if !strings.HasPrefix(got, "t.mica:2:2:") {
		t.Errorf("basename mode not applied:\n%s", got)
	}
}
