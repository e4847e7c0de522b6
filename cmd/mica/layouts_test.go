package main

import (
	"bytes"
	"strings"
	"testing"

	"mica/internal/ast"
	"mica/internal/diag"
	"mica/internal/layout"
	"mica/internal/lexer"
	"mica/internal/parser"
	"mica/internal/source"
)

func parseForLayouts(t *testing.T, src string) *ast.Program {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("layouts.mica", []byte(src)))
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := parser.ParseFile(lx, parser.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diag.FormatShort(bag.Items(), fs, false))
	}
	return res.Program
}

func TestRenderLayouts(t *testing.T) {
	prog := parseForLayouts(t, `
class A {
	int x;
	boolean on;
	int get() { return this.x; }
	void main() { print(this.x); }
}
class B extends A {
	A peer;
	int pick(int n) { return n; }
}
`)
	table, err := layout.Build(prog, layout.Default())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := renderLayouts(&buf, prog, table); err != nil {
		t.Fatalf("renderLayouts: %v", err)
	}
	out := buf.String()

	wantInOrder := []string{
		"class A (size 5)",
		"int get() -> _A_get",
		"void main() -> main",
		"class B extends A (size 13)",
		"int pick(int n) -> _B_pick",
	}
	at := 0
	for _, want := range wantInOrder {
		idx := strings.Index(out[at:], want)
		if idx < 0 {
			t.Fatalf("output missing %q after offset %d:\n%s", want, at, out)
		}
		at += idx + len(want)
	}

	// B inherits A's fields at A's offsets and appends its own.
	for _, want := range []string{"0  x", "4  on", "5  peer"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing field row %q:\n%s", want, out)
		}
	}

	// The inherited binding renders on B too.
	bBlock := out[strings.Index(out, "class B"):]
	if !strings.Contains(bBlock, "int get() -> _A_get") {
		t.Errorf("class B block does not show the inherited binding:\n%s", bBlock)
	}
}

func TestMethodSignature(t *testing.T) {
	prog := parseForLayouts(t, `class C { void put(int v, boolean on, C peer) { return; } }`)
	m := prog.Classes[0].Methods[0]
	got := methodSignature(m)
	want := "void put(int v, boolean on, C peer)"
	if got != want {
		t.Errorf("methodSignature = %q, want %q", got, want)
	}
}
