package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mica/internal/ast"
	"mica/internal/source"
)

func intType() ast.Type  { return ast.IntType(source.Span{}) }
func boolType() ast.Type { return ast.BoolType(source.Span{}) }

func objType(name string) ast.Type { return ast.ObjectType(name, source.Span{}) }

func field(typ ast.Type, name string) *ast.VarDecl {
	return &ast.VarDecl{Type: typ, Name: name}
}

func method(ret ast.Type, name string) *ast.MethodDecl {
	return &ast.MethodDecl{Return: ret, Name: name}
}

func class(name, parent string, fields []*ast.VarDecl, methods []*ast.MethodDecl) *ast.ClassDecl {
	return &ast.ClassDecl{Name: name, Parent: parent, Fields: fields, Methods: methods}
}

func mustBuild(t *testing.T, prog *ast.Program) *Table {
	t.Helper()
	table, err := Build(prog, Default())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return table
}

func mustLookup(t *testing.T, table *Table, name string) *Class {
	t.Helper()
	cls, err := table.Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	return cls
}

func TestBuildInheritedOffsets(t *testing.T) {
	prog := &ast.Program{Classes: []*ast.ClassDecl{
		class("A", "", []*ast.VarDecl{field(intType(), "x")}, nil),
		class("B", "A", []*ast.VarDecl{field(boolType(), "y")}, nil),
	}}
	table := mustBuild(t, prog)

	a := mustLookup(t, table, "A")
	if off, _ := a.FieldOffset("x"); off != 0 {
		t.Errorf("A.x offset = %d, want 0", off)
	}
	if a.Size != 4 {
		t.Errorf("A size = %d, want 4", a.Size)
	}

	b := mustLookup(t, table, "B")
	if off, _ := b.FieldOffset("x"); off != 0 {
		t.Errorf("B.x offset = %d, want 0", off)
	}
	if off, _ := b.FieldOffset("y"); off != 4 {
		t.Errorf("B.y offset = %d, want 4", off)
	}
	if b.Size != 5 {
		t.Errorf("B size = %d, want 5", b.Size)
	}
	if b.Parent != a {
		t.Error("B.Parent is not A's layout")
	}
}

func TestBuildDeepChain(t *testing.T) {
	prog := &ast.Program{Classes: []*ast.ClassDecl{
		class("Base", "", []*ast.VarDecl{
			field(intType(), "a"),
			field(objType("Base"), "next"),
		}, nil),
		class("Mid", "Base", []*ast.VarDecl{field(boolType(), "flag")}, nil),
		class("Leaf", "Mid", []*ast.VarDecl{field(intType(), "b")}, nil),
	}}
	table := mustBuild(t, prog)

	base := mustLookup(t, table, "Base")
	mid := mustLookup(t, table, "Mid")
	leaf := mustLookup(t, table, "Leaf")

	// Every ancestor offset survives unchanged in the descendant.
	for _, cls := range []*Class{mid, leaf} {
		for name, want := range base.FieldOffsets {
			got, err := cls.FieldOffset(name)
			if err != nil {
				t.Fatalf("%s.FieldOffset(%q): %v", cls.Name, name, err)
			}
			if got != want {
				t.Errorf("%s.%s offset = %d, want %d", cls.Name, name, got, want)
			}
		}
	}

	if base.Size != 12 {
		t.Errorf("Base size = %d, want 12", base.Size)
	}
	if mid.Size != 13 {
		t.Errorf("Mid size = %d, want 13", mid.Size)
	}
	if leaf.Size != 17 {
		t.Errorf("Leaf size = %d, want 17", leaf.Size)
	}
	if !(base.Size <= mid.Size && mid.Size <= leaf.Size) {
		t.Error("sizes must not shrink down the chain")
	}
}

func TestBuildEmptyClass(t *testing.T) {
	prog := &ast.Program{Classes: []*ast.ClassDecl{
		class("Empty", "", nil, nil),
	}}
	table := mustBuild(t, prog)
	if cls := mustLookup(t, table, "Empty"); cls.Size != 0 {
		t.Errorf("Empty size = %d, want 0", cls.Size)
	}
}

func TestBuildUnknownParent(t *testing.T) {
	prog := &ast.Program{Classes: []*ast.ClassDecl{
		class("B", "A", nil, nil),
	}}
	_, err := Build(prog, Default())
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("Build error = %v, want *LookupError", err)
	}
	if lookupErr.Kind != LookupClass || lookupErr.Name != "A" {
		t.Errorf("got kind=%d name=%q, want class lookup for A", lookupErr.Kind, lookupErr.Name)
	}
}

func TestBuildParentDeclaredAfterChild(t *testing.T) {
	prog := &ast.Program{Classes: []*ast.ClassDecl{
		class("B", "A", nil, nil),
		class("A", "", nil, nil),
	}}
	if _, err := Build(prog, Default()); err == nil {
		t.Fatal("Build accepted a parent declared after its child")
	}
}

func TestBuildRedeclaredClass(t *testing.T) {
	prog := &ast.Program{Classes: []*ast.ClassDecl{
		class("A", "", nil, nil),
		class("A", "", nil, nil),
	}}
	if _, err := Build(prog, Default()); err == nil {
		t.Fatal("Build accepted a redeclared class")
	}
}

func TestMethodBaseWalksChain(t *testing.T) {
	prog := &ast.Program{Classes: []*ast.ClassDecl{
		class("A", "", nil, []*ast.MethodDecl{method(intType(), "get")}),
		class("B", "A", nil, []*ast.MethodDecl{method(ast.VoidType(source.Span{}), "set")}),
	}}
	table := mustBuild(t, prog)
	b := mustLookup(t, table, "B")

	base, err := b.MethodBase("get")
	if err != nil {
		t.Fatalf("MethodBase(get): %v", err)
	}
	if base.Name != "A" {
		t.Errorf("get declared on %q, want A", base.Name)
	}

	base, err = b.MethodBase("set")
	if err != nil {
		t.Fatalf("MethodBase(set): %v", err)
	}
	if base.Name != "B" {
		t.Errorf("set declared on %q, want B", base.Name)
	}

	_, err = b.MethodBase("missing")
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) || lookupErr.Kind != LookupMethod {
		t.Errorf("MethodBase(missing) = %v, want method lookup error", err)
	}
}

func TestMethodReturnType(t *testing.T) {
	prog := &ast.Program{Classes: []*ast.ClassDecl{
		class("A", "", nil, []*ast.MethodDecl{method(objType("A"), "self")}),
		class("B", "A", nil, nil),
	}}
	table := mustBuild(t, prog)
	b := mustLookup(t, table, "B")

	typ, err := b.MethodReturnType("self")
	if err != nil {
		t.Fatalf("MethodReturnType: %v", err)
	}
	if typ.Kind != ast.TypeObject || typ.Name != "A" {
		t.Errorf("return type = %s, want A", typ.String())
	}
}

func TestFieldTypeWalksChain(t *testing.T) {
	prog := &ast.Program{Classes: []*ast.ClassDecl{
		class("A", "", []*ast.VarDecl{field(boolType(), "done")}, nil),
		class("B", "A", nil, nil),
	}}
	table := mustBuild(t, prog)
	b := mustLookup(t, table, "B")

	typ, err := b.FieldType("done")
	if err != nil {
		t.Fatalf("FieldType: %v", err)
	}
	if typ.Kind != ast.TypeBool {
		t.Errorf("field type = %s, want boolean", typ.String())
	}

	_, err = b.FieldType("gone")
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) || lookupErr.Kind != LookupField {
		t.Errorf("FieldType(gone) = %v, want field lookup error", err)
	}
}

func TestCustomTargetSizes(t *testing.T) {
	prog := &ast.Program{Classes: []*ast.ClassDecl{
		class("P", "", []*ast.VarDecl{
			field(intType(), "a"),
			field(boolType(), "b"),
			field(objType("P"), "p"),
		}, nil),
	}}
	table, err := Build(prog, Target{IntSize: 8, BoolSize: 4, PtrSize: 4})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := mustLookup(t, table, "P")
	wantOffsets := map[string]int{"a": 0, "b": 8, "p": 12}
	for name, want := range wantOffsets {
		if got, _ := p.FieldOffset(name); got != want {
			t.Errorf("P.%s offset = %d, want %d", name, got, want)
		}
	}
	if p.Size != 16 {
		t.Errorf("P size = %d, want 16", p.Size)
	}
}

func TestLoadTargetFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "target.toml")
	content := "[sizes]\nint = 8\npointer = 4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	target, err := LoadTargetFile(path)
	if err != nil {
		t.Fatalf("LoadTargetFile: %v", err)
	}
	if target.IntSize != 8 {
		t.Errorf("IntSize = %d, want 8", target.IntSize)
	}
	if target.BoolSize != 1 {
		t.Errorf("BoolSize = %d, want default 1", target.BoolSize)
	}
	if target.PtrSize != 4 {
		t.Errorf("PtrSize = %d, want 4", target.PtrSize)
	}
}

func TestLoadTargetFileRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[sizes]\nint = 4\nalign = 8\n"},
		{"zero size", "[sizes]\nint = 0\n"},
		{"negative size", "[sizes]\npointer = -8\n"},
		{"not toml", "sizes int 4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "target.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadTargetFile(path); err == nil {
				t.Errorf("LoadTargetFile accepted %q", tt.content)
			}
		})
	}
}

func TestSizeOfPanicsOnVoid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("SizeOf(void) did not panic")
		}
	}()
	Default().SizeOf(ast.VoidType(source.Span{}))
}
