package ast_test

import (
	"strings"
	"testing"

	"mica/internal/ast"
	"mica/internal/source"
)

func TestExprString(t *testing.T) {
	var sp source.Span
	recv := ast.NewField(ast.NewThis(sp), "link", sp)
	call := ast.NewCall(recv, "get", []*ast.Expr{ast.NewIntLit(3, sp), ast.NewBoolLit(false, sp)}, sp)

	tests := []struct {
		name string
		expr *ast.Expr
		want string
	}{
		{name: "int literal", expr: ast.NewIntLit(42, sp), want: "42"},
		{name: "bool literal", expr: ast.NewBoolLit(true, sp), want: "true"},
		{name: "string literal", expr: ast.NewStrLit("hi", sp), want: `"hi"`},
		{name: "this", expr: ast.NewThis(sp), want: "this"},
		{name: "identifier", expr: ast.NewIdent("x", sp), want: "x"},
		{name: "field chain", expr: recv, want: "this.link"},
		{name: "call with args", expr: call, want: "this.link.get(3, false)"},
		{name: "new", expr: ast.NewNew("B", sp), want: "new B()"},
		{name: "nil", expr: nil, want: "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ast.ExprString(tt.expr); got != tt.want {
				t.Errorf("ExprString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFprint(t *testing.T) {
	var sp source.Span
	prog := &ast.Program{
		Classes: []*ast.ClassDecl{
			{
				Name: "A",
				Fields: []*ast.VarDecl{
					{Type: ast.IntType(sp), Name: "x"},
				},
				Methods: []*ast.MethodDecl{
					{
						Return: ast.IntType(sp),
						Name:   "foo",
						Stmts: []*ast.Stmt{
							ast.NewReturn(ast.NewField(ast.NewThis(sp), "x", sp), sp),
						},
					},
				},
			},
			{
				Name:   "B",
				Parent: "A",
				Methods: []*ast.MethodDecl{
					{
						Return: ast.VoidType(sp),
						Name:   "main",
						Vars: []*ast.VarDecl{
							{Type: ast.BoolType(sp), Name: "c", Init: ast.NewBoolLit(true, sp)},
						},
						Stmts: []*ast.Stmt{
							ast.NewIf(ast.NewIdent("c", sp),
								ast.NewPrint(ast.NewIntLit(1, sp), sp),
								ast.NewPrint(ast.NewIntLit(2, sp), sp),
								sp),
						},
					},
				},
			},
		},
	}

	var b strings.Builder
	if err := ast.Fprint(&b, prog); err != nil {
		t.Fatalf("Fprint() error = %v", err)
	}
	want := strings.Join([]string{
		"class A",
		"  field int x",
		"  method int foo()",
		"    return this.x",
		"",
		"class B extends A",
		"  method void main()",
		"    local boolean c = true",
		"    if c",
		"    then",
		"      print 1",
		"    else",
		"      print 2",
		"",
	}, "\n")
	if b.String() != want {
		t.Errorf("Fprint() =\n%s\nwant:\n%s", b.String(), want)
	}
}
