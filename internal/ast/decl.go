package ast

import "mica/internal/source"

// Program is a forest of class declarations in source order. Declaration
// order is meaningful: a class must appear after the class it extends.
type Program struct {
	Classes []*ClassDecl
}

// ClassDecl declares one class: its parent, fields, and methods.
type ClassDecl struct {
	Name       string
	Parent     string // empty for a root class
	Fields     []*VarDecl
	Methods    []*MethodDecl
	Span       source.Span
	NameSpan   source.Span
	ParentSpan source.Span
}

// FindMethod returns the method declared directly on the class, or nil.
func (c *ClassDecl) FindMethod(name string) *MethodDecl {
	if c == nil {
		return nil
	}
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// FindField returns the field declared directly on the class, or nil.
func (c *ClassDecl) FindField(name string) *VarDecl {
	if c == nil {
		return nil
	}
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// MethodDecl declares one method. Locals are declared up front; blocks do
// not introduce scopes in mica.
type MethodDecl struct {
	Return   Type // TypeVoid for void methods
	Name     string
	Params   []*Param
	Vars     []*VarDecl
	Stmts    []*Stmt
	Span     source.Span
	NameSpan source.Span
}

// Param declares one method parameter.
type Param struct {
	Type Type
	Name string
	Span source.Span
}

// VarDecl declares a field or a method-local variable. Init is non-nil only
// for locals with an initializer; fields never carry one.
type VarDecl struct {
	Type Type
	Name string
	Init *Expr
	Span source.Span
}
