// Package layout computes per-class memory layouts for a program: the byte
// offset of every field and the total object size, with inherited fields
// keeping the offsets their declaring class assigned. Layouts are built in
// declaration order so a parent is always registered before its subclasses.
package layout

import (
	"fmt"
	"maps"

	"mica/internal/ast"
)

// Class is the computed layout of one class. FieldOffsets covers both
// declared and inherited fields; Size is the total object size in bytes.
// Decl points back at the declaration so method and field types can be
// resolved without a second symbol table.
type Class struct {
	Name         string
	Parent       *Class
	FieldOffsets map[string]int
	Size         int
	Decl         *ast.ClassDecl
}

// FieldOffset returns the byte offset of a field, declared or inherited.
func (c *Class) FieldOffset(name string) (int, error) {
	if off, ok := c.FieldOffsets[name]; ok {
		return off, nil
	}
	return 0, &LookupError{Kind: LookupField, Name: name, Class: c.Name}
}

// FieldType resolves a field's declared type by walking the inheritance
// chain from c toward the root.
func (c *Class) FieldType(name string) (ast.Type, error) {
	for cur := c; cur != nil; cur = cur.Parent {
		if field := cur.Decl.FindField(name); field != nil {
			return field.Type, nil
		}
	}
	return ast.Type{}, &LookupError{Kind: LookupField, Name: name, Class: c.Name}
}

// MethodBase resolves the class that declares a method, walking the
// inheritance chain from c toward the root. The result names the class a
// call target is formed from, which is what makes dispatch static.
func (c *Class) MethodBase(name string) (*Class, error) {
	for cur := c; cur != nil; cur = cur.Parent {
		if cur.Decl.FindMethod(name) != nil {
			return cur, nil
		}
	}
	return nil, &LookupError{Kind: LookupMethod, Name: name, Class: c.Name}
}

// MethodReturnType resolves a method's declared return type via MethodBase.
func (c *Class) MethodReturnType(name string) (ast.Type, error) {
	base, err := c.MethodBase(name)
	if err != nil {
		return ast.Type{}, err
	}
	return base.Decl.FindMethod(name).Return, nil
}

// Table holds the layouts of every class in a program, keyed by class name.
type Table struct {
	classes map[string]*Class
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{classes: make(map[string]*Class)}
}

// Build computes layouts for every class in prog, in source order. A class
// that names a parent requires the parent to be declared earlier in the
// program; a forward or unknown parent reference is a lookup failure.
func Build(prog *ast.Program, target Target) (*Table, error) {
	table := NewTable()
	for _, decl := range prog.Classes {
		if err := table.Define(decl, target); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// Define computes the layout of one class and registers it. The parent's
// layout, if any, must already be in the table: the child starts from a
// copy of the parent's offsets and size, then appends its own fields at
// the running offset in declaration order.
func (t *Table) Define(decl *ast.ClassDecl, target Target) error {
	if _, ok := t.classes[decl.Name]; ok {
		return fmt.Errorf("layout: class %q redeclared", decl.Name)
	}

	cls := &Class{
		Name:         decl.Name,
		FieldOffsets: make(map[string]int),
		Decl:         decl,
	}
	if decl.Parent != "" {
		parent, err := t.Lookup(decl.Parent)
		if err != nil {
			return err
		}
		cls.Parent = parent
		maps.Copy(cls.FieldOffsets, parent.FieldOffsets)
		cls.Size = parent.Size
	}
	for _, field := range decl.Fields {
		cls.FieldOffsets[field.Name] = cls.Size
		cls.Size += target.SizeOf(field.Type)
	}

	t.classes[decl.Name] = cls
	return nil
}

// Lookup returns the layout registered for a class name.
func (t *Table) Lookup(name string) (*Class, error) {
	if cls, ok := t.classes[name]; ok {
		return cls, nil
	}
	return nil, &LookupError{Kind: LookupClass, Name: name}
}

// Len reports how many classes the table holds.
func (t *Table) Len() int {
	return len(t.classes)
}
