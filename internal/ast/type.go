// Package ast defines the abstract syntax tree for mica programs: a forest
// of class declarations with fields and statically-bound methods. Trees are
// closed tagged unions: every node carries a Kind plus a Kind-specific
// payload, so consumers can switch exhaustively.
package ast

import "mica/internal/source"

// TypeKind enumerates mica type kinds.
type TypeKind uint8

const (
	// TypeInvalid marks a type the parser could not produce.
	TypeInvalid TypeKind = iota
	// TypeInt is the 'int' primitive.
	TypeInt
	// TypeBool is the 'boolean' primitive.
	TypeBool
	// TypeObject is a class reference type; Name holds the class.
	TypeObject
	// TypeVoid is the absent return type of a method.
	TypeVoid
)

// Type is a declared type annotation.
type Type struct {
	Kind TypeKind
	Name string // class name, TypeObject only
	Span source.Span
}

// IsObject reports whether the type is a class reference.
func (t Type) IsObject() bool { return t.Kind == TypeObject }

// Equal compares types structurally, ignoring spans.
func (t Type) Equal(other Type) bool {
	return t.Kind == other.Kind && t.Name == other.Name
}

func (t Type) String() string {
	switch t.Kind {
	case TypeInt:
		return "int"
	case TypeBool:
		return "boolean"
	case TypeObject:
		return t.Name
	case TypeVoid:
		return "void"
	}
	return "<invalid>"
}

// IntType builds the 'int' type.
func IntType(span source.Span) Type { return Type{Kind: TypeInt, Span: span} }

// BoolType builds the 'boolean' type.
func BoolType(span source.Span) Type { return Type{Kind: TypeBool, Span: span} }

// ObjectType builds a class reference type.
func ObjectType(name string, span source.Span) Type {
	return Type{Kind: TypeObject, Name: name, Span: span}
}

// VoidType builds the 'void' return type.
func VoidType(span source.Span) Type { return Type{Kind: TypeVoid, Span: span} }
