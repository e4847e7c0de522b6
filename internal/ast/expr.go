package ast

import "mica/internal/source"

// ExprKind enumerates expression kinds.
type ExprKind uint8

const (
	// ExprIntLit represents an integer literal.
	ExprIntLit ExprKind = iota
	// ExprBoolLit represents 'true' or 'false'.
	ExprBoolLit
	// ExprStrLit represents a string literal; legal only as a print argument.
	ExprStrLit
	// ExprThis represents the implicit receiver reference.
	ExprThis
	// ExprIdent represents a name: a parameter, local, or implicit field.
	ExprIdent
	// ExprField represents field access (target.name).
	ExprField
	// ExprCall represents a method call (recv.method(args)).
	ExprCall
	// ExprNew represents object construction (new Class()).
	ExprNew
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprIntLit:
		return "IntLit"
	case ExprBoolLit:
		return "BoolLit"
	case ExprStrLit:
		return "StrLit"
	case ExprThis:
		return "This"
	case ExprIdent:
		return "Ident"
	case ExprField:
		return "Field"
	case ExprCall:
		return "Call"
	case ExprNew:
		return "New"
	default:
		return "Unknown"
	}
}

// Expr represents an expression node.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Data ExprData // Kind-specific payload
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

// IntLitData holds data for ExprIntLit.
type IntLitData struct {
	Value int64
}

func (IntLitData) exprData() {}

// BoolLitData holds data for ExprBoolLit.
type BoolLitData struct {
	Value bool
}

func (BoolLitData) exprData() {}

// StrLitData holds data for ExprStrLit; Value is the decoded string.
type StrLitData struct {
	Value string
}

func (StrLitData) exprData() {}

// ThisData holds data for ExprThis.
type ThisData struct{}

func (ThisData) exprData() {}

// IdentData holds data for ExprIdent.
type IdentData struct {
	Name string
}

func (IdentData) exprData() {}

// FieldData holds data for ExprField.
type FieldData struct {
	Target *Expr
	Name   string
}

func (FieldData) exprData() {}

// CallData holds data for ExprCall. The grammar makes every receiver
// explicit; a method calling a sibling spells the receiver as 'this'.
type CallData struct {
	Recv   *Expr
	Method string
	Args   []*Expr
}

func (CallData) exprData() {}

// NewData holds data for ExprNew.
type NewData struct {
	ClassName string
}

func (NewData) exprData() {}

// NewIntLit builds an integer literal node.
func NewIntLit(v int64, span source.Span) *Expr {
	return &Expr{Kind: ExprIntLit, Span: span, Data: IntLitData{Value: v}}
}

// NewBoolLit builds a boolean literal node.
func NewBoolLit(v bool, span source.Span) *Expr {
	return &Expr{Kind: ExprBoolLit, Span: span, Data: BoolLitData{Value: v}}
}

// NewStrLit builds a string literal node from its decoded value.
func NewStrLit(v string, span source.Span) *Expr {
	return &Expr{Kind: ExprStrLit, Span: span, Data: StrLitData{Value: v}}
}

// NewThis builds a receiver reference node.
func NewThis(span source.Span) *Expr {
	return &Expr{Kind: ExprThis, Span: span, Data: ThisData{}}
}

// NewIdent builds an identifier node.
func NewIdent(name string, span source.Span) *Expr {
	return &Expr{Kind: ExprIdent, Span: span, Data: IdentData{Name: name}}
}

// NewField builds a field access node.
func NewField(target *Expr, name string, span source.Span) *Expr {
	return &Expr{Kind: ExprField, Span: span, Data: FieldData{Target: target, Name: name}}
}

// NewCall builds a method call node.
func NewCall(recv *Expr, method string, args []*Expr, span source.Span) *Expr {
	return &Expr{Kind: ExprCall, Span: span, Data: CallData{Recv: recv, Method: method, Args: args}}
}

// NewNew builds an object construction node.
func NewNew(className string, span source.Span) *Expr {
	return &Expr{Kind: ExprNew, Span: span, Data: NewData{ClassName: className}}
}
