package ast

import "mica/internal/source"

// StmtKind enumerates statement kinds.
type StmtKind uint8

const (
	// StmtBlock represents a braced statement list.
	StmtBlock StmtKind = iota
	// StmtAssign represents assignment (lvalue = expr).
	StmtAssign
	// StmtCall represents a method call in statement position.
	StmtCall
	// StmtIf represents a conditional with optional else branch.
	StmtIf
	// StmtWhile represents a loop.
	StmtWhile
	// StmtPrint represents the print statement.
	StmtPrint
	// StmtReturn represents return with optional value.
	StmtReturn
)

// String returns a human-readable name for the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "Block"
	case StmtAssign:
		return "Assign"
	case StmtCall:
		return "Call"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtPrint:
		return "Print"
	case StmtReturn:
		return "Return"
	default:
		return "Unknown"
	}
}

// Stmt represents a statement node.
type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData // Kind-specific payload
}

// StmtData is the interface for statement-specific data.
type StmtData interface {
	stmtData()
}

// BlockData holds data for StmtBlock.
type BlockData struct {
	Stmts []*Stmt
}

func (BlockData) stmtData() {}

// AssignData holds data for StmtAssign. Target is an identifier or a field
// access; the parser rejects anything else.
type AssignData struct {
	Target *Expr
	Value  *Expr
}

func (AssignData) stmtData() {}

// CallStmtData holds data for StmtCall; Call is always an ExprCall node.
type CallStmtData struct {
	Call *Expr
}

func (CallStmtData) stmtData() {}

// IfData holds data for StmtIf.
type IfData struct {
	Cond *Expr
	Then *Stmt
	Else *Stmt // nil if no else branch
}

func (IfData) stmtData() {}

// WhileData holds data for StmtWhile.
type WhileData struct {
	Cond *Expr
	Body *Stmt
}

func (WhileData) stmtData() {}

// PrintData holds data for StmtPrint; Arg is nil for 'print()'.
type PrintData struct {
	Arg *Expr
}

func (PrintData) stmtData() {}

// ReturnData holds data for StmtReturn; Value is nil for a bare return.
type ReturnData struct {
	Value *Expr
}

func (ReturnData) stmtData() {}

// NewBlock builds a block statement.
func NewBlock(stmts []*Stmt, span source.Span) *Stmt {
	return &Stmt{Kind: StmtBlock, Span: span, Data: BlockData{Stmts: stmts}}
}

// NewAssign builds an assignment statement.
func NewAssign(target, value *Expr, span source.Span) *Stmt {
	return &Stmt{Kind: StmtAssign, Span: span, Data: AssignData{Target: target, Value: value}}
}

// NewCallStmt builds a call statement wrapping call.
func NewCallStmt(call *Expr, span source.Span) *Stmt {
	return &Stmt{Kind: StmtCall, Span: span, Data: CallStmtData{Call: call}}
}

// NewIf builds a conditional statement; pass nil for no else branch.
func NewIf(cond *Expr, then, els *Stmt, span source.Span) *Stmt {
	return &Stmt{Kind: StmtIf, Span: span, Data: IfData{Cond: cond, Then: then, Else: els}}
}

// NewWhile builds a loop statement.
func NewWhile(cond *Expr, body *Stmt, span source.Span) *Stmt {
	return &Stmt{Kind: StmtWhile, Span: span, Data: WhileData{Cond: cond, Body: body}}
}

// NewPrint builds a print statement; pass nil for 'print()'.
func NewPrint(arg *Expr, span source.Span) *Stmt {
	return &Stmt{Kind: StmtPrint, Span: span, Data: PrintData{Arg: arg}}
}

// NewReturn builds a return statement; pass nil for a bare return.
func NewReturn(value *Expr, span source.Span) *Stmt {
	return &Stmt{Kind: StmtReturn, Span: span, Data: ReturnData{Value: value}}
}
