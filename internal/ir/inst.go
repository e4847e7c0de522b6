// Package ir defines the linear intermediate representation produced by
// lowering: functions of move/load/store/call instructions with numbered
// temporaries and labels for control flow.
package ir

// Type is the machine-level type of an operand or memory access.
type Type uint8

const (
	// TypeNone marks the absence of a type, e.g. a call with no capture.
	TypeNone Type = iota
	// TypeInt is an integer value.
	TypeInt
	// TypeBool is a boolean value.
	TypeBool
	// TypePtr is an object reference.
	TypePtr
)

// Letter returns the suffix used in typed instructions, e.g. "load.i".
func (t Type) Letter() string {
	switch t {
	case TypeInt:
		return "i"
	case TypeBool:
		return "b"
	case TypePtr:
		return "p"
	}
	return "?"
}

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypePtr:
		return "ptr"
	}
	return "unknown"
}

// SrcKind distinguishes readable operand kinds.
type SrcKind uint8

const (
	// SrcNone marks an absent operand; the zero Src value.
	SrcNone SrcKind = iota
	// SrcVar names a parameter or local variable.
	SrcVar
	// SrcTemp references a numbered temporary.
	SrcTemp
	// SrcIntLit is an integer literal operand.
	SrcIntLit
	// SrcBoolLit is a boolean literal operand.
	SrcBoolLit
	// SrcStrLit is a string literal operand (legal only as a call argument).
	SrcStrLit
)

// Src is a readable operand: a variable, temporary, or literal.
type Src struct {
	Kind SrcKind

	Name string // SrcVar
	Temp int    // SrcTemp
	Int  int64  // SrcIntLit
	Bool bool   // SrcBoolLit
	Str  string // SrcStrLit, decoded
}

// None reports whether the operand is absent.
func (s Src) None() bool { return s.Kind == SrcNone }

// Var builds a variable operand.
func Var(name string) Src { return Src{Kind: SrcVar, Name: name} }

// Temp builds a temporary operand.
func Temp(n int) Src { return Src{Kind: SrcTemp, Temp: n} }

// IntLit builds an integer literal operand.
func IntLit(v int64) Src { return Src{Kind: SrcIntLit, Int: v} }

// BoolLit builds a boolean literal operand.
func BoolLit(v bool) Src { return Src{Kind: SrcBoolLit, Bool: v} }

// StrLit builds a string literal operand.
func StrLit(s string) Src { return Src{Kind: SrcStrLit, Str: s} }

// Addr is a base-plus-offset memory address.
type Addr struct {
	Base   Src
	Offset int
}

// Label identifies a function-local jump target, numbered from 1.
type Label int

// RelOp enumerates the comparison operators of conditional jumps.
type RelOp uint8

const (
	// EQ compares for equality.
	EQ RelOp = iota
	// NE compares for inequality.
	NE
	// LT compares less-than.
	LT
	// LE compares less-or-equal.
	LE
	// GT compares greater-than.
	GT
	// GE compares greater-or-equal.
	GE
)

func (op RelOp) String() string {
	switch op {
	case EQ:
		return "=="
	case NE:
		return "!="
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	}
	return "??"
}

// InstKind enumerates instruction kinds.
type InstKind uint8

const (
	// InstMove copies a source operand into a variable or temporary.
	InstMove InstKind = iota
	// InstLoad reads memory at an address into a temporary.
	InstLoad
	// InstStore writes a source operand to memory at an address.
	InstStore
	// InstCall invokes a global function.
	InstCall
	// InstJump transfers control to a label unconditionally.
	InstJump
	// InstCJump transfers control to a label when a comparison holds.
	InstCJump
	// InstLabel declares a jump target at this point in the sequence.
	InstLabel
	// InstReturn leaves the function, optionally carrying a value.
	InstReturn
)

// Inst is a single instruction; Kind selects the populated payload.
type Inst struct {
	Kind InstKind

	Move   MoveInst
	Load   LoadInst
	Store  StoreInst
	Call   CallInst
	Jump   JumpInst
	CJump  CJumpInst
	Label  LabelInst
	Return ReturnInst
}

// MoveInst copies Src into Dst.
type MoveInst struct {
	Dst Src
	Src Src
}

// LoadInst reads a value of the given type from Addr into Dst.
type LoadInst struct {
	Type Type
	Dst  Src
	Addr Addr
}

// StoreInst writes Src, treated as the given type, to Addr.
type StoreInst struct {
	Type Type
	Addr Addr
	Src  Src
}

// CallInst invokes Target with Args. Dst is SrcNone when the result is not
// captured. Indirect is part of the IR contract; this generator only ever
// produces direct calls.
type CallInst struct {
	Target   string
	Indirect bool
	Args     []Src
	Dst      Src
}

// JumpInst transfers control to Target.
type JumpInst struct {
	Target Label
}

// CJumpInst jumps to Target when L and R compare true under Op.
type CJumpInst struct {
	Op     RelOp
	L      Src
	R      Src
	Target Label
}

// LabelInst declares Name as a jump target here.
type LabelInst struct {
	Name Label
}

// ReturnInst leaves the function; Src is SrcNone for a bare return.
type ReturnInst struct {
	Src Src
}

// NewMove builds a move instruction.
func NewMove(dst, src Src) Inst {
	return Inst{Kind: InstMove, Move: MoveInst{Dst: dst, Src: src}}
}

// NewLoad builds a load instruction.
func NewLoad(t Type, dst Src, addr Addr) Inst {
	return Inst{Kind: InstLoad, Load: LoadInst{Type: t, Dst: dst, Addr: addr}}
}

// NewStore builds a store instruction.
func NewStore(t Type, addr Addr, src Src) Inst {
	return Inst{Kind: InstStore, Store: StoreInst{Type: t, Addr: addr, Src: src}}
}

// NewCall builds a direct call instruction; pass Src{} for no destination.
func NewCall(target string, args []Src, dst Src) Inst {
	return Inst{Kind: InstCall, Call: CallInst{Target: target, Args: args, Dst: dst}}
}

// NewJump builds an unconditional jump.
func NewJump(target Label) Inst {
	return Inst{Kind: InstJump, Jump: JumpInst{Target: target}}
}

// NewCJump builds a conditional jump.
func NewCJump(op RelOp, l, r Src, target Label) Inst {
	return Inst{Kind: InstCJump, CJump: CJumpInst{Op: op, L: l, R: r, Target: target}}
}

// NewLabel builds a label declaration.
func NewLabel(name Label) Inst {
	return Inst{Kind: InstLabel, Label: LabelInst{Name: name}}
}

// NewReturn builds a return instruction; pass Src{} for a bare return.
func NewReturn(src Src) Inst {
	return Inst{Kind: InstReturn, Return: ReturnInst{Src: src}}
}

// Func is one lowered method. Label is empty only for the program entry;
// the renderer prints the fixed entry symbol in that case. For non-entry
// functions Params[0] is the receiver.
type Func struct {
	Label  string
	Params []string
	Locals []string
	Body   []Inst
}

// EntrySymbol is the label the entry function is rendered under.
const EntrySymbol = "main"

// IsEntry reports whether the function is the program entry.
func (f *Func) IsEntry() bool { return f != nil && f.Label == "" }

// Data is a static data record. The lowering in this package's callers
// never emits any; the section exists to keep the program shape complete.
type Data struct {
	Label string
	Bytes []byte
}

// Program is an ordered list of functions plus a static data section.
type Program struct {
	Funcs []Func
	Data  []Data
}
