package irgen

import (
	"fmt"

	"mica/internal/ast"
	"mica/internal/ir"
)

// lowerStmt dispatches on the statement variant and returns the emitted
// instruction sequence.
func (l *funcLowerer) lowerStmt(s *ast.Stmt) ([]ir.Inst, error) {
	switch s.Kind {
	case ast.StmtBlock:
		data, ok := s.Data.(ast.BlockData)
		if !ok {
			return nil, fmt.Errorf("irgen: block: unexpected payload %T", s.Data)
		}
		var code []ir.Inst
		for _, stmt := range data.Stmts {
			stmtCode, err := l.lowerStmt(stmt)
			if err != nil {
				return nil, err
			}
			code = append(code, stmtCode...)
		}
		return code, nil

	case ast.StmtAssign:
		return l.lowerAssign(s)

	case ast.StmtCall:
		data, ok := s.Data.(ast.CallStmtData)
		if !ok {
			return nil, fmt.Errorf("irgen: call statement: unexpected payload %T", s.Data)
		}
		callData, ok := data.Call.Data.(ast.CallData)
		if !ok {
			return nil, fmt.Errorf("irgen: call statement: unexpected payload %T", data.Call.Data)
		}
		pack, err := l.lowerCall(data.Call.Span, callData.Recv, callData.Method, callData.Args, false)
		if err != nil {
			return nil, err
		}
		return pack.code, nil

	case ast.StmtIf:
		return l.lowerIf(s)

	case ast.StmtWhile:
		return l.lowerWhile(s)

	case ast.StmtPrint:
		return l.lowerPrint(s)

	case ast.StmtReturn:
		data, ok := s.Data.(ast.ReturnData)
		if !ok {
			return nil, fmt.Errorf("irgen: return: unexpected payload %T", s.Data)
		}
		if data.Value == nil {
			return []ir.Inst{ir.NewReturn(ir.Src{})}, nil
		}
		pack, err := l.lowerExpr(data.Value)
		if err != nil {
			return nil, err
		}
		return append(pack.code, ir.NewReturn(pack.src)), nil

	default:
		return nil, unsupported("statement ("+s.Kind.String()+")", s.Span)
	}
}

// lowerAssign lowers the right-hand side first, then the target. A target
// bound in the scope environment takes a plain move; everything else is a
// field, explicit or implicit, and takes a store through the object's
// layout.
func (l *funcLowerer) lowerAssign(s *ast.Stmt) ([]ir.Inst, error) {
	data, ok := s.Data.(ast.AssignData)
	if !ok {
		return nil, fmt.Errorf("irgen: assign: unexpected payload %T", s.Data)
	}

	value, err := l.lowerExpr(data.Value)
	if err != nil {
		return nil, err
	}

	target := data.Target
	if target.Kind == ast.ExprIdent {
		identData, ok := target.Data.(ast.IdentData)
		if !ok {
			return nil, fmt.Errorf("irgen: assign: unexpected payload %T", target.Data)
		}
		if _, bound := l.env.Lookup(identData.Name); bound {
			return append(value.code, ir.NewMove(ir.Var(identData.Name), value.src)), nil
		}
		target, err = l.rewriteImplicitField(identData.Name, target.Span)
		if err != nil {
			return nil, err
		}
	}
	if target.Kind != ast.ExprField {
		return nil, unsupported("assignment target ("+target.Kind.String()+")", target.Span)
	}

	fieldData, ok := target.Data.(ast.FieldData)
	if !ok {
		return nil, fmt.Errorf("irgen: assign: unexpected payload %T", target.Data)
	}
	obj, err := l.lowerExpr(fieldData.Target)
	if err != nil {
		return nil, err
	}
	cls, err := l.receiverLayout(fieldData.Target)
	if err != nil {
		return nil, err
	}
	off, err := cls.FieldOffset(fieldData.Name)
	if err != nil {
		return nil, err
	}
	typ, err := cls.FieldType(fieldData.Name)
	if err != nil {
		return nil, err
	}

	code := append(value.code, obj.code...)
	store := ir.NewStore(machType(typ), ir.Addr{Base: obj.src, Offset: off}, value.src)
	return append(code, store), nil
}

// lowerIf emits: condition code, a jump to the false label taken when the
// condition is false, the then branch, and, when an else branch exists, a
// jump over it to the join label. The false label is allocated before the
// join label, so a plain if-else numbers them L1 and L2.
func (l *funcLowerer) lowerIf(s *ast.Stmt) ([]ir.Inst, error) {
	data, ok := s.Data.(ast.IfData)
	if !ok {
		return nil, fmt.Errorf("irgen: if: unexpected payload %T", s.Data)
	}

	cond, err := l.lowerExpr(data.Cond)
	if err != nil {
		return nil, err
	}
	falseLabel := l.newLabel()
	var joinLabel ir.Label
	if data.Else != nil {
		joinLabel = l.newLabel()
	}

	code := append(cond.code, ir.NewCJump(ir.EQ, cond.src, ir.BoolLit(false), falseLabel))

	thenCode, err := l.lowerStmt(data.Then)
	if err != nil {
		return nil, err
	}
	code = append(code, thenCode...)

	if data.Else == nil {
		return append(code, ir.NewLabel(falseLabel)), nil
	}

	code = append(code, ir.NewJump(joinLabel), ir.NewLabel(falseLabel))
	elseCode, err := l.lowerStmt(data.Else)
	if err != nil {
		return nil, err
	}
	code = append(code, elseCode...)
	return append(code, ir.NewLabel(joinLabel)), nil
}

// lowerWhile emits: top label, condition code, a jump to the exit label
// taken when the condition is false, the body, and a jump back to the top.
func (l *funcLowerer) lowerWhile(s *ast.Stmt) ([]ir.Inst, error) {
	data, ok := s.Data.(ast.WhileData)
	if !ok {
		return nil, fmt.Errorf("irgen: while: unexpected payload %T", s.Data)
	}

	topLabel := l.newLabel()
	exitLabel := l.newLabel()

	cond, err := l.lowerExpr(data.Cond)
	if err != nil {
		return nil, err
	}
	code := []ir.Inst{ir.NewLabel(topLabel)}
	code = append(code, cond.code...)
	code = append(code, ir.NewCJump(ir.EQ, cond.src, ir.BoolLit(false), exitLabel))

	body, err := l.lowerStmt(data.Body)
	if err != nil {
		return nil, err
	}
	code = append(code, body...)
	return append(code, ir.NewJump(topLabel), ir.NewLabel(exitLabel)), nil
}

// lowerPrint picks the print primitive. An absent argument or a string
// literal goes to the string primitive as-is; anything else is lowered
// and dispatched on the type it produced. A produced type outside
// int/boolean cannot be printed and aborts.
func (l *funcLowerer) lowerPrint(s *ast.Stmt) ([]ir.Inst, error) {
	data, ok := s.Data.(ast.PrintData)
	if !ok {
		return nil, fmt.Errorf("irgen: print: unexpected payload %T", s.Data)
	}
	if data.Arg == nil {
		return []ir.Inst{ir.NewCall(printStrFn, nil, ir.Src{})}, nil
	}

	pack, err := l.lowerExpr(data.Arg)
	if err != nil {
		return nil, err
	}
	if data.Arg.Kind == ast.ExprStrLit {
		return append(pack.code, ir.NewCall(printStrFn, []ir.Src{pack.src}, ir.Src{})), nil
	}
	switch pack.typ {
	case ir.TypeBool:
		return append(pack.code, ir.NewCall(printBoolFn, []ir.Src{pack.src}, ir.Src{})), nil
	case ir.TypeInt:
		return append(pack.code, ir.NewCall(printIntFn, []ir.Src{pack.src}, ir.Src{})), nil
	default:
		return nil, unsupported("print argument of type "+pack.typ.String(), s.Span)
	}
}
