package irgen

import (
	"fmt"

	"mica/internal/ast"
	"mica/internal/ir"
	"mica/internal/layout"
	"mica/internal/source"
)

// lowerExpr dispatches on the expression variant. Every case produces a
// pack whose instructions must be spliced in before the operand is read.
func (l *funcLowerer) lowerExpr(e *ast.Expr) (valuePack, error) {
	switch e.Kind {
	case ast.ExprIntLit:
		data, ok := e.Data.(ast.IntLitData)
		if !ok {
			return valuePack{}, fmt.Errorf("irgen: int literal: unexpected payload %T", e.Data)
		}
		return valuePack{typ: ir.TypeInt, src: ir.IntLit(data.Value)}, nil

	case ast.ExprBoolLit:
		data, ok := e.Data.(ast.BoolLitData)
		if !ok {
			return valuePack{}, fmt.Errorf("irgen: bool literal: unexpected payload %T", e.Data)
		}
		return valuePack{typ: ir.TypeBool, src: ir.BoolLit(data.Value)}, nil

	case ast.ExprStrLit:
		data, ok := e.Data.(ast.StrLitData)
		if !ok {
			return valuePack{}, fmt.Errorf("irgen: string literal: unexpected payload %T", e.Data)
		}
		// String literals carry no runtime type; they are only legal as
		// print arguments and the print lowering checks the form itself.
		return valuePack{src: ir.StrLit(data.Value)}, nil

	case ast.ExprThis:
		return l.lowerThis(e.Span)

	case ast.ExprIdent:
		return l.lowerIdent(e)

	case ast.ExprField:
		return l.lowerField(e)

	case ast.ExprCall:
		data, ok := e.Data.(ast.CallData)
		if !ok {
			return valuePack{}, fmt.Errorf("irgen: call: unexpected payload %T", e.Data)
		}
		return l.lowerCall(e.Span, data.Recv, data.Method, data.Args, true)

	case ast.ExprNew:
		return l.lowerNew(e)

	default:
		return valuePack{}, unsupported("expression ("+e.Kind.String()+")", e.Span)
	}
}

func (l *funcLowerer) lowerThis(span source.Span) (valuePack, error) {
	if l.entry {
		return valuePack{}, unsupported("'this' in the entry method", span)
	}
	return valuePack{typ: ir.TypePtr, src: ir.Var(receiverName)}, nil
}

// lowerIdent applies the two-step name resolution: a name bound in the
// scope environment is a parameter or local and needs no instructions;
// anything else denotes a field of the current receiver and is rewritten
// into an explicit access so the field rule handles it.
func (l *funcLowerer) lowerIdent(e *ast.Expr) (valuePack, error) {
	data, ok := e.Data.(ast.IdentData)
	if !ok {
		return valuePack{}, fmt.Errorf("irgen: ident: unexpected payload %T", e.Data)
	}
	if typ, ok := l.env.Lookup(data.Name); ok {
		return valuePack{typ: machType(typ), src: ir.Var(data.Name)}, nil
	}
	rewritten, err := l.rewriteImplicitField(data.Name, e.Span)
	if err != nil {
		return valuePack{}, err
	}
	return l.lowerField(rewritten)
}

// rewriteImplicitField turns an unqualified field name into an access on
// the receiver. Applied uniformly wherever identifiers appear: reads,
// assignment targets, and call receivers.
func (l *funcLowerer) rewriteImplicitField(name string, span source.Span) (*ast.Expr, error) {
	if l.entry {
		return nil, fmt.Errorf("undeclared name %q", name)
	}
	return ast.NewField(ast.NewThis(span), name, span), nil
}

// lowerField loads a field: lower the object, resolve its layout, look up
// the field's offset and type, and load from (base + offset) into a fresh
// temporary.
func (l *funcLowerer) lowerField(e *ast.Expr) (valuePack, error) {
	data, ok := e.Data.(ast.FieldData)
	if !ok {
		return valuePack{}, fmt.Errorf("irgen: field: unexpected payload %T", e.Data)
	}
	obj, err := l.lowerExpr(data.Target)
	if err != nil {
		return valuePack{}, err
	}
	cls, err := l.receiverLayout(data.Target)
	if err != nil {
		return valuePack{}, err
	}
	off, err := cls.FieldOffset(data.Name)
	if err != nil {
		return valuePack{}, err
	}
	typ, err := cls.FieldType(data.Name)
	if err != nil {
		return valuePack{}, err
	}

	dst := l.newTemp()
	mt := machType(typ)
	code := append(obj.code, ir.NewLoad(mt, dst, ir.Addr{Base: obj.src, Offset: off}))
	return valuePack{typ: mt, src: dst, code: code}, nil
}

// lowerNew allocates an object. A zero-size class skips allocation
// entirely: the operand is the integer literal zero with no type
// attached, which downstream consumers accept wherever a pointer is
// expected.
func (l *funcLowerer) lowerNew(e *ast.Expr) (valuePack, error) {
	data, ok := e.Data.(ast.NewData)
	if !ok {
		return valuePack{}, fmt.Errorf("irgen: new: unexpected payload %T", e.Data)
	}
	cls, err := l.gen.table.Lookup(data.ClassName)
	if err != nil {
		return valuePack{}, err
	}
	if cls.Size == 0 {
		return valuePack{src: ir.IntLit(0)}, nil
	}

	dst := l.newTemp()
	call := ir.NewCall(allocFn, []ir.Src{ir.IntLit(int64(cls.Size))}, dst)
	return valuePack{typ: ir.TypePtr, src: dst, code: []ir.Inst{call}}, nil
}

// receiverLayout resolves which class layout describes the runtime type
// of an expression used as a call receiver or field-access base. Only the
// receiver reference, identifiers, and field accesses denote objects here;
// other shapes are not typeable without a checker and abort.
func (l *funcLowerer) receiverLayout(e *ast.Expr) (*layout.Class, error) {
	switch e.Kind {
	case ast.ExprThis:
		if l.entry {
			return nil, unsupported("'this' in the entry method", e.Span)
		}
		return l.class, nil

	case ast.ExprIdent:
		data, ok := e.Data.(ast.IdentData)
		if !ok {
			return nil, fmt.Errorf("irgen: ident: unexpected payload %T", e.Data)
		}
		if typ, ok := l.env.Lookup(data.Name); ok {
			return l.layoutOf(typ, e.Span)
		}
		rewritten, err := l.rewriteImplicitField(data.Name, e.Span)
		if err != nil {
			return nil, err
		}
		return l.receiverLayout(rewritten)

	case ast.ExprField:
		data, ok := e.Data.(ast.FieldData)
		if !ok {
			return nil, fmt.Errorf("irgen: field: unexpected payload %T", e.Data)
		}
		base, err := l.receiverLayout(data.Target)
		if err != nil {
			return nil, err
		}
		typ, err := base.FieldType(data.Name)
		if err != nil {
			return nil, err
		}
		return l.layoutOf(typ, e.Span)

	default:
		return nil, unsupported("receiver expression ("+e.Kind.String()+")", e.Span)
	}
}

// layoutOf maps a declared object type to its layout.
func (l *funcLowerer) layoutOf(typ ast.Type, span source.Span) (*layout.Class, error) {
	if !typ.IsObject() {
		return nil, unsupported("receiver of type "+typ.String(), span)
	}
	return l.gen.table.Lookup(typ.Name)
}
