package irgen

import (
	"mica/internal/ast"
	"mica/internal/ir"
	"mica/internal/source"
)

// lowerCall is the shared path for call expressions and call statements.
// The target is fixed at compile time: the declaring class found by the
// inheritance walk names the function, so an inherited method called on a
// subclass instance still targets the declaring class. The receiver is
// lowered as argument 0, then the remaining arguments in order. When
// capture is set the call gets a fresh destination temporary; otherwise
// the result pack carries neither operand nor type.
func (l *funcLowerer) lowerCall(span source.Span, recv *ast.Expr, method string, args []*ast.Expr, capture bool) (valuePack, error) {
	recvCls, err := l.receiverLayout(recv)
	if err != nil {
		return valuePack{}, err
	}
	base, err := recvCls.MethodBase(method)
	if err != nil {
		return valuePack{}, err
	}
	target := "_" + base.Name + "_" + method

	recvPack, err := l.lowerExpr(recv)
	if err != nil {
		return valuePack{}, err
	}
	code := recvPack.code
	callArgs := []ir.Src{recvPack.src}

	for _, arg := range args {
		argPack, err := l.lowerExpr(arg)
		if err != nil {
			return valuePack{}, err
		}
		code = append(code, argPack.code...)
		callArgs = append(callArgs, argPack.src)
	}

	if !capture {
		code = append(code, ir.NewCall(target, callArgs, ir.Src{}))
		return valuePack{code: code}, nil
	}

	retType, err := recvCls.MethodReturnType(method)
	if err != nil {
		return valuePack{}, err
	}
	if retType.Kind == ast.TypeVoid {
		return valuePack{}, unsupported("use of a void method's result", span)
	}
	dst := l.newTemp()
	code = append(code, ir.NewCall(target, callArgs, dst))
	return valuePack{typ: machType(retType), src: dst, code: code}, nil
}
