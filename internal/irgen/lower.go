// Package irgen lowers a mica AST into linear IR. Lowering is a pure
// tree-to-list transformation: layouts are computed first for every class
// in declaration order, then every method is lowered to one IR function
// with its own temporary and label numbering. Any lookup failure or
// unsupported shape aborts the whole translation; no partial IR is
// produced.
package irgen

import (
	"fmt"

	"mica/internal/ast"
	"mica/internal/ir"
	"mica/internal/layout"
)

// receiverName is the variable the implicit receiver is passed in. Every
// non-entry function takes it as parameter 0.
const receiverName = "obj"

// Runtime primitives, resolved at link time.
const (
	allocFn     = "_malloc"
	printStrFn  = "_printStr"
	printBoolFn = "_printBool"
	printIntFn  = "_printInt"
)

// Generator lowers methods against a computed layout table.
type Generator struct {
	table *layout.Table
}

// New creates a generator over an already-built table.
func New(table *layout.Table) *Generator {
	return &Generator{table: table}
}

// Generate runs the whole pipeline on prog: build the layout table for
// target, then lower every method.
func Generate(prog *ast.Program, target layout.Target) (*ir.Program, error) {
	table, err := layout.Build(prog, target)
	if err != nil {
		return nil, err
	}
	return New(table).Program(prog)
}

// Program lowers every method of every class, in class-then-method
// declaration order.
func (g *Generator) Program(prog *ast.Program) (*ir.Program, error) {
	out := &ir.Program{}
	for _, cls := range prog.Classes {
		lay, err := g.table.Lookup(cls.Name)
		if err != nil {
			return nil, err
		}
		for _, m := range cls.Methods {
			fn, err := g.lowerMethod(lay, m)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", cls.Name, m.Name, err)
			}
			out.Funcs = append(out.Funcs, fn)
		}
	}
	return out, nil
}

// lowerMethod builds one IR function. A method named after the entry
// symbol is the program entry: it takes no receiver and its label is left
// empty for the renderer to fill with the fixed symbol. Everything else
// gets a label combining the declaring class and method name, with the
// receiver prepended as parameter 0.
//
// The lowerer is created fresh per method, which is what resets the
// temporary and label counters.
func (g *Generator) lowerMethod(cls *layout.Class, m *ast.MethodDecl) (ir.Func, error) {
	l := &funcLowerer{gen: g, class: cls, env: newScopeEnv()}

	fn := ir.Func{}
	if m.Name == ir.EntrySymbol {
		l.entry = true
	} else {
		fn.Label = "_" + cls.Name + "_" + m.Name
		fn.Params = append(fn.Params, receiverName)
	}

	for _, p := range m.Params {
		if err := l.env.Bind(p.Name, p.Type); err != nil {
			return ir.Func{}, err
		}
		fn.Params = append(fn.Params, p.Name)
	}
	for _, v := range m.Vars {
		if err := l.env.Bind(v.Name, v.Type); err != nil {
			return ir.Func{}, err
		}
		fn.Locals = append(fn.Locals, v.Name)
	}

	for _, v := range m.Vars {
		if v.Init == nil {
			continue
		}
		pack, err := l.lowerExpr(v.Init)
		if err != nil {
			return ir.Func{}, err
		}
		fn.Body = append(fn.Body, pack.code...)
		fn.Body = append(fn.Body, ir.NewMove(ir.Var(v.Name), pack.src))
	}
	for _, s := range m.Stmts {
		code, err := l.lowerStmt(s)
		if err != nil {
			return ir.Func{}, err
		}
		fn.Body = append(fn.Body, code...)
	}
	return fn, nil
}

// funcLowerer carries the per-method lowering state: the scope of declared
// names and the two counters. Numbering is 1-based, so the first
// temporary is t1 and the first label is L1.
type funcLowerer struct {
	gen    *Generator
	class  *layout.Class
	env    *scopeEnv
	entry  bool
	temps  int
	labels int
}

func (l *funcLowerer) newTemp() ir.Src {
	l.temps++
	return ir.Temp(l.temps)
}

func (l *funcLowerer) newLabel() ir.Label {
	l.labels++
	return ir.Label(l.labels)
}

// valuePack is the result of lowering one expression: the operand that
// holds the value, the machine type it carries, and the instructions that
// must run, in order, before the operand is read. Type and operand may
// each be absent: a discarded call produces neither, a string literal has
// an operand but no runtime type.
type valuePack struct {
	typ  ir.Type
	src  ir.Src
	code []ir.Inst
}

// scopeEnv maps declared names to their types for one method: parameters
// first, then locals. The scope is flat; blocks do not introduce scopes.
type scopeEnv struct {
	vars map[string]ast.Type
}

func newScopeEnv() *scopeEnv {
	return &scopeEnv{vars: make(map[string]ast.Type)}
}

func (e *scopeEnv) Bind(name string, typ ast.Type) error {
	if _, ok := e.vars[name]; ok {
		return fmt.Errorf("irgen: duplicate declaration of %q", name)
	}
	e.vars[name] = typ
	return nil
}

func (e *scopeEnv) Lookup(name string) (ast.Type, bool) {
	typ, ok := e.vars[name]
	return typ, ok
}

// machType maps a declared type to the machine type its values carry.
// Void and invalid have no machine type.
func machType(t ast.Type) ir.Type {
	switch t.Kind {
	case ast.TypeInt:
		return ir.TypeInt
	case ast.TypeBool:
		return ir.TypeBool
	case ast.TypeObject:
		return ir.TypePtr
	default:
		return ir.TypeNone
	}
}
