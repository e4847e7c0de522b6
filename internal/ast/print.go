package ast

import (
	"fmt"
	"io"
	"strings"
)

// ExprString renders an expression on one line, for dumps and error
// messages.
func ExprString(e *Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch data := e.Data.(type) {
	case IntLitData:
		return fmt.Sprintf("%d", data.Value)
	case BoolLitData:
		if data.Value {
			return "true"
		}
		return "false"
	case StrLitData:
		return fmt.Sprintf("%q", data.Value)
	case ThisData:
		return "this"
	case IdentData:
		return data.Name
	case FieldData:
		return ExprString(data.Target) + "." + data.Name
	case CallData:
		args := make([]string, len(data.Args))
		for i, a := range data.Args {
			args[i] = ExprString(a)
		}
		return fmt.Sprintf("%s.%s(%s)", ExprString(data.Recv), data.Method, strings.Join(args, ", "))
	case NewData:
		return fmt.Sprintf("new %s()", data.ClassName)
	}
	return fmt.Sprintf("<%s>", e.Kind)
}

// Fprint writes an indented dump of the program.
func Fprint(w io.Writer, prog *Program) error {
	if prog == nil {
		return nil
	}
	p := printer{w: w}
	for i, c := range prog.Classes {
		if i > 0 {
			p.line(0, "")
		}
		p.classDecl(c)
	}
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), s)
}

func (p *printer) classDecl(c *ClassDecl) {
	if c == nil {
		p.line(0, "class <nil>")
		return
	}
	header := "class " + c.Name
	if c.Parent != "" {
		header += " extends " + c.Parent
	}
	p.line(0, header)
	for _, f := range c.Fields {
		p.line(1, fmt.Sprintf("field %s %s", f.Type, f.Name))
	}
	for _, m := range c.Methods {
		p.methodDecl(m)
	}
}

func (p *printer) methodDecl(m *MethodDecl) {
	if m == nil {
		p.line(1, "method <nil>")
		return
	}
	params := make([]string, len(m.Params))
	for i, prm := range m.Params {
		params[i] = fmt.Sprintf("%s %s", prm.Type, prm.Name)
	}
	p.line(1, fmt.Sprintf("method %s %s(%s)", m.Return, m.Name, strings.Join(params, ", ")))
	for _, v := range m.Vars {
		if v.Init != nil {
			p.line(2, fmt.Sprintf("local %s %s = %s", v.Type, v.Name, ExprString(v.Init)))
			continue
		}
		p.line(2, fmt.Sprintf("local %s %s", v.Type, v.Name))
	}
	for _, s := range m.Stmts {
		p.stmt(2, s)
	}
}

func (p *printer) stmt(depth int, s *Stmt) {
	if s == nil {
		p.line(depth, "<nil stmt>")
		return
	}
	switch data := s.Data.(type) {
	case BlockData:
		p.line(depth, "block")
		for _, inner := range data.Stmts {
			p.stmt(depth+1, inner)
		}
	case AssignData:
		p.line(depth, fmt.Sprintf("assign %s = %s", ExprString(data.Target), ExprString(data.Value)))
	case CallStmtData:
		p.line(depth, "call "+ExprString(data.Call))
	case IfData:
		p.line(depth, "if "+ExprString(data.Cond))
		p.line(depth, "then")
		p.stmt(depth+1, data.Then)
		if data.Else != nil {
			p.line(depth, "else")
			p.stmt(depth+1, data.Else)
		}
	case WhileData:
		p.line(depth, "while "+ExprString(data.Cond))
		p.stmt(depth+1, data.Body)
	case PrintData:
		if data.Arg == nil {
			p.line(depth, "print")
			return
		}
		p.line(depth, "print "+ExprString(data.Arg))
	case ReturnData:
		if data.Value == nil {
			p.line(depth, "return")
			return
		}
		p.line(depth, "return "+ExprString(data.Value))
	default:
		p.line(depth, fmt.Sprintf("<%s>", s.Kind))
	}
}
