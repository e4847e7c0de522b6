// Package testkit holds structural checkers shared by parser tests and
// the fuzz harnesses. They verify properties every cleanly parsed tree
// must have, independent of what the program means.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"mica/internal/ast"
	"mica/internal/source"
)

// CheckSpanInvariants walks every node of a parsed program and verifies
// its span: it points at the file it was parsed from, is non-empty and
// non-inverted, stays inside the file content, and stays inside the span
// of the node that encloses it. The tree must come from a parse that
// reported no errors; recovery stubs are allowed to break these rules.
func CheckSpanInvariants(prog *ast.Program, file *source.File) error {
	if prog == nil || file == nil {
		return fmt.Errorf("nil program or file")
	}
	limit, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("content length overflow: %w", err)
	}

	c := &checker{file: file, limit: limit}
	for _, cls := range prog.Classes {
		if err := c.checkClass(cls); err != nil {
			return err
		}
	}
	return nil
}

type checker struct {
	file  *source.File
	limit uint32
}

func (c *checker) checkSpan(what string, sp source.Span) error {
	if sp.File != c.file.ID {
		return fmt.Errorf("%s span %v points at file %d, want %d", what, sp, sp.File, c.file.ID)
	}
	if sp.Start >= sp.End {
		return fmt.Errorf("%s span %v is empty or inverted", what, sp)
	}
	if sp.End > c.limit {
		return fmt.Errorf("%s span %v reaches past the %d content bytes", what, sp, c.limit)
	}
	return nil
}

func (c *checker) checkInside(what string, sp, parent source.Span) error {
	if err := c.checkSpan(what, sp); err != nil {
		return err
	}
	if sp.Start < parent.Start || sp.End > parent.End {
		return fmt.Errorf("%s span %v escapes its parent %v", what, sp, parent)
	}
	return nil
}

func (c *checker) checkClass(cls *ast.ClassDecl) error {
	if cls == nil {
		return fmt.Errorf("nil class declaration")
	}
	if err := c.checkSpan("class", cls.Span); err != nil {
		return err
	}
	if err := c.checkInside("class name", cls.NameSpan, cls.Span); err != nil {
		return err
	}
	if cls.Parent != "" {
		if err := c.checkInside("parent name", cls.ParentSpan, cls.Span); err != nil {
			return err
		}
	}
	for _, field := range cls.Fields {
		if err := c.checkInside("field", field.Span, cls.Span); err != nil {
			return err
		}
	}
	for _, m := range cls.Methods {
		if err := c.checkMethod(m, cls.Span); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) checkMethod(m *ast.MethodDecl, parent source.Span) error {
	if err := c.checkInside("method", m.Span, parent); err != nil {
		return err
	}
	if err := c.checkInside("method name", m.NameSpan, m.Span); err != nil {
		return err
	}
	for _, p := range m.Params {
		if err := c.checkInside("parameter", p.Span, m.Span); err != nil {
			return err
		}
	}
	for _, v := range m.Vars {
		if err := c.checkInside("local", v.Span, m.Span); err != nil {
			return err
		}
		if v.Init != nil {
			if err := c.checkExpr(v.Init, v.Span); err != nil {
				return err
			}
		}
	}
	for _, s := range m.Stmts {
		if err := c.checkStmt(s, m.Span); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) checkStmt(s *ast.Stmt, parent source.Span) error {
	if s == nil {
		return fmt.Errorf("nil statement inside %v", parent)
	}
	if err := c.checkInside(s.Kind.String()+" statement", s.Span, parent); err != nil {
		return err
	}
	switch data := s.Data.(type) {
	case ast.BlockData:
		for _, inner := range data.Stmts {
			if err := c.checkStmt(inner, s.Span); err != nil {
				return err
			}
		}
	case ast.AssignData:
		if err := c.checkExpr(data.Target, s.Span); err != nil {
			return err
		}
		return c.checkExpr(data.Value, s.Span)
	case ast.CallStmtData:
		return c.checkExpr(data.Call, s.Span)
	case ast.IfData:
		if err := c.checkExpr(data.Cond, s.Span); err != nil {
			return err
		}
		if err := c.checkStmt(data.Then, s.Span); err != nil {
			return err
		}
		if data.Else != nil {
			return c.checkStmt(data.Else, s.Span)
		}
	case ast.WhileData:
		if err := c.checkExpr(data.Cond, s.Span); err != nil {
			return err
		}
		return c.checkStmt(data.Body, s.Span)
	case ast.PrintData:
		if data.Arg != nil {
			return c.checkExpr(data.Arg, s.Span)
		}
	case ast.ReturnData:
		if data.Value != nil {
			return c.checkExpr(data.Value, s.Span)
		}
	default:
		return fmt.Errorf("statement %v carries unknown payload %T", s.Span, s.Data)
	}
	return nil
}

func (c *checker) checkExpr(e *ast.Expr, parent source.Span) error {
	if e == nil {
		return fmt.Errorf("nil expression inside %v", parent)
	}
	if err := c.checkInside(e.Kind.String()+" expression", e.Span, parent); err != nil {
		return err
	}
	switch data := e.Data.(type) {
	case ast.FieldData:
		return c.checkExpr(data.Target, e.Span)
	case ast.CallData:
		if err := c.checkExpr(data.Recv, e.Span); err != nil {
			return err
		}
		for _, arg := range data.Args {
			if err := c.checkExpr(arg, e.Span); err != nil {
				return err
			}
		}
	case ast.IntLitData, ast.BoolLitData, ast.StrLitData, ast.ThisData, ast.IdentData, ast.NewData:
		// Leaves carry no children.
	default:
		return fmt.Errorf("expression %v carries unknown payload %T", e.Span, e.Data)
	}
	return nil
}
