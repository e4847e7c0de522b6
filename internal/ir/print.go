package ir

import (
	"fmt"
	"io"
	"strings"
)

// WriteProgram writes the textual rendering of p. The format is stable:
// tests and the translation cache both rely on it byte-for-byte.
func WriteProgram(w io.Writer, p *Program) error {
	if w == nil || p == nil {
		return nil
	}
	for i := range p.Funcs {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeFunc(w, &p.Funcs[i]); err != nil {
			return err
		}
	}
	for i := range p.Data {
		if _, err := fmt.Fprintf(w, "\ndata %s %d\n", p.Data[i].Label, len(p.Data[i].Bytes)); err != nil {
			return err
		}
	}
	return nil
}

// ProgramString renders p into a string.
func ProgramString(p *Program) string {
	var b strings.Builder
	_ = WriteProgram(&b, p)
	return b.String()
}

func writeFunc(w io.Writer, f *Func) error {
	label := f.Label
	if f.IsEntry() {
		label = EntrySymbol
	}
	if _, err := fmt.Fprintf(w, "fn %s(%s)\n", label, strings.Join(f.Params, ", ")); err != nil {
		return err
	}
	if len(f.Locals) > 0 {
		if _, err := fmt.Fprintf(w, "locals %s\n", strings.Join(f.Locals, ", ")); err != nil {
			return err
		}
	}
	for i := range f.Body {
		if _, err := io.WriteString(w, FormatInst(&f.Body[i])+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// FormatInst renders one instruction as a single line. Label declarations
// sit at column zero; everything else is indented.
func FormatInst(in *Inst) string {
	if in == nil {
		return "  <nil>"
	}
	switch in.Kind {
	case InstMove:
		return fmt.Sprintf("  %s = %s", in.Move.Dst, in.Move.Src)
	case InstLoad:
		return fmt.Sprintf("  %s = load.%s %s", in.Load.Dst, in.Load.Type.Letter(), in.Load.Addr)
	case InstStore:
		return fmt.Sprintf("  store.%s %s, %s", in.Store.Type.Letter(), in.Store.Addr, in.Store.Src)
	case InstCall:
		return formatCall(&in.Call)
	case InstJump:
		return fmt.Sprintf("  goto %s", in.Jump.Target)
	case InstCJump:
		return fmt.Sprintf("  if %s %s %s goto %s", in.CJump.L, in.CJump.Op, in.CJump.R, in.CJump.Target)
	case InstLabel:
		return fmt.Sprintf("%s:", in.Label.Name)
	case InstReturn:
		if in.Return.Src.None() {
			return "  ret"
		}
		return fmt.Sprintf("  ret %s", in.Return.Src)
	}
	return fmt.Sprintf("  <unknown inst %d>", in.Kind)
}

func formatCall(c *CallInst) string {
	args := make([]string, len(c.Args))
	for i := range c.Args {
		args[i] = c.Args[i].String()
	}
	target := c.Target
	if c.Indirect {
		target = "*" + target
	}
	call := fmt.Sprintf("call %s(%s)", target, strings.Join(args, ", "))
	if c.Dst.None() {
		return "  " + call
	}
	return fmt.Sprintf("  %s = %s", c.Dst, call)
}

func (s Src) String() string {
	switch s.Kind {
	case SrcNone:
		return "<none>"
	case SrcVar:
		return s.Name
	case SrcTemp:
		return fmt.Sprintf("t%d", s.Temp)
	case SrcIntLit:
		return fmt.Sprintf("%d", s.Int)
	case SrcBoolLit:
		if s.Bool {
			return "true"
		}
		return "false"
	case SrcStrLit:
		return fmt.Sprintf("%q", s.Str)
	}
	return "<bad src>"
}

func (a Addr) String() string {
	return fmt.Sprintf("[%s+%d]", a.Base, a.Offset)
}

func (l Label) String() string {
	return fmt.Sprintf("L%d", int(l))
}
