package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"mica/internal/ast"
	"mica/internal/driver"
	"mica/internal/ir"
	"mica/internal/layout"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts <file.mica>",
	Short: "Show the computed class layouts for a source file",
	Long: `Layouts parses a file, computes each class's object layout for the
selected target and prints the total size, every field with its byte
offset, and the symbol each method call would bind to.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayouts,
}

func runLayouts(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	opts, err := translateOptions(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Parse(args[0], opts.MaxDiagnostics)
	if err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		reportDiagnostics(cmd, res.Bag, res.FileSet)
	}
	if res.Bag.HasErrors() {
		return fmt.Errorf("parsing failed with %d error(s)", errorCount(res.Bag))
	}

	table, err := layout.Build(res.Program, opts.Target)
	if err != nil {
		return err
	}
	return renderLayouts(cmd.OutOrStdout(), res.Program, table)
}

func renderLayouts(w io.Writer, prog *ast.Program, table *layout.Table) error {
	for i, decl := range prog.Classes {
		cls, err := table.Lookup(decl.Name)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		if cls.Parent != nil {
			fmt.Fprintf(w, "class %s extends %s (size %d)\n", cls.Name, cls.Parent.Name, cls.Size)
		} else {
			fmt.Fprintf(w, "class %s (size %d)\n", cls.Name, cls.Size)
		}
		if err := renderFields(w, cls); err != nil {
			return err
		}
		renderMethods(w, cls)
	}
	return nil
}

// renderFields prints declared and inherited fields ordered by offset.
// Zero-size fields can share an offset, so the name breaks ties.
func renderFields(w io.Writer, cls *layout.Class) error {
	names := make([]string, 0, len(cls.FieldOffsets))
	for name := range cls.FieldOffsets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, oj := cls.FieldOffsets[names[i]], cls.FieldOffsets[names[j]]
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		typ, err := cls.FieldType(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %4d  %-12s %s\n", cls.FieldOffsets[name], name, typ.String())
	}
	return nil
}

// renderMethods walks the inheritance chain from the class toward the
// root, printing the nearest declaration of each method name together
// with the symbol a call on this class binds to.
func renderMethods(w io.Writer, cls *layout.Class) {
	seen := make(map[string]bool)
	for cur := cls; cur != nil; cur = cur.Parent {
		for _, m := range cur.Decl.Methods {
			if seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			label := "_" + cur.Name + "_" + m.Name
			if m.Name == ir.EntrySymbol {
				label = ir.EntrySymbol
			}
			fmt.Fprintf(w, "  %s -> %s\n", methodSignature(m), label)
		}
	}
}

func methodSignature(m *ast.MethodDecl) string {
	var b strings.Builder
	b.WriteString(m.Return.String())
	b.WriteByte(' ')
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type.String())
		b.WriteByte(' ')
		b.WriteString(p.Name)
	}
	b.WriteByte(')')
	return b.String()
}
