package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mica/internal/ast"
	"mica/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.mica>",
	Short: "Parse a source file and dump its tree",
	Long: `Parse runs the lexer and parser only and prints the recovered class
tree, one declaration per line. Diagnostics go to stderr; the dump is
still printed when the file parses with recoverable damage.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	res, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		reportDiagnostics(cmd, res.Bag, res.FileSet)
	}
	if res.Bag.HasErrors() {
		return fmt.Errorf("parsing failed with %d error(s)", errorCount(res.Bag))
	}
	return ast.Fprint(cmd.OutOrStdout(), res.Program)
}
