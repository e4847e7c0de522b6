package main

import (
	"fmt"

	"github.com/spf13/cobra"

	runtimeembed "mica/runtime"
)

var runtimeCmd = &cobra.Command{
	Use:   "runtime <directory>",
	Short: "Write the C runtime sources into a directory",
	Long: `Runtime extracts the embedded C sources that define _malloc and the
print primitives the generated IR calls, so a downstream toolchain can
assemble and link translated programs without a mica checkout.`,
	Args: cobra.ExactArgs(1),
	RunE: runRuntime,
}

func runRuntime(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if err := runtimeembed.Extract(args[0]); err != nil {
		return fmt.Errorf("failed to extract the runtime sources: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "runtime sources written to %s\n", args[0])
	return nil
}
