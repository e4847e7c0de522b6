package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mica/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "mica <file.mica>",
	Short: "Translate a class-based source file into textual IR",
	Long: `Mica turns a single .mica source file into the flat three-address IR
consumed by the rest of the toolchain. The translation stops after the
first lowering fault but collects as many parse diagnostics as the
--max-diagnostics limit allows.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(layoutsCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(runtimeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "print per-phase timings to stderr")
	rootCmd.PersistentFlags().String("target", "", "TOML file overriding the target value sizes")
	rootCmd.PersistentFlags().Bool("cache", false, "reuse translations from the on-disk cache")
	rootCmd.PersistentFlags().Int("max-diagnostics", 64, "maximum number of diagnostics to keep per file")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the path on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write an execution trace to the path")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		useColor, err := colorEnabled(cmd)
		if err != nil {
			return err
		}
		color.NoColor = !useColor
		return nil
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func colorEnabled(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(os.Stderr), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto, on or off)", mode)
}
