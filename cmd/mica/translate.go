package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mica/internal/diag"
	"mica/internal/diagfmt"
	"mica/internal/driver"
	"mica/internal/layout"
	"mica/internal/observ"
	"mica/internal/source"
)

func runTranslate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts, err := translateOptions(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Translate(args[0], opts)
	if err != nil {
		if res != nil && res.Bag != nil && res.Bag.Len() > 0 {
			reportDiagnostics(cmd, res.Bag, res.FileSet)
		}
		return err
	}
	if res.Bag.HasErrors() {
		reportDiagnostics(cmd, res.Bag, res.FileSet)
		maybeTimings(cmd, res.Timing)
		return fmt.Errorf("translation failed with %d error(s)", errorCount(res.Bag))
	}

	fmt.Fprint(cmd.OutOrStdout(), res.IR)
	maybeTimings(cmd, res.Timing)
	return nil
}

// translateOptions folds the persistent flags into driver options.
func translateOptions(cmd *cobra.Command) (driver.Options, error) {
	flags := cmd.Root().PersistentFlags()

	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	target := layout.Default()
	targetPath, err := flags.GetString("target")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get target flag: %w", err)
	}
	if targetPath != "" {
		target, err = layout.LoadTargetFile(targetPath)
		if err != nil {
			return driver.Options{}, err
		}
	}

	var cache *driver.DiskCache
	useCache, err := flags.GetBool("cache")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if useCache {
		cache, err = driver.OpenDiskCache("mica")
		if err != nil {
			return driver.Options{}, fmt.Errorf("failed to open the disk cache: %w", err)
		}
	}

	return driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Target:         target,
		Cache:          cache,
	}, nil
}

func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	bag.Sort()
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, prettyOpts(cmd))
}

func prettyOpts(cmd *cobra.Command) diagfmt.PrettyOpts {
	useColor, err := colorEnabled(cmd)
	if err != nil {
		useColor = false
	}
	return diagfmt.PrettyOpts{
		Color:     useColor,
		Context:   2,
		ShowNotes: true,
	}
}

func maybeTimings(cmd *cobra.Command, report observ.Report) {
	show, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil || !show {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), report.Summary())
}

func errorCount(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			n++
		}
	}
	return n
}
