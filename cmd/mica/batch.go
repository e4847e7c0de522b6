package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"mica/internal/driver"
	"mica/internal/observ"
	"mica/internal/ui"
)

var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Translate every .mica file under a directory",
	Long: `Batch walks the directory, translates every .mica file in parallel
and writes a sibling .ir file for each success. Failures are collected
and reported after the run instead of stopping it.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int("jobs", 0, "parallel translations (0 picks the CPU count)")
	batchCmd.Flags().Bool("ui", false, "interactive progress view")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	dir := args[0]

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	base, err := translateOptions(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	useUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	opts := driver.DirOptions{Options: base, Jobs: jobs, Write: true}

	timer := observ.NewTimer()
	endRun := timer.Track("batch")

	var results []driver.FileResult
	if useUI && isTerminal(os.Stdout) {
		results, err = runBatchUI(cmd, dir, opts)
	} else {
		opts.Observer = lineObserver(cmd.OutOrStdout())
		results, err = driver.TranslateDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return err
	}
	endRun(fmt.Sprintf("%d files", len(results)))

	failed := 0
	for i := range results {
		fr := &results[i]
		if !fr.Failed() {
			continue
		}
		failed++
		if fr.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", fr.Path, fr.Err)
		} else if fr.Result != nil {
			reportDiagnostics(cmd, fr.Result.Bag, fr.Result.FileSet)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "translated %d of %d files\n", len(results)-failed, len(results))
	maybeTimings(cmd, timer.Report())

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// lineObserver prints one line per finished file. Events arrive from
// worker goroutines, so the writer is serialized behind a mutex.
func lineObserver(w io.Writer) driver.Observer {
	var mu sync.Mutex
	return func(ev driver.Event) {
		mu.Lock()
		defer mu.Unlock()
		switch ev.Kind {
		case driver.EventDone:
			if ev.FromCache {
				fmt.Fprintf(w, "  ok %s (cached)\n", ev.Path)
			} else {
				fmt.Fprintf(w, "  ok %s\n", ev.Path)
			}
		case driver.EventFailed:
			fmt.Fprintf(w, "fail %s\n", ev.Path)
		}
	}
}

// runBatchUI drives the translation behind a terminal progress view. The
// driver runs on its own goroutine and feeds the model through a channel;
// closing the channel is what tells the model the run is over.
func runBatchUI(cmd *cobra.Command, dir string, opts driver.DirOptions) ([]driver.FileResult, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	events := make(chan driver.Event, 16)
	opts.Observer = func(ev driver.Event) { events <- ev }

	var results []driver.FileResult
	var derr error
	go func() {
		results, derr = driver.TranslateDir(cmd.Context(), dir, opts)
		close(events)
	}()

	model := ui.NewProgressModel("mica batch "+dir, files, events)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		// Keep the workers from blocking on an observer nobody reads.
		go func() {
			for range events {
			}
		}()
		return nil, err
	}
	return results, derr
}
