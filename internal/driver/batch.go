package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"mica/internal/diag"
)

const (
	sourceExt = ".mica"
	irExt     = ".ir"
)

// EventKind tags entries in the progress stream of a directory run.
type EventKind int

const (
	// EventStart is emitted when a worker picks up a file.
	EventStart EventKind = iota
	// EventDone is emitted after a successful translation.
	EventDone
	// EventFailed is emitted when diagnostics or a fatal lowering error
	// stopped the file.
	EventFailed
)

// Event is one progress update from TranslateDir.
type Event struct {
	Kind      EventKind
	Path      string
	Index     int // position in the sorted file list
	Total     int
	FromCache bool
	Errors    int   // error-severity diagnostics, for EventFailed
	Err       error // fatal error, for EventFailed
}

// Observer receives progress events. TranslateDir calls it from worker
// goroutines, so implementations must be safe for concurrent use.
type Observer func(Event)

// FileResult pairs one discovered file with its translation outcome.
type FileResult struct {
	Path   string
	Result *Result // nil when the file failed to load
	Err    error
	Output string // path of the written .ir file, if any
}

// Failed reports whether the file produced no usable IR.
func (r *FileResult) Failed() bool {
	if r.Err != nil {
		return true
	}
	return r.Result == nil || r.Result.Bag.HasErrors()
}

// DirOptions extends Options for a directory run.
type DirOptions struct {
	Options
	// Jobs caps parallel translations; zero or less means GOMAXPROCS.
	Jobs int
	// Observer, when non-nil, receives progress events.
	Observer Observer
	// Write emits a sibling .ir file next to each translated source.
	Write bool
}

// TranslateDir translates every .mica file under dir, in parallel up to
// the job limit. Per-file failures are collected in the results rather
// than aborting the run; the error return covers discovery failures and
// context cancellation only. Results are ordered by path.
func TranslateDir(ctx context.Context, dir string, opts DirOptions) ([]FileResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each worker owns one slot, so no mutex around results.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			emit(opts.Observer, Event{Kind: EventStart, Path: path, Index: i, Total: len(files)})
			results[i] = translateOne(path, opts)

			fr := &results[i]
			ev := Event{Path: path, Index: i, Total: len(files)}
			if fr.Failed() {
				ev.Kind = EventFailed
				ev.Err = fr.Err
				if fr.Result != nil {
					ev.Errors = errorCount(fr.Result.Bag)
				}
			} else {
				ev.Kind = EventDone
				ev.FromCache = fr.Result.FromCache
			}
			emit(opts.Observer, ev)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func translateOne(path string, opts DirOptions) FileResult {
	res, err := Translate(path, opts.Options)
	fr := FileResult{Path: path, Result: res, Err: err}
	if fr.Failed() || !opts.Write {
		return fr
	}

	out := strings.TrimSuffix(path, sourceExt) + irExt
	if werr := os.WriteFile(out, []byte(res.IR), 0o644); werr != nil {
		fr.Err = werr
		return fr
	}
	fr.Output = out
	return fr
}

// ListSourceFiles returns every .mica file under dir, sorted for a
// deterministic processing order. TranslateDir visits exactly this list.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, sourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func emit(obs Observer, ev Event) {
	if obs != nil {
		obs(ev)
	}
}

func errorCount(bag *diag.Bag) int {
	if bag == nil {
		return 0
	}
	n := 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			n++
		}
	}
	return n
}
