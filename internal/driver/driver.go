// Package driver runs the translation pipeline over files and
// directories and owns everything around the core phases: diagnostic
// bags, phase timers and the optional disk cache.
package driver

import (
	"fmt"

	"fortio.org/safecast"

	"mica/internal/ast"
	"mica/internal/diag"
	"mica/internal/ir"
	"mica/internal/irgen"
	"mica/internal/layout"
	"mica/internal/lexer"
	"mica/internal/observ"
	"mica/internal/parser"
	"mica/internal/source"
)

const defaultMaxDiagnostics = 64

// Options controls a single translation run.
type Options struct {
	// MaxDiagnostics caps the diagnostics kept per file; zero means the
	// default cap.
	MaxDiagnostics int
	// Target supplies the machine sizes for class layout; the zero value
	// means layout.Default().
	Target layout.Target
	// Cache, when non-nil, is consulted before parsing and updated after
	// a successful translation.
	Cache *DiskCache
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) target() layout.Target {
	if o.Target == (layout.Target{}) {
		return layout.Default()
	}
	return o.Target
}

// Result is the outcome of translating one file.
type Result struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag

	// Program and Lowered are nil when the run was served from the cache
	// or aborted by diagnostics.
	Program *ast.Program
	Lowered *ir.Program

	// IR is the rendered text; empty unless the translation succeeded.
	IR        string
	FromCache bool
	Timing    observ.Report
}

// Translate runs the pipeline on one file: parse, lower, render.
//
// Frontend diagnostics land in Result.Bag and abort before lowering with
// a nil error; the caller decides how to render them. Lookup and
// lowering failures come back as the error with the partial Result for
// context. A load failure returns a nil Result.
func Translate(path string, opts Options) (*Result, error) {
	timer := observ.NewTimer()

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	res := &Result{Path: path, FileSet: fs, File: file}

	var key Digest
	if opts.Cache != nil {
		key = cacheKey(file.Content, opts.target())
		end := timer.Track("cache")
		var payload DiskPayload
		ok, cacheErr := opts.Cache.Get(key, &payload)
		if cacheErr == nil && ok && payload.Schema == cacheSchemaVersion {
			end("hit")
			res.Bag = diag.NewBag(opts.maxDiagnostics())
			res.IR = payload.IR
			res.FromCache = true
			res.Timing = timer.Report()
			return res, nil
		}
		// A miss and a broken entry both fall through to a fresh run.
		end("miss")
	}

	end := timer.Track("parse")
	prog, bag, err := parseFile(file, opts.maxDiagnostics())
	res.Bag = bag
	if err != nil {
		end("")
		res.Timing = timer.Report()
		return res, err
	}
	res.Program = prog
	end(fmt.Sprintf("%d classes", len(prog.Classes)))
	if bag.HasErrors() {
		res.Timing = timer.Report()
		return res, nil
	}

	end = timer.Track("lower")
	lowered, err := irgen.Generate(prog, opts.target())
	if err != nil {
		end("")
		res.Timing = timer.Report()
		return res, err
	}
	res.Lowered = lowered
	end(fmt.Sprintf("%d funcs", len(lowered.Funcs)))

	end = timer.Track("render")
	res.IR = ir.ProgramString(lowered)
	end("")

	if opts.Cache != nil {
		// Best effort: the translation already succeeded.
		_ = opts.Cache.Put(key, &DiskPayload{
			Schema: cacheSchemaVersion,
			Source: hashBytes(file.Content),
			Target: opts.target(),
			IR:     res.IR,
		})
	}

	res.Timing = timer.Report()
	return res, nil
}

// parseFile runs the lexer and parser over a loaded file.
func parseFile(file *source.File, maxDiagnostics int) (*ast.Program, *diag.Bag, error) {
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, bag, fmt.Errorf("diagnostic cap overflow: %w", err)
	}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	result := parser.ParseFile(lx, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	return result.Program, bag, nil
}
