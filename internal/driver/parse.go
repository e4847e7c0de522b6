package driver

import (
	"mica/internal/ast"
	"mica/internal/diag"
	"mica/internal/source"
)

// ParseResult carries the frontend output for one file, without lowering.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program
	Bag     *diag.Bag
}

// Parse loads and parses a single file. It is the backing for the parse
// and layouts subcommands, which want the tree rather than IR.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = defaultMaxDiagnostics
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	prog, bag, err := parseFile(file, maxDiagnostics)
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Program: prog,
		Bag:     bag,
	}, nil
}
