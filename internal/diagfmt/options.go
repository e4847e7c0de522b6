package diagfmt

import (
	"os"
	"path/filepath"
	"strings"
)

// PathMode selects how file paths appear in rendered diagnostics.
type PathMode uint8

const (
	// PathModeAuto prefers a path relative to the working directory and
	// falls back to the recorded one.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always renders absolute paths.
	PathModeAbsolute
	// PathModeRelative renders paths relative to the working directory.
	PathModeRelative
	// PathModeBasename renders only the file name.
	PathModeBasename
)

// PrettyOpts configures the pretty renderer.
type PrettyOpts struct {
	Color     bool
	Context   int8 // leading context lines shown before the primary line
	PathMode  PathMode
	ShowNotes bool
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative, PathModeAuto:
		if !filepath.IsAbs(path) {
			return path
		}
		wd, err := os.Getwd()
		if err != nil {
			return path
		}
		rel, err := filepath.Rel(wd, path)
		if err != nil {
			return path
		}
		if mode == PathModeAuto && strings.HasPrefix(rel, "..") {
			return path
		}
		return rel
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}
