// Package runtimeembed ships the C sources defining the runtime symbols
// the generated IR calls: _malloc and the three print primitives. They
// ride inside the mica binary so a build directory can be provisioned
// without a source checkout.
package runtimeembed

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

//go:embed native/*.c native/*.h
var nativeFS embed.FS

// FS exposes the embedded runtime sources, rooted at "native".
func FS() fs.FS {
	return nativeFS
}

// Extract writes every runtime source file into dir, creating the
// directory if needed. Existing files are overwritten.
func Extract(dir string) error {
	entries, err := fs.ReadDir(nativeFS, "native")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := fs.ReadFile(nativeFS, path.Join("native", entry.Name()))
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, entry.Name()), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
