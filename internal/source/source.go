// Package source tracks loaded source files and maps byte offsets back to
// human-readable line/column positions for diagnostics.
package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a source file was loaded.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 BOM was stripped during load.
	FileHadBOM
	// FileNormalizedCRLF indicates CRLF sequences were rewritten to LF.
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of '\n' in Content
	Hash    [32]byte // sha256 of the normalized content
	Flags   FileFlags
}

// LineCol is a 1-based human-readable position in a source file.
type LineCol struct {
	Line uint32
	Col  uint32
}
