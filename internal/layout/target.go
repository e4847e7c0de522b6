package layout

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"mica/internal/ast"
)

// Target describes the data sizes of the machine the IR is lowered for.
// Field offsets and object sizes are computed from these values, so two
// different targets can produce different layouts for the same program.
type Target struct {
	// IntSize is the size of an int field in bytes.
	IntSize int
	// BoolSize is the size of a boolean field in bytes.
	BoolSize int
	// PtrSize is the size of an object reference in bytes.
	PtrSize int
}

// Default returns the target the translator assumes when no target file is
// given: 4-byte ints, 1-byte booleans, 8-byte pointers.
func Default() Target {
	return Target{IntSize: 4, BoolSize: 1, PtrSize: 8}
}

// SizeOf returns the size in bytes a field of type t occupies under the
// target. Only value and object types have a size; asking for the size of
// a void or invalid type is a bug in the caller and panics.
func (t Target) SizeOf(typ ast.Type) int {
	switch typ.Kind {
	case ast.TypeInt:
		return t.IntSize
	case ast.TypeBool:
		return t.BoolSize
	case ast.TypeObject:
		return t.PtrSize
	default:
		panic(fmt.Sprintf("layout: type %s has no size", typ.String()))
	}
}

type targetFile struct {
	Sizes targetSizes `toml:"sizes"`
}

type targetSizes struct {
	Int     int `toml:"int"`
	Boolean int `toml:"boolean"`
	Pointer int `toml:"pointer"`
}

// LoadTargetFile reads a target description from a TOML file. The file may
// override any subset of the default sizes:
//
//	[sizes]
//	int = 4
//	boolean = 1
//	pointer = 8
//
// Keys that are absent keep their default value. Sizes must be positive.
func LoadTargetFile(path string) (Target, error) {
	var file targetFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return Target{}, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Target{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	target := Default()
	if meta.IsDefined("sizes", "int") {
		target.IntSize = file.Sizes.Int
	}
	if meta.IsDefined("sizes", "boolean") {
		target.BoolSize = file.Sizes.Boolean
	}
	if meta.IsDefined("sizes", "pointer") {
		target.PtrSize = file.Sizes.Pointer
	}
	if err := target.validate(); err != nil {
		return Target{}, fmt.Errorf("%s: %w", path, err)
	}
	return target, nil
}

func (t Target) validate() error {
	if t.IntSize <= 0 {
		return fmt.Errorf("int size must be positive, got %d", t.IntSize)
	}
	if t.BoolSize <= 0 {
		return fmt.Errorf("boolean size must be positive, got %d", t.BoolSize)
	}
	if t.PtrSize <= 0 {
		return fmt.Errorf("pointer size must be positive, got %d", t.PtrSize)
	}
	return nil
}
