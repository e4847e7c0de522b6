package layout

import "fmt"

// LookupKind discriminates what a failed layout query was searching for.
type LookupKind int

const (
	// LookupClass means a class name was not present in the table.
	LookupClass LookupKind = iota + 1
	// LookupField means a field was not found on a class or any ancestor.
	LookupField
	// LookupMethod means a method was not found on a class or any ancestor.
	LookupMethod
)

// LookupError is returned by table and class queries when a name cannot be
// resolved. Kind says what was being looked for, Name is the missing name,
// and Class is the class the search started from (empty for class lookups).
type LookupError struct {
	Kind  LookupKind
	Name  string
	Class string
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case LookupClass:
		return fmt.Sprintf("layout: unknown class %q", e.Name)
	case LookupField:
		return fmt.Sprintf("layout: class %q has no field %q", e.Class, e.Name)
	case LookupMethod:
		return fmt.Sprintf("layout: class %q has no method %q", e.Class, e.Name)
	default:
		return fmt.Sprintf("layout: lookup failed for %q", e.Name)
	}
}
