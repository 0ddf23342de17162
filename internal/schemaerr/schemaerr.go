// Package schemaerr defines the error types that indicate a malformed schema
// or an invalid caller request, as opposed to a value that fails to conform.
// These are distinct from checkfail.CheckFailure and are meant to propagate
// out of the checker unchanged — they signal bugs, not conformance failures.
package schemaerr

import "fmt"

// UndefinedReference is raised when a reference-type names a type that is
// not present in the schema.
type UndefinedReference struct {
	Name string
}

func (e *UndefinedReference) Error() string {
	return fmt.Sprintf("undefined reference: %q", e.Name)
}

// OpenPropertySet is raised when computePropertiesOfType is asked for the
// property set of a type whose properties are not finite (an index
// signature, or a mapped type over an unrestricted string key).
type OpenPropertySet struct {
	TypeDescription string
}

func (e *OpenPropertySet) Error() string {
	return fmt.Sprintf("property set of %s is not finite", e.TypeDescription)
}

// PartialOnNonInterface is raised when a `partial` node's element does not
// resolve to an interface.
type PartialOnNonInterface struct {
	TypeDescription string
}

func (e *PartialOnNonInterface) Error() string {
	return fmt.Sprintf("Partial<%s> is invalid: element is not an interface", e.TypeDescription)
}

// UnsupportedMapFrom is raised when a mapped type's mapFrom does not reduce
// to string, a string-literal, or a union of string-literals.
type UnsupportedMapFrom struct {
	TypeDescription string
}

func (e *UnsupportedMapFrom) Error() string {
	return fmt.Sprintf("unsupported mapFrom: %s", e.TypeDescription)
}
