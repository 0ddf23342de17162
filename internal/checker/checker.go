// Package checker implements the recursive conformance interpreter: the
// runtime counterpart of checkValueAgainstType, operating directly over a
// *schema.Schema instead of generated per-type code. It exists so schemas
// produced ahead of time (or hand-authored) can be validated without code
// generation, and it is what internal/emitter's generated AssertT functions
// call into at runtime.
package checker

import (
	"fmt"
	"strings"

	"github.com/shapecheck/shapecheck/internal/schema"
)

// Check reports whether value conforms to t within s. It returns "" on
// success. On failure it returns a multi-line diagnostic whose first line
// ends with "does not conform to <type>!", followed by a blank line and the
// specific reason, followed by zero or more "While checking ..." context
// lines, followed by an optional "value = ..." trailer (when the top-level
// value is an object or array) and an optional "_TYPE_ = ..." trailer (when
// the top-level type's structural description was too long to print inline).
//
// The returned error is non-nil only when t or s is malformed — an undefined
// reference, an index signature asked for its property set, a Partial over
// a non-interface, or similar. It is never returned for a value that merely
// fails to conform.
func Check(value any, t *schema.TypeNode, s *schema.Schema) (string, error) {
	cf, err := check(value, t, s, "value", 0, options{})
	if err != nil {
		return "", err
	}
	if cf == nil {
		return "", nil
	}

	resolved, err := schema.Resolve(s, t)
	if err != nil {
		return "", err
	}

	shortVal := shortValueDesc("value", value)
	shortTyp := shortTypeDesc(resolved, "_TYPE_")

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s does not conform to %s!\n\n%s", shortVal, shortTyp, cf.Message)

	if isObjectOrArrayValue(value) {
		fmt.Fprintf(&sb, "\nvalue = %s", prettyJSON(value))
	}
	if strings.Contains(sb.String(), "_TYPE_") {
		fmt.Fprintf(&sb, "\n_TYPE_ = %s", prettyJSON(resolved))
	}

	return sb.String(), nil
}
