package checker

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shapecheck/shapecheck/internal/schema"
)

// shortValueRepr renders a runtime value the way diagnostics quote it:
// JSON.stringify for objects/arrays, single-quoted for strings, and the raw
// textual form for everything else. undefined prints as "undefined", null
// as "null".
func shortValueRepr(v any) string {
	switch {
	case v == nil:
		return "null"
	case isUndefined(v):
		return "undefined"
	}
	switch t := v.(type) {
	case string:
		return "'" + t + "'"
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// shortValueDesc builds "<valuePath>" or "<valuePath> (aka. `<repr>`)",
// eliding the aka annotation once the repr reaches 40 characters — long
// enough that showing it inline would overwhelm the diagnostic.
func shortValueDesc(valuePath string, actual any) string {
	repr := shortValueRepr(actual)
	if len(repr) >= 40 {
		return valuePath
	}
	return fmt.Sprintf("%s (aka. `%s`)", valuePath, repr)
}

// shortTypeDesc renders t's declared name if set, else a short
// (single-line) structural rendering; if that structural rendering is both
// long and substantially longer than fallback, fallback is used instead.
// The top-level caller passes the literal sentinel "_TYPE_" as fallback so
// that Check can detect the fallback was used and append the full
// type as a trailer.
func shortTypeDesc(t *schema.TypeNode, fallback string) string {
	if t.Name != "" {
		return t.Name
	}
	s := schema.ToString(t, true)
	if fallback != "" && len(s) >= 40 && len(s) > len(fallback)+10 {
		return fallback
	}
	return s
}

// jsTypeOf reports the JavaScript-style typeof name for v, for use in
// JsTypeMismatch messages.
func jsTypeOf(v any) string {
	switch {
	case v == nil:
		return "object"
	case isUndefined(v):
		return "undefined"
	}
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64, float32:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "object"
	default:
		return "object"
	}
}

// prettyJSON renders v as indented JSON for the "value = ..." / "_TYPE_ =
// ..." trailers.
func prettyJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	out := buf.String()
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return out
}

func isObjectOrArrayValue(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}

// ordinal renders 1 as "1st", 2 as "2nd", 3 as "3rd", 4 as "4th", etc.
func ordinal(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return fmt.Sprintf("%dth", n)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}
