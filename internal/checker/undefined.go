package checker

// undefinedType is the Go stand-in for JavaScript's `undefined`, which is
// distinct from `null`. JSON has no undefined, so a decoded JSON value can
// never be Undefined; it exists so that Go callers constructing values by
// hand (or re-checking a value after stripping a key) can represent "this
// property is explicitly undefined" as opposed to "this property is absent".
type undefinedType struct{}

// Undefined is the sentinel value representing JavaScript's `undefined`.
var Undefined = undefinedType{}

func isUndefined(v any) bool {
	_, ok := v.(undefinedType)
	return ok
}

func isNullOrUndefined(v any) bool {
	return v == nil || isUndefined(v)
}
