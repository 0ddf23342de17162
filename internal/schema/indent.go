package schema

import "strings"

// Indent prefixes two spaces after every newline in s. It does not indent
// the first line — callers that need the first line indented too prepend
// "  " themselves before calling Indent on the remainder.
func Indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n  ")
}
