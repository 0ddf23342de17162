package tsextract

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/shapecheck/shapecheck/internal/format"
)

// fileLevelMarker reports whether the file's leading comment carries
// @shapecheckFile, opting every interface/type-alias declaration in the
// file into the schema.
func fileLevelMarker(comment string) bool {
	return strings.Contains(comment, "@shapecheckFile")
}

// declarationMarker reports whether a declaration's own leading comment
// carries @shapecheckAssert, opting just that declaration in regardless of
// the file-level marker.
func declarationMarker(comment string) bool {
	return strings.Contains(comment, "@shapecheckAssert")
}

// formatMarkerPattern recognizes a JSDoc `@format <Name>` tag, optionally
// followed on the same line by a custom error message for that format.
var formatMarkerPattern = regexp.MustCompile(`(?m)^\s*\*?\s*@format\s+(\S+)(?:[ \t]+(.+))?$`)

// formatMarkersFrom scans a field's leading JSDoc comment for a `@format`
// tag naming one of the closed built-in formats (spec §4.3.1), and an
// optional trailing custom error message — the additive `specialNameErrors`
// extension documented in SPEC_FULL.md.
func formatMarkersFrom(comment string) (string, map[string]string) {
	if comment == "" {
		return "", nil
	}
	m := formatMarkerPattern.FindStringSubmatch(comment)
	if m == nil {
		return "", nil
	}
	name := m[1]
	if !format.Known(name) {
		return "", nil
	}
	msg := strings.TrimSpace(m[2])
	if msg == "" {
		return name, nil
	}
	return name, map[string]string{name: msg}
}

// patternMarkerPattern recognizes a JSDoc `@pattern /regex/` tag, optionally
// followed by a custom error message shown when the pattern doesn't match.
var patternMarkerPattern = regexp.MustCompile(`(?m)^\s*\*?\s*@pattern\s+/(.+)/(?:[ \t]+(.+))?$`)

// patternMarkerFrom scans a field's leading JSDoc comment for a `@pattern`
// tag and validates the enclosed regular expression compiles under
// regexp2's syntax (the same engine the checker matches with), so a bad
// pattern fails at extraction time rather than on the first checked value.
// An invalid pattern is dropped rather than propagated as an extraction
// error, since it is an author mistake in an optional annotation, not a
// malformed type declaration.
func patternMarkerFrom(comment string) (string, string) {
	if comment == "" {
		return "", ""
	}
	m := patternMarkerPattern.FindStringSubmatch(comment)
	if m == nil {
		return "", ""
	}
	pattern := m[1]
	if _, err := regexp2.Compile(pattern, regexp2.None); err != nil {
		return "", ""
	}
	return pattern, strings.TrimSpace(m[2])
}
