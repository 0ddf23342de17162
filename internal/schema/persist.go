package schema

import (
	"bytes"
	"encoding/json"
	"sort"

	gojson "github.com/go-json-experiment/json"
)

// Marshal renders s in the canonical persisted form: stable (sorted) map
// key order and 2-space indentation. A sorted copy of AssertedTypes is
// encoded (s itself is left unchanged), matching the "sorted array of
// names" contract in §6.
func Marshal(s *Schema) ([]byte, error) {
	sorted := make([]string, len(s.AssertedTypes))
	copy(sorted, s.AssertedTypes)
	sort.Strings(sorted)

	out := struct {
		Types         map[string]*TypeNode `json:"types"`
		AssertedTypes []string             `json:"assertedTypes"`
	}{Types: s.Types, AssertedTypes: sorted}

	// gojson.Deterministic sorts map keys during encoding, giving the
	// stable key order the persisted form requires; the result is then
	// re-indented to the 2-space form with the standard library, since
	// gojson's own formatting knobs are intentionally left untouched here.
	compact, err := gojson.Marshal(out, gojson.Deterministic(true))
	if err != nil {
		return nil, err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, compact, "", "  "); err != nil {
		return nil, err
	}
	return pretty.Bytes(), nil
}

// Unmarshal decodes a persisted schema, tolerating and preserving any
// unknown keys on individual type nodes (see TypeNode.UnmarshalJSON).
func Unmarshal(data []byte) (*Schema, error) {
	var s Schema
	if err := gojson.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Types == nil {
		s.Types = make(map[string]*TypeNode)
	}
	PopulateKinds(&s)
	return &s, nil
}
