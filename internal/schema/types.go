// Package schema defines the closed algebra of type nodes produced by the
// extractor and consumed by the property computer and the conformance
// checker. It also implements the schema-level operations that sit above
// the raw data: reference resolution, enum detection, and type-to-string
// rendering.
package schema

import (
	"encoding/json"
	"fmt"
)

// Kind tags the variant of a TypeNode. The algebra is closed: every switch
// over Kind in this module is meant to be exhaustive.
type Kind string

const (
	KindString        Kind = "string"
	KindNumber        Kind = "number"
	KindBoolean       Kind = "boolean"
	KindNull          Kind = "null"
	KindUndefined     Kind = "undefined"
	KindUnknown       Kind = "unknown"
	KindStringLiteral Kind = "string-literal"
	KindNumberLiteral Kind = "number-literal"
	KindBoolLiteral   Kind = "boolean-literal"
	KindArray         Kind = "array"
	KindInterface      Kind = "interface"
	KindUnion          Kind = "union"
	KindIntersection   Kind = "intersection"
	KindMapped         Kind = "mapped"
	KindIndexSignature Kind = "index-signature"
	KindOmit           Kind = "omit"
	KindKeyof          Kind = "keyof"
	KindPartial        Kind = "partial"
	KindReference      Kind = "reference-type"
)

// Field is one member of an interface's field list.
type Field struct {
	Name     string   `json:"name"`
	Optional bool     `json:"optional,omitempty"`
	Type     TypeNode `json:"type"`
}

// TypeNode is one node of the type algebra described in spec §3. All fields
// beyond Kind/Name/Filename/IgnoreChanges are kind-specific; only the ones
// relevant to Kind are populated by a well-formed schema.
type TypeNode struct {
	Kind Kind `json:"kind"`

	// Common, optional on every kind.
	Name          string `json:"name,omitempty"`
	Filename      string `json:"filename,omitempty"`
	IgnoreChanges bool   `json:"ignoreChanges,omitempty"`

	// string / number / boolean
	SpecialName string `json:"specialName,omitempty"`
	// SpecialNameErrors optionally overrides the default diagnostic message
	// of the named format validator. Additive extension over the base spec:
	// schemas that never set it behave exactly as specified.
	SpecialNameErrors map[string]string `json:"specialNameErrors,omitempty"`

	// string, in addition to SpecialName: an optional regular expression
	// (.NET/ECMAScript syntax, supporting lookaround, per regexp2) the
	// value must fully match. Additive extension over the base spec,
	// surfaced by the extractor's `@pattern` JSDoc tag.
	Pattern      string `json:"pattern,omitempty"`
	PatternError string `json:"patternError,omitempty"`

	// string-literal / number-literal / boolean-literal
	Value any `json:"value,omitempty"`

	// array
	ElementType *TypeNode `json:"elementType,omitempty"`

	// interface
	Fields   []Field     `json:"fields,omitempty"`
	Heritage []Reference `json:"heritage,omitempty"`

	// union
	UnionMembers []TypeNode `json:"unionMembers,omitempty"`
	Kinds        []string   `json:"kinds,omitempty"`

	// intersection
	IntersectionMembers []TypeNode `json:"intersectionMembers,omitempty"`

	// mapped
	MapFrom  *TypeNode `json:"mapFrom,omitempty"`
	MapTo    *TypeNode `json:"mapTo,omitempty"`
	Optional bool      `json:"optional,omitempty"`

	// index-signature
	KeyType   *TypeNode `json:"keyType,omitempty"`
	ValueType *TypeNode `json:"valueType,omitempty"`

	// omit
	Base           *TypeNode `json:"base,omitempty"`
	OmittedFields  []string  `json:"omittedFields,omitempty"`

	// keyof reuses Base above.

	// partial reuses ElementType above.

	// reference-type
	ReferencedTypeName string `json:"referencedTypeName,omitempty"`

	// extra preserves unknown keys so round-tripping a schema never drops
	// fields this version of the checker doesn't understand.
	extra map[string]json.RawMessage `json:"-"`
}

// Reference is a named reference to another type, used for interface
// heritage clauses.
type Reference struct {
	ReferencedTypeName string `json:"referencedTypeName"`
}

// Schema is a closed mapping from type name to TypeNode plus the ordered
// list of names the extractor was asked to assert.
type Schema struct {
	Types         map[string]*TypeNode `json:"types"`
	AssertedTypes []string             `json:"assertedTypes"`
}

// NewSchema returns an empty, ready-to-populate Schema.
func NewSchema() *Schema {
	return &Schema{Types: make(map[string]*TypeNode)}
}

// typeNodeAlias avoids infinite recursion in MarshalJSON/UnmarshalJSON.
type typeNodeAlias TypeNode

// MarshalJSON preserves unknown keys collected into extra alongside the
// known fields, per spec §6 ("Unknown keys on nodes must be tolerated and
// preserved").
func (t TypeNode) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(typeNodeAlias(t))
	if err != nil {
		return nil, err
	}
	if len(t.extra) == 0 {
		return known, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range t.extra {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes a TypeNode and stashes any key it does not
// recognize into extra so it survives a subsequent MarshalJSON.
func (t *TypeNode) UnmarshalJSON(data []byte) error {
	var alias typeNodeAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*t = TypeNode(alias)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, known := range knownTypeNodeKeys {
		delete(raw, known)
	}
	if len(raw) > 0 {
		t.extra = raw
	}
	return nil
}

var knownTypeNodeKeys = []string{
	"kind", "name", "filename", "ignoreChanges", "specialName",
	"specialNameErrors", "pattern", "patternError", "value", "elementType",
	"fields", "heritage", "unionMembers", "kinds", "intersectionMembers",
	"mapFrom", "mapTo", "optional", "keyType", "valueType", "base",
	"omittedFields", "referencedTypeName",
}

func (k Kind) String() string { return string(k) }

// ErrUnknownKind is returned by exhaustiveness-checking switches when a
// TypeNode carries a Kind outside the closed algebra.
func ErrUnknownKind(k Kind) error {
	return fmt.Errorf("schema: unknown type node kind %q", k)
}
