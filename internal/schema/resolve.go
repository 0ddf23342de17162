package schema

import "github.com/shapecheck/shapecheck/internal/schemaerr"

// Resolve chases reference-type chains in t until it reaches a non-reference
// node. The returned node is a shallow copy of the final target with Name
// overwritten to the last reference name seen along the chain, so diagnostics
// can print the user-visible alias instead of the structural type.
//
// Resolve never mutates s or any node reachable from it.
func Resolve(s *Schema, t *TypeNode) (*TypeNode, error) {
	if t.Kind != KindReference {
		return t, nil
	}

	lastName := t.ReferencedTypeName
	current := t
	seen := map[string]bool{}
	for current.Kind == KindReference {
		name := current.ReferencedTypeName
		if seen[name] {
			// A reference cycle through bare reference-type nodes (not through
			// a structural node) cannot terminate; treat it the same as a
			// missing name since it can never resolve to data.
			return nil, &schemaerr.UndefinedReference{Name: name}
		}
		seen[name] = true
		target, ok := s.Types[name]
		if !ok {
			return nil, &schemaerr.UndefinedReference{Name: name}
		}
		lastName = name
		current = target
	}

	resolved := *current
	resolved.Name = lastName
	return &resolved, nil
}
