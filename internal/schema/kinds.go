package schema

import "slices"

// PopulateKinds walks every type reachable from s and, for each union whose
// every resolved member is an interface carrying a non-optional string-literal
// "kind" field, caches the distinct literal values on that union node. This
// runs at schema-load time (not only at extraction time) so a hand-written
// or previously-persisted schema still gets the discriminated-union fast
// path described in spec §4.3.
func PopulateKinds(s *Schema) {
	visited := map[*TypeNode]bool{}
	for _, t := range s.Types {
		populateKindsIn(s, t, visited)
	}
}

func populateKindsIn(s *Schema, t *TypeNode, visited map[*TypeNode]bool) {
	if t == nil || visited[t] {
		return
	}
	visited[t] = true

	switch t.Kind {
	case KindArray, KindPartial:
		populateKindsIn(s, t.ElementType, visited)
	case KindInterface:
		for i := range t.Fields {
			populateKindsIn(s, &t.Fields[i].Type, visited)
		}
	case KindUnion:
		for i := range t.UnionMembers {
			populateKindsIn(s, &t.UnionMembers[i], visited)
		}
		t.Kinds = discriminantKinds(s, t)
	case KindIntersection:
		for i := range t.IntersectionMembers {
			populateKindsIn(s, &t.IntersectionMembers[i], visited)
		}
	case KindMapped:
		populateKindsIn(s, t.MapFrom, visited)
		populateKindsIn(s, t.MapTo, visited)
	case KindIndexSignature:
		populateKindsIn(s, t.KeyType, visited)
		populateKindsIn(s, t.ValueType, visited)
	case KindOmit, KindKeyof:
		populateKindsIn(s, t.Base, visited)
	}
}

// discriminantKinds returns the distinct "kind" literal values if t is a
// discriminated union, else nil. A discriminated union is one whose every
// resolved member is an interface with a non-optional field named "kind"
// of string-literal type.
func discriminantKinds(s *Schema, t *TypeNode) []string {
	if len(t.UnionMembers) == 0 {
		return nil
	}
	values := make([]string, 0, len(t.UnionMembers))
	for i := range t.UnionMembers {
		member := &t.UnionMembers[i]
		resolved := member
		if member.Kind == KindReference {
			r, err := Resolve(s, member)
			if err != nil {
				return nil
			}
			resolved = r
		}
		if resolved.Kind != KindInterface {
			return nil
		}
		var kindField *Field
		for i := range resolved.Fields {
			if resolved.Fields[i].Name == "kind" {
				kindField = &resolved.Fields[i]
				break
			}
		}
		if kindField == nil || kindField.Optional {
			return nil
		}
		if kindField.Type.Kind != KindStringLiteral {
			return nil
		}
		lit, ok := kindField.Type.Value.(string)
		if !ok {
			return nil
		}
		if !slices.Contains(values, lit) {
			values = append(values, lit)
		}
	}
	return values
}
