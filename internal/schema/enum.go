package schema

// IsEnum reports whether t is "enum-like": a single string-literal, or a
// union whose every member is a string-literal. t must already be resolved.
func IsEnum(t *TypeNode) bool {
	switch t.Kind {
	case KindStringLiteral:
		return true
	case KindUnion:
		if len(t.UnionMembers) == 0 {
			return false
		}
		for i := range t.UnionMembers {
			if t.UnionMembers[i].Kind != KindStringLiteral {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// EnumValues returns the literal string values of an enum-like node, in
// schema order. Callers must check IsEnum first; EnumValues on a
// non-enum-like node returns nil.
func EnumValues(t *TypeNode) []string {
	switch t.Kind {
	case KindStringLiteral:
		if s, ok := t.Value.(string); ok {
			return []string{s}
		}
		return nil
	case KindUnion:
		values := make([]string, 0, len(t.UnionMembers))
		for i := range t.UnionMembers {
			m := &t.UnionMembers[i]
			if m.Kind != KindStringLiteral {
				return nil
			}
			if s, ok := m.Value.(string); ok {
				values = append(values, s)
			}
		}
		return values
	default:
		return nil
	}
}
