package schema

import (
	"fmt"
	"strings"
)

// ToString renders t in a human form close to TypeScript source syntax. When
// t.Name is set, the name is printed instead of the structural form — this
// is what lets aliases like "CreateUserDto" print as themselves rather than
// their full field list. When short is true, interfaces render on one line
// using "; " between fields; otherwise fields are laid out one per line
// using Indent for nesting.
func ToString(t *TypeNode, short bool) string {
	if t.Name != "" && t.Kind != KindReference {
		return t.Name
	}

	switch t.Kind {
	case KindString:
		if t.SpecialName != "" {
			return t.SpecialName
		}
		return "string"
	case KindNumber:
		if t.SpecialName != "" {
			return t.SpecialName
		}
		return "number"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindUnknown:
		return "unknown"
	case KindStringLiteral:
		return fmt.Sprintf("'%v'", t.Value)
	case KindNumberLiteral, KindBoolLiteral:
		return fmt.Sprintf("%v", t.Value)
	case KindArray:
		return fmt.Sprintf("Array<%s>", ToString(t.ElementType, short))
	case KindInterface:
		return interfaceToString(t, short)
	case KindUnion:
		return joinMembers(t.UnionMembers, " | ", short)
	case KindIntersection:
		return joinMembers(t.IntersectionMembers, " & ", short)
	case KindMapped:
		inner := fmt.Sprintf("Record<%s, %s>", ToString(t.MapFrom, short), ToString(t.MapTo, short))
		if t.Optional {
			return fmt.Sprintf("Partial<%s>", inner)
		}
		return inner
	case KindIndexSignature:
		return fmt.Sprintf("{ [key: %s]: %s }", ToString(t.KeyType, short), ToString(t.ValueType, short))
	case KindOmit:
		return fmt.Sprintf("Omit<%s, %s>", ToString(t.Base, short), joinQuoted(t.OmittedFields))
	case KindKeyof:
		return fmt.Sprintf("keyof %s", ToString(t.Base, short))
	case KindPartial:
		return fmt.Sprintf("Partial<%s>", ToString(t.ElementType, short))
	case KindReference:
		return t.ReferencedTypeName
	default:
		return string(t.Kind)
	}
}

func joinMembers(members []TypeNode, sep string, short bool) string {
	parts := make([]string, len(members))
	for i := range members {
		parts[i] = ToString(&members[i], short)
	}
	return strings.Join(parts, sep)
}

func joinQuoted(values []string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("'%s'", v)
	}
	return strings.Join(parts, " | ")
}

func interfaceToString(t *TypeNode, short bool) string {
	if len(t.Fields) == 0 && len(t.Heritage) == 0 {
		return "{}"
	}

	fieldStrs := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		opt := ""
		if f.Optional {
			opt = "?"
		}
		fieldStrs[i] = fmt.Sprintf("%s%s: %s", f.Name, opt, ToString(&f.Type, short))
	}

	var body string
	if short {
		body = "{ " + strings.Join(fieldStrs, "; ") + " }"
	} else {
		lines := make([]string, len(fieldStrs))
		for i, f := range fieldStrs {
			lines[i] = "  " + Indent(f)
		}
		body = "{\n" + strings.Join(lines, "\n") + "\n}"
	}

	if len(t.Heritage) == 0 {
		return body
	}
	bases := make([]string, len(t.Heritage))
	for i, h := range t.Heritage {
		bases[i] = h.ReferencedTypeName
	}
	return body + " & " + strings.Join(bases, " & ")
}
