// Package property implements computePropertiesOfType from spec §4.2: the
// over-approximated set of property names a value of a given type may
// legally carry. It backs keyof evaluation and Omit-aware descent in the
// checker.
package property

import (
	"github.com/shapecheck/shapecheck/internal/schema"
	"github.com/shapecheck/shapecheck/internal/schemaerr"
)

// Of returns the property names of t, deduplicated preserving first
// occurrence. It fails with *schemaerr.OpenPropertySet when t's property
// set is not finite (an index signature, or a mapped type keyed by an
// unrestricted string).
func Of(s *schema.Schema, t *schema.TypeNode) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	if err := collect(s, t, &out, seen); err != nil {
		return nil, err
	}
	return out, nil
}

func add(name string, out *[]string, seen map[string]bool) {
	if seen[name] {
		return
	}
	seen[name] = true
	*out = append(*out, name)
}

func collect(s *schema.Schema, t *schema.TypeNode, out *[]string, seen map[string]bool) error {
	switch t.Kind {
	case schema.KindString, schema.KindNumber, schema.KindBoolean,
		schema.KindNull, schema.KindUndefined, schema.KindUnknown,
		schema.KindStringLiteral, schema.KindNumberLiteral, schema.KindBoolLiteral,
		schema.KindKeyof:
		return nil

	case schema.KindArray:
		add("length", out, seen)
		return nil

	case schema.KindReference:
		resolved, err := schema.Resolve(s, t)
		if err != nil {
			return err
		}
		return collect(s, resolved, out, seen)

	case schema.KindInterface:
		for i := range t.Fields {
			add(t.Fields[i].Name, out, seen)
		}
		for _, h := range t.Heritage {
			ref := schema.TypeNode{Kind: schema.KindReference, ReferencedTypeName: h.ReferencedTypeName}
			resolved, err := schema.Resolve(s, &ref)
			if err != nil {
				return err
			}
			if err := collect(s, resolved, out, seen); err != nil {
				return err
			}
		}
		return nil

	case schema.KindUnion:
		for i := range t.UnionMembers {
			if err := collect(s, &t.UnionMembers[i], out, seen); err != nil {
				return err
			}
		}
		return nil

	case schema.KindIntersection:
		for i := range t.IntersectionMembers {
			if err := collect(s, &t.IntersectionMembers[i], out, seen); err != nil {
				return err
			}
		}
		return nil

	case schema.KindPartial:
		return collect(s, t.ElementType, out, seen)

	case schema.KindOmit:
		baseProps, err := Of(s, t.Base)
		if err != nil {
			return err
		}
		omitted := make(map[string]bool, len(t.OmittedFields))
		for _, f := range t.OmittedFields {
			omitted[f] = true
		}
		for _, name := range baseProps {
			if !omitted[name] {
				add(name, out, seen)
			}
		}
		return nil

	case schema.KindMapped:
		mapFrom, err := schema.Resolve(s, t.MapFrom)
		if err != nil {
			return err
		}
		switch mapFrom.Kind {
		case schema.KindStringLiteral:
			if v, ok := mapFrom.Value.(string); ok {
				add(v, out, seen)
			}
			return nil
		case schema.KindUnion:
			if !schema.IsEnum(mapFrom) {
				return &schemaerr.UnsupportedMapFrom{TypeDescription: schema.ToString(mapFrom, true)}
			}
			for _, v := range schema.EnumValues(mapFrom) {
				add(v, out, seen)
			}
			return nil
		case schema.KindString:
			return &schemaerr.OpenPropertySet{TypeDescription: schema.ToString(t, true)}
		default:
			return &schemaerr.UnsupportedMapFrom{TypeDescription: schema.ToString(mapFrom, true)}
		}

	case schema.KindIndexSignature:
		return &schemaerr.OpenPropertySet{TypeDescription: schema.ToString(t, true)}

	default:
		return schema.ErrUnknownKind(t.Kind)
	}
}
