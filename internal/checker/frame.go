package checker

import (
	"fmt"
	"strings"

	"github.com/shapecheck/shapecheck/internal/checkfail"
	"github.com/shapecheck/shapecheck/internal/format"
	"github.com/shapecheck/shapecheck/internal/property"
	"github.com/shapecheck/shapecheck/internal/schema"
	"github.com/shapecheck/shapecheck/internal/schemaerr"
)

// check is the recursive conformance frame. It resolves t, dispatches on its
// kind, and returns a non-nil *checkfail.CheckFailure when value does not
// conform. A non-nil error instead indicates a malformed schema and must
// propagate unwrapped to the caller.
func check(value any, t *schema.TypeNode, s *schema.Schema, valuePath string, depth int, opts options) (*checkfail.CheckFailure, error) {
	resolved, err := schema.Resolve(s, t)
	if err != nil {
		return nil, err
	}

	switch resolved.Kind {
	case schema.KindUnknown:
		return nil, nil

	case schema.KindString:
		return checkString(value, resolved, valuePath)

	case schema.KindNumber:
		if _, ok := asNumber(value); !ok {
			return jsTypeMismatch(value, "number"), nil
		}
		return nil, nil

	case schema.KindBoolean:
		if _, ok := value.(bool); !ok {
			return jsTypeMismatch(value, "boolean"), nil
		}
		return nil, nil

	case schema.KindNull:
		if value != nil {
			return checkfail.New("Expected null, but got %s", shortValueRepr(value)), nil
		}
		return nil, nil

	case schema.KindUndefined:
		if !isUndefined(value) {
			return checkfail.New("Expected undefined, but got %s", shortValueRepr(value)), nil
		}
		return nil, nil

	case schema.KindStringLiteral:
		sv, ok := value.(string)
		if !ok {
			return jsTypeMismatch(value, "string"), nil
		}
		lit, _ := resolved.Value.(string)
		if sv != lit {
			return checkfail.New("Expected string literal '%s', but got '%s'", lit, sv), nil
		}
		return nil, nil

	case schema.KindNumberLiteral:
		n, ok := asNumber(value)
		if !ok {
			return jsTypeMismatch(value, "number"), nil
		}
		lit := toFloat(resolved.Value)
		if n != lit {
			return checkfail.New("Expected number literal %v, but got %v", lit, n), nil
		}
		return nil, nil

	case schema.KindBoolLiteral:
		b, ok := value.(bool)
		if !ok {
			return jsTypeMismatch(value, "boolean"), nil
		}
		lit, _ := resolved.Value.(bool)
		if b != lit {
			return checkfail.New("Expected boolean literal %v, but got %v", lit, b), nil
		}
		return nil, nil

	case schema.KindArray:
		return checkArray(value, resolved, s, valuePath, depth, opts)

	case schema.KindInterface:
		return checkInterface(value, resolved, s, valuePath, depth, opts)

	case schema.KindIntersection:
		return checkIntersection(value, resolved, s, valuePath, depth, opts)

	case schema.KindMapped:
		return checkMapped(value, resolved, s, valuePath, depth, opts)

	case schema.KindIndexSignature:
		return checkIndexSignature(value, resolved, s, valuePath, depth, opts)

	case schema.KindOmit:
		newOpts := opts.withIgnored(resolved.OmittedFields)
		return recurseSameValue(value, resolved.Base, s, valuePath, depth, newOpts)

	case schema.KindKeyof:
		return checkKeyof(value, resolved, s, valuePath)

	case schema.KindPartial:
		elem, err := schema.Resolve(s, resolved.ElementType)
		if err != nil {
			return nil, err
		}
		if elem.Kind != schema.KindInterface {
			return nil, &schemaerr.PartialOnNonInterface{TypeDescription: schema.ToString(elem, true)}
		}
		return check(value, elem, s, valuePath, depth, opts.asPartial())

	case schema.KindUnion:
		return checkUnion(value, resolved, s, valuePath, depth, opts)

	case schema.KindReference:
		// Resolve always eliminates reference nodes; reaching one here means
		// the schema references a name that chases back to another reference
		// forever, which Resolve already rejects. Defensive only.
		return nil, &schemaerr.UndefinedReference{Name: resolved.ReferencedTypeName}

	default:
		return nil, schema.ErrUnknownKind(resolved.Kind)
	}
}

func jsTypeMismatch(value any, want string) *checkfail.CheckFailure {
	return checkfail.New("Expected Javascript type %s, but got type %s", want, jsTypeOf(value))
}

func checkString(value any, resolved *schema.TypeNode, valuePath string) (*checkfail.CheckFailure, error) {
	sv, ok := value.(string)
	if !ok {
		return jsTypeMismatch(value, "string"), nil
	}
	if resolved.Pattern != "" {
		ok, err := matchesPattern(resolved.Pattern, sv)
		if err != nil {
			return nil, err
		}
		if !ok {
			reason := resolved.PatternError
			if reason == "" {
				reason = fmt.Sprintf("expected a string matching pattern %s", resolved.Pattern)
			}
			return checkfail.New("%s does not match required pattern: %s (got %s)", valuePath, reason, shortValueRepr(value)), nil
		}
	}
	if resolved.SpecialName == "" {
		return nil, nil
	}
	reason, err := format.Validate(resolved.SpecialName, sv)
	if err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, nil
	}
	if custom, ok := resolved.SpecialNameErrors[resolved.SpecialName]; ok && custom != "" {
		reason = custom
	}
	return checkfail.New("%s is not a valid %s: %s (got %s)", valuePath, resolved.SpecialName, reason, shortValueRepr(value)), nil
}

func checkArray(value any, resolved *schema.TypeNode, s *schema.Schema, valuePath string, depth int, opts options) (*checkfail.CheckFailure, error) {
	arr, ok := value.([]any)
	if !ok {
		return checkfail.New("Expected an array, but got type %s", jsTypeOf(value)), nil
	}
	for i, elem := range arr {
		elemPath := fmt.Sprintf("%s[%d]", valuePath, i)
		cf, err := recurseSameValue(elem, resolved.ElementType, s, elemPath, depth+1, opts.stripPartial())
		if err != nil {
			return nil, err
		}
		if cf != nil {
			return cf, nil
		}
	}
	return nil, nil
}

func checkInterface(value any, resolved *schema.TypeNode, s *schema.Schema, valuePath string, depth int, opts options) (*checkfail.CheckFailure, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return checkfail.New("Expected an object, but got type %s", jsTypeOf(value)), nil
	}

	for i := range resolved.Fields {
		f := &resolved.Fields[i]
		if opts.ignores(f.Name) {
			continue
		}
		fv, present := obj[f.Name]
		missing := !present || isUndefined(fv)
		if missing {
			if f.Optional || opts.partial {
				continue
			}
			return checkfail.New("Missing required field '%s' of type %s", f.Name, shortTypeDesc(&f.Type, schema.ToString(&f.Type, true))), nil
		}
		fieldPath := fmt.Sprintf("%s['%s']", valuePath, f.Name)
		cf, err := recurseSameValue(fv, &f.Type, s, fieldPath, depth+1, opts.stripPartial())
		if err != nil {
			return nil, err
		}
		if cf != nil {
			return cf, nil
		}
	}

	for _, h := range resolved.Heritage {
		ref := &schema.TypeNode{Kind: schema.KindReference, ReferencedTypeName: h.ReferencedTypeName}
		cf, err := recurseSameValue(value, ref, s, valuePath, depth, opts)
		if err != nil {
			return nil, err
		}
		if cf != nil {
			return cf, nil
		}
	}
	return nil, nil
}

func checkIntersection(value any, resolved *schema.TypeNode, s *schema.Schema, valuePath string, depth int, opts options) (*checkfail.CheckFailure, error) {
	for i := range resolved.IntersectionMembers {
		m := &resolved.IntersectionMembers[i]
		cf, err := recurseSameValue(value, m, s, valuePath, depth, opts)
		if err != nil {
			return nil, err
		}
		if cf != nil {
			return cf, nil
		}
	}
	return nil, nil
}

func checkMapped(value any, resolved *schema.TypeNode, s *schema.Schema, valuePath string, depth int, opts options) (*checkfail.CheckFailure, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return checkfail.New("Expected an object, but got type %s", jsTypeOf(value)), nil
	}

	mapFrom, err := schema.Resolve(s, resolved.MapFrom)
	if err != nil {
		return nil, err
	}

	if mapFrom.Kind == schema.KindString && mapFrom.SpecialName == "" {
		for k, v := range obj {
			if opts.ignores(k) {
				continue
			}
			if isUndefined(v) {
				continue
			}
			fieldPath := fmt.Sprintf("%s['%s']", valuePath, k)
			cf, err := recurseSameValue(v, resolved.MapTo, s, fieldPath, depth+1, opts.stripPartial())
			if err != nil {
				return nil, err
			}
			if cf != nil {
				return cf, nil
			}
		}
		return nil, nil
	}

	keys, err := property.Of(s, resolved)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		if opts.ignores(k) {
			continue
		}
		v, present := obj[k]
		missing := !present || isUndefined(v)
		if missing {
			if resolved.Optional || opts.partial {
				continue
			}
			return checkfail.New("Missing required property '%s'", k), nil
		}
		fieldPath := fmt.Sprintf("%s['%s']", valuePath, k)
		cf, err := recurseSameValue(v, resolved.MapTo, s, fieldPath, depth+1, opts.stripPartial())
		if err != nil {
			return nil, err
		}
		if cf != nil {
			return cf, nil
		}
	}
	return nil, nil
}

func checkIndexSignature(value any, resolved *schema.TypeNode, s *schema.Schema, valuePath string, depth int, opts options) (*checkfail.CheckFailure, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return checkfail.New("Expected an object, but got type %s", jsTypeOf(value)), nil
	}
	for k, v := range obj {
		if opts.ignores(k) {
			continue
		}
		fieldPath := fmt.Sprintf("%s['%s']", valuePath, k)
		cf, err := recurseSameValue(v, resolved.ValueType, s, fieldPath, depth+1, opts.stripPartial())
		if err != nil {
			return nil, err
		}
		if cf != nil {
			return cf, nil
		}
	}
	return nil, nil
}

func checkKeyof(value any, resolved *schema.TypeNode, s *schema.Schema, valuePath string) (*checkfail.CheckFailure, error) {
	str, ok := value.(string)
	if !ok {
		return jsTypeMismatch(value, "string"), nil
	}
	base, err := schema.Resolve(s, resolved.Base)
	if err != nil {
		return nil, err
	}
	keys, err := property.Of(s, base)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		if k == str {
			return nil, nil
		}
	}
	return checkfail.New("Expected one of [%s], but got '%s'", joinQuoted(keys), str), nil
}

func checkUnion(value any, resolved *schema.TypeNode, s *schema.Schema, valuePath string, depth int, opts options) (*checkfail.CheckFailure, error) {
	if schema.IsEnum(resolved) {
		str, ok := value.(string)
		if !ok {
			return jsTypeMismatch(value, "string"), nil
		}
		values := schema.EnumValues(resolved)
		for _, v := range values {
			if v == str {
				return nil, nil
			}
		}
		return checkfail.New("Expected one of [%s], but got '%s'", joinQuoted(values), str), nil
	}

	if len(resolved.Kinds) > 0 {
		return checkDiscriminatedUnion(value, resolved, s, valuePath, depth, opts)
	}

	var attempts []string
	for i := range resolved.UnionMembers {
		member := &resolved.UnionMembers[i]
		cf, err := check(value, member, s, valuePath, depth+1, opts)
		if err != nil {
			return nil, err
		}
		if cf == nil {
			return nil, nil
		}
		attempts = append(attempts, cf.Message)
	}

	var sb strings.Builder
	sb.WriteString("No union member matches:")
	for i, msg := range attempts {
		sb.WriteString(fmt.Sprintf("\n- tried %s union member, but got:\n  %s", ordinal(i+1), schema.Indent(msg)))
	}
	return checkfail.New("%s", sb.String()), nil
}

func checkDiscriminatedUnion(value any, resolved *schema.TypeNode, s *schema.Schema, valuePath string, depth int, opts options) (*checkfail.CheckFailure, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return checkfail.New("Expected an object, but got type %s", jsTypeOf(value)), nil
	}
	kindVal, present := obj["kind"]
	if !present || isUndefined(kindVal) {
		return checkfail.New("Missing discriminator property 'kind'"), nil
	}
	kindStr, ok := kindVal.(string)
	if !ok {
		return checkfail.New("Discriminator 'kind' must be a string, but got type %s", jsTypeOf(kindVal)), nil
	}

	matched := false
	for _, k := range resolved.Kinds {
		if k == kindStr {
			matched = true
			break
		}
	}
	if !matched {
		return checkfail.New("Expected discriminator 'kind' to be one of [%s], but got '%s'", joinQuoted(resolved.Kinds), kindStr), nil
	}

	for i := range resolved.UnionMembers {
		member := &resolved.UnionMembers[i]
		memberResolved, err := schema.Resolve(s, member)
		if err != nil {
			return nil, err
		}
		if memberResolved.Kind != schema.KindInterface {
			continue
		}
		var kindField *schema.Field
		for fi := range memberResolved.Fields {
			if memberResolved.Fields[fi].Name == "kind" {
				kindField = &memberResolved.Fields[fi]
				break
			}
		}
		if kindField == nil || kindField.Optional || kindField.Type.Kind != schema.KindStringLiteral {
			continue
		}
		lit, _ := kindField.Type.Value.(string)
		if lit == kindStr {
			return recurseSameValue(value, member, s, valuePath, depth, opts)
		}
	}

	// The kinds cache and the union's members disagreed; this is a schema
	// inconsistency, not a value failure.
	return nil, &schemaerr.UndefinedReference{Name: kindStr}
}

// recurseSameValue checks value at valuePath against target and, on failure,
// wraps it with a "While checking ..." line naming the sub-value and the
// sub-type being delegated to. Used both at type-boundary delegations where
// the value stays the same and only the type changes (heritage, intersection
// members, Omit's base, discriminated union members) and at container
// descent where a child value gets its own child path (array elements,
// interface/mapped/index-signature fields) — in both cases the wrap is what
// lets the sub-value's path surface in the composed diagnostic.
func recurseSameValue(value any, target *schema.TypeNode, s *schema.Schema, valuePath string, depth int, opts options) (*checkfail.CheckFailure, error) {
	cf, err := check(value, target, s, valuePath, depth, opts)
	if err != nil {
		return nil, err
	}
	if cf == nil {
		return nil, nil
	}
	resolvedTarget, err := schema.Resolve(s, target)
	if err != nil {
		return nil, err
	}
	typeDesc := shortTypeDesc(resolvedTarget, schema.ToString(resolvedTarget, true))
	return checkfail.Wrap(cf, shortValueDesc(valuePath, value), typeDesc), nil
}

func joinQuoted(values []string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = "'" + v + "'"
	}
	return strings.Join(parts, ", ")
}
