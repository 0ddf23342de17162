package tsextract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/shapecheck/shapecheck/internal/schema"
)

// objectTypeFields lowers an interface body or object-type literal into a
// field list. A body containing an index signature is rejected with an
// error; objectType turns an object-type literal whose only member is an
// index signature into a KindIndexSignature node without calling this.
func (w *walker) objectTypeFields(body *sitter.Node) ([]schema.Field, error) {
	if body == nil {
		return nil, nil
	}
	var fields []schema.Field
	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(i)
		switch member.Type() {
		case "property_signature":
			f, err := w.propertySignature(member)
			if err != nil {
				return nil, err
			}
			fields = append(fields, *f)
		case "index_signature":
			return nil, fmt.Errorf("an interface with both named fields and an index signature is not supported")
		}
	}
	return fields, nil
}

func (w *walker) propertySignature(n *sitter.Node) (*schema.Field, error) {
	nameNode := n.ChildByFieldName("name")
	typeNode := n.ChildByFieldName("type")
	if nameNode == nil || typeNode == nil {
		return nil, fmt.Errorf("malformed property signature")
	}
	optional := false
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "?" {
			optional = true
		}
	}
	// type_annotation wraps the actual type node after the ":".
	inner := typeNode
	if typeNode.Type() == "type_annotation" && typeNode.ChildCount() > 0 {
		inner = typeNode.Child(int(typeNode.ChildCount()) - 1)
	}
	t, err := w.typeExpr(inner)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", w.text(nameNode), err)
	}
	comment := w.leadingComment(n)
	t.SpecialName, t.SpecialNameErrors = formatMarkersFrom(comment)
	t.Pattern, t.PatternError = patternMarkerFrom(comment)
	return &schema.Field{Name: unquoteIdent(w.text(nameNode)), Optional: optional, Type: *t}, nil
}

// typeExpr lowers a single type-expression node per spec §4.5.
func (w *walker) typeExpr(n *sitter.Node) (*schema.TypeNode, error) {
	if n == nil {
		return nil, fmt.Errorf("missing type expression")
	}
	switch n.Type() {
	case "parenthesized_type":
		return w.typeExpr(n.NamedChild(0))

	case "readonly_type":
		return w.typeExpr(n.NamedChild(0))

	case "predefined_type":
		switch w.text(n) {
		case "string":
			return &schema.TypeNode{Kind: schema.KindString}, nil
		case "number":
			return &schema.TypeNode{Kind: schema.KindNumber}, nil
		case "boolean":
			return &schema.TypeNode{Kind: schema.KindBoolean}, nil
		case "null":
			return &schema.TypeNode{Kind: schema.KindNull}, nil
		case "undefined":
			return &schema.TypeNode{Kind: schema.KindUndefined}, nil
		case "unknown", "any":
			return &schema.TypeNode{Kind: schema.KindUnknown}, nil
		default:
			return nil, fmt.Errorf("unsupported predefined type %q", w.text(n))
		}

	case "literal_type":
		return w.literalType(n)

	case "type_identifier":
		return &schema.TypeNode{Kind: schema.KindReference, ReferencedTypeName: w.text(n)}, nil

	case "array_type":
		elem, err := w.typeExpr(n.NamedChild(0))
		if err != nil {
			return nil, err
		}
		return &schema.TypeNode{Kind: schema.KindArray, ElementType: elem}, nil

	case "union_type":
		return w.combinedType(n, schema.KindUnion)

	case "intersection_type":
		return w.combinedType(n, schema.KindIntersection)

	case "object_type":
		return w.objectType(n)

	case "index_type_query": // keyof T
		base, err := w.typeExpr(n.NamedChild(0))
		if err != nil {
			return nil, err
		}
		return &schema.TypeNode{Kind: schema.KindKeyof, Base: base}, nil

	case "generic_type":
		return w.genericType(n)

	default:
		return nil, fmt.Errorf("unsupported type syntax %q", n.Type())
	}
}

func (w *walker) literalType(n *sitter.Node) (*schema.TypeNode, error) {
	child := n.NamedChild(0)
	if child == nil {
		return nil, fmt.Errorf("empty literal type")
	}
	switch child.Type() {
	case "string":
		return &schema.TypeNode{Kind: schema.KindStringLiteral, Value: unquoteString(w.text(child))}, nil
	case "number":
		f, err := strconv.ParseFloat(w.text(child), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number literal %q", w.text(child))
		}
		return &schema.TypeNode{Kind: schema.KindNumberLiteral, Value: f}, nil
	case "true", "false":
		return &schema.TypeNode{Kind: schema.KindBoolLiteral, Value: child.Type() == "true"}, nil
	default:
		return nil, fmt.Errorf("unsupported literal type %q", child.Type())
	}
}

// combinedType lowers union_type/intersection_type. Union members are
// sorted by printed form, matching the extractor's duplicate-insensitive,
// order-independent schema-diffing requirement in spec §4.5.
func (w *walker) combinedType(n *sitter.Node, kind schema.Kind) (*schema.TypeNode, error) {
	var members []schema.TypeNode
	for i := 0; i < int(n.NamedChildCount()); i++ {
		m, err := w.typeExpr(n.NamedChild(i))
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	if kind == schema.KindUnion {
		sort.Slice(members, func(i, j int) bool {
			return schema.ToString(&members[i], true) < schema.ToString(&members[j], true)
		})
		return &schema.TypeNode{Kind: schema.KindUnion, UnionMembers: members}, nil
	}
	if branded := brandedPrimitive(members); branded != nil {
		return branded, nil
	}
	return &schema.TypeNode{Kind: schema.KindIntersection, IntersectionMembers: members}, nil
}

// brandedPrimitive detects the `string & { _brand: 'X' }` branding idiom:
// a primitive intersected with a single-field interface literal whose
// field name starts with "_". Per spec §4.5 this lowers to the bare
// primitive — branding is a compile-time-only nominal-typing trick with no
// runtime-checkable content.
func brandedPrimitive(members []schema.TypeNode) *schema.TypeNode {
	if len(members) != 2 {
		return nil
	}
	for i := 0; i < 2; i++ {
		base := members[i]
		brand := members[1-i]
		switch base.Kind {
		case schema.KindString, schema.KindNumber, schema.KindBoolean:
		default:
			continue
		}
		if brand.Kind != schema.KindInterface || len(brand.Fields) != 1 || len(brand.Heritage) != 0 {
			continue
		}
		if strings.HasPrefix(brand.Fields[0].Name, "_") {
			result := base
			return &result
		}
	}
	return nil
}

// objectType lowers an inline `{ ... }` type literal: either a field list
// (same as an interface body) or, when it carries exactly one index
// signature and no named fields, a KindIndexSignature node.
func (w *walker) objectType(n *sitter.Node) (*schema.TypeNode, error) {
	var indexSig *sitter.Node
	var named int
	for i := 0; i < int(n.ChildCount()); i++ {
		switch n.Child(i).Type() {
		case "index_signature":
			indexSig = n.Child(i)
		case "property_signature":
			named++
		}
	}
	if indexSig != nil {
		if named > 0 {
			return nil, fmt.Errorf("an object type with both named fields and an index signature is not supported")
		}
		keyType := indexSig.ChildByFieldName("key")
		valueType := indexSig.ChildByFieldName("type")
		if keyType == nil || valueType == nil {
			return nil, fmt.Errorf("malformed index signature")
		}
		kt, err := w.typeExpr(keyType)
		if err != nil {
			kt = &schema.TypeNode{Kind: schema.KindString}
		}
		inner := valueType
		if valueType.Type() == "type_annotation" && valueType.ChildCount() > 0 {
			inner = valueType.Child(int(valueType.ChildCount()) - 1)
		}
		vt, err := w.typeExpr(inner)
		if err != nil {
			return nil, err
		}
		return &schema.TypeNode{Kind: schema.KindIndexSignature, KeyType: kt, ValueType: vt}, nil
	}

	fields, err := w.objectTypeFields(n)
	if err != nil {
		return nil, err
	}
	return &schema.TypeNode{Kind: schema.KindInterface, Fields: fields}, nil
}

// genericType lowers Array<T>, Partial<T>, Record<K,V>, Omit<T,K>, per
// spec §4.5. Any other generic instantiation is unsupported.
func (w *walker) genericType(n *sitter.Node) (*schema.TypeNode, error) {
	nameNode := n.ChildByFieldName("name")
	argsNode := n.ChildByFieldName("type_arguments")
	if nameNode == nil || argsNode == nil {
		return nil, fmt.Errorf("malformed generic type")
	}
	name := w.text(nameNode)
	var args []*sitter.Node
	for i := 0; i < int(argsNode.NamedChildCount()); i++ {
		args = append(args, argsNode.NamedChild(i))
	}

	switch name {
	case "Array":
		if len(args) != 1 {
			return nil, fmt.Errorf("Array<T> requires exactly one type argument")
		}
		elem, err := w.typeExpr(args[0])
		if err != nil {
			return nil, err
		}
		return &schema.TypeNode{Kind: schema.KindArray, ElementType: elem}, nil

	case "Partial":
		if len(args) != 1 {
			return nil, fmt.Errorf("Partial<T> requires exactly one type argument")
		}
		elem, err := w.typeExpr(args[0])
		if err != nil {
			return nil, err
		}
		if elem.Kind == schema.KindMapped {
			elem.Optional = true
			return elem, nil
		}
		return &schema.TypeNode{Kind: schema.KindPartial, ElementType: elem}, nil

	case "Record":
		if len(args) != 2 {
			return nil, fmt.Errorf("Record<K, V> requires exactly two type arguments")
		}
		from, err := w.typeExpr(args[0])
		if err != nil {
			return nil, err
		}
		to, err := w.typeExpr(args[1])
		if err != nil {
			return nil, err
		}
		return &schema.TypeNode{Kind: schema.KindMapped, MapFrom: from, MapTo: to}, nil

	case "Omit":
		if len(args) != 2 {
			return nil, fmt.Errorf("Omit<T, K> requires exactly two type arguments")
		}
		base, err := w.typeExpr(args[0])
		if err != nil {
			return nil, err
		}
		keys, err := w.literalKeysOf(args[1])
		if err != nil {
			return nil, fmt.Errorf("Omit's second argument must be a string literal or union of string literals: %w", err)
		}
		return &schema.TypeNode{Kind: schema.KindOmit, Base: base, OmittedFields: keys}, nil

	default:
		return nil, fmt.Errorf("unsupported generic type %q", name)
	}
}

// literalKeysOf extracts the string-literal values from a type node that
// is either a single string literal type or a union of them, for Omit's
// key argument.
func (w *walker) literalKeysOf(n *sitter.Node) ([]string, error) {
	switch n.Type() {
	case "literal_type":
		child := n.NamedChild(0)
		if child == nil || child.Type() != "string" {
			return nil, fmt.Errorf("not a string literal")
		}
		return []string{unquoteString(w.text(child))}, nil
	case "union_type":
		var out []string
		for i := 0; i < int(n.NamedChildCount()); i++ {
			keys, err := w.literalKeysOf(n.NamedChild(i))
			if err != nil {
				return nil, err
			}
			out = append(out, keys...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported key type %q", n.Type())
	}
}

func unquoteString(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

func unquoteIdent(raw string) string {
	if len(raw) >= 2 && (raw[0] == '\'' || raw[0] == '"') {
		return unquoteString(raw)
	}
	return raw
}

func (w *walker) leadingComment(n *sitter.Node) string {
	prev := n.PrevSibling()
	if (prev == nil || prev.Type() != "comment") && n.Parent() != nil && n.Parent().Type() == "export_statement" {
		// An exported declaration's comment precedes the wrapping
		// export_statement; the declaration's own sibling is `export`.
		prev = n.Parent().PrevSibling()
	}
	if prev == nil || prev.Type() != "comment" {
		return ""
	}
	return w.text(prev)
}

func hasIgnoreChangesMarker(comment string) bool {
	return strings.Contains(comment, "@ignoreChanges")
}
