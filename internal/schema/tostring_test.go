package schema

import "testing"

func TestToString_Primitives(t *testing.T) {
	cases := []struct {
		node *TypeNode
		want string
	}{
		{&TypeNode{Kind: KindString}, "string"},
		{&TypeNode{Kind: KindNumber}, "number"},
		{&TypeNode{Kind: KindBoolean}, "boolean"},
		{&TypeNode{Kind: KindNull}, "null"},
		{&TypeNode{Kind: KindUndefined}, "undefined"},
		{&TypeNode{Kind: KindStringLiteral, Value: "active"}, "'active'"},
		{&TypeNode{Kind: KindNumberLiteral, Value: 3.0}, "3"},
	}
	for _, c := range cases {
		if got := ToString(c.node, true); got != c.want {
			t.Errorf("ToString(%v) = %q, want %q", c.node.Kind, got, c.want)
		}
	}
}

func TestToString_NamedTypePrintsAlias(t *testing.T) {
	n := &TypeNode{Kind: KindInterface, Name: "Widget", Fields: []Field{
		{Name: "id", Type: TypeNode{Kind: KindString}},
	}}
	if got := ToString(n, true); got != "Widget" {
		t.Fatalf("expected alias name, got %q", got)
	}
}

func TestToString_UnionShort(t *testing.T) {
	u := &TypeNode{Kind: KindUnion, UnionMembers: []TypeNode{
		{Kind: KindString}, {Kind: KindNumber},
	}}
	if got := ToString(u, true); got != "string | number" {
		t.Fatalf("unexpected union rendering: %q", got)
	}
}

func TestToString_HeritageAppendsBases(t *testing.T) {
	n := &TypeNode{
		Kind:     KindInterface,
		Fields:   []Field{{Name: "id", Type: TypeNode{Kind: KindString}}},
		Heritage: []Reference{{ReferencedTypeName: "Base"}},
	}
	got := ToString(n, true)
	want := "{ id: string } & Base"
	if got != want {
		t.Fatalf("ToString = %q, want %q", got, want)
	}
}

func TestToString_PartialMapped(t *testing.T) {
	n := &TypeNode{
		Kind:     KindMapped,
		MapFrom:  &TypeNode{Kind: KindString},
		MapTo:    &TypeNode{Kind: KindNumber},
		Optional: true,
	}
	got := ToString(n, true)
	want := "Partial<Record<string, number>>"
	if got != want {
		t.Fatalf("ToString = %q, want %q", got, want)
	}
}

func TestToString_Omit(t *testing.T) {
	n := &TypeNode{
		Kind:          KindOmit,
		Base:          &TypeNode{Name: "Widget", Kind: KindInterface},
		OmittedFields: []string{"id", "secret"},
	}
	got := ToString(n, true)
	want := "Omit<Widget, 'id' | 'secret'>"
	if got != want {
		t.Fatalf("ToString = %q, want %q", got, want)
	}
}
