package property

import (
	"reflect"
	"sort"
	"testing"

	"github.com/shapecheck/shapecheck/internal/schema"
	"github.com/shapecheck/shapecheck/internal/schemaerr"
)

func TestOf_Interface(t *testing.T) {
	s := schema.NewSchema()
	widget := &schema.TypeNode{
		Kind: schema.KindInterface,
		Fields: []schema.Field{
			{Name: "id", Type: schema.TypeNode{Kind: schema.KindString}},
			{Name: "count", Type: schema.TypeNode{Kind: schema.KindNumber}},
		},
	}
	got, err := Of(s, widget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"id", "count"}) {
		t.Fatalf("unexpected properties: %v", got)
	}
}

func TestOf_InterfaceWithHeritage(t *testing.T) {
	s := schema.NewSchema()
	s.Types["Base"] = &schema.TypeNode{
		Kind: schema.KindInterface,
		Fields: []schema.Field{
			{Name: "id", Type: schema.TypeNode{Kind: schema.KindString}},
		},
	}
	derived := &schema.TypeNode{
		Kind:     schema.KindInterface,
		Fields:   []schema.Field{{Name: "name", Type: schema.TypeNode{Kind: schema.KindString}}},
		Heritage: []schema.Reference{{ReferencedTypeName: "Base"}},
	}
	got, err := Of(s, derived)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Strings(got)
	want := []string{"id", "name"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected properties: %v", got)
	}
}

func TestOf_Array(t *testing.T) {
	s := schema.NewSchema()
	arr := &schema.TypeNode{Kind: schema.KindArray, ElementType: &schema.TypeNode{Kind: schema.KindString}}
	got, err := Of(s, arr)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"length"}) {
		t.Fatalf("unexpected properties: %v", got)
	}
}

func TestOf_Omit(t *testing.T) {
	s := schema.NewSchema()
	base := &schema.TypeNode{
		Kind: schema.KindInterface,
		Fields: []schema.Field{
			{Name: "id", Type: schema.TypeNode{Kind: schema.KindString}},
			{Name: "secret", Type: schema.TypeNode{Kind: schema.KindString}},
		},
	}
	omit := &schema.TypeNode{Kind: schema.KindOmit, Base: base, OmittedFields: []string{"secret"}}
	got, err := Of(s, omit)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"id"}) {
		t.Fatalf("unexpected properties: %v", got)
	}
}

func TestOf_MappedEnumKeyed(t *testing.T) {
	s := schema.NewSchema()
	mapped := &schema.TypeNode{
		Kind: schema.KindMapped,
		MapFrom: &schema.TypeNode{Kind: schema.KindUnion, UnionMembers: []schema.TypeNode{
			{Kind: schema.KindStringLiteral, Value: "a"},
			{Kind: schema.KindStringLiteral, Value: "b"},
		}},
		MapTo: &schema.TypeNode{Kind: schema.KindNumber},
	}
	got, err := Of(s, mapped)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected properties: %v", got)
	}
}

func TestOf_MappedUnrestrictedStringIsOpenPropertySet(t *testing.T) {
	s := schema.NewSchema()
	mapped := &schema.TypeNode{
		Kind:    schema.KindMapped,
		MapFrom: &schema.TypeNode{Kind: schema.KindString},
		MapTo:   &schema.TypeNode{Kind: schema.KindNumber},
	}
	_, err := Of(s, mapped)
	if err == nil {
		t.Fatal("expected OpenPropertySet error")
	}
	if _, ok := err.(*schemaerr.OpenPropertySet); !ok {
		t.Fatalf("expected *schemaerr.OpenPropertySet, got %T", err)
	}
}

func TestOf_IndexSignatureIsOpenPropertySet(t *testing.T) {
	s := schema.NewSchema()
	idx := &schema.TypeNode{
		Kind:      schema.KindIndexSignature,
		KeyType:   &schema.TypeNode{Kind: schema.KindString},
		ValueType: &schema.TypeNode{Kind: schema.KindNumber},
	}
	_, err := Of(s, idx)
	if err == nil {
		t.Fatal("expected OpenPropertySet error")
	}
	if _, ok := err.(*schemaerr.OpenPropertySet); !ok {
		t.Fatalf("expected *schemaerr.OpenPropertySet, got %T", err)
	}
}

func TestOf_UnionMergesMemberProperties(t *testing.T) {
	s := schema.NewSchema()
	u := &schema.TypeNode{Kind: schema.KindUnion, UnionMembers: []schema.TypeNode{
		{Kind: schema.KindInterface, Fields: []schema.Field{{Name: "a", Type: schema.TypeNode{Kind: schema.KindString}}}},
		{Kind: schema.KindInterface, Fields: []schema.Field{{Name: "b", Type: schema.TypeNode{Kind: schema.KindString}}}},
	}}
	got, err := Of(s, u)
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(got)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected properties: %v", got)
	}
}

func TestOf_PrimitivesHaveNoProperties(t *testing.T) {
	s := schema.NewSchema()
	for _, kind := range []schema.Kind{schema.KindString, schema.KindNumber, schema.KindBoolean, schema.KindNull, schema.KindUndefined} {
		got, err := Of(s, &schema.TypeNode{Kind: kind})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", kind, err)
		}
		if len(got) != 0 {
			t.Fatalf("%s: expected no properties, got %v", kind, got)
		}
	}
}
