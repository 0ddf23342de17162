package schema

import (
	"strings"
	"testing"
)

func TestMarshalUnmarshal_RoundTrip(t *testing.T) {
	s := NewSchema()
	s.Types["Widget"] = &TypeNode{
		Kind: KindInterface,
		Name: "Widget",
		Fields: []Field{
			{Name: "id", Type: TypeNode{Kind: KindString}},
			{Name: "count", Type: TypeNode{Kind: KindNumber}},
		},
	}
	s.AssertedTypes = []string{"Widget"}

	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	w, ok := got.Types["Widget"]
	if !ok {
		t.Fatal("expected Widget type to survive round trip")
	}
	if w.Kind != KindInterface || len(w.Fields) != 2 {
		t.Fatalf("unexpected round-tripped type: %+v", w)
	}
	if len(got.AssertedTypes) != 1 || got.AssertedTypes[0] != "Widget" {
		t.Fatalf("unexpected asserted types: %v", got.AssertedTypes)
	}
}

func TestMarshal_IsDeterministic(t *testing.T) {
	s := NewSchema()
	s.Types["B"] = &TypeNode{Kind: KindString}
	s.Types["A"] = &TypeNode{Kind: KindNumber}
	s.AssertedTypes = []string{"B", "A"}

	first, err := Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatal("expected Marshal to be deterministic across calls")
	}

	idxA := strings.Index(string(first), `"A"`)
	idxB := strings.Index(string(first), `"B"`)
	if idxA == -1 || idxB == -1 || idxA > idxB {
		t.Fatalf("expected sorted key order A before B, got:\n%s", first)
	}
}

func TestMarshal_SortsAssertedTypes(t *testing.T) {
	s := NewSchema()
	s.Types["Z"] = &TypeNode{Kind: KindString}
	s.Types["A"] = &TypeNode{Kind: KindString}
	s.AssertedTypes = []string{"Z", "A"}

	data, err := Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.AssertedTypes) != 2 || got.AssertedTypes[0] != "A" || got.AssertedTypes[1] != "Z" {
		t.Fatalf("expected sorted assertedTypes [A Z], got %v", got.AssertedTypes)
	}
}
