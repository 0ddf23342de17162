package emitter

import (
	"strings"
	"testing"

	"github.com/shapecheck/shapecheck/internal/schema"
)

func sampleSchema() *schema.Schema {
	s := schema.NewSchema()
	s.Types["Widget"] = &schema.TypeNode{
		Kind: schema.KindInterface,
		Name: "Widget",
		Fields: []schema.Field{
			{Name: "id", Type: schema.TypeNode{Kind: schema.KindString, SpecialName: "Email"}},
			{Name: "count", Type: schema.TypeNode{Kind: schema.KindNumber}},
		},
	}
	s.AssertedTypes = []string{"Widget"}
	return s
}

func TestGenerate_EmitsAssertFunctionPerAssertedType(t *testing.T) {
	out, err := Generate("shapecheck", "github.com/shapecheck/shapecheck", sampleSchema())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.GoSource, "func AssertWidget(value any) (any, error)") {
		t.Fatalf("expected AssertWidget function, got:\n%s", out.GoSource)
	}
}

func TestGenerate_EmitsAssertFormatPerReferencedFormat(t *testing.T) {
	out, err := Generate("shapecheck", "github.com/shapecheck/shapecheck", sampleSchema())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.GoSource, "func AssertEmail(value string) (any, error)") {
		t.Fatalf("expected AssertEmail function, got:\n%s", out.GoSource)
	}
}

func TestGenerate_OmitsAssertFormatForUnreferencedFormats(t *testing.T) {
	out, err := Generate("shapecheck", "github.com/shapecheck/shapecheck", sampleSchema())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.GoSource, "func AssertUuid") {
		t.Fatalf("did not expect an AssertUuid function, got:\n%s", out.GoSource)
	}
}

func TestGenerate_PackageNameAndImportPath(t *testing.T) {
	out, err := Generate("gen", "example.com/myproj", sampleSchema())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.GoSource, "package gen") {
		t.Fatalf("expected package gen, got:\n%s", out.GoSource)
	}
	if !strings.Contains(out.GoSource, `"example.com/myproj/internal/checker"`) {
		t.Fatalf("expected checker import from the given package path, got:\n%s", out.GoSource)
	}
	if !strings.Contains(out.GoSource, `"example.com/myproj/internal/schema"`) {
		t.Fatalf("expected schema import from the given package path, got:\n%s", out.GoSource)
	}
}

func TestGenerate_SchemaJSONRoundTrips(t *testing.T) {
	s := sampleSchema()
	out, err := Generate("shapecheck", "github.com/shapecheck/shapecheck", s)
	if err != nil {
		t.Fatal(err)
	}
	got, err := schema.Unmarshal(out.SchemaJSON)
	if err != nil {
		t.Fatalf("unexpected error unmarshaling emitted schema JSON: %v", err)
	}
	widget, ok := got.Types["Widget"]
	if !ok || widget.Kind != schema.KindInterface || len(widget.Fields) != 2 {
		t.Fatalf("unexpected round-tripped Widget: %+v", widget)
	}
}

func TestGenerate_EmbedsRawSchemaAsBacktickLiteral(t *testing.T) {
	out, err := Generate("shapecheck", "github.com/shapecheck/shapecheck", sampleSchema())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.GoSource, "var rawSchema = `") {
		t.Fatalf("expected a backtick raw string literal for rawSchema, got:\n%s", out.GoSource)
	}
}

func TestGenerate_NoAssertedTypesStillProducesValidSource(t *testing.T) {
	s := schema.NewSchema()
	out, err := Generate("shapecheck", "github.com/shapecheck/shapecheck", s)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.GoSource, "func Assert") {
		t.Fatalf("expected no Assert functions for an empty schema, got:\n%s", out.GoSource)
	}
	if !strings.Contains(out.GoSource, "func init()") {
		t.Fatalf("expected the schema-loading init() to still be emitted, got:\n%s", out.GoSource)
	}
}

func TestLineWriter_IndentsNestedBlocks(t *testing.T) {
	w := newLineWriter()
	w.Block("func f()")
	w.Block("if true")
	w.Line("return")
	w.EndBlock()
	w.EndBlock()
	want := "func f() {\n\tif true {\n\t\treturn\n\t}\n}\n"
	if got := w.String(); got != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", got, want)
	}
}
