package emitter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shapecheck/shapecheck/internal/format"
	"github.com/shapecheck/shapecheck/internal/schema"
)

// Output is the pair of files the emitter produces for one schema, per
// spec §4.4: the canonical JSON form, and a Go source file exposing one
// AssertT entry point per named type plus one AssertFormat entry point per
// referenced built-in format.
type Output struct {
	SchemaJSON []byte
	GoSource   string
}

// Generate produces Output for s. packagePath is the import path the
// generated file uses to reach this module's checker and schema packages
// (the caller's own module path in every real invocation; parameterized
// here so generator tests don't depend on the module's own import path).
func Generate(packageName, packagePath string, s *schema.Schema) (*Output, error) {
	schemaJSON, err := schema.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("emitter: marshal schema: %w", err)
	}

	formats := referencedFormats(s)

	w := newLineWriter()
	w.Line("// Code generated by shapecheck. DO NOT EDIT.")
	w.Line("")
	w.Line("package %s", packageName)
	w.Blank()
	w.Line("import (")
	w.Line("\t\"fmt\"")
	w.Blank()
	w.Line("\t%q", packagePath+"/internal/checker")
	w.Line("\t%q", packagePath+"/internal/schema")
	w.Line(")")
	w.Blank()

	w.Line("var rawSchema = %s", goRawString(string(schemaJSON)))
	w.Blank()
	w.Line("var loadedSchema *schema.Schema")
	w.Blank()
	w.Block("func init()")
	w.Line("s, err := schema.Unmarshal([]byte(rawSchema))")
	w.Block("if err != nil")
	w.Line("panic(fmt.Sprintf(\"shapecheck: embedded schema failed to parse: %%v\", err))")
	w.EndBlock()
	w.Line("loadedSchema = s")
	w.EndBlock()
	w.Blank()

	for _, name := range s.AssertedTypes {
		fn := "Assert" + sanitizeIdent(name)
		w.Block("func %s(value any) (any, error)", fn)
		w.Line("t, ok := loadedSchema.Types[%q]", name)
		w.Block("if !ok")
		w.Line("return nil, fmt.Errorf(\"shapecheck: type %%q is not present in the embedded schema\", %q)", name)
		w.EndBlock()
		w.Line("msg, err := checker.Check(value, t, loadedSchema)")
		w.Block("if err != nil")
		w.Line("return nil, err")
		w.EndBlock()
		w.Block("if msg != \"\"")
		w.Line("return nil, fmt.Errorf(\"%%s\", msg)")
		w.EndBlock()
		w.Line("return value, nil")
		w.EndBlock()
		w.Blank()
	}

	for _, f := range formats {
		fn := "Assert" + sanitizeIdent(f)
		w.Block("func %s(value string) (any, error)", fn)
		w.Line("t := &schema.TypeNode{Kind: schema.KindString, SpecialName: %q}", f)
		w.Line("msg, err := checker.Check(value, t, loadedSchema)")
		w.Block("if err != nil")
		w.Line("return nil, err")
		w.EndBlock()
		w.Block("if msg != \"\"")
		w.Line("return nil, fmt.Errorf(\"%%s\", msg)")
		w.EndBlock()
		w.Line("return value, nil")
		w.EndBlock()
		w.Blank()
	}

	return &Output{SchemaJSON: schemaJSON, GoSource: w.String()}, nil
}

// goRawString renders s as a Go string literal, preferring a backtick raw
// string (matching the JSON's own readability) and falling back to a
// double-quoted literal if s itself contains a backtick.
func goRawString(s string) string {
	if !strings.Contains(s, "`") {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}

// sanitizeIdent converts a TypeScript type name into a Go exported
// identifier suffix. Type names accepted by the extractor are already
// valid TypeScript identifiers (letters, digits, underscore, not
// leading-digit), which are already valid as a Go identifier suffix.
func sanitizeIdent(name string) string {
	return name
}

// referencedFormats returns the distinct built-in format names used
// anywhere in s, sorted for deterministic output.
func referencedFormats(s *schema.Schema) []string {
	seen := map[string]bool{}
	for _, t := range s.Types {
		walkFormats(t, seen)
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func walkFormats(t *schema.TypeNode, seen map[string]bool) {
	if t == nil {
		return
	}
	if t.Kind == schema.KindString && t.SpecialName != "" && format.Known(t.SpecialName) {
		seen[t.SpecialName] = true
	}
	walkFormats(t.ElementType, seen)
	for i := range t.Fields {
		walkFormats(&t.Fields[i].Type, seen)
	}
	for i := range t.UnionMembers {
		walkFormats(&t.UnionMembers[i], seen)
	}
	for i := range t.IntersectionMembers {
		walkFormats(&t.IntersectionMembers[i], seen)
	}
	walkFormats(t.MapFrom, seen)
	walkFormats(t.MapTo, seen)
	walkFormats(t.KeyType, seen)
	walkFormats(t.ValueType, seen)
	walkFormats(t.Base, seen)
}
