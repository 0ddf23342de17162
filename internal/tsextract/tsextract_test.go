package tsextract

import (
	"strings"
	"testing"

	"github.com/shapecheck/shapecheck/internal/schema"
)

func extractOne(t *testing.T, source string) *schema.Schema {
	t.Helper()
	s, err := Extract([]byte(source), "test.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestExtract_FileLevelMarkerOptsAllDeclarations(t *testing.T) {
	src := `// @shapecheckFile
export interface Widget {
  id: string;
  count: number;
}

export interface Gadget {
  name: string;
}
`
	s := extractOne(t, src)
	if len(s.AssertedTypes) != 2 {
		t.Fatalf("expected 2 asserted types, got %v", s.AssertedTypes)
	}
	widget, ok := s.Types["Widget"]
	if !ok {
		t.Fatal("expected Widget to be extracted")
	}
	if widget.Kind != schema.KindInterface || len(widget.Fields) != 2 {
		t.Fatalf("unexpected Widget: %+v", widget)
	}
}

func TestExtract_DeclarationMarkerOptsInWithoutFileMarker(t *testing.T) {
	src := `// @shapecheckAssert
export interface Widget {
  id: string;
}

export interface NotAsserted {
  id: string;
}
`
	s := extractOne(t, src)
	if len(s.AssertedTypes) != 1 || s.AssertedTypes[0] != "Widget" {
		t.Fatalf("expected only Widget asserted, got %v", s.AssertedTypes)
	}
}

func TestExtract_NoMarkerOptsNothingIn(t *testing.T) {
	src := `export interface Widget {
  id: string;
}
`
	s := extractOne(t, src)
	if len(s.AssertedTypes) != 0 {
		t.Fatalf("expected no asserted types without a marker, got %v", s.AssertedTypes)
	}
}

func TestExtract_IgnoreChangesOnlyWithDeclarationMarker(t *testing.T) {
	src := `/* @shapecheckAssert @ignoreChanges */
export interface Widget {
  id: string;
}
`
	s := extractOne(t, src)
	w := s.Types["Widget"]
	if w == nil {
		t.Fatal("expected Widget to be extracted")
	}
	if !w.IgnoreChanges {
		t.Fatal("expected IgnoreChanges to be set alongside the declaration marker")
	}
}

func TestExtract_HeritageClause(t *testing.T) {
	src := `// @shapecheckFile
export interface Base {
  id: string;
}
export interface Widget extends Base {
  name: string;
}
`
	s := extractOne(t, src)
	widget := s.Types["Widget"]
	if widget == nil || len(widget.Heritage) != 1 || widget.Heritage[0].ReferencedTypeName != "Base" {
		t.Fatalf("unexpected heritage: %+v", widget)
	}
}

func TestExtract_TypeAliasUnionSorted(t *testing.T) {
	src := `// @shapecheckFile
export type Status = 'zebra' | 'apple';
`
	s := extractOne(t, src)
	status := s.Types["Status"]
	if status == nil || status.Kind != schema.KindUnion {
		t.Fatalf("expected union type, got %+v", status)
	}
	if len(status.UnionMembers) != 2 {
		t.Fatalf("expected 2 union members, got %d", len(status.UnionMembers))
	}
	first, _ := status.UnionMembers[0].Value.(string)
	if first != "apple" {
		t.Fatalf("expected union members sorted by printed form, first=%q", first)
	}
}

func TestExtract_ArrayPartialRecordOmitKeyof(t *testing.T) {
	src := `// @shapecheckFile
export interface Widget {
  id: string;
  name: string;
}
export type Widgets = Array<Widget>;
export type PartialWidget = Partial<Widget>;
export type WidgetMap = Record<string, Widget>;
export type WidgetWithoutName = Omit<Widget, 'name'>;
export type WidgetKeys = keyof Widget;
`
	s := extractOne(t, src)

	if s.Types["Widgets"].Kind != schema.KindArray {
		t.Fatalf("expected array kind, got %v", s.Types["Widgets"].Kind)
	}
	if s.Types["PartialWidget"].Kind != schema.KindPartial {
		t.Fatalf("expected partial kind, got %v", s.Types["PartialWidget"].Kind)
	}
	if s.Types["WidgetMap"].Kind != schema.KindMapped {
		t.Fatalf("expected mapped kind, got %v", s.Types["WidgetMap"].Kind)
	}
	om := s.Types["WidgetWithoutName"]
	if om.Kind != schema.KindOmit || len(om.OmittedFields) != 1 || om.OmittedFields[0] != "name" {
		t.Fatalf("unexpected omit node: %+v", om)
	}
	if s.Types["WidgetKeys"].Kind != schema.KindKeyof {
		t.Fatalf("expected keyof kind, got %v", s.Types["WidgetKeys"].Kind)
	}
}

func TestExtract_PartialOfRecordSetsOptionalOnMapped(t *testing.T) {
	src := `// @shapecheckFile
export type MaybeScores = Partial<Record<string, number>>;
`
	s := extractOne(t, src)
	ms := s.Types["MaybeScores"]
	if ms.Kind != schema.KindMapped {
		t.Fatalf("expected Partial<Record<...>> to collapse to a mapped node, got %v", ms.Kind)
	}
	if !ms.Optional {
		t.Fatal("expected Optional=true on the mapped node")
	}
}

func TestExtract_ReadonlyAndParenthesizedAreTransparent(t *testing.T) {
	src := `// @shapecheckFile
export type R = readonly string[];
export type P = (string | number);
`
	s := extractOne(t, src)
	if s.Types["P"].Kind != schema.KindUnion {
		t.Fatalf("expected parenthesized union to unwrap, got %v", s.Types["P"].Kind)
	}
}

func TestExtract_BrandedPrimitiveCollapses(t *testing.T) {
	src := `// @shapecheckFile
export type UserId = string & { _brand: 'UserId' };
`
	s := extractOne(t, src)
	uid := s.Types["UserId"]
	if uid.Kind != schema.KindString {
		t.Fatalf("expected branded intersection to collapse to string, got %v", uid.Kind)
	}
}

func TestExtract_IndexSignature(t *testing.T) {
	src := `// @shapecheckFile
export type Scores = { [key: string]: number };
`
	s := extractOne(t, src)
	scores := s.Types["Scores"]
	if scores.Kind != schema.KindIndexSignature {
		t.Fatalf("expected index signature kind, got %v", scores.Kind)
	}
	if scores.ValueType.Kind != schema.KindNumber {
		t.Fatalf("unexpected value type: %+v", scores.ValueType)
	}
}

func TestExtract_BooleanLiteral(t *testing.T) {
	src := `// @shapecheckFile
export type AlwaysTrue = true;
`
	s := extractOne(t, src)
	lit := s.Types["AlwaysTrue"]
	if lit.Kind != schema.KindBoolLiteral || lit.Value != true {
		t.Fatalf("unexpected literal: %+v", lit)
	}
}

func TestExtract_GenericDeclarationRejected(t *testing.T) {
	src := `// @shapecheckFile
export interface Box<T> {
  value: T;
}
`
	_, err := Extract([]byte(src), "test.ts")
	if err == nil {
		t.Fatal("expected error for generic interface declaration")
	}
	if !strings.Contains(err.Error(), "generic") {
		t.Fatalf("expected error to mention generics, got: %v", err)
	}
}

func TestExtract_DuplicateNameRejected(t *testing.T) {
	src := `// @shapecheckFile
export interface Widget {
  id: string;
}
export type Widget = string;
`
	_, err := Extract([]byte(src), "test.ts")
	if err == nil {
		t.Fatal("expected error for duplicate type name")
	}
}

func TestExtract_FormatAndPatternAnnotations(t *testing.T) {
	src := `// @shapecheckFile
export interface Account {
  /**
   * @format Email
   */
  email: string;
  /**
   * @pattern /^[A-Z]{2}\d{4}$/ must look like AB1234
   */
  code: string;
}
`
	s := extractOne(t, src)
	account := s.Types["Account"]
	var email, code *schema.Field
	for i := range account.Fields {
		switch account.Fields[i].Name {
		case "email":
			email = &account.Fields[i]
		case "code":
			code = &account.Fields[i]
		}
	}
	if email == nil || email.Type.SpecialName != "Email" {
		t.Fatalf("expected email field to carry the Email format, got %+v", email)
	}
	if code == nil || code.Type.Pattern == "" {
		t.Fatalf("expected code field to carry a pattern, got %+v", code)
	}
	if code.Type.PatternError != "must look like AB1234" {
		t.Fatalf("unexpected pattern error message: %q", code.Type.PatternError)
	}
}
