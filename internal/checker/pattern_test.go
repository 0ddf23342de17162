package checker

import (
	"strings"
	"testing"

	"github.com/shapecheck/shapecheck/internal/schema"
)

func TestCheckString_PatternMatch(t *testing.T) {
	s := schema.NewSchema()
	s.Types["Code"] = &schema.TypeNode{Kind: schema.KindString, Pattern: `^[A-Z]{2}\d{4}$`}

	got := mustCheck(t, "AB1234", "Code", s)
	if got != "" {
		t.Fatalf("expected no diagnostic for a matching value, got %q", got)
	}
}

func TestCheckString_PatternMismatchUsesCustomMessage(t *testing.T) {
	s := schema.NewSchema()
	s.Types["Code"] = &schema.TypeNode{
		Kind:         schema.KindString,
		Pattern:      `^[A-Z]{2}\d{4}$`,
		PatternError: "must look like AB1234",
	}

	got := mustCheck(t, "nope", "Code", s)
	if got == "" {
		t.Fatal("expected a diagnostic for a non-matching value")
	}
	if !strings.Contains(got, "must look like AB1234") {
		t.Fatalf("expected custom pattern error message, got %q", got)
	}
}

func TestCheckString_PatternMismatchDefaultMessage(t *testing.T) {
	s := schema.NewSchema()
	s.Types["Code"] = &schema.TypeNode{Kind: schema.KindString, Pattern: `^[A-Z]{2}\d{4}$`}

	got := mustCheck(t, "nope", "Code", s)
	if got == "" {
		t.Fatal("expected a diagnostic for a non-matching value")
	}
	if !strings.Contains(got, "pattern") {
		t.Fatalf("expected the default message to mention the pattern, got %q", got)
	}
}

func TestCheckString_PatternRequiresFullMatch(t *testing.T) {
	s := schema.NewSchema()
	s.Types["Code"] = &schema.TypeNode{Kind: schema.KindString, Pattern: `[A-Z]{2}`}

	got := mustCheck(t, "ABxyz", "Code", s)
	if got == "" {
		t.Fatal("expected a partial match to still fail since the pattern must match the whole value")
	}
}

func TestCheckString_PatternWithLookahead(t *testing.T) {
	s := schema.NewSchema()
	// Requires at least one digit anywhere in the string — only expressible
	// with lookahead, which is why @pattern compiles with regexp2 rather
	// than the standard library's regexp.
	s.Types["Password"] = &schema.TypeNode{Kind: schema.KindString, Pattern: `(?=.*\d).{4,}`}

	if got := mustCheck(t, "abc1", "Password", s); got != "" {
		t.Fatalf("expected match, got diagnostic %q", got)
	}
	if got := mustCheck(t, "abcd", "Password", s); got == "" {
		t.Fatal("expected no-digit password to fail")
	}
}
