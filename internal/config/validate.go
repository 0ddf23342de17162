package config

import (
	"fmt"
	"strings"
)

// ValidationResult holds config validation results.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// ValidateDetailed performs thorough config validation with suggestions.
func (c *Config) ValidateDetailed() *ValidationResult {
	result := &ValidationResult{}

	if len(c.Sources.Include) == 0 {
		result.Errors = append(result.Errors, "sources.include: at least one pattern required")
	}
	for _, pattern := range c.Sources.Include {
		if !strings.Contains(pattern, "*") && !strings.HasSuffix(pattern, ".ts") {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("sources.include: pattern %q doesn't contain a wildcard or .ts extension — did you mean %q?", pattern, pattern+"/**/*.ts"))
		}
	}

	if c.Schema.Output == "" {
		result.Errors = append(result.Errors, "schema.output: must be set")
	} else if !strings.HasSuffix(c.Schema.Output, ".json") {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("schema.output: %q should have a .json extension", c.Schema.Output))
	}

	if c.Emit.PackageName != "" && !isValidGoIdentifier(c.Emit.PackageName) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("emit.packageName: %q is not a valid Go package name", c.Emit.PackageName))
	}

	return result
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func isValidGoIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit {
			return false
		}
	}
	return true
}
