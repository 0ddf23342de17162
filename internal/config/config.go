// Package config loads the shapecheck project configuration: which source
// files to extract schemas from, and where to write the schema and its
// generated Go companion.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the shapecheck configuration.
type Config struct {
	Sources SourcesConfig `json:"sources"`
	Schema  SchemaConfig  `json:"schema"`
	Emit    EmitConfig    `json:"emit,omitempty"`
}

// SourcesConfig specifies which TypeScript files the extractor reads.
type SourcesConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude,omitempty"`
}

// SchemaConfig specifies where the extracted, canonical JSON schema is
// persisted (schema.Marshal's output — see spec §4.4).
type SchemaConfig struct {
	Output string `json:"output"`
}

// EmitConfig specifies the generated Go companion package: one AssertT
// function per asserted type plus one AssertFormat function per referenced
// built-in string format (internal/emitter.Generate's output pair).
type EmitConfig struct {
	Output      string `json:"output,omitempty"`      // directory for the generated .go file (default: "dist"; if set to "", the directory of schema.Output)
	PackageName string `json:"packageName,omitempty"` // package name for the generated file (default: "shapecheck")
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Sources: SourcesConfig{
			Include: []string{"src/**/*.ts"},
		},
		Schema: SchemaConfig{
			Output: "dist/schema.json",
		},
		Emit: EmitConfig{
			Output:      "dist",
			PackageName: "shapecheck",
		},
	}
}

// Discover searches for a shapecheck config file in the given directory.
// Checks in priority order: shapecheck.config.json > shapecheck.json.
// Returns the full path to the config file, or empty string if none found.
func Discover(dir string) string {
	candidates := []string{
		filepath.Join(dir, "shapecheck.config.json"),
		filepath.Join(dir, "shapecheck.json"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads and parses a shapecheck JSON config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %q: %w", path, err)
	}

	return &config, nil
}

// Validate checks the config for logical errors.
func (c *Config) Validate() error {
	if len(c.Sources.Include) == 0 {
		return fmt.Errorf("sources.include must have at least one pattern")
	}

	if c.Schema.Output == "" {
		return fmt.Errorf("schema.output must be set")
	}
	if ext := filepath.Ext(c.Schema.Output); ext != ".json" {
		return fmt.Errorf("schema.output must have a .json extension, got %q", ext)
	}

	return nil
}
