// Package buildcache lets `shapecheck build` skip re-extraction when nothing
// that would change its output has changed.
//
// A build can be skipped only if the config file content is unchanged since
// the last successful build AND the schema/Go companion output files still
// exist. Output file contents are not compared; source file changes are
// checked separately by the build command (by modification time).
//
// The cache is intentionally conservative: if ANY check fails, extraction and
// emission run from scratch. There is no partial invalidation — a change to
// one source file can affect any type that references it, and this package
// does not track the extractor's reference graph.
package buildcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SchemaVersion is bumped when the cache format or analysis output format changes.
// A mismatch forces a full rebuild, ensuring binary upgrades don't produce stale outputs.
const SchemaVersion = 1

// Cache represents the on-disk post-processing cache.
// It records what was true when post-processing last ran successfully.
type Cache struct {
	// V is the schema version. Must match SchemaVersion or cache is invalid.
	V int `json:"v"`

	// ConfigHash is the SHA-256 hex digest of the shapecheck config file
	// content. Empty string means no config file was used (defaults only).
	ConfigHash string `json:"configHash"`

	// Outputs lists the absolute paths of critical output files that must
	// still exist on disk for the cache to be valid. Typically:
	// - the schema JSON path
	// - the generated Go companion source path
	Outputs []string `json:"outputs"`
}

// CachePath returns the cache file path inside the emit directory.
// The cache lives at `<emitDir>/.shapecheck-cache` so that deleting the
// output directory (--clean) also removes the cache, guaranteeing a fresh
// build.
//
// If emitDir is empty (no output directory configured), it falls back to a
// sibling file next to the config: "shapecheck.config.json" →
// "shapecheck.config.shapecheck-cache".
func CachePath(emitDir string, configPath string) string {
	if emitDir != "" {
		return filepath.Join(emitDir, ".shapecheck-cache")
	}
	// Fallback: sibling of the config file.
	dir := filepath.Dir(configPath)
	base := filepath.Base(configPath)
	name := strings.TrimSuffix(base, ".json")
	return filepath.Join(dir, name+".shapecheck-cache")
}

// Load reads and parses a cache file from disk.
// Returns nil if the file doesn't exist, is unreadable, or is invalid JSON.
// Callers should treat nil as "cache miss" and run full post-processing.
func Load(path string) *Cache {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}

	return &c
}

// Save writes the cache to disk atomically (write to temp, rename).
// Returns an error if the write fails, but callers may choose to log and continue
// (a failed cache save just means the next build won't benefit from caching).
func Save(path string, cache *Cache) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory %s: %w", dir, err)
	}

	// Write to temp file first, then rename for atomicity
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing cache temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		// Clean up temp file on rename failure
		os.Remove(tmp)
		return fmt.Errorf("renaming cache file: %w", err)
	}

	return nil
}

// Delete removes the cache file from disk. Errors are ignored (file may not exist).
func Delete(path string) {
	os.Remove(path)
}

// IsValid checks whether the cache can be trusted to skip a rebuild.
// ALL of the following must be true simultaneously:
//
//  1. Schema version matches (catches binary upgrades)
//  2. Config hash matches current config file content
//  3. All critical output files still exist on disk
//
// The caller is responsible for the "no source file is newer than the cache"
// check, which is a prerequisite before calling IsValid.
func (c *Cache) IsValid(currentConfigHash string) bool {
	if c == nil {
		return false
	}

	// Check 1: Schema version
	if c.V != SchemaVersion {
		return false
	}

	// Check 2: Config file hash
	if c.ConfigHash != currentConfigHash {
		return false
	}

	// Check 3: Output files still exist on disk
	for _, path := range c.Outputs {
		if _, err := os.Stat(path); err != nil {
			return false
		}
	}

	return true
}

// HashFile computes the SHA-256 hex digest of a file's contents.
// Returns empty string if the file doesn't exist or can't be read.
func HashFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// New creates a new Cache with the current schema version.
func New(configHash string, outputs []string) *Cache {
	return &Cache{
		V:          SchemaVersion,
		ConfigHash: configHash,
		Outputs:    outputs,
	}
}
