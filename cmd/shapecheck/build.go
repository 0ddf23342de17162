package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shapecheck/shapecheck/internal/analyzer"
	"github.com/shapecheck/shapecheck/internal/buildcache"
	"github.com/shapecheck/shapecheck/internal/config"
	"github.com/shapecheck/shapecheck/internal/emitter"
	"github.com/shapecheck/shapecheck/internal/tsextract"
)

// runBuild implements the "shapecheck build" command: discover source
// files matching the configured globs, extract their annotated
// declarations into a schema, and emit the schema JSON plus its Go
// companion package.
func runBuild(args []string) int {
	buildFlags := flag.NewFlagSet("build", flag.ExitOnError)

	var (
		configPath string
		clean      bool
	)

	buildFlags.StringVar(&configPath, "config", "", "Path to shapecheck config file")
	buildFlags.BoolVar(&clean, "clean", false, "Delete the output directory before building")

	buildFlags.Usage = func() {
		fmt.Println("Usage: shapecheck build [flags]")
		fmt.Println()
		fmt.Println("Flags:")
		buildFlags.PrintDefaults()
	}

	buildFlags.Parse(args)

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not get working directory: %v\n", err)
		return 1
	}

	cfg, resolvedConfigPath, err := loadConfig(cwd, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	schemaOut := filepath.Join(cwd, cfg.Schema.Output)
	emitDir := cfg.Emit.Output
	if emitDir == "" {
		emitDir = filepath.Dir(cfg.Schema.Output)
	}
	emitDir = filepath.Join(cwd, emitDir)

	if clean {
		os.RemoveAll(filepath.Dir(schemaOut))
		os.RemoveAll(emitDir)
	}

	files, err := discoverSources(cwd, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "shapecheck: no source files matched sources.include")
		return 0
	}

	cachePath := buildcache.CachePath(emitDir, resolvedConfigPath)
	configHash := ""
	if resolvedConfigPath != "" {
		configHash = buildcache.HashFile(resolvedConfigPath)
	}
	cache := buildcache.Load(cachePath)
	if cache.IsValid(configHash) && !newestSourceAfterCache(files, cachePath) {
		fmt.Fprintln(os.Stderr, "shapecheck: up to date, skipping rebuild")
		return 0
	}

	s, err := tsextract.ExtractFiles(files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	packageName := cfg.Emit.PackageName
	if packageName == "" {
		packageName = "shapecheck"
	}

	out, err := emitter.Generate(packageName, "github.com/shapecheck/shapecheck", s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if err := os.MkdirAll(filepath.Dir(schemaOut), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error: creating schema output directory: %v\n", err)
		return 1
	}
	if err := os.WriteFile(schemaOut, out.SchemaJSON, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing schema: %v\n", err)
		return 1
	}

	if err := os.MkdirAll(emitDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error: creating emit output directory: %v\n", err)
		return 1
	}
	goOut := filepath.Join(emitDir, "shapecheck_gen.go")
	if err := os.WriteFile(goOut, []byte(out.GoSource), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing companion: %v\n", err)
		return 1
	}

	newCache := buildcache.New(configHash, []string{schemaOut, goOut})
	if err := buildcache.Save(cachePath, newCache); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save build cache: %v\n", err)
	}

	fmt.Fprintf(os.Stderr, "shapecheck: wrote %s and %s (%d asserted type(s))\n", schemaOut, goOut, len(s.AssertedTypes))
	return 0
}

// loadConfig resolves and loads the config from an explicit --config path,
// or falls back to config.Discover in cwd, or config.DefaultConfig() if
// neither is present.
func loadConfig(cwd, configPath string) (*config.Config, string, error) {
	if configPath != "" {
		resolved := configPath
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(cwd, resolved)
		}
		cfg, err := config.Load(resolved)
		if err != nil {
			return nil, "", err
		}
		return cfg, resolved, nil
	}

	if discovered := config.Discover(cwd); discovered != "" {
		cfg, err := config.Load(discovered)
		if err != nil {
			return nil, "", err
		}
		return cfg, discovered, nil
	}

	cfg := config.DefaultConfig()
	return &cfg, "", nil
}

// discoverSources walks cwd and returns every file matching
// cfg.Sources.Include/Exclude, using the glob semantics of
// analyzer.MatchesGlob.
func discoverSources(cwd string, cfg *config.Config) ([]string, error) {
	var matches []string
	err := filepath.Walk(cwd, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(cwd, path)
		if err != nil {
			return nil
		}
		if analyzer.MatchesGlob(rel, cfg.Sources.Include, cfg.Sources.Exclude) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering sources: %w", err)
	}
	return matches, nil
}

// newestSourceAfterCache reports whether any source file was modified
// after the cache file, forcing a rebuild even when the config hash and
// output files are otherwise unchanged.
func newestSourceAfterCache(files []string, cachePath string) bool {
	cacheInfo, err := os.Stat(cachePath)
	if err != nil {
		return true
	}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil || info.ModTime().After(cacheInfo.ModTime()) {
			return true
		}
	}
	return false
}
