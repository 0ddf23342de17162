package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/shapecheck/shapecheck/internal/config"
	"github.com/shapecheck/shapecheck/internal/watcher"
)

// runDev implements "shapecheck dev": an initial build followed by a
// watch loop that rebuilds the schema and its Go companion whenever a
// source file changes. Each rebuild goes through runBuild with the same
// build-cache check as the build subcommand, so a change that leaves the
// cache valid (for example, deleting a source file) does not rebuild.
func runDev(args []string) int {
	devFlags := flag.NewFlagSet("dev", flag.ExitOnError)

	var (
		configPath          string
		preserveWatchOutput bool
	)

	devFlags.StringVar(&configPath, "config", "", "Path to shapecheck config file")
	devFlags.BoolVar(&preserveWatchOutput, "preserveWatchOutput", false, "Don't clear console between rebuilds")

	devFlags.Usage = func() {
		fmt.Println("Usage: shapecheck dev [flags]")
		fmt.Println()
		fmt.Println("Flags:")
		devFlags.PrintDefaults()
	}

	devFlags.Parse(args)

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not get working directory: %v\n", err)
		return 1
	}

	cfg, _, err := loadConfig(cwd, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	buildArgs := []string{}
	if configPath != "" {
		buildArgs = append(buildArgs, "--config", configPath)
	}

	fmt.Fprintln(os.Stderr, "performing initial build...")
	if runBuild(buildArgs) != 0 {
		fmt.Fprintln(os.Stderr, "initial build failed, watching for changes...")
	} else {
		fmt.Fprintln(os.Stderr, "initial build succeeded")
	}

	watchDirs := sourceRootsOf(cwd, cfg.Sources.Include)

	rebuild := func(events []watcher.Event) {
		if !preserveWatchOutput {
			fmt.Fprint(os.Stderr, "\033[2J\033[H")
		}
		fmt.Fprintf(os.Stderr, "\ndetected %d change(s), rebuilding...\n", len(events))
		if runBuild(buildArgs) != 0 {
			fmt.Fprintln(os.Stderr, "build failed, waiting for changes...")
		}
	}

	w := watcher.New(
		watchDirs,
		[]string{".ts", ".tsx", ".mts", ".cts"},
		100*time.Millisecond,
		rebuild,
	)

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "shapecheck dev: panic: %v\n", r)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nshutting down...")
		w.Stop()
	}()

	fmt.Fprintln(os.Stderr, "watching for changes...")
	w.Watch()

	return 0
}

// sourceRootsOf picks the deepest directory prefix of each include
// pattern that contains no glob metacharacters, so the watcher polls real
// directories instead of the raw glob strings themselves.
func sourceRootsOf(cwd string, includes []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, pattern := range includes {
		root := pattern
		if idx := indexOfFirstMeta(pattern); idx >= 0 {
			root = pattern[:idx]
		}
		root = filepath.Dir(root)
		if root == "." || root == "" {
			root = cwd
		} else {
			root = filepath.Join(cwd, root)
		}
		if !seen[root] {
			seen[root] = true
			dirs = append(dirs, root)
		}
	}
	if len(dirs) == 0 {
		dirs = []string{cwd}
	}
	return dirs
}

func indexOfFirstMeta(pattern string) int {
	for i, r := range pattern {
		if r == '*' || r == '?' || r == '[' {
			return i
		}
	}
	return -1
}
