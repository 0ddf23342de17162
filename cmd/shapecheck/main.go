package main

import (
	"fmt"
	"os"
	"strings"
)

const version = "0.0.1-dev"

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		return runBuild(os.Args[1:])
	}

	switch os.Args[1] {
	case "build":
		return runBuild(os.Args[2:])
	case "dev":
		return runDev(os.Args[2:])
	case "--version", "-v":
		fmt.Println("shapecheck", version)
		return 0
	case "--help", "-h":
		printUsage()
		return 0
	default:
		if strings.HasPrefix(os.Args[1], "-") {
			return runBuild(os.Args[1:])
		}
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println("shapecheck - extracts runtime type schemas from annotated TypeScript and emits a Go conformance checker")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  shapecheck [flags]              Build schema + companion (default)")
	fmt.Println("  shapecheck build [flags]        Build schema + companion")
	fmt.Println("  shapecheck dev [flags]          Watch mode (rebuild on change)")
	fmt.Println()
	fmt.Println("Global Flags:")
	fmt.Println("  --version, -v          Print version and exit")
	fmt.Println("  --help, -h             Print this help message")
	fmt.Println()
	fmt.Println("Build Flags:")
	fmt.Println("  --config <path>        Path to shapecheck.config.json")
	fmt.Println("  --clean                Delete the output directory before building")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  shapecheck")
	fmt.Println("  shapecheck build --config shapecheck.config.json")
	fmt.Println("  shapecheck dev")
	fmt.Println()
}
