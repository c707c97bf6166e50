package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/typeforge/derive/internal/cli"
	"github.com/typeforge/derive/internal/utils"
)

func main() {
	var (
		ifaceFlag   = flag.String("iface", "", "Comma-separated interface names to derive (default: all)")
		moduleFlag  = flag.String("module", "", "Custom module path (defaults to go.mod module)")
		dirFlag     = flag.String("dir", ".", "Working directory for package loading")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and derived-tree dumps")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <package-patterns...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Derive Metadata Engine\n")
		fmt.Fprintf(os.Stderr, "Scans packages for interfaces with derive:: annotations and derives structural metadata.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                          # Derive every interface recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --iface RestAPI ./internal/... # Derive one interface\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --verbose ./...                # Dump the derived trees\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one package pattern is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	cfg := cli.Config{
		Patterns:   args,
		ModuleName: *moduleFlag,
		Dir:        *dirFlag,
		Verbose:    *verboseFlag,
	}
	if *ifaceFlag != "" {
		for _, n := range strings.Split(*ifaceFlag, ",") {
			if n = strings.TrimSpace(n); n != "" {
				cfg.Interfaces = append(cfg.Interfaces, n)
			}
		}
	}

	runner := cli.NewRunner(cfg, diagnostics)
	if err := runner.Run(); err != nil {
		diagnostics.Error("%v", err)
		os.Exit(1)
	}
}
