// Command gensql generates the agenda schema registry (tables.go) and
// schema.sql from a declarative table configuration file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/andrewkroh/go-agenda/internal/sqlgen"
)

func main() {
	cfg := sqlgen.Config{}

	flag.StringVar(&cfg.TablesFile, "tables", "", "Path to tables.yml configuration file (required)")
	flag.StringVar(&cfg.OutputDir, "output", "agendasql", "Output directory for generated files")
	flag.StringVar(&cfg.PackageName, "package", "agendasql", "Go package name for generated files")
	flag.Parse()

	if cfg.TablesFile == "" {
		fmt.Fprintln(os.Stderr, "error: -tables flag is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := sqlgen.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
