package main

import (
	"fmt"
	"os"

	"github.com/marmos91/graphbench/cmd/gbench/commands"

	// Built-in library adapters and the Prometheus collectors register in init()
	_ "github.com/marmos91/graphbench/pkg/library/adjacency"
	_ "github.com/marmos91/graphbench/pkg/library/badger"
	_ "github.com/marmos91/graphbench/pkg/metrics/prometheus"
)

// Build-time variables injected via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
