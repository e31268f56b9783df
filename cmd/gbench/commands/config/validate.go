package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/graphbench/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the gbench configuration.

Checks the file syntax, the harness sections and every experiment
parameter, with flags and GBENCH_* variables applied.

Examples:
  # Validate default config
  gbench config validate

  # Validate specific config file
  gbench config validate --config ./experiment.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	opts, err := load(cmd)
	if err != nil {
		return err
	}

	// Builds a throwaway Configuration so every setter rule runs.
	cfg, err := config.New(opts, config.Dependencies{})
	if err != nil {
		return err
	}

	displayPath, _ := cmd.Flags().GetString("config")
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	var warnings []string
	if cfg.LibraryName() == "" {
		warnings = append(warnings, "No library configured")
	} else if _, err := cfg.Libraries().Lookup(cfg.LibraryName()); err != nil {
		warnings = append(warnings, fmt.Sprintf("Library %q is not registered in this binary", cfg.LibraryName()))
	}
	if cfg.GraphPath() == "" {
		warnings = append(warnings, "No graph configured")
	}
	if !cfg.HasDatabase() {
		warnings = append(warnings, "No results database configured - parameters will not be stored")
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Configuration file: %s\n", displayPath)
	_, _ = fmt.Fprintln(out, "Validation: OK")

	if len(warnings) > 0 {
		_, _ = fmt.Fprintln(out, "\nWarnings:")
		for _, w := range warnings {
			_, _ = fmt.Fprintf(out, "  - %s\n", w)
		}
	}

	_, _ = fmt.Fprintf(out, "\nConfiguration summary:\n")
	_, _ = fmt.Fprintf(out, "  Library:    %s\n", cfg.LibraryName())
	_, _ = fmt.Fprintf(out, "  Threads:    %d\n", cfg.NumThreads(config.ThreadsTotal))
	_, _ = fmt.Fprintf(out, "  Log level:  %s\n", opts.Logging.Level)
	return nil
}
