package config

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/marmos91/graphbench/internal/cli/output"
	"github.com/marmos91/graphbench/pkg/config"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Display the gbench configuration after flags, environment and file
have been merged.

YAML and JSON print the whole file structure. The table format prints
the validated experiment parameters in configuration units.

Examples:
  # Show as YAML
  gbench config show

  # Show the experiment parameters as a table
  gbench config show --output table --threads-read 4`,
	RunE: runConfigShow,
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "yaml", "Output format (yaml|json|table)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(showOutput)
	if err != nil {
		return err
	}

	opts, err := load(cmd)
	if err != nil {
		return err
	}

	if format != output.FormatTable {
		return output.NewPrinter(cmd.OutOrStdout(), format).Print(opts)
	}

	cfg, err := config.New(opts, config.Dependencies{})
	if err != nil {
		return err
	}
	return output.PrintTable(cmd.OutOrStdout(), parametersTable(cfg.Snapshot().Map()))
}

func parametersTable(params map[string]string) *output.Table {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	table := output.NewTable("parameter", "value")
	for _, name := range names {
		table.AddRow(name, params[name])
	}
	return table
}
