package commands

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/graphbench/internal/cli/output"
	"github.com/marmos91/graphbench/pkg/library"
)

var librariesOutput string

var librariesCmd = &cobra.Command{
	Use:   "libraries",
	Short: "List registered graph library adapters",
	Long: `List the graph library adapters linked into this binary.

Any of these names is a valid value for --library.`,
	RunE: runLibraries,
}

func init() {
	librariesCmd.Flags().StringVarP(&librariesOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

func runLibraries(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(librariesOutput)
	if err != nil {
		return err
	}

	names := library.Default().Names()
	if format != output.FormatTable {
		return output.NewPrinter(cmd.OutOrStdout(), format).Print(names)
	}

	table := output.NewTable("name")
	for _, name := range names {
		table.AddRow(name)
	}
	return output.PrintTable(cmd.OutOrStdout(), table)
}
