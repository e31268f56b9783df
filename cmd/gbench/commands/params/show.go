package params

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/graphbench/internal/cli/output"
	"github.com/marmos91/graphbench/internal/cli/timeutil"
	"github.com/marmos91/graphbench/pkg/results"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the parameters of one run",
	Long: `Show the parameter snapshot stored for a run.

Examples:
  gbench params show 0b6c1c2e-6d8f-4c47-9a41-6f0f1f2c9e10 --database results.db`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

// ParameterList renders a run's parameters as a table.
type ParameterList []results.Parameter

func (l ParameterList) Headers() []string {
	return []string{"parameter", "value"}
}

func (l ParameterList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, p := range l {
		rows = append(rows, []string{p.Name, p.Value})
	}
	return rows
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(showOutput)
	if err != nil {
		return err
	}

	store, err := openStore(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := store.GetRun(cmd.Context(), args[0])
	if errors.Is(err, results.ErrRunNotFound) {
		return fmt.Errorf("run %s not found", args[0])
	}
	if err != nil {
		return err
	}

	if format != output.FormatTable {
		return output.NewPrinter(cmd.OutOrStdout(), format).Print(run)
	}

	out := cmd.OutOrStdout()
	if err := output.PrintPairs(out, [][2]string{
		{"Run", run.ID},
		{"Created", timeutil.FormatTime(run.CreatedAt)},
	}); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out)
	return output.PrintTable(out, ParameterList(run.Parameters))
}
