package params

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/graphbench/internal/cli/output"
	"github.com/marmos91/graphbench/internal/cli/timeutil"
	"github.com/marmos91/graphbench/pkg/results"
)

var (
	listLimit  int
	listOutput string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs",
	Long: `List stored runs, newest first.

Examples:
  gbench params list --database results.db
  gbench params list --limit 5 --output json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of runs (0 for all)")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

// RunList renders runs as a table.
type RunList []*results.Run

func (l RunList) Headers() []string {
	return []string{"id", "library", "graph", "created", "age"}
}

func (l RunList) Rows() [][]string {
	now := time.Now()
	rows := make([][]string, 0, len(l))
	for _, r := range l {
		rows = append(rows, []string{r.ID, r.Library, r.Graph, timeutil.FormatTime(r.CreatedAt), timeutil.FormatAge(r.CreatedAt, now)})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(listOutput)
	if err != nil {
		return err
	}

	store, err := openStore(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(cmd.Context(), listLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 && format == output.FormatTable {
		_, _ = cmd.OutOrStdout().Write([]byte("No runs stored.\n"))
		return nil
	}
	return output.NewPrinter(cmd.OutOrStdout(), format).Print(RunList(runs))
}
