// Package params implements the subcommands that read stored parameter
// snapshots back from the results database.
package params

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/marmos91/graphbench/pkg/config"
	"github.com/marmos91/graphbench/pkg/results"
)

// Cmd is the params subcommand.
var Cmd = &cobra.Command{
	Use:   "params",
	Short: "Inspect stored parameter snapshots",
	Long: `Inspect the parameter snapshots stored by "gbench run".

The database is taken from --database, GBENCH_DATABASE or the
configuration file.

Subcommands:
  list  List stored runs
  show  Show the parameters of one run`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
}

// openStore opens the configured results database. The caller closes it.
func openStore(ctx context.Context, cmd *cobra.Command) (*results.Store, error) {
	configPath, _ := cmd.Flags().GetString("config")
	opts, err := config.Load(configPath, cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}
	if opts.Database == "" {
		return nil, errors.New("no results database configured (use --database)")
	}
	return results.New(ctx, &results.Config{Path: opts.Database})
}
