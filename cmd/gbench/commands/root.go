// Package commands implements the gbench command line.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marmos91/graphbench/cmd/gbench/commands/config"
	"github.com/marmos91/graphbench/cmd/gbench/commands/params"
	pkgconfig "github.com/marmos91/graphbench/pkg/config"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string

	// experimentFlags holds one flag per experiment key. They are bound
	// into config.Load, so they override GBENCH_* variables and the file.
	experimentFlags = newExperimentFlags()
)

var rootCmd = &cobra.Command{
	Use:   "gbench",
	Short: "gbench - graph library benchmark harness",
	Long: `gbench drives graph library adapters through a configured experiment.

Parameters come from flags, GBENCH_* environment variables and a YAML
configuration file, in that order of precedence.

Use "gbench [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/gbench/config.yaml)")
	rootCmd.PersistentFlags().AddFlagSet(experimentFlags)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(librariesCmd)
	rootCmd.AddCommand(config.Cmd)
	rootCmd.AddCommand(params.Cmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// newExperimentFlags declares the experiment flags. Defaults only document
// the key; an unset flag never overrides the file or the environment.
func newExperimentFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("experiment", pflag.ContinueOnError)

	fs.StringP("library", "l", "", "graph library adapter to benchmark")
	fs.StringP("graph", "G", "", "path of the graph to load")
	fs.Bool("directed", pkgconfig.DefaultDirected, "treat the graph as directed")
	fs.IntP("threads-read", "r", pkgconfig.DefaultThreadsRead, "number of reader threads")
	fs.IntP("threads-write", "w", pkgconfig.DefaultThreadsWrite, "number of writer threads")
	fs.String("timeout", "3600", "per-operation timeout, seconds or a duration (0 disables)")
	fs.Uint64("seed", pkgconfig.DefaultSeed, "random seed")
	fs.Float64("max-weight", pkgconfig.DefaultMaxWeight, "upper bound of generated edge weights")
	fs.Float64("ef-vertices", pkgconfig.DefaultEFVertices, "vertex expansion factor")
	fs.Float64("ef-edges", pkgconfig.DefaultEFEdges, "edge expansion factor")
	fs.Float64("aging", pkgconfig.DefaultAging, "aging coefficient")
	fs.String("build-frequency", "300000", "snapshot rebuild cadence, milliseconds or a duration (0 disables)")
	fs.IntP("repetitions", "R", pkgconfig.DefaultRepetitions, "repetitions per algorithm")
	fs.String("update-log", "", "aging update log to replay")
	fs.Bool("validate", false, "validate algorithm output")
	fs.StringP("database", "d", "", "results database: SQLite path or postgres:// URL")

	return fs
}
