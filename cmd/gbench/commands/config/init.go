package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/graphbench/internal/cli/prompt"
	"github.com/marmos91/graphbench/pkg/config"
	"github.com/marmos91/graphbench/pkg/library"
)

var (
	initForce       bool
	initInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file holding every default value.

By default, the file is created at $XDG_CONFIG_HOME/gbench/config.yaml.
Use --config to specify a custom path, and --interactive to be asked for
the library, graph, thread counts and results database.

Examples:
  # Initialize with default location
  gbench config init

  # Initialize with custom path
  gbench config init --config ./experiment.yaml

  # Ask for the main parameters
  gbench config init --interactive

  # Force overwrite existing config
  gbench config init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "Prompt for the main parameters")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	opts := config.GetDefaultOptions()
	force := initForce

	if initInteractive {
		if err := promptOptions(opts); err != nil {
			return err
		}

		if _, err := os.Stat(configPath); err == nil && !force {
			ok, err := prompt.Confirm(fmt.Sprintf("Overwrite %s", configPath))
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("aborted: configuration file left unchanged")
			}
			force = true
		}
	}

	if err := config.WriteConfigFile(configPath, opts, force); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Configuration file created at: %s\n", configPath)
	_, _ = fmt.Fprintln(out, "\nNext steps:")
	_, _ = fmt.Fprintln(out, "  1. Set library and graph in the configuration file")
	_, _ = fmt.Fprintln(out, "  2. Check it with: gbench config validate")
	_, _ = fmt.Fprintf(out, "  3. Run with: gbench run --config %s\n", configPath)
	return nil
}

// promptOptions asks for the parameters every experiment sets.
func promptOptions(opts *config.Options) error {
	names := library.Default().Names()
	if len(names) > 0 {
		name, err := prompt.Select("Graph library", names)
		if err != nil {
			return err
		}
		opts.Library = name
	}

	graph, err := prompt.Input("Graph path", opts.Graph, prompt.NonEmpty)
	if err != nil {
		return err
	}
	opts.Graph = graph

	if opts.ThreadsRead, err = prompt.InputInt("Reader threads", opts.ThreadsRead, 1); err != nil {
		return err
	}
	if opts.ThreadsWrite, err = prompt.InputInt("Writer threads", opts.ThreadsWrite, 1); err != nil {
		return err
	}

	database, err := prompt.Input("Results database (empty to disable)", opts.Database, nil)
	if err != nil {
		return err
	}
	opts.Database = database
	return nil
}
