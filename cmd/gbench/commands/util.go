package commands

import (
	"fmt"

	"github.com/marmos91/graphbench/internal/logger"
	"github.com/marmos91/graphbench/pkg/config"
)

// InitLogger initializes the structured logger from configuration.
func InitLogger(opts *config.Options) error {
	loggerCfg := logger.Config{
		Level:  opts.Logging.Level,
		Format: opts.Logging.Format,
		Output: opts.Logging.Output,
	}
	if err := logger.Init(loggerCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// loadOptions loads options from --config, the environment and the
// experiment flags.
func loadOptions() (*config.Options, error) {
	return config.Load(cfgFile, experimentFlags)
}

// getConfigSource returns a description of where the config was loaded from.
func getConfigSource() string {
	if cfgFile != "" {
		return cfgFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}
