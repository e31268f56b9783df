package commands

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marmos91/graphbench/internal/cli/output"
	"github.com/marmos91/graphbench/internal/cli/timeutil"
	"github.com/marmos91/graphbench/internal/logger"
	"github.com/marmos91/graphbench/internal/telemetry"
	"github.com/marmos91/graphbench/pkg/config"
	"github.com/marmos91/graphbench/pkg/metrics"
	"github.com/marmos91/graphbench/pkg/results"
)

var runWait bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Initialise the experiment configuration and check the library",
	Long: `Load the experiment parameters, initialise the process-wide
configuration and build the configured graph library once.

When a results database is configured the parameter snapshot is stored
as a new run; a storage failure is logged and the run continues.

Examples:
  # Run with the default config file
  gbench run

  # Override parameters on the command line
  gbench run --library badger --threads-read 8 --database results.db

  # Keep the metrics endpoint up until interrupted
  GBENCH_METRICS_ENABLED=true gbench run --wait`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runWait, "wait", false, "Keep serving metrics until interrupted")
}

func runRun(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	if err := InitLogger(opts); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Configuration loaded", "source", getConfigSource())

	shutdownTelemetry, err := initTelemetry(ctx, opts)
	if err != nil {
		return err
	}
	defer shutdownTelemetry()

	configMetrics, stopMetrics := initMetrics(ctx, opts)
	defer stopMetrics()

	connector := results.NewConnector()
	defer func() {
		if err := connector.Close(); err != nil {
			logger.Error("Failed to close results database", logger.Err(err))
		}
	}()

	cfg, err := config.Initialise(opts, config.Dependencies{
		Connector: connector,
		Metrics:   configMetrics,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise configuration: %w", err)
	}
	defer cfg.Release()

	rc := logger.NewRunContext(cfg.LibraryName(), cfg.GraphPath())
	rc.TraceID = telemetry.TraceID(ctx)
	ctx = config.WithConfiguration(logger.WithContext(ctx, rc), cfg)

	cfg.LogSummary(ctx)

	runID := ""
	if cfg.HasDatabase() {
		run, err := cfg.SaveParameters(ctx)
		if err != nil {
			logger.WarnCtx(ctx, "Continuing without a stored parameter snapshot", logger.Err(err))
		} else {
			runID = run.ID
			rc.RunID = run.ID
		}
	}

	report, err := checkLibrary(cfg)
	if err != nil {
		return err
	}
	if runID != "" {
		report = append(report, [2]string{"Run", runID})
	}
	if err := output.PrintPairs(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if runWait && metrics.IsEnabled() {
		logger.Info("Serving metrics until interrupted", "port", opts.Metrics.Port)
		<-ctx.Done()
	}
	return nil
}

// checkLibrary builds one instance of the configured library and describes it.
func checkLibrary(cfg *config.Configuration) ([][2]string, error) {
	lib, err := cfg.GenerateGraphLibrary()
	if err != nil {
		return nil, err
	}
	defer func() { _ = lib.Close() }()

	if lib.IsDirected() != cfg.IsDirected() {
		return nil, fmt.Errorf("library %q built with the wrong orientation (directed=%t)", lib.Name(), lib.IsDirected())
	}

	orientation := "undirected"
	if lib.IsDirected() {
		orientation = "directed"
	}

	return [][2]string{
		{"Library", lib.Name()},
		{"Graph", cfg.GraphPath()},
		{"Orientation", orientation},
		{"Threads", fmt.Sprintf("%d read, %d write, %d total",
			cfg.NumThreads(config.ThreadsRead), cfg.NumThreads(config.ThreadsWrite), cfg.NumThreads(config.ThreadsTotal))},
		{"Timeout", timeutil.FormatDuration(cfg.Timeout())},
		{"Build frequency", timeutil.FormatDuration(cfg.BuildFrequency())},
		{"Repetitions", strconv.Itoa(cfg.NumRepetitions())},
	}, nil
}

// initTelemetry starts tracing and profiling when enabled and returns a
// function that stops both.
func initTelemetry(ctx context.Context, opts *config.Options) (func(), error) {
	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        opts.Telemetry.Enabled,
		ServiceName:    "gbench",
		ServiceVersion: Version,
		Endpoint:       opts.Telemetry.Endpoint,
		Insecure:       opts.Telemetry.Insecure,
		SampleRate:     opts.Telemetry.SampleRate,
		Library:        opts.Library,
		Graph:          opts.Graph,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	shutdownProfiling, err := telemetry.InitProfiling(telemetry.ProfilingConfig{
		Enabled:        opts.Telemetry.Profiling.Enabled,
		ServiceName:    "gbench",
		ServiceVersion: Version,
		Endpoint:       opts.Telemetry.Profiling.Endpoint,
		ProfileTypes:   opts.Telemetry.Profiling.ProfileTypes,
		Tags:           map[string]string{"library": opts.Library},
	})
	if err != nil {
		_ = shutdownTracing(context.Background())
		return nil, fmt.Errorf("failed to initialize profiling: %w", err)
	}

	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", opts.Telemetry.Endpoint, "sample_rate", opts.Telemetry.SampleRate)
	}
	if telemetry.IsProfilingEnabled() {
		logger.Info("Profiling enabled", "endpoint", opts.Telemetry.Profiling.Endpoint)
	}

	return func() {
		if err := shutdownProfiling(); err != nil {
			logger.Error("profiling shutdown error", logger.Err(err))
		}
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("telemetry shutdown error", logger.Err(err))
		}
	}, nil
}

// initMetrics enables the Prometheus registry and its HTTP endpoint when
// configured. The returned ConfigMetrics is nil otherwise.
func initMetrics(ctx context.Context, opts *config.Options) (metrics.ConfigMetrics, func()) {
	if !opts.Metrics.Enabled {
		logger.Debug("Metrics collection disabled")
		return nil, func() {}
	}

	reg := metrics.InitRegistry()
	server := metrics.NewServer(opts.Metrics.Port, reg)

	serverCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.Start(serverCtx); err != nil {
			logger.Error("Metrics server stopped", logger.Err(err))
		}
	}()

	return metrics.NewConfigMetrics(), func() {
		cancel()
		<-done
	}
}
