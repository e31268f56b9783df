package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Experiment defaults. Zero is a meaningful value for several of these
// (timeout, aging, build frequency), so they are registered with viper
// instead of being filled in by ApplyDefaults.
const (
	DefaultDirected       = true
	DefaultThreadsRead    = 1
	DefaultThreadsWrite   = 1
	DefaultTimeout        = Seconds(3600)
	DefaultSeed           = uint64(5051789)
	DefaultMaxWeight      = 1.0
	DefaultEFVertices     = 1.0
	DefaultEFEdges        = 1.0
	DefaultAging          = 0.0
	DefaultBuildFrequency = Milliseconds(5 * 60 * 1000)
	DefaultRepetitions    = 5
)

// setDefaults registers every default with v, so environment variables can
// override keys that appear in no config file.
func setDefaults(v *viper.Viper) {
	d := GetDefaultOptions()

	v.SetDefault("library", d.Library)
	v.SetDefault("graph", d.Graph)
	v.SetDefault("directed", d.Directed)
	v.SetDefault("threads_read", d.ThreadsRead)
	v.SetDefault("threads_write", d.ThreadsWrite)
	v.SetDefault("timeout", int64(d.Timeout))
	v.SetDefault("seed", d.Seed)
	v.SetDefault("max_weight", d.MaxWeight)
	v.SetDefault("ef_vertices", d.EFVertices)
	v.SetDefault("ef_edges", d.EFEdges)
	v.SetDefault("aging", d.Aging)
	v.SetDefault("build_frequency", int64(d.BuildFrequency))
	v.SetDefault("repetitions", d.Repetitions)
	v.SetDefault("update_log", d.UpdateLog)
	v.SetDefault("validate", d.Validate)
	v.SetDefault("database", d.Database)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.port", d.Metrics.Port)
	v.SetDefault("telemetry.enabled", d.Telemetry.Enabled)
	v.SetDefault("telemetry.endpoint", d.Telemetry.Endpoint)
	v.SetDefault("telemetry.insecure", d.Telemetry.Insecure)
	v.SetDefault("telemetry.sample_rate", d.Telemetry.SampleRate)
	v.SetDefault("telemetry.profiling.enabled", d.Telemetry.Profiling.Enabled)
	v.SetDefault("telemetry.profiling.endpoint", d.Telemetry.Profiling.Endpoint)
	v.SetDefault("telemetry.profiling.profile_types", d.Telemetry.Profiling.ProfileTypes)
}

// ApplyDefaults sets default values for unspecified harness sections.
//
// Zero values (0, "", nil) are replaced with defaults; explicit values are
// preserved. Experiment keys are left alone.
func ApplyDefaults(opts *Options) {
	applyLoggingDefaults(&opts.Logging)
	applyMetricsDefaults(&opts.Metrics)
	applyTelemetryDefaults(&opts.Telemetry)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyMetricsDefaults sets the metrics port.
func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port == 0 {
		cfg.Port = 9090
	}
}

// applyTelemetryDefaults sets OpenTelemetry and profiling defaults.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}

	if cfg.Profiling.Endpoint == "" {
		cfg.Profiling.Endpoint = "http://localhost:4040"
	}
	if len(cfg.Profiling.ProfileTypes) == 0 {
		cfg.Profiling.ProfileTypes = []string{
			"cpu",
			"alloc_objects",
			"alloc_space",
			"inuse_objects",
			"inuse_space",
			"goroutines",
		}
	}
}

// GetDefaultOptions returns Options with every default applied.
func GetDefaultOptions() *Options {
	opts := &Options{
		Directed:       DefaultDirected,
		ThreadsRead:    DefaultThreadsRead,
		ThreadsWrite:   DefaultThreadsWrite,
		Timeout:        DefaultTimeout,
		Seed:           DefaultSeed,
		MaxWeight:      DefaultMaxWeight,
		EFVertices:     DefaultEFVertices,
		EFEdges:        DefaultEFEdges,
		Aging:          DefaultAging,
		BuildFrequency: DefaultBuildFrequency,
		Repetitions:    DefaultRepetitions,
		Telemetry: TelemetryConfig{
			Insecure: true,
		},
	}

	ApplyDefaults(opts)
	return opts
}
