package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Options is the raw, unvalidated input of an experiment.
//
// The flat keys are the experiment parameters; each is validated by the
// matching Configuration setter during Initialise. The nested sections
// configure the harness itself.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (GBENCH_*)
//  3. Configuration file (YAML or TOML)
//  4. Default values (lowest priority)
type Options struct {
	// Library is the registry name of the graph library under test
	Library string `mapstructure:"library" yaml:"library" json:"library" jsonschema:"description=Graph library adapter to benchmark"`

	// Graph is the path of the graph to load
	Graph string `mapstructure:"graph" yaml:"graph" json:"graph"`

	// Directed selects the orientation of the loaded graph
	Directed bool `mapstructure:"directed" yaml:"directed" json:"directed"`

	ThreadsRead  int `mapstructure:"threads_read" yaml:"threads_read" json:"threads_read" jsonschema:"minimum=1"`
	ThreadsWrite int `mapstructure:"threads_write" yaml:"threads_write" json:"threads_write" jsonschema:"minimum=1"`

	// Timeout is the per-operation budget. 0 disables it.
	// Accepts seconds ("3600") or a duration string ("1h").
	Timeout Seconds `mapstructure:"timeout" yaml:"timeout" json:"timeout" jsonschema:"minimum=0"`

	Seed uint64 `mapstructure:"seed" yaml:"seed" json:"seed"`

	// MaxWeight bounds the synthetic weights assigned to unweighted graphs
	MaxWeight float64 `mapstructure:"max_weight" yaml:"max_weight" json:"max_weight" jsonschema:"exclusiveMinimum=0"`

	// EFVertices and EFEdges are the aging expansion factors
	EFVertices float64 `mapstructure:"ef_vertices" yaml:"ef_vertices" json:"ef_vertices" jsonschema:"exclusiveMinimum=0"`
	EFEdges    float64 `mapstructure:"ef_edges" yaml:"ef_edges" json:"ef_edges" jsonschema:"exclusiveMinimum=0"`

	// Aging is the surplus-update coefficient
	Aging float64 `mapstructure:"aging" yaml:"aging" json:"aging" jsonschema:"minimum=0"`

	// BuildFrequency is the snapshot rebuild cadence. 0 disables rebuilds.
	// Accepts milliseconds ("300000") or a duration string ("5m").
	BuildFrequency Milliseconds `mapstructure:"build_frequency" yaml:"build_frequency" json:"build_frequency" jsonschema:"minimum=0"`

	Repetitions int `mapstructure:"repetitions" yaml:"repetitions" json:"repetitions" jsonschema:"minimum=1"`

	// UpdateLog is the aging log to replay. Empty means none.
	UpdateLog string `mapstructure:"update_log" yaml:"update_log" json:"update_log"`

	// Validate enables validation of algorithm output
	Validate bool `mapstructure:"validate" yaml:"validate" json:"validate"`

	// Database is the results database: an SQLite path or a postgres:// URL.
	// Empty disables persistence.
	Database string `mapstructure:"database" yaml:"database" json:"database"`

	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`

	// Metrics contains Prometheus metrics server configuration
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`

	// Telemetry controls OpenTelemetry tracing and profiling
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry" json:"telemetry"`
}

// Seconds is a non-negative count of seconds as written in config files.
type Seconds int64

// Duration converts s to a time.Duration, saturating at the int64 bounds.
func (s Seconds) Duration() time.Duration { return saturate(int64(s), time.Second) }

// Milliseconds is a count of milliseconds as written in config files.
type Milliseconds int64

// Duration converts m to a time.Duration, saturating at the int64 bounds.
func (m Milliseconds) Duration() time.Duration { return saturate(int64(m), time.Millisecond) }

func saturate(n int64, unit time.Duration) time.Duration {
	limit := int64(math.MaxInt64 / unit)
	switch {
	case n > limit:
		return math.MaxInt64
	case n < -limit:
		return math.MinInt64
	}
	return time.Duration(n) * unit
}

// unitsToDuration converts n counts of unit for the named field. Values a
// time.Duration cannot hold fail with KindValidation instead of wrapping.
func unitsToDuration(field string, n int64, unit time.Duration) (time.Duration, error) {
	limit := int64(math.MaxInt64 / unit)
	switch {
	case n > limit:
		return 0, &Error{Kind: KindValidation, Field: field, Value: n, Message: fmt.Sprintf("must be <= %d", limit)}
	case n < -limit:
		return 0, &Error{Kind: KindValidation, Field: field, Value: n, Message: "must be >= 0"}
	}
	return time.Duration(n) * unit, nil
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level" json:"level"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format" json:"format"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required" yaml:"output" json:"output"`
}

// MetricsConfig configures the Prometheus metrics HTTP server.
// When Enabled is false, no metrics are collected.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	// Port is the HTTP port for the /metrics endpoint
	// Default: 9090
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port" json:"port"`
}

// TelemetryConfig controls OpenTelemetry distributed tracing.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	// Endpoint is the OTLP collector endpoint (host:port)
	// Default: "localhost:4317"
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`

	// Insecure disables TLS towards the collector
	Insecure bool `mapstructure:"insecure" yaml:"insecure" json:"insecure"`

	// SampleRate controls the trace sampling rate (0.0 to 1.0)
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate" json:"sample_rate"`

	// Profiling contains Pyroscope continuous profiling configuration
	Profiling ProfilingConfig `mapstructure:"profiling" yaml:"profiling" json:"profiling"`
}

// ProfilingConfig controls Pyroscope continuous profiling.
type ProfilingConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	// Endpoint is the Pyroscope server URL
	// Default: "http://localhost:4040"
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`

	// ProfileTypes specifies which profile types to collect
	ProfileTypes []string `mapstructure:"profile_types" yaml:"profile_types" json:"profile_types"`
}

// Load loads options from flags, environment, file and defaults.
//
// configPath may be empty, in which case the default location is searched;
// a missing file is not an error. flags may be nil. Flag names are matched to
// keys with dashes replaced by underscores (--threads-read -> threads_read).
func Load(configPath string, flags *pflag.FlagSet) (*Options, error) {
	v := viper.New()

	setupViper(v, configPath)
	setDefaults(v)

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if _, err := readConfigFile(v); err != nil {
		return nil, err
	}

	var opts Options
	if err := v.Unmarshal(&opts, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&opts)

	if err := Validate(&opts); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &opts, nil
}

// DecodeArgs decodes raw name/value pairs, as produced by an external
// argument parser, on top of the default options. Values may be strings.
// Unknown names are rejected.
func DecodeArgs(args map[string]any) (*Options, error) {
	opts := GetDefaultOptions()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       configDecodeHooks(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           opts,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(args); err != nil {
		return nil, fmt.Errorf("failed to decode arguments: %w", err)
	}

	ApplyDefaults(opts)
	return opts, nil
}

// SaveOptions writes opts to path as YAML.
func SaveOptions(opts *Options, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Example: GBENCH_THREADS_READ=4, GBENCH_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("GBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// bindFlags binds every flag of the set to the viper key of the same name.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Name == "config" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("failed to bind flag --%s: %w", f.Name, err)
		}
	})
	return bindErr
}

// readConfigFile reads the configuration file if it exists.
// Returns (fileFound, error) where fileFound indicates if a config file was found.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// configDecodeHooks returns a combined decode hook for all custom types.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		unitDecodeHook(reflect.TypeOf(Seconds(0)), time.Second),
		unitDecodeHook(reflect.TypeOf(Milliseconds(0)), time.Millisecond),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// unitDecodeHook converts plain numbers and duration strings ("5m") into an
// integer count of unit, for fields of type target. Fractions round away from
// zero so a positive sub-unit input never collapses to the 0 sentinel.
func unitDecodeHook(target reflect.Type, unit time.Duration) mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != target {
			return data, nil
		}

		var n int64
		switch v := data.(type) {
		case string:
			s := strings.TrimSpace(v)
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				n = i
				break
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				i, err := floatUnits(f)
				if err != nil {
					return nil, err
				}
				n = i
				break
			}
			d, err := time.ParseDuration(s)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q: expected an integer or a duration", v)
			}
			n = durationUnits(d, unit)
		case int:
			n = int64(v)
		case int64:
			n = v
		case uint64:
			if v > math.MaxInt64 {
				return nil, fmt.Errorf("value %d out of range", v)
			}
			n = int64(v)
		case float64:
			// YAML often deserializes numbers as float64
			i, err := floatUnits(v)
			if err != nil {
				return nil, err
			}
			n = i
		case time.Duration:
			n = durationUnits(v, unit)
		default:
			return data, nil
		}

		return reflect.ValueOf(n).Convert(target).Interface(), nil
	}
}

// durationUnits counts d in unit, rounding any remainder away from zero.
func durationUnits(d, unit time.Duration) int64 {
	n := int64(d / unit)
	switch rem := d % unit; {
	case rem > 0:
		n++
	case rem < 0:
		n--
	}
	return n
}

func floatUnits(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid value %v: expected a finite number", f)
	}
	if f > 0 {
		f = math.Ceil(f)
	} else {
		f = math.Floor(f)
	}
	// float64(MaxInt64) rounds up to 2^63, which no longer fits
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("value %v out of range", f)
	}
	return int64(f), nil
}

// getConfigDir returns $XDG_CONFIG_HOME/gbench, ~/.config/gbench, or "."
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gbench")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "gbench")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}
