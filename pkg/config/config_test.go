package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_NoConfigFile(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NoError(t, err)

	assert.Equal(t, GetDefaultOptions(), opts)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
library: badger
graph: /data/graph500-22.properties
directed: false
threads_read: 8
threads_write: 4
timeout: 1h30m
build_frequency: 2s
max_weight: 10.5
repetitions: 3
database: results.db
logging:
  level: debug
`)

	opts, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "badger", opts.Library)
	assert.Equal(t, "/data/graph500-22.properties", opts.Graph)
	assert.False(t, opts.Directed)
	assert.Equal(t, 8, opts.ThreadsRead)
	assert.Equal(t, 4, opts.ThreadsWrite)
	assert.Equal(t, Seconds(5400), opts.Timeout)
	assert.Equal(t, Milliseconds(2000), opts.BuildFrequency)
	assert.Equal(t, 10.5, opts.MaxWeight)
	assert.Equal(t, 3, opts.Repetitions)
	assert.Equal(t, "results.db", opts.Database)

	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultSeed, opts.Seed)
	assert.Equal(t, 1.0, opts.EFEdges)

	// Logging level is normalized.
	assert.Equal(t, "DEBUG", opts.Logging.Level)
	assert.Equal(t, "text", opts.Logging.Format)
}

func TestLoad_NumericUnits(t *testing.T) {
	path := writeConfig(t, "timeout: 0\nbuild_frequency: 250\n")

	opts, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, Seconds(0), opts.Timeout)
	assert.Equal(t, 250*time.Millisecond, opts.BuildFrequency.Duration())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "threads_read: 2\nlibrary: adjacency\n")
	t.Setenv("GBENCH_THREADS_READ", "6")
	t.Setenv("GBENCH_SEED", "42")
	t.Setenv("GBENCH_LOGGING_FORMAT", "json")

	opts, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 6, opts.ThreadsRead)
	assert.Equal(t, uint64(42), opts.Seed)
	assert.Equal(t, "adjacency", opts.Library)
	assert.Equal(t, "json", opts.Logging.Format)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("GBENCH_THREADS_READ", "6")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("threads-read", DefaultThreadsRead, "")
	flags.String("library", "", "")
	flags.String("config", "", "")
	require.NoError(t, flags.Parse([]string{"--threads-read=3"}))

	opts, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), flags)
	require.NoError(t, err)

	assert.Equal(t, 3, opts.ThreadsRead)
	assert.Equal(t, "", opts.Library)
}

func TestLoad_InvalidHarnessSection(t *testing.T) {
	path := writeConfig(t, "logging:\n  format: xml\n")

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oneof")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "threads_read: [unclosed\n")

	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestDecodeArgs(t *testing.T) {
	opts, err := DecodeArgs(map[string]any{
		"library":         "X",
		"graph":           "/tmp/g.graph",
		"threads_read":    "4",
		"threads_write":   2,
		"directed":        "false",
		"timeout":         "30s",
		"build_frequency": "1000",
		"aging":           "2.5",
	})
	require.NoError(t, err)

	assert.Equal(t, "X", opts.Library)
	assert.Equal(t, 4, opts.ThreadsRead)
	assert.Equal(t, 2, opts.ThreadsWrite)
	assert.False(t, opts.Directed)
	assert.Equal(t, Seconds(30), opts.Timeout)
	assert.Equal(t, time.Second, opts.BuildFrequency.Duration())
	assert.Equal(t, 2.5, opts.Aging)
	assert.Equal(t, DefaultRepetitions, opts.Repetitions)
}

func TestDecodeArgs_Errors(t *testing.T) {
	t.Run("unknown name", func(t *testing.T) {
		_, err := DecodeArgs(map[string]any{"thread_read": 4})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "thread_read")
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := DecodeArgs(map[string]any{"timeout": "soon"})
		assert.Error(t, err)
	})
}

func TestDecodeArgs_NegativeReachesSetter(t *testing.T) {
	opts, err := DecodeArgs(map[string]any{"timeout": "-5"})
	require.NoError(t, err)

	_, err = New(opts, Dependencies{})
	assert.True(t, IsKind(err, KindValidation))
}

func TestDecodeArgs_UnitRounding(t *testing.T) {
	tests := []struct {
		name          string
		args          map[string]any
		wantTimeout   time.Duration
		wantFrequency time.Duration
	}{
		{"sub-second timeout", map[string]any{"timeout": "500ms"}, time.Second, DefaultBuildFrequency.Duration()},
		{"fractional timeout", map[string]any{"timeout": 0.5}, time.Second, DefaultBuildFrequency.Duration()},
		{"fractional timeout string", map[string]any{"timeout": "1.2"}, 2 * time.Second, DefaultBuildFrequency.Duration()},
		{"sub-millisecond frequency", map[string]any{"build_frequency": "500us"}, DefaultTimeout.Duration(), time.Millisecond},
		{"remainder rounds up", map[string]any{"timeout": "1500ms", "build_frequency": "1500us"}, 2 * time.Second, 2 * time.Millisecond},
		{"exact duration", map[string]any{"timeout": "1h", "build_frequency": "1500ms"}, time.Hour, 1500 * time.Millisecond},
		{"zero stays zero", map[string]any{"timeout": "0s", "build_frequency": 0}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := DecodeArgs(tt.args)
			require.NoError(t, err)

			c, err := New(opts, Dependencies{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTimeout, c.Timeout())
			assert.Equal(t, tt.wantFrequency, c.BuildFrequency())
		})
	}
}

func TestLoad_FractionalTimeout(t *testing.T) {
	opts, err := Load(writeConfig(t, "timeout: 0.5\n"), nil)
	require.NoError(t, err)

	assert.Equal(t, Seconds(1), opts.Timeout)
}

func TestNew_UnitOverflow(t *testing.T) {
	tests := []struct {
		name  string
		args  map[string]any
		field string
	}{
		{"timeout beyond duration range", map[string]any{"timeout": "18446744074"}, "timeout"},
		{"timeout just past limit", map[string]any{"timeout": "9223372037"}, "timeout"},
		{"negative timeout beyond range", map[string]any{"timeout": "-9223372037"}, "timeout"},
		{"frequency beyond duration range", map[string]any{"build_frequency": "9223372036855"}, "build_frequency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := DecodeArgs(tt.args)
			require.NoError(t, err)

			_, err = New(opts, Dependencies{})
			require.Error(t, err)
			assert.True(t, IsKind(err, KindValidation))

			var cerr *Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.field, cerr.Field)
		})
	}

	t.Run("largest timeout accepted", func(t *testing.T) {
		opts := GetDefaultOptions()
		opts.Timeout = Seconds(math.MaxInt64 / int64(time.Second))

		c, err := New(opts, Dependencies{})
		require.NoError(t, err)
		assert.Positive(t, c.Timeout())
	})
}

func TestDecodeArgs_NonFiniteUnits(t *testing.T) {
	for _, v := range []any{math.NaN(), math.Inf(1), 1e19, "NaN"} {
		_, err := DecodeArgs(map[string]any{"timeout": v})
		assert.Error(t, err, "value %v", v)
	}
}

func TestUnitDuration_Saturates(t *testing.T) {
	assert.Equal(t, time.Duration(math.MaxInt64), Seconds(math.MaxInt64).Duration())
	assert.Equal(t, time.Duration(math.MinInt64), Milliseconds(math.MinInt64).Duration())
	assert.Equal(t, 3*time.Second, Seconds(3).Duration())
}

func TestSaveOptions_RoundTrip(t *testing.T) {
	opts := GetDefaultOptions()
	opts.Library = "badger"
	opts.ThreadsWrite = 3
	opts.Timeout = 120

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, SaveOptions(opts, path))

	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, opts, loaded)
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, Validate(GetDefaultOptions()))
	})

	t.Run("metrics port out of range", func(t *testing.T) {
		opts := GetDefaultOptions()
		opts.Metrics.Port = 70000

		err := Validate(opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max")
	})

	t.Run("sample rate out of range", func(t *testing.T) {
		opts := GetDefaultOptions()
		opts.Telemetry.SampleRate = 1.5
		assert.Error(t, Validate(opts))
	})
}

func TestApplyDefaults(t *testing.T) {
	opts := &Options{}
	ApplyDefaults(opts)

	assert.Equal(t, "INFO", opts.Logging.Level)
	assert.Equal(t, "text", opts.Logging.Format)
	assert.Equal(t, "stdout", opts.Logging.Output)
	assert.Equal(t, 9090, opts.Metrics.Port)
	assert.Equal(t, "localhost:4317", opts.Telemetry.Endpoint)
	assert.Equal(t, 1.0, opts.Telemetry.SampleRate)
	assert.Len(t, opts.Telemetry.Profiling.ProfileTypes, 6)

	// Experiment keys are untouched.
	assert.Equal(t, 0, opts.ThreadsRead)
}

func TestInitConfigToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gbench", "config.yaml")

	require.NoError(t, InitConfigToPath(path, false))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# gbench configuration file"))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(content, &decoded))
	assert.Equal(t, 5051789, decoded["seed"])
	assert.Equal(t, 3600, decoded["timeout"])

	t.Run("refuses to overwrite", func(t *testing.T) {
		err := InitConfigToPath(path, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("force overwrites", func(t *testing.T) {
		assert.NoError(t, InitConfigToPath(path, true))
	})

	t.Run("loads back to defaults", func(t *testing.T) {
		opts, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, GetDefaultOptions(), opts)
	})
}

func TestInitConfig_DefaultLocation(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := InitConfig(false)
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfigPath(), path)
	assert.True(t, DefaultConfigExists())
}
