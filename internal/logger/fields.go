package logger

import "log/slog"

// Standard field keys for structured logging.
// Use these keys consistently so runs can be grepped and aggregated.
const (
	KeyTraceID = "trace_id" // OpenTelemetry trace ID
	KeyRunID   = "run_id"   // Persisted parameter snapshot
	KeyPhase   = "phase"    // Experiment phase

	KeyLibrary  = "library"  // Library adapter name
	KeyGraph    = "graph"    // Graph path
	KeyDirected = "directed" // Graph orientation

	KeyThreadsRead  = "threads_read"
	KeyThreadsWrite = "threads_write"
	KeyTimeout      = "timeout"
	KeySeed         = "seed"

	KeyDatabase   = "database"    // Results database path
	KeyField      = "field"       // Configuration field name
	KeyValue      = "value"       // Configuration field value
	KeyCount      = "count"       // Generic count
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
)

// RunID returns a slog.Attr for the run identifier
func RunID(id string) slog.Attr {
	return slog.String(KeyRunID, id)
}

// Phase returns a slog.Attr for the experiment phase
func Phase(p string) slog.Attr {
	return slog.String(KeyPhase, p)
}

// Library returns a slog.Attr for the library adapter name
func Library(name string) slog.Attr {
	return slog.String(KeyLibrary, name)
}

// Graph returns a slog.Attr for the graph path
func Graph(path string) slog.Attr {
	return slog.String(KeyGraph, path)
}

// Directed returns a slog.Attr for the graph orientation
func Directed(d bool) slog.Attr {
	return slog.Bool(KeyDirected, d)
}

// Field returns a slog.Attr for a configuration field name
func Field(name string) slog.Attr {
	return slog.String(KeyField, name)
}

// Value returns a slog.Attr for a configuration value
func Value(v any) slog.Attr {
	return slog.Any(KeyValue, v)
}

// Count returns a slog.Attr for a count
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error, or an empty attr for nil
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
