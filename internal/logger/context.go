package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

var runContextKey = contextKey{}

// RunContext holds the experiment-scoped fields attached to every *Ctx log call.
type RunContext struct {
	TraceID   string    // OpenTelemetry trace ID
	RunID     string    // Identifier of the persisted parameter snapshot
	Phase     string    // init, load, aging, algorithms, ...
	Library   string    // Configured library adapter
	Graph     string    // Path of the graph under test
	StartTime time.Time // For duration calculation
}

// WithContext returns a new context carrying rc.
func WithContext(ctx context.Context, rc *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey, rc)
}

// FromContext retrieves the RunContext from ctx, or nil if not present.
func FromContext(ctx context.Context) *RunContext {
	if ctx == nil {
		return nil
	}
	rc, _ := ctx.Value(runContextKey).(*RunContext)
	return rc
}

// NewRunContext creates a RunContext for the given library and graph.
func NewRunContext(library, graph string) *RunContext {
	return &RunContext{
		Library:   library,
		Graph:     graph,
		StartTime: time.Now(),
	}
}

// Clone creates a copy of the RunContext
func (rc *RunContext) Clone() *RunContext {
	if rc == nil {
		return nil
	}
	clone := *rc
	return &clone
}

// WithPhase returns a copy with the phase set
func (rc *RunContext) WithPhase(phase string) *RunContext {
	clone := rc.Clone()
	if clone != nil {
		clone.Phase = phase
	}
	return clone
}

// WithRunID returns a copy with the run ID set
func (rc *RunContext) WithRunID(id string) *RunContext {
	clone := rc.Clone()
	if clone != nil {
		clone.RunID = id
	}
	return clone
}

// WithTrace returns a copy with the trace ID set
func (rc *RunContext) WithTrace(traceID string) *RunContext {
	clone := rc.Clone()
	if clone != nil {
		clone.TraceID = traceID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (rc *RunContext) DurationMs() float64 {
	if rc == nil || rc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(rc.StartTime).Microseconds()) / 1000.0
}
