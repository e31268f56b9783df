package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// useRecorder installs an in-memory span recorder as the tracer for one test.
func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	rec := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	mu.Lock()
	prev := tracer
	tracer = provider.Tracer("test")
	mu.Unlock()

	t.Cleanup(func() {
		mu.Lock()
		tracer = prev
		mu.Unlock()
		_ = provider.Shutdown(context.Background())
	})
	return rec
}

func TestResourceAttributes(t *testing.T) {
	t.Run("experiment tags", func(t *testing.T) {
		attrs := resourceAttributes(Config{
			ServiceName:    "gbench",
			ServiceVersion: "dev",
			Library:        "badger",
			Graph:          "/data/g.graph",
		})

		set := attribute.NewSet(attrs...)
		v, ok := set.Value(AttrLibrary)
		require.True(t, ok)
		assert.Equal(t, "badger", v.AsString())
		v, ok = set.Value(AttrGraph)
		require.True(t, ok)
		assert.Equal(t, "/data/g.graph", v.AsString())
		v, ok = set.Value("service.name")
		require.True(t, ok)
		assert.Equal(t, "gbench", v.AsString())
	})

	t.Run("empty tags omitted", func(t *testing.T) {
		set := attribute.NewSet(resourceAttributes(Config{ServiceName: "gbench"})...)
		assert.False(t, set.HasValue(AttrLibrary))
		assert.False(t, set.HasValue(AttrGraph))
	})
}

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()

	shutdown, err := Init(ctx, Config{ServiceName: "gbench", Library: "adjacency"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	assert.NoError(t, shutdown(ctx))
	assert.False(t, IsEnabled())
}

func TestTracerBeforeInit(t *testing.T) {
	mu.Lock()
	tracer = nil
	mu.Unlock()

	require.NotNil(t, Tracer())

	ctx, span := StartSpan(context.Background(), "noop")
	require.NotNil(t, ctx)
	span.End()
	assert.Equal(t, "", TraceID(ctx))
}

func TestStartConfigSpan(t *testing.T) {
	rec := useRecorder(t)

	ctx, span := StartConfigSpan(context.Background(), "initialise",
		Library("adjacency"), Directed(false), ThreadsRead(4))
	assert.NotEmpty(t, TraceID(ctx))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "config.initialise", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.String(AttrLibrary, "adjacency"))
	assert.Contains(t, ended[0].Attributes(), attribute.Bool(AttrDirected, false))
	assert.Contains(t, ended[0].Attributes(), attribute.Int(AttrThreadsRead, 4))
}

func TestStartResultsSpan_RecordError(t *testing.T) {
	rec := useRecorder(t)

	ctx, span := StartResultsSpan(context.Background(), "save_parameters", Database("results.db"))
	RecordError(ctx, nil)
	RecordError(ctx, errors.New("disk full"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "results.save_parameters", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "disk full", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
}

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), samplerFor(0).Description())
	assert.Equal(t, sdktrace.TraceIDRatioBased(0.25).Description(), samplerFor(0.25).Description())
}

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		attr attribute.KeyValue
		key  string
	}{
		{Library("badger"), AttrLibrary},
		{Graph("/tmp/g.graph"), AttrGraph},
		{Directed(true), AttrDirected},
		{ThreadsRead(1), AttrThreadsRead},
		{ThreadsWrite(2), AttrThreadsWrite},
		{RunID("abc"), AttrRunID},
		{Database("results.db"), AttrDatabase},
		{Count(3), AttrCount},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.key, string(tt.attr.Key))
		})
	}
}

func TestInitProfilingDisabled(t *testing.T) {
	shutdown, err := InitProfiling(ProfilingConfig{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown())
	assert.False(t, IsProfilingEnabled())
}

func TestInitProfiling_InvalidType(t *testing.T) {
	_, err := InitProfiling(ProfilingConfig{Enabled: true, ProfileTypes: []string{"heap"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "heap")
	assert.False(t, IsProfilingEnabled())
}

func TestParseProfileType(t *testing.T) {
	for name := range profileTypes {
		_, err := parseProfileType(name)
		assert.NoError(t, err, name)
	}
	_, err := parseProfileType("unknown")
	assert.Error(t, err)
}
