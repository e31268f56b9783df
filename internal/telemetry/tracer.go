package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for experiment spans.
const (
	AttrLibrary      = "graph.library"
	AttrGraph        = "graph.path"
	AttrDirected     = "graph.directed"
	AttrThreadsRead  = "bench.threads_read"
	AttrThreadsWrite = "bench.threads_write"
	AttrRunID        = "bench.run_id"
	AttrDatabase     = "bench.database"
	AttrCount        = "bench.count"
)

func Library(name string) attribute.KeyValue  { return attribute.String(AttrLibrary, name) }
func Graph(path string) attribute.KeyValue    { return attribute.String(AttrGraph, path) }
func Directed(d bool) attribute.KeyValue      { return attribute.Bool(AttrDirected, d) }
func ThreadsRead(n int) attribute.KeyValue    { return attribute.Int(AttrThreadsRead, n) }
func ThreadsWrite(n int) attribute.KeyValue   { return attribute.Int(AttrThreadsWrite, n) }
func RunID(id string) attribute.KeyValue      { return attribute.String(AttrRunID, id) }
func Database(path string) attribute.KeyValue { return attribute.String(AttrDatabase, path) }
func Count(n int) attribute.KeyValue          { return attribute.Int(AttrCount, n) }

// StartConfigSpan starts a span for a configuration-layer operation,
// named "config.<operation>".
func StartConfigSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, "config."+operation, trace.WithAttributes(attrs...))
}

// StartResultsSpan starts a span for a results-store operation,
// named "results.<operation>".
func StartResultsSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, "results."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}
