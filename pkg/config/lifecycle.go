package config

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/marmos91/graphbench/internal/logger"
	"github.com/marmos91/graphbench/internal/telemetry"
	"github.com/marmos91/graphbench/pkg/library"
	"github.com/marmos91/graphbench/pkg/metrics"
	"github.com/marmos91/graphbench/pkg/results"
)

// Dependencies are the collaborators a Configuration borrows.
type Dependencies struct {
	// Libraries resolves the library name. Nil means library.Default().
	Libraries *library.Registry

	// Connector opens the results store on demand. It keeps ownership of
	// the store. Nil leaves DB unusable.
	Connector *results.Connector

	// Metrics records configuration events. Nil disables recording.
	Metrics metrics.ConfigMetrics
}

var (
	initMu  sync.Mutex
	current atomic.Pointer[Configuration]
)

// New builds a Configuration from opts without publishing it.
//
// Every experiment key goes through its setter; the first validation error
// is returned and no Configuration is produced. A nil opts means defaults.
func New(opts *Options, deps Dependencies) (*Configuration, error) {
	if opts == nil {
		opts = GetDefaultOptions()
	}
	if deps.Libraries == nil {
		deps.Libraries = library.Default()
	}

	c := newDefault()
	c.libraries = deps.Libraries
	c.db.connector = deps.Connector
	c.metrics = deps.Metrics

	steps := []func() error{
		func() error { return c.SetLibrary(opts.Library) },
		func() error { return c.SetGraph(opts.Graph) },
		func() error { return c.SetDirected(opts.Directed) },
		func() error { return c.SetNumThreadsRead(opts.ThreadsRead) },
		func() error { return c.SetNumThreadsWrite(opts.ThreadsWrite) },
		func() error {
			d, err := unitsToDuration("timeout", int64(opts.Timeout), time.Second)
			if err != nil {
				return err
			}
			return c.SetTimeout(d)
		},
		func() error { return c.SetSeed(opts.Seed) },
		func() error { return c.SetMaxWeight(opts.MaxWeight) },
		func() error { return c.SetEFVertices(opts.EFVertices) },
		func() error { return c.SetEFEdges(opts.EFEdges) },
		func() error { return c.SetCoeffAging(opts.Aging) },
		func() error {
			d, err := unitsToDuration("build_frequency", int64(opts.BuildFrequency), time.Millisecond)
			if err != nil {
				return err
			}
			return c.SetBuildFrequency(d)
		},
		func() error { return c.SetNumRepetitions(opts.Repetitions) },
		func() error { return c.SetUpdateLog(opts.UpdateLog) },
		func() error { return c.SetValidateOutput(opts.Validate) },
		func() error { return c.SetDatabasePath(opts.Database) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	c.resolveLibrary()
	metrics.SetThreads(c.metrics, c.threadsRead, c.threadsWrite)
	return c, nil
}

// Initialise builds the process-wide Configuration and publishes it.
//
// It must run once, before any worker starts. A second call fails with
// KindMisuse and leaves the published instance untouched. An unregistered
// library does not fail initialisation; GenerateGraphLibrary reports it.
func Initialise(opts *Options, deps Dependencies) (*Configuration, error) {
	ctx, span := telemetry.StartConfigSpan(context.Background(), "initialise")
	defer span.End()

	initMu.Lock()
	defer initMu.Unlock()

	if current.Load() != nil {
		err := misuse("configuration already initialised")
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	c, err := New(opts, deps)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	span.SetAttributes(
		telemetry.Library(c.libraryName),
		telemetry.Graph(c.graphPath),
		telemetry.Directed(c.directed),
		telemetry.ThreadsRead(c.threadsRead),
		telemetry.ThreadsWrite(c.threadsWrite),
	)

	current.Store(c)
	logger.Debug("Configuration initialised", logger.Library(c.libraryName), logger.Graph(c.graphPath))
	return c, nil
}

// Current returns the published Configuration, or a KindMisuse error before
// Initialise has succeeded.
func Current() (*Configuration, error) {
	c := current.Load()
	if c == nil {
		return nil, misuse("configuration not initialised")
	}
	return c, nil
}

// MustCurrent is Current for callers that run strictly after Initialise.
// It panics before initialisation.
func MustCurrent() *Configuration {
	c, err := Current()
	if err != nil {
		panic(err)
	}
	return c
}

type contextKey struct{}

// WithConfiguration returns a copy of ctx carrying c.
func WithConfiguration(ctx context.Context, c *Configuration) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the Configuration carried by ctx, falling back to the
// published instance. It fails with KindMisuse when neither exists.
func FromContext(ctx context.Context) (*Configuration, error) {
	if c, ok := ctx.Value(contextKey{}).(*Configuration); ok && c != nil {
		return c, nil
	}
	return Current()
}
