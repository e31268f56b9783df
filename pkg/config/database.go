package config

import (
	"context"
	"sync"

	"github.com/marmos91/graphbench/internal/logger"
	"github.com/marmos91/graphbench/internal/telemetry"
	"github.com/marmos91/graphbench/pkg/metrics"
	"github.com/marmos91/graphbench/pkg/results"
)

// dbRef is a borrowed reference to the results store. The store belongs to
// the connector; the configuration never closes it.
type dbRef struct {
	mu        sync.Mutex
	connector *results.Connector
	store     *results.Store
	released  bool
}

// HasDatabase reports whether a results database is configured.
func (c *Configuration) HasDatabase() bool {
	return c.databasePath != ""
}

// DB returns the results store, opening it through the connector on first
// use. Calling DB without a configured database is a KindMisuse error.
func (c *Configuration) DB(ctx context.Context) (*results.Store, error) {
	if !c.HasDatabase() {
		return nil, misuse("no results database configured")
	}

	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	if c.db.released {
		return nil, misuse("results database reference already released")
	}
	if c.db.store != nil {
		return c.db.store, nil
	}
	if c.db.connector == nil {
		return nil, misuse("no results connector provided")
	}

	store, err := c.db.connector.Get(ctx, c.databasePath)
	if err != nil {
		return nil, err
	}
	c.db.store = store
	return store, nil
}

// SaveParameters writes the current snapshot to the results database and
// returns the new run. Failures are logged and returned; nothing is retried.
func (c *Configuration) SaveParameters(ctx context.Context) (*results.Run, error) {
	ctx, span := telemetry.StartConfigSpan(ctx, "save_parameters",
		telemetry.Library(c.libraryName), telemetry.Database(c.databasePath))
	defer span.End()

	store, err := c.DB(ctx)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	run, err := store.SaveParameters(ctx, c.Snapshot().Map())
	metrics.ParametersSaved(c.metrics, err == nil)
	if err != nil {
		telemetry.RecordError(ctx, err)
		logger.WarnCtx(ctx, "Failed to save parameters", logger.Err(err))
		return nil, err
	}

	logger.InfoCtx(ctx, "Parameters saved", logger.RunID(run.ID), logger.Count(len(run.Parameters)))
	return run, nil
}

// Release drops the reference to the results store without closing it.
// Later calls to DB fail. It is idempotent.
func (c *Configuration) Release() {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	c.db.store = nil
	c.db.connector = nil
	c.db.released = true
}
