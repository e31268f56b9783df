package results

import (
	"context"
	"errors"
	"sync"

	"github.com/marmos91/graphbench/internal/logger"
)

// Connector owns the results stores of a process. Get opens a store on first
// use of a path and returns the same handle afterwards; Close closes them all.
// Borrowers must not close the stores they obtain.
type Connector struct {
	mu     sync.Mutex
	stores map[string]*Store
	closed bool
	open   func(ctx context.Context, cfg *Config) (*Store, error)
}

// NewConnector creates a Connector that opens stores with New.
func NewConnector() *Connector {
	return &Connector{
		stores: make(map[string]*Store),
		open:   New,
	}
}

// Get returns the store for path, opening it if needed.
func (c *Connector) Get(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrConnectorDone
	}
	if s, ok := c.stores[path]; ok {
		return s, nil
	}

	s, err := c.open(ctx, &Config{Path: path})
	if err != nil {
		return nil, err
	}
	c.stores[path] = s
	return s, nil
}

// Close closes every store opened by the connector. Further calls to Get fail.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	for path, s := range c.stores {
		if err := s.Close(); err != nil {
			logger.Warn("Failed to close results store", logger.Err(err))
			errs = append(errs, err)
		}
		delete(c.stores, path)
	}
	return errors.Join(errs...)
}
