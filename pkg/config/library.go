package config

import (
	"fmt"

	"github.com/marmos91/graphbench/internal/logger"
	"github.com/marmos91/graphbench/pkg/library"
	"github.com/marmos91/graphbench/pkg/metrics"
)

// resolveLibrary looks up the configured library once. A failed lookup is
// kept and reported by GenerateGraphLibrary, so building a Configuration for
// an unregistered library still succeeds.
func (c *Configuration) resolveLibrary() {
	c.factory, c.factoryErr = nil, nil

	if c.libraryName == "" {
		c.factoryErr = library.ErrUnknownLibrary
		return
	}

	factory, err := c.libraries.Lookup(c.libraryName)
	if err != nil {
		logger.Debug("Library not registered", logger.Library(c.libraryName), "available", c.libraries.Names())
		c.factoryErr = err
		return
	}
	c.factory = factory
}

// GenerateGraphLibrary builds a new adapter instance for the configured
// library, oriented by IsDirected. The caller owns the instance and must
// Close it. An unset or unregistered library yields a KindResolution error.
func (c *Configuration) GenerateGraphLibrary() (library.Interface, error) {
	if c.libraryName == "" {
		return nil, &Error{
			Kind:    KindResolution,
			Field:   "library",
			Message: "library not set",
			Err:     library.ErrUnknownLibrary,
		}
	}
	if c.factory == nil {
		return nil, &Error{
			Kind:    KindResolution,
			Field:   "library",
			Value:   c.libraryName,
			Message: "no factory registered under this name",
			Err:     c.factoryErr,
		}
	}

	impl, err := c.factory(c.directed)
	if err != nil {
		return nil, fmt.Errorf("failed to create library %q: %w", c.libraryName, err)
	}

	metrics.LibraryCreated(c.metrics, c.libraryName, c.directed)
	logger.Debug("Graph library created", logger.Library(c.libraryName), logger.Directed(c.directed))
	return impl, nil
}

// Libraries returns the registry the library was resolved against.
func (c *Configuration) Libraries() *library.Registry {
	return c.libraries
}
