package results

import (
	"strings"
)

// Backend identifies the database engine behind a Store.
type Backend string

const (
	// BackendSQLite stores results in a local SQLite file (default).
	BackendSQLite Backend = "sqlite"

	// BackendPostgres stores results in a PostgreSQL database.
	BackendPostgres Backend = "postgres"
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

// Config describes how to open a Store.
type Config struct {
	// Path is either a postgres:// URL or an SQLite file path.
	Path string

	// MaxOpenConns and MaxIdleConns size the PostgreSQL pool.
	MaxOpenConns int
	MaxIdleConns int
}

// Backend returns the engine selected by Path.
func (c *Config) Backend() Backend {
	if strings.HasPrefix(c.Path, "postgres://") || strings.HasPrefix(c.Path, "postgresql://") {
		return BackendPostgres
	}
	return BackendSQLite
}

// ApplyDefaults fills in pool sizes.
func (c *Config) ApplyDefaults() {
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 10
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 2
	}
}

// Validate checks that a path is set.
func (c *Config) Validate() error {
	if c.Path == "" {
		return ErrEmptyPath
	}
	return nil
}
