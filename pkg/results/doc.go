// Package results persists experiment parameter snapshots.
//
// A Store wraps a GORM connection to either SQLite or PostgreSQL, chosen from
// the database path. A Connector owns the stores of a process: it opens each
// path once and closes everything on shutdown. Consumers such as the
// experiment configuration only borrow the handle.
package results
