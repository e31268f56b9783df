package library

import "errors"

var (
	// ErrUnknownLibrary is returned when no factory is registered under a name.
	ErrUnknownLibrary = errors.New("unknown library")

	// ErrDuplicateLibrary is returned when a name is registered twice.
	ErrDuplicateLibrary = errors.New("library already registered")

	// ErrVertexNotFound is returned by AddEdge when an endpoint is missing.
	ErrVertexNotFound = errors.New("vertex not found")

	// ErrInvalidWeight is returned by AddEdge for NaN or infinite weights.
	ErrInvalidWeight = errors.New("invalid edge weight")

	// ErrClosed is returned by mutators after Close.
	ErrClosed = errors.New("library instance closed")
)
