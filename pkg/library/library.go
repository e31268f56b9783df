package library

// Interface is implemented by every graph library adapter.
//
// Vertex and edge mutators report whether the graph changed: inserting an
// existing element or removing a missing one returns false with a nil error.
// Implementations must be safe for concurrent use by the reader and writer
// threads of an experiment.
type Interface interface {
	// Name returns the name the adapter was registered under.
	Name() string

	// IsDirected reports the orientation chosen at construction.
	IsDirected() bool

	NumVertices() uint64
	NumEdges() uint64

	HasVertex(vertex uint64) bool

	// HasEdge reports whether the edge exists. For undirected adapters
	// HasEdge(a, b) == HasEdge(b, a).
	HasEdge(source, destination uint64) bool

	// GetWeight returns the weight of the edge and whether it exists.
	GetWeight(source, destination uint64) (float64, bool)

	AddVertex(vertex uint64) (bool, error)

	// RemoveVertex deletes the vertex together with all its incident edges.
	RemoveVertex(vertex uint64) (bool, error)

	// AddEdge inserts a weighted edge. Both endpoints must already exist.
	AddEdge(source, destination uint64, weight float64) (bool, error)

	RemoveEdge(source, destination uint64) (bool, error)

	// Close releases the resources held by the adapter.
	Close() error
}

// Factory builds a new adapter instance with the given orientation.
type Factory func(directed bool) (Interface, error)
