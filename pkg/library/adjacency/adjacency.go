// Package adjacency provides an in-memory adjacency-map graph library.
//
// It is the reference adapter of the harness: no external dependencies, every
// operation under a single RWMutex. Undirected graphs store each edge in both
// endpoint maps and count it once.
package adjacency

import (
	"math"
	"sync"

	"github.com/marmos91/graphbench/pkg/library"
)

// Name is the registry key of this adapter.
const Name = "adjacency"

func init() {
	library.Register(Name, New)
}

// Graph is an adjacency-map graph.
type Graph struct {
	mu       sync.RWMutex
	directed bool
	closed   bool
	out      map[uint64]map[uint64]float64
	numEdges uint64
}

// New creates an empty graph. It matches library.Factory.
func New(directed bool) (library.Interface, error) {
	return &Graph{
		directed: directed,
		out:      make(map[uint64]map[uint64]float64),
	}, nil
}

func (g *Graph) Name() string     { return Name }
func (g *Graph) IsDirected() bool { return g.directed }

func (g *Graph) NumVertices() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return uint64(len(g.out))
}

func (g *Graph) NumEdges() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.numEdges
}

func (g *Graph) HasVertex(vertex uint64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.out[vertex]
	return ok
}

func (g *Graph) HasEdge(source, destination uint64) bool {
	_, ok := g.GetWeight(source, destination)
	return ok
}

func (g *Graph) GetWeight(source, destination uint64) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	neighbours, ok := g.out[source]
	if !ok {
		return 0, false
	}
	w, ok := neighbours[destination]
	return w, ok
}

func (g *Graph) AddVertex(vertex uint64) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return false, library.ErrClosed
	}
	if _, ok := g.out[vertex]; ok {
		return false, nil
	}
	g.out[vertex] = make(map[uint64]float64)
	return true, nil
}

func (g *Graph) RemoveVertex(vertex uint64) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return false, library.ErrClosed
	}
	neighbours, ok := g.out[vertex]
	if !ok {
		return false, nil
	}

	if g.directed {
		g.numEdges -= uint64(len(neighbours))
		// Drop incoming edges.
		for src, adj := range g.out {
			if _, ok := adj[vertex]; ok && src != vertex {
				delete(adj, vertex)
				g.numEdges--
			}
		}
	} else {
		for dst := range neighbours {
			if dst != vertex {
				delete(g.out[dst], vertex)
			}
			g.numEdges--
		}
	}

	delete(g.out, vertex)
	return true, nil
}

func (g *Graph) AddEdge(source, destination uint64, weight float64) (bool, error) {
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return false, library.ErrInvalidWeight
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return false, library.ErrClosed
	}
	src, ok := g.out[source]
	if !ok {
		return false, library.ErrVertexNotFound
	}
	dst, ok := g.out[destination]
	if !ok {
		return false, library.ErrVertexNotFound
	}
	if _, exists := src[destination]; exists {
		return false, nil
	}

	src[destination] = weight
	if !g.directed {
		dst[source] = weight
	}
	g.numEdges++
	return true, nil
}

func (g *Graph) RemoveEdge(source, destination uint64) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return false, library.ErrClosed
	}
	src, ok := g.out[source]
	if !ok {
		return false, nil
	}
	if _, exists := src[destination]; !exists {
		return false, nil
	}

	delete(src, destination)
	if !g.directed {
		delete(g.out[destination], source)
	}
	g.numEdges--
	return true, nil
}

// Close drops the adjacency maps. Further mutations fail with library.ErrClosed.
func (g *Graph) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true
	g.out = make(map[uint64]map[uint64]float64)
	g.numEdges = 0
	return nil
}
