// Package badger provides a graph library adapter backed by an in-memory
// BadgerDB instance.
//
// Key layout (all integers big-endian):
//
//	v | vertex          -> empty
//	e | source | dest   -> float64 weight bits
//	r | dest | source   -> empty (reverse index for incident-edge scans)
//
// Undirected edges are stored once, with source <= dest.
package badger

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/marmos91/graphbench/internal/logger"
	"github.com/marmos91/graphbench/pkg/library"
)

// Name is the registry key of this adapter.
const Name = "badger"

const (
	prefixVertex  byte = 'v'
	prefixEdge    byte = 'e'
	prefixReverse byte = 'r'
)

func init() {
	library.Register(Name, New)
}

// Graph stores vertices and edges in BadgerDB.
type Graph struct {
	db       *badgerdb.DB
	directed bool

	// writeMu serializes mutations so the counters stay in step with the store.
	writeMu     sync.Mutex
	closed      atomic.Bool
	numVertices atomic.Uint64
	numEdges    atomic.Uint64
}

// New opens an in-memory BadgerDB instance. It matches library.Factory.
func New(directed bool) (library.Interface, error) {
	opts := badgerdb.DefaultOptions("").
		WithInMemory(true).
		WithLogger(badgerLogger{})

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	return &Graph{db: db, directed: directed}, nil
}

func (g *Graph) Name() string        { return Name }
func (g *Graph) IsDirected() bool    { return g.directed }
func (g *Graph) NumVertices() uint64 { return g.numVertices.Load() }
func (g *Graph) NumEdges() uint64    { return g.numEdges.Load() }

func (g *Graph) HasVertex(vertex uint64) bool {
	found := false
	_ = g.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(vertexKey(vertex))
		found = err == nil
		return nil
	})
	return found
}

func (g *Graph) HasEdge(source, destination uint64) bool {
	_, ok := g.GetWeight(source, destination)
	return ok
}

func (g *Graph) GetWeight(source, destination uint64) (float64, bool) {
	source, destination = g.orient(source, destination)

	var (
		weight float64
		found  bool
	)
	_ = g.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(edgeKey(source, destination))
		if err != nil {
			return nil
		}
		return item.Value(func(val []byte) error {
			weight = math.Float64frombits(binary.BigEndian.Uint64(val))
			found = true
			return nil
		})
	})
	return weight, found
}

func (g *Graph) AddVertex(vertex uint64) (bool, error) {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	if g.closed.Load() {
		return false, library.ErrClosed
	}

	added := false
	err := g.db.Update(func(txn *badgerdb.Txn) error {
		key := vertexKey(vertex)
		if _, err := txn.Get(key); err == nil {
			return nil
		} else if !errors.Is(err, badgerdb.ErrKeyNotFound) {
			return err
		}
		added = true
		return txn.Set(key, nil)
	})
	if err != nil {
		return false, fmt.Errorf("add vertex %d: %w", vertex, err)
	}
	if added {
		g.numVertices.Add(1)
	}
	return added, nil
}

func (g *Graph) RemoveVertex(vertex uint64) (bool, error) {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	if g.closed.Load() {
		return false, library.ErrClosed
	}

	var removed bool
	var edges uint64
	err := g.db.Update(func(txn *badgerdb.Txn) error {
		if _, err := txn.Get(vertexKey(vertex)); errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		removed = true

		// Outgoing edges (or undirected edges where vertex is the lower endpoint).
		outgoing, err := collectSuffixes(txn, prefixEdge, vertex)
		if err != nil {
			return err
		}
		for _, dst := range outgoing {
			if err := deleteEdge(txn, vertex, dst); err != nil {
				return err
			}
			edges++
		}

		incoming, err := collectSuffixes(txn, prefixReverse, vertex)
		if err != nil {
			return err
		}
		for _, src := range incoming {
			if src == vertex {
				continue // self loop, already deleted above
			}
			if err := deleteEdge(txn, src, vertex); err != nil {
				return err
			}
			edges++
		}

		return txn.Delete(vertexKey(vertex))
	})
	if err != nil {
		return false, fmt.Errorf("remove vertex %d: %w", vertex, err)
	}
	if removed {
		g.numVertices.Add(^uint64(0))
		g.numEdges.Add(^(edges - 1))
	}
	return removed, nil
}

func (g *Graph) AddEdge(source, destination uint64, weight float64) (bool, error) {
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return false, library.ErrInvalidWeight
	}

	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	if g.closed.Load() {
		return false, library.ErrClosed
	}

	source, destination = g.orient(source, destination)

	added := false
	err := g.db.Update(func(txn *badgerdb.Txn) error {
		for _, v := range []uint64{source, destination} {
			if _, err := txn.Get(vertexKey(v)); errors.Is(err, badgerdb.ErrKeyNotFound) {
				return library.ErrVertexNotFound
			} else if err != nil {
				return err
			}
		}

		key := edgeKey(source, destination)
		if _, err := txn.Get(key); err == nil {
			return nil
		} else if !errors.Is(err, badgerdb.ErrKeyNotFound) {
			return err
		}

		var val [8]byte
		binary.BigEndian.PutUint64(val[:], math.Float64bits(weight))
		if err := txn.Set(key, val[:]); err != nil {
			return err
		}
		added = true
		return txn.Set(reverseKey(source, destination), nil)
	})
	if err != nil {
		if errors.Is(err, library.ErrVertexNotFound) {
			return false, err
		}
		return false, fmt.Errorf("add edge %d->%d: %w", source, destination, err)
	}
	if added {
		g.numEdges.Add(1)
	}
	return added, nil
}

func (g *Graph) RemoveEdge(source, destination uint64) (bool, error) {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	if g.closed.Load() {
		return false, library.ErrClosed
	}

	source, destination = g.orient(source, destination)

	removed := false
	err := g.db.Update(func(txn *badgerdb.Txn) error {
		if _, err := txn.Get(edgeKey(source, destination)); errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		removed = true
		return deleteEdge(txn, source, destination)
	})
	if err != nil {
		return false, fmt.Errorf("remove edge %d->%d: %w", source, destination, err)
	}
	if removed {
		g.numEdges.Add(^uint64(0))
	}
	return removed, nil
}

// Close closes the underlying BadgerDB instance. It is idempotent.
func (g *Graph) Close() error {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	if g.closed.Swap(true) {
		return nil
	}
	return g.db.Close()
}

// orient maps an undirected edge to its canonical (low, high) form.
func (g *Graph) orient(source, destination uint64) (uint64, uint64) {
	if !g.directed && source > destination {
		return destination, source
	}
	return source, destination
}

func deleteEdge(txn *badgerdb.Txn, source, destination uint64) error {
	if err := txn.Delete(edgeKey(source, destination)); err != nil {
		return err
	}
	return txn.Delete(reverseKey(source, destination))
}

// collectSuffixes returns the second vertex of every key under prefix|vertex.
func collectSuffixes(txn *badgerdb.Txn, prefix byte, vertex uint64) ([]uint64, error) {
	opts := badgerdb.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = pairKey(prefix, vertex)

	it := txn.NewIterator(opts)
	defer it.Close()

	var out []uint64
	for it.Rewind(); it.Valid(); it.Next() {
		key := it.Item().Key()
		out = append(out, binary.BigEndian.Uint64(key[9:17]))
	}
	return out, nil
}

func vertexKey(vertex uint64) []byte {
	return pairKey(prefixVertex, vertex)
}

func edgeKey(source, destination uint64) []byte {
	key := make([]byte, 17)
	key[0] = prefixEdge
	binary.BigEndian.PutUint64(key[1:9], source)
	binary.BigEndian.PutUint64(key[9:17], destination)
	return key
}

func reverseKey(source, destination uint64) []byte {
	key := make([]byte, 17)
	key[0] = prefixReverse
	binary.BigEndian.PutUint64(key[1:9], destination)
	binary.BigEndian.PutUint64(key[9:17], source)
	return key
}

func pairKey(prefix byte, vertex uint64) []byte {
	key := make([]byte, 9)
	key[0] = prefix
	binary.BigEndian.PutUint64(key[1:9], vertex)
	return key
}

// badgerLogger forwards BadgerDB diagnostics to the process logger.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any)   { logger.Errorf("badger: "+format, args...) }
func (badgerLogger) Warningf(format string, args ...any) { logger.Warnf("badger: "+format, args...) }
func (badgerLogger) Infof(string, ...any)                {}
func (badgerLogger) Debugf(string, ...any)               {}
