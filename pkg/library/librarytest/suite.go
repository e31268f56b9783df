// Package librarytest provides a conformance suite for library.Interface
// implementations. Adapter packages call RunConformanceSuite from their tests.
package librarytest

import (
	"math"
	"sync"
	"testing"

	"github.com/marmos91/graphbench/pkg/library"
)

// RunConformanceSuite runs every conformance test against factory.
// Each test gets a fresh instance, closed through t.Cleanup.
func RunConformanceSuite(t *testing.T, name string, factory library.Factory) {
	t.Helper()

	for _, directed := range []bool{true, false} {
		orientation := "Undirected"
		if directed {
			orientation = "Directed"
		}

		t.Run(orientation, func(t *testing.T) {
			t.Run("Orientation", func(t *testing.T) { testOrientation(t, name, factory, directed) })
			t.Run("Vertices", func(t *testing.T) { testVertices(t, factory, directed) })
			t.Run("Edges", func(t *testing.T) { testEdges(t, factory, directed) })
			t.Run("EdgeNeedsEndpoints", func(t *testing.T) { testEdgeNeedsEndpoints(t, factory, directed) })
			t.Run("InvalidWeight", func(t *testing.T) { testInvalidWeight(t, factory, directed) })
			t.Run("RemoveVertexDropsEdges", func(t *testing.T) { testRemoveVertexDropsEdges(t, factory, directed) })
			t.Run("ConcurrentInserts", func(t *testing.T) { testConcurrentInserts(t, factory, directed) })
			t.Run("Close", func(t *testing.T) { testClose(t, factory, directed) })
		})
	}

	t.Run("IndependentInstances", func(t *testing.T) { testIndependentInstances(t, factory) })
}

func newInstance(t *testing.T, factory library.Factory, directed bool) library.Interface {
	t.Helper()

	impl, err := factory(directed)
	if err != nil {
		t.Fatalf("factory(%v) failed: %v", directed, err)
	}
	if impl == nil {
		t.Fatalf("factory(%v) returned nil", directed)
	}
	t.Cleanup(func() { _ = impl.Close() })
	return impl
}

func mustAddVertices(t *testing.T, impl library.Interface, vertices ...uint64) {
	t.Helper()
	for _, v := range vertices {
		if _, err := impl.AddVertex(v); err != nil {
			t.Fatalf("AddVertex(%d) failed: %v", v, err)
		}
	}
}

func testOrientation(t *testing.T, name string, factory library.Factory, directed bool) {
	impl := newInstance(t, factory, directed)

	if impl.IsDirected() != directed {
		t.Errorf("IsDirected() = %v, want %v", impl.IsDirected(), directed)
	}
	if impl.Name() != name {
		t.Errorf("Name() = %q, want %q", impl.Name(), name)
	}
	if impl.NumVertices() != 0 || impl.NumEdges() != 0 {
		t.Errorf("new instance not empty: %d vertices, %d edges", impl.NumVertices(), impl.NumEdges())
	}
}

func testVertices(t *testing.T, factory library.Factory, directed bool) {
	impl := newInstance(t, factory, directed)

	added, err := impl.AddVertex(10)
	if err != nil || !added {
		t.Fatalf("AddVertex(10) = %v, %v; want true, nil", added, err)
	}
	added, err = impl.AddVertex(10)
	if err != nil || added {
		t.Fatalf("duplicate AddVertex(10) = %v, %v; want false, nil", added, err)
	}
	if !impl.HasVertex(10) {
		t.Error("HasVertex(10) = false after insert")
	}
	if impl.NumVertices() != 1 {
		t.Errorf("NumVertices() = %d, want 1", impl.NumVertices())
	}

	removed, err := impl.RemoveVertex(10)
	if err != nil || !removed {
		t.Fatalf("RemoveVertex(10) = %v, %v; want true, nil", removed, err)
	}
	removed, err = impl.RemoveVertex(10)
	if err != nil || removed {
		t.Fatalf("second RemoveVertex(10) = %v, %v; want false, nil", removed, err)
	}
	if impl.HasVertex(10) || impl.NumVertices() != 0 {
		t.Error("vertex still visible after removal")
	}
}

func testEdges(t *testing.T, factory library.Factory, directed bool) {
	impl := newInstance(t, factory, directed)
	mustAddVertices(t, impl, 1, 2, 3)

	added, err := impl.AddEdge(1, 2, 0.5)
	if err != nil || !added {
		t.Fatalf("AddEdge(1,2) = %v, %v; want true, nil", added, err)
	}

	if !impl.HasEdge(1, 2) {
		t.Error("HasEdge(1,2) = false after insert")
	}
	if impl.HasEdge(2, 1) == directed {
		t.Errorf("HasEdge(2,1) = %v for directed=%v", impl.HasEdge(2, 1), directed)
	}
	if w, ok := impl.GetWeight(1, 2); !ok || w != 0.5 {
		t.Errorf("GetWeight(1,2) = %v, %v; want 0.5, true", w, ok)
	}

	// The reverse insert is a new edge only when directed.
	added, err = impl.AddEdge(2, 1, 0.7)
	if err != nil {
		t.Fatalf("AddEdge(2,1) failed: %v", err)
	}
	if added != directed {
		t.Errorf("AddEdge(2,1) added = %v, want %v", added, directed)
	}

	wantEdges := uint64(1)
	if directed {
		wantEdges = 2
	}
	if impl.NumEdges() != wantEdges {
		t.Errorf("NumEdges() = %d, want %d", impl.NumEdges(), wantEdges)
	}

	removed, err := impl.RemoveEdge(1, 2)
	if err != nil || !removed {
		t.Fatalf("RemoveEdge(1,2) = %v, %v; want true, nil", removed, err)
	}
	if impl.HasEdge(1, 2) {
		t.Error("HasEdge(1,2) = true after removal")
	}
	if impl.NumEdges() != wantEdges-1 {
		t.Errorf("NumEdges() = %d after removal, want %d", impl.NumEdges(), wantEdges-1)
	}

	removed, err = impl.RemoveEdge(1, 3)
	if err != nil || removed {
		t.Errorf("RemoveEdge(1,3) = %v, %v; want false, nil", removed, err)
	}
}

func testEdgeNeedsEndpoints(t *testing.T, factory library.Factory, directed bool) {
	impl := newInstance(t, factory, directed)
	mustAddVertices(t, impl, 1)

	if _, err := impl.AddEdge(1, 99, 1); err == nil {
		t.Error("AddEdge to missing vertex succeeded")
	}
	if impl.NumEdges() != 0 {
		t.Errorf("NumEdges() = %d, want 0", impl.NumEdges())
	}
}

func testInvalidWeight(t *testing.T, factory library.Factory, directed bool) {
	impl := newInstance(t, factory, directed)
	mustAddVertices(t, impl, 1, 2)

	for _, w := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := impl.AddEdge(1, 2, w); err == nil {
			t.Errorf("AddEdge with weight %v succeeded", w)
		}
	}
}

func testRemoveVertexDropsEdges(t *testing.T, factory library.Factory, directed bool) {
	impl := newInstance(t, factory, directed)
	mustAddVertices(t, impl, 1, 2, 3, 4)

	edges := [][2]uint64{{1, 2}, {3, 1}, {1, 1}, {2, 4}}
	for _, e := range edges {
		if _, err := impl.AddEdge(e[0], e[1], 1); err != nil {
			t.Fatalf("AddEdge(%d,%d) failed: %v", e[0], e[1], err)
		}
	}

	if _, err := impl.RemoveVertex(1); err != nil {
		t.Fatalf("RemoveVertex(1) failed: %v", err)
	}

	if impl.NumEdges() != 1 {
		t.Errorf("NumEdges() = %d after removing vertex 1, want 1", impl.NumEdges())
	}
	if !impl.HasEdge(2, 4) {
		t.Error("unrelated edge 2->4 was removed")
	}
	if impl.HasEdge(3, 1) || impl.HasEdge(1, 2) {
		t.Error("edges incident to vertex 1 survived its removal")
	}
}

func testConcurrentInserts(t *testing.T, factory library.Factory, directed bool) {
	impl := newInstance(t, factory, directed)

	const workers = 4
	const perWorker = 50

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(base uint64) {
			defer wg.Done()
			for i := uint64(0); i < perWorker; i++ {
				if _, err := impl.AddVertex(base + i); err != nil {
					t.Errorf("AddVertex failed: %v", err)
					return
				}
			}
		}(uint64(w * perWorker))
	}
	wg.Wait()

	if impl.NumVertices() != workers*perWorker {
		t.Errorf("NumVertices() = %d, want %d", impl.NumVertices(), workers*perWorker)
	}
}

func testClose(t *testing.T, factory library.Factory, directed bool) {
	impl, err := factory(directed)
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	if err := impl.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if _, err := impl.AddVertex(1); err == nil {
		t.Error("AddVertex after Close succeeded")
	}
}

func testIndependentInstances(t *testing.T, factory library.Factory) {
	a := newInstance(t, factory, true)
	b := newInstance(t, factory, true)

	mustAddVertices(t, a, 1)
	if b.HasVertex(1) {
		t.Error("instances share state")
	}
}
