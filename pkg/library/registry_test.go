package library_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/graphbench/pkg/library"
	"github.com/marmos91/graphbench/pkg/library/adjacency"
	"github.com/marmos91/graphbench/pkg/library/badger"
)

func nopFactory(directed bool) (library.Interface, error) {
	return adjacency.New(directed)
}

func TestRegistry_Register(t *testing.T) {
	t.Run("AddsFactory", func(t *testing.T) {
		r := library.NewRegistry()
		require.NoError(t, r.Register("a", nopFactory))
		assert.Equal(t, 1, r.Count())
	})

	t.Run("RejectsNilFactory", func(t *testing.T) {
		r := library.NewRegistry()
		assert.Error(t, r.Register("a", nil))
		assert.Equal(t, 0, r.Count())
	})

	t.Run("RejectsEmptyName", func(t *testing.T) {
		r := library.NewRegistry()
		assert.Error(t, r.Register("", nopFactory))
	})

	t.Run("RejectsDuplicate", func(t *testing.T) {
		r := library.NewRegistry()
		require.NoError(t, r.Register("a", nopFactory))

		err := r.Register("a", nopFactory)
		require.Error(t, err)
		assert.ErrorIs(t, err, library.ErrDuplicateLibrary)
		assert.Contains(t, err.Error(), `"a"`)
	})
}

func TestRegistry_Lookup(t *testing.T) {
	r := library.NewRegistry()
	require.NoError(t, r.Register("a", nopFactory))

	factory, err := r.Lookup("a")
	require.NoError(t, err)
	require.NotNil(t, factory)

	_, err = r.Lookup("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, library.ErrUnknownLibrary))
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestRegistry_New(t *testing.T) {
	r := library.NewRegistry()
	require.NoError(t, r.Register("a", nopFactory))

	impl, err := r.New("a", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = impl.Close() })
	assert.False(t, impl.IsDirected())

	_, err = r.New("missing", true)
	assert.ErrorIs(t, err, library.ErrUnknownLibrary)
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := library.NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, r.Register(name, nopFactory))
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := library.NewRegistry()
	require.NoError(t, r.Register("a", nopFactory))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Lookup("a")
			assert.NoError(t, err)
			_ = r.Names()
		}()
	}
	wg.Wait()
}

func TestDefaultRegistry_BuiltIns(t *testing.T) {
	names := library.Default().Names()
	assert.Contains(t, names, adjacency.Name)
	assert.Contains(t, names, badger.Name)
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		library.Register(adjacency.Name, nopFactory)
	})
}
