package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/graphbench/pkg/library"
	"github.com/marmos91/graphbench/pkg/library/adjacency"
	"github.com/marmos91/graphbench/pkg/library/badger"
)

func newWithLibrary(t *testing.T, name string, directed bool, reg *library.Registry) *Configuration {
	t.Helper()

	opts := GetDefaultOptions()
	opts.Library = name
	opts.Directed = directed

	c, err := New(opts, Dependencies{Libraries: reg})
	require.NoError(t, err)
	return c
}

func TestGenerateGraphLibrary_Orientation(t *testing.T) {
	for _, name := range []string{adjacency.Name, badger.Name} {
		for _, directed := range []bool{true, false} {
			c := newWithLibrary(t, name, directed, library.Default())

			impl, err := c.GenerateGraphLibrary()
			require.NoError(t, err, "%s directed=%v", name, directed)
			require.NotNil(t, impl)

			assert.Equal(t, name, impl.Name())
			assert.Equal(t, directed, impl.IsDirected())

			// Orientation is observable through edge symmetry.
			for _, v := range []uint64{1, 2} {
				_, err := impl.AddVertex(v)
				require.NoError(t, err)
			}
			_, err = impl.AddEdge(1, 2, 1)
			require.NoError(t, err)
			assert.Equal(t, !directed, impl.HasEdge(2, 1))

			require.NoError(t, impl.Close())
		}
	}
}

func TestGenerateGraphLibrary_IndependentInstances(t *testing.T) {
	c := newWithLibrary(t, adjacency.Name, true, library.Default())

	a, err := c.GenerateGraphLibrary()
	require.NoError(t, err)
	b, err := c.GenerateGraphLibrary()
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(); _ = b.Close() })

	assert.NotSame(t, a, b)

	_, err = a.AddVertex(1)
	require.NoError(t, err)
	assert.False(t, b.HasVertex(1))
}

func TestGenerateGraphLibrary_ResolutionErrors(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		c := newWithLibrary(t, "", true, library.Default())

		_, err := c.GenerateGraphLibrary()
		assert.True(t, IsKind(err, KindResolution))
		assert.ErrorIs(t, err, library.ErrUnknownLibrary)
	})

	t.Run("unregistered name", func(t *testing.T) {
		c := newWithLibrary(t, "does-not-exist", false, library.Default())

		_, err := c.GenerateGraphLibrary()
		assert.True(t, IsKind(err, KindResolution))
		assert.ErrorIs(t, err, library.ErrUnknownLibrary)
		assert.Contains(t, err.Error(), "does-not-exist")
	})
}

func TestGenerateGraphLibrary_FactoryError(t *testing.T) {
	reg := library.NewRegistry()
	boom := errors.New("boom")
	require.NoError(t, reg.Register("broken", func(bool) (library.Interface, error) { return nil, boom }))

	c := newWithLibrary(t, "broken", true, reg)

	_, err := c.GenerateGraphLibrary()
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsKind(err, KindResolution))
}

func TestLibraries_DefaultsToProcessRegistry(t *testing.T) {
	c, err := New(nil, Dependencies{})
	require.NoError(t, err)
	assert.Same(t, library.Default(), c.Libraries())
}
