package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/graphbench/pkg/results"
)

func newWithDatabase(t *testing.T, path string) (*Configuration, *results.Connector) {
	t.Helper()

	conn := results.NewConnector()
	t.Cleanup(func() { _ = conn.Close() })

	opts := GetDefaultOptions()
	opts.Library = "adjacency"
	opts.Graph = "/tmp/g.graph"
	opts.Database = path

	c, err := New(opts, Dependencies{Connector: conn})
	require.NoError(t, err)
	return c, conn
}

func TestHasDatabase(t *testing.T) {
	c := newDefault()
	assert.False(t, c.HasDatabase())

	require.NoError(t, c.SetDatabasePath("results.db"))
	assert.True(t, c.HasDatabase())

	require.NoError(t, c.SetDatabasePath(""))
	assert.False(t, c.HasDatabase())
}

func TestDB_WithoutDatabaseIsMisuse(t *testing.T) {
	c, err := New(nil, Dependencies{Connector: results.NewConnector()})
	require.NoError(t, err)

	store, err := c.DB(context.Background())
	assert.Nil(t, store)
	assert.True(t, IsKind(err, KindMisuse))

	_, err = c.SaveParameters(context.Background())
	assert.True(t, IsKind(err, KindMisuse))
}

func TestDB_WithoutConnectorIsMisuse(t *testing.T) {
	opts := GetDefaultOptions()
	opts.Database = "results.db"

	c, err := New(opts, Dependencies{})
	require.NoError(t, err)

	_, err = c.DB(context.Background())
	assert.True(t, IsKind(err, KindMisuse))
}

func TestDB_LazyAndShared(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	c, conn := newWithDatabase(t, path)

	assert.NoFileExists(t, path)

	store, err := c.DB(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, path)

	again, err := c.DB(context.Background())
	require.NoError(t, err)
	assert.Same(t, store, again)

	owned, err := conn.Get(context.Background(), path)
	require.NoError(t, err)
	assert.Same(t, store, owned)
}

func TestSaveParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	c, _ := newWithDatabase(t, path)
	ctx := context.Background()

	run, err := c.SaveParameters(ctx)
	require.NoError(t, err)
	assert.Equal(t, "adjacency", run.Library)
	assert.Equal(t, "/tmp/g.graph", run.Graph)

	store, err := c.DB(ctx)
	require.NoError(t, err)

	params, err := store.ListParameters(ctx, run.ID)
	require.NoError(t, err)

	values := map[string]string{}
	for _, p := range params {
		values[p.Name] = p.Value
	}
	assert.Equal(t, c.Snapshot().Map(), values)
}

func TestRelease_DoesNotCloseStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	c, conn := newWithDatabase(t, path)
	ctx := context.Background()

	store, err := c.DB(ctx)
	require.NoError(t, err)

	c.Release()
	c.Release()

	assert.NoError(t, store.Healthcheck(ctx), "store closed by Release")

	_, err = c.DB(ctx)
	assert.True(t, IsKind(err, KindMisuse))

	// The connector still owns and closes it.
	require.NoError(t, conn.Close())
	assert.Error(t, store.Healthcheck(ctx))
}
