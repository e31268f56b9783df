package config

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Defaults
// ============================================================================

func TestDefaults_Literal(t *testing.T) {
	c, err := New(nil, Dependencies{})
	require.NoError(t, err)

	assert.Equal(t, uint64(5051789), c.Seed())
	assert.True(t, c.IsDirected())
	assert.Equal(t, 3600*time.Second, c.Timeout())
	assert.Equal(t, 5, c.NumRepetitions())
	assert.Equal(t, 1.0, c.MaxWeight())

	assert.Equal(t, 1, c.NumThreads(ThreadsRead))
	assert.Equal(t, 1, c.NumThreads(ThreadsWrite))
	assert.Equal(t, 1.0, c.EFVertices())
	assert.Equal(t, 1.0, c.EFEdges())
	assert.Equal(t, 0.0, c.CoeffAging())
	assert.Equal(t, 5*time.Minute, c.BuildFrequency())
	assert.Empty(t, c.LibraryName())
	assert.Empty(t, c.GraphPath())
	assert.Empty(t, c.UpdateLog())
	assert.Empty(t, c.DatabasePath())
	assert.False(t, c.ValidateOutput())
	assert.False(t, c.HasDatabase())
}

// ============================================================================
// Thread counts
// ============================================================================

func TestNumThreads_TotalIsSum(t *testing.T) {
	c := newDefault()

	for r := 1; r <= 8; r++ {
		for w := 1; w <= 8; w++ {
			require.NoError(t, c.SetNumThreadsRead(r))
			require.NoError(t, c.SetNumThreadsWrite(w))

			assert.Equal(t, r, c.NumThreads(ThreadsRead))
			assert.Equal(t, w, c.NumThreads(ThreadsWrite))
			assert.Equal(t, r+w, c.NumThreads(ThreadsTotal))
		}
	}
}

func TestThreadsKind_String(t *testing.T) {
	assert.Equal(t, "read", ThreadsRead.String())
	assert.Equal(t, "write", ThreadsWrite.String())
	assert.Equal(t, "total", ThreadsTotal.String())
	assert.Equal(t, "unknown", ThreadsKind(42).String())
}

// ============================================================================
// Validation
// ============================================================================

func TestSetters_RejectInvalidWithoutMutation(t *testing.T) {
	tests := []struct {
		name  string
		field string
		set   func(c *Configuration) error
		get   func(c *Configuration) any
	}{
		{"threads read zero", "threads_read", func(c *Configuration) error { return c.SetNumThreadsRead(0) }, func(c *Configuration) any { return c.NumThreads(ThreadsRead) }},
		{"threads read negative", "threads_read", func(c *Configuration) error { return c.SetNumThreadsRead(-3) }, func(c *Configuration) any { return c.NumThreads(ThreadsRead) }},
		{"threads write zero", "threads_write", func(c *Configuration) error { return c.SetNumThreadsWrite(0) }, func(c *Configuration) any { return c.NumThreads(ThreadsWrite) }},
		{"max weight zero", "max_weight", func(c *Configuration) error { return c.SetMaxWeight(0) }, func(c *Configuration) any { return c.MaxWeight() }},
		{"max weight negative", "max_weight", func(c *Configuration) error { return c.SetMaxWeight(-1.5) }, func(c *Configuration) any { return c.MaxWeight() }},
		{"max weight NaN", "max_weight", func(c *Configuration) error { return c.SetMaxWeight(math.NaN()) }, func(c *Configuration) any { return c.MaxWeight() }},
		{"ef vertices zero", "ef_vertices", func(c *Configuration) error { return c.SetEFVertices(0) }, func(c *Configuration) any { return c.EFVertices() }},
		{"ef edges negative", "ef_edges", func(c *Configuration) error { return c.SetEFEdges(-0.1) }, func(c *Configuration) any { return c.EFEdges() }},
		{"aging negative", "aging", func(c *Configuration) error { return c.SetCoeffAging(-1) }, func(c *Configuration) any { return c.CoeffAging() }},
		{"timeout negative", "timeout", func(c *Configuration) error { return c.SetTimeout(-time.Second) }, func(c *Configuration) any { return c.Timeout() }},
		{"build frequency negative", "build_frequency", func(c *Configuration) error { return c.SetBuildFrequency(-time.Millisecond) }, func(c *Configuration) any { return c.BuildFrequency() }},
		{"repetitions zero", "repetitions", func(c *Configuration) error { return c.SetNumRepetitions(0) }, func(c *Configuration) any { return c.NumRepetitions() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newDefault()
			before := tt.get(c)

			err := tt.set(c)
			require.Error(t, err)
			assert.True(t, IsKind(err, KindValidation), "expected validation error, got %v", err)

			var cerr *Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.field, cerr.Field)
			assert.Contains(t, err.Error(), tt.field)

			assert.Equal(t, before, tt.get(c), "value changed after rejected set")
		})
	}
}

func TestSetters_AcceptBoundaries(t *testing.T) {
	c := newDefault()

	require.NoError(t, c.SetTimeout(0))
	assert.Equal(t, time.Duration(0), c.Timeout())

	require.NoError(t, c.SetBuildFrequency(0))
	assert.Equal(t, time.Duration(0), c.BuildFrequency())

	require.NoError(t, c.SetCoeffAging(0))
	require.NoError(t, c.SetNumThreadsRead(1))
	require.NoError(t, c.SetMaxWeight(math.SmallestNonzeroFloat64))
	require.NoError(t, c.SetSeed(math.MaxUint64))
	assert.Equal(t, uint64(math.MaxUint64), c.Seed())
}

func TestError_Message(t *testing.T) {
	err := newDefault().SetNumThreadsRead(0)
	require.Error(t, err)
	assert.Equal(t, "validation error: threads_read=0: must be >= 1", err.Error())

	err = newDefault().SetMaxWeight(-2)
	assert.Equal(t, "validation error: max_weight=-2: must be > 0", err.Error())
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "resolution", KindResolution.String())
	assert.Equal(t, "misuse", KindMisuse.String())
	assert.Equal(t, "unknown", ErrorKind(0).String())
}

// ============================================================================
// Snapshot
// ============================================================================

func TestSnapshot_WireUnits(t *testing.T) {
	c := newDefault()
	require.NoError(t, c.SetLibrary("adjacency"))
	require.NoError(t, c.SetGraph("/tmp/g.graph"))
	require.NoError(t, c.SetTimeout(90*time.Second))
	require.NoError(t, c.SetBuildFrequency(1500*time.Millisecond))
	require.NoError(t, c.SetMaxWeight(2.5))

	p := c.Snapshot()
	assert.Equal(t, int64(90), p.TimeoutSeconds)
	assert.Equal(t, int64(1500), p.BuildFrequency)

	m := p.Map()
	assert.Len(t, m, 16)
	assert.Equal(t, "adjacency", m["library"])
	assert.Equal(t, "/tmp/g.graph", m["graph"])
	assert.Equal(t, "90", m["timeout"])
	assert.Equal(t, "1500", m["build_frequency"])
	assert.Equal(t, "2.5", m["max_weight"])
	assert.Equal(t, "5051789", m["seed"])
	assert.Equal(t, "true", m["directed"])
	assert.Equal(t, "", m["database"])
}

func TestSnapshot_IsACopy(t *testing.T) {
	c := newDefault()
	p := c.Snapshot()

	require.NoError(t, c.SetNumThreadsRead(7))
	assert.Equal(t, 1, p.ThreadsRead)
}
