package config

import (
	"strconv"
	"time"

	"github.com/marmos91/graphbench/pkg/library"
	"github.com/marmos91/graphbench/pkg/metrics"
	"github.com/marmos91/graphbench/pkg/results"
)

// ThreadsKind selects a thread count in NumThreads.
type ThreadsKind int

const (
	ThreadsRead ThreadsKind = iota
	ThreadsWrite
	ThreadsTotal
)

func (k ThreadsKind) String() string {
	switch k {
	case ThreadsRead:
		return "read"
	case ThreadsWrite:
		return "write"
	case ThreadsTotal:
		return "total"
	default:
		return "unknown"
	}
}

// Configuration is the validated parameter set of one experiment.
//
// It is populated by setters while being built and must not be mutated once
// published by Initialise; from then on it is safe for concurrent reads.
type Configuration struct {
	libraryName    string
	graphPath      string
	directed       bool
	threadsRead    int
	threadsWrite   int
	timeout        time.Duration
	seed           uint64
	maxWeight      float64
	efVertices     float64
	efEdges        float64
	coeffAging     float64
	buildFrequency time.Duration
	repetitions    int
	updateLog      string
	validateOutput bool
	databasePath   string

	libraries  *library.Registry
	factory    library.Factory
	factoryErr error

	db      dbRef
	metrics metrics.ConfigMetrics
}

// newDefault returns a Configuration holding only default values.
func newDefault() *Configuration {
	return &Configuration{
		directed:       DefaultDirected,
		threadsRead:    DefaultThreadsRead,
		threadsWrite:   DefaultThreadsWrite,
		timeout:        DefaultTimeout.Duration(),
		seed:           DefaultSeed,
		maxWeight:      DefaultMaxWeight,
		efVertices:     DefaultEFVertices,
		efEdges:        DefaultEFEdges,
		coeffAging:     DefaultAging,
		buildFrequency: DefaultBuildFrequency.Duration(),
		repetitions:    DefaultRepetitions,
	}
}

// ============================================================================
// Setters
// ============================================================================

// SetLibrary sets the library name. Resolution happens when the
// Configuration is built.
func (c *Configuration) SetLibrary(name string) error {
	c.libraryName = name
	return nil
}

// SetGraph sets the path of the input graph.
func (c *Configuration) SetGraph(path string) error {
	c.graphPath = path
	return nil
}

// SetDirected sets whether the graph is loaded as directed.
func (c *Configuration) SetDirected(directed bool) error {
	c.directed = directed
	return nil
}

// SetNumThreadsRead sets the read worker count. It must be at least 1.
func (c *Configuration) SetNumThreadsRead(n int) error {
	if err := checkVar("threads_read", n, "gte=1"); err != nil {
		return err
	}
	c.threadsRead = n
	return nil
}

// SetNumThreadsWrite sets the write worker count. It must be at least 1.
func (c *Configuration) SetNumThreadsWrite(n int) error {
	if err := checkVar("threads_write", n, "gte=1"); err != nil {
		return err
	}
	c.threadsWrite = n
	return nil
}

// SetTimeout sets the per-operation budget. 0 means no timeout.
func (c *Configuration) SetTimeout(d time.Duration) error {
	if err := checkVar("timeout", d, "gte=0"); err != nil {
		return err
	}
	c.timeout = d
	return nil
}

// SetSeed sets the random seed shared by workload generators.
func (c *Configuration) SetSeed(seed uint64) error {
	c.seed = seed
	return nil
}

// SetMaxWeight sets the upper bound for generated edge weights.
func (c *Configuration) SetMaxWeight(w float64) error {
	if err := checkVar("max_weight", w, "gt=0"); err != nil {
		return err
	}
	c.maxWeight = w
	return nil
}

// SetEFVertices sets the vertex expansion factor of the aging workload.
func (c *Configuration) SetEFVertices(f float64) error {
	if err := checkVar("ef_vertices", f, "gt=0"); err != nil {
		return err
	}
	c.efVertices = f
	return nil
}

// SetEFEdges sets the edge expansion factor of the aging workload.
func (c *Configuration) SetEFEdges(f float64) error {
	if err := checkVar("ef_edges", f, "gt=0"); err != nil {
		return err
	}
	c.efEdges = f
	return nil
}

// SetCoeffAging sets the surplus-update coefficient of the aging workload.
func (c *Configuration) SetCoeffAging(f float64) error {
	if err := checkVar("aging", f, "gte=0"); err != nil {
		return err
	}
	c.coeffAging = f
	return nil
}

// SetBuildFrequency sets the snapshot rebuild cadence. 0 disables rebuilds.
func (c *Configuration) SetBuildFrequency(d time.Duration) error {
	if err := checkVar("build_frequency", d, "gte=0"); err != nil {
		return err
	}
	c.buildFrequency = d
	return nil
}

// SetNumRepetitions sets how many times each experiment runs.
func (c *Configuration) SetNumRepetitions(n int) error {
	if err := checkVar("repetitions", n, "gte=1"); err != nil {
		return err
	}
	c.repetitions = n
	return nil
}

// SetUpdateLog sets the aging log path. Empty means no log.
func (c *Configuration) SetUpdateLog(path string) error {
	c.updateLog = path
	return nil
}

// SetValidateOutput toggles validation of algorithm output.
func (c *Configuration) SetValidateOutput(v bool) error {
	c.validateOutput = v
	return nil
}

// SetDatabasePath sets the results store location. Empty means no persistence.
func (c *Configuration) SetDatabasePath(path string) error {
	c.databasePath = path
	return nil
}

// ============================================================================
// Getters
// ============================================================================

// LibraryName returns the configured library name.
func (c *Configuration) LibraryName() string { return c.libraryName }

// GraphPath returns the input graph path.
func (c *Configuration) GraphPath() string { return c.graphPath }

// IsDirected reports whether the graph is directed.
func (c *Configuration) IsDirected() bool { return c.directed }

// Timeout returns the per-operation budget. 0 means unbounded.
func (c *Configuration) Timeout() time.Duration { return c.timeout }

// Seed returns the random seed.
func (c *Configuration) Seed() uint64 { return c.seed }

// MaxWeight returns the edge weight upper bound.
func (c *Configuration) MaxWeight() float64 { return c.maxWeight }

// EFVertices returns the vertex expansion factor.
func (c *Configuration) EFVertices() float64 { return c.efVertices }

// EFEdges returns the edge expansion factor.
func (c *Configuration) EFEdges() float64 { return c.efEdges }

// CoeffAging returns the aging coefficient.
func (c *Configuration) CoeffAging() float64 { return c.coeffAging }

// BuildFrequency returns the snapshot rebuild cadence. 0 means disabled.
func (c *Configuration) BuildFrequency() time.Duration { return c.buildFrequency }

// NumRepetitions returns the repetition count.
func (c *Configuration) NumRepetitions() int { return c.repetitions }

// UpdateLog returns the aging log path.
func (c *Configuration) UpdateLog() string { return c.updateLog }

// ValidateOutput reports whether algorithm output is validated.
func (c *Configuration) ValidateOutput() bool { return c.validateOutput }

// DatabasePath returns the results store location.
func (c *Configuration) DatabasePath() string { return c.databasePath }

// NumThreads returns the read or write thread count, or their sum.
func (c *Configuration) NumThreads(kind ThreadsKind) int {
	switch kind {
	case ThreadsRead:
		return c.threadsRead
	case ThreadsWrite:
		return c.threadsWrite
	default:
		return c.threadsRead + c.threadsWrite
	}
}

// ============================================================================
// Snapshot
// ============================================================================

// Parameters is an immutable copy of every experiment parameter, in the
// units used on the command line and in config files.
type Parameters struct {
	Library        string  `json:"library" yaml:"library"`
	Graph          string  `json:"graph" yaml:"graph"`
	Directed       bool    `json:"directed" yaml:"directed"`
	ThreadsRead    int     `json:"threads_read" yaml:"threads_read"`
	ThreadsWrite   int     `json:"threads_write" yaml:"threads_write"`
	TimeoutSeconds int64   `json:"timeout" yaml:"timeout"`
	Seed           uint64  `json:"seed" yaml:"seed"`
	MaxWeight      float64 `json:"max_weight" yaml:"max_weight"`
	EFVertices     float64 `json:"ef_vertices" yaml:"ef_vertices"`
	EFEdges        float64 `json:"ef_edges" yaml:"ef_edges"`
	Aging          float64 `json:"aging" yaml:"aging"`
	BuildFrequency int64   `json:"build_frequency" yaml:"build_frequency"`
	Repetitions    int     `json:"repetitions" yaml:"repetitions"`
	UpdateLog      string  `json:"update_log" yaml:"update_log"`
	Validate       bool    `json:"validate" yaml:"validate"`
	Database       string  `json:"database" yaml:"database"`
}

// Snapshot copies the current parameters.
func (c *Configuration) Snapshot() Parameters {
	return Parameters{
		Library:        c.libraryName,
		Graph:          c.graphPath,
		Directed:       c.directed,
		ThreadsRead:    c.threadsRead,
		ThreadsWrite:   c.threadsWrite,
		TimeoutSeconds: int64(c.timeout / time.Second),
		Seed:           c.seed,
		MaxWeight:      c.maxWeight,
		EFVertices:     c.efVertices,
		EFEdges:        c.efEdges,
		Aging:          c.coeffAging,
		BuildFrequency: int64(c.buildFrequency / time.Millisecond),
		Repetitions:    c.repetitions,
		UpdateLog:      c.updateLog,
		Validate:       c.validateOutput,
		Database:       c.databasePath,
	}
}

// Map renders p as name/value strings keyed like the config file.
func (p Parameters) Map() map[string]string {
	float := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

	return map[string]string{
		results.ParamLibrary: p.Library,
		results.ParamGraph:   p.Graph,
		"directed":           strconv.FormatBool(p.Directed),
		"threads_read":       strconv.Itoa(p.ThreadsRead),
		"threads_write":      strconv.Itoa(p.ThreadsWrite),
		"timeout":            strconv.FormatInt(p.TimeoutSeconds, 10),
		"seed":               strconv.FormatUint(p.Seed, 10),
		"max_weight":         float(p.MaxWeight),
		"ef_vertices":        float(p.EFVertices),
		"ef_edges":           float(p.EFEdges),
		"aging":              float(p.Aging),
		"build_frequency":    strconv.FormatInt(p.BuildFrequency, 10),
		"repetitions":        strconv.Itoa(p.Repetitions),
		"update_log":         p.UpdateLog,
		"validate":           strconv.FormatBool(p.Validate),
		"database":           p.Database,
	}
}
