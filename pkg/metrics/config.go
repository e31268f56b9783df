package metrics

// ConfigMetrics records events of the experiment configuration layer.
// A nil ConfigMetrics disables recording; use the package-level helpers,
// which accept nil.
type ConfigMetrics interface {
	// SetThreads publishes the configured read and write thread counts.
	SetThreads(read, write int)

	// LibraryCreated counts one adapter instance built by the factory registry.
	LibraryCreated(library string, directed bool)

	// ParametersSaved counts one parameter snapshot write, by outcome.
	ParametersSaved(success bool)
}

// NewConfigMetrics creates a Prometheus-backed ConfigMetrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called) or if no
// implementation is linked in (import pkg/metrics/prometheus).
func NewConfigMetrics() ConfigMetrics {
	if !IsEnabled() || newPrometheusConfigMetrics == nil {
		return nil
	}
	return newPrometheusConfigMetrics()
}

// newPrometheusConfigMetrics is set by pkg/metrics/prometheus during init,
// keeping this package free of collector definitions.
var newPrometheusConfigMetrics func() ConfigMetrics

// RegisterConfigMetricsConstructor registers the Prometheus implementation.
func RegisterConfigMetricsConstructor(constructor func() ConfigMetrics) {
	newPrometheusConfigMetrics = constructor
}

// SetThreads records thread counts if m is non-nil.
func SetThreads(m ConfigMetrics, read, write int) {
	if m != nil {
		m.SetThreads(read, write)
	}
}

// LibraryCreated records an adapter construction if m is non-nil.
func LibraryCreated(m ConfigMetrics, library string, directed bool) {
	if m != nil {
		m.LibraryCreated(library, directed)
	}
}

// ParametersSaved records a snapshot write if m is non-nil.
func ParametersSaved(m ConfigMetrics, success bool) {
	if m != nil {
		m.ParametersSaved(success)
	}
}
