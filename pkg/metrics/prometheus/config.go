// Package prometheus provides the Prometheus implementations of the
// pkg/metrics interfaces. Importing it registers the constructors.
package prometheus

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/graphbench/pkg/metrics"
)

func init() {
	metrics.RegisterConfigMetricsConstructor(NewConfigMetrics)
}

type configMetrics struct {
	threads          *prometheus.GaugeVec
	librariesCreated *prometheus.CounterVec
	parameterSaves   *prometheus.CounterVec
}

// NewConfigMetrics creates collectors on the active registry.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewConfigMetrics() metrics.ConfigMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &configMetrics{
		threads: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gbench_configured_threads",
				Help: "Configured worker threads by kind",
			},
			[]string{"kind"}, // "read", "write"
		),
		librariesCreated: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "gbench_library_instances_total",
				Help: "Total number of graph library instances created",
			},
			[]string{"library", "directed"},
		),
		parameterSaves: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "gbench_parameter_saves_total",
				Help: "Total number of parameter snapshot writes by result",
			},
			[]string{"result"}, // "success", "error"
		),
	}
}

func (m *configMetrics) SetThreads(read, write int) {
	m.threads.WithLabelValues("read").Set(float64(read))
	m.threads.WithLabelValues("write").Set(float64(write))
}

func (m *configMetrics) LibraryCreated(library string, directed bool) {
	m.librariesCreated.WithLabelValues(library, strconv.FormatBool(directed)).Inc()
}

func (m *configMetrics) ParametersSaved(success bool) {
	result := "success"
	if !success {
		result = "error"
	}
	m.parameterSaves.WithLabelValues(result).Inc()
}
