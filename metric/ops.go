package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OpMetrics instruments a storage backend's document operations:
// per-operation counters, latency histograms, and error counts.
// The zero-value-safe nil receiver means backends can thread a nil
// OpMetrics through unchanged when metrics are disabled.
type OpMetrics struct {
	ops     *prometheus.CounterVec
	latency *prometheus.HistogramVec
	errors  *prometheus.CounterVec
}

// NewOpMetrics creates and registers operation metrics for a named
// backend. Returns nil when registry is nil (metrics disabled).
func NewOpMetrics(registry *MetricsRegistry, backend, bucket string) (*OpMetrics, error) {
	if registry == nil {
		return nil, nil
	}

	constLabels := prometheus.Labels{"bucket": bucket}

	m := &OpMetrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "pipekit",
			Subsystem:   backend,
			Name:        "operations_total",
			Help:        "Total number of document operations",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "pipekit",
			Subsystem:   backend,
			Name:        "operation_duration_seconds",
			Help:        "Document operation duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),

		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "pipekit",
			Subsystem:   backend,
			Name:        "errors_total",
			Help:        "Total number of failed document operations",
			ConstLabels: constLabels,
		}, []string{"operation"}),
	}

	if err := registry.Register(backend, "operations_total", m.ops); err != nil {
		return nil, err
	}
	if err := registry.Register(backend, "operation_duration_seconds", m.latency); err != nil {
		return nil, err
	}
	if err := registry.Register(backend, "errors_total", m.errors); err != nil {
		return nil, err
	}

	return m, nil
}

// Observe records one completed operation.
func (m *OpMetrics) Observe(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(operation).Inc()
	m.latency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		m.errors.WithLabelValues(operation).Inc()
	}
}
