// Package metric provides Prometheus metrics registration for PipeKit
// storage backends. A nil *MetricsRegistry disables metrics everywhere
// it is accepted, so library callers pay nothing unless they opt in.
package metric

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360/pipekit/errors"
)

// MetricsRegistry manages the registration and lifecycle of metrics.
type MetricsRegistry struct {
	prometheusRegistry *prometheus.Registry
	registeredMetrics  map[string]prometheus.Collector
	mu                 sync.RWMutex
}

// NewMetricsRegistry creates a new metrics registry with Go runtime
// and process collectors pre-registered.
func NewMetricsRegistry() *MetricsRegistry {
	prometheusRegistry := prometheus.NewRegistry()
	prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &MetricsRegistry{
		prometheusRegistry: prometheusRegistry,
		registeredMetrics:  make(map[string]prometheus.Collector),
	}
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (r *MetricsRegistry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

// Register adds a collector under component.name. Duplicate keys fail
// with ErrAlreadyRegistered.
func (r *MetricsRegistry) Register(component, name string, collector prometheus.Collector) error {
	if component == "" || name == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "MetricsRegistry", "Register", "metric name validation")
	}

	key := fmt.Sprintf("%s.%s", component, name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.registeredMetrics[key]; exists {
		return errors.WrapInvalid(errors.ErrAlreadyRegistered, "MetricsRegistry", "Register", "metric "+key)
	}
	if err := r.prometheusRegistry.Register(collector); err != nil {
		return errors.WrapInvalid(err, "MetricsRegistry", "Register", "prometheus registration")
	}

	r.registeredMetrics[key] = collector
	return nil
}

// Unregister removes a collector. Returns true if it was registered.
func (r *MetricsRegistry) Unregister(component, name string) bool {
	key := fmt.Sprintf("%s.%s", component, name)

	r.mu.Lock()
	defer r.mu.Unlock()

	collector, exists := r.registeredMetrics[key]
	if !exists {
		return false
	}
	r.prometheusRegistry.Unregister(collector)
	delete(r.registeredMetrics, key)
	return true
}

// Handler returns an HTTP handler serving the registry in Prometheus
// exposition format.
func (r *MetricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prometheusRegistry, promhttp.HandlerOpts{})
}
