// Package metrics exports reconciler events as Prometheus metrics.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/agentstation/toolcompare/pkg/comparison"
	"github.com/agentstation/toolcompare/pkg/errors"
)

const namespace = "toolcompare"

// Metrics implements comparison.Observer with Prometheus collectors.
type Metrics struct {
	registry    *prometheus.Registry
	remoteCalls *prometheus.CounterVec
	fallbacks   *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	size        prometheus.Gauge
}

var _ comparison.Observer = (*Metrics)(nil)

// New registers the collectors on registry. A nil registry creates a private one.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		remoteCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "remote_calls_total",
				Help:      "Calls to the remote comparison API by operation and result",
			},
			[]string{"operation", "result"},
		),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fallbacks_total",
				Help:      "Operations served from the local cache because the remote failed",
			},
			[]string{"operation", "class"},
		),
		rejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rejections_total",
				Help:      "Add operations rejected by the comparison rules",
			},
			[]string{"reason"},
		),
		size: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "comparison_size",
				Help:      "Number of tools in the in-memory comparison",
			},
		),
	}
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRemote implements comparison.Observer.
func (m *Metrics) ObserveRemote(op string, err error) {
	result := "success"
	if err != nil {
		result = string(errors.Classify(err))
	}
	m.remoteCalls.WithLabelValues(op, result).Inc()
}

// ObserveFallback implements comparison.Observer.
func (m *Metrics) ObserveFallback(op string, class errors.RemoteClass) {
	m.fallbacks.WithLabelValues(op, string(class)).Inc()
}

// ObserveRejection implements comparison.Observer.
func (m *Metrics) ObserveRejection(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}

// ObserveSize implements comparison.Observer.
func (m *Metrics) ObserveSize(n int) {
	m.size.Set(float64(n))
}

// WriteText writes every gathered metric family in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return errors.WrapResource("gather", "metrics", namespace, err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.WrapIO("write", "metrics", err)
		}
	}
	return nil
}
