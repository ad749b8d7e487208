package registry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/openc2/errors"
)

// registryMetrics tracks registry activity for Prometheus scraping.
type registryMetrics struct {
	registrations   prometheus.Gauge
	consumesTotal   *prometheus.CounterVec
	consumeDuration prometheus.Histogram
}

func newRegistryMetrics() *registryMetrics {
	return &registryMetrics{
		registrations: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "openc2",
				Subsystem: "registry",
				Name:      "registrations",
				Help:      "Number of live registrations",
			},
		),

		consumesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "openc2",
				Subsystem: "registry",
				Name:      "consumes_total",
				Help:      "Total number of consumed messages by outcome status",
			},
			[]string{"status"},
		),

		consumeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "openc2",
				Subsystem: "registry",
				Name:      "consume_duration_seconds",
				Help:      "Time spent matching and starting dispatch for a message",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

func (m *registryMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.registrations, m.consumesTotal, m.consumeDuration}
}

// observeConsume records one Consume call. Successful dispatches count
// under "200"; failures count under the error's status projection.
func (m *registryMetrics) observeConsume(elapsed time.Duration, err error) {
	status := 200
	if err != nil {
		status = errors.From(err).StatusCode()
	}
	m.consumesTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	m.consumeDuration.Observe(elapsed.Seconds())
}

// WithMetrics registers registry metrics with the given registerer and
// enables recording.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Registry) {
		m := newRegistryMetrics()
		for _, collector := range m.collectors() {
			reg.MustRegister(collector)
		}
		r.metrics = m
	}
}
