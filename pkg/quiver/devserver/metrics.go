package devserver

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quiver",
		Subsystem: "devserver",
		Name:      "dispatches_total",
		Help:      "Dispatches served, by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "quiver",
		Subsystem: "devserver",
		Name:      "dispatch_duration_seconds",
		Help:      "Time spent resolving, binding, and running handlers.",
		Buckets:   prometheus.DefBuckets,
	})
	registry.MustRegister(requests, duration)
	return &metrics{registry: registry, requests: requests, duration: duration}
}

func (m *metrics) observe(outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}
