// SPDX-License-Identifier: EPL-2.0

// Package metrics holds the Prometheus collectors of the HTTP service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "audspoof"

// Metrics is a set of collectors bound to a private registry, so several
// servers (or tests) can coexist in one process.
type Metrics struct {
	HTTPRequestsTotal *prometheus.CounterVec
	DetectionsTotal   *prometheus.CounterVec
	DetectDuration    prometheus.Histogram

	registry *prometheus.Registry
}

func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		DetectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "detections_total",
				Help:      "Completed detections by classification",
			},
			[]string{"classification"},
		),
		DetectDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "detect_duration_seconds",
				Help:      "Time spent decoding and classifying one clip",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.DetectionsTotal,
		m.DetectDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the exposition format for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest counts one finished HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// ObserveDetection records a successful detection.
func (m *Metrics) ObserveDetection(classification string, took time.Duration) {
	m.DetectionsTotal.WithLabelValues(classification).Inc()
	m.DetectDuration.Observe(took.Seconds())
}
