// Package metrics provides Prometheus metrics for the preview service
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every gosteel metric plus the Go runtime collectors.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Profile builds by family and outcome ("ok" or "none").
	ProfilesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gosteel_profiles_total",
			Help: "Total number of section profile builds",
		},
		[]string{"family", "result"},
	)

	DiagramsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gosteel_diagrams_total",
			Help: "Total number of rendered section diagrams",
		},
		[]string{"format"},
	)

	RequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gosteel_request_duration_seconds",
			Help:    "Time taken to serve preview requests",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"handler", "code"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RecordBuild counts one profile build.
func RecordBuild(family string, ok bool) {
	result := "ok"
	if !ok {
		result = "none"
	}
	ProfilesTotal.WithLabelValues(family, result).Inc()
}

// RecordRequest observes the duration of a served request.
func RecordRequest(handler string, code int, start time.Time) {
	RequestDuration.WithLabelValues(handler, http.StatusText(code)).Observe(time.Since(start).Seconds())
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
