package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/uiprobe/internal/report"
)

// metrics lives on a per-App registry so that several apps in one process
// (tests) never collide on registration.
type metrics struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uiprobe_scenario_runs_total",
				Help: "Finished scenario runs by project and status.",
			},
			[]string{"project", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "uiprobe_scenario_duration_seconds",
				Help:    "Wall-clock duration of scenario runs by project.",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"project"},
		),
	}
	m.registry.MustRegister(m.runs, m.duration)
	return m
}

func (m *metrics) observe(r report.Result) {
	m.runs.WithLabelValues(r.Project, r.Status.String()).Inc()
	m.duration.WithLabelValues(r.Project).Observe(r.Duration.Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
