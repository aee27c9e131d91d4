// Package metrics exposes Prometheus instrumentation for the sweep process
// itself. The trainer's own metrics are out of scope; these only describe
// launcher behavior (runs, outcomes, durations).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors updated by the engine.
type Metrics struct {
	RunsTotal     *prometheus.CounterVec
	RunDuration   prometheus.Histogram
	GridSize      prometheus.Gauge
	RunsCompleted prometheus.Gauge
}

// New registers the sweep collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nsweep",
			Name:      "runs_total",
			Help:      "Trainer runs by final status.",
		}, []string{"status"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nsweep",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of individual trainer runs.",
			// Training runs are long; buckets span seconds to a day.
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		GridSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "nsweep",
			Name:      "grid_size",
			Help:      "Number of invocations in the current sweep.",
		}),
		RunsCompleted: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "nsweep",
			Name:      "runs_completed",
			Help:      "Runs finished so far (any outcome).",
		}),
	}
}
