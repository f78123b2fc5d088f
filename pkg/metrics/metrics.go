// Package metrics exposes Prometheus instrumentation for the routing
// pipeline: per-stage duration, deadhead edges added, and S4 iterations
// consumed. Registration is explicit (Init) so a CLI driver or test can
// point it at its own registerer instead of the global default.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is the engine's instrumentation surface.
type Metrics struct {
	StageDuration    *prometheus.HistogramVec
	DeadheadEdges    *prometheus.CounterVec
	ForceBalanceIters prometheus.Histogram
	RoutesProduced   prometheus.Histogram
}

var defaultMetrics *Metrics

// Init registers the engine's metrics against reg and returns them. Pass
// prometheus.DefaultRegisterer to use the global registry.
func Init(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "streetsweep",
				Name:      "solve_duration_seconds",
				Help:      "Duration of each pipeline stage",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
			},
			[]string{"stage"},
		),
		DeadheadEdges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streetsweep",
				Name:      "deadhead_edges_added_total",
				Help:      "Deadhead edges added per pipeline stage",
			},
			[]string{"stage"},
		),
		ForceBalanceIters: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "streetsweep",
				Name:      "force_balance_iterations",
				Help:      "Iterations consumed by the S4 forced-balance loop",
				Buckets:   []float64{1, 5, 10, 50, 100, 1000, 10000, 100000},
			},
		),
		RoutesProduced: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "streetsweep",
				Name:      "routes_produced",
				Help:      "Number of time-budgeted routes a solve call produced",
				Buckets:   []float64{1, 2, 5, 10, 20, 50},
			},
		),
	}
	defaultMetrics = m
	return m
}

// Get returns the default metrics, initializing them against the global
// Prometheus registry on first use.
func Get() *Metrics {
	if defaultMetrics == nil {
		return Init(prometheus.DefaultRegisterer)
	}
	return defaultMetrics
}
