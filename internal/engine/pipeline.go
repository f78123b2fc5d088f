// Package engine implements the five-stage arc-routing pipeline: subnetwork
// extraction, transportation balancing, component stitching, forced parity
// balancing, and Euler-tour construction with time-budgeted route
// splitting. Solve is the single entry point a driver calls once per
// schedule block.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"streetsweep/internal/graph"
	"streetsweep/pkg/apperror"
	"streetsweep/pkg/logger"
	"streetsweep/pkg/metrics"
)

// Options configures a single Solve invocation. The zero value is valid:
// no tracer, default metrics registry.
type Options struct {
	// Tracer, if set, opens one span per pipeline stage. Nil disables
	// tracing — the engine never requires an SDK/exporter to be wired.
	Tracer trace.Tracer
	// Metrics, if nil, falls back to metrics.Get() (the default registry).
	Metrics *metrics.Metrics
}

// Result is everything a Solve call produces for one schedule block.
type Result struct {
	RunID  string
	E      *graph.World
	H      *graph.World
	Tour   []graph.EdgeKey
	Routes [][]graph.EdgeKey
}

// Solve runs the full pipeline — S1 through S5 — over world, restricted
// to the edges whose normalized highway tag is in allowed, producing
// routes no longer than routeTimeHours each. It mirrors run.py's
// top-level orchestration: extract, balance, stitch, force-balance,
// pair, enumerate cycles, merge, split.
//
// Non-fatal stage warnings (S2 unreachable supplies, S4 hitting its
// iteration cap) are logged and do not abort the run; the errors
// documented in spec.md §7 as fatal (topology, force-balance dead-end,
// pairing imbalance, disjoint cycles, pairing inconsistency) abort the
// block and are returned as the second return value.
func Solve(ctx context.Context, world *graph.World, allowed map[string]bool, routeTimeHours float64, opts *Options) (*Result, error) {
	if world == nil {
		return nil, apperror.ErrNilWorld
	}
	if routeTimeHours <= 0 {
		return nil, apperror.ErrInvalidTimeBudget
	}
	if opts == nil {
		opts = &Options{}
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.Get()
	}

	runID := uuid.New().String()
	log := logger.WithRun(runID)
	result := &Result{RunID: runID}

	k, _ := stage(ctx, opts, m, log, "S1.extract", func() (*graph.World, error) {
		return ExtractSubnetwork(world, allowed), nil
	})

	h, err := stage(ctx, opts, m, log, "S2.balance", func() (*graph.World, error) {
		br, berr := Balance(world, k)
		if berr != nil && !apperror.IsWarning(berr) {
			return nil, berr
		}
		if berr != nil {
			log.Warn("non-fatal condition during balancing", "error", berr)
		}
		return br.H, nil
	})
	if err != nil {
		return nil, err
	}
	m.DeadheadEdges.WithLabelValues("S2").Add(float64(countEdges(h, func(edge *graph.Edge) bool {
		return edge.IsDeadheadAdded && !edge.IsComponentConnector && !edge.IsForceBalance
	})))

	e, _ := stage(ctx, opts, m, log, "S3.stitch", func() (*graph.World, error) {
		return StitchComponents(world, h), nil
	})
	m.DeadheadEdges.WithLabelValues("S3").Add(float64(countEdges(e, func(edge *graph.Edge) bool {
		return edge.IsComponentConnector
	})))

	iterations, err := stage(ctx, opts, m, log, "S4.forcebalance", func() (int, error) {
		return ForceBalance(e, world)
	})
	if err != nil {
		return nil, err
	}
	m.ForceBalanceIters.Observe(float64(iterations))
	m.DeadheadEdges.WithLabelValues("S4").Add(float64(countEdges(e, func(edge *graph.Edge) bool {
		return edge.IsForceBalance
	})))
	if iterations >= MaxForceBalanceIterations {
		log.Warn("force-balance hit its iteration cap", "iterations", iterations)
	}

	result.H = h
	result.E = e

	pairing, err := stage(ctx, opts, m, log, "S5a.pair", func() (Pairing, error) {
		return Pair(e)
	})
	if err != nil {
		return nil, err
	}

	cycles, err := stage(ctx, opts, m, log, "S5a.subcycles", func() ([][]graph.EdgeKey, error) {
		return EnumerateCycles(e, pairing)
	})
	if err != nil {
		return nil, err
	}

	tour, err := stage(ctx, opts, m, log, "S5b.merge", func() ([]graph.EdgeKey, error) {
		return MergeCycles(cycles)
	})
	if err != nil {
		return nil, err
	}
	result.Tour = tour

	routes, err := stage(ctx, opts, m, log, "S5c.split", func() ([][]graph.EdgeKey, error) {
		return SplitTour(e, tour, routeTimeHours*3600)
	})
	if err != nil {
		return nil, err
	}
	result.Routes = routes
	m.RoutesProduced.Observe(float64(len(routes)))

	log.Debug("solve complete", "routes", len(routes), "tour_edges", len(tour))
	return result, nil
}

// countEdges returns the number of edges in w for which keep returns true.
func countEdges(w *graph.World, keep func(*graph.Edge) bool) int {
	n := 0
	for _, edge := range w.Edges() {
		if keep(edge) {
			n++
		}
	}
	return n
}

// stage runs fn under a named tracer span (if opts.Tracer is set) and
// records its wall-clock duration against m.StageDuration, regardless of
// outcome. Generic over fn's result type so every stage of the pipeline
// — which return different concrete types — can share one wrapper.
func stage[T any](ctx context.Context, opts *Options, m *metrics.Metrics, log *slog.Logger, name string, fn func() (T, error)) (T, error) {
	if opts.Tracer != nil {
		var span trace.Span
		ctx, span = opts.Tracer.Start(ctx, name)
		defer span.End()
	}
	_ = ctx // stages are synchronous functions today; ctx threading is in place for when one needs it

	start := time.Now()
	result, err := fn()
	m.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		log.Warn("stage failed", "stage", name, "error", err)
		return result, err
	}
	log.Debug("stage complete", "stage", name)
	return result, nil
}
