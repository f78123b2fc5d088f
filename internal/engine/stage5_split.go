package engine

import (
	"streetsweep/internal/graph"
	"streetsweep/pkg/apperror"
)

// SplitTour partitions tour into contiguous routes, each with cumulative
// edge time at most tMaxSeconds, by a single greedy linear scan: an edge
// is appended to the current route unless doing so would push it over
// budget, in which case the current route is sealed first. A lone edge
// whose own time exceeds the budget still forms its own (oversized)
// route rather than being dropped. Grounded on split_routes.py's
// split_into_routes.
func SplitTour(e *graph.World, tour []graph.EdgeKey, tMaxSeconds float64) ([][]graph.EdgeKey, error) {
	if tMaxSeconds <= 0 {
		return nil, apperror.ErrInvalidTimeBudget
	}
	if len(tour) == 0 {
		return nil, nil
	}

	var routes [][]graph.EdgeKey
	var current []graph.EdgeKey
	var elapsed float64

	for _, key := range tour {
		edge, ok := e.Edge(key)
		if !ok {
			return nil, apperror.New(apperror.CodeInvalidNode, "tour references an edge not present in the graph").
				WithStage("S5c").WithDetails("edge", key)
		}
		dt := graph.EdgeTime(edge)

		if len(current) > 0 && elapsed+dt > tMaxSeconds {
			routes = append(routes, current)
			current = nil
			elapsed = 0
		}

		current = append(current, key)
		elapsed += dt
	}

	if len(current) > 0 {
		routes = append(routes, current)
	}

	return routes, nil
}

// RouteStats is a per-route breakdown of sweep vs. deadhead time, a
// supplemented diagnostic not in spec.md's distillation but present in
// split_routes.py's route_stats.
type RouteStats struct {
	SweepSeconds       float64
	DeadheadSeconds    float64
	TotalSeconds       float64
	DeadheadPercentage float64
	EdgeCount          int
}

// ComputeRouteStats returns the sweep/deadhead time breakdown for a
// single route (a contiguous edge-key slice as produced by SplitTour).
func ComputeRouteStats(e *graph.World, route []graph.EdgeKey) RouteStats {
	var stats RouteStats
	stats.EdgeCount = len(route)

	for _, key := range route {
		edge, ok := e.Edge(key)
		if !ok {
			continue
		}
		dt := graph.EdgeTime(edge)
		if graph.IsSweep(edge) {
			stats.SweepSeconds += dt
		} else {
			stats.DeadheadSeconds += dt
		}
	}

	stats.TotalSeconds = stats.SweepSeconds + stats.DeadheadSeconds
	if stats.TotalSeconds > 0 {
		stats.DeadheadPercentage = 100 * stats.DeadheadSeconds / stats.TotalSeconds
	}
	return stats
}

// EstimateFleetSize returns ceil(total route time / shift time): the
// number of shifts of shiftHours that the summed edge time of all routes
// fills, with a minimum of 1 when routes is non-empty. Route boundaries
// are not taken into account; the total is treated as freely divisible
// between vehicles. Hinted at by the prototype's commented-out
// compute_fleet_requirements; not in spec.md's distillation.
func EstimateFleetSize(e *graph.World, routes [][]graph.EdgeKey, shiftHours float64) int {
	if shiftHours <= 0 || len(routes) == 0 {
		return 0
	}

	var totalSeconds float64
	for _, route := range routes {
		for _, key := range route {
			if edge, ok := e.Edge(key); ok {
				totalSeconds += graph.EdgeTime(edge)
			}
		}
	}

	shiftSeconds := shiftHours * 3600
	fleet := int(totalSeconds / shiftSeconds)
	if float64(fleet)*shiftSeconds < totalSeconds {
		fleet++
	}
	if fleet < 1 {
		fleet = 1
	}
	return fleet
}
