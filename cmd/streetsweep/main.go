// Command streetsweep is a thin demo driver for the routing engine: it
// builds a small synthetic street network, runs one schedule block
// through engine.Solve, and prints the resulting routes. A real driver
// would load F from a graph store and read schedule blocks from
// configuration — both out of the engine's scope (spec.md §1) — but a
// demo needs something to solve.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"streetsweep/internal/engine"
	"streetsweep/internal/graph"
	"streetsweep/pkg/logger"
)

func main() {
	routeHours := flag.Float64("route-hours", 1.0, "time budget per route, in hours")
	logLevel := flag.String("log-level", "info", "debug, info, warn, error")
	flag.Parse()

	logger.Init(*logLevel)

	world := demoWorld()
	allowed := map[string]bool{"residential": true, "tertiary": true}

	result, err := engine.Solve(context.Background(), world, allowed, *routeHours, nil)
	if err != nil {
		logger.Error("solve failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("run %s: %d edges in E, %d tour edges, %d routes\n",
		result.RunID, len(result.E.Edges()), len(result.Tour), len(result.Routes))

	for i, route := range result.Routes {
		stats := engine.ComputeRouteStats(result.E, route)
		fmt.Printf("  route %d: %d edges, sweep=%.0fs deadhead=%.0fs (%.1f%% deadhead)\n",
			i+1, stats.EdgeCount, stats.SweepSeconds, stats.DeadheadSeconds, stats.DeadheadPercentage)
	}

	fleet := engine.EstimateFleetSize(result.E, result.Routes, 8.0)
	fmt.Printf("estimated fleet size for an 8h shift: %d\n", fleet)
}

// demoWorld builds two square blocks joined by a two-way tertiary
// connector street — small enough to read, connected enough to produce
// a single tour (ten 100m sweep edges, about 526s, so one route at the
// default one-hour budget).
func demoWorld() *graph.World {
	w := graph.New()
	for id := graph.NodeID(1); id <= 8; id++ {
		w.AddNode(id, float64(id%4)*100, float64(id/4)*100)
	}

	block := [][3]any{
		{graph.NodeID(1), graph.NodeID(2), "residential"},
		{graph.NodeID(2), graph.NodeID(3), "residential"},
		{graph.NodeID(3), graph.NodeID(4), "residential"},
		{graph.NodeID(4), graph.NodeID(1), "residential"},
		{graph.NodeID(5), graph.NodeID(6), "residential"},
		{graph.NodeID(6), graph.NodeID(7), "residential"},
		{graph.NodeID(7), graph.NodeID(8), "residential"},
		{graph.NodeID(8), graph.NodeID(5), "residential"},
		{graph.NodeID(2), graph.NodeID(6), "tertiary"},
		{graph.NodeID(6), graph.NodeID(2), "tertiary"},
	}
	for _, e := range block {
		w.AddEdge(e[0].(graph.NodeID), e[1].(graph.NodeID), 100, e[2].(string), "", nil)
	}
	return w
}
