package engine

import (
	"streetsweep/internal/algorithms"
	"streetsweep/internal/graph"
	"streetsweep/pkg/apperror"
)

// BalanceResult is the outcome of S2's transportation balancing pass.
type BalanceResult struct {
	H                *graph.World
	UnreachableCount int // supply units that could not reach any demand unit
}

// Balance builds H from K by solving a bipartite min-cost transportation
// problem between K's supply and demand nodes — each unit of flow routed
// through f (the full street network, not just K) is materialized as a
// chain of deadhead edges copied into H. Grounded on transportation.py's
// make_balanced_H / solve_transportation_min_cost_flow /
// build_H_from_flow.
//
// A supply unit with no path to any demand unit is dropped and counted
// in UnreachableCount rather than failing the stage — S4's forced
// balancing is the pipeline's safety net for whatever S2 cannot connect.
func Balance(f, k *graph.World) (*BalanceResult, error) {
	h := k.Clone()

	imb := Imbalance(k)
	supply, demand := SupplyDemand(imb)
	if len(supply) == 0 && len(demand) == 0 {
		return &BalanceResult{H: h}, nil
	}

	distFrom := make(map[graph.NodeID]*algorithms.DijkstraResult)
	for _, s := range uniqueNodeIDs(supply) {
		distFrom[s] = algorithms.Dijkstra(s, algorithms.OutArcs(f))
	}

	n, m := len(supply), len(demand)
	// node layout: 0=source, 1..n=supply units, n+1..n+m=demand units, n+m+1=sink
	source, sink := 0, n+m+1
	fg := algorithms.NewFlowGraph(n + m + 2)

	for i := 0; i < n; i++ {
		fg.AddEdge(source, 1+i, 1, 0)
	}
	for j := 0; j < m; j++ {
		fg.AddEdge(n+1+j, sink, 1, 0)
	}

	type pairEdge struct{ i, j int }
	var pairs []pairEdge
	for i, s := range supply {
		dr := distFrom[s]
		for j, d := range demand {
			dist, ok := dr.Dist[d]
			if !ok {
				continue
			}
			fg.AddEdge(1+i, n+1+j, 1, dist)
			pairs = append(pairs, pairEdge{i, j})
		}
	}

	maxFlow := float64(n)
	if m < n {
		maxFlow = float64(m)
	}
	flow, _ := fg.MinCostFlow(source, sink, maxFlow)
	unreachable := n - int(flow)

	// edges were added in order: n (source->supply) + m (demand->sink) + len(pairs)
	base := n + m
	for idx, p := range pairs {
		edgeIdx := base + idx
		if fg.Flow(edgeIdx) <= 0 {
			continue
		}
		s, d := supply[p.i], demand[p.j]
		path := distFrom[s].PathTo(d)
		copyPathAsDeadhead(f, h, path, graph.ModeDeadhead, false)
	}

	if unreachable > 0 {
		return &BalanceResult{H: h, UnreachableCount: unreachable},
			apperror.NewWarning(apperror.CodeUnreachableSupply, "some supply units have no path to any demand unit").
				WithDetails("count", unreachable).WithStage("S2")
	}
	return &BalanceResult{H: h}, nil
}

func uniqueNodeIDs(ids []graph.NodeID) []graph.NodeID {
	seen := make(map[graph.NodeID]bool, len(ids))
	var out []graph.NodeID
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sortNodeIDs(out)
	return out
}
