package engine

import (
	"streetsweep/internal/algorithms"
	"streetsweep/internal/graph"
	"streetsweep/pkg/apperror"
)

// MaxForceBalanceIterations bounds S4's loop, matching force_balance.py's
// max_iters safety cap: with one supply-to-demand path added per
// iteration over a finite graph, genuine progress cannot require anywhere near this many passes,
// so hitting it indicates the loop has stalled rather than that more
// iterations would help.
const MaxForceBalanceIterations = 100000

// ForceBalance repeatedly connects one remaining supply node to one
// remaining demand node in e until both sets are empty, adding one
// deadhead edge per hop of the connecting path. Paths are searched over
// f (the full street network, not e) — a directed search first, falling
// back to an undirected one only when no directed path exists — and
// each hop is resolved via addDirectedStep, which pulls the actual
// street edge from f and copies it into e. It stops early, without
// error, if a pass fails to reduce total imbalance (S2/S3 already did
// everything directed balancing can do) or after
// MaxForceBalanceIterations passes. Grounded on
// force_balance.py's force_balance(E, F).
func ForceBalance(e, f *graph.World) (iterations int, err error) {
	prevTotal := totalPositiveImbalance(e)

	for iterations < MaxForceBalanceIterations {
		imb := Imbalance(e)
		supply, demand := SupplyDemand(imb)
		if len(supply) == 0 || len(demand) == 0 {
			break
		}
		iterations++

		s, d := supply[0], demand[0]
		path := shortestNodePath(s, d, algorithms.OutArcs(f))
		if path == nil {
			path = shortestNodePath(s, d, algorithms.UndirectedArcs(f))
		}
		if path == nil {
			return iterations, apperror.New(apperror.CodeForceBalanceDeadEnd,
				"no directed or undirected path between the remaining supply and demand nodes").
				WithStage("S4").WithDetails("supply", s).WithDetails("demand", d)
		}

		for i := 0; i+1 < len(path); i++ {
			if stepErr := addDirectedStep(e, f, path[i], path[i+1]); stepErr != nil {
				return iterations, stepErr
			}
		}

		total := totalPositiveImbalance(e)
		if total >= prevTotal {
			break
		}
		prevTotal = total
	}

	return iterations, nil
}

func totalPositiveImbalance(e *graph.World) int {
	total := 0
	for _, rec := range Imbalance(e) {
		if rec.Value > 0 {
			total += rec.Value
		}
	}
	return total
}

func shortestNodePath(s, d graph.NodeID, next algorithms.Neighbors) []graph.NodeID {
	return algorithms.Dijkstra(s, next).PathTo(d)
}

// addDirectedStep adds one deadhead hop from u to v into e, sourced from
// f: the forward street edge if f has one, or — only when it doesn't —
// f's reverse edge traversed against its original one-way direction,
// tagged DEADHEAD_FORCE with its geometry reversed. Mirrors
// force_balance.py's _add_directed_step(E, F, a, b).
func addDirectedStep(e, f *graph.World, u, v graph.NodeID) error {
	inheritNode(e, f, u)
	inheritNode(e, f, v)
	if fwd := pickMinCostEdge(f, u, v); fwd != nil {
		added := e.AddEdge(u, v, fwd.Length, fwd.Highway, graph.ModeDeadhead, append([]graph.Point(nil), fwd.Geometry...))
		added.IsDeadheadAdded = true
		added.IsForceBalance = true
		added.ReversedFromOneway = false
		return nil
	}

	if rev := pickMinCostEdge(f, v, u); rev != nil {
		added := e.AddEdge(u, v, rev.Length, rev.Highway, graph.ModeDeadheadForce, reverseGeometry(rev.Geometry))
		added.IsDeadheadAdded = true
		added.IsForceBalance = true
		added.ReversedFromOneway = true
		return nil
	}

	return apperror.New(apperror.CodeForceBalanceDeadEnd, "no forward or reverse edge available for this hop").
		WithStage("S4").WithDetails("u", u).WithDetails("v", v)
}

func reverseGeometry(pts []graph.Point) []graph.Point {
	if len(pts) == 0 {
		return nil
	}
	rev := make([]graph.Point, len(pts))
	for i, p := range pts {
		rev[len(pts)-1-i] = p
	}
	return rev
}
