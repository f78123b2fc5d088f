package engine

import "streetsweep/internal/graph"

// pickMinCostEdge returns the minimum-cost parallel edge from u to v in
// w, breaking ties by ascending key (the first parallel edge encountered
// at the minimum cost wins) — mirrors transportation.py's
// pick_min_cost_edge_key. Returns nil if u and v are not directly
// connected in w.
func pickMinCostEdge(w *graph.World, u, v graph.NodeID) *graph.Edge {
	var best *graph.Edge
	for _, e := range w.ParallelEdges(u, v) {
		if best == nil || w.CostOf(e) < w.CostOf(best) {
			best = e
		}
	}
	return best
}

// copyPathAsDeadhead walks path (a sequence of node ids connected by
// direct edges in source) and adds one deadhead copy of the min-cost
// edge between each consecutive pair into dst, tagging it with mode and
// markers. Used by S2 (mode=ModeDeadhead) and S3 (mode=ModeDeadhead,
// connector=true); S4's directed/reverse branching needs its own logic
// and does not use this helper.
func copyPathAsDeadhead(source, dst *graph.World, path []graph.NodeID, mode graph.Mode, connector bool) {
	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		src := pickMinCostEdge(source, u, v)
		if src == nil {
			continue // defensive: path came from source's own shortest-path tree
		}
		inheritNode(dst, source, u)
		inheritNode(dst, source, v)
		geometry := append([]graph.Point(nil), src.Geometry...)
		cp := dst.AddEdge(u, v, src.Length, src.Highway, mode, geometry)
		cp.Cost = src.Cost
		cp.IsDeadheadAdded = true
		cp.IsComponentConnector = connector
	}
}

// inheritNode adds id to dst with source's coordinates if dst lacks it,
// so every edge endpoint a stage adds is a registered node of dst.
func inheritNode(dst, source *graph.World, id graph.NodeID) {
	if dst.HasNode(id) {
		return
	}
	if n, ok := source.Node(id); ok {
		dst.AddNode(id, n.X, n.Y)
	}
}
