package engine

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"streetsweep/internal/algorithms"
	"streetsweep/internal/graph"
)

// StitchComponents builds E from H: H's weak components are found with
// gonum's traversal-based ConnectedComponents (mirroring H into a throwaway
// undirected simple.Graph, since H's own adjacency is directed), one
// representative node is chosen per component, and a minimum spanning
// tree over the representatives' shortest-path distances in f is
// stitched in by copying each MST edge's path as component-connector
// deadhead edges. Grounded on connectivity.py's get_weak_components /
// choose_representatives / build_component_graph / connect_components_to_form_E.
func StitchComponents(f, h *graph.World) *graph.World {
	e := h.Clone()

	components := weakComponents(h)
	if len(components) <= 1 {
		return e
	}

	reps := make([]graph.NodeID, len(components))
	for i, comp := range components {
		reps[i] = comp[0] // components are returned with sorted-ascending members
	}

	type pathDir struct {
		path []graph.NodeID
	}
	bestPath := make(map[[2]graph.NodeID]pathDir)

	var candidates []algorithms.WeightedEdge
	for i := 0; i < len(reps); i++ {
		forward := algorithms.Dijkstra(reps[i], algorithms.OutArcs(f))
		for j := 0; j < len(reps); j++ {
			if i == j {
				continue
			}
			if dist, ok := forward.Dist[reps[j]]; ok {
				key := [2]graph.NodeID{reps[i], reps[j]}
				bestPath[key] = pathDir{path: forward.PathTo(reps[j])}
				candidates = append(candidates, algorithms.WeightedEdge{U: reps[i], V: reps[j], Weight: dist})
			}
		}
	}

	// Reduce to one undirected candidate per unordered pair, keeping the
	// cheaper direction (component_graph's edges are directed distances;
	// the MST itself is over an undirected view of the representative set).
	undirected := make(map[[2]graph.NodeID]algorithms.WeightedEdge)
	for _, c := range candidates {
		key := undirectedKey(c.U, c.V)
		if existing, ok := undirected[key]; !ok || c.Weight < existing.Weight {
			undirected[key] = c
		}
	}
	var edges []algorithms.WeightedEdge
	for _, c := range undirected {
		edges = append(edges, c)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Weight != edges[j].Weight {
			return edges[i].Weight < edges[j].Weight
		}
		if edges[i].U != edges[j].U {
			return edges[i].U < edges[j].U
		}
		return edges[i].V < edges[j].V
	})

	mst, err := algorithms.Kruskal(reps, edges)
	if err != nil {
		// Representatives drawn from weak components of the same
		// (originally connected) street network should always admit a
		// spanning tree; a failure here means f itself is disconnected,
		// which S3 cannot repair and which S4 does not attempt either.
		return e
	}

	for _, mstEdge := range mst {
		chosen, ok := bestPath[[2]graph.NodeID{mstEdge.U, mstEdge.V}]
		if !ok {
			chosen = bestPath[[2]graph.NodeID{mstEdge.V, mstEdge.U}]
		}
		copyPathAsDeadhead(f, e, chosen.path, graph.ModeDeadhead, true)
	}

	return e
}

func undirectedKey(a, b graph.NodeID) [2]graph.NodeID {
	if a <= b {
		return [2]graph.NodeID{a, b}
	}
	return [2]graph.NodeID{b, a}
}

// weakComponents returns H's weakly-connected components, each a
// sorted-ascending slice of node ids.
func weakComponents(h *graph.World) [][]graph.NodeID {
	ug := simple.NewUndirectedGraph()
	for _, id := range h.NodeIDs() {
		ug.AddNode(simple.Node(id))
	}
	for _, e := range h.Edges() {
		ug.SetEdge(ug.NewEdge(simple.Node(e.Key.U), simple.Node(e.Key.V)))
	}

	groups := topo.ConnectedComponents(ug)
	out := make([][]graph.NodeID, len(groups))
	for i, group := range groups {
		ids := make([]graph.NodeID, len(group))
		for j, n := range group {
			ids[j] = graph.NodeID(n.ID())
		}
		sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
		out[i] = ids
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
