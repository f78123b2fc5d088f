// Package algorithms holds the graph algorithms the pipeline stages
// compose: shortest paths, min-cost flow, minimum spanning tree, and the
// Hungarian assignment used for local turn-pairing.
package algorithms

import (
	"container/heap"

	"streetsweep/internal/graph"
)

// Arc is one weighted step a shortest-path search may take from a node.
// Edge is the underlying street edge when the arc corresponds to one
// (nil for synthetic arcs such as S2's supply/demand connectors).
type Arc struct {
	To     graph.NodeID
	Weight float64
	Edge   *graph.Edge
}

// Neighbors returns the arcs leaving u. Callers choose the adjacency:
// directed out-edges for S2/S3, or out+in combined for S4's undirected
// fallback search.
type Neighbors func(u graph.NodeID) []Arc

// DijkstraResult carries the shortest-path tree computed from Source.
type DijkstraResult struct {
	Source graph.NodeID
	Dist   map[graph.NodeID]float64
	Parent map[graph.NodeID]graph.NodeID
}

// PathTo reconstructs the path from Source to target, inclusive, walking
// Parent backwards. Returns nil if target is unreached.
func (r *DijkstraResult) PathTo(target graph.NodeID) []graph.NodeID {
	if _, ok := r.Dist[target]; !ok {
		return nil
	}
	var rev []graph.NodeID
	for n := target; ; {
		rev = append(rev, n)
		if n == r.Source {
			break
		}
		p, ok := r.Parent[n]
		if !ok {
			return nil
		}
		n = p
	}
	path := make([]graph.NodeID, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}

type pqItem struct {
	node graph.NodeID
	dist float64
}

// priorityQueue breaks distance ties on node id, so two runs over the
// same graph always expand nodes in the same order.
type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].node < pq[j].node
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any)   { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// Dijkstra computes single-source shortest paths from source using next
// as the adjacency function. Weights must be non-negative.
func Dijkstra(source graph.NodeID, next Neighbors) *DijkstraResult {
	dist := make(map[graph.NodeID]float64)
	parent := make(map[graph.NodeID]graph.NodeID)
	visited := graph.GlobalScratchPool().AcquireBoolMap()
	defer graph.GlobalScratchPool().ReleaseBoolMap(visited)

	dist[source] = 0
	pq := &priorityQueue{{node: source, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		u := item.node
		if visited[u] {
			continue
		}
		visited[u] = true

		for _, arc := range next(u) {
			if arc.Weight < 0 {
				continue
			}
			nd := dist[u] + arc.Weight
			if d, ok := dist[arc.To]; !ok || nd < d {
				dist[arc.To] = nd
				parent[arc.To] = u
				heap.Push(pq, pqItem{node: arc.To, dist: nd})
			}
		}
	}

	return &DijkstraResult{Source: source, Dist: dist, Parent: parent}
}

// OutArcs adapts w.OutEdges into a Neighbors function weighted by cost.
func OutArcs(w *graph.World) Neighbors {
	return func(u graph.NodeID) []Arc {
		edges := w.OutEdges(u)
		arcs := make([]Arc, len(edges))
		for i, e := range edges {
			arcs[i] = Arc{To: e.Key.V, Weight: w.CostOf(e), Edge: e}
		}
		return arcs
	}
}

// UndirectedArcs adapts w into a Neighbors function that considers both
// out- and in-edges as traversable in either direction, for S4's fallback
// search when no directed path exists.
func UndirectedArcs(w *graph.World) Neighbors {
	return func(u graph.NodeID) []Arc {
		out := w.OutEdges(u)
		in := w.InEdges(u)
		arcs := make([]Arc, 0, len(out)+len(in))
		for _, e := range out {
			arcs = append(arcs, Arc{To: e.Key.V, Weight: w.CostOf(e), Edge: e})
		}
		for _, e := range in {
			arcs = append(arcs, Arc{To: e.Key.U, Weight: w.CostOf(e), Edge: e})
		}
		return arcs
	}
}
