package algorithms

import (
	"errors"
	"sort"

	"streetsweep/internal/graph"
)

// ErrDisconnectedComponents is returned by Kruskal when fewer than
// len(nodes)-1 edges can be added without forming a cycle, meaning the
// input edge set does not connect every node.
var ErrDisconnectedComponents = errors.New("algorithms: edge set does not connect all nodes")

// WeightedEdge is an undirected candidate edge for Kruskal's algorithm,
// here used over component-representative nodes rather than street
// segments directly.
type WeightedEdge struct {
	U, V   graph.NodeID
	Weight float64
}

type disjointSet struct {
	parent map[graph.NodeID]graph.NodeID
	rank   map[graph.NodeID]int
}

func newDisjointSet(nodes []graph.NodeID) *disjointSet {
	ds := &disjointSet{
		parent: make(map[graph.NodeID]graph.NodeID, len(nodes)),
		rank:   make(map[graph.NodeID]int, len(nodes)),
	}
	for _, n := range nodes {
		ds.parent[n] = n
	}
	return ds
}

func (ds *disjointSet) find(n graph.NodeID) graph.NodeID {
	for ds.parent[n] != n {
		ds.parent[n] = ds.parent[ds.parent[n]] // path halving
		n = ds.parent[n]
	}
	return n
}

func (ds *disjointSet) union(a, b graph.NodeID) bool {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return false
	}
	switch {
	case ds.rank[ra] < ds.rank[rb]:
		ra, rb = rb, ra
	case ds.rank[ra] == ds.rank[rb]:
		ds.rank[ra]++
	}
	ds.parent[rb] = ra
	return true
}

// Kruskal returns a minimum spanning tree over nodes given the candidate
// edges, choosing among edges of equal weight in the order they were
// given (stable sort) so the result is deterministic for a fixed input
// order.
func Kruskal(nodes []graph.NodeID, edges []WeightedEdge) ([]WeightedEdge, error) {
	sorted := make([]WeightedEdge, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Weight < sorted[j].Weight })

	ds := newDisjointSet(nodes)
	var mst []WeightedEdge
	for _, e := range sorted {
		if ds.union(e.U, e.V) {
			mst = append(mst, e)
			if len(mst) == len(nodes)-1 {
				break
			}
		}
	}

	if len(nodes) > 1 && len(mst) != len(nodes)-1 {
		return mst, ErrDisconnectedComponents
	}
	return mst, nil
}
