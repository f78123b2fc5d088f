package engine

import (
	"sort"

	"streetsweep/internal/graph"
)

func sortNodeIDs(ids []graph.NodeID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
