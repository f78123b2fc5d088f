package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streetsweep/internal/graph"
)

func TestKruskalBuildsMinimumSpanningTree(t *testing.T) {
	nodes := []graph.NodeID{1, 2, 3, 4}
	edges := []WeightedEdge{
		{U: 1, V: 2, Weight: 1},
		{U: 2, V: 3, Weight: 2},
		{U: 3, V: 4, Weight: 3},
		{U: 1, V: 4, Weight: 10},
		{U: 1, V: 3, Weight: 5},
	}

	mst, err := Kruskal(nodes, edges)
	require.NoError(t, err)
	require.Len(t, mst, 3)

	var total float64
	for _, e := range mst {
		total += e.Weight
	}
	assert.Equal(t, 6.0, total)
}

func TestKruskalDisconnectedReturnsError(t *testing.T) {
	nodes := []graph.NodeID{1, 2, 3}
	edges := []WeightedEdge{{U: 1, V: 2, Weight: 1}}

	_, err := Kruskal(nodes, edges)
	assert.ErrorIs(t, err, ErrDisconnectedComponents)
}
