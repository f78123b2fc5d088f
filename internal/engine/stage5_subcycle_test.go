package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streetsweep/internal/graph"
)

func TestEnumerateCyclesSingleTriangle(t *testing.T) {
	e := graph.New()
	e.AddNode(1, 0, 0)
	e.AddNode(2, 1, 0)
	e.AddNode(3, 2, 0)
	e12 := e.AddEdge(1, 2, 10, "residential", graph.ModeSweep, nil)
	e23 := e.AddEdge(2, 3, 10, "residential", graph.ModeSweep, nil)
	e31 := e.AddEdge(3, 1, 10, "residential", graph.ModeSweep, nil)

	pairing, err := Pair(e)
	require.NoError(t, err)

	cycles, err := EnumerateCycles(e, pairing)
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []graph.EdgeKey{e12.Key, e23.Key, e31.Key}, cycles[0])
}

func TestMergeCyclesSplicesSharedNode(t *testing.T) {
	a1 := graph.EdgeKey{U: 1, V: 2}
	a2 := graph.EdgeKey{U: 2, V: 1}
	b1 := graph.EdgeKey{U: 2, V: 3}
	b2 := graph.EdgeKey{U: 3, V: 2}

	tour, err := MergeCycles([][]graph.EdgeKey{{a1, a2}, {b1, b2}})
	require.NoError(t, err)
	require.Len(t, tour, 4)

	for i := range tour {
		next := tour[(i+1)%len(tour)]
		assert.Equal(t, tour[i].V, next.U)
	}
}

func TestMergeCyclesDisjointReportsError(t *testing.T) {
	a := graph.EdgeKey{U: 1, V: 2}
	aRev := graph.EdgeKey{U: 2, V: 1}
	b := graph.EdgeKey{U: 10, V: 11}
	bRev := graph.EdgeKey{U: 11, V: 10}

	_, err := MergeCycles([][]graph.EdgeKey{{a, aRev}, {b, bRev}})
	require.Error(t, err)
}
