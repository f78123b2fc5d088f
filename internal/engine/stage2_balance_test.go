package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streetsweep/internal/graph"
)

func TestBalanceAddsDeadheadToFixImbalance(t *testing.T) {
	f := graph.New()
	f.AddNode(1, 0, 0)
	f.AddNode(2, 1, 0)
	f.AddEdge(1, 2, 10, "residential", graph.ModeSweep, nil)
	f.AddEdge(2, 1, 10, "residential", "", nil) // only reachable via F, not in K

	k := graph.New()
	k.AddNode(1, 0, 0)
	k.AddNode(2, 1, 0)
	k.AddEdge(1, 2, 10, "residential", graph.ModeSweep, nil)

	result, err := Balance(f, k)
	require.NoError(t, err)

	imb := Imbalance(result.H)
	assert.Equal(t, Balanced, imb[1].Type)
	assert.Equal(t, Balanced, imb[2].Type)

	var deadheads int
	for _, e := range result.H.Edges() {
		if e.Mode == graph.ModeDeadhead {
			deadheads++
		}
	}
	assert.Equal(t, 1, deadheads)
}

func TestBalanceReportsUnreachableSupply(t *testing.T) {
	f := graph.New()
	f.AddNode(1, 0, 0)
	f.AddNode(2, 1, 0)
	f.AddEdge(1, 2, 10, "residential", graph.ModeSweep, nil) // no way back to 1

	k := f.Clone()

	result, err := Balance(f, k)
	require.Error(t, err)
	assert.Equal(t, 1, result.UnreachableCount)
}

func TestBalanceNoImbalanceIsNoop(t *testing.T) {
	f := graph.New()
	f.AddNode(1, 0, 0)
	f.AddNode(2, 1, 0)
	f.AddEdge(1, 2, 10, "residential", graph.ModeSweep, nil)
	f.AddEdge(2, 1, 10, "residential", graph.ModeSweep, nil)

	result, err := Balance(f, f)
	require.NoError(t, err)
	assert.Len(t, result.H.Edges(), 2)
}
