package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streetsweep/internal/graph"
	"streetsweep/pkg/apperror"
)

func TestForceBalanceUsesReverseEdgeWhenNoForwardPathExists(t *testing.T) {
	// f is the real street network: a one-way residential street from 1
	// to 2 and nothing else. e is S2/S3's output, which never connected
	// 1 and 2 directly — its imbalance comes entirely through a third
	// node — so the only path ForceBalance can find between them lives
	// in f, not in e, and that path runs the "wrong" way (2 needs an
	// extra out-edge to 1, but f's only street between them points
	// 1->2).
	f := graph.New()
	f.AddNode(1, 0, 0)
	f.AddNode(2, 1, 0)
	f.AddEdge(1, 2, 10, "residential", graph.ModeSweep, nil)

	e := graph.New()
	e.AddNode(1, 0, 0)
	e.AddNode(2, 1, 0)
	e.AddNode(3, 2, 0)
	e.AddEdge(1, 3, 10, "residential", graph.ModeSweep, nil) // node1: out+1 -> demand
	e.AddEdge(3, 2, 10, "residential", graph.ModeSweep, nil) // node2: in+1 -> supply

	iterations, err := ForceBalance(e, f)
	require.NoError(t, err)
	assert.Equal(t, 1, iterations)

	imb := Imbalance(e)
	assert.Equal(t, Balanced, imb[1].Type)
	assert.Equal(t, Balanced, imb[2].Type)

	var forced int
	for _, edge := range e.Edges() {
		if edge.Mode == graph.ModeDeadheadForce {
			forced++
			assert.True(t, edge.ReversedFromOneway)
			assert.True(t, edge.IsForceBalance)
			assert.Equal(t, graph.NodeID(2), edge.Key.U)
			assert.Equal(t, graph.NodeID(1), edge.Key.V)
		}
	}
	assert.Equal(t, 1, forced)
}

func TestForceBalanceAlreadyBalancedIsNoop(t *testing.T) {
	e := graph.New()
	e.AddNode(1, 0, 0)
	e.AddNode(2, 1, 0)
	e.AddEdge(1, 2, 10, "residential", graph.ModeSweep, nil)
	e.AddEdge(2, 1, 10, "residential", graph.ModeSweep, nil)

	iterations, err := ForceBalance(e, e)
	require.NoError(t, err)
	assert.Equal(t, 0, iterations)
}

func TestForceBalanceDeadEndReportsError(t *testing.T) {
	build := func() *graph.World {
		g := graph.New()
		for _, id := range []graph.NodeID{1, 2, 3, 4} {
			g.AddNode(id, float64(id), 0)
		}
		g.AddEdge(1, 4, 10, "residential", graph.ModeSweep, nil) // component A: 1 demand, 4 supply
		g.AddEdge(2, 3, 10, "residential", graph.ModeSweep, nil) // component B: 2 demand, 3 supply
		return g
	}
	// Two entirely disconnected components, interleaved in id space so
	// the greedy "first supply, first demand" pairing picks across
	// components on its very first iteration: node3 (component B,
	// supply) has no path of either direction to node1 (component A,
	// demand) — in e or in the full network f, which mirrors the same
	// two components here.
	e, f := build(), build()

	_, err := ForceBalance(e, f)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeForceBalanceDeadEnd))
}
