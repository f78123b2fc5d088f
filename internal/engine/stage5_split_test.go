package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streetsweep/internal/graph"
)

// TestSplitTourSealsBeforeExceedingBudget is Scenario E from spec.md §8:
// five deadhead edges of 600s each (2160m at 3.6 m/s), T_max=1800s,
// expect routes [[e1,e2,e3],[e4,e5]].
func TestSplitTourSealsBeforeExceedingBudget(t *testing.T) {
	e := graph.New()
	for id := graph.NodeID(1); id <= 6; id++ {
		e.AddNode(id, float64(id), 0)
	}

	var keys []graph.EdgeKey
	for i := 0; i < 5; i++ {
		edge := e.AddEdge(graph.NodeID(i+1), graph.NodeID(i+2), 600*3.6, "residential", graph.ModeDeadhead, nil)
		keys = append(keys, edge.Key)
	}

	routes, err := SplitTour(e, keys, 1800)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, keys[:3], routes[0])
	assert.Equal(t, keys[3:], routes[1])
}

func TestSplitTourSingleOversizedEdgeFormsOwnRoute(t *testing.T) {
	e := graph.New()
	e.AddNode(1, 0, 0)
	e.AddNode(2, 1, 0)
	edge := e.AddEdge(1, 2, 100000, "residential", graph.ModeSweep, nil)

	routes, err := SplitTour(e, []graph.EdgeKey{edge.Key}, 10)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, []graph.EdgeKey{edge.Key}, routes[0])
}

func TestSplitTourRejectsNonPositiveBudget(t *testing.T) {
	e := graph.New()
	_, err := SplitTour(e, nil, 0)
	require.Error(t, err)
}

func TestComputeRouteStatsBreaksDownByMode(t *testing.T) {
	e := graph.New()
	e.AddNode(1, 0, 0)
	e.AddNode(2, 1, 0)
	e.AddNode(3, 2, 0)
	sweep := e.AddEdge(1, 2, 19, "residential", graph.ModeSweep, nil)    // 10s
	deadhead := e.AddEdge(2, 3, 36, "residential", graph.ModeDeadhead, nil) // 10s

	stats := ComputeRouteStats(e, []graph.EdgeKey{sweep.Key, deadhead.Key})
	assert.InDelta(t, 10, stats.SweepSeconds, 0.01)
	assert.InDelta(t, 10, stats.DeadheadSeconds, 0.01)
	assert.InDelta(t, 50, stats.DeadheadPercentage, 0.01)
	assert.Equal(t, 2, stats.EdgeCount)
}

func TestEstimateFleetSizeRoundsUp(t *testing.T) {
	e := graph.New()
	e.AddNode(1, 0, 0)
	e.AddNode(2, 1, 0)
	edge := e.AddEdge(1, 2, 1.9*3600*1.5, "residential", graph.ModeSweep, nil) // 1.5 hours

	fleet := EstimateFleetSize(e, [][]graph.EdgeKey{{edge.Key}}, 1.0)
	assert.Equal(t, 2, fleet)
}
