package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streetsweep/internal/graph"
)

// TestSolveTrivialBalancedCycle is Scenario A from spec.md §8: a 3-node
// directed triangle, all edges 100m residential, already balanced.
// Expect K = F, H = K, E = H, a single 3-edge route.
func TestSolveTrivialBalancedCycle(t *testing.T) {
	f := graph.New()
	f.AddNode(1, 0, 0)
	f.AddNode(2, 1, 0)
	f.AddNode(3, 2, 0)
	f.AddEdge(1, 2, 100, "residential", "", nil)
	f.AddEdge(2, 3, 100, "residential", "", nil)
	f.AddEdge(3, 1, 100, "residential", "", nil)

	result, err := Solve(context.Background(), f, map[string]bool{"residential": true}, 1.0, nil)
	require.NoError(t, err)

	assert.Len(t, result.E.Edges(), 3)
	assert.Len(t, result.Tour, 3)
	require.Len(t, result.Routes, 1)
	assert.Len(t, result.Routes[0], 3)
	assert.NotEmpty(t, result.RunID)
}

func TestSolveRejectsNilWorld(t *testing.T) {
	_, err := Solve(context.Background(), nil, nil, 1.0, nil)
	require.Error(t, err)
}

func TestSolveRejectsNonPositiveTimeBudget(t *testing.T) {
	f := graph.New()
	f.AddNode(1, 0, 0)
	_, err := Solve(context.Background(), f, map[string]bool{}, 0, nil)
	require.Error(t, err)
}
