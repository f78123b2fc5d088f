package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streetsweep/internal/graph"
)

// TestPairPrefersStraightThrough builds Scenario F from spec.md §8: at
// node n, incoming edges from west and south, outgoing edges to east and
// north. The straight-through pairing (west->east, south->north) costs
// 0; the cross pairing costs two 90-degree turns.
func TestPairPrefersStraightThrough(t *testing.T) {
	e := graph.New()
	e.AddNode(1, -10, 0)  // west
	e.AddNode(2, 0, -10)  // south
	e.AddNode(3, 0, 0)    // n
	e.AddNode(4, 10, 0)   // east
	e.AddNode(5, 0, 10)   // north

	fromWest := e.AddEdge(1, 3, 10, "residential", graph.ModeSweep, nil)
	fromSouth := e.AddEdge(2, 3, 10, "residential", graph.ModeSweep, nil)
	toEast := e.AddEdge(3, 4, 10, "residential", graph.ModeSweep, nil)
	toNorth := e.AddEdge(3, 5, 10, "residential", graph.ModeSweep, nil)

	pairing, err := Pair(e)
	require.NoError(t, err)

	assert.Equal(t, toEast.Key, pairing[fromWest.Key])
	assert.Equal(t, toNorth.Key, pairing[fromSouth.Key])
}

func TestPairRejectsUnbalancedNode(t *testing.T) {
	e := graph.New()
	e.AddNode(1, 0, 0)
	e.AddNode(2, 1, 0)
	e.AddNode(3, 2, 0)
	e.AddEdge(1, 2, 10, "residential", graph.ModeSweep, nil)
	e.AddEdge(1, 3, 10, "residential", graph.ModeSweep, nil)

	_, err := Pair(e)
	require.Error(t, err)
}
