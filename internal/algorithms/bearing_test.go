package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"streetsweep/internal/graph"
)

func TestBearingDegNormalizesToPositiveRange(t *testing.T) {
	assert.InDelta(t, 0.0, bearingDeg(0, 1), 1e-9)   // due north
	assert.InDelta(t, 90.0, bearingDeg(1, 0), 1e-9)   // due east
	assert.InDelta(t, 180.0, bearingDeg(0, -1), 1e-9) // due south
	assert.True(t, bearingDeg(-1, 0) >= 0)
}

func TestTurnPenaltyThresholds(t *testing.T) {
	assert.Equal(t, 0.0, turnPenalty(10))
	assert.Equal(t, 3.0, turnPenalty(45))
	assert.Equal(t, 10.0, turnPenalty(90))
	assert.Equal(t, 20.0, turnPenalty(120))
	assert.Equal(t, 1000.0, turnPenalty(150))
	assert.Equal(t, 1000.0, turnPenalty(179))
}

func TestModeSwitchPenalty(t *testing.T) {
	assert.Equal(t, 2.0, modeSwitchPenalty(graph.ModeSweep, graph.ModeDeadhead))
	assert.Equal(t, 0.0, modeSwitchPenalty(graph.ModeSweep, graph.ModeSweep))
	assert.Equal(t, 0.0, modeSwitchPenalty("", graph.ModeSweep))
}

func TestPairingCostStraightThroughIsFree(t *testing.T) {
	w := graph.New()
	w.AddNode(1, 0, 0)
	w.AddNode(2, 0, 1)
	w.AddNode(3, 0, 2)
	in := w.AddEdge(1, 2, 1, "", graph.ModeSweep, nil)
	out := w.AddEdge(2, 3, 1, "", graph.ModeSweep, nil)

	assert.Equal(t, 0.0, PairingCost(w, in, out))
}

func TestPairingCostUTurnIsExpensive(t *testing.T) {
	w := graph.New()
	w.AddNode(1, 0, 0)
	w.AddNode(2, 0, 1)
	in := w.AddEdge(1, 2, 1, "", graph.ModeSweep, nil)
	out := w.AddEdge(2, 1, 1, "", graph.ModeSweep, nil)

	assert.Equal(t, 1000.0, PairingCost(w, in, out))
}
