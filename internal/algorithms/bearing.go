package algorithms

import (
	"math"

	"streetsweep/internal/graph"
)

// bearingDeg returns the compass bearing of the vector (dx, dy), in
// degrees, normalized to [0, 360). Note the argument order: atan2(dx, dy)
// rather than the usual atan2(dy, dx) — this rotates the result so 0°
// points north and it increases clockwise, matching how the underlying
// street geometry's bearings are defined.
func bearingDeg(dx, dy float64) float64 {
	deg := math.Atan2(dx, dy) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// edgeBearingIn returns the bearing a vehicle is traveling on as it
// arrives at e's head node: the direction of the edge's last geometry
// segment, falling back to the straight line between its endpoints if it
// carries no geometry.
func edgeBearingIn(w *graph.World, e *graph.Edge) float64 {
	if n := len(e.Geometry); n >= 2 {
		a, b := e.Geometry[n-2], e.Geometry[n-1]
		return bearingDeg(b.X-a.X, b.Y-a.Y)
	}
	u, uok := w.Node(e.Key.U)
	v, vok := w.Node(e.Key.V)
	if uok && vok {
		return bearingDeg(v.X-u.X, v.Y-u.Y)
	}
	return 0
}

// edgeBearingOut returns the bearing a vehicle departs on when leaving
// e's tail node: the direction of the edge's first geometry segment,
// with the same node-coordinate fallback as edgeBearingIn.
func edgeBearingOut(w *graph.World, e *graph.Edge) float64 {
	if n := len(e.Geometry); n >= 2 {
		a, b := e.Geometry[0], e.Geometry[1]
		return bearingDeg(b.X-a.X, b.Y-a.Y)
	}
	u, uok := w.Node(e.Key.U)
	v, vok := w.Node(e.Key.V)
	if uok && vok {
		return bearingDeg(v.X-u.X, v.Y-u.Y)
	}
	return 0
}

// angleDiffDeg returns the symmetric angular difference between two
// bearings, clamped to [0, 180].
func angleDiffDeg(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// turnPenalty scores how sharp a turn from one edge to the next is. The
// thresholds are a coarse stand-in for driving difficulty, steepest for
// near U-turns.
func turnPenalty(turnAngle float64) float64 {
	switch {
	case turnAngle >= 150:
		return 1000
	case turnAngle >= 120:
		return 20
	case turnAngle >= 90:
		return 10
	case turnAngle >= 45:
		return 3
	default:
		return 0
	}
}

// modeSwitchPenalty adds a small cost to pairing a sweep edge with a
// deadhead (or vice versa), preferring to keep the vehicle in one mode
// across a turn when both options are otherwise equal.
func modeSwitchPenalty(in, out graph.Mode) float64 {
	if in != "" && out != "" && in != out {
		return 2.0
	}
	return 0.0
}

// PairingCost returns the cost of pairing incoming edge in with outgoing
// edge out at the node they share: the turn penalty for the bearing
// change plus a mode-switch penalty.
func PairingCost(w *graph.World, in, out *graph.Edge) float64 {
	turnAngle := angleDiffDeg(edgeBearingIn(w, in), edgeBearingOut(w, out))
	return turnPenalty(turnAngle) + modeSwitchPenalty(in.Mode, out.Mode)
}
