package graph

// Travel speeds, in meters/second, used to convert an edge's length into
// a traversal time. Sweep edges are slower because the vehicle is
// actively brushing the surface; deadhead edges (both directions) are
// driven at normal road speed.
const (
	sweepSpeedMPS    = 1.9
	deadheadSpeedMPS = 3.6
	defaultSpeedMPS  = 2.5
)

// EdgeTime returns the time, in seconds, to traverse e.
func EdgeTime(e *Edge) float64 {
	switch e.Mode {
	case ModeSweep:
		return e.Length / sweepSpeedMPS
	case ModeDeadhead, ModeDeadheadForce:
		return e.Length / deadheadSpeedMPS
	default:
		return e.Length / defaultSpeedMPS
	}
}

// IsSweep reports whether e counts as required coverage.
func IsSweep(e *Edge) bool { return e.Mode == ModeSweep }
