package engine

import (
	"streetsweep/internal/graph"
	"streetsweep/pkg/apperror"
)

// EnumerateCycles partitions every edge of e into closed subcycles by
// following pairing: starting from the lowest-keyed unconsumed edge, it
// walks pairing[cur] forward, consuming edges, until it returns to the
// starting edge. Grounded on subcycle.py's "while unused: pick any edge,
// follow the pairing" loop, with "any edge" made deterministic by always
// picking the lowest (U, V, K) unconsumed edge.
func EnumerateCycles(e *graph.World, pairing Pairing) ([][]graph.EdgeKey, error) {
	all := e.Edges()
	used := make(map[graph.EdgeKey]bool, len(all))

	var cycles [][]graph.EdgeKey
	for _, start := range all {
		if used[start.Key] {
			continue
		}

		cycle := []graph.EdgeKey{start.Key}
		used[start.Key] = true
		cur := start.Key

		for {
			next, ok := pairing[cur]
			if !ok {
				return nil, apperror.New(apperror.CodePairingMissing,
					"no outgoing pairing recorded for edge").
					WithStage("S5a").WithDetails("edge", cur)
			}
			if next == start.Key {
				break
			}
			if used[next] {
				return nil, apperror.New(apperror.CodePairingMismatch,
					"pairing led to an edge already consumed before closing its cycle").
					WithStage("S5a").WithDetails("edge", next)
			}
			cycle = append(cycle, next)
			used[next] = true
			cur = next
		}

		cycles = append(cycles, cycle)
	}

	return cycles, nil
}

// rotateToTail returns cycle rotated so that its first edge's tail (U)
// is x, or ok=false if no edge in cycle leaves x. This is the primary
// branch of subcycle.py's rotation logic: the splice point must be
// enterable as an edge leaving x, since the giant tour is spliced by
// inserting the whole rotated cycle right after the shared node.
func rotateToTail(cycle []graph.EdgeKey, x graph.NodeID) ([]graph.EdgeKey, bool) {
	for i, key := range cycle {
		if key.U == x {
			rotated := make([]graph.EdgeKey, 0, len(cycle))
			rotated = append(rotated, cycle[i:]...)
			rotated = append(rotated, cycle[:i]...)
			return rotated, true
		}
	}
	return nil, false
}

// MergeCycles splices a set of edge-disjoint cycles into a single giant
// tour by repeatedly finding a cycle that shares a node x with the tour
// built so far, rotating both so they begin at an edge leaving x, and
// inserting the whole rotated cycle as a detour taken at x before the
// tour continues. Grounded on subcycle.py's merge loop, with one fix:
// the prototype splices as tour_rot[:1] + cy_rot + tour_rot[1:], which
// only preserves tour[i].v == tour[i+1].u across the splice when
// tour_rot[0] happens to be a self-loop at x; this implementation
// instead inserts the detour before the continuation (cy_rot ++
// tour_rot), which keeps every junction continuous because cy_rot is
// itself closed at x and tour_rot begins at x. REDESIGN FLAG
// (spec.md §9): a splice node that never appears as an edge tail in
// one of the two cycles is treated as a fatal disjoint-cycles error
// rather than silently falling back to a node-membership rotation,
// since such a cycle cannot actually be entered there.
func MergeCycles(cycles [][]graph.EdgeKey) ([]graph.EdgeKey, error) {
	if len(cycles) == 0 {
		return nil, nil
	}

	tour := append([]graph.EdgeKey(nil), cycles[0]...)
	remaining := make([][]graph.EdgeKey, len(cycles)-1)
	copy(remaining, cycles[1:])

	for len(remaining) > 0 {
		tourNodes := make(map[graph.NodeID]bool, len(tour))
		for _, key := range tour {
			tourNodes[key.U] = true
		}

		spliced := false
		for i, c := range remaining {
			var shared graph.NodeID
			found := false
			for _, key := range c {
				if tourNodes[key.U] {
					shared = key.U
					found = true
					break
				}
				if tourNodes[key.V] {
					shared = key.V
					found = true
					break
				}
			}
			if !found {
				continue
			}

			tourRot, ok := rotateToTail(tour, shared)
			if !ok {
				return nil, apperror.New(apperror.CodeDisjointCycles,
					"shared node does not appear as an edge tail in the tour being merged").
					WithStage("S5b").WithDetails("node", shared)
			}
			cycleRot, ok := rotateToTail(c, shared)
			if !ok {
				return nil, apperror.New(apperror.CodeDisjointCycles,
					"shared node does not appear as an edge tail in the cycle being merged").
					WithStage("S5b").WithDetails("node", shared)
			}

			merged := make([]graph.EdgeKey, 0, len(tourRot)+len(cycleRot))
			merged = append(merged, cycleRot...)
			merged = append(merged, tourRot...)
			tour = merged

			remaining = append(remaining[:i:i], remaining[i+1:]...)
			spliced = true
			break
		}

		if !spliced {
			return nil, apperror.New(apperror.CodeDisjointCycles,
				"no remaining cycle shares a node with the tour built so far").
				WithStage("S5b")
		}
	}

	return tour, nil
}
