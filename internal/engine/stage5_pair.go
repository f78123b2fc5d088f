package engine

import (
	"streetsweep/internal/algorithms"
	"streetsweep/internal/graph"
	"streetsweep/pkg/apperror"
)

// Pairing maps an edge key to the edge key of the outgoing edge that
// follows it in the tour: after traversing pairing[k], the vehicle is at
// k.V and must next take the edge pairing finds for it there.
type Pairing map[graph.EdgeKey]graph.EdgeKey

// Pair builds the per-node local pairing for e: at every node, the
// incoming edges are matched one-to-one to the outgoing edges by a
// minimum-cost Hungarian assignment over the turn/mode-switch cost
// model in algorithms.PairingCost. Every node of e must already be
// balanced (in-degree == out-degree); S4 is responsible for that before
// S5 runs. Grounded on pair.py's per-node loop and its use of
// hungarian_min_cost.
func Pair(e *graph.World) (Pairing, error) {
	pairing := make(Pairing)

	for _, n := range e.NodeIDs() {
		ins := e.InEdges(n)
		outs := e.OutEdges(n)
		if len(ins) == 0 && len(outs) == 0 {
			continue
		}
		if len(ins) != len(outs) {
			return nil, apperror.New(apperror.CodePairingMismatch,
				"node is not balanced at pairing time").
				WithStage("S5a").
				WithDetails("node", n).
				WithDetails("in", len(ins)).
				WithDetails("out", len(outs))
		}

		cost := make([][]float64, len(ins))
		for i, in := range ins {
			cost[i] = make([]float64, len(outs))
			for j, out := range outs {
				cost[i][j] = algorithms.PairingCost(e, in, out)
			}
		}

		assignment, _ := algorithms.HungarianMinCost(cost)
		for i, j := range assignment {
			pairing[ins[i].Key] = outs[j].Key
		}
	}

	return pairing, nil
}
