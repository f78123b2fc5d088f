package engine

import "streetsweep/internal/graph"

// ImbalanceType classifies a node by its in/out-degree mismatch.
type ImbalanceType string

const (
	Balanced ImbalanceType = "balanced"
	Supply   ImbalanceType = "supply" // in-degree exceeds out-degree: needs more outgoing edges
	Demand   ImbalanceType = "demand" // out-degree exceeds in-degree: needs more incoming edges
)

// NodeImbalance is one node's in/out-degree snapshot at a pipeline
// checkpoint (K after S1, H after S2, E after S3/S4).
type NodeImbalance struct {
	Node  graph.NodeID
	In    int
	Out   int
	Value int // In - Out; positive is Supply, negative is Demand
	Type  ImbalanceType
}

// Imbalance computes the in/out-degree imbalance of every node in g. It
// is exported standalone (not just used internally between stages) so a
// caller can snapshot any of the three checkpoints the original
// implementation inspects — matching its diagnostic behavior of calling
// compute_node_imbalance on K, H, and E in turn rather than only once.
func Imbalance(g *graph.World) map[graph.NodeID]NodeImbalance {
	out := make(map[graph.NodeID]NodeImbalance, g.NumNodes())
	for _, id := range g.NodeIDs() {
		in, outDeg := g.InDegree(id), g.OutDegree(id)
		value := in - outDeg
		typ := Balanced
		switch {
		case value > 0:
			typ = Supply
		case value < 0:
			typ = Demand
		}
		out[id] = NodeImbalance{Node: id, In: in, Out: outDeg, Value: value, Type: typ}
	}
	return out
}

// SupplyDemand splits an imbalance snapshot into supply and demand node
// ids, each repeated Value times (one "unit" per edge the node is short),
// sorted ascending for determinism.
func SupplyDemand(imb map[graph.NodeID]NodeImbalance) (supply, demand []graph.NodeID) {
	for _, id := range sortedKeys(imb) {
		rec := imb[id]
		switch rec.Type {
		case Supply:
			for i := 0; i < rec.Value; i++ {
				supply = append(supply, id)
			}
		case Demand:
			for i := 0; i < -rec.Value; i++ {
				demand = append(demand, id)
			}
		}
	}
	return supply, demand
}

func sortedKeys(imb map[graph.NodeID]NodeImbalance) []graph.NodeID {
	ids := make([]graph.NodeID, 0, len(imb))
	for id := range imb {
		ids = append(ids, id)
	}
	sortNodeIDs(ids)
	return ids
}
