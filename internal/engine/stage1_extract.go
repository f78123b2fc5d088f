package engine

import "streetsweep/internal/graph"

// ExtractSubnetwork builds K, the subnetwork that must be swept: every
// edge of world whose normalized highway tag is in allowed, copied with
// Mode forced to ModeSweep (grounded on subnetwork.py's extract_K plus
// the driver's SWEEP-tagging pass noted in run.py — folded into this
// stage since nothing downstream ever needs an un-tagged K).
func ExtractSubnetwork(world *graph.World, allowed map[string]bool) *graph.World {
	k := world.EdgeSubgraph(func(e *graph.Edge) bool {
		return allowed[normalizeHighway(e.Highway)]
	})
	for _, e := range k.Edges() {
		e.Mode = graph.ModeSweep
	}
	return k
}

// normalizeHighway mirrors utils.py's normalize_highway: OSM's highway
// tag is sometimes a list when a way carries more than one classification.
// By the time an edge reaches World its Highway field is already reduced
// to a single string, so this is a defensive no-op kept for parity with
// the prototype's call site — a driver that loads from raw OSM data
// would normalize before populating World, not here.
func normalizeHighway(h string) string { return h }
