// Package graph provides the directed multigraph representation shared
// by every stage of the routing pipeline (F, K, H, E in the pipeline's
// terminology are all *World values at different points in the run).
//
// A World is keyed by (u, v, k): two nodes may be joined by more than one
// parallel edge, distinguished by an integer key that is assigned in
// insertion order. Iteration order is always deterministic — nodes and
// edges are walked in sorted id order — because the pipeline's downstream
// stages (pairing, tour construction) depend on stable tie-breaking.
package graph

import "sort"

// NodeID identifies a node in a World. Ids are caller-assigned and may be
// any int64; the pipeline does not require them to be dense or to start
// at zero.
type NodeID int64

// Mode classifies an edge by how a vehicle traverses it.
type Mode string

const (
	// ModeSweep marks an edge that must be swept: it counts toward the
	// tour's required coverage.
	ModeSweep Mode = "SWEEP"
	// ModeDeadhead marks a non-required edge traversed to restore
	// connectivity or balance, added by following the original street
	// direction.
	ModeDeadhead Mode = "DEADHEAD"
	// ModeDeadheadForce marks a deadhead edge added against the original
	// one-way direction, as a last resort during forced balancing.
	ModeDeadheadForce Mode = "DEADHEAD_FORCE"
)

// Point is a planar coordinate used for node positions and edge geometry.
type Point struct {
	X, Y float64
}

// Node is a junction in the street network.
type Node struct {
	ID   NodeID
	X, Y float64
}

// EdgeKey identifies one parallel edge between two nodes.
type EdgeKey struct {
	U, V NodeID
	K    int
}

// Edge is one directed street segment, or a deadhead/connector edge
// synthesized by a later stage.
type Edge struct {
	Key     EdgeKey
	Length  float64 // meters
	Cost    float64 // defaults to Length; see World.CostOf
	Highway string  // normalized highway/road-class tag
	Mode    Mode

	Geometry []Point // polyline, node-to-node; empty means "straight line"

	IsComponentConnector bool // added by S3 while stitching weak components
	IsDeadheadAdded      bool // added by S2, S3 or S4
	IsForceBalance       bool // added by S4's forced-balance pass specifically
	ReversedFromOneway   bool // traversed against its original one-way direction
}

// World is a directed multigraph.
type World struct {
	nodes map[NodeID]*Node
	out   map[NodeID]map[NodeID]map[int]*Edge
	in    map[NodeID]map[NodeID]map[int]*Edge
	next  map[[2]NodeID]int // next free parallel-edge key per (u, v)
}

// New returns an empty World.
func New() *World {
	return &World{
		nodes: make(map[NodeID]*Node),
		out:   make(map[NodeID]map[NodeID]map[int]*Edge),
		in:    make(map[NodeID]map[NodeID]map[int]*Edge),
		next:  make(map[[2]NodeID]int),
	}
}

// AddNode inserts a node, or updates its coordinates if it already
// exists. Returns the stored *Node.
func (w *World) AddNode(id NodeID, x, y float64) *Node {
	if n, ok := w.nodes[id]; ok {
		n.X, n.Y = x, y
		return n
	}
	n := &Node{ID: id, X: x, Y: y}
	w.nodes[id] = n
	w.out[id] = make(map[NodeID]map[int]*Edge)
	w.in[id] = make(map[NodeID]map[int]*Edge)
	return n
}

// HasNode reports whether id has been added to w.
func (w *World) HasNode(id NodeID) bool {
	_, ok := w.nodes[id]
	return ok
}

// Node returns the node with the given id, if present.
func (w *World) Node(id NodeID) (*Node, bool) {
	n, ok := w.nodes[id]
	return n, ok
}

// NumNodes returns the node count.
func (w *World) NumNodes() int { return len(w.nodes) }

// NodeIDs returns every node id in ascending order.
func (w *World) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(w.nodes))
	for id := range w.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AddEdge appends a new parallel edge from u to v with the next free key
// for that pair, and returns it. Both endpoints must already exist.
func (w *World) AddEdge(u, v NodeID, length float64, highway string, mode Mode, geometry []Point) *Edge {
	pair := [2]NodeID{u, v}
	k := w.next[pair]
	w.next[pair] = k + 1

	e := &Edge{
		Key:      EdgeKey{U: u, V: v, K: k},
		Length:   length,
		Cost:     length,
		Highway:  highway,
		Mode:     mode,
		Geometry: geometry,
	}
	w.insert(e)
	return e
}

// AddEdgeAt inserts e verbatim, key included (used when copying an edge
// while preserving its attributes and key, e.g. by Clone and EdgeSubgraph).
func (w *World) AddEdgeAt(e *Edge) {
	cp := *e
	w.insert(&cp)
}

func (w *World) insert(e *Edge) {
	u, v, k := e.Key.U, e.Key.V, e.Key.K
	if w.out[u] == nil {
		w.out[u] = make(map[NodeID]map[int]*Edge)
	}
	if w.out[u][v] == nil {
		w.out[u][v] = make(map[int]*Edge)
	}
	w.out[u][v][k] = e

	if w.in[v] == nil {
		w.in[v] = make(map[NodeID]map[int]*Edge)
	}
	if w.in[v][u] == nil {
		w.in[v][u] = make(map[int]*Edge)
	}
	w.in[v][u][k] = e

	pairKey := [2]NodeID{u, v}
	if w.next[pairKey] <= k {
		w.next[pairKey] = k + 1
	}
}

// Edge returns the edge identified by key, if present.
func (w *World) Edge(key EdgeKey) (*Edge, bool) {
	m, ok := w.out[key.U][key.V]
	if !ok {
		return nil, false
	}
	e, ok := m[key.K]
	return e, ok
}

// RemoveEdge deletes the edge identified by key.
func (w *World) RemoveEdge(key EdgeKey) {
	if m := w.out[key.U]; m != nil {
		if km := m[key.V]; km != nil {
			delete(km, key.K)
			if len(km) == 0 {
				delete(m, key.V)
			}
		}
	}
	if m := w.in[key.V]; m != nil {
		if km := m[key.U]; km != nil {
			delete(km, key.K)
			if len(km) == 0 {
				delete(m, key.U)
			}
		}
	}
}

// OutEdges returns every edge leaving u, sorted by (V, K).
func (w *World) OutEdges(u NodeID) []*Edge {
	var edges []*Edge
	for _, km := range w.out[u] {
		for _, e := range km {
			edges = append(edges, e)
		}
	}
	sortEdges(edges)
	return edges
}

// InEdges returns every edge arriving at v, sorted by (U, K).
func (w *World) InEdges(v NodeID) []*Edge {
	var edges []*Edge
	for _, km := range w.in[v] {
		for _, e := range km {
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Key.U != edges[j].Key.U {
			return edges[i].Key.U < edges[j].Key.U
		}
		return edges[i].Key.K < edges[j].Key.K
	})
	return edges
}

// OutDegree returns the number of edges leaving u.
func (w *World) OutDegree(u NodeID) int {
	n := 0
	for _, km := range w.out[u] {
		n += len(km)
	}
	return n
}

// InDegree returns the number of edges arriving at v.
func (w *World) InDegree(v NodeID) int {
	n := 0
	for _, km := range w.in[v] {
		n += len(km)
	}
	return n
}

// Edges returns every edge in the graph, sorted by (U, V, K).
func (w *World) Edges() []*Edge {
	var edges []*Edge
	for u := range w.out {
		for _, km := range w.out[u] {
			for _, e := range km {
				edges = append(edges, e)
			}
		}
	}
	sortEdges(edges)
	return edges
}

// ParallelEdges returns every edge from u to v, sorted by K ascending —
// this is the order S2/S3's "pick the min-cost parallel edge, first one
// wins on a tie" rule iterates in.
func (w *World) ParallelEdges(u, v NodeID) []*Edge {
	km := w.out[u][v]
	edges := make([]*Edge, 0, len(km))
	for _, e := range km {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Key.K < edges[j].Key.K })
	return edges
}

func sortEdges(edges []*Edge) {
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i].Key, edges[j].Key
		if a.U != b.U {
			return a.U < b.U
		}
		if a.V != b.V {
			return a.V < b.V
		}
		return a.K < b.K
	})
}

// CostOf returns e.Cost, defaulting to e.Length if Cost was never set
// (i.e. is the zero value while Length is not) — mirrors the prototype's
// ensure_edge_weight, applied lazily on read rather than by mutation.
func (w *World) CostOf(e *Edge) float64 {
	if e.Cost == 0 && e.Length != 0 {
		return e.Length
	}
	return e.Cost
}

// Clone returns a deep copy of w: new node and edge values, independent
// of the original.
func (w *World) Clone() *World {
	cp := New()
	for _, id := range w.NodeIDs() {
		n := w.nodes[id]
		cp.AddNode(n.ID, n.X, n.Y)
	}
	for _, e := range w.Edges() {
		ce := *e
		ce.Geometry = append([]Point(nil), e.Geometry...)
		cp.AddEdgeAt(&ce)
	}
	return cp
}

// EdgeSubgraph returns a new World containing only the nodes touched by
// edges for which keep returns true, plus those edges. Used by S1 to
// extract K from F by allowed highway type.
func (w *World) EdgeSubgraph(keep func(e *Edge) bool) *World {
	sub := New()
	for _, e := range w.Edges() {
		if !keep(e) {
			continue
		}
		if !sub.HasNode(e.Key.U) {
			if n, ok := w.nodes[e.Key.U]; ok {
				sub.AddNode(n.ID, n.X, n.Y)
			}
		}
		if !sub.HasNode(e.Key.V) {
			if n, ok := w.nodes[e.Key.V]; ok {
				sub.AddNode(n.ID, n.X, n.Y)
			}
		}
		sub.AddEdgeAt(e)
	}
	return sub
}
