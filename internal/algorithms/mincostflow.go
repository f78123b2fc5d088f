package algorithms

import (
	"container/heap"
	"math"
)

// flowEdge is one directed arc in a min-cost-flow residual network. Arcs
// are stored in forward/reverse pairs at adjacent indices, the usual
// residual-graph trick: pushing flow on arc i updates both it and its
// mirror at i^1.
type flowEdge struct {
	to       int
	cap      float64
	cost     float64
	flow     float64
}

// FlowGraph is a small residual-graph builder for the bipartite
// transportation problem S2 solves: supply nodes on one side, demand
// nodes on the other, edge cost the shortest-path distance between them
// in the street network.
type FlowGraph struct {
	n   int
	adj [][]int // adjacency as indices into edges
	edges []flowEdge
}

// NewFlowGraph returns an empty flow network over n nodes (0..n-1).
func NewFlowGraph(n int) *FlowGraph {
	return &FlowGraph{n: n, adj: make([][]int, n)}
}

// AddEdge adds a directed arc u->v with the given capacity and cost,
// plus its zero-capacity reverse arc for residual bookkeeping.
func (g *FlowGraph) AddEdge(u, v int, cap, cost float64) {
	g.edges = append(g.edges, flowEdge{to: v, cap: cap, cost: cost})
	g.adj[u] = append(g.adj[u], len(g.edges)-1)
	g.edges = append(g.edges, flowEdge{to: u, cap: 0, cost: -cost})
	g.adj[v] = append(g.adj[v], len(g.edges)-1)
}

// Flow returns the flow currently pushed on the edge added in the i-th
// call to AddEdge (0-indexed).
func (g *FlowGraph) Flow(i int) float64 {
	return g.edges[i*2].flow
}

const flowInf = math.MaxFloat64 / 4

// MinCostFlow pushes up to maxFlow units from source to sink at minimum
// total cost, via successive shortest augmenting paths: a Bellman-Ford
// pass establishes Johnson potentials (needed because residual reverse
// edges start with negative cost), then each augmentation re-runs
// Dijkstra over reduced costs, which stay non-negative once the
// potentials are in place. Returns the flow actually pushed (less than
// maxFlow if the network saturates first) and its total cost.
func (g *FlowGraph) MinCostFlow(source, sink int, maxFlow float64) (flow, cost float64) {
	potential, ok := g.bellmanFordPotentials(source)
	if !ok {
		return 0, 0 // negative cycle; should not occur for this problem shape
	}

	for flow < maxFlow {
		dist, parentEdge, reached := g.dijkstraReduced(source, potential)
		if !reached[sink] {
			break
		}
		for v := 0; v < g.n; v++ {
			if reached[v] {
				potential[v] += dist[v]
			}
		}

		bottleneck := maxFlow - flow
		for v := sink; v != source; {
			ei := parentEdge[v]
			if g.edges[ei].cap-g.edges[ei].flow < bottleneck {
				bottleneck = g.edges[ei].cap - g.edges[ei].flow
			}
			v = g.edges[ei^1].to
		}

		for v := sink; v != source; {
			ei := parentEdge[v]
			g.edges[ei].flow += bottleneck
			g.edges[ei^1].flow -= bottleneck
			v = g.edges[ei^1].to
		}

		flow += bottleneck
		cost += bottleneck * (potential[sink] - potential[source])
	}

	return flow, cost
}

func (g *FlowGraph) bellmanFordPotentials(source int) ([]float64, bool) {
	dist := make([]float64, g.n)
	for i := range dist {
		dist[i] = flowInf
	}
	dist[source] = 0

	for iter := 0; iter < g.n; iter++ {
		changed := false
		for u := 0; u < g.n; u++ {
			if dist[u] >= flowInf {
				continue
			}
			for _, ei := range g.adj[u] {
				e := g.edges[ei]
				if e.cap-e.flow <= 0 {
					continue
				}
				if nd := dist[u] + e.cost; nd < dist[e.to] {
					dist[e.to] = nd
					changed = true
				}
			}
		}
		if !changed {
			break
		}
		if iter == g.n-1 && changed {
			return nil, false
		}
	}

	for i := range dist {
		if dist[i] >= flowInf {
			dist[i] = 0 // unreachable nodes get a neutral potential
		}
	}
	return dist, true
}

type flowPQItem struct {
	node int
	dist float64
}
type flowPQ []flowPQItem

func (pq flowPQ) Len() int            { return len(pq) }
func (pq flowPQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq flowPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *flowPQ) Push(x any)         { *pq = append(*pq, x.(flowPQItem)) }
func (pq *flowPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

func (g *FlowGraph) dijkstraReduced(source int, potential []float64) (dist []float64, parentEdge []int, reached []bool) {
	dist = make([]float64, g.n)
	parentEdge = make([]int, g.n)
	reached = make([]bool, g.n)
	for i := range dist {
		dist[i] = flowInf
	}
	dist[source] = 0

	visited := make([]bool, g.n)
	pq := &flowPQ{{node: source, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(flowPQItem)
		u := item.node
		if visited[u] {
			continue
		}
		visited[u] = true
		reached[u] = true

		for _, ei := range g.adj[u] {
			e := g.edges[ei]
			if e.cap-e.flow <= 0 {
				continue
			}
			reduced := e.cost + potential[u] - potential[e.to]
			if reduced < -1e-9 {
				reduced = 0 // numerical guard; should not trigger once potentials settle
			}
			nd := dist[u] + reduced
			if nd < dist[e.to] {
				dist[e.to] = nd
				parentEdge[e.to] = ei
				heap.Push(pq, flowPQItem{node: e.to, dist: nd})
			}
		}
	}
	return dist, parentEdge, reached
}
