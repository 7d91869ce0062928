package graph

import "slices"

// DefaultWeight is the weight of an edge declared without one.
const DefaultWeight = 1.0

// Key is the canonical identity of an edge. For undirected graphs U is never
// greater than V, so (u,v) and (v,u) resolve to the same key. Directed graphs
// keep the insertion order of the endpoints.
type Key struct {
	U string
	V string
}

// IsLoop reports whether both endpoints are the same node.
func (k Key) IsLoop() bool { return k.U == k.V }

// EdgeInfo aggregates every raw edge inserted under one canonical key.
type EdgeInfo struct {
	// Weight is the sum of all raw weights.
	Weight float64
	// Weights lists the raw weights in insertion order. Its length is the
	// multiplicity of the edge.
	Weights []float64
}

// Count returns the number of raw edges aggregated under the key.
func (e EdgeInfo) Count() int { return len(e.Weights) }

// Graph is an adjacency and edge-weight structure built once and then read
// by the layout engine. Nodes get a stable integer index at creation time so
// that consumers can keep per-node state in slices.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// writes.
type Graph struct {
	directed bool

	ids   []string
	index map[string]int
	adj   []map[int]struct{}

	keys  []Key
	edges map[Key]*EdgeInfo

	nodeCount int // n
	rawEdges  int // m
	distinct  int // dm
	loops     int
}

// New creates an empty graph. Directed graphs keep (u,v) and (v,u) as
// distinct edges and record adjacency in one direction only.
func New(directed bool) *Graph {
	return &Graph{
		directed: directed,
		index:    make(map[string]int),
		edges:    make(map[Key]*EdgeInfo),
	}
}

// Directed reports whether the graph is directed.
func (g *Graph) Directed() bool { return g.directed }

// AddNode adds a node and reports whether the graph changed.
//
// With check enabled an existing node is left untouched and AddNode returns
// false. With check disabled the node counter is incremented unconditionally;
// re-adding an existing identifier clears its adjacency but keeps its index.
func (g *Graph) AddNode(id string, check bool) bool {
	i, exists := g.index[id]
	if check && exists {
		return false
	}
	g.nodeCount++
	if exists {
		g.adj[i] = make(map[int]struct{})
		return true
	}
	g.index[id] = len(g.ids)
	g.ids = append(g.ids, id)
	g.adj = append(g.adj, make(map[int]struct{}))
	return true
}

// AddEdge inserts a raw edge u→v with the given weight and reports whether
// it was accepted.
//
// With check enabled the edge is silently rejected unless both endpoints
// already exist; the caller decides whether that is an error. With check
// disabled unknown endpoints are registered on the fly.
func (g *Graph) AddEdge(u, v string, weight float64, check bool) bool {
	if check && (!g.HasNode(u) || !g.HasNode(v)) {
		return false
	}
	if !g.HasNode(u) {
		g.AddNode(u, true)
	}
	if !g.HasNode(v) {
		g.AddNode(v, true)
	}

	g.rawEdges++
	ui, vi := g.index[u], g.index[v]
	g.adj[ui][vi] = struct{}{}
	if !g.directed {
		g.adj[vi][ui] = struct{}{}
	}

	key := g.Key(u, v)
	info, ok := g.edges[key]
	if !ok {
		g.distinct++
		if u == v {
			g.loops++
		}
		info = &EdgeInfo{}
		g.edges[key] = info
		g.keys = append(g.keys, key)
	}
	info.Weight += weight
	info.Weights = append(info.Weights, weight)
	return true
}

// Key returns the canonical key for an edge between u and v.
func (g *Graph) Key(u, v string) Key {
	if !g.directed && v < u {
		return Key{U: v, V: u}
	}
	return Key{U: u, V: v}
}

// HasNode reports whether id has been added.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Index returns the stable integer index assigned to id.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Nodes returns node identifiers ordered by index.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.ids)
}

// Neighbors returns the adjacent nodes of id sorted by identifier. For
// directed graphs only successors are returned.
func (g *Graph) Neighbors(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.adj[i]))
	for j := range g.adj[i] {
		out = append(out, g.ids[j])
	}
	slices.Sort(out)
	return out
}

// Edges returns the canonical keys in order of first insertion.
func (g *Graph) Edges() []Key {
	return slices.Clone(g.keys)
}

// Edge returns the aggregate record for the edge between u and v.
func (g *Graph) Edge(u, v string) (EdgeInfo, bool) {
	info, ok := g.edges[g.Key(u, v)]
	if !ok {
		return EdgeInfo{}, false
	}
	return EdgeInfo{Weight: info.Weight, Weights: slices.Clone(info.Weights)}, true
}

// NodeCount returns the node counter. It equals len(Nodes()) unless nodes
// were re-added with the existence check disabled.
func (g *Graph) NodeCount() int { return g.nodeCount }

// EdgeCount returns the number of raw edge insertions.
func (g *Graph) EdgeCount() int { return g.rawEdges }

// DistinctEdgeCount returns the number of canonical keys.
func (g *Graph) DistinctEdgeCount() int { return g.distinct }

// LoopCount returns the number of canonical keys whose endpoints coincide.
func (g *Graph) LoopCount() int { return g.loops }

// DrawnEdgeCount returns the number of distinct edges that are not loops.
func (g *Graph) DrawnEdgeCount() int { return g.distinct - g.loops }
