// Package graph provides the in-memory graph model consumed by the layout
// engine.
//
// A [Graph] is a set of nodes plus a mapping from a canonical edge [Key] to an
// aggregate [EdgeInfo]. Parallel edges are not stored separately: every raw
// insertion adds its weight to the aggregate and appends it to the ordered
// weight list, so multiplicity is preserved without duplicating keys.
//
// # Canonical Keys
//
// For undirected graphs the key of (u,v) always stores the smaller identifier
// first, so inserting (b,a) after (a,b) aggregates into the same record:
//
//	g := graph.New(false)
//	g.AddNode("a", true)
//	g.AddNode("b", true)
//	g.AddEdge("b", "a", 2, true)
//	g.AddEdge("a", "b", 3, true)
//	info, _ := g.Edge("a", "b") // Weight 5, Weights [2 3]
//
// Directed graphs keep (u,v) and (v,u) distinct.
//
// # Counters
//
// The graph tracks the node counter, raw edge insertions, distinct keys and
// self-loops. The distinct counter only grows on the first insertion of a
// key; the loop counter only grows when that key has equal endpoints.
//
// # Rejection
//
// With existence checks enabled, [Graph.AddNode] and [Graph.AddEdge] reject
// invalid insertions silently by returning false. Readers that need an error
// must inspect the result themselves.
//
// # Ordering
//
// Nodes receive a stable integer index at creation. [Graph.Nodes] and
// [Graph.Edges] return insertion order, never map order, so layouts driven by
// a seeded random source are reproducible.
package graph
