// Package nodelink renders computed layouts as node-link diagrams.
//
// # Usage
//
// Convert a graph and its layout to DOT, then render:
//
//	dot := nodelink.ToDOT(g, res, nodelink.Options{ShowEdgeWeights: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// Every node carries pos="x,y!" with inputscale=72, so one layout unit is one
// point and the neato engine leaves the node where the layout put it. Two
// invisible corner nodes pin the drawing frame to the layout's square so
// separate renders of the same graph line up.
//
// Undirected graphs produce a "graph" with "--" edges and directed graphs a
// "digraph" with "->" edges. Self-loops are not drawn. Edge weight labels sit
// at the midpoint of undirected edges and next to the tail of directed ones.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and PNG
// rendering; no Graphviz installation is required.
package nodelink
