// Package render groups the output renderers for computed layouts.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage turns a layout into Graphviz DOT with every node
// pinned at its computed position, then renders it with the neato engine so
// Graphviz keeps those positions:
//
//	dot := nodelink.ToDOT(g, res, nodelink.Options{ShowNodeLabels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Terminal
//
// The [term] subpackage rasterizes a snapshot onto a character grid. The CLI
// uses it to animate the layout and to show the final drawing.
//
// Both renderers use the same palette: dark background, red nodes, green
// edges and grey annotations.
//
// [nodelink]: github.com/matzehuels/graphdraw/pkg/render/nodelink
// [term]: github.com/matzehuels/graphdraw/pkg/render/term
package render

// Palette shared by the renderers.
const (
	ColorFigure = "#073642"
	ColorFrame  = "#002B36"
	ColorNode   = "#DC322F"
	ColorEdge   = "#859900"
	ColorText   = "#839496"
)
