package nodelink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/layout"
	"github.com/matzehuels/graphdraw/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// ShowNodeLabels writes each node identifier next to the node.
	ShowNodeLabels bool
	// ShowEdgeWeights writes the aggregate weight on each edge.
	ShowEdgeWeights bool
	// Scale multiplies every coordinate. Zero means 1.
	Scale float64
}

// ToDOT converts a graph and its layout to Graphviz DOT. Nodes missing from
// res are placed at the origin.
func ToDOT(g *graph.Graph, res layout.Result, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	pos := make(map[string][2]float64, len(res.Nodes))
	for _, n := range res.Nodes {
		pos[n.ID] = [2]float64{n.X * scale, n.Y * scale}
	}

	kind, arrow := "graph", "--"
	if g.Directed() {
		kind, arrow = "digraph", "->"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", render.ColorFrame)
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, width=0.12, label=\"\", color=%q, fillcolor=%q, fontname=\"Monospace\", fontcolor=%q];\n",
		render.ColorNode, render.ColorNode, render.ColorText)
	fmt.Fprintf(&buf, "  edge [color=%q, fontname=\"Monospace\", fontcolor=%q, arrowsize=0.6];\n",
		render.ColorEdge, render.ColorText)
	buf.WriteString("\n")

	if res.Dim > 0 {
		half := res.Dim / 2 * scale
		fmt.Fprintf(&buf, "  \"__frame_min\" [style=invis, pos=\"%s!\"];\n", fmtPos(-half, -half))
		fmt.Fprintf(&buf, "  \"__frame_max\" [style=invis, pos=\"%s!\"];\n", fmtPos(half, half))
	}

	for _, id := range g.Nodes() {
		p := pos[id]
		attrs := fmt.Sprintf("pos=\"%s!\"", fmtPos(p[0], p[1]))
		if opts.ShowNodeLabels {
			attrs += fmt.Sprintf(", xlabel=%q", id)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, attrs)
	}

	buf.WriteString("\n")
	for _, key := range g.Edges() {
		if key.IsLoop() {
			continue
		}
		fmt.Fprintf(&buf, "  %q %s %q", key.U, arrow, key.V)
		if opts.ShowEdgeWeights {
			info, _ := g.Edge(key.U, key.V)
			w := strconv.FormatFloat(info.Weight, 'g', -1, 64)
			if g.Directed() {
				fmt.Fprintf(&buf, " [taillabel=%q, labeldistance=4]", w)
			} else {
				fmt.Fprintf(&buf, " [label=%q]", w)
			}
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtPos(x, y float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64) + "," + strconv.FormatFloat(y, 'f', 2, 64)
}
