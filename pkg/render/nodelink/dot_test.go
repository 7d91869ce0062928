package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/layout"
)

func sample(directed bool) (*graph.Graph, layout.Result) {
	g := graph.New(directed)
	for _, id := range []string{"a", "b", "c"} {
		g.AddNode(id, true)
	}
	g.AddEdge("a", "b", 2, true)
	g.AddEdge("b", "a", 0.5, true)
	g.AddEdge("b", "c", 1, true)
	g.AddEdge("c", "c", 1, true)

	res := layout.Result{
		Dim: 1000,
		Nodes: []layout.NodePosition{
			{ID: "a", X: -100, Y: 50},
			{ID: "b", X: 0, Y: 0},
			{ID: "c", X: 360, Y: -12.5},
		},
	}
	return g, res
}

func TestToDOTUndirected(t *testing.T) {
	g, res := sample(false)
	dot := ToDOT(g, res, Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("undirected DOT should start with 'graph G {':\n%s", dot)
	}
	for _, want := range []string{
		`"a" [pos="-100.00,50.00!"]`,
		`"c" [pos="360.00,-12.50!"]`,
		`"a" -- "b";`,
		`"b" -- "c";`,
		`"__frame_max" [style=invis, pos="500.00,500.00!"]`,
		"layout=neato",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"c" -- "c"`) {
		t.Error("self-loops should not be drawn")
	}
	if strings.Contains(dot, "->") {
		t.Error("undirected DOT should not contain ->")
	}
	if strings.Count(dot, `"a" -- "b"`) != 1 {
		t.Error("parallel edges should be drawn once")
	}
}

func TestToDOTDirected(t *testing.T) {
	g, res := sample(true)
	dot := ToDOT(g, res, Options{ShowEdgeWeights: true})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("directed DOT should start with 'digraph G {':\n%s", dot)
	}
	for _, want := range []string{
		`"a" -> "b" [taillabel="2", labeldistance=4];`,
		`"b" -> "a" [taillabel="0.5", labeldistance=4];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTLabels(t *testing.T) {
	g, res := sample(false)
	dot := ToDOT(g, res, Options{ShowNodeLabels: true, ShowEdgeWeights: true})

	if !strings.Contains(dot, `xlabel="a"`) {
		t.Errorf("DOT missing node label:\n%s", dot)
	}
	if !strings.Contains(dot, `"a" -- "b" [label="2.5"];`) {
		t.Errorf("DOT missing aggregate weight label:\n%s", dot)
	}

	plain := ToDOT(g, res, Options{})
	if strings.Contains(plain, "xlabel") || strings.Contains(plain, "label=\"2.5\"") {
		t.Error("labels should be off by default")
	}
}

func TestToDOTScale(t *testing.T) {
	g, res := sample(false)
	dot := ToDOT(g, res, Options{Scale: 2})
	if !strings.Contains(dot, `"a" [pos="-200.00,100.00!"]`) {
		t.Errorf("scaled position missing:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	g, res := sample(false)
	svg, err := RenderSVG(context.Background(), ToDOT(g, res, Options{ShowNodeLabels: true}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not SVG")
	}
	if !bytes.Contains(svg, []byte(`viewBox="0 0`)) {
		t.Error("viewBox was not normalized")
	}
}

func TestRenderPNG(t *testing.T) {
	g, res := sample(true)
	png, err := RenderPNG(context.Background(), ToDOT(g, res, Options{}))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not PNG")
	}
}

func TestRenderInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "graph {"); err == nil {
		t.Error("expected parse error")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20">`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("SVG without viewBox should be unchanged, got %s", got)
	}
}
