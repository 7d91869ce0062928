// Package pkg provides the core libraries for graphdraw force-directed graph
// drawing.
//
// # Overview
//
// graphdraw reads a graph from a line-oriented text format, places its nodes
// with the Fruchterman-Reingold force-directed algorithm and renders the
// result. The pkg directory is organized into four main areas:
//
//  1. [graph] and [io] - The graph model and its text and JSON formats
//  2. [layout] - The simulation engine
//  3. [render] - Output renderers (Graphviz node-link, terminal)
//  4. [pipeline] - Orchestration (read → layout → render) with [cache]
//
// # Architecture
//
// The typical data flow through graphdraw:
//
//	Text input
//	     ↓
//	[io] package (parse lines, build the graph)
//	     ↓
//	[layout] package (simulate forces, normalize into the drawing frame)
//	     ↓
//	[render] package (DOT, SVG, PNG, terminal text)
//	     ↓
//	JSON/SVG/PNG/DOT/TXT output
//
// # Quick Start
//
//	import (
//	    "context"
//	    "os"
//
//	    gio "github.com/matzehuels/graphdraw/pkg/io"
//	    "github.com/matzehuels/graphdraw/pkg/layout"
//	    "github.com/matzehuels/graphdraw/pkg/render/nodelink"
//	)
//
//	// 1. Read the graph
//	g, _ := gio.ReadTextFile("graph.txt", false)
//
//	// 2. Compute the layout
//	e := layout.New(g, layout.WithSeed(42))
//	_ = e.Run(context.Background())
//	res := e.Result()
//
//	// 3. Render to SVG
//	svg, _ := nodelink.RenderSVG(context.Background(), nodelink.ToDOT(g, res, nodelink.Options{}))
//	_ = os.WriteFile("graph.svg", svg, 0o644)
//
// # Main Packages
//
// [graph] - Graph model with canonical edge keys. Parallel edges aggregate
// into one record holding the summed weight and every raw weight.
//
// [io] - The text format (one node per line, then "u v [weight]" edges) and
// the JSON layout document.
//
// [layout] - The engine. Repulsion between every node pair, attraction
// along edges, gravity towards the origin and a cooling temperature that
// bounds each step. Observers receive snapshots while it runs.
//
// [render/nodelink] - Graphviz DOT with pinned positions, rendered to SVG and
// PNG by go-graphviz.
//
// [render/term] - Character-grid rasterizer used by the CLI animation and the
// txt format.
//
// [pipeline] - The read → layout → render pipeline shared by the CLI and the
// HTTP server. Seeded layouts and their artifacts are cached.
//
// [cache] - File, Redis and MongoDB cache backends behind one interface.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Coded errors carrying input line numbers.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example       # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/graph
// [io]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/io
// [layout]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/render/nodelink
// [render/term]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/render/term
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/errors
package pkg
