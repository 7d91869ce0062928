package pipeline

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/matzehuels/graphdraw/pkg/cache"
	"github.com/matzehuels/graphdraw/pkg/graph"
	gio "github.com/matzehuels/graphdraw/pkg/io"
	"github.com/matzehuels/graphdraw/pkg/observability"
)

// Read parses a graph from r. source names the input in hooks and logs.
func Read(ctx context.Context, r io.Reader, source string, directed bool) (*graph.Graph, error) {
	return read(ctx, source, func() (*graph.Graph, error) { return gio.ReadText(r, directed) })
}

// ReadFile parses the graph stored at path.
func ReadFile(ctx context.Context, path string, directed bool) (*graph.Graph, error) {
	return read(ctx, path, func() (*graph.Graph, error) { return gio.ReadTextFile(path, directed) })
}

func read(ctx context.Context, source string, parse func() (*graph.Graph, error)) (*graph.Graph, error) {
	hooks := observability.Layout()
	hooks.OnReadStart(ctx, source)
	start := time.Now()

	g, err := parse()
	if err != nil {
		hooks.OnReadComplete(ctx, source, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnReadComplete(ctx, source, g.NodeCount(), time.Since(start), nil)
	return g, nil
}

// GraphHash returns the content hash of g in its canonical text form.
func GraphHash(g *graph.Graph) (string, error) {
	var buf bytes.Buffer
	if err := gio.WriteText(g, &buf); err != nil {
		return "", err
	}
	prefix := "u\n"
	if g.Directed() {
		prefix = "d\n"
	}
	return cache.Hash(append([]byte(prefix), buf.Bytes()...)), nil
}
