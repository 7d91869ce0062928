package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/graphdraw/pkg/graph"
	gio "github.com/matzehuels/graphdraw/pkg/io"
	"github.com/matzehuels/graphdraw/pkg/layout"
	"github.com/matzehuels/graphdraw/pkg/render/nodelink"
	"github.com/matzehuels/graphdraw/pkg/render/term"
)

// Render generates output artifacts in the requested formats. The graph
// supplies directedness and edge weights for the drawn formats.
func Render(ctx context.Context, res layout.Result, g *graph.Graph, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var dot string
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = gio.MarshalLayout(res)
		case FormatDOT, FormatSVG, FormatPNG:
			if dot == "" {
				dot = nodelink.ToDOT(g, res, nodelink.Options{
					ShowNodeLabels:  opts.ShowNodeLabels,
					ShowEdgeWeights: opts.ShowEdgeWeights,
					Scale:           opts.Scale,
				})
			}
			switch format {
			case FormatDOT:
				data = []byte(dot)
			case FormatSVG:
				data, err = nodelink.RenderSVG(ctx, dot)
			case FormatPNG:
				data, err = nodelink.RenderPNG(ctx, dot)
			}
		case FormatTXT:
			data = []byte(RenderText(res, g, opts) + "\n")
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderText draws the final layout onto a plain character grid.
func RenderText(res layout.Result, g *graph.Graph, opts Options) string {
	return term.Draw(g, res.Snapshot(), termOptions(res, opts)).String()
}

func termOptions(res layout.Result, opts Options) term.Options {
	return term.Options{
		Width:           opts.TermWidth,
		Height:          opts.TermHeight,
		Dim:             res.Dim,
		Margin:          res.Margin,
		ShowNodeLabels:  opts.ShowNodeLabels,
		ShowEdgeWeights: opts.ShowEdgeWeights,
	}
}
