package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/layout"
	"github.com/matzehuels/graphdraw/pkg/observability"
)

// ComputeLayout runs the engine on g and returns the normalized result.
func ComputeLayout(ctx context.Context, g *graph.Graph, opts Options) (layout.Result, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Result{}, err
	}
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, g.NodeCount(), g.DrawnEdgeCount())
	start := time.Now()

	engineOpts := []layout.Option{
		layout.WithConfig(opts.LayoutConfig()),
		layout.WithSeed(opts.Seed),
		layout.WithLogger(opts.Logger),
		layout.WithRunHook(func(run, iterations int, maxRadius float64) {
			hooks.OnRunComplete(ctx, run+1, iterations, maxRadius)
		}),
	}
	if opts.Observer != nil {
		engineOpts = append(engineOpts, layout.WithObserver(opts.Observer))
	}

	e := layout.New(g, engineOpts...)
	if err := e.Run(ctx); err != nil {
		hooks.OnLayoutComplete(ctx, g.NodeCount(), time.Since(start), err)
		return layout.Result{}, err
	}
	hooks.OnLayoutComplete(ctx, g.NodeCount(), time.Since(start), nil)
	return e.Result(), nil
}
