package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdraw/pkg/errors"
	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/observability"
	"github.com/matzehuels/graphdraw/pkg/pipeline"
)

// drawFlags holds the raw flag values of the draw command.
type drawFlags struct {
	directed   bool
	multiplier bool
	animate    bool
	nodes      bool
	weights    bool
	finish     bool
	extra      int
	seed       uint64
	output     string
	formats    string
	noCache    bool
}

// drawCommand creates the draw command: read a graph, lay it out and write
// the requested artifacts.
func (c *CLI) drawCommand() *cobra.Command {
	var flags drawFlags

	cmd := &cobra.Command{
		Use:   "draw <file>",
		Short: "Lay out a graph and write the drawing",
		Long: `Draw reads a graph from a file (or stdin with "-") and lays it out with a
force-directed simulation.

Each input line either declares a node (a single token) or an edge between
two declared nodes with an optional numeric weight (default 1):

  a
  b
  c
  a b
  b c 2.5

Each extra repeat (-e, may be given several times) reruns the simulation
once more from the previous positions.`,
		Example: `  graphdraw draw graph.txt
  graphdraw draw graph.txt -a -n -w
  graphdraw draw graph.txt -d -ee --seed 42 --format svg,png -o out/graph`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.drawOptions(cmd, flags)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			base := basePath(flags.output, args[0], c.cfg.Output.Directory)
			if err := errors.ValidatePath(base); err != nil {
				return err
			}
			return c.runDraw(cmd.Context(), args[0], base, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.directed, "directed", "d", false, "treat edges as directed")
	f.BoolVarP(&flags.multiplier, "multiplier", "m", false, "scale attraction by aggregate edge weight")
	f.BoolVarP(&flags.animate, "animate", "a", false, "animate the layout in the terminal")
	f.BoolVarP(&flags.nodes, "nodes", "n", false, "show node labels")
	f.BoolVarP(&flags.weights, "weights", "w", false, "show edge weights")
	f.BoolVarP(&flags.finish, "finish", "f", false, "do not show the final layout")
	f.CountVarP(&flags.extra, "extra", "e", "extra layout repeats (repeatable)")
	f.Uint64Var(&flags.seed, "seed", 0, "random seed (0 = random, disables caching)")
	f.StringVarP(&flags.output, "output", "o", "", "output base path (default: input name)")
	f.StringVar(&flags.formats, "format", "", "output formats: json,svg,png,dot,txt (comma-separated)")
	f.BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

// drawOptions merges the configuration with the flags set on cmd.
func (c *CLI) drawOptions(cmd *cobra.Command, flags drawFlags) pipeline.Options {
	opts := c.cfg.PipelineOptions()
	set := cmd.Flags().Changed

	if set("directed") {
		opts.Directed = flags.directed
	}
	if set("multiplier") {
		opts.Multiplier = flags.multiplier
	}
	if set("animate") {
		opts.Animate = flags.animate
	}
	if set("nodes") {
		opts.ShowNodeLabels = flags.nodes
	}
	if set("weights") {
		opts.ShowEdgeWeights = flags.weights
	}
	if set("finish") {
		opts.FinishImmediately = flags.finish
	}
	if set("extra") {
		opts.ExtraRepeats = flags.extra
	}
	if set("seed") {
		opts.Seed = flags.seed
	}
	if set("format") {
		opts.Formats = parseFormats(flags.formats)
	}
	opts.NoCache = flags.noCache
	opts.Verbose = c.verbose
	opts.Logger = loggerFromContext(cmd.Context())
	return opts
}

// runDraw executes the draw pipeline for input and writes artifacts next to
// base.
func (c *CLI) runDraw(ctx context.Context, input, base string, opts pipeline.Options) error {
	loggerFromContext(ctx).Debug("program options", opts.LogFields()...)

	g, err := c.readGraph(ctx, input, opts.Directed)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	interactive := isTerminal(os.Stdout)
	title := fmt.Sprintf("%s · %s", appName, displayName(input))

	var res *pipeline.Result
	if opts.Animate && interactive {
		res, err = c.animate(ctx, runner, g, opts, title)
	} else {
		res, err = c.compute(ctx, runner, g, opts)
	}
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(base, opts.Formats, res.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Drew %s", displayName(input))
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats.NodeCount, res.Graph.DrawnEdgeCount(), res.Stats.LayoutTime+res.Stats.RenderTime, res.CacheInfo.LayoutHit)

	if !opts.Animate && !opts.FinishImmediately && interactive {
		return c.showResult(ctx, g, opts, res, title)
	}
	return nil
}

// readGraph reads input, or stdin when input is "-".
func (c *CLI) readGraph(ctx context.Context, input string, directed bool) (*graph.Graph, error) {
	prog := newProgress(loggerFromContext(ctx))
	var (
		g   *graph.Graph
		err error
	)
	if input == "-" {
		g, err = pipeline.Read(ctx, os.Stdin, displayName(input), directed)
	} else {
		g, err = pipeline.ReadFile(ctx, input, directed)
	}
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Read %d nodes and %d edges", g.NodeCount(), g.EdgeCount()))
	return g, nil
}

// compute runs layout and render behind a spinner that reports each
// completed run.
func (c *CLI) compute(ctx context.Context, runner *pipeline.Runner, g *graph.Graph, opts pipeline.Options) (*pipeline.Result, error) {
	spinner := newSpinnerWithContext(ctx, "Laying out graph...")
	spinner.Start()
	defer spinner.Stop()

	restore := observeRuns(spinner, opts.ExtraRepeats+1)
	defer restore()

	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.ExecuteGraph(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	prog.done("Layout complete")
	return res, nil
}

// animate runs the pipeline while a full-screen view shows the simulation.
// Quitting the view before the layout is done cancels it.
func (c *CLI) animate(ctx context.Context, runner *pipeline.Runner, g *graph.Graph, opts pipeline.Options, title string) (*pipeline.Result, error) {
	layoutCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := newFrameSink()
	opts.Observer = sink
	done := make(chan doneMsg, 1)

	restore := c.muteLogs()
	defer restore()

	go func() {
		res, err := runner.ExecuteGraph(layoutCtx, g, opts)
		sink.close()
		done <- doneMsg{res: res, err: err}
	}()

	model := newDrawModel(title, g, opts, sink, done, cancel)
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("run animation: %w", err)
	}

	m := final.(DrawModel)
	if m.Err() != nil {
		return nil, m.Err()
	}
	if m.Result() == nil {
		return nil, context.Canceled
	}
	return m.Result(), nil
}

// showResult displays the final layout until the user quits.
func (c *CLI) showResult(ctx context.Context, g *graph.Graph, opts pipeline.Options, res *pipeline.Result, title string) error {
	restore := c.muteLogs()
	defer restore()

	model := newResultModel(title, g, opts, res)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("show layout: %w", err)
	}
	return nil
}

// writeArtifacts writes one file per format and returns the written paths.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func displayName(input string) string {
	if input == "-" {
		return "stdin"
	}
	return filepath.Base(input)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// =============================================================================
// Progress Hooks
// =============================================================================

// spinnerHooks forwards layout events to the previously registered hooks and
// shows run progress on a spinner.
type spinnerHooks struct {
	observability.LayoutHooks
	spinner *Spinner
	total   int
}

func (h *spinnerHooks) OnRunComplete(ctx context.Context, run, iterations int, maxRadius float64) {
	h.LayoutHooks.OnRunComplete(ctx, run, iterations, maxRadius)
	if run < h.total {
		h.spinner.Update(fmt.Sprintf("Layout run %d/%d done, running %d/%d...", run, h.total, run+1, h.total))
	} else {
		h.spinner.Update("Rendering...")
	}
}

// observeRuns installs spinnerHooks for a layout of total runs. The returned
// function restores the previous hooks.
func observeRuns(s *Spinner, total int) func() {
	prev := observability.Layout()
	observability.SetLayoutHooks(&spinnerHooks{LayoutHooks: prev, spinner: s, total: total})
	return func() { observability.SetLayoutHooks(prev) }
}
