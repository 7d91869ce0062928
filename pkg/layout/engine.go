package layout

import (
	"context"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphdraw/pkg/graph"
)

// Option configures an [Engine].
type Option func(*Engine)

// WithConfig replaces the default schedule.
func WithConfig(cfg Config) Option { return func(e *Engine) { e.cfg = cfg } }

// WithSeed seeds the random source. A zero seed draws a random one.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		if seed == 0 {
			seed = rand.Uint64()
		}
		e.seed = seed
		e.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}
}

// WithRand injects the random source used for initial positions and for
// separating coincident nodes.
func WithRand(rng *rand.Rand) Option { return func(e *Engine) { e.rng = rng } }

// WithObserver registers a frame observer for [Engine.Run].
func WithObserver(o Observer) Option { return func(e *Engine) { e.observer = o } }

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithRunHook registers fn to be called after every completed run with the
// zero-based run number, the iterations of that run and the maximum radius.
func WithRunHook(fn func(run, iterations int, maxRadius float64)) Option {
	return func(e *Engine) { e.runHook = fn }
}

// edgeRef is a canonical edge resolved to node indices.
type edgeRef struct {
	u, v   int
	weight float64
}

// Engine owns the layout state of one graph. It is not safe for concurrent
// use.
type Engine struct {
	g        *graph.Graph
	cfg      Config
	rng      *rand.Rand
	seed     uint64
	observer Observer
	runHook  func(run, iterations int, maxRadius float64)
	logger   *log.Logger

	ids   []string
	edges []edgeRef
	pos   []r2.Vec
	disp  []r2.Vec

	k    float64
	temp float64
	maxR float64

	run        int
	iter       int
	iterations int
	finalized  bool
}

// New creates an engine for g and places every node uniformly at random in
// [-Dim/2, Dim/2]².
func New(g *graph.Graph, opts ...Option) *Engine {
	e := &Engine{g: g, cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		WithSeed(0)(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	e.ids = g.Nodes()
	e.pos = make([]r2.Vec, len(e.ids))
	e.disp = make([]r2.Vec, len(e.ids))
	for _, key := range g.Edges() {
		info, _ := g.Edge(key.U, key.V)
		u, _ := g.Index(key.U)
		v, _ := g.Index(key.V)
		e.edges = append(e.edges, edgeRef{u: u, v: v, weight: info.Weight})
	}

	e.k = e.cfg.K(g.NodeCount())
	e.temp = e.cfg.Temperature
	e.maxR = e.cfg.Epsilon
	half := e.cfg.Dim / 2
	for i := range e.pos {
		e.pos[i] = r2.Vec{
			X: e.rng.Float64()*e.cfg.Dim - half,
			Y: e.rng.Float64()*e.cfg.Dim - half,
		}
		e.maxR = max(e.maxR, r2.Norm(e.pos[i]))
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Seed returns the seed given to [WithSeed], or 0 when the source was
// injected with [WithRand].
func (e *Engine) Seed() uint64 { return e.seed }

// K returns the optimal inter-node distance.
func (e *Engine) K() float64 { return e.k }

// Temperature returns the current temperature.
func (e *Engine) Temperature() float64 { return e.temp }

// MaxRadius returns the tracked maximum distance from the origin.
func (e *Engine) MaxRadius() float64 { return e.maxR }

// Position returns the current position of node id.
func (e *Engine) Position(id string) (r2.Vec, bool) {
	i, ok := e.g.Index(id)
	if !ok {
		return r2.Vec{}, false
	}
	return e.pos[i], true
}

// SetPosition overrides the position of node id. It is meant for tests and
// for seeding a layout from a previous result.
func (e *Engine) SetPosition(id string, p r2.Vec) bool {
	i, ok := e.g.Index(id)
	if !ok {
		return false
	}
	e.pos[i] = p
	return true
}

// Displacement returns the accumulated displacement of node id for the
// iteration in progress.
func (e *Engine) Displacement(id string) (r2.Vec, bool) {
	i, ok := e.g.Index(id)
	if !ok {
		return r2.Vec{}, false
	}
	return e.disp[i], true
}

// Step performs one full iteration: attraction, repulsion, gravity and the
// clamped position update followed by cooling.
func (e *Engine) Step() {
	e.Attract()
	e.Repel()
	e.Gravitate()
	e.Update()
	e.iter++
	e.iterations++
}

// Run performs 1+ExtraRepeats runs and then finalizes the layout. Each run
// resets the temperature but keeps positions. Cancelling ctx stops the
// layout between iterations and returns the context error; the layout is not
// finalized in that case.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	e.logDiagnostics()
	e.emit()

	initial := e.cfg.Temperature
	for run := 0; run <= e.cfg.ExtraRepeats; run++ {
		e.run = run
		e.iter = 0
		e.temp = initial
		refresh := e.cfg.RefreshInterval
		e.logger.Debug("run started", "run", run+1, "of", e.cfg.ExtraRepeats+1)

		for e.temp >= e.cfg.Epsilon {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.Step()
			if e.iter%refresh == 0 {
				e.emit()
			}
			if e.iter%e.cfg.RefreshDoubling == 0 {
				refresh *= 2
			}
		}
		e.logger.Debug("run complete", "run", run+1, "iterations", e.iter, "max_radius", e.maxR)
		if e.runHook != nil {
			e.runHook(run, e.iter, e.maxR)
		}
	}
	e.temp = initial

	e.Finalize()
	e.emit()
	return nil
}

// Finalize rescales every position by Margin/MaxRadius so the farthest node
// lies exactly on the margin, then sets the tracked radius to the margin.
func (e *Engine) Finalize() {
	margin := e.cfg.Margin()
	scale := margin / e.maxR
	for i := range e.pos {
		e.pos[i] = r2.Scale(scale, e.pos[i])
	}
	e.maxR = margin
	e.finalized = true
}

// Finalized reports whether [Engine.Finalize] has run.
func (e *Engine) Finalized() bool { return e.finalized }

// Iterations returns the number of iterations performed across all runs.
func (e *Engine) Iterations() int { return e.iterations }

// Runs returns the number of runs started.
func (e *Engine) Runs() int {
	if e.iterations == 0 {
		return 0
	}
	return e.run + 1
}

func (e *Engine) emit() {
	if e.observer == nil {
		return
	}
	e.observer.Frame(e.Snapshot())
}

func (e *Engine) logDiagnostics() {
	e.logger.Debug("layout options",
		"directed", e.g.Directed(),
		"multiplier", e.cfg.Multiplier,
		"extra", e.cfg.ExtraRepeats,
		"seed", e.seed,
	)
	e.logger.Debug("program constants",
		"dim", e.cfg.Dim,
		"epsilon", e.cfg.Epsilon,
		"temperature", e.cfg.Temperature,
		"cooling", e.cfg.Cooling,
		"iterations_per_run", e.cfg.IterationsPerRun(),
	)
	e.logger.Debug("graph information",
		"nodes", e.g.NodeCount(),
		"drawn_edges", e.g.DrawnEdgeCount(),
	)
}
