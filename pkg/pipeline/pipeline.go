// Package pipeline provides the read → layout → render pipeline shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Read: parse the line-oriented text format into a graph
//  2. Layout: run the force-directed engine and normalize the result
//  3. Render: produce artifacts (JSON, SVG, PNG, DOT, terminal text)
//
// Each stage can be run independently or as part of the complete pipeline.
// Layouts are cached only for fixed seeds; artifacts are cached per format.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.Options{Seed: 42, Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, file, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphdraw/pkg/cache"
	"github.com/matzehuels/graphdraw/pkg/errors"
	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/layout"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatTXT  = "txt"
)

// Defaults applied by [Options.ValidateAndSetDefaults].
const (
	DefaultFormat     = FormatJSON
	DefaultScale      = 1.0
	DefaultTermWidth  = 80
	DefaultTermHeight = 40
)

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Directed     bool   `json:"directed,omitempty"`
	Multiplier   bool   `json:"multiplier,omitempty"`
	ExtraRepeats int    `json:"extra_repeats,omitempty"`
	Seed         uint64 `json:"seed,omitempty"` // 0 draws a random seed

	// Render options
	Formats         []string `json:"formats,omitempty"`
	ShowNodeLabels  bool     `json:"show_node_labels,omitempty"`
	ShowEdgeWeights bool     `json:"show_edge_weights,omitempty"`
	Scale           float64  `json:"scale,omitempty"`
	TermWidth       int      `json:"term_width,omitempty"`
	TermHeight      int      `json:"term_height,omitempty"`

	// Presentation options, interpreted by the CLI
	Animate           bool `json:"-"`
	Verbose           bool `json:"-"`
	FinishImmediately bool `json:"-"`

	// Runtime options (not serialized)
	NoCache  bool            `json:"-"`
	Observer layout.Observer `json:"-"`
	Logger   *log.Logger     `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Graph     *graph.Graph
	GraphHash string
	Layout    layout.Result
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	ReadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks option ranges and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout validates the options read by the layout stage.
func (o *Options) ValidateForLayout() error {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return errors.ValidateRepeats(o.ExtraRepeats)
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.TermWidth == 0 {
		o.TermWidth = DefaultTermWidth
	}
	if o.TermHeight == 0 {
		o.TermHeight = DefaultTermHeight
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "scale cannot be negative, got %g", o.Scale)
	}
	if o.TermWidth < 0 || o.TermHeight < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "terminal size cannot be negative")
	}
	return ValidateFormats(o.Formats)
}

// LogFields returns the configuration surface as key-value pairs for
// structured logging.
func (o *Options) LogFields() []any {
	return []any{
		"directed", o.Directed,
		"multiplier", o.Multiplier,
		"animate", o.Animate,
		"show_node_labels", o.ShowNodeLabels,
		"show_edge_weights", o.ShowEdgeWeights,
		"verbose", o.Verbose,
		"finish_immediately", o.FinishImmediately,
		"extra_repeats", o.ExtraRepeats,
		"seed", o.Seed,
		"formats", o.Formats,
	}
}

// LayoutConfig returns the engine configuration for these options.
func (o *Options) LayoutConfig() layout.Config {
	cfg := layout.DefaultConfig()
	cfg.Multiplier = o.Multiplier
	cfg.ExtraRepeats = o.ExtraRepeats
	return cfg
}

// Cacheable reports whether the layout may be served from or stored in the
// cache. Unseeded and observed runs are always computed.
func (o *Options) Cacheable() bool {
	return o.Seed != 0 && !o.NoCache && o.Observer == nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Directed:     o.Directed,
		Multiplier:   o.Multiplier,
		ExtraRepeats: o.ExtraRepeats,
		Seed:         o.Seed,
		Dim:          layout.DefaultDim,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:          format,
		ShowNodeLabels:  o.ShowNodeLabels,
		ShowEdgeWeights: o.ShowEdgeWeights,
	}
	switch format {
	case FormatDOT, FormatSVG, FormatPNG:
		opts.Scale = o.Scale
	case FormatTXT:
		opts.Width, opts.Height = o.TermWidth, o.TermHeight
	}
	return opts
}
