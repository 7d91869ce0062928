package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/layout"
	"github.com/matzehuels/graphdraw/pkg/pipeline"
	"github.com/matzehuels/graphdraw/pkg/render/term"
)

var (
	viewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	viewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// Lines taken by the title, status and help around the canvas.
const viewChrome = 4

// =============================================================================
// Frame Sink
// =============================================================================

// frameSink is a layout.Observer that keeps only the newest snapshot. The
// engine never blocks on it; frames the TUI has not picked up are replaced.
type frameSink struct {
	ch chan layout.Snapshot
}

func newFrameSink() *frameSink {
	return &frameSink{ch: make(chan layout.Snapshot, 1)}
}

// Frame stores s, discarding any frame still waiting. It must only be called
// from a single goroutine.
func (f *frameSink) Frame(s layout.Snapshot) {
	for {
		select {
		case f.ch <- s:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

// close signals that no more frames will arrive.
func (f *frameSink) close() { close(f.ch) }

// next waits for the next frame. It yields nil once the sink is closed.
func (f *frameSink) next() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-f.ch
		if !ok {
			return nil
		}
		return frameMsg(s)
	}
}

// =============================================================================
// Messages
// =============================================================================

type frameMsg layout.Snapshot

type doneMsg struct {
	res *pipeline.Result
	err error
}

func waitDone(ch <-chan doneMsg) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

// =============================================================================
// DrawModel - animated and final layout view
// =============================================================================

// DrawModel shows layout frames as they arrive and the final layout once the
// pipeline finishes.
type DrawModel struct {
	Title  string
	Graph  *graph.Graph
	Opts   term.Options
	Finish bool // quit as soon as the layout is done

	frames *frameSink
	done   <-chan doneMsg
	cancel context.CancelFunc

	snap     layout.Snapshot
	hasFrame bool
	result   *pipeline.Result
	err      error
	quitting bool
}

// newDrawModel creates a model fed by frames and completed by done. cancel
// stops the layout when the user quits early; it may be nil.
func newDrawModel(title string, g *graph.Graph, opts pipeline.Options, frames *frameSink, done <-chan doneMsg, cancel context.CancelFunc) DrawModel {
	cfg := opts.LayoutConfig()
	return DrawModel{
		Title: title,
		Graph: g,
		Opts: term.Options{
			Width:           opts.TermWidth,
			Height:          opts.TermHeight,
			Dim:             cfg.Dim,
			Margin:          cfg.Margin(),
			ShowNodeLabels:  opts.ShowNodeLabels,
			ShowEdgeWeights: opts.ShowEdgeWeights,
		},
		Finish: opts.FinishImmediately,
		frames: frames,
		done:   done,
		cancel: cancel,
	}
}

// newResultModel creates a model that only shows an already computed result.
func newResultModel(title string, g *graph.Graph, opts pipeline.Options, res *pipeline.Result) DrawModel {
	m := newDrawModel(title, g, opts, nil, nil, nil)
	m.setResult(res)
	return m
}

func (m *DrawModel) setResult(res *pipeline.Result) {
	m.result = res
	if res != nil {
		m.snap = res.Layout.Snapshot()
		m.hasFrame = true
	}
}

// Result returns the pipeline result, or nil if the layout did not finish.
func (m DrawModel) Result() *pipeline.Result { return m.result }

// Err returns the pipeline error, if any.
func (m DrawModel) Err() error { return m.err }

func (m DrawModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.frames != nil {
		cmds = append(cmds, m.frames.next())
	}
	if m.done != nil {
		cmds = append(cmds, waitDone(m.done))
	}
	return tea.Batch(cmds...)
}

func (m DrawModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Opts.Width, m.Opts.Height = canvasSize(msg.Width, msg.Height)
	case frameMsg:
		if m.result == nil {
			m.snap = layout.Snapshot(msg)
			m.hasFrame = true
		}
		return m, m.frames.next()
	case doneMsg:
		m.err = msg.err
		m.setResult(msg.res)
		if m.err != nil || m.Finish {
			return m, tea.Quit
		}
	}
	return m, nil
}

// canvasSize fits a canvas into a terminal. Cells are about twice as tall as
// they are wide, so the canvas is twice as wide as it is high.
func canvasSize(width, height int) (w, h int) {
	h = min(height-viewChrome, width/2)
	if h < 1 {
		h = 1
	}
	return 2 * h, h
}

func (m DrawModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(viewStatusStyle.Render(m.status()))
	b.WriteString("\n")
	if m.hasFrame {
		b.WriteString(term.Draw(m.Graph, m.snap, m.Opts).Render())
	}
	b.WriteString("\n")
	if m.result == nil {
		b.WriteString(viewHelpStyle.Render("q quit"))
	} else {
		b.WriteString(viewHelpStyle.Render("layout done · q quit"))
	}
	return b.String()
}

func (m DrawModel) status() string {
	switch {
	case m.err != nil:
		return "error: " + m.err.Error()
	case m.result != nil:
		l := m.result.Layout
		return fmt.Sprintf("%d nodes · %d runs · %d iterations · seed %d",
			len(l.Nodes), l.Runs, l.Iterations, l.Seed)
	case m.hasFrame:
		return fmt.Sprintf("run %d · iteration %d · temperature %.2f",
			m.snap.Run+1, m.snap.Iteration, m.snap.Temperature)
	default:
		return "starting..."
	}
}
