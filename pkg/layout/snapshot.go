package layout

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Observer receives frames while [Engine.Run] progresses. Frame is called
// synchronously on the engine goroutine; implementations that render
// elsewhere should hand the snapshot off without blocking.
type Observer interface {
	Frame(Snapshot)
}

// ObserverFunc adapts a function to [Observer].
type ObserverFunc func(Snapshot)

// Frame calls f(s).
func (f ObserverFunc) Frame(s Snapshot) { f(s) }

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Run         int
	Iteration   int
	Temperature float64
	MaxRadius   float64
	Final       bool
	Positions   map[string]r2.Vec
}

// Snapshot returns a copy of the current positions and maximum radius.
func (e *Engine) Snapshot() Snapshot {
	pos := make(map[string]r2.Vec, len(e.ids))
	for i, id := range e.ids {
		pos[id] = e.pos[i]
	}
	return Snapshot{
		Run:         e.run,
		Iteration:   e.iter,
		Temperature: e.temp,
		MaxRadius:   e.maxR,
		Final:       e.finalized,
		Positions:   pos,
	}
}

// Scaled returns the position of id mapped into the drawing frame, so the
// farthest node lies on the margin.
func (s Snapshot) Scaled(id string, margin float64) (r2.Vec, bool) {
	p, ok := s.Positions[id]
	if !ok || s.MaxRadius == 0 {
		return p, ok
	}
	return r2.Scale(margin/s.MaxRadius, p), true
}
