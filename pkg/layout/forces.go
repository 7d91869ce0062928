package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Attract accumulates the attraction of every canonical edge. Endpoints
// closer than epsilon, self-loops included, are skipped.
func (e *Engine) Attract() {
	for _, edge := range e.edges {
		dif := r2.Sub(e.pos[edge.u], e.pos[edge.v])
		dist := r2.Norm(dif)
		if dist < e.cfg.Epsilon {
			continue
		}
		f := r2.Scale(dist/e.k, dif)
		if e.cfg.Multiplier {
			f = r2.Scale(edge.weight, f)
		}
		e.disp[edge.u] = r2.Sub(e.disp[edge.u], f)
		e.disp[edge.v] = r2.Add(e.disp[edge.v], f)
	}
}

// Repel accumulates the repulsion of every unordered node pair, visiting
// each pair once with i < j.
func (e *Engine) Repel() {
	for i := range e.pos {
		for j := i + 1; j < len(e.pos); j++ {
			f := e.repulsion(i, j)
			e.disp[i] = r2.Add(e.disp[i], f)
			e.disp[j] = r2.Sub(e.disp[j], f)
		}
	}
}

// repulsion returns the force node j exerts on node i.
func (e *Engine) repulsion(i, j int) r2.Vec {
	dif := r2.Sub(e.pos[i], e.pos[j])
	dist := r2.Norm(dif)
	var dir r2.Vec
	if dist < e.cfg.Epsilon {
		dist = e.cfg.Epsilon
		dir = e.randomDirection()
	} else {
		dir = r2.Scale(1/dist, dif)
	}
	return r2.Scale(e.k*e.k/dist, dir)
}

// randomDirection draws a unit vector from [-1,1]². A first coordinate
// within epsilon of zero forces the second to 1.
func (e *Engine) randomDirection() r2.Vec {
	dir := r2.Vec{
		X: e.rng.Float64()*2 - 1,
		Y: e.rng.Float64()*2 - 1,
	}
	if math.Abs(dir.X) < e.cfg.Epsilon {
		dir.Y = 1
	}
	return r2.Unit(dir)
}

// Gravitate pulls every node farther than epsilon from the origin toward it.
// The pull is max(eps, (eps + Σ|disp|)/(n+1)) scaled by the gravity factor.
func (e *Engine) Gravitate() {
	sum := e.cfg.Epsilon
	for _, d := range e.disp {
		sum += r2.Norm(d)
	}
	magn := max(e.cfg.Epsilon, sum/float64(e.g.NodeCount()+1)) * e.cfg.Gravity

	for i, p := range e.pos {
		dist := r2.Norm(p)
		if dist < e.cfg.Epsilon {
			continue
		}
		e.disp[i] = r2.Add(e.disp[i], r2.Scale(-magn/dist, p))
	}
}

// Update applies the displacements clamped to the current temperature,
// recomputes the maximum radius, clears the accumulators and cools.
func (e *Engine) Update() {
	e.maxR = e.cfg.Epsilon
	for i := range e.pos {
		e.pos[i] = r2.Add(e.pos[i], e.clamp(e.disp[i]))
		e.maxR = max(e.maxR, r2.Norm(e.pos[i]))
		e.disp[i] = r2.Vec{}
	}
	e.temp *= e.cfg.Cooling
}

// clamp limits d to the current temperature. A displacement that overflowed
// moves the full temperature along its infinite components; NaN components
// contribute nothing.
func (e *Engine) clamp(d r2.Vec) r2.Vec {
	if math.IsInf(d.X, 0) || math.IsInf(d.Y, 0) {
		dir := r2.Vec{X: infSign(d.X), Y: infSign(d.Y)}
		return r2.Scale(e.temp, r2.Unit(dir))
	}
	if math.IsNaN(d.X) {
		d.X = 0
	}
	if math.IsNaN(d.Y) {
		d.Y = 0
	}
	if magn := r2.Norm(d); magn > e.temp {
		d = r2.Scale(e.temp/magn, d)
	}
	return d
}

func infSign(x float64) float64 {
	if math.IsInf(x, 0) {
		return math.Copysign(1, x)
	}
	return 0
}
