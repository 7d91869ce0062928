package layout

import (
	"math"

	"github.com/matzehuels/graphdraw/pkg/errors"
)

// Defaults for [Config].
const (
	DefaultDim             = 1000.0
	DefaultEpsilon         = 0.05
	DefaultTemperature     = 100.0
	DefaultCooling         = 0.96
	DefaultMarginFraction  = 0.36
	DefaultGravity         = 0.1
	DefaultRefreshInterval = 2
	DefaultRefreshDoubling = 50
)

// Config holds the schedule constants and options of an [Engine].
type Config struct {
	// Dim is the side of the square drawing area.
	Dim float64
	// Epsilon is the minimum distance below which nodes count as coincident.
	// A run ends once the temperature drops below it.
	Epsilon float64
	// Temperature is the initial per-iteration displacement bound.
	Temperature float64
	// Cooling is the per-iteration temperature decay factor, in (0, 1).
	Cooling float64
	// MarginFraction of Dim is the final radius of the farthest node.
	MarginFraction float64
	// Gravity scales the mean displacement into the centering pull.
	Gravity float64
	// Multiplier scales attraction by the aggregate edge weight.
	Multiplier bool
	// ExtraRepeats is the number of warm restarts after the first run.
	ExtraRepeats int
	// RefreshInterval is the initial number of iterations between frames.
	RefreshInterval int
	// RefreshDoubling is the iteration period after which the refresh
	// interval doubles.
	RefreshDoubling int
}

// DefaultConfig returns the standard schedule.
func DefaultConfig() Config {
	return Config{
		Dim:             DefaultDim,
		Epsilon:         DefaultEpsilon,
		Temperature:     DefaultTemperature,
		Cooling:         DefaultCooling,
		MarginFraction:  DefaultMarginFraction,
		Gravity:         DefaultGravity,
		RefreshInterval: DefaultRefreshInterval,
		RefreshDoubling: DefaultRefreshDoubling,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case !(c.Dim > 0):
		return errors.New(errors.ErrCodeInvalidOption, "dim must be positive, got %g", c.Dim)
	case !(c.Epsilon > 0):
		return errors.New(errors.ErrCodeInvalidOption, "epsilon must be positive, got %g", c.Epsilon)
	case !(c.Temperature > 0):
		return errors.New(errors.ErrCodeInvalidOption, "temperature must be positive, got %g", c.Temperature)
	case !(c.Cooling > 0 && c.Cooling < 1):
		return errors.New(errors.ErrCodeInvalidOption, "cooling must be in (0, 1), got %g", c.Cooling)
	case !(c.MarginFraction > 0):
		return errors.New(errors.ErrCodeInvalidOption, "margin fraction must be positive, got %g", c.MarginFraction)
	case c.Gravity < 0:
		return errors.New(errors.ErrCodeInvalidOption, "gravity cannot be negative, got %g", c.Gravity)
	case c.RefreshInterval < 1:
		return errors.New(errors.ErrCodeInvalidOption, "refresh interval must be at least 1, got %d", c.RefreshInterval)
	case c.RefreshDoubling < 1:
		return errors.New(errors.ErrCodeInvalidOption, "refresh doubling must be at least 1, got %d", c.RefreshDoubling)
	}
	return errors.ValidateRepeats(c.ExtraRepeats)
}

// K returns the optimal inter-node distance for n nodes. An empty graph
// yields 1.
func (c Config) K(n int) float64 {
	if n <= 0 {
		return 1
	}
	return c.Dim / math.Sqrt(float64(n))
}

// Margin returns the final radius of the farthest node.
func (c Config) Margin() float64 {
	return c.Dim * c.MarginFraction
}

// IterationsPerRun returns the number of iterations of one run: the smallest
// t with Temperature·Cooling^t < Epsilon. The temperature is decayed the same
// way the engine does so the result matches exactly.
func (c Config) IterationsPerRun() int {
	if !(c.Cooling > 0 && c.Cooling < 1) {
		return 0
	}
	n := 0
	for t := c.Temperature; t >= c.Epsilon; t *= c.Cooling {
		n++
	}
	return n
}
