package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/graphdraw/pkg/errors"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"zero dim", func(c *Config) { c.Dim = 0 }, true},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }, true},
		{"negative temperature", func(c *Config) { c.Temperature = -1 }, true},
		{"cooling one", func(c *Config) { c.Cooling = 1 }, true},
		{"cooling NaN", func(c *Config) { c.Cooling = math.NaN() }, true},
		{"zero margin", func(c *Config) { c.MarginFraction = 0 }, true},
		{"negative gravity", func(c *Config) { c.Gravity = -0.1 }, true},
		{"zero refresh", func(c *Config) { c.RefreshInterval = 0 }, true},
		{"zero doubling", func(c *Config) { c.RefreshDoubling = 0 }, true},
		{"negative repeats", func(c *Config) { c.ExtraRepeats = -1 }, true},
		{"repeats", func(c *Config) { c.ExtraRepeats = 3 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrCodeInvalidOption))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigK(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1.0, cfg.K(0))
	assert.Equal(t, 1000.0, cfg.K(1))
	assert.InDelta(t, 500.0, cfg.K(4), 1e-9)
	assert.InDelta(t, 100.0, cfg.K(100), 1e-9)
}

func TestConfigMargin(t *testing.T) {
	assert.InDelta(t, 360.0, DefaultConfig().Margin(), 1e-9)
}

func TestIterationsPerRun(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"default", DefaultConfig()},
		{"fast cooling", Config{Temperature: 10, Cooling: 0.5, Epsilon: 0.1}},
		{"slow cooling", Config{Temperature: 50, Cooling: 0.99, Epsilon: 0.01}},
		{"already cold", Config{Temperature: 0.01, Cooling: 0.9, Epsilon: 0.05}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.cfg.IterationsPerRun()
			// n is the smallest t with T0*c^t < eps.
			assert.Less(t, tt.cfg.Temperature*math.Pow(tt.cfg.Cooling, float64(n)), tt.cfg.Epsilon)
			if n > 0 {
				assert.GreaterOrEqual(t, tt.cfg.Temperature*math.Pow(tt.cfg.Cooling, float64(n-1)), tt.cfg.Epsilon)
			}
		})
	}

	assert.Equal(t, 187, DefaultConfig().IterationsPerRun())
}
