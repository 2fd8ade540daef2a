package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/attractors/internal/attractor"
	"github.com/san-kum/attractors/internal/dynamo"
)

type Metric interface {
	Name() string
	Observe(a *attractor.Attractor)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(a *attractor.Attractor, step int)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(a *attractor.Attractor, step int)

func (f ObserverFunc) OnTick(a *attractor.Attractor, step int) { f(a, step) }

type Config struct {
	Dt    float32
	Steps int
	// SampleEvery records the watched trajectory every n ticks; 0 disables
	// sampling.
	SampleEvery int
	// Watch is the trajectory index sampled into Result.Series.
	Watch int
}

func DefaultConfig() Config {
	return Config{
		Dt:          0.001,
		Steps:       10000,
		SampleEvery: 1,
	}
}

func (c Config) Validate() error {
	dt := float64(c.Dt)
	if c.Dt == 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return &dynamo.ConfigError{Field: "dt", Value: c.Dt, Reason: "must be finite and non-zero"}
	}
	if c.Steps < 1 {
		return &dynamo.ConfigError{Field: "steps", Value: c.Steps, Reason: "must be at least 1"}
	}
	if c.SampleEvery < 0 {
		return &dynamo.ConfigError{Field: "sample_every", Value: c.SampleEvery, Reason: "must not be negative"}
	}
	return nil
}

type Result struct {
	Steps   int
	Elapsed time.Duration
	Metrics map[string]float64
	Series  []dynamo.Point
	Times   []float64
}

// Axis extracts one coordinate of the sampled series: 0 for x, 1 for y,
// 2 for z. Other values panic.
func (r *Result) Axis(axis int) []float64 {
	out := make([]float64, len(r.Series))
	for i, p := range r.Series {
		out[i] = float64(p.Axis(axis))
	}
	return out
}

type SimError struct {
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Message)
}
