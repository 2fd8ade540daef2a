package metrics

import (
	"math"

	"github.com/san-kum/attractors/internal/attractor"
)

// Escaped reports the fraction of trajectories whose current point was
// non-finite or outside radius at the last observation. Divergence is a
// property of the chosen dt, not an engine error, so it is only reported.
type Escaped struct {
	name     string
	radius   float64
	escaped  int
	total    int
	observed bool
}

func NewEscaped(radius float64) *Escaped {
	return &Escaped{
		name:   "escaped",
		radius: radius,
	}
}

func (e *Escaped) Name() string {
	return e.name
}

func (e *Escaped) Observe(a *attractor.Attractor) {
	e.observed = true
	e.total = a.Len()
	e.escaped = 0
	for i := 0; i < a.Len(); i++ {
		p := a.Current(i)
		if !p.IsFinite() || p.Norm() > e.radius {
			e.escaped++
		}
	}
}

func (e *Escaped) Value() float64 {
	if !e.observed || e.total == 0 {
		return 0
	}
	return float64(e.escaped) / float64(e.total)
}

func (e *Escaped) Reset() {
	e.escaped = 0
	e.total = 0
	e.observed = false
}

// Stability is the fraction of observations in which every trajectory
// stayed finite with all coordinates inside threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(a *attractor.Attractor) {
	s.samples++
	for i := 0; i < a.Len(); i++ {
		if !inside(a.Current(i).Slice(), s.threshold) {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

func inside(coords []float64, threshold float64) bool {
	for _, v := range coords {
		if math.IsNaN(v) || math.Abs(v) > threshold {
			return false
		}
	}
	return true
}
