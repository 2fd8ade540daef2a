package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/attractors/internal/attractor"
)

// Spread is the mean distance of the current points from their centroid,
// averaged over observations. Observations with a non-finite point are
// skipped.
type Spread struct {
	xs, ys, zs []float64
	sum        float64
	samples    int
}

func NewSpread() *Spread {
	return &Spread{}
}

func (s *Spread) Name() string { return "spread" }

func (s *Spread) Observe(a *attractor.Attractor) {
	n := a.Len()
	s.xs = resize(s.xs, n)
	s.ys = resize(s.ys, n)
	s.zs = resize(s.zs, n)

	for i := 0; i < n; i++ {
		p := a.Current(i)
		if !p.IsFinite() {
			return
		}
		s.xs[i], s.ys[i], s.zs[i] = float64(p.X), float64(p.Y), float64(p.Z)
	}

	cx := floats.Sum(s.xs) / float64(n)
	cy := floats.Sum(s.ys) / float64(n)
	cz := floats.Sum(s.zs) / float64(n)

	floats.AddConst(-cx, s.xs)
	floats.AddConst(-cy, s.ys)
	floats.AddConst(-cz, s.zs)

	var total float64
	for i := 0; i < n; i++ {
		total += math.Sqrt(s.xs[i]*s.xs[i] + s.ys[i]*s.ys[i] + s.zs[i]*s.zs[i])
	}

	s.sum += total / float64(n)
	s.samples++
}

func (s *Spread) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *Spread) Reset() {
	s.sum = 0
	s.samples = 0
}

func resize(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}

// Extent is the largest absolute finite coordinate seen across all
// observations.
type Extent struct {
	max float64
}

func NewExtent() *Extent {
	return &Extent{}
}

func (e *Extent) Name() string { return "extent" }

func (e *Extent) Observe(a *attractor.Attractor) {
	for i := 0; i < a.Len(); i++ {
		p := a.Current(i)
		for _, v := range p.Slice() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if av := math.Abs(v); av > e.max {
				e.max = av
			}
		}
	}
}

func (e *Extent) Value() float64 { return e.max }

func (e *Extent) Reset() { e.max = 0 }
