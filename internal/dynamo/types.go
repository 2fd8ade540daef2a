package dynamo

import "math"

// Point is a position in 3-D space.
type Point struct {
	X, Y, Z float32
}

func (p Point) Add(dx, dy, dz float32) Point {
	return Point{p.X + dx, p.Y + dy, p.Z + dz}
}

func (p Point) Sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

// Norm returns the Euclidean length in double precision.
func (p Point) Norm() float64 {
	x, y, z := float64(p.X), float64(p.Y), float64(p.Z)
	return math.Sqrt(x*x + y*y + z*z)
}

func (p Point) Dist(o Point) float64 { return p.Sub(o).Norm() }

// IsFinite reports whether no coordinate is NaN or Inf.
func (p Point) IsFinite() bool {
	for _, v := range [3]float32{p.X, p.Y, p.Z} {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Axis returns the coordinate for axis 0 (x), 1 (y) or 2 (z).
func (p Point) Axis(i int) float32 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	case 2:
		return p.Z
	}
	panic("dynamo: axis out of range")
}

func (p Point) Slice() []float64 {
	return []float64{float64(p.X), float64(p.Y), float64(p.Z)}
}

// Dynamics computes the positional increment for one Euler step. The
// returned values are the derivatives already multiplied by dt, so callers
// add them to the current position directly.
type Dynamics interface {
	Derivatives(x, y, z, dt float32) (dx, dy, dz float32)
}

// Named is implemented by catalog variants.
type Named interface {
	Name() string
}

// Configurable exposes a variant's coefficients for tuning. SetParam must
// not be called while a tick is in flight.
type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

// PointSource produces initial conditions, each coordinate in [min, max).
type PointSource interface {
	Point(min, max float32) Point
}
