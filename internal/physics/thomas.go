package physics

import (
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
)

// Thomas implements Thomas' cyclically symmetric attractor.
//
//	dx/dt = sin(y) - b·x
//	dy/dt = sin(z) - b·y
//	dz/dt = sin(x) - b·z
type Thomas struct {
	b float32 // Dissipation; chaotic near 0.208186
}

func NewThomas() *Thomas {
	return &Thomas{b: 0.208186}
}

func (t *Thomas) Name() string { return "thomas" }

func (t *Thomas) Derivatives(x, y, z, dt float32) (float32, float32, float32) {
	dx := sin32(y) - t.b*x
	dy := sin32(z) - t.b*y
	dz := sin32(x) - t.b*z
	return dx * dt, dy * dt, dz * dt
}

func (t *Thomas) Params() map[string]float64 {
	return map[string]float64{"b": float64(t.b)}
}

func (t *Thomas) SetParam(name string, value float64) error {
	if name != "b" {
		return &dynamo.ParamError{Variant: t.Name(), Name: name}
	}
	t.b = float32(value)
	return nil
}

func sin32(v float32) float32 { return float32(math.Sin(float64(v))) }
