package physics

import "github.com/san-kum/attractors/internal/dynamo"

// Halvorsen implements the cyclically symmetric Halvorsen attractor.
//
//	dx/dt = -a·x - 4y - 4z - y²
//	dy/dt = -a·y - 4z - 4x - z²
//	dz/dt = -a·z - 4x - 4y - x²
type Halvorsen struct {
	a float32
}

func NewHalvorsen() *Halvorsen {
	return &Halvorsen{a: 1.89}
}

func (h *Halvorsen) Name() string { return "halvorsen" }

func (h *Halvorsen) Derivatives(x, y, z, dt float32) (float32, float32, float32) {
	dx := -h.a*x - 4*y - 4*z - y*y
	dy := -h.a*y - 4*z - 4*x - z*z
	dz := -h.a*z - 4*x - 4*y - x*x
	return dx * dt, dy * dt, dz * dt
}

// Params implements dynamo.Configurable
func (h *Halvorsen) Params() map[string]float64 {
	return map[string]float64{"a": float64(h.a)}
}

// SetParam implements dynamo.Configurable
func (h *Halvorsen) SetParam(name string, value float64) error {
	if name != "a" {
		return &dynamo.ParamError{Variant: h.Name(), Name: name}
	}
	h.a = float32(value)
	return nil
}
