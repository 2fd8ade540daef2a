package physics

import "github.com/san-kum/attractors/internal/dynamo"

// FourWing implements the four-wing attractor.
//
//	dx/dt = a·x + y·z
//	dy/dt = b·x + c·y - x·z
//	dz/dt = -z - x·y
type FourWing struct{ a, b, c float32 }

func NewFourWing() *FourWing     { return &FourWing{a: 0.2, b: 0.01, c: -0.4} }
func (w *FourWing) Name() string { return "fourwing" }

func (w *FourWing) Derivatives(x, y, z, dt float32) (float32, float32, float32) {
	return (w.a*x + y*z) * dt, (w.b*x + w.c*y - x*z) * dt, (-z - x*y) * dt
}

func (w *FourWing) Params() map[string]float64 {
	return map[string]float64{"a": float64(w.a), "b": float64(w.b), "c": float64(w.c)}
}

func (w *FourWing) SetParam(n string, v float64) error {
	switch n {
	case "a":
		w.a = float32(v)
	case "b":
		w.b = float32(v)
	case "c":
		w.c = float32(v)
	default:
		return &dynamo.ParamError{Variant: w.Name(), Name: n}
	}
	return nil
}
