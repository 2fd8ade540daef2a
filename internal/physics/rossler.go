package physics

import "github.com/san-kum/attractors/internal/dynamo"

type Rossler struct{ a, b, c float32 }

func NewRossler() *Rossler      { return &Rossler{0.2, 0.2, 5.7} }
func (r *Rossler) Name() string { return "rossler" }

// Derivatives calculates the Rossler attractor increment.
func (r *Rossler) Derivatives(x, y, z, dt float32) (float32, float32, float32) {
	return -(y + z) * dt, (x + r.a*y) * dt, (r.b + z*(x-r.c)) * dt
}

func (r *Rossler) Params() map[string]float64 {
	return map[string]float64{"a": float64(r.a), "b": float64(r.b), "c": float64(r.c)}
}

func (r *Rossler) SetParam(n string, v float64) error {
	switch n {
	case "a":
		r.a = float32(v)
	case "b":
		r.b = float32(v)
	case "c":
		r.c = float32(v)
	default:
		return &dynamo.ParamError{Variant: r.Name(), Name: n}
	}
	return nil
}
