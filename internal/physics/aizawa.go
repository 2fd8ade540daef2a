package physics

import "github.com/san-kum/attractors/internal/dynamo"

// Aizawa implements the Aizawa (Langford) attractor.
//
//	dx/dt = (z - b)x - d·y
//	dy/dt = d·x + (z - b)y
//	dz/dt = c + a·z - z³/3 - (x² + y²)(1 - e·z) + f·z·x³
type Aizawa struct {
	a, b, c, d, e, f float32
}

func NewAizawa() *Aizawa {
	return &Aizawa{a: 0.95, b: 0.7, c: 0.6, d: 3.5, e: 0.25, f: 0.1}
}

func (m *Aizawa) Name() string { return "aizawa" }

func (m *Aizawa) Derivatives(x, y, z, dt float32) (float32, float32, float32) {
	dx := (z-m.b)*x - m.d*y
	dy := m.d*x + (z-m.b)*y
	dz := m.c + m.a*z - z*z*z/3 - (x*x+y*y)*(1-m.e*z) + m.f*z*x*x*x
	return dx * dt, dy * dt, dz * dt
}

func (m *Aizawa) Params() map[string]float64 {
	return map[string]float64{
		"a": float64(m.a), "b": float64(m.b), "c": float64(m.c),
		"d": float64(m.d), "e": float64(m.e), "f": float64(m.f),
	}
}

func (m *Aizawa) SetParam(name string, value float64) error {
	v := float32(value)
	switch name {
	case "a":
		m.a = v
	case "b":
		m.b = v
	case "c":
		m.c = v
	case "d":
		m.d = v
	case "e":
		m.e = v
	case "f":
		m.f = v
	default:
		return &dynamo.ParamError{Variant: m.Name(), Name: name}
	}
	return nil
}
