package physics

import "github.com/san-kum/attractors/internal/dynamo"

// ThreeScroll implements the three-scroll unified chaotic system.
//
//	dx/dt = a(y - x) + d·x·z
//	dy/dt = b·x - x·z + f·y
//	dz/dt = c·z + x·y - e·x²
type ThreeScroll struct {
	a, b, c, d, e, f float32
}

func NewThreeScroll() *ThreeScroll {
	return &ThreeScroll{a: 32.48, b: 45.84, c: 1.18, d: 0.13, e: 0.57, f: 14.7}
}

func (s *ThreeScroll) Name() string { return "threescroll" }

func (s *ThreeScroll) Derivatives(x, y, z, dt float32) (float32, float32, float32) {
	dx := s.a*(y-x) + s.d*x*z
	dy := s.b*x - x*z + s.f*y
	dz := s.c*z + x*y - s.e*x*x
	return dx * dt, dy * dt, dz * dt
}

func (s *ThreeScroll) Params() map[string]float64 {
	return map[string]float64{
		"a": float64(s.a), "b": float64(s.b), "c": float64(s.c),
		"d": float64(s.d), "e": float64(s.e), "f": float64(s.f),
	}
}

func (s *ThreeScroll) SetParam(name string, value float64) error {
	v := float32(value)
	switch name {
	case "a":
		s.a = v
	case "b":
		s.b = v
	case "c":
		s.c = v
	case "d":
		s.d = v
	case "e":
		s.e = v
	case "f":
		s.f = v
	default:
		return &dynamo.ParamError{Variant: s.Name(), Name: name}
	}
	return nil
}
