package physics

import "github.com/san-kum/attractors/internal/dynamo"

// Chen implements the Chen–Lee attractor.
//
//	dx/dt = α·x - y·z
//	dy/dt = β·y + x·z
//	dz/dt = δ·z + x·y/3
type Chen struct{ alpha, beta, delta float32 }

func NewChen() *Chen         { return &Chen{alpha: 5, beta: -10, delta: -0.38} }
func (c *Chen) Name() string { return "chen" }

func (c *Chen) Derivatives(x, y, z, dt float32) (float32, float32, float32) {
	return (c.alpha*x - y*z) * dt, (c.beta*y + x*z) * dt, (c.delta*z + x*y/3) * dt
}

func (c *Chen) Params() map[string]float64 {
	return map[string]float64{"alpha": float64(c.alpha), "beta": float64(c.beta), "delta": float64(c.delta)}
}

func (c *Chen) SetParam(n string, v float64) error {
	switch n {
	case "alpha":
		c.alpha = float32(v)
	case "beta":
		c.beta = float32(v)
	case "delta":
		c.delta = float32(v)
	default:
		return &dynamo.ParamError{Variant: c.Name(), Name: n}
	}
	return nil
}
