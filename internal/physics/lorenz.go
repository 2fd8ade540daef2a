package physics

import "github.com/san-kum/attractors/internal/dynamo"

type Lorenz struct{ sigma, rho, beta float32 }

func NewLorenz() *Lorenz       { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }
func (l *Lorenz) Name() string { return "lorenz" }

// Derivatives calculates the Lorenz attractor increment.
func (l *Lorenz) Derivatives(x, y, z, dt float32) (float32, float32, float32) {
	return l.sigma * (y - x) * dt, (x*(l.rho-z) - y) * dt, (x*y - l.beta*z) * dt
}

func (l *Lorenz) Params() map[string]float64 {
	return map[string]float64{"sigma": float64(l.sigma), "rho": float64(l.rho), "beta": float64(l.beta)}
}

func (l *Lorenz) SetParam(n string, v float64) error {
	switch n {
	case "sigma":
		l.sigma = float32(v)
	case "rho":
		l.rho = float32(v)
	case "beta":
		l.beta = float32(v)
	default:
		return &dynamo.ParamError{Variant: l.Name(), Name: n}
	}
	return nil
}
