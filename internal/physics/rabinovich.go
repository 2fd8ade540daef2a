package physics

import "github.com/san-kum/attractors/internal/dynamo"

// RabinovichFabrikant implements the Rabinovich–Fabrikant equations.
//
//	dx/dt = y(z - 1 + x²) + γx
//	dy/dt = x(3z + 1 - x²) + γy
//	dz/dt = -2z(α + xy)
//
// The system is stiff for large coordinates; start it inside [-1, 1]³.
type RabinovichFabrikant struct {
	alpha, gamma float32
}

func NewRabinovichFabrikant() *RabinovichFabrikant {
	return &RabinovichFabrikant{alpha: 0.14, gamma: 0.1}
}

func (r *RabinovichFabrikant) Name() string { return "rabinovich_fabrikant" }

func (r *RabinovichFabrikant) Derivatives(x, y, z, dt float32) (float32, float32, float32) {
	dx := y*(z-1+x*x) + r.gamma*x
	dy := x*(3*z+1-x*x) + r.gamma*y
	dz := -2 * z * (r.alpha + x*y)
	return dx * dt, dy * dt, dz * dt
}

func (r *RabinovichFabrikant) Params() map[string]float64 {
	return map[string]float64{"alpha": float64(r.alpha), "gamma": float64(r.gamma)}
}

func (r *RabinovichFabrikant) SetParam(name string, value float64) error {
	switch name {
	case "alpha":
		r.alpha = float32(value)
	case "gamma":
		r.gamma = float32(value)
	default:
		return &dynamo.ParamError{Variant: r.Name(), Name: name}
	}
	return nil
}
