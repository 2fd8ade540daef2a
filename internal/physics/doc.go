// Package physics provides the catalog of strange attractor dynamics.
//
// Each variant implements [dynamo.Dynamics], returning the Euler increment
// (derivative times dt) for a point:
//
//   - [Halvorsen]: cyclically symmetric quadratic system
//   - [Lorenz]: butterfly attractor
//   - [Aizawa]: sphere with a tube through one axis
//   - [FourWing]: four-winged quadratic system
//   - [RabinovichFabrikant]: plasma wave model
//   - [Thomas]: cyclically symmetric with sine feedback
//   - [ThreeScroll]: unified chaotic three-scroll system
//   - [Rossler]: single-band spiral attractor
//   - [Chen]: double-scroll Lorenz relative
//
// All variants also implement [dynamo.Configurable] so their coefficients can
// be tuned between ticks:
//
//	dyn := physics.NewLorenz()
//	if c, ok := dyn.(dynamo.Configurable); ok {
//	    _ = c.SetParam("rho", 99.96)
//	}
package physics
