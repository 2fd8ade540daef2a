// Package dynamo provides core simulation primitives for strange attractors.
//
// The package defines the fundamental interfaces and types shared by the
// engine, the dynamics catalog and the renderers:
//
//   - [Point]: a single-precision 3-D position
//   - [Dynamics]: maps a point and a time step to an Euler increment
//   - [Configurable]: runtime coefficient adjustment between ticks
//   - [PointSource]: produces initial conditions inside a bounding cube
//
// # Example
//
//	dyn := physics.NewLorenz()
//	a, _ := attractor.New(dyn, source.NewUniform(42))
//	a.Tick(0.005)
//	for _, tr := range a.Trails() {
//	    draw(tr.Points)
//	}
//
// # Thread Safety
//
// Dynamics implementations must not mutate state while deriving. Parameters
// are changed through [Configurable] only between ticks.
package dynamo
