// Package integrators advances points under a dynamics model.
package integrators

import "github.com/san-kum/attractors/internal/dynamo"

// Euler returns p advanced by one explicit Euler step. Dynamics already
// scale their derivative by dt, so the step is a plain vector add.
func Euler(dyn dynamo.Dynamics, p dynamo.Point, dt float32) dynamo.Point {
	return p.Add(dyn.Derivatives(p.X, p.Y, p.Z, dt))
}

// EulerN applies n Euler steps of size dt.
func EulerN(dyn dynamo.Dynamics, p dynamo.Point, dt float32, n int) dynamo.Point {
	for i := 0; i < n; i++ {
		p = Euler(dyn, p, dt)
	}
	return p
}
