// Package attractor implements the trail engine: N independent trajectories
// advanced by one shared [dynamo.Dynamics], each keeping its last L positions
// in a fixed-capacity ring buffer.
//
// A driver alternates [Attractor.Tick] and [Attractor.Trails]:
//
//	a, err := attractor.New(physics.NewHalvorsen(), source.NewUniform(1),
//	    attractor.WithTrajectories(100), attractor.WithTrailLength(100))
//	for running {
//	    a.Tick(0.001)
//	    for _, tr := range a.Trails() {
//	        for r := 0; r < len(tr.Points)-1; r++ {
//	            drawLine(tr.Points[r], tr.Points[r+1])
//	        }
//	    }
//	}
//
// # Thread Safety
//
// An Attractor has a single owner. Tick may fan out across goroutines
// internally (see [WithParallel]) but Tick and Trails must not overlap.
package attractor
