// Package analysis characterizes attractor dynamics.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [LyapunovSpectrum]: per-axis separation estimates
//   - [PowerSpectrum], [DominantFrequency]: spectra of sampled coordinates
//   - [BifurcationDiagram]: coefficient sweep recording local maxima
//   - [GeneratePhasePortrait], [Project]: 2D projections of trajectories
//   - [GeneratePoincareSection]: plane crossings of a trajectory
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(physics.NewLorenz(), p0, 0.01, 20000, 1e-3)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
