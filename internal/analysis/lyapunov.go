package analysis

import (
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/integrators"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Step p0 and p0 + (eps, 0, 0) with the same Euler increments
// 2. Accumulate ln(|δ(t)|/eps) each step
// 3. Pull the companion back to distance eps along δ
// 4. λ ≈ Σ ln / (steps * dt)
func LyapunovExponent(dyn dynamo.Dynamics, p0 dynamo.Point, dt float32, steps int, eps float64) float64 {
	return separation(dyn, p0, p0.Add(float32(eps), 0, 0), dt, steps, eps)
}

// LyapunovSpectrum runs the separation method once per axis perturbation.
// The values are finite-time estimates, not an orthonormalised spectrum.
func LyapunovSpectrum(dyn dynamo.Dynamics, p0 dynamo.Point, dt float32, steps int, eps float64) [3]float64 {
	e := float32(eps)
	return [3]float64{
		separation(dyn, p0, p0.Add(e, 0, 0), dt, steps, eps),
		separation(dyn, p0, p0.Add(0, e, 0), dt, steps, eps),
		separation(dyn, p0, p0.Add(0, 0, e), dt, steps, eps),
	}
}

func separation(dyn dynamo.Dynamics, p, q dynamo.Point, dt float32, steps int, d0 float64) float64 {
	if steps <= 0 || dt == 0 || d0 <= 0 {
		return 0
	}

	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		p = integrators.Euler(dyn, p, dt)
		q = integrators.Euler(dyn, q, dt)

		if !p.IsFinite() || !q.IsFinite() {
			break
		}

		sep := q.Dist(p)
		if sep == 0 {
			continue
		}

		sumLog += math.Log(sep / d0)
		count++

		// Renormalize to prevent overflow
		scale := float32(d0 / sep)
		d := q.Sub(p)
		q = p.Add(d.X*scale, d.Y*scale, d.Z*scale)
	}

	if count == 0 {
		return 0
	}

	return sumLog / (float64(count) * math.Abs(float64(dt)))
}
