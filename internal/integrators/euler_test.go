package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/attractors/internal/dynamo"
)

// decay is dx/dt = -x on every axis.
type decay struct{}

func (decay) Derivatives(x, y, z, dt float32) (float32, float32, float32) {
	return -x * dt, -y * dt, -z * dt
}

func TestEulerStep(t *testing.T) {
	p := Euler(decay{}, dynamo.Point{X: 1, Y: 2, Z: -4}, 0.5)
	want := dynamo.Point{X: 0.5, Y: 1, Z: -2}
	if p != want {
		t.Errorf("expected %v, got %v", want, p)
	}
}

func TestEulerAccuracy(t *testing.T) {
	dt := float32(0.001)
	steps := 1000

	p := EulerN(decay{}, dynamo.Point{X: 1, Y: 1, Z: 1}, dt, steps)

	expected := math.Exp(-1)
	if math.Abs(float64(p.X)-expected) > 1e-3 {
		t.Errorf("position error too large: got %.6f, expected %.6f", p.X, expected)
	}
}

func TestEulerN_Zero(t *testing.T) {
	p := dynamo.Point{X: 3}
	if got := EulerN(decay{}, p, 0.1, 0); got != p {
		t.Errorf("zero steps should not move the point, got %v", got)
	}
}

func BenchmarkEuler(b *testing.B) {
	p := dynamo.Point{X: 1, Y: 0, Z: 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p = Euler(decay{}, p, 0.0001)
	}
}
