package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type variant interface {
	dynamo.Dynamics
	dynamo.Named
	dynamo.Configurable
}

func TestDerivatives(t *testing.T) {
	tests := []struct {
		dyn     variant
		x, y, z float32
		want    [3]float64 // unscaled derivative
	}{
		{NewHalvorsen(), 1, 2, 3, [3]float64{-25.89, -28.78, -18.67}},
		{NewLorenz(), 1, 1, 1, [3]float64{0, 26, 1 - 8.0/3.0}},
		{NewAizawa(), 1, 1, 1, [3]float64{-3.2, 3.8, 0.6 + 0.95 - 1.0/3.0 - 2*(1-0.25) + 0.1}},
		{NewFourWing(), 1, 2, 3, [3]float64{6.2, -3.79, -5}},
		{NewRabinovichFabrikant(), 1, 1, 1, [3]float64{1.1, 3.1, -2.28}},
		{NewThomas(), 0, math.Pi / 2, 0, [3]float64{1, -0.208186 * math.Pi / 2, 0}},
		{NewThreeScroll(), 1, 1, 1, [3]float64{0.13, 59.54, 1.61}},
		{NewRossler(), 1, 1, 1, [3]float64{-2, 1.2, -4.5}},
		{NewChen(), 1, 2, 3, [3]float64{-1, -17, -0.38*3 + 2.0/3.0}},
	}

	for _, tt := range tests {
		t.Run(tt.dyn.Name(), func(t *testing.T) {
			for _, dt := range []float32{1, 0.5, 0.01} {
				dx, dy, dz := tt.dyn.Derivatives(tt.x, tt.y, tt.z, dt)
				got := [3]float64{float64(dx), float64(dy), float64(dz)}
				for i := range got {
					want := tt.want[i] * float64(dt)
					assert.InDelta(t, want, got[i], 1e-4*math.Max(1, math.Abs(want)),
						"component %d at dt=%v", i, dt)
				}
			}
		})
	}
}

func TestLorenzEulerStep(t *testing.T) {
	l := NewLorenz()
	p := dynamo.Point{X: 1, Y: 1, Z: 1}
	p = p.Add(l.Derivatives(p.X, p.Y, p.Z, 0.01))

	assert.InDelta(t, 1.0, p.X, 1e-6)
	assert.InDelta(t, 1.26, p.Y, 1e-5)
	assert.InDelta(t, 0.983333, p.Z, 1e-5)
}

func TestDerivatives_Deterministic(t *testing.T) {
	for _, name := range Names() {
		a, err := Lookup(name)
		require.NoError(t, err)
		b, err := Lookup(name)
		require.NoError(t, err)

		ax, ay, az := a.Derivatives(0.3, -0.2, 0.1, 0.005)
		bx, by, bz := b.Derivatives(0.3, -0.2, 0.1, 0.005)
		assert.Equal(t, [3]float32{ax, ay, az}, [3]float32{bx, by, bz}, name)
	}
}

func TestZeroStepIsStationary(t *testing.T) {
	for _, name := range Names() {
		dyn, err := Lookup(name)
		require.NoError(t, err)
		dx, dy, dz := dyn.Derivatives(1.5, -2, 0.75, 0)
		assert.Zero(t, dx, name)
		assert.Zero(t, dy, name)
		assert.Zero(t, dz, name)
	}
}

func TestParams_RoundTrip(t *testing.T) {
	for _, name := range Names() {
		dyn, err := Lookup(name)
		require.NoError(t, err)
		cfg, ok := dyn.(dynamo.Configurable)
		require.True(t, ok, "%s should be configurable", name)

		params := cfg.Params()
		require.NotEmpty(t, params, name)
		for k, v := range params {
			require.NoError(t, cfg.SetParam(k, v*2))
			assert.InDelta(t, v*2, cfg.Params()[k], 1e-5, "%s.%s", name, k)
		}
	}
}

func TestSetParam_Unknown(t *testing.T) {
	err := NewLorenz().SetParam("gamma", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dynamo.ErrUnknownParam))

	var pe *dynamo.ParamError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "lorenz", pe.Variant)
	assert.Equal(t, "gamma", pe.Name)
}

func TestSetParam_ChangesDerivative(t *testing.T) {
	r := NewRossler()
	_, _, before := r.Derivatives(1, 1, 1, 1)
	require.NoError(t, r.SetParam("c", 10))
	_, _, after := r.Derivatives(1, 1, 1, 1)
	assert.InDelta(t, -4.5, before, 1e-6)
	assert.InDelta(t, 0.2-9, after, 1e-6)
}
