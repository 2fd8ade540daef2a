package colormap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float64
		r, g, b float32
	}{
		{"red", 0, 1, 1, 1, 0, 0},
		{"green", 1.0 / 3, 1, 1, 0, 1, 0},
		{"blue", 2.0 / 3, 1, 1, 0, 0, 1},
		{"yellow", 1.0 / 6, 1, 1, 1, 1, 0},
		{"white", 0.5, 0, 1, 1, 1, 1},
		{"black", 0.5, 1, 0, 0, 0, 0},
		{"wraps hue", 1 + 1.0/3, 1, 1, 0, 1, 0},
		{"negative hue", -1.0 / 3, 1, 1, 0, 0, 1},
		{"clamps", 0, 2, 5, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := HSVToRGB(tt.h, tt.s, tt.v)
			assert.InDelta(t, tt.r, r, 1e-5)
			assert.InDelta(t, tt.g, g, 1e-5)
			assert.InDelta(t, tt.b, b, 1e-5)
		})
	}
}

func TestGradient_Endpoints(t *testing.T) {
	g := Gradient{HueStart: 0, HueEnd: 2.0 / 3, Saturation: 1, Value: 1}

	r, gr, b := g.At(0, 10)
	assert.InDelta(t, 1, r, 1e-5)
	assert.InDelta(t, 0, gr, 1e-5)
	assert.InDelta(t, 0, b, 1e-5)

	r, gr, b = g.At(9, 10)
	assert.InDelta(t, 0, r, 1e-5)
	assert.InDelta(t, 0, gr, 1e-5)
	assert.InDelta(t, 1, b, 1e-5)

	assert.Equal(t, "#ff0000", g.Hex(0, 10))
	assert.Equal(t, "#0000ff", g.Hex(9, 10))
}

func TestGradient_Fade(t *testing.T) {
	g := DefaultGradient()
	g.Fade = true

	_, _, _, a := g.RGBA8(0, 5)
	assert.Equal(t, uint8(255), a)

	r, gr, b := g.At(4, 5)
	assert.Zero(t, r+gr+b, "oldest rank should fade to black")
}

func TestGradient_SinglePoint(t *testing.T) {
	g := DefaultGradient()
	assert.NotPanics(t, func() { g.At(0, 1) })
	assert.Equal(t, g.Hex(0, 1), g.Hex(0, 0))
}
