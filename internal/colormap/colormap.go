// Package colormap turns trail ranks into colors for renderers.
package colormap

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSVToRGB converts a hue in turns (wrapped into [0, 1)) plus saturation and
// value (clamped to [0, 1]) to RGB components in [0, 1].
func HSVToRGB(h, s, v float64) (r, g, b float32) {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	c := colorful.Hsv(h*360, clamp01(s), clamp01(v))
	return float32(c.R), float32(c.G), float32(c.B)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// Gradient sweeps hue from HueStart at the newest rank to HueEnd at the
// oldest. Hues are in turns.
type Gradient struct {
	HueStart   float64
	HueEnd     float64
	Saturation float64
	Value      float64
	// Fade dims older ranks towards black when set.
	Fade bool
}

// DefaultGradient runs from green to blue.
func DefaultGradient() Gradient {
	return Gradient{HueStart: 0.33, HueEnd: 0.66, Saturation: 1, Value: 1}
}

func (g Gradient) t(rank, length int) float64 {
	if length <= 1 {
		return 0
	}
	return float64(rank) / float64(length-1)
}

func (g Gradient) hsv(rank, length int) colorful.Color {
	t := g.t(rank, length)
	h := g.HueStart + (g.HueEnd-g.HueStart)*t
	v := g.Value
	if g.Fade {
		v *= 1 - t
	}
	r, gr, b := HSVToRGB(h, g.Saturation, v)
	return colorful.Color{R: float64(r), G: float64(gr), B: float64(b)}
}

// At returns the color of the segment starting at rank in a trail of length
// points.
func (g Gradient) At(rank, length int) (r, gr, b float32) {
	c := g.hsv(rank, length)
	return float32(c.R), float32(c.G), float32(c.B)
}

// RGBA8 returns the color as 8-bit channels with full alpha.
func (g Gradient) RGBA8(rank, length int) (uint8, uint8, uint8, uint8) {
	r, gr, b := g.hsv(rank, length).RGB255()
	return r, gr, b, 255
}

// Hex returns the color as "#rrggbb".
func (g Gradient) Hex(rank, length int) string {
	return g.hsv(rank, length).Hex()
}
