package gui

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/viz"
)

func vec(p dynamo.Point) rl.Vector3 { return rl.NewVector3(p.X, p.Y, p.Z) }

// palette returns one color per segment rank, rebuilt when the trail length
// or gradient changes.
func (a *App) palette(length int) []color.RGBA {
	if len(a.Palette) == length-1 && length > 1 {
		return a.Palette
	}
	a.Palette = make([]color.RGBA, max(length-1, 0))
	for r := range a.Palette {
		cr, cg, cb, ca := a.Gradient.RGBA8(r, length)
		a.Palette[r] = rl.NewColor(cr, cg, cb, ca)
	}
	return a.Palette
}

// RenderTrails draws every trail as length-1 line segments joining
// consecutive ranks, colored by rank. Diverged segments are skipped.
func (a *App) RenderTrails() {
	for _, tr := range a.Trails {
		n := len(tr.Points)
		colors := a.palette(n)
		for r := 0; r+1 < n; r++ {
			p, q := tr.Points[r], tr.Points[r+1]
			if !p.IsFinite() || !q.IsFinite() {
				continue
			}
			rl.DrawLine3D(vec(p), vec(q), colors[r])
		}
	}
}

// Orbit is a mouse driven camera circling the trails' bounding box.
type Orbit struct {
	Yaw, Pitch float64
	Zoom       float64
}

func NewOrbit() Orbit {
	return Orbit{Yaw: math.Pi / 4, Pitch: 0.3, Zoom: 1}
}

// Update applies mouse drag (rotate), wheel (zoom) and arrow keys.
func (o *Orbit) Update() {
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		d := rl.GetMouseDelta()
		o.Yaw -= float64(d.X) * 0.005
		o.Pitch += float64(d.Y) * 0.005
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		o.Yaw -= 0.02
	}
	if rl.IsKeyDown(rl.KeyRight) {
		o.Yaw += 0.02
	}
	if rl.IsKeyDown(rl.KeyUp) {
		o.Pitch += 0.02
	}
	if rl.IsKeyDown(rl.KeyDown) {
		o.Pitch -= 0.02
	}
	o.Pitch = math.Max(-1.5, math.Min(1.5, o.Pitch))

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		o.Zoom *= math.Pow(0.9, float64(wheel))
		o.Zoom = math.Max(0.05, math.Min(20, o.Zoom))
	}
}

// Apply aims cam at the center of b from a distance that fits it.
func (o *Orbit) Apply(cam *rl.Camera3D, b *viz.Bounds) {
	center := b.Lo.Add(b.Hi).Scale(0.5)
	radius := b.Hi.Sub(b.Lo).Length() / 2
	if radius <= 0 || math.IsInf(radius, 0) {
		radius = 1
	}
	dist := radius * 2.5 * o.Zoom

	eye := viz.Vec3{
		X: center.X + dist*math.Cos(o.Pitch)*math.Sin(o.Yaw),
		Y: center.Y + dist*math.Cos(o.Pitch)*math.Cos(o.Yaw),
		Z: center.Z + dist*math.Sin(o.Pitch),
	}
	cam.Position = rl.NewVector3(float32(eye.X), float32(eye.Y), float32(eye.Z))
	cam.Target = rl.NewVector3(float32(center.X), float32(center.Y), float32(center.Z))
	cam.Up = rl.NewVector3(0, 0, 1)
}
