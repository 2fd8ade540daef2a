package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/attractors/internal/attractor"
	"github.com/san-kum/attractors/internal/dynamo"
)

type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

func FromPoint(p dynamo.Point) Vec3 {
	return Vec3{float64(p.X), float64(p.Y), float64(p.Z)}
}

// Camera projects world points onto a screen. Points are first moved by
// -Center, scaled by Fit*Zoom, then rotated.
type Camera struct {
	Center           Vec3
	Distance, Near   float64
	RotX, RotY, RotZ float64
	Zoom             float64
	Fit              float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, Near: 0.1, Zoom: 1.0, Fit: 1.0, RotX: -math.Pi / 2}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(50, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.02, c.Zoom/1.2) }

// Frame centers the camera on a bounding box and scales it to fill about
// two thirds of the screen.
func (c *Camera) Frame(lo, hi Vec3) {
	c.Center = lo.Add(hi).Scale(0.5)
	if r := hi.Sub(lo).Length() / 2; r > 0 && !math.IsInf(r, 0) {
		c.Fit = 1.2 / r
	}
}

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts world coordinates to screen coordinates of a sw x sh
// surface. Returns x, y, depth, and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (float64, float64, float64, bool) {
	rot := c.RotatePoint(p.Sub(c.Center).Scale(c.Fit * c.Zoom))
	dist := c.Distance
	if rot.Z >= dist-c.Near || math.IsNaN(rot.X) || math.IsNaN(rot.Y) {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	pScale := math.Min(float64(sw), float64(sh)) / 3.0
	sx := rot.X*scale*pScale + float64(sw)/2
	sy := -rot.Y*scale*pScale + float64(sh)/2
	return sx, sy, rot.Z, sx >= 0 && sx < float64(sw) && sy >= 0 && sy < float64(sh)
}

// Bounds accumulates the bounding box of finite points.
type Bounds struct {
	Lo, Hi Vec3
	empty  bool
}

func NewBounds() *Bounds { return &Bounds{empty: true} }

func (b *Bounds) Add(p dynamo.Point) {
	if !p.IsFinite() {
		return
	}
	v := FromPoint(p)
	if b.empty {
		b.Lo, b.Hi, b.empty = v, v, false
		return
	}
	b.Lo = Vec3{math.Min(b.Lo.X, v.X), math.Min(b.Lo.Y, v.Y), math.Min(b.Lo.Z, v.Z)}
	b.Hi = Vec3{math.Max(b.Hi.X, v.X), math.Max(b.Hi.Y, v.Y), math.Max(b.Hi.Z, v.Z)}
}

func (b *Bounds) Empty() bool { return b.empty }
func (b *Bounds) Reset()      { b.empty = true }

// SegmentColor gives the color of the segment joining ranks rank and
// rank+1 of a trail with length points.
type SegmentColor func(rank, length int) lipgloss.Color

// RenderTrails draws each trail as length-1 segments joining consecutive
// ranks. Segments with a non-finite or hidden endpoint are skipped.
func RenderTrails(c *Canvas, trails []attractor.Trail, cam *Camera, color SegmentColor) {
	if c == nil || cam == nil {
		return
	}
	sw, sh := c.SubWidth(), c.SubHeight()
	for _, tr := range trails {
		n := len(tr.Points)
		for r := 0; r+1 < n; r++ {
			a, b := tr.Points[r], tr.Points[r+1]
			if !a.IsFinite() || !b.IsFinite() {
				continue
			}
			x1, y1, _, v1 := cam.Project(FromPoint(a), sw, sh)
			x2, y2, _, v2 := cam.Project(FromPoint(b), sw, sh)
			if !v1 || !v2 {
				continue
			}
			var col lipgloss.Color
			if color != nil {
				col = color(r, n)
			}
			c.DrawLine(int(x1), int(y1), int(x2), int(y2), col)
		}
		if n == 1 && tr.Points[0].IsFinite() {
			if x, y, _, ok := cam.Project(FromPoint(tr.Points[0]), sw, sh); ok {
				var col lipgloss.Color
				if color != nil {
					col = color(0, 1)
				}
				c.SetColor(int(x), int(y), col)
			}
		}
	}
}
