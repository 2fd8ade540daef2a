package analysis

import (
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/integrators"
)

type Point2D struct{ X, Y float64 }

// PhasePortrait2D is a projection of a trajectory onto two axes.
type PhasePortrait2D struct {
	XAxis, YAxis int
	Points       []Point2D
}

// Project builds a portrait from recorded points, for example a trail or a
// sampled series. Non-finite points are dropped.
func Project(points []dynamo.Point, xAxis, yAxis int) *PhasePortrait2D {
	portrait := &PhasePortrait2D{
		XAxis:  xAxis,
		YAxis:  yAxis,
		Points: make([]Point2D, 0, len(points)),
	}
	for _, p := range points {
		if !p.IsFinite() {
			continue
		}
		portrait.Points = append(portrait.Points, Point2D{
			X: float64(p.Axis(xAxis)),
			Y: float64(p.Axis(yAxis)),
		})
	}
	return portrait
}

// GeneratePhasePortrait steps a single point and records its projection.
func GeneratePhasePortrait(dyn dynamo.Dynamics, p0 dynamo.Point, xAxis, yAxis int, dt float32, steps int) *PhasePortrait2D {
	points := make([]dynamo.Point, 0, steps)
	p := p0
	for i := 0; i < steps; i++ {
		p = integrators.Euler(dyn, p, dt)
		points = append(points, p)
	}
	return Project(points, xAxis, yAxis)
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 1 || height <= 1 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := newGrid(width, height)
	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		canvas.set(col, row, '•')
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	return canvas.String()
}

// PoincareSection records points where a trajectory crosses a plane.
type PoincareSection struct {
	Points []Point2D
}

// SectionConfig selects the crossing plane (Cross = Threshold, upward) and
// the two recorded axes.
type SectionConfig struct {
	Cross     int
	Threshold float32
	XAxis     int
	YAxis     int
	Dt        float32
	Transient int
	Steps     int
}

// GeneratePoincareSection records the linearly interpolated crossing point
// every time the Cross coordinate passes Threshold going upward.
func GeneratePoincareSection(dyn dynamo.Dynamics, p0 dynamo.Point, cfg SectionConfig) *PoincareSection {
	section := &PoincareSection{
		Points: make([]Point2D, 0),
	}

	p := integrators.EulerN(dyn, p0, cfg.Dt, cfg.Transient)
	prev := p
	for i := 0; i < cfg.Steps; i++ {
		p = integrators.Euler(dyn, p, cfg.Dt)
		if !p.IsFinite() {
			break
		}

		a, b := prev.Axis(cfg.Cross), p.Axis(cfg.Cross)
		if a < cfg.Threshold && b >= cfg.Threshold {
			frac := float64((cfg.Threshold - a) / (b - a))
			lerp := func(axis int) float64 {
				u, v := float64(prev.Axis(axis)), float64(p.Axis(axis))
				return u + (v-u)*frac
			}
			section.Points = append(section.Points, Point2D{X: lerp(cfg.XAxis), Y: lerp(cfg.YAxis)})
		}
		prev = p
	}

	return section
}

// PoincareSectionToASCII converts section data to ASCII plot
func PoincareSectionToASCII(section *PoincareSection, width, height int) string {
	if section == nil || len(section.Points) == 0 {
		return "No crossings detected"
	}

	return PhasePortraitToASCII(&PhasePortrait2D{Points: section.Points}, width, height)
}
