package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/attractors/internal/attractor"
	"github.com/san-kum/attractors/internal/colormap"
	"github.com/san-kum/attractors/internal/viz"
)

const svgBackground = "#0a0a0a"

func svgHeader(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground)
}

// TrailsToSVG draws each trail as one <line> per segment joining ranks r
// and r+1, colored by the gradient at rank r. Segments with a non-finite or
// off-screen endpoint are left out.
func TrailsToSVG(trails []attractor.Trail, cam *viz.Camera, width, height int, gradient colormap.Gradient) string {
	var sb strings.Builder
	svgHeader(&sb, width, height)

	sb.WriteString(`<g stroke-width="1" stroke-linecap="round">` + "\n")
	for _, tr := range trails {
		n := len(tr.Points)
		for r := 0; r+1 < n; r++ {
			a, b := tr.Points[r], tr.Points[r+1]
			if !a.IsFinite() || !b.IsFinite() {
				continue
			}
			x1, y1, _, v1 := cam.Project(viz.FromPoint(a), width, height)
			x2, y2, _, v2 := cam.Project(viz.FromPoint(b), width, height)
			if !v1 || !v2 {
				continue
			}
			fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
				x1, y1, x2, y2, gradient.Hex(r, n))
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// FrameTrails returns a camera framed on the newest point of every trail.
func FrameTrails(trails []attractor.Trail) *viz.Camera {
	cam := viz.NewCamera()
	bounds := viz.NewBounds()
	for _, tr := range trails {
		for _, p := range tr.Points {
			bounds.Add(p)
		}
	}
	if !bounds.Empty() {
		cam.Frame(bounds.Lo, bounds.Hi)
	}
	return cam
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per dot in its
// cell's color.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := int(float64(canvas.SubWidth()) * scale)
	height := int(float64(canvas.SubHeight()) * scale)

	var sb strings.Builder
	svgHeader(&sb, width, height)

	dotRadius := scale * 0.4
	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			color := string(canvas.Colors[y/4][x/2])
			if color == "" {
				color = "#00ff00"
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", cx, cy, dotRadius, color)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
