package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/integrators"
)

// BifurcationPoint holds the distinct local maxima of one coordinate for a
// given parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// SweepConfig describes a parameter sweep. Transient and Record are step
// counts.
type SweepConfig struct {
	Param      string
	Min, Max   float64
	ParamSteps int
	Axis       int
	Start      dynamo.Point
	Dt         float32
	Transient  int
	Record     int
}

// BifurcationDiagram sweeps a coefficient and records the local maxima of
// one coordinate after the transient has settled. The coefficient is
// restored before returning.
func BifurcationDiagram(dyn dynamo.Dynamics, cfg SweepConfig) ([]BifurcationPoint, error) {
	tunable, ok := dyn.(dynamo.Configurable)
	if !ok {
		return nil, fmt.Errorf("%T is not configurable: %w", dyn, dynamo.ErrInvalidConfig)
	}

	orig, ok := tunable.Params()[cfg.Param]
	if !ok {
		return nil, &dynamo.ParamError{Variant: variantName(dyn), Name: cfg.Param}
	}
	defer tunable.SetParam(cfg.Param, orig)

	steps := cfg.ParamSteps
	if steps <= 1 {
		steps = 2 // Prevent division by zero
	}
	paramStep := (cfg.Max - cfg.Min) / float64(steps-1)

	results := make([]BifurcationPoint, 0, steps)
	for i := 0; i < steps; i++ {
		param := cfg.Min + float64(i)*paramStep
		if err := tunable.SetParam(cfg.Param, param); err != nil {
			return nil, err
		}

		p := integrators.EulerN(dyn, cfg.Start, cfg.Dt, cfg.Transient)

		values := make([]float64, 0, 16)
		seen := make(map[int]bool)

		prev2, prev := p.Axis(cfg.Axis), p.Axis(cfg.Axis)
		for j := 0; j < cfg.Record; j++ {
			p = integrators.Euler(dyn, p, cfg.Dt)
			cur := p.Axis(cfg.Axis)

			if prev > prev2 && prev >= cur {
				val := float64(prev)
				// Quantize to find distinct values
				key := int(val * 1000)
				if !seen[key] {
					seen[key] = true
					values = append(values, val)
				}
			}
			prev2, prev = prev, cur
		}

		results = append(results, BifurcationPoint{
			Param:  param,
			Values: values,
		})
	}

	return results, nil
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
				continue
			}
			minVal = min(minVal, v)
			maxVal = max(maxVal, v)
		}
	}
	if !foundFirst {
		return ""
	}

	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := newGrid(width, height)
	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			canvas.set(col, row, '•')
		}
	}

	return canvas.String()
}

func variantName(dyn dynamo.Dynamics) string {
	if n, ok := dyn.(dynamo.Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", dyn)
}

type grid [][]rune

func newGrid(width, height int) grid {
	g := make(grid, height)
	for i := range g {
		g[i] = []rune(strings.Repeat(" ", width))
	}
	return g
}

func (g grid) set(col, row int, r rune) {
	if row >= 0 && row < len(g) && col >= 0 && col < len(g[row]) {
		g[row][col] = r
	}
}

func (g grid) String() string {
	var sb strings.Builder
	for _, row := range g {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
