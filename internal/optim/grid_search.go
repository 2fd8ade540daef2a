package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/experiment"
	"github.com/san-kum/attractors/internal/sim"
)

// GridSearch runs one experiment per point of the cartesian product of
// coefficient ranges and keeps the best metric value.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	maximize   bool
}

func NewGridSearch(params []string, ranges [][]float64, maximize bool) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, maximize: maximize}
}

// Linspace returns n evenly spaced values from min to max inclusive.
func Linspace(min, max float64, n int) []float64 {
	if n <= 1 {
		return []float64{min}
	}
	out := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range out {
		out[i] = min + float64(i)*step
	}
	return out
}

// Builder constructs the experiment for one grid point.
type Builder func(params map[string]float64) (*experiment.Experiment, error)

// ConfigBuilder returns a Builder that applies each grid point on top of
// base and attaches the named metric.
func ConfigBuilder(base *config.Config, metricName string) Builder {
	registry := experiment.NewRegistry()
	return func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := base.Clone()
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(params))
		}
		for k, v := range params {
			cfg.Params[k] = v
		}
		m, err := registry.GetMetric(metricName)
		if err != nil {
			return nil, err
		}
		exp, err := experiment.New(cfg)
		if err != nil {
			return nil, err
		}
		exp.Setup([]sim.Metric{m})
		return exp, nil
	}
}

// Search evaluates every grid point. Points whose experiment cannot be
// built or whose metric is not finite are skipped; if none remain the first
// failure is returned.
func (g *GridSearch) Search(ctx context.Context, build Builder, metricName string) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	s := &search{build: build, metric: metricName, maximize: g.maximize}
	if g.maximize {
		s.best = math.Inf(-1)
	} else {
		s.best = math.Inf(1)
	}

	g.searchRecursive(ctx, 0, make(map[string]float64), s)

	if err := ctx.Err(); err != nil {
		return s.bestParams, s.best, err
	}
	if s.bestParams == nil {
		if s.firstErr == nil {
			s.firstErr = fmt.Errorf("optim: no finite %s value in grid", metricName)
		}
		return nil, 0, s.firstErr
	}
	return s.bestParams, s.best, nil
}

type search struct {
	build      Builder
	metric     string
	maximize   bool
	best       float64
	bestParams map[string]float64
	firstErr   error
}

func (s *search) better(v float64) bool {
	if s.maximize {
		return v > s.best
	}
	return v < s.best
}

func (s *search) fail(err error) {
	if s.firstErr == nil {
		s.firstErr = err
	}
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, s *search) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		exp, err := s.build(current)
		if err != nil {
			s.fail(err)
			return
		}

		result, err := exp.Run(ctx)
		if err != nil {
			s.fail(err)
			return
		}

		val, ok := result.Metrics[s.metric]
		if !ok {
			s.fail(fmt.Errorf("optim: metric %s not reported", s.metric))
			return
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return
		}
		if s.bestParams == nil || s.better(val) {
			s.best = val
			s.bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				s.bestParams[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, s)
	}
}
