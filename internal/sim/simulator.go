package sim

import (
	"context"
	"time"

	"github.com/san-kum/attractors/internal/attractor"
	"github.com/san-kum/attractors/internal/dynamo"
)

type Simulator struct {
	attr      *attractor.Attractor
	metrics   []Metric
	observers []Observer
}

func New(a *attractor.Attractor) *Simulator {
	return &Simulator{
		attr:      a,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Attractor() *attractor.Attractor { return s.attr }

// Run ticks the attractor cfg.Steps times. Cancellation is checked between
// ticks; a canceled run returns the partial result with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Watch < 0 || cfg.Watch >= s.attr.Len() {
		return nil, SimError{Step: 0, Message: "watched trajectory out of range"}
	}

	capacity := 0
	if cfg.SampleEvery > 0 {
		capacity = cfg.Steps/cfg.SampleEvery + 1
	}
	result := &Result{
		Metrics: make(map[string]float64),
		Series:  make([]dynamo.Point, 0, capacity),
		Times:   make([]float64, 0, capacity),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	start := time.Now()
	t := 0.0
	if cfg.SampleEvery > 0 {
		result.Series = append(result.Series, s.attr.Current(cfg.Watch))
		result.Times = append(result.Times, t)
	}

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		s.attr.Tick(cfg.Dt)
		t += float64(cfg.Dt)
		result.Steps++

		for _, m := range s.metrics {
			m.Observe(s.attr)
		}
		for _, obs := range s.observers {
			obs.OnTick(s.attr, i)
		}

		if cfg.SampleEvery > 0 && (i+1)%cfg.SampleEvery == 0 {
			result.Series = append(result.Series, s.attr.Current(cfg.Watch))
			result.Times = append(result.Times, t)
		}
	}

	result.Elapsed = time.Since(start)
	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
