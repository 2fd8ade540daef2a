package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/attractors/internal/attractor"
	"github.com/san-kum/attractors/internal/colormap"
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/source"
)

// Experiment wires a configuration into an attractor, its simulator and the
// trail gradient shared by every renderer.
type Experiment struct {
	cfg       *config.Config
	attr      *attractor.Attractor
	simulator *sim.Simulator
	gradient  colormap.Gradient
}

func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	attr, err := Build(cfg, cfg.Seed)
	if err != nil {
		return nil, err
	}

	gradient := colormap.DefaultGradient()
	gradient.HueStart = cfg.HueStart
	gradient.HueEnd = cfg.HueEnd

	return &Experiment{
		cfg:       cfg,
		attr:      attr,
		simulator: sim.New(attr),
		gradient:  gradient,
	}, nil
}

// Build constructs a fresh attractor for cfg seeded with seed.
func Build(cfg *config.Config, seed uint64) (*attractor.Attractor, error) {
	dyn, err := cfg.Dynamics()
	if err != nil {
		return nil, err
	}

	attr, err := attractor.New(dyn, source.NewUniform(seed),
		attractor.WithTrajectories(cfg.Trajectories),
		attractor.WithTrailLength(cfg.TrailLength),
		attractor.WithBounds(cfg.Min, cfg.Max),
		attractor.WithParallel(cfg.Workers),
	)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", cfg.Variant, err)
	}
	return attr, nil
}

// Builder adapts Build for ensembles: each member gets cfg with its own seed.
func Builder(cfg *config.Config) sim.Builder {
	return func(seed uint64) (*attractor.Attractor, error) {
		return Build(cfg, seed)
	}
}

func (e *Experiment) Setup(metrics []sim.Metric) {
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.simulator.Run(ctx, e.SimConfig())
}

// SimConfig is the driver configuration derived from the experiment.
func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Dt:          e.cfg.Dt,
		Steps:       e.cfg.Steps,
		SampleEvery: 1,
	}
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) Attractor() *attractor.Attractor { return e.attr }
func (e *Experiment) Gradient() colormap.Gradient     { return e.gradient }
func (e *Experiment) Config() *config.Config          { return e.cfg }
