package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

const (
	DefaultVariant      = "rossler"
	DefaultTrajectories = 100
	DefaultTrailLength  = 100
	DefaultDt           = 0.001
	DefaultSteps        = 10000
	DefaultMin          = -1.0
	DefaultMax          = 1.0
	DefaultFPS          = 30
	DefaultTheme        = "default"
	DefaultHueStart     = 0.33
	DefaultHueEnd       = 0.66
)

type Config struct {
	Variant      string             `yaml:"variant"`
	Trajectories int                `yaml:"trajectories"`
	TrailLength  int                `yaml:"trail_length"`
	Dt           float32            `yaml:"dt"`
	Steps        int                `yaml:"steps"`
	Min          float32            `yaml:"min"`
	Max          float32            `yaml:"max"`
	Seed         uint64             `yaml:"seed"`
	Workers      int                `yaml:"workers"`
	FPS          int                `yaml:"fps"`
	Theme        string             `yaml:"theme"`
	HueStart     float64            `yaml:"hue_start"`
	HueEnd       float64            `yaml:"hue_end"`
	Params       map[string]float64 `yaml:"params,omitempty"`
}

// DefaultConfig mirrors the classic setup: a hundred Rossler trajectories
// with hundred point trails, seeded in a small cube around the origin.
func DefaultConfig() *Config {
	return &Config{
		Variant:      DefaultVariant,
		Trajectories: DefaultTrajectories,
		TrailLength:  DefaultTrailLength,
		Dt:           DefaultDt,
		Steps:        DefaultSteps,
		Min:          DefaultMin,
		Max:          DefaultMax,
		Seed:         1,
		FPS:          DefaultFPS,
		Theme:        DefaultTheme,
		HueStart:     DefaultHueStart,
		HueEnd:       DefaultHueEnd,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base; keys missing from the file
// keep base's values and params are merged.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}

// Validate checks every field that would otherwise fail later inside the
// engine, including coefficient names against the chosen variant.
func (c *Config) Validate() error {
	if c.Trajectories < 1 {
		return &dynamo.ConfigError{Field: "trajectories", Value: c.Trajectories, Reason: "must be at least 1"}
	}
	if c.TrailLength < 1 {
		return &dynamo.ConfigError{Field: "trail_length", Value: c.TrailLength, Reason: "must be at least 1"}
	}
	dt := float64(c.Dt)
	if c.Dt == 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return &dynamo.ConfigError{Field: "dt", Value: c.Dt, Reason: "must be finite and non-zero"}
	}
	if c.Steps < 1 {
		return &dynamo.ConfigError{Field: "steps", Value: c.Steps, Reason: "must be at least 1"}
	}
	for _, b := range []struct {
		name string
		v    float32
	}{{"min", c.Min}, {"max", c.Max}} {
		f := float64(b.v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return &dynamo.ConfigError{Field: b.name, Value: b.v, Reason: "must be finite"}
		}
	}
	if c.Workers < 0 {
		return &dynamo.ConfigError{Field: "workers", Value: c.Workers, Reason: "must not be negative"}
	}
	if c.FPS < 1 {
		return &dynamo.ConfigError{Field: "fps", Value: c.FPS, Reason: "must be at least 1"}
	}

	dyn, err := physics.Lookup(c.Variant)
	if err != nil {
		return err
	}
	return physics.Configure(dyn, c.Params)
}

// Dynamics builds the configured variant with its coefficient overrides.
func (c *Config) Dynamics() (dynamo.Dynamics, error) {
	dyn, err := physics.Lookup(c.Variant)
	if err != nil {
		return nil, err
	}
	if err := physics.Configure(dyn, c.Params); err != nil {
		return nil, err
	}
	return dyn, nil
}
