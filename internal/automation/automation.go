package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/experiment"
	"github.com/san-kum/attractors/internal/export"
	"github.com/san-kum/attractors/internal/sim"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`

	// Dir resolves relative save_as paths; LoadScenario sets it to the
	// scenario file's directory.
	Dir string `yaml:"-"`
}

// ScenarioStep is a single run. Zero fields keep the base configuration
// (or the preset's value when one is named).
type ScenarioStep struct {
	Variant      string             `yaml:"variant"`
	Preset       string             `yaml:"preset"`
	Trajectories int                `yaml:"trajectories"`
	TrailLength  int                `yaml:"trail_length"`
	Dt           float32            `yaml:"dt"`
	Steps        int                `yaml:"steps"`
	Seed         uint64             `yaml:"seed"`
	Params       map[string]float64 `yaml:"params"`
	SaveAs       string             `yaml:"save_as"`
}

// StepResult pairs a finished step with its simulation result.
type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	Result *sim.Result
	Saved  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	scenario.Dir = filepath.Dir(path)

	return &scenario, nil
}

// Config resolves the step against base.
func (s ScenarioStep) Config(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if s.Variant != "" && s.Variant != cfg.Variant {
		cfg.Variant = s.Variant
		cfg.Params = nil
	}
	if s.Preset != "" {
		p := config.GetPreset(cfg.Variant, s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %s for %s", s.Preset, cfg.Variant)
		}
		cfg.Dt, cfg.Min, cfg.Max, cfg.Params = p.Dt, p.Min, p.Max, p.Params
	}
	if s.Trajectories != 0 {
		cfg.Trajectories = s.Trajectories
	}
	if s.TrailLength != 0 {
		cfg.TrailLength = s.TrailLength
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.Steps != 0 {
		cfg.Steps = s.Steps
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if len(s.Params) > 0 && cfg.Params == nil {
		cfg.Params = make(map[string]float64, len(s.Params))
	}
	for k, v := range s.Params {
		cfg.Params[k] = v
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order, stopping at the first failure.
// Results of the steps that completed are returned alongside the error.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))
	registry := experiment.NewRegistry()

	for i, step := range scenario.Steps {
		cfg, err := step.Config(base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		slog.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "variant", cfg.Variant)

		exp, err := experiment.New(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		exp.Setup(registry.DefaultMetrics())

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: step, Config: cfg, Result: result}
		if step.SaveAs != "" {
			path := step.SaveAs
			if !filepath.IsAbs(path) {
				path = filepath.Join(scenario.Dir, path)
			}
			if err := save(path, exp, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.Saved = path
		}

		results = append(results, sr)
	}

	return results, nil
}

// save writes the step's trails in the format named by the file extension.
func save(path string, exp *experiment.Experiment, result *sim.Result) error {
	cfg := exp.Config()
	trails := exp.Attractor().Trails()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		svg := export.TrailsToSVG(trails, export.FrameTrails(trails), 800, 800, exp.Gradient())
		return os.WriteFile(path, []byte(svg), 0644)
	case ".csv":
		return export.ExportCSV(path, trails)
	case ".json":
		return export.ExportJSON(path, export.NewSnapshot(cfg.Variant, cfg.Seed, cfg.Dt, exp.Attractor(), result))
	default:
		return fmt.Errorf("unsupported output %q (want .svg, .csv or .json)", path)
	}
}
