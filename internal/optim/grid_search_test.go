package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/experiment"
	"github.com/san-kum/attractors/internal/metrics"
	"github.com/san-kum/attractors/internal/sim"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Trajectories = 8
	cfg.TrailLength = 4
	cfg.Steps = 200
	return cfg
}

func TestLinspace(t *testing.T) {
	got := Linspace(1, 2, 5)
	want := []float64{1, 1.25, 1.5, 1.75, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Linspace = %v, want %v", got, want)
		}
	}
	if got := Linspace(3, 9, 1); len(got) != 1 || got[0] != 3 {
		t.Errorf("single point Linspace = %v", got)
	}
}

func TestSearch_KeepsFirstOnTies(t *testing.T) {
	g := NewGridSearch([]string{"c"}, [][]float64{{1, 2, 3}}, false)

	best, val, err := g.Search(context.Background(), ConfigBuilder(smallConfig(), "escaped"), "escaped")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if val != 0 {
		t.Errorf("expected no escapes, got %f", val)
	}
	if best["c"] != 1 {
		t.Errorf("expected first grid point on ties, got %v", best)
	}
}

func TestSearch_Maximize(t *testing.T) {
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := smallConfig()
		cfg.Trajectories = 50
		cfg.Steps = 1
		cfg.Dt = 1e-6
		cfg.Min, cfg.Max = -float32(params["r"]), float32(params["r"])
		exp, err := experiment.New(cfg)
		if err != nil {
			return nil, err
		}
		exp.Setup([]sim.Metric{metrics.NewExtent()})
		return exp, nil
	}

	g := NewGridSearch([]string{"r"}, [][]float64{{1, 5, 10}}, true)
	best, val, err := g.Search(context.Background(), build, "extent")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if best["r"] != 10 {
		t.Errorf("expected r=10, got %v (extent %f)", best, val)
	}
	if val <= 5 || val > 10.01 {
		t.Errorf("extent %f outside the widest cube", val)
	}
}

func TestSearch_AllPointsFail(t *testing.T) {
	g := NewGridSearch([]string{"nope"}, [][]float64{{1, 2}}, false)

	_, _, err := g.Search(context.Background(), ConfigBuilder(smallConfig(), "spread"), "spread")
	if !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestSearch_MismatchedRanges(t *testing.T) {
	g := NewGridSearch([]string{"a", "b"}, [][]float64{{1}}, false)
	if _, _, err := g.Search(context.Background(), ConfigBuilder(smallConfig(), "spread"), "spread"); err == nil {
		t.Error("expected error for mismatched ranges")
	}
}

func TestSearch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch([]string{"c"}, [][]float64{{1, 2}}, false)
	if _, _, err := g.Search(ctx, ConfigBuilder(smallConfig(), "spread"), "spread"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
