package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/attractors/internal/attractor"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/source"
)

// decay pulls every coordinate toward zero: d = -p*dt.
type decay struct{}

func (decay) Derivatives(x, y, z, dt float32) (float32, float32, float32) {
	return -x * dt, -y * dt, -z * dt
}

func newTestAttractor(t *testing.T, n int) *attractor.Attractor {
	t.Helper()
	points := make([]dynamo.Point, n)
	for i := range points {
		points[i] = dynamo.Point{X: 1, Y: 1, Z: 1}
	}
	a, err := attractor.NewFromPoints(decay{}, points, attractor.WithTrailLength(8))
	if err != nil {
		t.Fatalf("attractor: %v", err)
	}
	return a
}

func TestSimulatorRun(t *testing.T) {
	a := newTestAttractor(t, 2)
	s := New(a)

	result, err := s.Run(context.Background(), Config{Dt: 0.1, Steps: 10, SampleEvery: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Steps != 10 {
		t.Errorf("expected 10 steps, got %d", result.Steps)
	}
	if len(result.Series) != 11 {
		t.Errorf("expected 11 samples, got %d", len(result.Series))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if a.Ticks() != 10 {
		t.Errorf("expected attractor to tick 10 times, got %d", a.Ticks())
	}

	// (1-0.1)^10
	final := result.Series[len(result.Series)-1].X
	if diff := float64(final) - 0.3486784; diff > 1e-4 || diff < -1e-4 {
		t.Errorf("expected final x ~0.3487, got %.6f", final)
	}
}

func TestSimulatorSampling(t *testing.T) {
	a := newTestAttractor(t, 1)
	s := New(a)

	result, err := s.Run(context.Background(), Config{Dt: 0.1, Steps: 10, SampleEvery: 5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Series) != 3 {
		t.Errorf("expected 3 samples, got %d", len(result.Series))
	}

	result, err = s.Run(context.Background(), Config{Dt: 0.1, Steps: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Series) != 0 {
		t.Errorf("expected sampling disabled, got %d samples", len(result.Series))
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(newTestAttractor(t, 1))

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Steps: 10}},
		{"zero steps", Config{Dt: 0.1, Steps: 0}},
		{"negative steps", Config{Dt: 0.1, Steps: -1}},
		{"negative sampling", Config{Dt: 0.1, Steps: 1, SampleEvery: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), tt.cfg)
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSimulatorNegativeDt(t *testing.T) {
	s := New(newTestAttractor(t, 1))

	result, err := s.Run(context.Background(), Config{Dt: -0.1, Steps: 1, SampleEvery: 1})
	if err != nil {
		t.Fatalf("negative dt should be accepted: %v", err)
	}
	if got := result.Series[1].X; got < 1.09 || got > 1.11 {
		t.Errorf("expected x ~1.1 after a backwards step, got %f", got)
	}
}

func TestSimulatorWatchOutOfRange(t *testing.T) {
	s := New(newTestAttractor(t, 2))

	_, err := s.Run(context.Background(), Config{Dt: 0.1, Steps: 1, Watch: 2})
	var simErr SimError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected SimError, got %v", err)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(a *attractor.Attractor) {
	t.count++
	t.sum += float64(a.Current(0).X)
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

func TestSimulatorMetrics(t *testing.T) {
	s := New(newTestAttractor(t, 1))

	metric := &testMetric{}
	s.AddMetric(metric)

	result, err := s.Run(context.Background(), Config{Dt: 0.1, Steps: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}

	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
}

func TestSimulatorObservers(t *testing.T) {
	s := New(newTestAttractor(t, 1))

	var steps []int
	s.AddObserver(ObserverFunc(func(a *attractor.Attractor, step int) {
		steps = append(steps, step)
	}))

	if _, err := s.Run(context.Background(), Config{Dt: 0.1, Steps: 3}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(steps) != 3 || steps[0] != 0 || steps[2] != 2 {
		t.Errorf("unexpected observer steps %v", steps)
	}
}

func TestSimulatorCancel(t *testing.T) {
	s := New(newTestAttractor(t, 1))

	ctx, cancel := context.WithCancel(context.Background())
	s.AddObserver(ObserverFunc(func(a *attractor.Attractor, step int) {
		if step == 4 {
			cancel()
		}
	}))

	result, err := s.Run(ctx, Config{Dt: 0.1, Steps: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.Steps != 5 {
		t.Errorf("expected 5 completed steps, got %d", result.Steps)
	}
}

func TestEnsembleRun(t *testing.T) {
	build := func(seed uint64) (*attractor.Attractor, error) {
		return attractor.New(decay{}, source.NewUniform(seed),
			attractor.WithTrajectories(4), attractor.WithTrailLength(4))
	}
	e, err := NewEnsemble(build, func() []Metric { return []Metric{&testMetric{}} }, 3, 1)
	if err != nil {
		t.Fatalf("NewEnsemble: %v", err)
	}

	results, err := e.Run(context.Background(), Config{Dt: 0.01, Steps: 20, SampleEvery: 10})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Steps != 20 {
			t.Errorf("run %d: expected 20 steps, got %d", i, r.Steps)
		}
		if _, ok := r.Metrics["test"]; !ok {
			t.Errorf("run %d: metric missing", i)
		}
	}
	if results[0].Series[0] == results[1].Series[0] {
		t.Error("different seeds produced identical starting points")
	}
}

func TestEnsembleBuildError(t *testing.T) {
	build := func(seed uint64) (*attractor.Attractor, error) {
		return attractor.New(decay{}, source.NewUniform(seed), attractor.WithTrajectories(0))
	}
	e, err := NewEnsemble(build, nil, 2, 0)
	if err != nil {
		t.Fatalf("NewEnsemble: %v", err)
	}

	if _, err := e.Run(context.Background(), Config{Dt: 0.01, Steps: 1}); err == nil {
		t.Error("expected build error")
	}
}

func TestNewEnsembleRejectsInvalid(t *testing.T) {
	build := func(seed uint64) (*attractor.Attractor, error) { return nil, nil }

	tests := []struct {
		name    string
		build   Builder
		numRuns int
		field   string
	}{
		{"zero runs", build, 0, "runs"},
		{"negative runs", build, -3, "runs"},
		{"nil builder", nil, 2, "builder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEnsemble(tt.build, nil, tt.numRuns, 0)
			if e != nil {
				t.Error("expected nil ensemble")
			}
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			var ce *dynamo.ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("expected ConfigError on %s, got %v", tt.field, err)
			}
		})
	}
}
