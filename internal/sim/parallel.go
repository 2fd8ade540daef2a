package sim

import (
	"context"
	"sync"

	"github.com/san-kum/attractors/internal/attractor"
	"github.com/san-kum/attractors/internal/dynamo"
)

// Builder constructs an attractor for one ensemble member.
type Builder func(seed uint64) (*attractor.Attractor, error)

// Ensemble runs independent attractors, one per seed, concurrently.
type Ensemble struct {
	build     Builder
	metrics   func() []Metric
	numRuns   int
	seedStart uint64
}

// NewEnsemble returns a ConfigError when numRuns is below one or build is
// nil.
func NewEnsemble(build Builder, metrics func() []Metric, numRuns int, seedStart uint64) (*Ensemble, error) {
	if numRuns < 1 {
		return nil, &dynamo.ConfigError{Field: "runs", Value: numRuns, Reason: "must be at least 1"}
	}
	if build == nil {
		return nil, &dynamo.ConfigError{Field: "builder", Value: nil, Reason: "builder required"}
	}
	return &Ensemble{build: build, metrics: metrics, numRuns: numRuns, seedStart: seedStart}, nil
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			a, err := e.build(e.seedStart + uint64(idx))
			if err != nil {
				errs[idx] = err
				return
			}

			s := New(a)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
