package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/attractors/internal/metrics"
	"github.com/san-kum/attractors/internal/sim"
)

// EscapeRadius is the distance beyond which a trajectory counts as escaped
// by the default metric set.
const EscapeRadius = 1000.0

// Registry maps metric names to constructors.
type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["spread"] = func() sim.Metric { return metrics.NewSpread() }
	r.metrics["extent"] = func() sim.Metric { return metrics.NewExtent() }
	r.metrics["escaped"] = func() sim.Metric { return metrics.NewEscaped(EscapeRadius) }
	r.metrics["stability"] = func() sim.Metric { return metrics.NewStability(EscapeRadius) }

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// Metrics builds the named metrics in order.
func (r *Registry) Metrics(names []string) ([]sim.Metric, error) {
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	ms, _ := r.Metrics(r.ListMetrics())
	return ms
}
