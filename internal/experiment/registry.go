package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/episim/internal/epidemic"
	"github.com/san-kum/episim/internal/metrics"
)

// Registry maps metric names to constructors. Metrics are stateful, so every
// runner gets fresh instances.
type Registry struct {
	metrics map[string]func() epidemic.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() epidemic.Metric),
	}

	r.metrics["peak_infected"] = func() epidemic.Metric { return metrics.NewPeakInfected() }
	r.metrics["peak_day"] = func() epidemic.Metric { return metrics.NewPeakDay() }
	r.metrics["attack_rate"] = func() epidemic.Metric { return metrics.NewAttackRate() }
	r.metrics["known_share"] = func() epidemic.Metric { return metrics.NewKnownShare() }

	return r
}

func (r *Registry) GetMetric(name string) (epidemic.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
