package epidemic

import (
	"context"
	"fmt"
)

// Runner drives an Evolution for a bounded number of days.
type Runner struct {
	evolution        *Evolution
	infectedOverTime []int
	metrics          []Metric
	observers        []Observer
}

func NewRunner(evo *Evolution) *Runner {
	return &Runner{
		evolution:        evo,
		infectedOverTime: make([]int, 0),
		metrics:          make([]Metric, 0),
		observers:        make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Evolution() *Evolution { return r.evolution }

// InfectedOverTime returns the infected count recorded after each day.
func (r *Runner) InfectedOverTime() []int { return r.infectedOverTime }

// Run simulates up to maxDays days and stops early once nobody is infected.
// The context is only consulted between days. A second Run continues from the
// current population state but records a fresh series.
func (r *Runner) Run(ctx context.Context, maxDays int) (*Result, error) {
	if maxDays < 0 {
		return nil, fmt.Errorf("%w: max days must be non-negative, got %d", ErrInvalidConfig, maxDays)
	}

	r.Reset()
	result := &Result{Metrics: make(map[string]float64)}

	for i := 0; i < maxDays; i++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		// An empty population has nothing to record.
		if r.evolution.Population().Len() == 0 {
			break
		}

		if _, active := r.Step(); !active {
			result.Extinct = true
			break
		}
	}

	r.finish(result)
	return result, nil
}

// Reset clears the recorded series and the metrics. The population is not
// rewound.
func (r *Runner) Reset() {
	r.infectedOverTime = nil
	for _, m := range r.metrics {
		m.Reset()
	}
}

// Step simulates and records a single day. It reports whether anyone is
// still infected afterwards.
func (r *Runner) Step() (DaySnapshot, bool) {
	pop := r.evolution.Population()
	r.evolution.Timestep()

	census := pop.Counts()
	r.infectedOverTime = append(r.infectedOverTime, census.Infected)

	snap := DaySnapshot{Day: r.evolution.Day(), Population: pop.Len(), Census: census}
	for _, m := range r.metrics {
		m.Observe(snap)
	}
	for _, obs := range r.observers {
		obs.OnDay(snap)
	}

	return snap, census.Infected > 0
}

// Result summarises the days recorded so far.
func (r *Runner) Result() *Result {
	result := &Result{Metrics: make(map[string]float64)}
	r.finish(result)
	n := len(r.infectedOverTime)
	result.Extinct = n > 0 && r.infectedOverTime[n-1] == 0
	return result
}

func (r *Runner) finish(result *Result) {
	result.InfectedOverTime = r.infectedOverTime
	result.TotalCases = r.evolution.TotalCases()
	result.Days = len(r.infectedOverTime)
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
