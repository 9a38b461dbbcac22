package experiment

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/episim/internal/epidemic"
)

// Ensemble runs every scenario of an Experiment. Scenarios run concurrently,
// each on its own goroutine with private state; a single scenario is always
// sequential.
type Ensemble struct {
	exp     *Experiment
	workers int
}

func NewEnsemble(exp *Experiment, workers int) *Ensemble {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Ensemble{exp: exp, workers: workers}
}

// Run returns results in scenario order. The first failing scenario cancels
// the rest.
func (e *Ensemble) Run(ctx context.Context) ([]*epidemic.Result, error) {
	n := e.exp.cfg.Scenarios
	results := make([]*epidemic.Result, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			result, err := e.exp.RunScenario(ctx, i)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.exp.logger.Info("ensemble finished", "name", e.exp.cfg.Name, "scenarios", n)
	return results, nil
}
