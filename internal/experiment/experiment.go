package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/epidemic"
	"github.com/san-kum/episim/internal/logging"
)

// Experiment builds and runs the scenarios described by a Config.
type Experiment struct {
	cfg      *config.Config
	registry *Registry
	metrics  []string
	logger   *slog.Logger
}

type Option func(*Experiment)

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

// WithMetrics selects registered metrics by name.
func WithMetrics(names ...string) Option {
	return func(e *Experiment) { e.metrics = names }
}

func New(cfg *config.Config, opts ...Option) (*Experiment, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", epidemic.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		logger:   logging.Discard(),
	}
	e.metrics = e.registry.ListMetrics()
	for _, opt := range opts {
		opt(e)
	}

	for _, name := range e.metrics {
		if _, err := e.registry.GetMetric(name); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Setup builds the runner of scenario i without running it. Each scenario
// gets its own random source, population and metric instances.
func (e *Experiment) Setup(i int) (*epidemic.Runner, error) {
	uniform, poisson := e.cfg.ScenarioSeeds(i)
	rng := epidemic.NewSource(uniform, poisson)

	p := e.cfg.Population
	pop, err := epidemic.NewPopulation(p.Size, p.ExpectedHouseholdSize, p.InitialInfected, rng)
	if err != nil {
		return nil, fmt.Errorf("scenario %d: %w", i, err)
	}

	evo, err := epidemic.NewEvolution(pop, e.cfg.Params(), rng)
	if err != nil {
		return nil, fmt.Errorf("scenario %d: %w", i, err)
	}

	runner := epidemic.NewRunner(evo)
	for _, name := range e.metrics {
		m, err := e.registry.GetMetric(name)
		if err != nil {
			return nil, err
		}
		runner.AddMetric(m)
	}
	return runner, nil
}

// RunScenario runs scenario i to completion.
func (e *Experiment) RunScenario(ctx context.Context, i int, observers ...epidemic.Observer) (*epidemic.Result, error) {
	runner, err := e.Setup(i)
	if err != nil {
		return nil, err
	}
	for _, obs := range observers {
		runner.AddObserver(obs)
	}

	uniform, poisson := e.cfg.ScenarioSeeds(i)
	e.logger.Debug("scenario started", "name", e.cfg.Name, "scenario", i,
		"uniform_seed", uniform, "poisson_seed", poisson)

	result, err := runner.Run(ctx, e.cfg.Days)
	if err != nil {
		return result, fmt.Errorf("scenario %d: %w", i, err)
	}

	e.logger.Info("scenario finished", "name", e.cfg.Name, "scenario", i,
		"days", result.Days, "total_cases", result.TotalCases, "extinct", result.Extinct)
	return result, nil
}
