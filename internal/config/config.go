package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/episim/internal/epidemic"
)

const (
	DefaultPopulationSize        = 1000
	DefaultExpectedHouseholdSize = 2.3
	DefaultInitialInfected       = 2
	DefaultDays                  = 100
	DefaultScenarios             = 10
	DefaultUniformSeed           = 707
	DefaultPoissonSeed           = 1337

	// MinExpectedHouseholdSize bounds the number of empty households a run
	// allocates.
	MinExpectedHouseholdSize = 0.5
)

type Config struct {
	Name       string           `yaml:"name"`
	Days       int              `yaml:"days"`
	Scenarios  int              `yaml:"scenarios"`
	Seed       SeedConfig       `yaml:"seed"`
	Population PopulationConfig `yaml:"population"`
	Behavior   BehaviorConfig   `yaml:"behavior"`
}

// SeedConfig holds the base seeds of the two random streams. Scenario i uses
// base+i for both.
type SeedConfig struct {
	Uniform uint64 `yaml:"uniform"`
	Poisson uint64 `yaml:"poisson"`
}

type PopulationConfig struct {
	Size                  int     `yaml:"size"`
	ExpectedHouseholdSize float64 `yaml:"expected_household_size"`
	InitialInfected       int     `yaml:"initial_infected"`
}

type BehaviorConfig struct {
	MovementRatio        float64 `yaml:"movement_ratio"`
	ContactRatio         float64 `yaml:"contact_ratio"`
	InfectionProbability float64 `yaml:"infection_probability"`
	TestRatio            float64 `yaml:"test_ratio"`
}

func DefaultConfig() *Config {
	params := epidemic.DefaultParams()
	return &Config{
		Name:      "baseline",
		Days:      DefaultDays,
		Scenarios: DefaultScenarios,
		Seed: SeedConfig{
			Uniform: DefaultUniformSeed,
			Poisson: DefaultPoissonSeed,
		},
		Population: PopulationConfig{
			Size:                  DefaultPopulationSize,
			ExpectedHouseholdSize: DefaultExpectedHouseholdSize,
			InitialInfected:       DefaultInitialInfected,
		},
		Behavior: BehaviorConfig{
			MovementRatio:        params.MovementRatio,
			ContactRatio:         params.ContactRatio,
			InfectionProbability: params.InfectionProbability,
			TestRatio:            params.TestRatio,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the YAML file at path onto base. Fields the file does not
// set keep their value in base.
func LoadInto(path string, base *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() epidemic.Params {
	return epidemic.Params{
		MovementRatio:        c.Behavior.MovementRatio,
		ContactRatio:         c.Behavior.ContactRatio,
		InfectionProbability: c.Behavior.InfectionProbability,
		TestRatio:            c.Behavior.TestRatio,
	}
}

// ScenarioSeeds returns the uniform and Poisson seeds of scenario i.
func (c *Config) ScenarioSeeds(i int) (uint64, uint64) {
	return c.Seed.Uniform + uint64(i), c.Seed.Poisson + uint64(i)
}

// Validate rejects configurations the engine would refuse, before any
// scenario starts.
func (c *Config) Validate() error {
	var errs []error
	if c.Days < 0 {
		errs = append(errs, fmt.Errorf("%w: days must be non-negative, got %d", epidemic.ErrInvalidConfig, c.Days))
	}
	if c.Scenarios < 1 {
		errs = append(errs, fmt.Errorf("%w: scenarios must be at least 1, got %d", epidemic.ErrInvalidConfig, c.Scenarios))
	}
	p := c.Population
	if p.Size < 0 {
		errs = append(errs, fmt.Errorf("%w: population size must be non-negative, got %d", epidemic.ErrInvalidConfig, p.Size))
	}
	if !(p.ExpectedHouseholdSize >= MinExpectedHouseholdSize) {
		errs = append(errs, &epidemic.ParamError{
			Param:  "expected_household_size",
			Value:  p.ExpectedHouseholdSize,
			Reason: fmt.Sprintf("must be at least %g", MinExpectedHouseholdSize),
		})
	}
	if p.InitialInfected < 0 || p.InitialInfected > p.Size {
		errs = append(errs, fmt.Errorf("%w: initial infected must be in [0, %d], got %d", epidemic.ErrInvalidConfig, p.Size, p.InitialInfected))
	}
	if err := c.Params().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
