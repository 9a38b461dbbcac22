package epidemic

import (
	"fmt"
	"math"
)

// Params are the behavioural rates of a simulation.
type Params struct {
	// MovementRatio is the probability that someone free to leave the house
	// actually goes out on a given day.
	MovementRatio float64
	// ContactRatio is the Poisson mean of outside contacts per outing.
	ContactRatio float64
	// InfectionProbability is the per-contact transmission probability.
	InfectionProbability float64
	// TestRatio is the daily probability that an infected person is tested.
	TestRatio float64
}

func DefaultParams() Params {
	return Params{
		MovementRatio:        0.25,
		ContactRatio:         1,
		InfectionProbability: 0.25,
		TestRatio:            0.5,
	}
}

func (p Params) Validate() error {
	if err := checkProbability("movement_ratio", p.MovementRatio); err != nil {
		return err
	}
	if !(p.ContactRatio >= 0) || math.IsInf(p.ContactRatio, 0) {
		return &ParamError{Param: "contact_ratio", Value: p.ContactRatio, Reason: "must be a non-negative finite mean"}
	}
	if err := checkProbability("infection_probability", p.InfectionProbability); err != nil {
		return err
	}
	return checkProbability("test_ratio", p.TestRatio)
}

// Evolution advances a Population one day at a time.
type Evolution struct {
	population *Population
	params     Params
	rng        Rand
	day        int
}

func NewEvolution(pop *Population, params Params, rng Rand) (*Evolution, error) {
	if pop == nil {
		return nil, ErrNoPopulation
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid evolution params: %w", err)
	}
	return &Evolution{population: pop, params: params, rng: rng}, nil
}

func (e *Evolution) Population() *Population { return e.population }
func (e *Evolution) Params() Params          { return e.params }

// Day returns the number of timesteps taken so far.
func (e *Evolution) Day() int { return e.day }

func (e *Evolution) NumInfected() int {
	return len(e.population.Infected())
}

// TotalCases counts active and recovered cases.
func (e *Evolution) TotalCases() int {
	total := 0
	for _, p := range e.population.people {
		if p.status != NotInfected {
			total++
		}
	}
	return total
}

// Timestep simulates a single day. The phases run in a fixed order: aging,
// outside contacts, household contacts, testing. Someone who recovers while
// aging no longer transmits that day.
func (e *Evolution) Timestep() {
	for _, p := range e.population.people {
		p.Age()
	}

	e.goOutside()
	e.goHome()
	e.test()

	e.day++
}

// haveContact evaluates transmission in both directions independently.
func (e *Evolution) haveContact(a, b *Person) {
	if a.IsInfected() && e.rng.Bernoulli(e.params.InfectionProbability) {
		b.Infect(e.rng)
	}
	if b.IsInfected() && e.rng.Bernoulli(e.params.InfectionProbability) {
		a.Infect(e.rng)
	}
}

// goOutside picks who goes out today and pairs each of them with randomly
// chosen other meeters.
func (e *Evolution) goOutside() {
	meeters := make([]*Person, 0)
	for _, p := range e.population.people {
		if p.LeavesHouse() && e.rng.Bernoulli(e.params.MovementRatio) {
			meeters = append(meeters, p)
		}
	}

	// Nobody to meet.
	if len(meeters) < 2 {
		return
	}

	for i, p := range meeters {
		contacts := e.rng.Poisson(e.params.ContactRatio)
		for c := 0; c < contacts; c++ {
			j := e.rng.IntN(len(meeters) - 1)
			if j >= i {
				j++
			}
			e.haveContact(p, meeters[j])
		}
	}
}

// goHome has every ordered pair of household members meet once, so each
// unordered pair meets twice.
func (e *Evolution) goHome() {
	for _, h := range e.population.households {
		for _, p := range h.members {
			for _, other := range h.members {
				if other != p {
					e.haveContact(p, other)
				}
			}
		}
	}
}

func (e *Evolution) test() {
	for _, p := range e.population.Infected() {
		if e.rng.Bernoulli(e.params.TestRatio) {
			p.BeTested()
		}
	}
}
