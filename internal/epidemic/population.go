package epidemic

import (
	"fmt"
	"math"
)

// Census is an aggregate count of the population by infection state.
type Census struct {
	Susceptible   int
	Infected      int
	Recovered     int
	KnownInfected int
}

// TotalCases counts everyone who has ever been infected.
func (c Census) TotalCases() int { return c.Infected + c.Recovered }

// Population owns every person and the household partition over them.
type Population struct {
	people     []*Person
	households []*Household
}

// NewPopulation creates size people, partitions them into households whose
// sizes are Poisson distributed around expectedHouseholdSize, and infects
// initialInfected distinct people chosen uniformly at random.
//
// Every zero draw still creates an empty household, so the household count
// grows like size*exp(m)/m for a small mean m. Callers taking the mean from
// user input should bound it from below; the config layer rejects means under
// MinExpectedHouseholdSize.
func NewPopulation(size int, expectedHouseholdSize float64, initialInfected int, rng Rand) (*Population, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: population size must be non-negative, got %d", ErrInvalidConfig, size)
	}
	if !(expectedHouseholdSize > 0) || math.IsInf(expectedHouseholdSize, 0) {
		return nil, &ParamError{Param: "expected_household_size", Value: expectedHouseholdSize, Reason: "must be a positive finite mean"}
	}
	if initialInfected < 0 || initialInfected > size {
		return nil, fmt.Errorf("%w: initial infected must be in [0, %d], got %d", ErrInvalidConfig, size, initialInfected)
	}

	p := &Population{
		people:     make([]*Person, size),
		households: make([]*Household, 0),
	}
	for i := range p.people {
		p.people[i] = NewPerson(rng)
	}

	p.constructHouseholds(expectedHouseholdSize, rng)

	for _, i := range rng.Sample(size, initialInfected) {
		p.people[i].Infect(rng)
	}

	return p, nil
}

// constructHouseholds slices the people list into contiguous runs. Membership
// follows creation order; a zero draw produces an empty household.
func (p *Population) constructHouseholds(expectedSize float64, rng Rand) {
	assigned := 0
	for assigned < len(p.people) {
		n := rng.Poisson(expectedSize)

		start := assigned
		stop := min(assigned+n, len(p.people))

		h := newHousehold(len(p.households), p.people[start:stop:stop])
		p.households = append(p.households, h)

		assigned = stop
	}
}

func (p *Population) People() []*Person        { return p.people }
func (p *Population) Households() []*Household { return p.households }
func (p *Population) Len() int                 { return len(p.people) }

// Household resolves a person's household index.
func (p *Population) Household(index int) *Household {
	if index < 0 || index >= len(p.households) {
		return nil
	}
	return p.households[index]
}

// Infected returns the currently infected people in population order.
func (p *Population) Infected() []*Person {
	infected := make([]*Person, 0)
	for _, person := range p.people {
		if person.IsInfected() {
			infected = append(infected, person)
		}
	}
	return infected
}

func (p *Population) Counts() Census {
	var c Census
	for _, person := range p.people {
		switch person.status {
		case NotInfected:
			c.Susceptible++
		case Infected:
			c.Infected++
			if person.knowsInfected {
				c.KnownInfected++
			}
		case Recovered:
			c.Recovered++
		}
	}
	return c
}
