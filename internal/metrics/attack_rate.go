package metrics

import "github.com/san-kum/episim/internal/epidemic"

// AttackRate is the share of the population ever infected, as of the last
// observed day.
type AttackRate struct {
	name  string
	cases int
	size  int
}

func NewAttackRate() *AttackRate {
	return &AttackRate{name: "attack_rate"}
}

func (a *AttackRate) Name() string {
	return a.name
}

func (a *AttackRate) Observe(s epidemic.DaySnapshot) {
	a.cases = s.TotalCases()
	a.size = s.Population
}

func (a *AttackRate) Value() float64 {
	if a.size == 0 {
		return 0
	}
	return float64(a.cases) / float64(a.size)
}

func (a *AttackRate) Reset() {
	a.cases = 0
	a.size = 0
}
