package epidemic

import "testing"

// fixedRand returns scripted values; unscripted draws fall back to the
// lower bound of their range.
type fixedRand struct {
	floats   []float64
	ranges   []int
	poissons []int
}

func (f *fixedRand) Float64() float64 {
	if len(f.floats) == 0 {
		return 0
	}
	v := f.floats[0]
	f.floats = f.floats[1:]
	return v
}

func (f *fixedRand) Bernoulli(p float64) bool { return f.Float64() < p }

func (f *fixedRand) IntN(n int) int { return 0 }

func (f *fixedRand) IntRange(lo, hi int) int {
	if len(f.ranges) == 0 {
		return lo
	}
	v := f.ranges[0]
	f.ranges = f.ranges[1:]
	if v < lo || v > hi {
		panic("fixedRand: scripted value outside range")
	}
	return v
}

func (f *fixedRand) Sample(n, k int) []int {
	out := make([]int, k)
	for i := range out {
		out[i] = i
	}
	return out
}

func (f *fixedRand) Poisson(lambda float64) int {
	if len(f.poissons) == 0 {
		return int(lambda)
	}
	v := f.poissons[0]
	f.poissons = f.poissons[1:]
	return v
}

var allStatuses = []Status{NotInfected, Infected, Recovered}

func TestNewPerson(t *testing.T) {
	healthy := NewPerson(&fixedRand{floats: []float64{0.9}})
	if healthy.IsDenier() {
		t.Error("draw above denier ratio should not make a denier")
	}
	if healthy.Status() != NotInfected || healthy.KnowsInfected() {
		t.Errorf("new person should be healthy and unaware, got %v", healthy.Status())
	}
	if healthy.IncubationDays() != 0 || healthy.DaysUntilRecovery() != 0 {
		t.Error("new person should have zero counters")
	}
	if healthy.Household() != -1 {
		t.Errorf("expected no household, got %d", healthy.Household())
	}

	denier := NewPerson(&fixedRand{floats: []float64{0.1}})
	if !denier.IsDenier() {
		t.Error("draw below denier ratio should make a denier")
	}
}

func TestPerson_IsInfected(t *testing.T) {
	for _, st := range allStatuses {
		p := &Person{status: st}
		if got := p.IsInfected(); got != (st == Infected) {
			t.Errorf("status %v: IsInfected() = %v", st, got)
		}
	}
}

func TestPerson_LeavesHouse(t *testing.T) {
	for _, st := range allStatuses {
		for _, knows := range []bool{false, true} {
			for _, denier := range []bool{false, true} {
				p := &Person{status: st, knowsInfected: knows, isDenier: denier}
				want := !(st == Infected && knows && !denier)
				if got := p.LeavesHouse(); got != want {
					t.Errorf("status=%v knows=%v denier=%v: LeavesHouse() = %v, want %v",
						st, knows, denier, got, want)
				}
			}
		}
	}
}

func TestPerson_Infect(t *testing.T) {
	tests := []struct {
		name     string
		ranges   []int
		incub    int
		recovery int
	}{
		{"shortest", []int{2, 4}, 2, 4},
		{"longest incubation", []int{5, 7}, 5, 7},
		{"longest recovery", []int{3, 10}, 3, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Person{}
			p.Infect(&fixedRand{ranges: tt.ranges})
			if p.Status() != Infected {
				t.Fatalf("expected infected, got %v", p.Status())
			}
			if p.IncubationDays() != tt.incub || p.DaysUntilRecovery() != tt.recovery {
				t.Errorf("counters = (%d, %d), want (%d, %d)",
					p.IncubationDays(), p.DaysUntilRecovery(), tt.incub, tt.recovery)
			}
		})
	}
}

func TestPerson_InfectBounds(t *testing.T) {
	rng := NewSource(1, 2)
	for i := 0; i < 1000; i++ {
		p := &Person{}
		p.Infect(rng)
		if p.incubationDays < 2 || p.incubationDays > 5 {
			t.Fatalf("incubation %d outside [2, 5]", p.incubationDays)
		}
		if p.daysUntilRecovery < p.incubationDays+2 || p.daysUntilRecovery > 10 {
			t.Fatalf("recovery %d outside [%d, 10]", p.daysUntilRecovery, p.incubationDays+2)
		}
	}
}

func TestPerson_InfectIdempotent(t *testing.T) {
	for _, st := range []Status{Infected, Recovered} {
		p := &Person{status: st, incubationDays: 1, daysUntilRecovery: 3}
		p.Infect(&fixedRand{ranges: []int{5, 9}})
		if p.Status() != st || p.IncubationDays() != 1 || p.DaysUntilRecovery() != 3 {
			t.Errorf("status %v: Infect changed state to %+v", st, *p)
		}
	}
}

func TestPerson_BeTested(t *testing.T) {
	for _, st := range allStatuses {
		for _, knows := range []bool{false, true} {
			for incubation := 0; incubation < 3; incubation++ {
				p := &Person{status: st, knowsInfected: knows, incubationDays: incubation}
				p.BeTested()

				var want bool
				switch {
				case st != Infected:
					want = false
				case incubation == 0:
					want = true
				default:
					want = knows
				}
				if p.KnowsInfected() != want {
					t.Errorf("status=%v knows=%v incubation=%d: KnowsInfected() = %v, want %v",
						st, knows, incubation, p.KnowsInfected(), want)
				}
			}
		}
	}
}

func TestPerson_Age(t *testing.T) {
	for _, st := range allStatuses {
		for incubation := 0; incubation < 3; incubation++ {
			for recovery := 0; recovery < 3; recovery++ {
				p := &Person{status: st, incubationDays: incubation, daysUntilRecovery: recovery, knowsInfected: true}
				p.Age()

				if st != Infected {
					if p.Status() != st || p.IncubationDays() != incubation || p.DaysUntilRecovery() != recovery {
						t.Errorf("status %v: Age changed a non-infected person: %+v", st, *p)
					}
					continue
				}

				if p.IncubationDays() != max(0, incubation-1) {
					t.Errorf("incubation %d -> %d", incubation, p.IncubationDays())
				}
				if p.DaysUntilRecovery() != max(0, recovery-1) {
					t.Errorf("recovery %d -> %d", recovery, p.DaysUntilRecovery())
				}
				if p.DaysUntilRecovery() == 0 {
					if p.Status() != Recovered || p.KnowsInfected() {
						t.Errorf("expected recovered and unaware, got %v knows=%v", p.Status(), p.KnowsInfected())
					}
				} else if p.Status() != Infected {
					t.Errorf("expected still infected, got %v", p.Status())
				}
			}
		}
	}
}

func TestStatus_String(t *testing.T) {
	tests := map[Status]string{
		NotInfected: "not_infected",
		Infected:    "infected",
		Recovered:   "recovered",
		Status(9):   "unknown",
	}
	for st, want := range tests {
		if st.String() != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(st), st.String(), want)
		}
	}
}
