package epidemic

// DenierRatio is the probability that a new person ignores a positive test.
const DenierRatio = 0.25

const (
	minIncubationDays = 2
	maxIncubationDays = 5
	maxRecoveryDays   = 10
	// Recovery is never earlier than two days after incubation ends.
	minSymptomaticDays = 2
)

// Status is the infection state of a person.
type Status int

const (
	NotInfected Status = iota
	Infected
	Recovered
)

func (s Status) String() string {
	switch s {
	case NotInfected:
		return "not_infected"
	case Infected:
		return "infected"
	case Recovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// Person is a single agent. Recovered is terminal.
type Person struct {
	status            Status
	incubationDays    int
	daysUntilRecovery int
	knowsInfected     bool
	isDenier          bool
	household         int
}

// NewPerson creates a healthy person and draws the denier trait once.
func NewPerson(rng Rand) *Person {
	return &Person{
		isDenier:  rng.Bernoulli(DenierRatio),
		household: -1,
	}
}

func (p *Person) Status() Status         { return p.status }
func (p *Person) IncubationDays() int    { return p.incubationDays }
func (p *Person) DaysUntilRecovery() int { return p.daysUntilRecovery }
func (p *Person) KnowsInfected() bool    { return p.knowsInfected }
func (p *Person) IsDenier() bool         { return p.isDenier }

// Household returns the index of the person's household in its population,
// or -1 before households are built.
func (p *Person) Household() int { return p.household }

func (p *Person) IsInfected() bool {
	return p.status == Infected
}

// LeavesHouse reports whether the person may go outside today. Only infected
// non-deniers who know their diagnosis stay in.
func (p *Person) LeavesHouse() bool {
	if p.IsInfected() {
		return p.isDenier || !p.knowsInfected
	}
	return true
}

// Infect moves a healthy person to Infected and draws the incubation and
// recovery counters. The recovery draw depends on the incubation draw.
func (p *Person) Infect(rng Rand) {
	if p.status != NotInfected {
		return
	}
	p.status = Infected
	p.incubationDays = rng.IntRange(minIncubationDays, maxIncubationDays)
	p.daysUntilRecovery = rng.IntRange(p.incubationDays+minSymptomaticDays, maxRecoveryDays)
}

// BeTested reveals an infection once incubation is over. A negative result
// clears any earlier knowledge.
func (p *Person) BeTested() {
	if p.IsInfected() {
		if p.incubationDays == 0 {
			p.knowsInfected = true
		}
		return
	}
	p.knowsInfected = false
}

// Age advances the person's counters by one day.
func (p *Person) Age() {
	if !p.IsInfected() {
		return
	}
	p.incubationDays = max(p.incubationDays-1, 0)
	p.daysUntilRecovery = max(p.daysUntilRecovery-1, 0)

	if p.daysUntilRecovery == 0 {
		p.status = Recovered
		p.knowsInfected = false
	}
}
