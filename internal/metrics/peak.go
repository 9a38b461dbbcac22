package metrics

import "github.com/san-kum/episim/internal/epidemic"

// PeakInfected tracks the largest number of simultaneously active cases.
type PeakInfected struct {
	name string
	peak int
}

func NewPeakInfected() *PeakInfected {
	return &PeakInfected{name: "peak_infected"}
}

func (p *PeakInfected) Name() string {
	return p.name
}

func (p *PeakInfected) Observe(s epidemic.DaySnapshot) {
	if s.Infected > p.peak {
		p.peak = s.Infected
	}
}

func (p *PeakInfected) Value() float64 {
	return float64(p.peak)
}

func (p *PeakInfected) Reset() {
	p.peak = 0
}

// PeakDay is the first day on which the peak was reached.
type PeakDay struct {
	name string
	peak int
	day  int
}

func NewPeakDay() *PeakDay {
	return &PeakDay{name: "peak_day"}
}

func (p *PeakDay) Name() string {
	return p.name
}

func (p *PeakDay) Observe(s epidemic.DaySnapshot) {
	if s.Infected > p.peak {
		p.peak = s.Infected
		p.day = s.Day
	}
}

func (p *PeakDay) Value() float64 {
	return float64(p.day)
}

func (p *PeakDay) Reset() {
	p.peak = 0
	p.day = 0
}
