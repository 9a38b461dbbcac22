package epidemic

// DaySnapshot is the aggregate state recorded after a simulated day.
type DaySnapshot struct {
	Day        int
	Population int
	Census
}

type Metric interface {
	Name() string
	Observe(s DaySnapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnDay(s DaySnapshot)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(s DaySnapshot)

func (f ObserverFunc) OnDay(s DaySnapshot) { f(s) }

type Result struct {
	InfectedOverTime []int
	TotalCases       int
	Days             int
	// Extinct is set when the run stopped because nobody was infected.
	Extinct bool
	Metrics map[string]float64
}
