package experiment

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/episim/internal/epidemic"
)

// Summary aggregates the outcome of an ensemble.
type Summary struct {
	Scenarios int
	MeanTotal float64
	StdTotal  float64
	MinTotal  int
	MaxTotal  int
	MeanDays  float64
	MaxPeak   int
	Extinct   int
	Totals    []int
}

func Summarize(results []*epidemic.Result) Summary {
	s := Summary{Scenarios: len(results), Totals: make([]int, 0, len(results))}
	if len(results) == 0 {
		return s
	}

	totals := make([]float64, len(results))
	days := make([]float64, len(results))
	for i, r := range results {
		s.Totals = append(s.Totals, r.TotalCases)
		totals[i] = float64(r.TotalCases)
		days[i] = float64(r.Days)
		for _, n := range r.InfectedOverTime {
			s.MaxPeak = max(s.MaxPeak, n)
		}
		if r.Extinct {
			s.Extinct++
		}
	}

	s.MeanTotal, s.StdTotal = stat.PopMeanStdDev(totals, nil)
	s.MeanDays = stat.Mean(days, nil)
	s.MinTotal = int(floats.Min(totals))
	s.MaxTotal = int(floats.Max(totals))

	return s
}

// Curves extracts the infected series of every result.
func Curves(results []*epidemic.Result) [][]int {
	curves := make([][]int, len(results))
	for i, r := range results {
		curves[i] = r.InfectedOverTime
	}
	return curves
}
