package epidemic

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Rand is the random source consumed by the model.
type Rand interface {
	Bernoulli(p float64) bool
	// IntN returns a value in [0, n).
	IntN(n int) int
	// IntRange returns a value in [lo, hi], both inclusive.
	IntRange(lo, hi int) int
	// Sample returns k distinct indices drawn from [0, n).
	Sample(n, k int) []int
	Poisson(lambda float64) int
}

// Source is the default Rand. Uniform and Poisson draws use separate
// PCG streams.
type Source struct {
	uniform *rand.Rand
	poisson rand.Source
}

func NewSource(uniformSeed, poissonSeed uint64) *Source {
	return &Source{
		uniform: rand.New(rand.NewPCG(uniformSeed, uniformSeed^0x9e3779b97f4a7c15)),
		poisson: rand.NewPCG(poissonSeed, poissonSeed^0x9e3779b97f4a7c15),
	}
}

func (s *Source) Float64() float64 { return s.uniform.Float64() }

// Bernoulli consumes exactly one uniform draw.
func (s *Source) Bernoulli(p float64) bool { return s.Float64() < p }

func (s *Source) IntN(n int) int { return s.uniform.IntN(n) }

func (s *Source) IntRange(lo, hi int) int {
	if hi < lo {
		panic("epidemic: empty integer range")
	}
	return lo + s.uniform.IntN(hi-lo+1)
}

// Sample uses a partial Fisher-Yates shuffle over an index table.
func (s *Source) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + s.uniform.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

func (s *Source) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	d := distuv.Poisson{Lambda: lambda, Src: s.poisson}
	return int(d.Rand())
}
