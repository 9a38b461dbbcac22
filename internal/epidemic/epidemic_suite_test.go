package epidemic_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/episim/internal/epidemic"
)

func TestEpidemic(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Epidemic Suite")
}

type scenario struct {
	series []int
	total  int
	census []epidemic.DaySnapshot
}

func runScenario(uniformSeed, poissonSeed uint64) scenario {
	rng := epidemic.NewSource(uniformSeed, poissonSeed)
	pop, err := epidemic.NewPopulation(1000, 2.3, 2, rng)
	Expect(err).NotTo(HaveOccurred())

	evo, err := epidemic.NewEvolution(pop, epidemic.Params{
		MovementRatio:        0.25,
		ContactRatio:         1,
		InfectionProbability: 0.25,
		TestRatio:            0.5,
	}, rng)
	Expect(err).NotTo(HaveOccurred())

	var s scenario
	runner := epidemic.NewRunner(evo)
	runner.AddObserver(epidemic.ObserverFunc(func(d epidemic.DaySnapshot) {
		s.census = append(s.census, d)
	}))

	result, err := runner.Run(context.Background(), 100)
	Expect(err).NotTo(HaveOccurred())

	s.series = result.InfectedOverTime
	s.total = evo.TotalCases()
	return s
}

var _ = Describe("a seeded outbreak", func() {
	var first scenario

	BeforeEach(func() {
		first = runScenario(707, 1337)
	})

	It("reproduces the infected curve and total cases", func() {
		second := runScenario(707, 1337)
		Expect(second.series).To(Equal(first.series))
		Expect(second.total).To(Equal(first.total))
	})

	It("records at most the requested number of days", func() {
		Expect(len(first.series)).To(BeNumerically(">", 0))
		Expect(len(first.series)).To(BeNumerically("<=", 100))
	})

	It("only stops early once nobody is infected", func() {
		if len(first.series) < 100 {
			Expect(first.series[len(first.series)-1]).To(Equal(0))
		}
		Expect(first.series[:len(first.series)-1]).NotTo(ContainElement(0))
	})

	It("never loses cases", func() {
		last := 0
		for _, d := range first.census {
			Expect(d.TotalCases()).To(BeNumerically(">=", last))
			Expect(d.Susceptible + d.Infected + d.Recovered).To(Equal(d.Population))
			Expect(d.KnownInfected).To(BeNumerically("<=", d.Infected))
			last = d.TotalCases()
		}
		Expect(first.total).To(Equal(last))
	})
})

var _ = Describe("the random source", func() {
	It("keeps the Poisson stream independent of uniform draws", func() {
		a := epidemic.NewSource(1, 99)
		b := epidemic.NewSource(2, 99)
		for i := 0; i < 10; i++ {
			a.Float64()
		}
		for i := 0; i < 20; i++ {
			Expect(a.Poisson(2.3)).To(Equal(b.Poisson(2.3)))
		}
	})

	It("draws one uniform value per Bernoulli trial", func() {
		a := epidemic.NewSource(8, 9)
		b := epidemic.NewSource(8, 9)
		for _, p := range []float64{0, 0.25, 0.5, 0.9, 1} {
			Expect(a.Bernoulli(p)).To(Equal(b.Float64() < p))
		}
	})

	It("samples distinct indices", func() {
		rng := epidemic.NewSource(5, 6)
		picked := rng.Sample(50, 50)
		Expect(picked).To(HaveLen(50))
		Expect(picked).To(ConsistOf(func() []any {
			all := make([]any, 50)
			for i := range all {
				all[i] = i
			}
			return all
		}()...))
	})

	It("draws integer ranges inclusively", func() {
		rng := epidemic.NewSource(3, 4)
		seen := map[int]bool{}
		for i := 0; i < 500; i++ {
			v := rng.IntRange(2, 5)
			Expect(v).To(BeNumerically(">=", 2))
			Expect(v).To(BeNumerically("<=", 5))
			seen[v] = true
		}
		Expect(seen).To(HaveLen(4))
	})

	It("returns zero contacts for a zero mean", func() {
		Expect(epidemic.NewSource(1, 1).Poisson(0)).To(Equal(0))
	})
})

var _ = Describe("households", func() {
	DescribeTable("partition the population exactly once",
		func(size int, mean float64) {
			pop, err := epidemic.NewPopulation(size, mean, 0, epidemic.NewSource(11, 12))
			Expect(err).NotTo(HaveOccurred())

			members := 0
			for i, h := range pop.Households() {
				for _, p := range h.Members() {
					Expect(p.Household()).To(Equal(i))
				}
				members += h.Len()
			}
			Expect(members).To(Equal(size))
		},
		Entry("tiny", 3, 1.0),
		Entry("default", 1000, 2.3),
		Entry("large households", 50, 5.0),
	)
})
