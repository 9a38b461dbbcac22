// Package epidemic implements a stochastic agent-based epidemic model over a
// population partitioned into households.
//
// The package is organised leaves first:
//
//   - [Person]: per-agent infection state machine
//   - [Household]: fixed group of people who meet every day
//   - [Population]: owns the people and their household partition
//   - [Evolution]: advances the population one simulated day
//   - [Runner]: drives an Evolution and records the infected curve
//
// # Randomness
//
// All draws come from an injected [Rand]. [Source] keeps two independently
// seeded streams, one for uniform draws and one for Poisson draws, so a run
// is reproducible from its pair of seeds.
//
// # Example
//
//	rng := epidemic.NewSource(707, 1337)
//	pop, _ := epidemic.NewPopulation(1000, 2.3, 2, rng)
//	evo, _ := epidemic.NewEvolution(pop, epidemic.DefaultParams(), rng)
//	result, _ := epidemic.NewRunner(evo).Run(ctx, 100)
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. A day depends on the
// order of its contacts, so a single run is always sequential; run separate
// scenarios with separate Sources instead.
package epidemic
