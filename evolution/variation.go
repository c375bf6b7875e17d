package evolution

import (
	"github.com/pthm-cable/grainworld/genome"
	"github.com/pthm-cable/grainworld/rng"
)

// Vary produces a new genome deterministically from two parents and a
// seeded RNG: the CPPN is aligned by innovation number and crossed per
// genome.Crossover, then mutated; the controller weight vector is
// crossed gene-by-gene (fitter parent's bias on ties) and perturbed at
// the same rate. The only hard requirement is that variation be
// deterministic given (parents, rng), not any particular operator mix,
// so this mirrors genome.CPPN.Mutate's rates rather than inventing a
// separate schedule.
func Vary(parentA, parentB *genome.Genome, fitnessA, fitnessB float64, childID int, idGen *genome.IDGenerator, r rng.Source, rates genome.MutationRates) *genome.Genome {
	childCPPN := genome.Crossover(parentA.CPPN, parentB.CPPN, fitnessA, fitnessB, childID, r)
	childCPPN.Mutate(r, idGen, rates)

	weights := crossoverWeights(parentA.ControllerWeights, parentB.ControllerWeights, fitnessA, fitnessB, r)
	mutateWeights(weights, rates, r)

	return &genome.Genome{ID: childID, CPPN: childCPPN, ControllerWeights: weights}
}

func crossoverWeights(a, b []float64, fitnessA, fitnessB float64, r rng.Source) []float64 {
	primary, secondary := a, b
	if fitnessB > fitnessA {
		primary, secondary = b, a
	}
	n := len(primary)
	if len(secondary) > n {
		n = len(secondary)
	}
	out := make([]float64, n)
	for i := range out {
		switch {
		case i >= len(primary):
			out[i] = secondary[i]
		case i >= len(secondary):
			out[i] = primary[i]
		case r.GenBool():
			out[i] = primary[i]
		default:
			out[i] = secondary[i]
		}
	}
	return out
}

func mutateWeights(weights []float64, rates genome.MutationRates, r rng.Source) {
	for i := range weights {
		if !r.CheckProbability(rates.WeightMutateProb) {
			continue
		}
		delta := (float64(r.GenF32())*2 - 1) * rates.WeightPower
		w := weights[i] + delta
		if w > 8 {
			w = 8
		}
		if w < -8 {
			w = -8
		}
		weights[i] = w
	}
}
