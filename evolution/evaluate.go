package evolution

import (
	"github.com/pthm-cable/grainworld/rng"
	"github.com/pthm-cable/grainworld/scenario"
)

// RunFunc drives one full evaluation episode under the given difficulty
// and RNG, returning the recorded trajectory. Callers wire this to
// their own world/creature setup; evolution has no world-construction
// opinion of its own, the same decoupling creature.WorldMutAccess uses
// to keep the creature runtime independent of the world package.
type RunFunc func(cfg DifficultyConfig, r rng.Source) *scenario.Trajectory

// EvaluationResult is one genome's aggregated multi-environment score,
// ready for Archive.TryInsert.
type EvaluationResult struct {
	Fitness        float64
	Behavior       scenario.BehaviorDescriptor
	PerEnvironment []scenario.Result
}

// Evaluate runs a genome across n environments sampled from dist for
// evalID, scores each with sc, and aggregates the per-environment
// fitnesses with method (percentile only consulted for
// AggregatePercentile). Per-environment behavior descriptors are
// averaged dimension-wise into the single scalar vector actually binned
// into the archive.
func Evaluate(dist EnvironmentDistribution, evalID uint64, n int, sc scenario.Scenario, run RunFunc, method AggregateMethod, percentile float64) EvaluationResult {
	results := make([]scenario.Result, 0, n)
	for i := 0; i < n; i++ {
		cfg, r := dist.Sample(evalID, i)
		traj := run(cfg, r)
		results = append(results, sc.Evaluate(traj))
	}

	fitnesses := make([]float64, len(results))
	for i, res := range results {
		fitnesses[i] = res.Fitness
	}

	return EvaluationResult{
		Fitness:        Aggregate(method, fitnesses, percentile),
		Behavior:       averageBehavior(results),
		PerEnvironment: results,
	}
}

func averageBehavior(results []scenario.Result) scenario.BehaviorDescriptor {
	if len(results) == 0 {
		return scenario.BehaviorDescriptor{}
	}
	dims := results[0].Behavior.Dims
	values := make([]float64, len(dims))
	for _, res := range results {
		for i, v := range res.Behavior.Values {
			values[i] += v
		}
	}
	for i := range values {
		values[i] /= float64(len(results))
	}
	return scenario.BehaviorDescriptor{Dims: dims, Values: values}
}
