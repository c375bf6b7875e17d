package evolution

import (
	"fmt"
	"math"
	"sort"

	"github.com/pthm-cable/grainworld/rng"
	"github.com/pthm-cable/grainworld/telemetry"
)

// DifficultyConfig is an opaque, named bundle of scenario-setup
// parameters (terrain roughness, hazard density, whatever a concrete
// scenario wants to vary). The core, never
// interprets these values itself — it only samples and hands them to
// whatever builds the evaluation world.
type DifficultyConfig struct {
	Name   string
	Params map[string]float64
}

// SamplingMode selects how EnvironmentDistribution.Sample picks a
// DifficultyConfig.
type SamplingMode int

const (
	// SamplingUniform interpolates linearly between two DifficultyConfigs.
	SamplingUniform SamplingMode = iota
	// SamplingDiscrete picks uniformly among a fixed list.
	SamplingDiscrete
	// SamplingPresets picks uniformly among named presets, each stamped
	// with evalID under Params["_seed"]; environments of one evaluation
	// that draw the same preset carry the same stamp.
	SamplingPresets
)

// EnvironmentDistribution defines how training environments are
// sampled during multi-environment evaluation.
type EnvironmentDistribution struct {
	Mode     SamplingMode
	Min, Max DifficultyConfig   // used by SamplingUniform
	Configs  []DifficultyConfig // used by SamplingDiscrete and SamplingPresets
}

// UniformBetween samples linearly between min and max difficulty.
func UniformBetween(min, max DifficultyConfig) EnvironmentDistribution {
	return EnvironmentDistribution{Mode: SamplingUniform, Min: min, Max: max}
}

// Discrete samples uniformly among a fixed set of configs.
func Discrete(configs []DifficultyConfig) EnvironmentDistribution {
	return EnvironmentDistribution{Mode: SamplingDiscrete, Configs: configs}
}

// Presets samples uniformly among named presets.
func Presets(configs []DifficultyConfig) EnvironmentDistribution {
	return EnvironmentDistribution{Mode: SamplingPresets, Configs: configs}
}

func (d EnvironmentDistribution) configHash() string {
	switch d.Mode {
	case SamplingUniform:
		return fmt.Sprintf("uniform:%s:%s", d.Min.Name, d.Max.Name)
	default:
		names := make([]string, len(d.Configs))
		for i, c := range d.Configs {
			names[i] = c.Name
		}
		return fmt.Sprintf("discrete:%v", names)
	}
}

// Sample deterministically picks one environment for (evalID, envIndex):
// the same (distribution, evalID, envIndex) triple always yields the
// same config and the same derived RNG, so the same creature always
// sees the same environments across evaluations"). The
// returned rng.Source is the per-environment generator any world-setup
// code driven by this sample should consume for further randomness.
func (d EnvironmentDistribution) Sample(evalID uint64, envIndex int) (DifficultyConfig, rng.Source) {
	r := rng.Split(evalID, uint64(envIndex), d.configHash())

	switch d.Mode {
	case SamplingUniform:
		t := float64(r.GenF32())
		return lerpConfig(d.Min, d.Max, t), r
	case SamplingPresets:
		idx := int(r.GenF32() * float32(len(d.Configs)))
		if idx >= len(d.Configs) {
			idx = len(d.Configs) - 1
		}
		cfg := d.Configs[idx]
		stamped := DifficultyConfig{Name: cfg.Name, Params: make(map[string]float64, len(cfg.Params)+1)}
		for k, v := range cfg.Params {
			stamped.Params[k] = v
		}
		stamped.Params["_seed"] = float64(evalID)
		return stamped, r
	default: // SamplingDiscrete
		idx := int(r.GenF32() * float32(len(d.Configs)))
		if idx >= len(d.Configs) {
			idx = len(d.Configs) - 1
		}
		return d.Configs[idx], r
	}
}

// SampleBatch samples count environments for one evaluation, indices
// 0..count-1.
func (d EnvironmentDistribution) SampleBatch(evalID uint64, count int) []DifficultyConfig {
	out := make([]DifficultyConfig, count)
	for i := range out {
		cfg, _ := d.Sample(evalID, i)
		out[i] = cfg
	}
	return out
}

func lerpConfig(min, max DifficultyConfig, t float64) DifficultyConfig {
	out := DifficultyConfig{Name: fmt.Sprintf("%s..%s@%.2f", min.Name, max.Name, t), Params: make(map[string]float64)}
	for k, lo := range min.Params {
		hi := max.Params[k]
		out.Params[k] = lo + (hi-lo)*t
	}
	return out
}

// AggregateMethod combines per-environment scores into the single
// scalar MAP-Elites bins.
type AggregateMethod int

const (
	AggregateMean AggregateMethod = iota
	AggregateMin
	AggregateMedian
	AggregatePercentile
	AggregateHarmonicMean
)

// Aggregate combines scores per method; percentile is only meaningful
// for AggregatePercentile, in [0, 1].
func Aggregate(method AggregateMethod, scores []float64, percentile float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	switch method {
	case AggregateMin:
		min := scores[0]
		for _, s := range scores[1:] {
			min = math.Min(min, s)
		}
		return min
	case AggregateMedian:
		sorted := append([]float64(nil), scores...)
		sort.Float64s(sorted)
		return telemetry.Percentile(sorted, 0.5)
	case AggregatePercentile:
		sorted := append([]float64(nil), scores...)
		sort.Float64s(sorted)
		return telemetry.Percentile(sorted, percentile)
	case AggregateHarmonicMean:
		return telemetry.HarmonicMean(scores)
	default: // AggregateMean
		var sum float64
		for _, s := range scores {
			sum += s
		}
		return sum / float64(len(scores))
	}
}
