package evolution

import "testing"

func TestEnvironmentDistributionSampleDeterministic(t *testing.T) {
	dist := Discrete([]DifficultyConfig{
		{Name: "flat"}, {Name: "hills"}, {Name: "obstacles"},
	})

	cfg1, _ := dist.Sample(42, 0)
	cfg2, _ := dist.Sample(42, 0)
	if cfg1.Name != cfg2.Name {
		t.Fatalf("expected identical (evalID, envIndex) to sample the same config: %q vs %q", cfg1.Name, cfg2.Name)
	}
}

func TestEnvironmentDistributionDifferentEvalIDsCanDiffer(t *testing.T) {
	dist := UniformBetween(
		DifficultyConfig{Name: "flat", Params: map[string]float64{"roughness": 0}},
		DifficultyConfig{Name: "random", Params: map[string]float64{"roughness": 1}},
	)

	seen := make(map[float64]bool)
	for evalID := uint64(0); evalID < 20; evalID++ {
		cfg, _ := dist.Sample(evalID, 0)
		seen[cfg.Params["roughness"]] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected varying evalIDs to sample different difficulty points")
	}
}

func TestEnvironmentDistributionSampleBatchLength(t *testing.T) {
	dist := Discrete([]DifficultyConfig{{Name: "a"}, {Name: "b"}})
	batch := dist.SampleBatch(7, 5)
	if len(batch) != 5 {
		t.Fatalf("expected batch length 5, got %d", len(batch))
	}
}

func TestAggregateMean(t *testing.T) {
	if got := Aggregate(AggregateMean, []float64{2, 4, 6}, 0); got != 4 {
		t.Fatalf("expected mean 4, got %v", got)
	}
}

func TestAggregateMin(t *testing.T) {
	if got := Aggregate(AggregateMin, []float64{5, 1, 9}, 0); got != 1 {
		t.Fatalf("expected min 1, got %v", got)
	}
}

func TestAggregateHarmonicMeanPenalizesOutlier(t *testing.T) {
	mean := Aggregate(AggregateMean, []float64{10, 10, 0.1}, 0)
	harmonic := Aggregate(AggregateHarmonicMean, []float64{10, 10, 0.1}, 0)
	if harmonic >= mean {
		t.Fatalf("expected harmonic mean %v to penalize the low outlier more than arithmetic mean %v", harmonic, mean)
	}
}

func TestAggregateEmptyIsZero(t *testing.T) {
	if got := Aggregate(AggregateMean, nil, 0); got != 0 {
		t.Fatalf("expected 0 for empty scores, got %v", got)
	}
}
