package genome

import (
	"testing"

	"github.com/pthm-cable/grainworld/rng"
)

func TestMutateWeightsChangesValues(t *testing.T) {
	idGen := NewIDGenerator()
	r := rng.NewSplitmix64(2)
	c := NewMinimalCPPN(1, idGen, r)

	before := make([]float64, len(c.Genome.Genes))
	for i, g := range c.Genome.Genes {
		before[i] = g.Link.ConnectionWeight
	}

	mutateWeights(c.Genome, 1.0, r)

	changed := false
	for i, g := range c.Genome.Genes {
		if g.Link.ConnectionWeight != before[i] {
			changed = true
		}
	}
	if !changed {
		t.Fatal("expected at least one weight to change")
	}
}

func TestToggleEnableKeepsEveryOutputReachable(t *testing.T) {
	idGen := NewIDGenerator()
	r := rng.NewSplitmix64(13)
	c := NewMinimalCPPN(1, idGen, r)

	for i := 0; i < 100; i++ {
		toggleEnable(c.Genome, r)
	}

	reachable := make(map[int]bool)
	for _, g := range c.Genome.Genes {
		if g.IsEnabled {
			reachable[g.Link.OutNode.Id] = true
		}
	}
	for _, out := range []int{OutRadius, OutDensity, OutHasJoint, OutJointType} {
		if !reachable[out] {
			t.Fatalf("expected output %d to keep at least one enabled incoming gene", out)
		}
	}
}

func TestCrossoverProducesValidChild(t *testing.T) {
	idGen := NewIDGenerator()
	r := rng.NewSplitmix64(21)
	a := NewMinimalCPPN(1, idGen, r)
	b := NewMinimalCPPN(2, idGen, r)

	child := Crossover(a, b, 1.0, 0.5, 3, r)
	if len(child.Genome.Genes) == 0 {
		t.Fatal("expected crossover child to inherit genes")
	}
	// Evaluating the child must not panic even though node identity differs
	// from both parents.
	child.Evaluate(0.1, 0.2, 0.22)
}
