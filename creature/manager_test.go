package creature

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/grainworld/genome"
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/rng"
)

var testLayers = []int{8, 4}

func newTestManager() *Manager {
	reg := material.NewDefaultRegistry()
	world := ecs.NewWorld()
	return NewManager(world, reg, DefaultVitalsConfig())
}

func newTestGenome(id int, idGen *genome.IDGenerator, r rng.Source) (*genome.Genome, genome.Morphology, *genome.Controller) {
	g := genome.NewRandomGenome(id, idGen, r, genome.RequiredWeightCount(testLayers))
	morph := genome.SampleMorphology(g.CPPN, genome.DefaultMorphologyParams(8))
	return g, morph, g.BuildController(testLayers)
}

func TestSpawnSucceedsBelowCap(t *testing.T) {
	m := newTestManager()
	m.SetMaxPopulation(2)
	idGen := genome.NewIDGenerator()
	r := rng.NewSplitmix64(1)
	g, morph, ctrl := newTestGenome(1, idGen, r)

	if _, ok := m.Spawn(0, 0, g, morph, ctrl); !ok {
		t.Fatal("expected spawn below cap to succeed")
	}
	if m.Count() != 1 {
		t.Fatalf("expected 1 creature, got %d", m.Count())
	}
}

func TestSpawnRejectedAtCapacity(t *testing.T) {
	m := newTestManager()
	m.SetMaxPopulation(1)
	idGen := genome.NewIDGenerator()
	r := rng.NewSplitmix64(1)
	g1, morph1, ctrl1 := newTestGenome(1, idGen, r)
	g2, morph2, ctrl2 := newTestGenome(2, idGen, r)

	if _, ok := m.Spawn(0, 0, g1, morph1, ctrl1); !ok {
		t.Fatal("expected first spawn to succeed")
	}
	if _, ok := m.Spawn(1, 1, g2, morph2, ctrl2); ok {
		t.Fatal("expected second spawn to be rejected at cap")
	}
	if m.Count() != 1 {
		t.Fatalf("expected population to stay at 1, got %d", m.Count())
	}
}

func TestSpawnUnboundedByDefault(t *testing.T) {
	m := newTestManager()
	idGen := genome.NewIDGenerator()
	r := rng.NewSplitmix64(1)
	for i := 0; i < 5; i++ {
		g, morph, ctrl := newTestGenome(i, idGen, r)
		if _, ok := m.Spawn(float64(i), 0, g, morph, ctrl); !ok {
			t.Fatalf("expected spawn %d to succeed with no cap set", i)
		}
	}
	if m.Count() != 5 {
		t.Fatalf("expected 5 creatures, got %d", m.Count())
	}
}
