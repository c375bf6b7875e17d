package genome

import (
	"testing"

	"github.com/pthm-cable/grainworld/rng"
)

func TestSampleMorphologyNonEmpty(t *testing.T) {
	idGen := NewIDGenerator()
	r := rng.NewSplitmix64(99)
	c := NewMinimalCPPN(1, idGen, r)

	m := SampleMorphology(c, DefaultMorphologyParams(24))
	if len(m.Parts) == 0 {
		t.Fatal("expected at least the zero-part fallback")
	}
	if m.Parts[0].Index != 0 {
		t.Fatal("expected root part to be index 0")
	}
}

func TestSampleMorphologyRespectsMaxParts(t *testing.T) {
	idGen := NewIDGenerator()
	r := rng.NewSplitmix64(3)
	c := NewMinimalCPPN(1, idGen, r)

	p := DefaultMorphologyParams(3)
	p.Threshold = -1 // force every grid cell to qualify
	m := SampleMorphology(c, p)
	if len(m.Parts) > 3 {
		t.Fatalf("expected at most 3 parts, got %d", len(m.Parts))
	}
}

func TestSampleMorphologyJointsReferenceExistingParts(t *testing.T) {
	idGen := NewIDGenerator()
	r := rng.NewSplitmix64(5)
	c := NewMinimalCPPN(1, idGen, r)

	p := DefaultMorphologyParams(64)
	p.Threshold = -1
	m := SampleMorphology(c, p)

	for _, j := range m.Joints {
		if j.Parent == j.Child {
			t.Fatal("joint must not be a self-loop")
		}
		if j.Parent < 0 || j.Parent >= len(m.Parts) || j.Child < 0 || j.Child >= len(m.Parts) {
			t.Fatalf("joint references out-of-range part: %+v", j)
		}
	}
}

func TestSampleMorphologyZeroPartsFallsBackToOrigin(t *testing.T) {
	idGen := NewIDGenerator()
	r := rng.NewSplitmix64(11)
	c := NewMinimalCPPN(1, idGen, r)

	p := DefaultMorphologyParams(8)
	p.Threshold = 2 // nothing can exceed this
	m := SampleMorphology(c, p)
	if len(m.Parts) != 1 {
		t.Fatalf("expected single default part, got %d", len(m.Parts))
	}
	if len(m.Joints) != 0 {
		t.Fatal("expected no joints for the single-part fallback")
	}
}
