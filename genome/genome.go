package genome

import "github.com/pthm-cable/grainworld/rng"

// Genome is a creature's full genotype: the CPPN its morphology is sampled
// from, plus a flat controller weight vector reshaped into a Controller
// once the body-part/joint count (and therefore the controller's
// input/output sizing) is known from the sampled Morphology.
type Genome struct {
	ID                int
	CPPN              *CPPN
	ControllerWeights []float64
}

// NewRandomGenome builds a minimal starting CPPN and a controller weight
// vector long enough for the largest controller shape the caller expects
// to build; a smaller shape just uses a prefix, and BuildController fills
// any shortfall deterministically.
func NewRandomGenome(id int, idGen *IDGenerator, r rng.Source, maxControllerWeights int) *Genome {
	weights := make([]float64, maxControllerWeights)
	for i := range weights {
		weights[i] = float64(r.GenF32())*2 - 1
	}
	return &Genome{
		ID:                id,
		CPPN:              NewMinimalCPPN(id, idGen, r),
		ControllerWeights: weights,
	}
}

// BuildController reshapes ControllerWeights into a deterministic
// Controller for the given layer sizes (input count, hidden layer
// size(s)..., output count).
func (g *Genome) BuildController(layers []int) *Controller {
	return NewController(layers, g.ControllerWeights)
}

// Clone deep-copies the genome, including its CPPN, under a new id.
func (g *Genome) Clone(newID int) *Genome {
	weights := append([]float64(nil), g.ControllerWeights...)
	return &Genome{ID: newID, CPPN: g.CPPN.Clone(newID), ControllerWeights: weights}
}
