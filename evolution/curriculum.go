package evolution

import "fmt"

// AdvancementKind selects which rule CurriculumStage.Advancement
// applies when deciding to move to the next stage.
type AdvancementKind int

const (
	// AdvancementAutomatic advances as soon as MinGenerations elapses.
	AdvancementAutomatic AdvancementKind = iota
	// AdvancementFitnessThreshold advances once best fitness reaches
	// FitnessTarget.
	AdvancementFitnessThreshold
	// AdvancementCoverageThreshold advances once archive coverage
	// reaches CoverageTarget.
	AdvancementCoverageThreshold
	// AdvancementCombined requires both thresholds.
	AdvancementCombined
)

// Advancement is one stage's rule for moving to the next stage.
type Advancement struct {
	Kind           AdvancementKind
	FitnessTarget  float64
	CoverageTarget float64
}

// Stage is a single step of a Curriculum: a name, the environments it
// evaluates against, how many generations it must run at minimum, and
// the rule that decides when to leave it.
type Stage struct {
	Name           string
	Distribution   EnvironmentDistribution
	MinGenerations int
	Advancement    Advancement
}

// Curriculum is an ordered list of stages of increasing difficulty,
// tracked by the current stage index and how many generations have run
// within it.
type Curriculum struct {
	stages             []Stage
	currentStage       int
	generationsInStage int
}

// NewCurriculum builds a curriculum from an ordered, non-empty stage
// list.
func NewCurriculum(stages []Stage) (*Curriculum, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("evolution: curriculum must have at least one stage")
	}
	return &Curriculum{stages: stages}, nil
}

// CurrentStage returns the active stage.
func (c *Curriculum) CurrentStage() Stage { return c.stages[c.currentStage] }

// CurrentStageIndex returns the active stage's index.
func (c *Curriculum) CurrentStageIndex() int { return c.currentStage }

// NumStages returns the total stage count.
func (c *Curriculum) NumStages() int { return len(c.stages) }

// IsComplete reports whether the curriculum is on its final stage.
func (c *Curriculum) IsComplete() bool { return c.currentStage >= len(c.stages)-1 }

// GenerationsInStage returns how many generations have run since the
// last advancement (or since construction, for the first stage).
func (c *Curriculum) GenerationsInStage() int { return c.generationsInStage }

// RecordGeneration marks that one more generation has completed in the
// current stage; call once per generation before checking ShouldAdvance.
func (c *Curriculum) RecordGeneration() { c.generationsInStage++ }

// ShouldAdvance reports whether the curriculum should move to the next
// stage given the current best fitness and average archive coverage,
// and a human-readable reason when it should.
func (c *Curriculum) ShouldAdvance(bestFitness, avgCoverage float64) (bool, string) {
	if c.IsComplete() {
		return false, ""
	}
	stage := c.CurrentStage()
	if c.generationsInStage < stage.MinGenerations {
		return false, ""
	}

	switch stage.Advancement.Kind {
	case AdvancementAutomatic:
		return true, "minimum generations completed"
	case AdvancementFitnessThreshold:
		if bestFitness >= stage.Advancement.FitnessTarget {
			return true, fmt.Sprintf("fitness %.2f >= target %.2f", bestFitness, stage.Advancement.FitnessTarget)
		}
		return false, ""
	case AdvancementCoverageThreshold:
		if avgCoverage >= stage.Advancement.CoverageTarget {
			return true, fmt.Sprintf("coverage %.1f%% >= target %.1f%%", avgCoverage*100, stage.Advancement.CoverageTarget*100)
		}
		return false, ""
	case AdvancementCombined:
		if bestFitness >= stage.Advancement.FitnessTarget && avgCoverage >= stage.Advancement.CoverageTarget {
			return true, fmt.Sprintf("fitness %.2f >= %.2f and coverage %.1f%% >= %.1f%%",
				bestFitness, stage.Advancement.FitnessTarget, avgCoverage*100, stage.Advancement.CoverageTarget*100)
		}
		return false, ""
	default:
		return false, ""
	}
}

// Advance moves to the next stage and resets the in-stage generation
// counter (the tracker's baseline), returning false if already on the
// final stage.
func (c *Curriculum) Advance() bool {
	if c.IsComplete() {
		return false
	}
	c.currentStage++
	c.generationsInStage = 0
	return true
}

// Reset returns the curriculum to its first stage.
func (c *Curriculum) Reset() {
	c.currentStage = 0
	c.generationsInStage = 0
}
