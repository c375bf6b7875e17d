package evolution

import "testing"

func flatStages() []Stage {
	return []Stage{
		{Name: "flat", MinGenerations: 2, Advancement: Advancement{Kind: AdvancementAutomatic}},
		{Name: "hills", MinGenerations: 3, Advancement: Advancement{Kind: AdvancementFitnessThreshold, FitnessTarget: 5}},
		{Name: "random", MinGenerations: 0, Advancement: Advancement{Kind: AdvancementAutomatic}},
	}
}

func TestNewCurriculumRejectsEmptyStages(t *testing.T) {
	if _, err := NewCurriculum(nil); err == nil {
		t.Fatal("expected error constructing a curriculum with no stages")
	}
}

func TestCurriculumAutomaticAdvancesAfterMinGenerations(t *testing.T) {
	c, err := NewCurriculum(flatStages())
	if err != nil {
		t.Fatal(err)
	}
	if should, _ := c.ShouldAdvance(0, 0); should {
		t.Fatal("expected no advancement before min generations")
	}
	c.RecordGeneration()
	c.RecordGeneration()
	should, reason := c.ShouldAdvance(0, 0)
	if !should || reason == "" {
		t.Fatalf("expected advancement after min generations, got should=%v reason=%q", should, reason)
	}
}

func TestCurriculumFitnessThresholdGatesAdvancement(t *testing.T) {
	c, err := NewCurriculum(flatStages())
	if err != nil {
		t.Fatal(err)
	}
	c.Advance() // move to the hills stage
	c.RecordGeneration()
	c.RecordGeneration()
	c.RecordGeneration()
	if should, _ := c.ShouldAdvance(2, 0); should {
		t.Fatal("expected no advancement below fitness target")
	}
	if should, _ := c.ShouldAdvance(5, 0); !should {
		t.Fatal("expected advancement once fitness target is met")
	}
}

func TestCurriculumAdvanceResetsGenerationCounter(t *testing.T) {
	c, err := NewCurriculum(flatStages())
	if err != nil {
		t.Fatal(err)
	}
	c.RecordGeneration()
	c.RecordGeneration()
	c.RecordGeneration()
	if !c.Advance() {
		t.Fatal("expected advance to succeed")
	}
	if c.GenerationsInStage() != 0 {
		t.Fatalf("expected generation counter reset on advance, got %d", c.GenerationsInStage())
	}
	if c.CurrentStageIndex() != 1 {
		t.Fatalf("expected stage index 1, got %d", c.CurrentStageIndex())
	}
}

func TestCurriculumCannotAdvancePastLastStage(t *testing.T) {
	c, err := NewCurriculum(flatStages())
	if err != nil {
		t.Fatal(err)
	}
	c.Advance()
	c.Advance()
	if !c.IsComplete() {
		t.Fatal("expected curriculum to be complete on the final stage")
	}
	if c.Advance() {
		t.Fatal("expected Advance to fail on the final stage")
	}
	if should, _ := c.ShouldAdvance(1000, 1); should {
		t.Fatal("expected ShouldAdvance to always report false once complete")
	}
}

func TestCurriculumReset(t *testing.T) {
	c, err := NewCurriculum(flatStages())
	if err != nil {
		t.Fatal(err)
	}
	c.Advance()
	c.RecordGeneration()
	c.Reset()
	if c.CurrentStageIndex() != 0 || c.GenerationsInStage() != 0 {
		t.Fatal("expected Reset to return to the first stage with a zeroed counter")
	}
}
