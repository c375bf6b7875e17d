package telemetry

import "testing"

func TestPerfCollectorTracksPhases(t *testing.T) {
	p := NewPerfCollector(4)
	for i := 0; i < 4; i++ {
		p.StartTick()
		p.StartPhase(PhaseMovement)
		p.StartPhase(PhaseChemistry)
		p.EndTick()
	}
	stats := p.Stats()
	if stats.AvgTickDuration < 0 {
		t.Fatal("expected non-negative avg tick duration")
	}
	if _, ok := stats.PhasePct[PhaseMovement]; !ok {
		t.Fatal("expected movement phase recorded")
	}
}

func TestPerfCollectorEmptyWindow(t *testing.T) {
	p := NewPerfCollector(4)
	stats := p.Stats()
	if len(stats.PhasePct) != 0 {
		t.Fatal("expected no phase data before any tick")
	}
}
