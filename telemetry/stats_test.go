package telemetry

import "testing"

func TestPercentileBounds(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	if Percentile(sorted, 0) != 1 {
		t.Fatal("expected p0 to be minimum")
	}
	if Percentile(sorted, 1) != 5 {
		t.Fatal("expected p1 to be maximum")
	}
	if Percentile(nil, 0.5) != 0 {
		t.Fatal("expected 0 for empty slice")
	}
}

func TestHarmonicMeanPenalizesLowOutlier(t *testing.T) {
	values := []float64{10, 10, 10, 0.1}
	hm := HarmonicMean(values)
	mean := (10.0 + 10.0 + 10.0 + 0.1) / 4
	if hm >= mean {
		t.Fatalf("expected harmonic mean (%v) below arithmetic mean (%v)", hm, mean)
	}
}

func TestHarmonicMeanNonPositiveIsZero(t *testing.T) {
	if HarmonicMean([]float64{1, 0, 2}) != 0 {
		t.Fatal("expected 0 when any value is non-positive")
	}
	if HarmonicMean(nil) != 0 {
		t.Fatal("expected 0 for empty slice")
	}
}

func TestCountingSinkRecordsAndResets(t *testing.T) {
	c := &CountingSink{}
	c.RecordPixelMoved()
	c.RecordPixelMoved()
	c.RecordReaction()
	if c.PixelsMoved != 2 || c.Reactions != 1 {
		t.Fatalf("unexpected counts: %+v", c)
	}
	c.Reset()
	if c.PixelsMoved != 0 || c.StateChanges != 0 || c.Reactions != 0 {
		t.Fatal("expected reset to zero everything")
	}
}

func TestNoopSinkSatisfiesInterface(t *testing.T) {
	var s Sink = NoopSink{}
	s.RecordPixelMoved()
	s.RecordStateChange()
	s.RecordReaction()
}
