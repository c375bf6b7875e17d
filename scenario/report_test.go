package scenario

import "testing"

func TestExecutionReportPassesWithNoFailures(t *testing.T) {
	r := NewExecutionReport("sand-piles")
	r.Logf("tick %d: settled", 120)
	r.Finish(120, 9, PerformanceMetrics{UpdateCount: 120})

	if !r.Passed {
		t.Fatal("expected report with no failures to pass")
	}
	if r.Name != "sand-piles" {
		t.Fatalf("unexpected name: %s", r.Name)
	}
	if len(r.Log) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(r.Log))
	}
}

func TestExecutionReportFailsWithRecordedFailure(t *testing.T) {
	r := NewExecutionReport("water-levels")
	r.Fail("surface not flat", "variance=3")
	r.Finish(600, 0, PerformanceMetrics{})

	if r.Passed {
		t.Fatal("expected report with a recorded failure to not pass")
	}
	if len(r.VerificationsFailed) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(r.VerificationsFailed))
	}
}
