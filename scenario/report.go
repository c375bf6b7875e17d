package scenario

import (
	"fmt"
	"time"
)

// VerificationResult is one failed verification condition's detail: a
// human-readable message plus the actual value observed, for debugging
// why a scenario's pass/fail assertion didn't hold. Grounded on
// scenario/verification.rs's VerificationResult — passed/message/
// actual_value — but an ExecutionReport only ever carries the failures,
// so Passed is implied false for every entry that appears here.
type VerificationResult struct {
	Message     string
	ActualValue string
}

// PerformanceMetrics is the timing/throughput summary spec.md §6's
// ExecutionReport.performance_metrics field names. Grounded on
// scenario/results.rs's PerformanceMetrics, dropping the optional
// memory estimate (not something the core tracks) and keeping the
// phase-duration breakdown telemetry.PerfCollector already reports
// per-tick.
type PerformanceMetrics struct {
	TotalDuration        time.Duration
	SetupDuration        time.Duration
	ActionDuration       time.Duration
	VerificationDuration time.Duration
	AvgFrameTime         time.Duration
	PeakFrameTime        time.Duration
	UpdateCount          int
}

// ExecutionReport is a scenario run's plain structured result, exactly
// the fields spec.md §6 names: name, timestamp, passed, frames_executed,
// actions_executed, verifications_failed, log, performance_metrics.
// Screenshot capture is an explicit Non-goal (spec.md §1), so unlike its
// Rust ancestor this report carries no screenshot paths.
type ExecutionReport struct {
	Name                string
	Timestamp           time.Time
	Passed              bool
	FramesExecuted      int
	ActionsExecuted     int
	VerificationsFailed []VerificationResult
	Log                 []string
	PerformanceMetrics  PerformanceMetrics
}

// NewExecutionReport starts a report for a scenario named name, stamped
// with the current time and defaulted to not-yet-passed.
func NewExecutionReport(name string) *ExecutionReport {
	return &ExecutionReport{Name: name, Timestamp: time.Now()}
}

// Logf appends a formatted line to the report's execution log.
func (r *ExecutionReport) Logf(format string, args ...any) {
	r.Log = append(r.Log, fmt.Sprintf(format, args...))
}

// Fail records a verification failure and clears Passed. A report with
// any recorded failure is never passed, regardless of later calls.
func (r *ExecutionReport) Fail(message, actualValue string) {
	r.VerificationsFailed = append(r.VerificationsFailed, VerificationResult{
		Message:     message,
		ActualValue: actualValue,
	})
	r.Passed = false
}

// Finish marks the report passed iff no verification failures were
// recorded, and records the frame/action counts and performance metrics
// observed over the run.
func (r *ExecutionReport) Finish(framesExecuted, actionsExecuted int, perf PerformanceMetrics) {
	r.FramesExecuted = framesExecuted
	r.ActionsExecuted = actionsExecuted
	r.PerformanceMetrics = perf
	r.Passed = len(r.VerificationsFailed) == 0
}
