// Package telemetry holds the pluggable stats sink creature/world
// subsystems report into, and the windowed CSV export built on top of it.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Sink is the narrow stats contract every subsystem depends on. It
// mirrors a simulation-statistics trait with one method per countable
// event: a no-op implementation (NoopSink) satisfies it at zero cost.
type Sink interface {
	RecordPixelMoved()
	RecordStateChange()
	RecordReaction()
}

// NoopSink discards every record. It is the default sink when a caller
// doesn't need telemetry.
type NoopSink struct{}

func (NoopSink) RecordPixelMoved()  {}
func (NoopSink) RecordStateChange() {}
func (NoopSink) RecordReaction()    {}

// CountingSink accumulates per-tick-window counters. It is the concrete
// sink WindowStats is built from.
type CountingSink struct {
	PixelsMoved  int
	StateChanges int
	Reactions    int
}

func (c *CountingSink) RecordPixelMoved()  { c.PixelsMoved++ }
func (c *CountingSink) RecordStateChange() { c.StateChanges++ }
func (c *CountingSink) RecordReaction()    { c.Reactions++ }

// Reset zeroes the counters, typically called after a window is flushed.
func (c *CountingSink) Reset() {
	c.PixelsMoved, c.StateChanges, c.Reactions = 0, 0, 0
}

// WindowStats holds aggregated statistics for one telemetry window,
// tagged for CSV export via gocsv.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	PixelsMoved  int `csv:"pixels_moved"`
	StateChanges int `csv:"state_changes"`
	Reactions    int `csv:"reactions"`

	ActiveChunkCount int `csv:"active_chunks"`
	DebrisBodyCount  int `csv:"debris_bodies"`

	CreatureCount int `csv:"creatures"`
	CreatureDeaths int `csv:"creature_deaths"`
	CreatureBirths int `csv:"creature_births"`

	FitnessMean float64 `csv:"fitness_mean"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`

	ArchiveCoverage float64 `csv:"archive_coverage"`
}

// Percentile calculates the p-th percentile of a sorted slice via
// gonum/stat's linearly-interpolated quantile estimator. p should be in
// [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// HarmonicMean returns the harmonic mean of values, used by multi-
// environment fitness aggregation to penalize any single bad score more
// than an arithmetic mean would. Returns 0 for an empty slice or when
// any value is non-positive (gonum's HarmonicMean is undefined there).
func HarmonicMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	for _, v := range values {
		if v <= 0 {
			return 0
		}
	}
	return stat.HarmonicMean(values, nil)
}

// ComputeFitnessStats calculates mean and percentiles from fitness values.
func ComputeFitnessStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("pixels_moved", s.PixelsMoved),
		slog.Int("state_changes", s.StateChanges),
		slog.Int("reactions", s.Reactions),
		slog.Int("creatures", s.CreatureCount),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("archive_coverage", s.ArchiveCoverage),
	)
}

// LogStats emits the window at info level, logging windowed stats
// rather than every tick.
func (s WindowStats) LogStats() {
	slog.Info("telemetry window", "stats", s)
}
