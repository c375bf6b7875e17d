package scenario

import "math"

// Sample is one recorded tick of a creature's evaluation run: enough to
// score locomotion, foraging, survival and exploration after the fact
// without scenarios needing to hook into the live simulation loop.
type Sample struct {
	Tick        int
	X, Y        float64
	Health      float64
	Hunger      float64
	AteCount    int
	MinedCount  int
	BuiltCount  int
}

// Trajectory is the full recorded history of one creature's evaluation
// run, from spawn to the run's final tick (death or timeout).
type Trajectory struct {
	StartX, StartY float64
	Samples        []Sample
}

// NewTrajectory starts a trajectory recording at the given spawn point.
func NewTrajectory(startX, startY float64) *Trajectory {
	return &Trajectory{StartX: startX, StartY: startY}
}

// Record appends one tick's sample.
func (t *Trajectory) Record(s Sample) { t.Samples = append(t.Samples, s) }

// Final returns the last recorded sample, or the zero value if empty.
func (t *Trajectory) Final() Sample {
	if len(t.Samples) == 0 {
		return Sample{}
	}
	return t.Samples[len(t.Samples)-1]
}

// Survived reports whether the creature was still alive (health > 0) at
// the final sample.
func (t *Trajectory) Survived() bool {
	f := t.Final()
	return f.Health > 0
}

// HorizontalDistance is the net rightward travel from spawn, the
// locomotion scenario's primary signal.
func (t *Trajectory) HorizontalDistance() float64 {
	f := t.Final()
	return f.X - t.StartX
}

// PathLength is the total distance traveled tick-to-tick, distinct from
// net displacement; the foraging score divides food eaten by it.
func (t *Trajectory) PathLength() float64 {
	var total float64
	px, py := t.StartX, t.StartY
	for _, s := range t.Samples {
		dx, dy := s.X-px, s.Y-py
		total += math.Hypot(dx, dy)
		px, py = s.X, s.Y
	}
	return total
}

// ExplorationArea estimates how much ground was covered via the
// bounding box of every recorded position, divided by the sample count,
// so covering the same box in fewer ticks scores higher.
func (t *Trajectory) ExplorationArea() float64 {
	if len(t.Samples) == 0 {
		return 0
	}
	minX, maxX := t.StartX, t.StartX
	minY, maxY := t.StartY, t.StartY
	for _, s := range t.Samples {
		minX, maxX = math.Min(minX, s.X), math.Max(maxX, s.X)
		minY, maxY = math.Min(minY, s.Y), math.Max(maxY, s.Y)
	}
	area := (maxX - minX) * (maxY - minY)
	return area / float64(len(t.Samples))
}

// FoodEaten is the total successful Eat actions over the run.
func (t *Trajectory) FoodEaten() int {
	if len(t.Samples) == 0 {
		return 0
	}
	return t.Final().AteCount
}

// ActionRate is the fraction of ticks in which the creature took any
// world-mutating action (eat, mine, or build), the activity dimension's
// raw signal.
func (t *Trajectory) ActionRate() float64 {
	if len(t.Samples) == 0 {
		return 0
	}
	prev := Sample{}
	acted := 0
	for _, s := range t.Samples {
		if s.AteCount > prev.AteCount || s.MinedCount > prev.MinedCount || s.BuiltCount > prev.BuiltCount {
			acted++
		}
		prev = s
	}
	return float64(acted) / float64(len(t.Samples))
}
