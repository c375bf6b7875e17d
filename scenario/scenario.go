package scenario

// Scenario scores a completed Trajectory into a fitness scalar plus a
// BehaviorDescriptor, without specifying the formula: outputs must be
// finite and within documented ranges, but each scenario is free to
// weight the same raw trajectory signals differently.
type Scenario interface {
	Name() string
	Evaluate(traj *Trajectory) Result
}

// commonBehavior computes the shared four-dimension readout every
// scenario reports, so the evolution archive can bin on any two
// dimensions regardless of which scenario produced the run.
func commonBehavior(traj *Trajectory) BehaviorDescriptor {
	locomotion := traj.HorizontalDistance() / 10
	if locomotion < 0 {
		locomotion = 0
	}
	foraging := float64(traj.FoodEaten())
	exploration := traj.ExplorationArea() / 1000
	activity := traj.ActionRate()

	return BehaviorDescriptor{
		Dims:   StandardDims,
		Values: []float64{locomotion, foraging, exploration, activity},
	}.Finite()
}
