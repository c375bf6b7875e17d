package scenario

// Locomotion rewards net horizontal travel, penalizing death.
type Locomotion struct{}

func (Locomotion) Name() string { return "locomotion" }

func (Locomotion) Evaluate(traj *Trajectory) Result {
	fitness := traj.HorizontalDistance()
	if !traj.Survived() {
		fitness *= 0.5
	}
	return Result{Fitness: fitness, Behavior: commonBehavior(traj)}
}

// Foraging rewards food eaten, scaled by how efficiently it was
// gathered relative to distance traveled.
type Foraging struct{}

func (Foraging) Name() string { return "foraging" }

func (Foraging) Evaluate(traj *Trajectory) Result {
	eaten := float64(traj.FoodEaten())
	path := traj.PathLength()
	fitness := eaten * 5
	if path > 0 {
		fitness += eaten * 50 / path
	}
	return Result{Fitness: fitness, Behavior: commonBehavior(traj)}
}

// Survival rewards staying alive and fed over the full run, with no
// credit for locomotion or foraging beyond what keeps vitals up.
type Survival struct{}

func (Survival) Name() string { return "survival" }

func (Survival) Evaluate(traj *Trajectory) Result {
	f := traj.Final()
	fitness := f.Health/100*5 + f.Hunger/100*5
	if !traj.Survived() {
		fitness *= 0.2
	}
	return Result{Fitness: fitness, Behavior: commonBehavior(traj)}
}

// Balanced blends locomotion, foraging, and survival into one score, for
// training against a generalist rather than a specialist fitness.
type Balanced struct{}

func (Balanced) Name() string { return "balanced" }

func (Balanced) Evaluate(traj *Trajectory) Result {
	loco := Locomotion{}.Evaluate(traj).Fitness
	forage := Foraging{}.Evaluate(traj).Fitness
	survive := Survival{}.Evaluate(traj).Fitness
	fitness := loco*0.4 + forage*0.3 + survive*0.3
	return Result{Fitness: fitness, Behavior: commonBehavior(traj)}
}

// Terrain wraps any Scenario with a name suffix identifying the
// curriculum-driven terrain variant it was evaluated against, so
// per-stage results can be told apart in reporting without each stage
// needing its own fitness formula.
type Terrain struct {
	Base       Scenario
	VariantTag string
}

func (t Terrain) Name() string { return t.Base.Name() + ":" + t.VariantTag }

func (t Terrain) Evaluate(traj *Trajectory) Result { return t.Base.Evaluate(traj) }
