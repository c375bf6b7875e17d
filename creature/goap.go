package creature

// WorldState names the boolean world-state properties the planner reasons
// over: whether the creature currently holds food, whether food is nearby,
// whether it is hungry, whether it is in danger, whether it is safe,
// whether it has energy to act, and whether it has reached its current
// destination.
type WorldState struct {
	HasFood       bool
	NearFood      bool
	IsHungry      bool
	InDanger      bool
	IsSafe        bool
	HasEnergy     bool
	AtDestination bool
}

// Goal names the most-urgent need driving planning this tick.
type Goal uint8

const (
	GoalSatiateHunger Goal = iota
	GoalEscapeDanger
	GoalExplore
)

// ActionKind is the atomic action an Action resolves to; execute maps
// it to motor commands and world edits.
type ActionKind uint8

const (
	ActionIdle ActionKind = iota
	ActionMoveToFood
	ActionEat
	ActionFlee
	ActionWander
)

// Action is one candidate plan step: a precondition over WorldState, a
// cost, and the ActionKind it resolves to.
type Action struct {
	Kind      ActionKind
	Cost      float64
	Precond   func(WorldState) bool
	Satisfies func(WorldState, Goal) bool
}

// DefaultActions is the action set the greedy planner chooses from. Cost
// ordering favors eating over merely approaching food, and fleeing always
// outranks foraging when in danger.
func DefaultActions() []Action {
	return []Action{
		{
			Kind: ActionFlee, Cost: 1,
			Precond:   func(w WorldState) bool { return w.InDanger },
			Satisfies: func(w WorldState, g Goal) bool { return g == GoalEscapeDanger },
		},
		{
			Kind: ActionEat, Cost: 2,
			Precond:   func(w WorldState) bool { return w.HasFood && !w.InDanger },
			Satisfies: func(w WorldState, g Goal) bool { return g == GoalSatiateHunger },
		},
		{
			Kind: ActionMoveToFood, Cost: 3,
			Precond:   func(w WorldState) bool { return w.NearFood && !w.HasFood && !w.InDanger },
			Satisfies: func(w WorldState, g Goal) bool { return g == GoalSatiateHunger },
		},
		{
			Kind: ActionWander, Cost: 5,
			Precond:   func(w WorldState) bool { return w.HasEnergy && !w.InDanger },
			Satisfies: func(w WorldState, g Goal) bool { return g == GoalExplore },
		},
		{
			Kind: ActionIdle, Cost: 10,
			Precond:   func(WorldState) bool { return true },
			Satisfies: func(WorldState, Goal) bool { return true },
		},
	}
}

// CurrentGoal derives the single most-urgent need from world state: danger
// preempts hunger, hunger preempts idle exploration.
func CurrentGoal(w WorldState) Goal {
	switch {
	case w.InDanger:
		return GoalEscapeDanger
	case w.IsHungry:
		return GoalSatiateHunger
	default:
		return GoalExplore
	}
}

// Plan greedily selects every available action whose precondition holds
// and which satisfies goal, in ascending cost order. The result is an
// ordered, reproducible plan, not necessarily an optimal one.
func Plan(w WorldState, goal Goal, actions []Action) []Action {
	var plan []Action
	for _, a := range actions {
		if a.Precond(w) && a.Satisfies(w, goal) {
			plan = append(plan, a)
		}
	}
	for i := 1; i < len(plan); i++ {
		j := i
		for j > 0 && plan[j-1].Cost > plan[j].Cost {
			plan[j-1], plan[j] = plan[j], plan[j-1]
			j--
		}
	}
	if len(plan) == 0 {
		plan = append(plan, Action{Kind: ActionIdle, Cost: 10})
	}
	return plan
}
