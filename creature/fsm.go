package creature

import "github.com/pthm-cable/grainworld/material"

// State is the creature execution state machine's current mode. It tracks
// what a creature is currently doing; the GOAP planner decides what to do
// next, the FSM enforces which transitions between "doing" states are
// legal.
type State uint8

const (
	Idle State = iota
	Moving
	Eating
	Mining
	Building
	Fleeing
	Dead
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	case Eating:
		return "eating"
	case Mining:
		return "mining"
	case Building:
		return "building"
	case Fleeing:
		return "fleeing"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the state accepts no further transitions.
func (s State) IsTerminal() bool { return s == Dead }

// CanInterrupt reports whether a flee command can preempt the state.
func (s State) CanInterrupt() bool {
	switch s {
	case Idle, Moving, Eating, Mining, Building:
		return true
	default:
		return false
	}
}

// Input is an event offered to the state machine.
type Input uint8

const (
	StartMoving Input = iota
	StartEating
	StartMining
	StartBuilding
	StartFleeing
	Arrive
	Finish
	Interrupt
	Safe
	Die
)

// transition is the complete transition table: every non-terminal state
// accepts Die, Dead accepts nothing, and all other combinations not listed
// here are invalid.
func transition(current State, input Input) (State, bool) {
	switch current {
	case Idle:
		switch input {
		case StartMoving:
			return Moving, true
		case StartEating:
			return Eating, true
		case StartMining:
			return Mining, true
		case StartBuilding:
			return Building, true
		case StartFleeing:
			return Fleeing, true
		case Die:
			return Dead, true
		}
	case Moving:
		switch input {
		case Arrive:
			return Idle, true
		case StartEating:
			return Eating, true
		case StartMining:
			return Mining, true
		case StartBuilding:
			return Building, true
		case StartFleeing:
			return Fleeing, true
		case Die:
			return Dead, true
		}
	case Eating:
		switch input {
		case Finish, Interrupt:
			return Idle, true
		case StartFleeing:
			return Fleeing, true
		case Die:
			return Dead, true
		}
	case Mining:
		switch input {
		case Finish, Interrupt:
			return Idle, true
		case StartFleeing:
			return Fleeing, true
		case Die:
			return Dead, true
		}
	case Building:
		switch input {
		case Finish, Interrupt:
			return Idle, true
		case StartFleeing:
			return Fleeing, true
		case Die:
			return Dead, true
		}
	case Fleeing:
		switch input {
		case Safe:
			return Idle, true
		case Die:
			return Dead, true
		}
	case Dead:
		return Dead, false
	}
	return current, false
}

// StateData carries whichever fields are relevant to the current state.
// Unlike the tagged-union original, only the fields matching State are
// meaningful at any given time.
type StateData struct {
	TargetX, TargetY     float64
	NutritionRemaining   float64
	Progress             float64
	MaterialID           material.ID
	FleeFromX, FleeFromY float64
}

// ExecutionState wraps the FSM with a per-state timer and data payload.
type ExecutionState struct {
	state     State
	timer     float64
	data      StateData
}

// NewExecutionState starts a fresh creature at Idle.
func NewExecutionState() *ExecutionState {
	return &ExecutionState{state: Idle}
}

// Current returns the active state.
func (e *ExecutionState) Current() State { return e.state }

// TimeInState returns seconds spent in the current state.
func (e *ExecutionState) TimeInState() float64 { return e.timer }

// Data returns the state-specific payload.
func (e *ExecutionState) Data() StateData { return e.data }

// Tick advances the state timer by dt seconds.
func (e *ExecutionState) Tick(dt float64) { e.timer += dt }

// Transition attempts the input against the transition table, resetting
// the timer on success. Invalid transitions are rejected and leave the
// state unchanged, matching (C3): dead creatures accept no transition.
func (e *ExecutionState) Transition(input Input) bool {
	next, ok := transition(e.state, input)
	if !ok {
		return false
	}
	e.state = next
	e.timer = 0
	return true
}

func (e *ExecutionState) StartMovingTo(x, y float64) bool {
	if !e.Transition(StartMoving) {
		return false
	}
	e.data = StateData{TargetX: x, TargetY: y}
	return true
}

func (e *ExecutionState) StartEatingAt(x, y, nutrition float64) bool {
	if !e.Transition(StartEating) {
		return false
	}
	e.data = StateData{TargetX: x, TargetY: y, NutritionRemaining: nutrition}
	return true
}

func (e *ExecutionState) StartMiningAt(x, y float64) bool {
	if !e.Transition(StartMining) {
		return false
	}
	e.data = StateData{TargetX: x, TargetY: y}
	return true
}

func (e *ExecutionState) StartBuildingAt(x, y float64, materialID material.ID) bool {
	if !e.Transition(StartBuilding) {
		return false
	}
	e.data = StateData{TargetX: x, TargetY: y, MaterialID: materialID}
	return true
}

func (e *ExecutionState) ForceFlee(fromX, fromY float64) bool {
	if !e.Transition(StartFleeing) {
		return false
	}
	e.data = StateData{FleeFromX: fromX, FleeFromY: fromY}
	return true
}

func (e *ExecutionState) Die() bool     { return e.Transition(Die) }
func (e *ExecutionState) Finish() bool  { return e.Transition(Finish) }
func (e *ExecutionState) Arrive() bool  { return e.Transition(Arrive) }
func (e *ExecutionState) Safe() bool    { return e.Transition(Safe) }
func (e *ExecutionState) IsDead() bool  { return e.state == Dead }
func (e *ExecutionState) IsIdle() bool  { return e.state == Idle }
