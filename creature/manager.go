package creature

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/grainworld/genome"
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/rng"
)

// Position is a creature's world-space location.
type Position struct{ X, Y float64 }

// Velocity is a creature's current world-space motion.
type Velocity struct{ X, Y float64 }

// Body holds a creature's sampled morphology and sensor loadout. Both are
// fixed at spawn time; nothing here mutates per tick.
type Body struct {
	Morphology genome.Morphology
	Sensors    SensorConfig
}

// Brain pairs a genome with the controller built from it.
type Brain struct {
	Genome     *genome.Genome
	Controller *genome.Controller
}

// Exec is the per-creature runtime state: the execution FSM, the GOAP
// goal driving it, and the current plan.
type Exec struct {
	State *ExecutionState
	Goal  Goal
	Plan  []Action
}

// Manager drives every spawned creature through Sense, UpdateNeeds, Plan,
// Execute, Act, and Physics each tick.
type Manager struct {
	world *ecs.World

	mapper *ecs.Map6[Position, Velocity, Vitals, Body, Brain, Exec]
	filter *ecs.Filter6[Position, Velocity, Vitals, Body, Brain, Exec]

	materials    *material.Registry
	vitalsConfig VitalsConfig

	// maxPopulation caps live creatures; 0 means unbounded. Spawn beyond
	// the cap is a CapacityReached failure, not a panic.
	maxPopulation int

	IsFood   MaterialClassifier
	IsDanger MaterialClassifier
}

// NewManager wires a creature manager over world, classifying food and
// danger materials from the registry's tags (TagEdible, TagToxic) unless
// the caller overrides IsFood/IsDanger afterward.
func NewManager(world *ecs.World, materials *material.Registry, cfg VitalsConfig) *Manager {
	m := &Manager{
		world:        world,
		mapper:       ecs.NewMap6[Position, Velocity, Vitals, Body, Brain, Exec](world),
		filter:       ecs.NewFilter6[Position, Velocity, Vitals, Body, Brain, Exec](world),
		materials:    materials,
		vitalsConfig: cfg,
	}
	m.IsFood = func(id material.ID) bool { return materials.Get(id).Tags&material.TagEdible != 0 }
	m.IsDanger = func(id material.ID) bool { return materials.Get(id).Tags&material.TagToxic != 0 }
	return m
}

// SetMaxPopulation caps the number of live creatures Spawn will accept.
// A value of 0 removes the cap.
func (m *Manager) SetMaxPopulation(n int) { m.maxPopulation = n }

// Spawn creates a new creature entity at (x,y) with the given genome,
// morphology, and controller, starting at full health and hunger. If
// the manager is at its population cap, no entity is created: the zero
// ecs.Entity is returned with ok=false, and the rejection is logged at
// warning level (the CapacityReached error kind — per-tick spawns
// never panic or abort the caller).
func (m *Manager) Spawn(x, y float64, g *genome.Genome, morph genome.Morphology, controller *genome.Controller) (ecs.Entity, bool) {
	return m.spawn(x, y, NewVitals(m.vitalsConfig), g, morph, controller)
}

// SpawnWithVitals is Spawn with an explicit starting Vitals value, for
// callers that need a creature to begin somewhere other than full
// health and hunger (e.g. reproducing a starvation scenario from a
// known initial state).
func (m *Manager) SpawnWithVitals(x, y float64, vit Vitals, g *genome.Genome, morph genome.Morphology, controller *genome.Controller) (ecs.Entity, bool) {
	return m.spawn(x, y, vit, g, morph, controller)
}

func (m *Manager) spawn(x, y float64, vit Vitals, g *genome.Genome, morph genome.Morphology, controller *genome.Controller) (ecs.Entity, bool) {
	if m.maxPopulation > 0 && m.Count() >= m.maxPopulation {
		slog.Warn("creature spawn rejected: population cap reached", "max_population", m.maxPopulation)
		return ecs.Entity{}, false
	}

	pos := Position{X: x, Y: y}
	vel := Velocity{}
	body := Body{Morphology: morph, Sensors: DefaultSensorConfig()}
	brain := Brain{Genome: g, Controller: controller}
	exec := Exec{State: NewExecutionState(), Goal: GoalExplore}
	return m.mapper.NewEntity(&pos, &vel, &vit, &body, &brain, &exec), true
}

// Remove deletes a creature entity.
func (m *Manager) Remove(e ecs.Entity) { m.mapper.Remove(e) }

// Count returns the number of currently alive creatures.
func (m *Manager) Count() int {
	n := 0
	q := m.filter.Query()
	for q.Next() {
		n++
	}
	return n
}

// Tick advances every creature one step of the Sense → UpdateNeeds → Plan
// → Execute → Act → Physics pipeline, then removes anything that died
// this tick.
func (m *Manager) Tick(dt float64, w WorldAccess, mw WorldMutAccess, r rng.Source) {
	type dead struct{ entity ecs.Entity }
	var toRemove []dead

	q := m.filter.Query()
	for q.Next() {
		pos, vel, vit, body, brain, exec := q.Get()
		entity := q.Entity()

		if exec.State.IsDead() {
			toRemove = append(toRemove, dead{entity})
			continue
		}

		perception := Sense(w, Vec2{X: pos.X, Y: pos.Y}, body.Sensors, m.IsFood, m.IsDanger)

		if vit.Update(m.vitalsConfig, dt) {
			exec.State.Die()
			toRemove = append(toRemove, dead{entity})
			continue
		}

		ws := m.worldState(vit, perception, pos)
		exec.Goal = CurrentGoal(ws)
		exec.Plan = Plan(ws, exec.Goal, DefaultActions())

		m.execute(exec, perception, pos, r)

		m.act(exec, brain, perception, pos, vel, vit, w, mw, dt)

		exec.State.Tick(dt)
	}

	for _, d := range toRemove {
		m.mapper.Remove(d.entity)
	}
}

// worldState derives the GOAP-visible world-state properties from a
// creature's current vitals and perception.
func (m *Manager) worldState(vit *Vitals, p Perception, pos *Position) WorldState {
	return WorldState{
		HasFood:       p.HasFoodNearby && p.NearestFoodDist < 1,
		NearFood:      p.HasFoodNearby,
		IsHungry:      vit.IsHungry(m.vitalsConfig),
		InDanger:      p.ThreatLevel > 0.5,
		IsSafe:        p.ThreatLevel == 0,
		HasEnergy:     vit.HasEnergy(m.vitalsConfig),
		AtDestination: false,
	}
}

// execute drives the FSM from the top of the current plan.
func (m *Manager) execute(exec *Exec, p Perception, pos *Position, r rng.Source) {
	if len(exec.Plan) == 0 {
		return
	}
	top := exec.Plan[0]

	if top.Kind == ActionFlee && exec.State.Current().CanInterrupt() {
		exec.State.ForceFlee(pos.X+p.ThreatDX, pos.Y+p.ThreatDY)
		return
	}

	switch exec.State.Current() {
	case Idle:
		switch top.Kind {
		case ActionMoveToFood:
			exec.State.StartMovingTo(pos.X+p.NearestFoodDX, pos.Y+p.NearestFoodDY)
		case ActionEat:
			exec.State.StartEatingAt(pos.X, pos.Y, 1)
		case ActionWander:
			angle := float64(r.GenF32()) * 2 * math.Pi
			exec.State.StartMovingTo(pos.X+math.Cos(angle)*4, pos.Y+math.Sin(angle)*4)
		}
	case Moving:
		dx, dy := exec.State.Data().TargetX-pos.X, exec.State.Data().TargetY-pos.Y
		if math.Hypot(dx, dy) < 0.5 {
			exec.State.Arrive()
		}
	case Eating, Mining, Building:
		if exec.State.TimeInState() > 1 {
			exec.State.Finish()
		}
	case Fleeing:
		if !(p.ThreatLevel > 0.5) {
			exec.State.Safe()
		}
	}
}

// act performs the world edit or motor command for the current FSM
// state, querying the controller for a motor vector and applying it to
// velocity.
func (m *Manager) act(exec *Exec, brain *Brain, p Perception, pos *Position, vel *Velocity, vit *Vitals, w WorldAccess, mw WorldMutAccess, dt float64) {
	inputs := controllerInputs(p, vit, m.vitalsConfig)
	outputs := brain.Controller.Forward(inputs)
	motorX, motorY := 0.0, 0.0
	if len(outputs) >= 2 {
		motorX, motorY = outputs[0], outputs[1]
	}

	switch exec.State.Current() {
	case Eating:
		x, y := int(math.Round(pos.X)), int(math.Round(pos.Y))
		if _, ok := Eat(mw, w, x, y); ok {
			vit.Feed(m.vitalsConfig, 20)
		}
	case Mining:
		x, y := int(math.Round(pos.X)), int(math.Round(pos.Y))
		Mine(mw, w, m.materials, x, y)
	case Building:
		x, y := int(math.Round(pos.X)), int(math.Round(pos.Y))
		Build(mw, x, y, exec.State.Data().MaterialID)
	case Moving, Fleeing:
		vel.X, vel.Y = motorX, motorY
	default:
		vel.X, vel.Y = 0, 0
	}

	nx, ny := pos.X+vel.X*dt, pos.Y+vel.Y*dt
	if !w.IsSolidAt(int(math.Round(nx)), int(math.Round(ny))) {
		pos.X, pos.Y = nx, ny
	} else {
		vel.X, vel.Y = 0, 0
	}
}

// controllerInputs assembles the fixed input vector fed to a creature's
// controller: perception plus normalized vitals.
func controllerInputs(p Perception, vit *Vitals, cfg VitalsConfig) []float64 {
	return []float64{
		p.NearestFoodDX, p.NearestFoodDY, clamp01(1 - p.NearestFoodDist/32),
		p.ThreatDX, p.ThreatDY, p.ThreatLevel,
		vit.Hunger / cfg.MaxHunger, vit.Health / cfg.MaxHealth,
	}
}
