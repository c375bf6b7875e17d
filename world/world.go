// Package world owns every subsystem — chunk manager, pressure, light,
// debris, electrical current, and the creature manager — and drives the
// fixed per-tick pipeline order from the system overview: movement,
// chemistry, heat, pressure, light, structural/debris, electrical.
package world

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/grainworld/chunkmgr"
	"github.com/pthm-cable/grainworld/config"
	"github.com/pthm-cable/grainworld/creature"
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
	"github.com/pthm-cable/grainworld/rng"
	"github.com/pthm-cable/grainworld/sim"
	"github.com/pthm-cable/grainworld/telemetry"
)

// Player is the plain-data subfield the core updates each tick but
// otherwise treats as opaque payload.
type Player struct {
	X, Y       float64
	VelX, VelY float64
	Grounded   bool
	Health     float64
	Hunger     float64
	Inventory  map[material.ID]int
}

// InputState is the per-tick player input the core's own physics routine
// consumes; the core never reads keyboards or devices itself.
type InputState struct {
	MoveX   float64
	Jump    bool
	Interact bool
}

// World is the facade owning every subsystem: the chunk manager, the
// coarse pressure grid, the conductor current tracker, the in-flight
// debris set, the creature manager, and the material registry.
type World struct {
	Chunks     *chunkmgr.Manager
	Materials  *material.Registry
	Pressure   *sim.PressureField
	Current    *sim.Current
	Debris     *sim.DebrisSet
	Creatures  *creature.Manager
	Player     Player

	ActiveChunkRadius int
	Seed              uint64
	tick              uint64

	minStructuralChunk int
}

// NewWorld wires every subsystem together fresh, ready to have chunks
// staged via EnsureChunksForArea before the first Tick. simCfg supplies
// the per-tick pass constants (config.SimulationConfig) that used to be
// hardcoded package constants in sim: pressure decay, debris settle
// speed, debris reap timeout, and minimum structural cluster size.
func NewWorld(seed uint64, activeChunkRadius int, vitalsCfg creature.VitalsConfig, simCfg config.SimulationConfig) *World {
	if simCfg.PressureDecay <= 0 {
		simCfg.PressureDecay = sim.PressureDecayRate
	}
	if simCfg.DebrisSettleSpeed <= 0 {
		simCfg.DebrisSettleSpeed = 0.05
	}
	if simCfg.MinStructuralChunk <= 0 {
		simCfg.MinStructuralChunk = sim.MinDebrisClusterSize
	}

	reg := material.NewDefaultRegistry()
	cm := chunkmgr.NewManager()
	w := &World{
		Chunks:             cm,
		Materials:          reg,
		Pressure:           sim.NewPressureField(float32(simCfg.PressureDecay)),
		Current:            sim.NewCurrent(),
		Debris:             sim.NewDebrisSet(simCfg.DebrisSettleSpeed, simCfg.DebrisReapTicks),
		ActiveChunkRadius:  activeChunkRadius,
		Seed:               seed,
		Player:             Player{Inventory: make(map[material.ID]int)},
		minStructuralChunk: simCfg.MinStructuralChunk,
	}
	ecsWorld := ecs.NewWorld()
	w.Creatures = creature.NewManager(ecsWorld, reg, vitalsCfg)
	return w
}

// Tick advances the world one step of Δ seconds: it recomputes the
// active set around the player, runs every subsystem pass in the fixed
// order, then the creature loop, then clears per-tick transient
// state. stats may be nil to discard telemetry; r drives every
// tick-scoped probabilistic branch. paused, when true, skips simulation
// entirely but still increments the tick counter.
func (w *World) Tick(dt float64, stats telemetry.Sink, r rng.Source, paused bool) {
	if stats == nil {
		stats = telemetry.NoopSink{}
	}

	focus, _, _ := chunkmgr.WorldToChunk(int(w.Player.X), int(w.Player.Y))
	w.Chunks.UpdateActiveSet(focus, w.ActiveChunkRadius)

	if !paused {
		sim.Movement(w.Chunks, w.Materials, w.tick, w.Seed, stats)
		sim.Chemistry(w.Chunks, w.Materials, w.tick, w.Seed, stats)
		sim.Heat(w.Chunks, w.Materials, stats)
		sim.Pressure(w.Chunks, w.Materials, w.Pressure)
		sim.Light(w.Chunks, w.Materials)
		sim.Structural(w.Chunks, w.Materials, w.Debris, w.minStructuralChunk, w.Seed, w.tick)
		w.Debris.Step(w.groundY(), dt)
		w.Debris.Reintegrate(w.Chunks)
		sim.Electrical(w.Chunks, w.Materials, w.Current)

		w.Creatures.Tick(dt, w, w, r)
	}

	w.Chunks.ClearTickState()
	w.tick++
}

// groundY is the world's static ground-plane collider for debris contact.
func (w *World) groundY() float64 { return 10000 }

// TickCount returns the current tick counter.
func (w *World) TickCount() uint64 { return w.tick }

// UpdatePlayer runs the core's own physics routine over the player
// subfield given one frame of input.
func (w *World) UpdatePlayer(input InputState, dt float64) {
	w.Player.VelX = input.MoveX * 4
	if input.Jump && w.Player.Grounded {
		w.Player.VelY = -6
	}
	w.Player.VelY += 9.8 * dt

	nx := w.Player.X + w.Player.VelX*dt
	ny := w.Player.Y + w.Player.VelY*dt

	if w.IsSolidAt(int(nx), int(w.Player.Y)) {
		nx = w.Player.X
		w.Player.VelX = 0
	}
	grounded := w.IsSolidAt(int(w.Player.X), int(ny)+1)
	if w.IsSolidAt(int(w.Player.X), int(ny)) {
		ny = w.Player.Y
		w.Player.VelY = 0
	}

	w.Player.X, w.Player.Y = nx, ny
	w.Player.Grounded = grounded
}

// EnsureChunksForArea pre-allocates every chunk in an inclusive
// world-coordinate rect, used to stage scenarios without a generator.
func (w *World) EnsureChunksForArea(minX, minY, maxX, maxY int) {
	minC, _, _ := chunkmgr.WorldToChunk(minX, minY)
	maxC, _, _ := chunkmgr.WorldToChunk(maxX, maxY)
	w.Chunks.EnsureArea(minC, maxC)
}

// ChunkPositions enumerates every loaded chunk coordinate.
func (w *World) ChunkPositions() []chunkmgr.Coord { return w.Chunks.Chunks() }

// ActiveChunkPositions enumerates the current active set.
func (w *World) ActiveChunkPositions() []chunkmgr.Coord { return w.Chunks.ActivePositions() }

// GetChunk returns the loaded chunk at c, if any.
func (w *World) GetChunk(c chunkmgr.Coord) (*pixel.Chunk, bool) { return w.Chunks.Get(c) }

// DebugMineCircle removes every solid pixel within radius r of (cx, cy),
// a debug/tooling convenience mutator.
func (w *World) DebugMineCircle(cx, cy int, r float64) {
	for _, hit := range sim.PixelsInRadius(w.Chunks, cx, cy, r) {
		if w.Materials.Get(hit.MaterialID).Name == "Bedrock" {
			continue
		}
		sim.SetPixel(w.Chunks, hit.X, hit.Y, material.Air)
	}
}

// PlaceMaterialDebug stamps a filled disc of the given material, a
// debug/tooling convenience mutator.
func (w *World) PlaceMaterialDebug(cx, cy int, id material.ID, r float64) {
	ir := int(r)
	for y := cy - ir; y <= cy+ir; y++ {
		for x := cx - ir; x <= cx+ir; x++ {
			dx, dy := float64(x-cx), float64(y-cy)
			if dx*dx+dy*dy > r*r {
				continue
			}
			sim.SetPixel(w.Chunks, x, y, id)
		}
	}
}

// AddPressureAt injects pressure at a world coordinate.
func (w *World) AddPressureAt(x, y int, delta float32) {
	c, lx, ly := chunkmgr.WorldToChunk(x, y)
	w.Pressure.AddPressureAt(c, lx, ly, delta)
}
