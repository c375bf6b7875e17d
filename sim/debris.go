package sim

import (
	"github.com/pthm-cable/grainworld/chunkmgr"
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
)

// Vec2 is a plain 2D vector used by the rigid-body debris integrator.
type Vec2 struct{ X, Y float64 }

// Gravity is the constant downward acceleration applied to debris bodies
// each tick, in pixels/tick².
const Gravity = 0.12

// Body is an off-grid rigid body lifted out of the pixel grid by
// structural analysis: a bounding offset map plus translation and
// rotation state.
type Body struct {
	Center     Vec2
	Velocity   Vec2
	Rotation   float64
	AngularVel float64
	Offsets    map[worldCell]material.ID

	settled       bool
	ticksInFlight int
	// forceReap marks a body reintegrated by the reap timeout rather
	// than by settling; reintegrateBody writes it unconditionally
	// instead of deferring or respecting destination occupancy.
	forceReap bool
}

// Settled reports whether the body's speed has dropped below the set's
// settle threshold, or it has been force-settled by the reap timeout.
func (b *Body) Settled() bool { return b.settled }

// TicksInFlight reports how many Step calls this body has spent
// unsettled, for reap-timeout bookkeeping.
func (b *Body) TicksInFlight() int { return b.ticksInFlight }

// DebrisSet owns every in-flight debris body plus the two config-sourced
// thresholds that govern when a body settles or is reaped.
type DebrisSet struct {
	bodies []*Body

	// settleVelocity is the |v| threshold below which a body is
	// considered at rest: config.SimulationConfig.DebrisSettleSpeed.
	settleVelocity float64

	// reapTicks is the conservative timeout after which a body that
	// never settles is force-reintegrated at its last known position
	// regardless of occupancy, per spec.md §4.8/§7's debris contract.
	// Zero or negative disables the timeout.
	reapTicks int
}

// NewDebrisSet returns an empty debris set using settleVelocity and
// reapTicks sourced from config.SimulationConfig's DebrisSettleSpeed and
// DebrisReapTicks fields.
func NewDebrisSet(settleVelocity float64, reapTicks int) *DebrisSet {
	return &DebrisSet{settleVelocity: settleVelocity, reapTicks: reapTicks}
}

// Add registers a newly lifted body.
func (d *DebrisSet) Add(b *Body) { d.bodies = append(d.bodies, b) }

// Count returns the number of in-flight (not yet reintegrated) bodies.
func (d *DebrisSet) Count() int { return len(d.bodies) }

// Step integrates every debris body one tick: semi-implicit Euler under
// gravity, contact against the ground plane y=groundY, then marks bodies
// settled once speed drops below settleVelocity, or once ticksInFlight
// reaches reapTicks without ever settling.
func (d *DebrisSet) Step(groundY float64, dt float64) {
	for _, b := range d.bodies {
		if b.settled {
			continue
		}
		b.ticksInFlight++

		b.Velocity.Y += Gravity * dt
		b.Center.X += b.Velocity.X * dt
		b.Center.Y += b.Velocity.Y * dt
		b.Rotation += b.AngularVel * dt

		if b.Center.Y >= groundY {
			b.Center.Y = groundY
			b.Velocity.Y = 0
		}

		speed := b.Velocity.X*b.Velocity.X + b.Velocity.Y*b.Velocity.Y
		if speed < d.settleVelocity*d.settleVelocity {
			b.settled = true
			continue
		}

		if d.reapTicks > 0 && b.ticksInFlight >= d.reapTicks {
			b.settled = true
			b.forceReap = true
		}
	}
}

// Reintegrate writes every settled body's offsets back into the grid,
// then removes it from the set. A normally-settled body defers (stays
// in flight) if any destination chunk is unloaded, and silently
// discards any offset whose destination cell isn't air. A reaped body
// writes unconditionally instead, dropping only the offsets whose
// destination chunk is unloaded.
func (d *DebrisSet) Reintegrate(cm *chunkmgr.Manager) {
	remaining := d.bodies[:0]
	for _, b := range d.bodies {
		if !b.settled {
			remaining = append(remaining, b)
			continue
		}
		if !reintegrateBody(cm, b) {
			remaining = append(remaining, b)
			continue
		}
	}
	d.bodies = remaining
}

func reintegrateBody(cm *chunkmgr.Manager, b *Body) bool {
	cx, cy := int(b.Center.X), int(b.Center.Y)
	if !b.forceReap {
		for off := range b.Offsets {
			wx, wy := cx+off.X, cy+off.Y
			c, _, _ := chunkmgr.WorldToChunk(wx, wy)
			if _, ok := cm.Get(c); !ok {
				return false
			}
		}
	}
	for off, id := range b.Offsets {
		wx, wy := cx+off.X, cy+off.Y
		c, lx, ly := chunkmgr.WorldToChunk(wx, wy)
		ch, ok := cm.Get(c)
		if !ok {
			continue
		}
		if b.forceReap || ch.Get(lx, ly).IsEmpty() {
			ch.Set(lx, ly, pixel.Pixel{MaterialID: id})
		}
	}
	return true
}
