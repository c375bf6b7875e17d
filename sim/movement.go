// Package sim implements the ordered per-tick cellular-automata passes
// that give the pixel grid its physics: movement, chemistry, heat,
// pressure, light, structural integrity, debris, and electrical
// conduction, run in that fixed order every tick.
package sim

import (
	"github.com/pthm-cable/grainworld/chunkmgr"
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
	"github.com/pthm-cable/grainworld/rng"
	"github.com/pthm-cable/grainworld/telemetry"
)

// Movement runs the CA movement pass over every chunk chunkmgr reports as
// eligible. Scan direction alternates per tick so resolution bias
// doesn't accumulate in one direction.
func Movement(cm *chunkmgr.Manager, reg *material.Registry, tick uint64, seed uint64, stats telemetry.Sink) {
	leftToRight := tick%2 == 0
	for _, c := range cm.Chunks() {
		if !cm.NeedsCAUpdate(c) {
			continue
		}
		moveChunk(cm, reg, c, leftToRight, rng.Split(seed, tick, "movement"), stats)
	}
}

func moveChunk(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord, leftToRight bool, r rng.Source, stats telemetry.Sink) {
	ch, ok := cm.Get(c)
	if !ok {
		return
	}
	// Bottom-up so a pixel that falls doesn't get revisited lower in the
	// same pass; the left/right order within each row is reversed every
	// other tick.
	for ly := pixel.Size - 1; ly >= 0; ly-- {
		for i := 0; i < pixel.Size; i++ {
			lx := i
			if !leftToRight {
				lx = pixel.Size - 1 - i
			}
			p := ch.Get(lx, ly)
			if p.IsEmpty() || p.Flags&pixel.Updated != 0 {
				continue
			}
			def := reg.Get(p.MaterialID)
			moveOne(cm, reg, c, lx, ly, p, def, r, stats)
		}
	}
}

// cellAt resolves a chunk-local coordinate that may spill into a
// neighboring chunk (movement crosses chunk borders at the one-ring).
func cellAt(cm *chunkmgr.Manager, c chunkmgr.Coord, lx, ly int) (chunkmgr.Coord, int, int, *pixel.Chunk, bool) {
	wx, wy := chunkmgr.ChunkToWorld(c, lx, ly)
	nc, nlx, nly := chunkmgr.WorldToChunk(wx, wy)
	ch, ok := cm.Get(nc)
	return nc, nlx, nly, ch, ok
}

func moveOne(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord, lx, ly int, p pixel.Pixel, def material.Def, r rng.Source, stats telemetry.Sink) {
	switch def.Type {
	case material.TypePowder:
		movePowder(cm, reg, c, lx, ly, p, def, r, stats)
	case material.TypeLiquid:
		moveLiquid(cm, reg, c, lx, ly, p, def, r, stats)
	case material.TypeGas:
		moveGas(cm, reg, c, lx, ly, p, def, r, stats)
	case material.TypeSolid:
		// Solids never move via CA.
	}
}

// canDisplace reports whether mover may swap into occupant: any material
// may fall into air, and a denser material may sink through a less
// dense liquid or gas, but nothing displaces a solid.
func canDisplace(reg *material.Registry, mover, occupant material.Def) bool {
	if occupant.Type == material.TypeSolid {
		return false
	}
	if occupant.ID == material.Air {
		return true
	}
	return mover.Density > occupant.Density
}

func tryMove(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord, lx, ly, tlx, tly int, p pixel.Pixel, def material.Def, stats telemetry.Sink) bool {
	_, srcLX, srcLY, srcChunk, ok := cellAt(cm, c, lx, ly)
	if !ok {
		return false
	}
	dstC, dstLX, dstLY, dstChunk, ok := cellAt(cm, c, tlx, tly)
	if !ok {
		return false
	}
	occupant := dstChunk.Get(dstLX, dstLY)
	occupantDef := reg.Get(occupant.MaterialID)
	if !canDisplace(reg, def, occupantDef) {
		return false
	}

	moved := p
	moved.Flags |= pixel.Updated
	occupant.Flags |= pixel.Updated

	srcChunk.Set(srcLX, srcLY, occupant)
	dstChunk.Set(dstLX, dstLY, moved)
	cm.GetOrCreate(dstC).SimulationActive = true

	if stats != nil {
		stats.RecordPixelMoved()
	}
	return true
}

func movePowder(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord, lx, ly int, p pixel.Pixel, def material.Def, r rng.Source, stats telemetry.Sink) {
	if tryMove(cm, reg, c, lx, ly, lx, ly+1, p, def, stats) {
		return
	}
	left, right := lx-1, lx+1
	if r.GenBool() {
		left, right = right, left
	}
	if tryMove(cm, reg, c, lx, ly, left, ly+1, p, def, stats) {
		return
	}
	tryMove(cm, reg, c, lx, ly, right, ly+1, p, def, stats)
}

func moveLiquid(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord, lx, ly int, p pixel.Pixel, def material.Def, r rng.Source, stats telemetry.Sink) {
	if tryMove(cm, reg, c, lx, ly, lx, ly+1, p, def, stats) {
		return
	}
	left, right := lx-1, lx+1
	if r.GenBool() {
		left, right = right, left
	}
	if tryMove(cm, reg, c, lx, ly, left, ly+1, p, def, stats) {
		return
	}
	if tryMove(cm, reg, c, lx, ly, right, ly+1, p, def, stats) {
		return
	}
	spread := 1 + int(def.Viscosity*4)
	for d := 1; d <= spread; d++ {
		if tryMove(cm, reg, c, lx, ly, left-(d-1), ly, p, def, stats) {
			return
		}
		if tryMove(cm, reg, c, lx, ly, right+(d-1), ly, p, def, stats) {
			return
		}
	}
}

func moveGas(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord, lx, ly int, p pixel.Pixel, def material.Def, r rng.Source, stats telemetry.Sink) {
	if r.CheckProbability(0.01) {
		_, slx, sly, sch, ok := cellAt(cm, c, lx, ly)
		if ok {
			sch.Set(slx, sly, pixel.Air)
			if stats != nil {
				stats.RecordPixelMoved()
			}
		}
		return
	}
	if tryMove(cm, reg, c, lx, ly, lx, ly-1, p, def, stats) {
		return
	}
	left, right := lx-1, lx+1
	if r.GenBool() {
		left, right = right, left
	}
	if tryMove(cm, reg, c, lx, ly, left, ly-1, p, def, stats) {
		return
	}
	if tryMove(cm, reg, c, lx, ly, right, ly-1, p, def, stats) {
		return
	}
	tryMove(cm, reg, c, lx, ly, left, ly, p, def, stats)
}
