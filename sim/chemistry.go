package sim

import (
	"github.com/pthm-cable/grainworld/chunkmgr"
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
	"github.com/pthm-cable/grainworld/rng"
	"github.com/pthm-cable/grainworld/telemetry"
)

// neighbors4 are the 4-connected offsets chemistry and heat diffuse
// across.
var neighbors4 = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Chemistry runs ignition spread, combustion completion, acid corrosion,
// and water/fire interaction over every active chunk.
func Chemistry(cm *chunkmgr.Manager, reg *material.Registry, tick, seed uint64, stats telemetry.Sink) {
	r := rng.Split(seed, tick, "chemistry")
	for _, c := range cm.Chunks() {
		if !cm.NeedsCAUpdate(c) {
			continue
		}
		chemistryChunk(cm, reg, c, r, stats)
	}
}

func chemistryChunk(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord, r rng.Source, stats telemetry.Sink) {
	ch, ok := cm.Get(c)
	if !ok {
		return
	}

	// burningAtStart snapshots which same-chunk cells are already
	// Burning before this pass mutates anything. Ignition spread reads
	// from it instead of the live grid: a single-tick flash (a Fire
	// pixel completes combustion and converts to Smoke the instant it's
	// processed, since its BurnRate defaults to a full-consumption rate
	// of 1) would otherwise vanish from the grid before cells scanned
	// later in the same pass — e.g. rows below it — ever get a chance
	// to see it as alight.
	var burningAtStart [pixel.Size * pixel.Size]bool
	for i := 0; i < pixel.Size*pixel.Size; i++ {
		burningAtStart[i] = ch.Cells()[i].Flags&pixel.Burning != 0
	}

	for ly := 0; ly < pixel.Size; ly++ {
		for lx := 0; lx < pixel.Size; lx++ {
			p := ch.Get(lx, ly)
			if p.IsEmpty() || p.Flags&pixel.Updated != 0 {
				continue
			}
			def := reg.Get(p.MaterialID)
			reactOne(cm, reg, c, lx, ly, p, def, &burningAtStart, r, stats)
		}
	}
}

func eachNeighbor(cm *chunkmgr.Manager, c chunkmgr.Coord, lx, ly int, fn func(nc chunkmgr.Coord, nlx, nly int, ch *pixel.Chunk)) {
	for _, off := range neighbors4 {
		wx, wy := chunkmgr.ChunkToWorld(c, lx+off[0], ly+off[1])
		nc, nlx, nly := chunkmgr.WorldToChunk(wx, wy)
		ch, ok := cm.Get(nc)
		if !ok {
			continue
		}
		fn(nc, nlx, nly, ch)
	}
}

func reactOne(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord, lx, ly int, p pixel.Pixel, def material.Def, burningAtStart *[pixel.Size * pixel.Size]bool, r rng.Source, stats telemetry.Sink) {
	_, _, _, self, ok := cellAt(cm, c, lx, ly)
	if !ok {
		return
	}

	if p.Flags&pixel.Burning != 0 {
		completeCombustion(cm, reg, c, lx, ly, self, p, def, stats)
		return
	}

	if def.Flammable {
		touchesFire := false
		eachNeighbor(cm, c, lx, ly, func(nc chunkmgr.Coord, nlx, nly int, nch *pixel.Chunk) {
			if nc == c {
				if burningAtStart[nly*pixel.Size+nlx] {
					touchesFire = true
				}
				return
			}
			np := nch.Get(nlx, nly)
			if np.Flags&pixel.Burning != 0 {
				touchesFire = true
			}
		})
		if touchesFire {
			ignite(self, lx, ly, p, stats)
			return
		}
	}

	if def.Tags&material.TagToxic != 0 {
		corrode(cm, reg, c, lx, ly, p, def, r, stats)
		return
	}

	if def.Name == "Water" {
		extinguishNeighbors(cm, reg, c, lx, ly, self, stats)
	}
}

func ignite(self *pixel.Chunk, lx, ly int, p pixel.Pixel, stats telemetry.Sink) {
	p.Flags |= pixel.Burning
	self.Set(lx, ly, p)
	if stats != nil {
		stats.RecordReaction()
	}
}

// completeCombustion advances a burning pixel's consumed fraction by
// def.BurnRate this tick and converts it to BurnsTo only once that
// fraction reaches 1, matching spec.md §4.3/§4.4's gradual burn-progress
// model rather than converting on the tick after ignition.
func completeCombustion(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord, lx, ly int, self *pixel.Chunk, p pixel.Pixel, def material.Def, stats telemetry.Sink) {
	idx := ly*pixel.Size + lx
	rate := def.BurnRate
	if rate <= 0 {
		rate = 1
	}
	self.BurnProgress[idx] += rate
	addHeatAt(cm, c, lx, ly, 40, def)

	if self.BurnProgress[idx] < 1 {
		// Still burning: stamp Updated (via Set) so later passes this
		// tick skip it, without consuming the material yet.
		self.Set(lx, ly, p)
		return
	}

	self.BurnProgress[idx] = 0
	self.SetMaterial(lx, ly, def.BurnsTo)
	if stats != nil {
		stats.RecordReaction()
	}
}

func corrode(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord, lx, ly int, p pixel.Pixel, def material.Def, r rng.Source, stats telemetry.Sink) {
	eachNeighbor(cm, c, lx, ly, func(_ chunkmgr.Coord, nlx, nly int, nch *pixel.Chunk) {
		np := nch.Get(nlx, nly)
		if np.IsEmpty() {
			return
		}
		ndef := reg.Get(np.MaterialID)
		if ndef.Tags&material.TagToxic != 0 {
			return
		}
		if !r.CheckProbability(0.02) {
			return
		}
		nch.Set(nlx, nly, pixel.Air)
		if stats != nil {
			stats.RecordReaction()
		}
	})
}

func extinguishNeighbors(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord, lx, ly int, self *pixel.Chunk, stats telemetry.Sink) {
	eachNeighbor(cm, c, lx, ly, func(_ chunkmgr.Coord, nlx, nly int, nch *pixel.Chunk) {
		np := nch.Get(nlx, nly)
		if np.Flags&pixel.Burning == 0 {
			return
		}
		np.Flags &^= pixel.Burning
		nch.Set(nlx, nly, np)
		if stats != nil {
			stats.RecordReaction()
		}
	})
}
