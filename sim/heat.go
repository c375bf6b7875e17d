package sim

import (
	"github.com/pthm-cable/grainworld/chunkmgr"
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
	"github.com/pthm-cable/grainworld/telemetry"
)

// AmbientCoolingRate is the per-tick temperature loss for cells exposed
// to a clear sky.
const AmbientCoolingRate = 0.05

// Heat diffuses each cell's temperature to its 4-neighbors weighted by
// harmonic-mean heat conductivity, then checks melt/boil/freeze/ignite
// transitions.
func Heat(cm *chunkmgr.Manager, reg *material.Registry, stats telemetry.Sink) {
	for _, c := range cm.Chunks() {
		if !cm.NeedsCAUpdate(c) {
			continue
		}
		diffuseChunk(cm, reg, c)
	}
	for _, c := range cm.Chunks() {
		if !cm.NeedsCAUpdate(c) {
			continue
		}
		transitionChunk(cm, reg, c, stats)
	}
}

func harmonicMean2(a, b float32) float32 {
	if a <= 0 || b <= 0 {
		return 0
	}
	return 2 * a * b / (a + b)
}

func diffuseChunk(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord) {
	ch, ok := cm.Get(c)
	if !ok {
		return
	}
	delta := make(map[[2]int]float32, pixel.Size)
	for ly := 0; ly < pixel.Size; ly++ {
		for lx := 0; lx < pixel.Size; lx++ {
			idx := ly*pixel.Size + lx
			t := ch.Temperature[idx]
			p := ch.Get(lx, ly)
			def := reg.Get(p.MaterialID)

			exposed := true
			for ny := ly - 1; ny >= 0; ny-- {
				if !ch.Get(lx, ny).IsEmpty() {
					exposed = false
					break
				}
			}
			if exposed {
				delta[[2]int{lx, ly}] += -AmbientCoolingRate
			}

			eachNeighbor(cm, c, lx, ly, func(_ chunkmgr.Coord, nlx, nly int, nch *pixel.Chunk) {
				nidx := nly*pixel.Size + nlx
				nt := nch.Temperature[nidx]
				np := nch.Get(nlx, nly)
				ndef := reg.Get(np.MaterialID)
				k := harmonicMean2(def.HeatConductivity, ndef.HeatConductivity)
				if k <= 0 {
					return
				}
				flow := (nt - t) * k * 0.125
				delta[[2]int{lx, ly}] += flow
			})
		}
	}
	for key, d := range delta {
		idx := key[1]*pixel.Size + key[0]
		ch.Temperature[idx] += d
		if ch.Temperature[idx] < -50 {
			ch.Temperature[idx] = -50
		}
	}
}

// addHeatAt injects a fixed amount of heat at a world-local cell,
// spreading a fraction to the 4-neighborhood weighted by conductivity
// (used by combustion to heat the surrounding cells).
func addHeatAt(cm *chunkmgr.Manager, c chunkmgr.Coord, lx, ly int, amount float32, def material.Def) {
	ch, ok := cm.Get(c)
	if !ok {
		return
	}
	idx := ly*pixel.Size + lx
	ch.Temperature[idx] += amount
	eachNeighbor(cm, c, lx, ly, func(_ chunkmgr.Coord, nlx, nly int, nch *pixel.Chunk) {
		nidx := nly*pixel.Size + nlx
		nch.Temperature[nidx] += amount * def.HeatConductivity * 0.25
	})
}

func transitionChunk(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord, stats telemetry.Sink) {
	ch, ok := cm.Get(c)
	if !ok {
		return
	}
	for ly := 0; ly < pixel.Size; ly++ {
		for lx := 0; lx < pixel.Size; lx++ {
			p := ch.Get(lx, ly)
			if p.IsEmpty() {
				continue
			}
			idx := ly*pixel.Size + lx
			t := ch.Temperature[idx]
			def := reg.Get(p.MaterialID)

			switch {
			case def.BoilingPoint != nil && t >= *def.BoilingPoint && def.BoilsTo != p.MaterialID:
				ch.SetMaterial(lx, ly, def.BoilsTo)
			case def.MeltingPoint != nil && t >= *def.MeltingPoint && def.MeltsTo != p.MaterialID:
				ch.SetMaterial(lx, ly, def.MeltsTo)
			case def.FreezingPoint != nil && t <= *def.FreezingPoint && def.FreezesTo != p.MaterialID:
				ch.SetMaterial(lx, ly, def.FreezesTo)
			case def.IgnitionTemp != nil && t >= *def.IgnitionTemp && def.Flammable && p.Flags&pixel.Burning == 0:
				p.Flags |= pixel.Burning
				ch.Set(lx, ly, p)
			default:
				continue
			}
			if stats != nil {
				stats.RecordStateChange()
			}
		}
	}
}
