package sim

import (
	"github.com/pthm-cable/grainworld/chunkmgr"
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
)

// PressureGridFactor is the coarsening factor between the pixel grid and
// the pressure grid: pressure lives at 1/8 chunk resolution.
const PressureGridFactor = 8

// pressureCells is the side length of a chunk's coarse pressure grid.
const pressureCells = pixel.Size / PressureGridFactor

// PressureDecayRate is the default per-tick decay toward zero, matching
// config.SimulationConfig.PressureDecay's shipped default; NewPressureField
// takes the live value as a parameter so it stays configurable.
const PressureDecayRate = 0.02

// PressureField is the coarse per-chunk pressure grid, stored outside
// pixel.Chunk because it is coarser than the per-pixel temperature/light
// fields. PressureGridFactor itself stays a compile-time const because it
// sizes the fixed cells array; a runtime override isn't representable
// without switching the grid to a slice, which nothing here needs.
type PressureField struct {
	cells    map[chunkmgr.Coord]*[pressureCells * pressureCells]float32
	decayRate float32
}

// NewPressureField returns an empty pressure field decaying toward zero
// at decayRate per tick (config.SimulationConfig.PressureDecay); missing
// chunks read as zero pressure.
func NewPressureField(decayRate float32) *PressureField {
	return &PressureField{
		cells:     make(map[chunkmgr.Coord]*[pressureCells * pressureCells]float32),
		decayRate: decayRate,
	}
}

func (f *PressureField) gridOf(c chunkmgr.Coord) *[pressureCells * pressureCells]float32 {
	g, ok := f.cells[c]
	if !ok {
		g = &[pressureCells * pressureCells]float32{}
		f.cells[c] = g
	}
	return g
}

func pressureIndex(lx, ly int) (int, int) { return lx / PressureGridFactor, ly / PressureGridFactor }

// AddPressureAt injects pressure at chunk-local cell (lx, ly) of chunk c.
// No simulation pass calls it; World.AddPressureAt is its only caller.
func (f *PressureField) AddPressureAt(c chunkmgr.Coord, lx, ly int, delta float32) {
	g := f.gridOf(c)
	gx, gy := pressureIndex(lx, ly)
	g[gy*pressureCells+gx] += delta
}

// At reads the pressure at a world-local cell, 0 if the chunk has no
// pressure grid yet.
func (f *PressureField) At(c chunkmgr.Coord, lx, ly int) float32 {
	g, ok := f.cells[c]
	if !ok {
		return 0
	}
	gx, gy := pressureIndex(lx, ly)
	return g[gy*pressureCells+gx]
}

// Pressure decays every active chunk's pressure grid toward zero, then
// advects gas pixels along the local pressure gradient.
func Pressure(cm *chunkmgr.Manager, reg *material.Registry, field *PressureField) {
	for _, c := range cm.Chunks() {
		if !cm.IsActive(c) {
			continue
		}
		g := field.gridOf(c)
		for i := range g {
			if g[i] > 0 {
				g[i] -= field.decayRate
				if g[i] < 0 {
					g[i] = 0
				}
			} else if g[i] < 0 {
				g[i] += field.decayRate
				if g[i] > 0 {
					g[i] = 0
				}
			}
		}
	}

	for _, c := range cm.Chunks() {
		if !cm.IsActive(c) {
			continue
		}
		advectGas(cm, reg, c, field)
	}
}

// advectGas nudges gas pixels one cell toward lower pressure when the
// gradient across the cell exceeds a small threshold.
func advectGas(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord, field *PressureField) {
	ch, ok := cm.Get(c)
	if !ok {
		return
	}
	for ly := 0; ly < pixel.Size; ly++ {
		for lx := 0; lx < pixel.Size; lx++ {
			p := ch.Get(lx, ly)
			if p.IsEmpty() || p.Flags&pixel.Updated != 0 {
				continue
			}
			def := reg.Get(p.MaterialID)
			if def.Type != material.TypeGas {
				continue
			}
			here := field.At(c, lx, ly)
			best, bx, by := here, lx, ly
			for _, off := range neighbors4 {
				nlx, nly := lx+off[0], ly+off[1]
				wx, wy := chunkmgr.ChunkToWorld(c, nlx, nly)
				nc, nnlx, nnly := chunkmgr.WorldToChunk(wx, wy)
				p := field.At(nc, nnlx, nnly)
				if p < best {
					best, bx, by = p, nlx, nly
				}
			}
			if bx == lx && by == ly {
				continue
			}
			if here-best < 0.05 {
				continue
			}
			tryMove(cm, reg, c, lx, ly, bx, by, p, def, nil)
		}
	}
}
