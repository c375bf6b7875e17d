package sim

import (
	"github.com/pthm-cable/grainworld/chunkmgr"
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
)

// MaxLight is the light level ceiling.
const MaxLight = 15

// AmbientSkylight is the level seeded into every cell of a chunk's top
// row. Lower cells are not seeded with it even when their column is
// clear; they receive skylight only through propagation, losing one level
// per air cell.
const AmbientSkylight = 4

// Light recomputes every active chunk's light field from emitters via
// BFS-style flood with per-material attenuation. It is read-only
// to every other subsystem.
func Light(cm *chunkmgr.Manager, reg *material.Registry) {
	for _, c := range cm.Chunks() {
		if !cm.IsActive(c) {
			continue
		}
		lightChunk(cm, reg, c)
	}
}

func lightChunk(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord) {
	ch, ok := cm.Get(c)
	if !ok {
		return
	}

	for i := range ch.Light {
		ch.Light[i] = 0
	}

	type node struct{ lx, ly int }
	var queue []node

	for ly := 0; ly < pixel.Size; ly++ {
		for lx := 0; lx < pixel.Size; lx++ {
			p := ch.Get(lx, ly)
			def := reg.Get(p.MaterialID)
			level := uint8(0)
			if def.LightEmission > 0 {
				level = clampLight(def.LightEmission)
			}
			if skyClear(ch, reg, lx, ly) {
				level = maxU8(level, AmbientSkylight)
			}
			if level > 0 {
				idx := ly*pixel.Size + lx
				ch.Light[idx] = level
				queue = append(queue, node{lx, ly})
			}
		}
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		idx := n.ly*pixel.Size + n.lx
		level := ch.Light[idx]
		if level == 0 {
			continue
		}
		for _, off := range neighbors4 {
			nlx, nly := n.lx+off[0], n.ly+off[1]
			if nlx < 0 || nlx >= pixel.Size || nly < 0 || nly >= pixel.Size {
				continue
			}
			np := ch.Get(nlx, nly)
			ndef := reg.Get(np.MaterialID)
			if ndef.Opaque {
				continue
			}
			atten := attenuationOf(ndef)
			if level <= atten {
				continue
			}
			next := level - atten
			nidx := nly*pixel.Size + nlx
			if next > ch.Light[nidx] {
				ch.Light[nidx] = next
				queue = append(queue, node{nlx, nly})
			}
		}
	}
}

// attenuationOf returns the per-step light loss entering a cell: 1 for
// air and 3 for any other material. Opaque materials never reach it;
// propagation stops at them first.
func attenuationOf(def material.Def) uint8 {
	if def.ID == material.Air {
		return 1
	}
	return 3
}

func skyClear(ch *pixel.Chunk, reg *material.Registry, lx, ly int) bool {
	for y := ly - 1; y >= 0; y-- {
		p := ch.Get(lx, y)
		if !p.IsEmpty() && reg.Get(p.MaterialID).Opaque {
			return false
		}
	}
	return ly == 0
}

func clampLight(v float32) uint8 {
	if v > MaxLight {
		return MaxLight
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

func maxU8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}
