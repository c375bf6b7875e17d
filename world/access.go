package world

import (
	"github.com/pthm-cable/grainworld/creature"
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
	"github.com/pthm-cable/grainworld/sim"
)

// The methods below satisfy creature.WorldAccess and
// creature.WorldMutAccess, adapting the sim package's free functions and
// the creature package's Vec2/RaycastHit shapes to the facade.

func (w *World) GetPixel(x, y int) (pixel.Pixel, bool) { return sim.GetPixel(w.Chunks, x, y) }

func (w *World) GetTemperature(x, y int) float32 { return sim.GetTemperature(w.Chunks, x, y) }

func (w *World) GetLight(x, y int) (uint8, bool) { return sim.GetLight(w.Chunks, x, y) }

func (w *World) GetPressure(x, y int) float32 { return sim.GetPressure(w.Pressure, x, y) }

func (w *World) IsSolidAt(x, y int) bool { return sim.IsSolidAt(w.Chunks, w.Materials, x, y) }

func (w *World) Raycast(from, dir creature.Vec2, maxDistance float64) (creature.RaycastHit, bool) {
	hit, ok := sim.Raycast(w.Chunks, w.Materials, from.X, from.Y, dir.X, dir.Y, maxDistance)
	return creature.RaycastHit{X: hit.X, Y: hit.Y, MaterialID: hit.MaterialID}, ok
}

func (w *World) CheckCircleCollision(cx, cy, r float64) bool {
	return sim.CheckCircleCollision(w.Chunks, w.Materials, cx, cy, r)
}

func (w *World) Get8Neighbors(cx, cy int) [8]material.ID { return sim.Get8Neighbors(w.Chunks, cx, cy) }

func (w *World) PixelsInRadius(cx, cy int, r float64) []creature.RaycastHit {
	hits := sim.PixelsInRadius(w.Chunks, cx, cy, r)
	out := make([]creature.RaycastHit, len(hits))
	for i, h := range hits {
		out[i] = creature.RaycastHit{X: h.X, Y: h.Y, MaterialID: h.MaterialID}
	}
	return out
}

func (w *World) SetPixel(x, y int, id material.ID) bool { return sim.SetPixel(w.Chunks, x, y, id) }

func (w *World) SetPixelFull(x, y int, p pixel.Pixel) bool {
	return sim.SetPixelFull(w.Chunks, x, y, p)
}
