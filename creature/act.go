package creature

import (
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
)

// Eat removes the pixel at (x,y), returning the material that was
// consumed. Eating air does nothing.
func Eat(mw WorldMutAccess, w WorldAccess, x, y int) (material.ID, bool) {
	p, ok := w.GetPixel(x, y)
	if !ok || p.MaterialID == material.Air {
		return material.Air, false
	}
	mw.SetPixel(x, y, material.Air)
	return p.MaterialID, true
}

// Mine removes the pixel at (x,y) unless it is air or bedrock.
func Mine(mw WorldMutAccess, w WorldAccess, reg *material.Registry, x, y int) bool {
	p, ok := w.GetPixel(x, y)
	if !ok || p.MaterialID == material.Air {
		return false
	}
	if reg.Get(p.MaterialID).Name == "Bedrock" {
		return false
	}
	return mw.SetPixel(x, y, material.Air)
}

// Build places materialID at (x,y) flagged PlayerPlaced.
func Build(mw WorldMutAccess, x, y int, materialID material.ID) bool {
	return mw.SetPixelFull(x, y, pixel.Pixel{MaterialID: materialID, Flags: pixel.PlayerPlaced})
}
