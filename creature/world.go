package creature

import (
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
)

// Vec2 is a plain 2D vector; creatures operate in world-space floats while
// the pixel grid underneath is integer-addressed.
type Vec2 struct{ X, Y float64 }

// RaycastHit is one grid cell a raycast or radius query touched.
type RaycastHit struct {
	X, Y       int
	MaterialID material.ID
}

// WorldAccess is the read-only contract creatures sense the world
// through, narrowed to the query operations sensing actually needs.
type WorldAccess interface {
	GetPixel(x, y int) (pixel.Pixel, bool)
	GetTemperature(x, y int) float32
	GetLight(x, y int) (uint8, bool)
	IsSolidAt(x, y int) bool
	Raycast(from Vec2, dir Vec2, maxDistance float64) (RaycastHit, bool)
	Get8Neighbors(cx, cy int) [8]material.ID
	PixelsInRadius(cx, cy int, r float64) []RaycastHit
}

// WorldMutAccess is the exclusive contract creatures mutate the world
// through; held only for the duration of the Act step.
type WorldMutAccess interface {
	SetPixel(x, y int, materialID material.ID) bool
	SetPixelFull(x, y int, p pixel.Pixel) bool
}
