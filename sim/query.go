package sim

import (
	"math"

	"github.com/pthm-cable/grainworld/chunkmgr"
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
)

// GetPixel reads the pixel at a world coordinate; ok is false when no
// chunk is loaded there.
func GetPixel(cm *chunkmgr.Manager, x, y int) (pixel.Pixel, bool) {
	c, lx, ly := chunkmgr.WorldToChunk(x, y)
	ch, ok := cm.Get(c)
	if !ok {
		return pixel.Pixel{}, false
	}
	return ch.Get(lx, ly), true
}

// GetTemperature reads the temperature at a world coordinate, 0 if
// unloaded.
func GetTemperature(cm *chunkmgr.Manager, x, y int) float32 {
	c, lx, ly := chunkmgr.WorldToChunk(x, y)
	ch, ok := cm.Get(c)
	if !ok {
		return 0
	}
	return ch.Temperature[ly*pixel.Size+lx]
}

// GetLight reads the light level at a world coordinate; ok is false if
// unloaded.
func GetLight(cm *chunkmgr.Manager, x, y int) (uint8, bool) {
	c, lx, ly := chunkmgr.WorldToChunk(x, y)
	ch, ok := cm.Get(c)
	if !ok {
		return 0, false
	}
	return ch.Light[ly*pixel.Size+lx], true
}

// GetPressure reads the coarse pressure field at a world coordinate.
func GetPressure(field *PressureField, x, y int) float32 {
	c, lx, ly := chunkmgr.WorldToChunk(x, y)
	return field.At(c, lx, ly)
}

// IsSolidAt reports whether the pixel at a world coordinate blocks
// movement: a solid-type, non-air material, or an unloaded cell (treated
// as solid so raycasts and creature collision never escape loaded
// terrain).
func IsSolidAt(cm *chunkmgr.Manager, reg *material.Registry, x, y int) bool {
	p, ok := GetPixel(cm, x, y)
	if !ok {
		return true
	}
	if p.IsEmpty() {
		return false
	}
	return reg.Get(p.MaterialID).Type == material.TypeSolid
}

// RaycastHit is a blocking hit discovered by Raycast.
type RaycastHit struct {
	X, Y       int
	MaterialID material.ID
}

// Raycast steps from `from` along `dir` (need not be normalized) via a
// DDA traversal, visiting each grid cell exactly once, stopping at the
// first solid or unloaded cell within maxDistance.
func Raycast(cm *chunkmgr.Manager, reg *material.Registry, fromX, fromY, dirX, dirY, maxDistance float64) (RaycastHit, bool) {
	length := math.Hypot(dirX, dirY)
	if length == 0 {
		return RaycastHit{}, false
	}
	dx, dy := dirX/length, dirY/length

	x, y := int(math.Floor(fromX)), int(math.Floor(fromY))
	stepX, stepY := sign(dx), sign(dy)

	tDeltaX := math.Inf(1)
	if dx != 0 {
		tDeltaX = math.Abs(1 / dx)
	}
	tDeltaY := math.Inf(1)
	if dy != 0 {
		tDeltaY = math.Abs(1 / dy)
	}

	tMaxX := boundaryT(fromX, dx, x, stepX, tDeltaX)
	tMaxY := boundaryT(fromY, dy, y, stepY, tDeltaY)

	traveled := 0.0
	for traveled <= maxDistance {
		p, ok := GetPixel(cm, x, y)
		if !ok {
			return RaycastHit{X: x, Y: y, MaterialID: material.Air}, false
		}
		if !p.IsEmpty() && reg.Get(p.MaterialID).Type == material.TypeSolid {
			return RaycastHit{X: x, Y: y, MaterialID: p.MaterialID}, true
		}

		if tMaxX < tMaxY {
			traveled = tMaxX
			tMaxX += tDeltaX
			x += stepX
		} else {
			traveled = tMaxY
			tMaxY += tDeltaY
			y += stepY
		}
	}
	return RaycastHit{}, false
}

func sign(v float64) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func boundaryT(origin, dir float64, cell, step int, tDelta float64) float64 {
	if step == 0 {
		return math.Inf(1)
	}
	var boundary float64
	if step > 0 {
		boundary = float64(cell + 1)
	} else {
		boundary = float64(cell)
	}
	return math.Abs(boundary-origin) / math.Abs(dir)
}

// CheckCircleCollision reports whether any solid pixel lies within
// radius r of (cx, cy), with an exact per-pixel test.
func CheckCircleCollision(cm *chunkmgr.Manager, reg *material.Registry, cx, cy float64, r float64) bool {
	minX, maxX := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	minY, maxY := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy > r*r {
				continue
			}
			if IsSolidAt(cm, reg, x, y) {
				return true
			}
		}
	}
	return false
}

// neighborOrder8 is the fixed NW,N,NE,W,E,SW,S,SE order Get8Neighbors reports in.
var neighborOrder8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Get8Neighbors returns the material ids of the 8-neighborhood around
// (cx, cy) in fixed NW,N,NE,W,E,SW,S,SE order; unloaded cells read as
// air.
func Get8Neighbors(cm *chunkmgr.Manager, cx, cy int) [8]material.ID {
	var out [8]material.ID
	for i, off := range neighborOrder8 {
		p, ok := GetPixel(cm, cx+off[0], cy+off[1])
		if !ok {
			out[i] = material.Air
			continue
		}
		out[i] = p.MaterialID
	}
	return out
}

// PixelsInRadius collects every non-air pixel within the Euclidean disc
// of radius r around (cx, cy).
func PixelsInRadius(cm *chunkmgr.Manager, cx, cy int, r float64) []RaycastHit {
	var out []RaycastHit
	ir := int(math.Ceil(r))
	for y := cy - ir; y <= cy+ir; y++ {
		for x := cx - ir; x <= cx+ir; x++ {
			dx, dy := float64(x-cx), float64(y-cy)
			if dx*dx+dy*dy > r*r {
				continue
			}
			p, ok := GetPixel(cm, x, y)
			if !ok || p.IsEmpty() {
				continue
			}
			out = append(out, RaycastHit{X: x, Y: y, MaterialID: p.MaterialID})
		}
	}
	return out
}

// SetPixel replaces a world cell's material id, stamping dirty + Updated.
// Returns false if the owning chunk isn't loaded.
func SetPixel(cm *chunkmgr.Manager, x, y int, id material.ID) bool {
	c, lx, ly := chunkmgr.WorldToChunk(x, y)
	ch, ok := cm.Get(c)
	if !ok {
		return false
	}
	ch.SetMaterial(lx, ly, id)
	return true
}

// SetPixelFull replaces a world cell's full pixel value, stamping dirty +
// Updated.
func SetPixelFull(cm *chunkmgr.Manager, x, y int, p pixel.Pixel) bool {
	c, lx, ly := chunkmgr.WorldToChunk(x, y)
	ch, ok := cm.Get(c)
	if !ok {
		return false
	}
	ch.Set(lx, ly, p)
	return true
}
