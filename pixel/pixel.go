// Package pixel defines the per-cell pixel type and the fixed-size chunk
// that owns a grid of them.
package pixel

import "github.com/pthm-cable/grainworld/material"

// Flags is a bitset of transient per-pixel state.
type Flags uint8

const (
	// Updated marks a pixel as moved or processed this tick; the
	// movement pass skips pixels that already carry it.
	Updated Flags = 1 << iota
	Burning
	Falling
	PlayerPlaced
)

// Pixel is the atomic unit of the world grid.
type Pixel struct {
	MaterialID material.ID
	Flags      Flags
}

// Air is the zero-value empty pixel.
var Air = Pixel{MaterialID: material.Air}

// IsEmpty reports whether the pixel holds air.
func (p Pixel) IsEmpty() bool { return p.MaterialID == material.Air }

// Size is the side length of a chunk in pixels.
const Size = 64

// Rect is an axis-aligned rectangle of local chunk coordinates, inclusive.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool { return r.MaxX < r.MinX || r.MaxY < r.MinY }

// Union returns the smallest rect covering both r and o. A Rect that is
// Empty contributes nothing.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	out := r
	if o.MinX < out.MinX {
		out.MinX = o.MinX
	}
	if o.MinY < out.MinY {
		out.MinY = o.MinY
	}
	if o.MaxX > out.MaxX {
		out.MaxX = o.MaxX
	}
	if o.MaxY > out.MaxY {
		out.MaxY = o.MaxY
	}
	return out
}

// Contains reports whether (x, y) lies within the rect.
func (r Rect) Contains(x, y int) bool {
	return !r.Empty() && x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// emptyRect is the canonical "no mutations yet" sentinel: MaxX/MaxY below
// their Min counterparts so Empty() is true and Union is a no-op.
var emptyRect = Rect{MinX: 1, MinY: 1, MaxX: 0, MaxY: 0}

// Chunk is a fixed Size x Size tile of pixels plus the metadata a tick's
// passes need: the dirty rect of cells mutated since the last consumer
// read, and whether the chunk manager considers it active this tick.
type Chunk struct {
	cells [Size * Size]Pixel

	// Coarser-resolution fields. Pressure lives at 1/8 chunk resolution
	// (see sim.PressureGridFactor); temperature and light are per-pixel.
	Temperature [Size * Size]float32
	Light       [Size * Size]uint8

	// BurnProgress tracks a burning pixel's fraction-consumed, in [0,1];
	// it accumulates BurnRate per Chemistry pass across ticks (unlike
	// Updated, it is not cleared every tick) until it reaches 1, at
	// which point the pixel converts to its BurnsTo material.
	BurnProgress [Size * Size]float32

	dirty            Rect
	SimulationActive bool
}

// NewChunk returns a chunk filled with air.
func NewChunk() *Chunk {
	c := &Chunk{dirty: emptyRect}
	return c
}

func index(lx, ly int) int { return ly*Size + lx }

// Get returns the pixel at local coordinates (lx, ly). Callers must
// ensure 0 <= lx,ly < Size; chunkmgr.Manager is the usual caller and
// performs that bounds check via world-to-chunk coordinate math.
func (c *Chunk) Get(lx, ly int) Pixel {
	return c.cells[index(lx, ly)]
}

// Set writes a pixel and marks it dirty + Updated.
func (c *Chunk) Set(lx, ly int, p Pixel) {
	p.Flags |= Updated
	c.cells[index(lx, ly)] = p
	c.markDirty(lx, ly)
}

// SetMaterial replaces only the material id of a cell, clearing
// transient flags other than the ones material placement implies.
func (c *Chunk) SetMaterial(lx, ly int, id material.ID) {
	c.Set(lx, ly, Pixel{MaterialID: id})
}

func (c *Chunk) markDirty(lx, ly int) {
	c.dirty = c.dirty.Union(Rect{MinX: lx, MinY: ly, MaxX: lx, MaxY: ly})
}

// DirtyRect returns the chunk's dirty rect since the last ClearDirty.
func (c *Chunk) DirtyRect() Rect { return c.dirty }

// IsDirty reports whether any cell has been mutated since the last clear.
func (c *Chunk) IsDirty() bool { return !c.dirty.Empty() }

// ClearDirty resets the dirty rect to empty. Called once per tick after
// consumers have had a chance to read it.
func (c *Chunk) ClearDirty() { c.dirty = emptyRect }

// ClearUpdatedFlags clears the Updated flag on every pixel. Called once
// per tick, after the movement and chemistry passes have finished
// reading it.
func (c *Chunk) ClearUpdatedFlags() {
	for i := range c.cells {
		c.cells[i].Flags &^= Updated
	}
}

// Cells returns a copy of the chunk's pixel array, row-major, for a
// persistence collaborator to encode however it sees fit. The core only
// guarantees the array is sufficient to round-trip the chunk.
func (c *Chunk) Cells() [Size * Size]Pixel { return c.cells }

// Restore overwrites every cell, temperature sample, light level, and
// burn-progress sample from a previously-captured snapshot, without
// touching dirty-rect or activity state — the caller decides whether a
// restored chunk should be treated as dirty.
func (c *Chunk) Restore(cells [Size * Size]Pixel, temperature [Size * Size]float32, light [Size * Size]uint8, burnProgress [Size * Size]float32) {
	c.cells = cells
	c.Temperature = temperature
	c.Light = light
	c.BurnProgress = burnProgress
}

// ForEach visits every non-air pixel with its local coordinates.
func (c *Chunk) ForEach(fn func(lx, ly int, p Pixel)) {
	for ly := 0; ly < Size; ly++ {
		for lx := 0; lx < Size; lx++ {
			p := c.cells[index(lx, ly)]
			if !p.IsEmpty() {
				fn(lx, ly, p)
			}
		}
	}
}
