// Package chunkmgr owns the sparse map of loaded chunks, the active set
// used to decide which chunks the per-tick passes visit, and the
// world-coordinate <-> chunk-coordinate math every subsystem depends on.
package chunkmgr

import (
	"github.com/pthm-cable/grainworld/pixel"
)

// Coord identifies a chunk by its chunk-grid position.
type Coord struct {
	X, Y int
}

// floorDiv is Euclidean (floor) division, needed so chunk coordinates
// are stable across negative inputs.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((a < 0) != (b < 0)) {
		m += b
	}
	return m
}

// WorldToChunk maps a world coordinate to its owning chunk coordinate and
// local offset within that chunk.
func WorldToChunk(x, y int) (c Coord, lx, ly int) {
	c = Coord{X: floorDiv(x, pixel.Size), Y: floorDiv(y, pixel.Size)}
	lx = floorMod(x, pixel.Size)
	ly = floorMod(y, pixel.Size)
	return
}

// ChunkToWorld is the inverse of WorldToChunk.
func ChunkToWorld(c Coord, lx, ly int) (x, y int) {
	return c.X*pixel.Size + lx, c.Y*pixel.Size + ly
}

// neighborOffsets8 lists the 8-neighbor chunk offsets in no particular
// required order (unlike pixel-level neighbor queries, chunk-adjacency
// order is not spec-mandated).
var neighborOffsets8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Manager owns the sparse chunk map and the active set.
type Manager struct {
	chunks map[Coord]*pixel.Chunk
	active map[Coord]struct{}
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{
		chunks: make(map[Coord]*pixel.Chunk),
		active: make(map[Coord]struct{}),
	}
}

// Get returns the chunk at c, or (nil, false) if it is not loaded.
func (m *Manager) Get(c Coord) (*pixel.Chunk, bool) {
	ch, ok := m.chunks[c]
	return ch, ok
}

// GetOrCreate returns the chunk at c, allocating an empty one if absent.
func (m *Manager) GetOrCreate(c Coord) *pixel.Chunk {
	if ch, ok := m.chunks[c]; ok {
		return ch
	}
	ch := pixel.NewChunk()
	m.chunks[c] = ch
	return ch
}

// EnsureArea pre-allocates every chunk in the inclusive coordinate range,
// used to stage training scenarios without a world generator.
func (m *Manager) EnsureArea(minC, maxC Coord) {
	for cy := minC.Y; cy <= maxC.Y; cy++ {
		for cx := minC.X; cx <= maxC.X; cx++ {
			m.GetOrCreate(Coord{X: cx, Y: cy})
		}
	}
}

// Chunks returns every loaded chunk coordinate. Order is unspecified.
func (m *Manager) Chunks() []Coord {
	out := make([]Coord, 0, len(m.chunks))
	for c := range m.chunks {
		out = append(out, c)
	}
	return out
}

// chebyshev returns the Chebyshev distance between two chunk coordinates.
func chebyshev(a, b Coord) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// UpdateActiveSet recomputes the active list around focus with the given
// radius: it evicts chunks outside the radius, and adds any loaded chunk
// within radius that wasn't already active, marking newly-added chunks
// SimulationActive so they run one cycle even when clean.
func (m *Manager) UpdateActiveSet(focus Coord, radius int) {
	for c := range m.active {
		if chebyshev(c, focus) > radius {
			delete(m.active, c)
		}
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			c := Coord{X: focus.X + dx, Y: focus.Y + dy}
			ch, ok := m.chunks[c]
			if !ok {
				continue
			}
			if _, already := m.active[c]; already {
				continue
			}
			m.active[c] = struct{}{}
			ch.SimulationActive = true
		}
	}
}

// ActivePositions returns the current active chunk coordinates. Order is
// unspecified.
func (m *Manager) ActivePositions() []Coord {
	out := make([]Coord, 0, len(m.active))
	for c := range m.active {
		out = append(out, c)
	}
	return out
}

// IsActive reports whether c is currently in the active set.
func (m *Manager) IsActive(c Coord) bool {
	_, ok := m.active[c]
	return ok
}

// NeedsCAUpdate reports whether c is eligible for the CA pass: true iff
// the chunk or any of its 8 neighbors has a non-empty dirty rect or
// SimulationActive set. Neighbor inclusion matters because material
// motion crosses chunk borders.
func (m *Manager) NeedsCAUpdate(c Coord) bool {
	if m.chunkNeedsUpdate(c) {
		return true
	}
	for _, off := range neighborOffsets8 {
		if m.chunkNeedsUpdate(Coord{X: c.X + off[0], Y: c.Y + off[1]}) {
			return true
		}
	}
	return false
}

func (m *Manager) chunkNeedsUpdate(c Coord) bool {
	ch, ok := m.chunks[c]
	if !ok {
		return false
	}
	return ch.IsDirty() || ch.SimulationActive
}

// ClearTickState clears dirty rects, Updated flags, and SimulationActive
// on every loaded chunk. Called once per tick after subsystems and
// consumers have had a chance to read the dirty rects.
func (m *Manager) ClearTickState() {
	for _, ch := range m.chunks {
		ch.ClearUpdatedFlags()
		ch.ClearDirty()
		ch.SimulationActive = false
	}
}

// DirtyUnion returns the union of every loaded chunk's dirty rect,
// expressed in world coordinates, for consumers that want a single
// bounding box rather than per-chunk rects.
func (m *Manager) DirtyUnion() pixel.Rect {
	var union pixel.Rect
	first := true
	for c, ch := range m.chunks {
		r := ch.DirtyRect()
		if r.Empty() {
			continue
		}
		minX, minY := ChunkToWorld(c, r.MinX, r.MinY)
		maxX, maxY := ChunkToWorld(c, r.MaxX, r.MaxY)
		wr := pixel.Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
		if first {
			union = wr
			first = false
		} else {
			union = union.Union(wr)
		}
	}
	if first {
		return pixel.Rect{MinX: 1, MinY: 1, MaxX: 0, MaxY: 0}
	}
	return union
}
