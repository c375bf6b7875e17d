package sim

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/grainworld/chunkmgr"
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
)

// MinDebrisClusterSize is the default minimum unsupported
// connected-component size that gets lifted into a debris body, matching
// config.SimulationConfig.MinStructuralChunk's shipped default. Structural
// takes the live value as a parameter so it stays configurable.
const MinDebrisClusterSize = 4

// worldCell is a world-coordinate pixel location, used by structural
// analysis and debris since clusters routinely cross chunk borders.
type worldCell struct{ X, Y int }

// Structural analyzes every chunk whose dirty rect touched a structural
// material, finds connected components of structural pixels, and lifts
// each component's unsupported cells (see unsupportedCells) into one new
// debris body when they number at least minClusterSize
// (config.SimulationConfig.MinStructuralChunk).
// seed and tick drive the opensimplex jitter applied to each lifted
// body's initial velocity, so identical worlds lift identical-looking
// but non-uniform debris every time.
func Structural(cm *chunkmgr.Manager, reg *material.Registry, debris *DebrisSet, minClusterSize int, seed, tick uint64) {
	noise := opensimplex.New(int64(seed))
	for _, c := range cm.Chunks() {
		ch, ok := cm.Get(c)
		if !ok || !touchesStructural(cm, reg, c) {
			continue
		}
		analyzeChunk(cm, reg, c, ch, debris, minClusterSize, noise, tick)
	}
}

// touchesStructural reports whether c's dirty rect could have changed a
// structural cluster's support this tick: either a dirty cell is itself
// structural (one just got placed, burned away, or lifted), or a dirty
// cell sits next to a structural pixel (an anchor or a neighboring span
// was just removed out from under it). The latter matters even though
// the removed cell itself never touches `Structural` pixels directly —
// a support pixel dirties only its own cell when it's cleared to air,
// never the still-standing structural pixel that rested on it.
func touchesStructural(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord) bool {
	ch, ok := cm.Get(c)
	if !ok || ch.DirtyRect().Empty() {
		return false
	}
	r := ch.DirtyRect()
	for ly := r.MinY; ly <= r.MaxY; ly++ {
		for lx := r.MinX; lx <= r.MaxX; lx++ {
			p := ch.Get(lx, ly)
			if !p.IsEmpty() && reg.Get(p.MaterialID).Structural {
				return true
			}
			wx, wy := chunkmgr.ChunkToWorld(c, lx, ly)
			for _, off := range neighbors4 {
				nc, nlx, nly := chunkmgr.WorldToChunk(wx+off[0], wy+off[1])
				nch, ok := cm.Get(nc)
				if !ok {
					continue
				}
				np := nch.Get(nlx, nly)
				if !np.IsEmpty() && reg.Get(np.MaterialID).Structural {
					return true
				}
			}
		}
	}
	return false
}

func analyzeChunk(cm *chunkmgr.Manager, reg *material.Registry, c chunkmgr.Coord, ch *pixel.Chunk, debris *DebrisSet, minClusterSize int, noise opensimplex.Noise, tick uint64) {
	visited := make(map[worldCell]bool)

	for ly := 0; ly < pixel.Size; ly++ {
		for lx := 0; lx < pixel.Size; lx++ {
			p := ch.Get(lx, ly)
			if p.IsEmpty() || !reg.Get(p.MaterialID).Structural {
				continue
			}
			wx, wy := chunkmgr.ChunkToWorld(c, lx, ly)
			cell := worldCell{wx, wy}
			if visited[cell] {
				continue
			}

			cluster := collectCluster(cm, reg, cell, visited)
			if len(cluster) == 0 {
				continue
			}
			unsupported := unsupportedCells(cm, reg, cluster)
			if len(unsupported) >= minClusterSize {
				liftCluster(cm, reg, unsupported, debris, noise, tick)
			}
		}
	}
}

func collectCluster(cm *chunkmgr.Manager, reg *material.Registry, start worldCell, visited map[worldCell]bool) []worldCell {
	var cluster []worldCell
	stack := []worldCell{start}
	visited[start] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cluster = append(cluster, cur)

		for _, off := range neighbors4 {
			n := worldCell{cur.X + off[0], cur.Y + off[1]}
			if visited[n] {
				continue
			}
			c, lx, ly := chunkmgr.WorldToChunk(n.X, n.Y)
			ch, ok := cm.Get(c)
			if !ok {
				continue
			}
			p := ch.Get(lx, ly)
			if p.IsEmpty() || !reg.Get(p.MaterialID).Structural {
				continue
			}
			visited[n] = true
			stack = append(stack, n)
		}
	}
	return cluster
}

// isGroundAnchor reports whether cell is a root of the support graph:
// Bedrock is the world floor and always anchors itself, and any cell
// resting directly on Bedrock or on the edge of loaded terrain anchors
// too. Resting on another structural material that isn't Bedrock is not
// by itself an anchor — that material is only as supported as its own
// path back to one of these roots, which the BFS below resolves.
func isGroundAnchor(cm *chunkmgr.Manager, reg *material.Registry, cell worldCell, def material.Def) bool {
	if def.Name == "Bedrock" {
		return true
	}
	below := worldCell{cell.X, cell.Y + 1}
	bc, blx, bly := chunkmgr.WorldToChunk(below.X, below.Y)
	bch, ok := cm.Get(bc)
	if !ok {
		// Unloaded ground below is treated as solid anchor so clusters
		// at the edge of loaded terrain are never spuriously lifted.
		return true
	}
	bp := bch.Get(blx, bly)
	if bp.IsEmpty() {
		return false
	}
	return reg.Get(bp.MaterialID).Name == "Bedrock"
}

// unsupportedCells returns the cells of cluster whose shortest
// 4-connected path (within the cluster) to a ground anchor exceeds
// their own material's StructuralStrength, or that have no path to an
// anchor at all. This bounds how far a single anchor can hold up a
// span — spec.md §8's bridge scenario needs the unsupported middle of a
// long deck to collapse even while one end stays anchored, which a
// cluster-wide "any cell anywhere is anchored" check can never produce.
func unsupportedCells(cm *chunkmgr.Manager, reg *material.Registry, cluster []worldCell) []worldCell {
	set := make(map[worldCell]bool, len(cluster))
	for _, cell := range cluster {
		set[cell] = true
	}

	defs := make(map[worldCell]material.Def, len(cluster))
	dist := make(map[worldCell]int, len(cluster))
	var queue []worldCell
	for _, cell := range cluster {
		c, lx, ly := chunkmgr.WorldToChunk(cell.X, cell.Y)
		ch, ok := cm.Get(c)
		if !ok {
			continue
		}
		def := reg.Get(ch.Get(lx, ly).MaterialID)
		defs[cell] = def
		if isGroundAnchor(cm, reg, cell, def) {
			dist[cell] = 0
			queue = append(queue, cell)
		}
	}

	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		for _, off := range neighbors4 {
			n := worldCell{cur.X + off[0], cur.Y + off[1]}
			if !set[n] {
				continue
			}
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}

	var unsupported []worldCell
	for _, cell := range cluster {
		d, reached := dist[cell]
		if !reached || float32(d) > defs[cell].StructuralStrength {
			unsupported = append(unsupported, cell)
		}
	}
	return unsupported
}

func liftCluster(cm *chunkmgr.Manager, reg *material.Registry, cluster []worldCell, debris *DebrisSet, noise opensimplex.Noise, tick uint64) {
	offsets := make(map[worldCell]material.ID, len(cluster))
	var sumX, sumY float64
	for _, cell := range cluster {
		c, lx, ly := chunkmgr.WorldToChunk(cell.X, cell.Y)
		ch, ok := cm.Get(c)
		if !ok {
			continue
		}
		p := ch.Get(lx, ly)
		offsets[worldCell{cell.X, cell.Y}] = p.MaterialID
		ch.Set(lx, ly, pixel.Air)
		sumX += float64(cell.X)
		sumY += float64(cell.Y)
	}
	if len(offsets) == 0 {
		return
	}
	n := float64(len(offsets))
	center := Vec2{X: sumX / n, Y: sumY / n}

	body := &Body{
		Center:   center,
		Velocity: Vec2{X: 0.15 * debrisJitter(noise, center, tick), Y: 0.2},
		Offsets:  make(map[worldCell]material.ID, len(offsets)),
	}
	for cell, id := range offsets {
		body.Offsets[worldCell{cell.X - int(center.X), cell.Y - int(center.Y)}] = id
	}
	debris.Add(body)
}

// debrisJitter samples 2D opensimplex noise at the lift's center and the
// current tick, returning a value in [-1, 1] used as a small deterministic
// sideways nudge on a newly lifted body's initial velocity — the same
// "seeded but non-uniform" texture the teacher's resource field draws
// from tiled noise, applied here to a vector instead of a scalar.
func debrisJitter(noise opensimplex.Noise, center Vec2, tick uint64) float64 {
	if noise == nil {
		return 0
	}
	return noise.Eval2(center.X*0.1, float64(tick)*0.05)
}
