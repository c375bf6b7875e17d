package sim

import (
	"github.com/pthm-cable/grainworld/chunkmgr"
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
)

// Current marks whether a conductor pixel carries current this tick.
// The pass never mutates material ids; it only tracks this
// transient per-cell state alongside the chunk.
type Current struct {
	cells map[chunkmgr.Coord]map[[2]int]bool
}

// NewCurrent returns an empty current-state tracker.
func NewCurrent() *Current { return &Current{cells: make(map[chunkmgr.Coord]map[[2]int]bool)} }

// At reports whether the cell at a world-local coordinate is energized.
func (cur *Current) At(c chunkmgr.Coord, lx, ly int) bool {
	m, ok := cur.cells[c]
	if !ok {
		return false
	}
	return m[[2]int{lx, ly}]
}

func (cur *Current) set(c chunkmgr.Coord, lx, ly int, v bool) {
	m, ok := cur.cells[c]
	if !ok {
		m = make(map[[2]int]bool)
		cur.cells[c] = m
	}
	m[[2]int{lx, ly}] = v
}

// Electrical propagates current from source pixels along conductor
// pixels each tick; isolated conductors (no connected path to a source)
// drop to zero.
func Electrical(cm *chunkmgr.Manager, reg *material.Registry, cur *Current) {
	type node struct {
		c      chunkmgr.Coord
		lx, ly int
	}
	visited := make(map[node]bool)
	var queue []node

	for _, c := range cm.Chunks() {
		ch, ok := cm.Get(c)
		if !ok {
			continue
		}
		for ly := 0; ly < pixel.Size; ly++ {
			for lx := 0; lx < pixel.Size; lx++ {
				p := ch.Get(lx, ly)
				if p.IsEmpty() {
					continue
				}
				def := reg.Get(p.MaterialID)
				if def.ConductsElectricity && def.Tags&material.TagPowerSource != 0 {
					n := node{c, lx, ly}
					visited[n] = true
					cur.set(c, lx, ly, true)
					queue = append(queue, n)
				}
			}
		}
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, off := range neighbors4 {
			wx, wy := chunkmgr.ChunkToWorld(n.c, n.lx+off[0], n.ly+off[1])
			nc, nlx, nly := chunkmgr.WorldToChunk(wx, wy)
			nch, ok := cm.Get(nc)
			if !ok {
				continue
			}
			nkey := node{nc, nlx, nly}
			if visited[nkey] {
				continue
			}
			np := nch.Get(nlx, nly)
			if np.IsEmpty() || !reg.Get(np.MaterialID).ConductsElectricity {
				continue
			}
			visited[nkey] = true
			cur.set(nc, nlx, nly, true)
			queue = append(queue, nkey)
		}
	}

	for _, c := range cm.Chunks() {
		ch, ok := cm.Get(c)
		if !ok {
			continue
		}
		for ly := 0; ly < pixel.Size; ly++ {
			for lx := 0; lx < pixel.Size; lx++ {
				p := ch.Get(lx, ly)
				if p.IsEmpty() || !reg.Get(p.MaterialID).ConductsElectricity {
					continue
				}
				if !visited[node{c, lx, ly}] {
					cur.set(c, lx, ly, false)
				}
			}
		}
	}
}
