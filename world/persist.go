package world

import "github.com/pthm-cable/grainworld/persist"

// Snapshot captures the complete round-trippable world state: seed,
// tick count, player spawn, and every loaded chunk's pixel/thermal/light
// arrays. What happens to the returned Snapshot — written to disk,
// shipped over a wire protocol, held in memory for a rewind buffer — is
// a persistence collaborator's concern; the core only guarantees the
// record round-trips.
func (w *World) Snapshot() *persist.Snapshot {
	coords := w.Chunks.Chunks()
	snap := &persist.Snapshot{
		Metadata: persist.WorldMetadata{
			Version:   persist.Version,
			Seed:      w.Seed,
			TickCount: w.tick,
			SpawnX:    w.Player.X,
			SpawnY:    w.Player.Y,
		},
		Chunks: make([]persist.ChunkRecord, 0, len(coords)),
	}
	for _, c := range coords {
		ch, ok := w.Chunks.Get(c)
		if !ok {
			continue
		}
		snap.Chunks = append(snap.Chunks, persist.CaptureChunk(c, ch))
	}
	return snap
}

// Restore replaces the world's chunk contents, seed, tick counter, and
// player spawn from a previously captured Snapshot. Every chunk named in
// the snapshot is allocated if not already loaded; chunks already loaded
// that are absent from the snapshot are left untouched. Restored chunks
// are marked active for one cycle, mirroring EnsureChunksForArea's
// "process once even when clean" rule for newly-surfaced regions.
func (w *World) Restore(snap *persist.Snapshot) {
	w.Seed = snap.Metadata.Seed
	w.tick = snap.Metadata.TickCount
	w.Player.X = snap.Metadata.SpawnX
	w.Player.Y = snap.Metadata.SpawnY

	for _, rec := range snap.Chunks {
		ch := w.Chunks.GetOrCreate(rec.Coord)
		rec.Restore(ch)
		ch.SimulationActive = true
	}
}
