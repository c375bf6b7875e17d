// Package persist defines the narrow save/load interface spec.md §6
// promises: a WorldMetadata header plus a per-chunk record that is
// "sufficient to round-trip a chunk". The exact on-disk encoding is a
// persistence collaborator's concern, not the core's — this package only
// guarantees the data is complete and offers one reference encoding
// (JSON to a directory of chunk files) in the teacher's own
// telemetry.SaveSnapshot/LoadSnapshot style, so headless tooling has
// something to call without the core mandating a wire format.
package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/grainworld/chunkmgr"
	"github.com/pthm-cable/grainworld/pixel"
)

// Version is incremented when the record shape changes.
const Version = 1

// WorldMetadata is the narrow header spec.md §6 names: the seed, tick
// count, and player spawn needed to resume a world without the core
// knowing anything about how the bytes reach disk.
type WorldMetadata struct {
	Version   int     `json:"version"`
	Seed      uint64  `json:"seed"`
	TickCount uint64  `json:"tick_count"`
	SpawnX    float64 `json:"spawn_x"`
	SpawnY    float64 `json:"spawn_y"`
}

// ChunkRecord is one chunk's complete round-trippable state: its
// coordinate, its pixel array, and its per-cell thermal/light arrays.
// Pressure is deliberately excluded — it lives on the coarser
// world-level PressureField, not per chunk, and spec.md §4.5 treats it
// as transient derived state rather than something a save needs to
// carry.
type ChunkRecord struct {
	Coord        chunkmgr.Coord                       `json:"coord"`
	Pixels       [pixel.Size * pixel.Size]pixel.Pixel `json:"pixels"`
	Temperature  [pixel.Size * pixel.Size]float32     `json:"temperature"`
	Light        [pixel.Size * pixel.Size]uint8       `json:"light"`
	BurnProgress [pixel.Size * pixel.Size]float32     `json:"burn_progress"`
}

// Snapshot is the complete round-trippable world state: the metadata
// header plus every loaded chunk's record.
type Snapshot struct {
	Metadata WorldMetadata `json:"metadata"`
	Chunks   []ChunkRecord `json:"chunks"`
}

// CaptureChunk builds a ChunkRecord from a loaded chunk at coordinate c.
func CaptureChunk(c chunkmgr.Coord, ch *pixel.Chunk) ChunkRecord {
	return ChunkRecord{
		Coord:        c,
		Pixels:       ch.Cells(),
		Temperature:  ch.Temperature,
		Light:        ch.Light,
		BurnProgress: ch.BurnProgress,
	}
}

// Restore overwrites ch's contents from rec. The caller is responsible
// for marking the chunk dirty/active as its own policy requires; Restore
// itself does not touch dirty-rect or activity state.
func (rec ChunkRecord) Restore(ch *pixel.Chunk) {
	ch.Restore(rec.Pixels, rec.Temperature, rec.Light, rec.BurnProgress)
}

// Save writes a snapshot as one JSON file per chunk plus a metadata.json
// header into dir, creating it if needed. Returns the directory written.
func Save(snap *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	metaPath := filepath.Join(dir, "metadata.json")
	metaBytes, err := json.MarshalIndent(snap.Metadata, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(metaPath, metaBytes, 0644); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	for _, rec := range snap.Chunks {
		name := fmt.Sprintf("chunk_%d_%d.json", rec.Coord.X, rec.Coord.Y)
		data, err := json.Marshal(rec)
		if err != nil {
			return "", fmt.Errorf("marshal chunk %+v: %w", rec.Coord, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return "", fmt.Errorf("write chunk %+v: %w", rec.Coord, err)
		}
	}

	return dir, nil
}

// Load reads a snapshot directory previously written by Save. It does
// not validate that every file in dir belongs to the snapshot; callers
// that manage their own directories should keep snapshot directories
// dedicated.
func Load(dir string) (*Snapshot, error) {
	metaBytes, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var meta WorldMetadata
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}

	snap := &Snapshot{Metadata: meta}
	for _, e := range entries {
		if e.IsDir() || e.Name() == "metadata.json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read chunk file %s: %w", e.Name(), err)
		}
		var rec ChunkRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal chunk file %s: %w", e.Name(), err)
		}
		snap.Chunks = append(snap.Chunks, rec)
	}

	return snap, nil
}
