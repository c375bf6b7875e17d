package sim

import (
	"testing"

	"github.com/pthm-cable/grainworld/chunkmgr"
	"github.com/pthm-cable/grainworld/material"
)

func TestStructuralLeavesBedrockAnchoredClusterAlone(t *testing.T) {
	cm := chunkmgr.NewManager()
	reg := material.NewDefaultRegistry()
	stoneID, _ := reg.ByName("Stone")
	bedrockID, _ := reg.ByName("Bedrock")

	ensureChunk(cm, 0, 0)
	for x := 0; x < 5; x++ {
		SetPixel(cm, x, 0, stoneID)
	}
	SetPixel(cm, 0, 1, bedrockID)

	debris := NewDebrisSet(0.05, 0)
	Structural(cm, reg, debris, MinDebrisClusterSize, 0, 0)

	if debris.Count() != 0 {
		t.Fatalf("expected a bedrock-anchored cluster to stay in place, got %d debris bodies", debris.Count())
	}
	p, _ := GetPixel(cm, 0, 0)
	if p.MaterialID != stoneID {
		t.Fatal("expected anchored stone to remain stone, not be lifted to debris")
	}
}

func TestStructuralLiftsUnsupportedFloatingCluster(t *testing.T) {
	cm := chunkmgr.NewManager()
	reg := material.NewDefaultRegistry()
	stoneID, _ := reg.ByName("Stone")

	ensureChunk(cm, 0, 0)
	// A 2x2 floating block surrounded by already-loaded air (ensureChunk
	// loads the whole chunk), so the cells below it read as loaded air
	// rather than triggering the unloaded-ground anchor fallback.
	for _, cell := range [][2]int{{10, 10}, {11, 10}, {10, 11}, {11, 11}} {
		SetPixel(cm, cell[0], cell[1], stoneID)
	}

	debris := NewDebrisSet(0.05, 0)
	Structural(cm, reg, debris, MinDebrisClusterSize, 0, 0)

	if debris.Count() != 1 {
		t.Fatalf("expected the floating 4-cell cluster to lift into one debris body, got %d", debris.Count())
	}
	p, _ := GetPixel(cm, 10, 10)
	if p.MaterialID != material.Air {
		t.Fatal("expected lifted cells to become air in the grid")
	}
}

// TestStructuralCollapsesUnsupportedBridgeSpan reproduces spec.md §8's
// bridge scenario: a 21-wide stone deck anchored only at its leftmost
// and rightmost three columns. While both ends are anchored, Stone's
// StructuralStrength (10) comfortably reaches the unsupported middle
// (max distance 8 at the center), so nothing collapses. Removing the
// right anchor leaves only the left end, and the far columns — now
// more than 10 hops from any anchor — must be lifted into debris while
// the columns still in range of the left anchor stay put.
func TestStructuralCollapsesUnsupportedBridgeSpan(t *testing.T) {
	cm := chunkmgr.NewManager()
	reg := material.NewDefaultRegistry()
	stoneID, _ := reg.ByName("Stone")
	bedrockID, _ := reg.ByName("Bedrock")

	ensureChunk(cm, 0, 0)
	for x := 0; x <= 20; x++ {
		SetPixel(cm, x, 20, stoneID)
	}
	for _, x := range []int{0, 1, 2, 18, 19, 20} {
		SetPixel(cm, x, 21, bedrockID)
	}

	debris := NewDebrisSet(0.05, 0)
	Structural(cm, reg, debris, MinDebrisClusterSize, 0, 0)
	if debris.Count() != 0 {
		t.Fatalf("expected bridge anchored at both ends to stay intact, got %d debris bodies", debris.Count())
	}

	// Tick 60: the right support is destroyed.
	for _, x := range []int{18, 19, 20} {
		SetPixel(cm, x, 21, material.Air)
	}
	Structural(cm, reg, debris, MinDebrisClusterSize, 0, 60)

	if debris.Count() == 0 {
		t.Fatal("expected the far span to collapse into debris once the right support is removed")
	}
	if p, _ := GetPixel(cm, 20, 20); p.MaterialID != material.Air {
		t.Fatal("expected the far end of the deck to be lifted off the grid")
	}
	if p, _ := GetPixel(cm, 0, 20); p.MaterialID != stoneID {
		t.Fatal("expected the column still within range of the left anchor to remain in place")
	}
}

func TestStructuralLeavesClusterBelowMinimumSize(t *testing.T) {
	cm := chunkmgr.NewManager()
	reg := material.NewDefaultRegistry()
	stoneID, _ := reg.ByName("Stone")

	ensureChunk(cm, 0, 0)
	SetPixel(cm, 10, 10, stoneID)
	SetPixel(cm, 10, 12, material.Air)

	debris := NewDebrisSet(0.05, 0)
	Structural(cm, reg, debris, MinDebrisClusterSize, 0, 0)

	if debris.Count() != 0 {
		t.Fatalf("expected a single unsupported cell below the cluster-size floor to stay put, got %d", debris.Count())
	}
}
