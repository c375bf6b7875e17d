package creature

import (
	"testing"

	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
)

// mockWorld is a minimal in-memory WorldAccess/WorldMutAccess double keyed
// by grid coordinate, enough to exercise Eat/Mine/Build in isolation.
type mockWorld struct {
	pixels map[[2]int]pixel.Pixel
}

func newMockWorld() *mockWorld { return &mockWorld{pixels: map[[2]int]pixel.Pixel{}} }

func (m *mockWorld) GetPixel(x, y int) (pixel.Pixel, bool) {
	p, ok := m.pixels[[2]int{x, y}]
	if !ok {
		return pixel.Air, true
	}
	return p, true
}
func (m *mockWorld) GetTemperature(x, y int) float32 { return 20 }
func (m *mockWorld) GetLight(x, y int) (uint8, bool)  { return 0, true }
func (m *mockWorld) IsSolidAt(x, y int) bool {
	p, _ := m.GetPixel(x, y)
	return p.MaterialID != material.Air
}
func (m *mockWorld) Raycast(from, dir Vec2, maxDistance float64) (RaycastHit, bool) {
	return RaycastHit{}, false
}
func (m *mockWorld) Get8Neighbors(cx, cy int) [8]material.ID { return [8]material.ID{} }
func (m *mockWorld) PixelsInRadius(cx, cy int, r float64) []RaycastHit { return nil }

func (m *mockWorld) SetPixel(x, y int, id material.ID) bool {
	m.pixels[[2]int{x, y}] = pixel.Pixel{MaterialID: id}
	return true
}
func (m *mockWorld) SetPixelFull(x, y int, p pixel.Pixel) bool {
	m.pixels[[2]int{x, y}] = p
	return true
}

func TestEatRemovesPixelAndReturnsMaterial(t *testing.T) {
	w := newMockWorld()
	reg := material.NewDefaultRegistry()
	wood, ok := reg.ByName("Wood")
	if !ok {
		t.Fatal("expected Wood in default registry")
	}
	w.SetPixel(1, 1, wood)

	got, ok := Eat(w, w, 1, 1)
	if !ok || got != wood {
		t.Fatalf("expected to eat wood, got %v ok=%v", got, ok)
	}
	p, _ := w.GetPixel(1, 1)
	if p.MaterialID != material.Air {
		t.Fatalf("expected air after eating, got %v", p.MaterialID)
	}
}

func TestEatAirIsNoop(t *testing.T) {
	w := newMockWorld()
	_, ok := Eat(w, w, 0, 0)
	if ok {
		t.Fatal("expected eating air to fail")
	}
}

func TestMineRefusesBedrock(t *testing.T) {
	w := newMockWorld()
	reg := material.NewDefaultRegistry()
	bedrock, ok := reg.ByName("Bedrock")
	if !ok {
		t.Fatal("expected Bedrock in default registry")
	}
	w.SetPixel(2, 2, bedrock)

	if Mine(w, w, reg, 2, 2) {
		t.Fatal("expected mining bedrock to fail")
	}
	p, _ := w.GetPixel(2, 2)
	if p.MaterialID != bedrock {
		t.Fatal("bedrock should be untouched")
	}
}

func TestMineRemovesOrdinaryMaterial(t *testing.T) {
	w := newMockWorld()
	reg := material.NewDefaultRegistry()
	stone, ok := reg.ByName("Stone")
	if !ok {
		t.Fatal("expected Stone in default registry")
	}
	w.SetPixel(3, 3, stone)

	if !Mine(w, w, reg, 3, 3) {
		t.Fatal("expected mining stone to succeed")
	}
	p, _ := w.GetPixel(3, 3)
	if p.MaterialID != material.Air {
		t.Fatalf("expected air after mining, got %v", p.MaterialID)
	}
}

func TestBuildPlacesPlayerPlacedFlag(t *testing.T) {
	w := newMockWorld()
	reg := material.NewDefaultRegistry()
	stone, _ := reg.ByName("Stone")

	if !Build(w, 4, 4, stone) {
		t.Fatal("expected build to succeed")
	}
	p, _ := w.GetPixel(4, 4)
	if p.MaterialID != stone {
		t.Fatalf("expected stone placed, got %v", p.MaterialID)
	}
	if p.Flags&pixel.PlayerPlaced == 0 {
		t.Fatal("expected PlayerPlaced flag set")
	}
}
