package sim

import (
	"testing"

	"github.com/pthm-cable/grainworld/chunkmgr"
	"github.com/pthm-cable/grainworld/material"
)

func TestPressureAddAndRead(t *testing.T) {
	field := NewPressureField(PressureDecayRate)
	c := chunkmgr.Coord{}

	field.AddPressureAt(c, 3, 3, 2.5)
	if got := field.At(c, 3, 3); got != 2.5 {
		t.Fatalf("expected pressure 2.5 at (3,3), got %v", got)
	}
	if got := field.At(c, 40, 40); got != 0 {
		t.Fatalf("expected unset cell to read zero pressure, got %v", got)
	}
}

func TestPressureAtUnloadedChunkReadsZero(t *testing.T) {
	field := NewPressureField(PressureDecayRate)
	if got := field.At(chunkmgr.Coord{X: 5, Y: 5}, 0, 0); got != 0 {
		t.Fatalf("expected unloaded chunk to read zero pressure, got %v", got)
	}
}

func TestPressureDecaysTowardZero(t *testing.T) {
	cm := chunkmgr.NewManager()
	ensureChunk(cm, 0, 0)
	cm.UpdateActiveSet(chunkmgr.Coord{}, 0)

	field := NewPressureField(PressureDecayRate)
	reg := material.NewDefaultRegistry()
	field.AddPressureAt(chunkmgr.Coord{}, 0, 0, 1)

	Pressure(cm, reg, field)

	got := field.At(chunkmgr.Coord{}, 0, 0)
	if got <= 0 || got >= 1 {
		t.Fatalf("expected positive pressure to decay partway toward zero, got %v", got)
	}
}

func TestPressureAdvectsGasTowardLowerPressure(t *testing.T) {
	cm := chunkmgr.NewManager()
	reg := material.NewDefaultRegistry()
	smokeID, _ := reg.ByName("Smoke")

	ensureChunk(cm, 0, 0)
	// Placed on a pressure-grid column boundary (PressureGridFactor == 8)
	// but mid-row (y=44), so only its left neighbor falls in a distinct,
	// lower-pressure coarse cell.
	SetPixel(cm, 8, 44, smokeID)
	cm.ClearTickState()
	cm.UpdateActiveSet(chunkmgr.Coord{}, 0)

	field := NewPressureField(PressureDecayRate)
	field.AddPressureAt(chunkmgr.Coord{}, 8, 44, 1)

	Pressure(cm, reg, field)

	origin, _ := GetPixel(cm, 8, 44)
	neighbor, _ := GetPixel(cm, 7, 44)
	if origin.MaterialID == smokeID {
		t.Fatal("expected gas to advect toward the lower-pressure neighbor cell")
	}
	if neighbor.MaterialID != smokeID {
		t.Fatalf("expected gas to have moved to (7,44), got material %d there", neighbor.MaterialID)
	}
}
