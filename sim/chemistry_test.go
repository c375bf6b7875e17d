package sim

import (
	"testing"

	"github.com/pthm-cable/grainworld/chunkmgr"
	"github.com/pthm-cable/grainworld/material"
	"github.com/pthm-cable/grainworld/pixel"
	"github.com/pthm-cable/grainworld/telemetry"
)

func TestChemistryIgnitesFlammableNextToFire(t *testing.T) {
	cm := chunkmgr.NewManager()
	reg := material.NewDefaultRegistry()
	woodID, _ := reg.ByName("Wood")
	fireID, _ := reg.ByName("Fire")

	ensureChunk(cm, 0, 0)
	SetPixel(cm, 0, 0, woodID)
	SetPixel(cm, 1, 0, fireID)
	fireP, _ := GetPixel(cm, 1, 0)
	fireP.Flags |= pixel.Burning
	SetPixelFull(cm, 1, 0, fireP)

	cm.ClearTickState()
	ch, _ := cm.Get(chunkmgr.Coord{})
	ch.SimulationActive = true

	sink := &telemetry.CountingSink{}
	Chemistry(cm, reg, 0, 1, sink)

	wood, _ := GetPixel(cm, 0, 0)
	if wood.Flags&pixel.Burning == 0 {
		t.Fatal("expected wood adjacent to burning fire to ignite")
	}
	if sink.Reactions == 0 {
		t.Fatal("expected ignition to record a reaction")
	}
}

func TestChemistryCombustionTakesMultipleTicksToCompleteByBurnRate(t *testing.T) {
	cm := chunkmgr.NewManager()
	reg := material.NewDefaultRegistry()
	woodID, _ := reg.ByName("Wood")
	ashID, _ := reg.ByName("Ash")
	wood := reg.Get(woodID)

	ensureChunk(cm, 0, 0)
	p := pixel.Pixel{MaterialID: woodID, Flags: pixel.Burning}
	SetPixelFull(cm, 0, 0, p)

	// Wood's BurnRate (0.05) means the pixel should still be wood, still
	// burning, partway through its burn progress after one tick — it
	// must not convert to ash on the very next Chemistry call.
	cm.ClearTickState()
	ch, _ := cm.Get(chunkmgr.Coord{})
	ch.SimulationActive = true
	Chemistry(cm, reg, 0, 1, telemetry.NoopSink{})

	after, _ := GetPixel(cm, 0, 0)
	if after.MaterialID != woodID {
		t.Fatalf("expected wood to still be wood after one tick (BurnRate=%v), got material %d", wood.BurnRate, after.MaterialID)
	}
	if after.Flags&pixel.Burning == 0 {
		t.Fatal("expected wood to still be burning after one tick")
	}

	// Running enough further ticks to exceed 1/BurnRate total progress
	// must complete the conversion to ash.
	ticksNeeded := int(1/wood.BurnRate) + 2
	for i := 0; i < ticksNeeded; i++ {
		cm.ClearTickState()
		ch.SimulationActive = true
		Chemistry(cm, reg, uint64(i+1), 1, telemetry.NoopSink{})
	}

	final, _ := GetPixel(cm, 0, 0)
	if final.MaterialID != ashID {
		t.Fatalf("expected burning wood to convert to ash after %d ticks, got material %d", ticksNeeded+1, final.MaterialID)
	}
}

func TestChemistryWaterExtinguishesFire(t *testing.T) {
	cm := chunkmgr.NewManager()
	reg := material.NewDefaultRegistry()
	waterID, _ := reg.ByName("Water")
	fireID, _ := reg.ByName("Fire")

	ensureChunk(cm, 0, 0)
	SetPixel(cm, 0, 0, waterID)
	burning := pixel.Pixel{MaterialID: fireID, Flags: pixel.Burning}
	SetPixelFull(cm, 1, 0, burning)

	cm.ClearTickState()
	ch, _ := cm.Get(chunkmgr.Coord{})
	ch.SimulationActive = true

	Chemistry(cm, reg, 0, 1, telemetry.NoopSink{})

	fire, _ := GetPixel(cm, 1, 0)
	if fire.Flags&pixel.Burning != 0 {
		t.Fatal("expected fire neighboring water to be extinguished")
	}
}
