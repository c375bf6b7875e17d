package material

import "testing"

func TestUnknownIDFallsBackToAir(t *testing.T) {
	r := NewDefaultRegistry()
	d := r.Get(ID(9999))
	if d.ID != Air {
		t.Fatalf("expected unknown id to fall back to air, got %+v", d)
	}
}

func TestGoldOreFIXMEPreserved(t *testing.T) {
	r := NewDefaultRegistry()
	gold, ok := r.ByName("GoldOre")
	if !ok {
		t.Fatal("GoldOre not registered")
	}
	copper, ok := r.ByName("CopperIngot")
	if !ok {
		t.Fatal("CopperIngot not registered")
	}
	if r.Get(gold).MeltsTo != copper {
		t.Fatalf("expected GoldOre to melt into CopperIngot (preserved bug), got %v", r.Get(gold).MeltsTo)
	}
}

func TestRegistryLookupByName(t *testing.T) {
	r := NewDefaultRegistry()
	for _, name := range []string{"Air", "Stone", "Sand", "Water", "Wood", "Bedrock"} {
		id, ok := r.ByName(name)
		if !ok {
			t.Fatalf("expected %s registered", name)
		}
		if r.Get(id).Name != name {
			t.Fatalf("round-trip mismatch for %s", name)
		}
	}
}

func TestTagHas(t *testing.T) {
	tags := TagOrganic | TagEdible
	if !tags.Has(TagOrganic) {
		t.Fatal("expected TagOrganic set")
	}
	if tags.Has(TagMetallic) {
		t.Fatal("did not expect TagMetallic set")
	}
}
