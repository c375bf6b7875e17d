// Package material defines the immutable table of material definitions
// that every pixel in the world refers to by id.
package material

// ID identifies a material. 0 is reserved for air.
type ID uint16

// Air is the reserved empty material; every chunk starts filled with it.
const Air ID = 0

// Type classifies how a material moves under the CA movement pass.
type Type uint8

const (
	TypeSolid Type = iota
	TypePowder
	TypeLiquid
	TypeGas
)

func (t Type) String() string {
	switch t {
	case TypeSolid:
		return "Solid"
	case TypePowder:
		return "Powder"
	case TypeLiquid:
		return "Liquid"
	case TypeGas:
		return "Gas"
	default:
		return "Unknown"
	}
}

// Tag is a bitflag describing interaction-relevant properties of a
// material that don't fit the physical fields below.
type Tag uint16

const (
	TagOrganic Tag = 1 << iota
	TagMetallic
	TagEdible
	TagOre
	TagToxic
	TagMineral
	TagRefined
	TagFuel
	// TagPowerSource marks a material as a circuit source for the
	// electrical pass: current originates from tagged conductor pixels
	// and propagates along the rest of the conductor graph from there.
	TagPowerSource
)

func (t Tag) Has(flag Tag) bool { return t&flag != 0 }

// Def is an immutable material definition. Optional numeric fields use a
// pointer so "not applicable" (e.g. no melting point) is distinguishable
// from zero.
type Def struct {
	ID   ID
	Name string
	Type Type

	Density float32

	// Hardness is nil for indestructible materials (e.g. bedrock).
	Hardness *float32

	Friction  float32
	Viscosity float32

	MeltingPoint  *float32
	BoilingPoint  *float32
	FreezingPoint *float32
	IgnitionTemp  *float32

	MeltsTo  ID
	BoilsTo  ID
	FreezesTo ID
	BurnsTo  ID
	BurnRate float32

	HeatConductivity float32

	Flammable            bool
	Structural            bool
	ConductsElectricity bool

	NutritionalValue    float32
	Toxicity            float32
	HardnessMultiplier  float32
	StructuralStrength  float32
	FuelValue           float32

	LightEmission float32
	Opaque        bool

	Tags Tag

	Color [4]uint8 // RGBA, for downstream renderers only
}

func f32(v float32) *float32 { return &v }

// Registry is the process-wide, immutable-after-construction material
// table. Lookup by id is O(1); unknown ids fall back to air.
type Registry struct {
	byID []Def // dense, indexed by ID
	byName map[string]ID
}

// NewDefaultRegistry builds the registry shipped with grainworld,
// mirroring the material table in original_source's materials.rs.
func NewDefaultRegistry() *Registry {
	r := &Registry{byName: make(map[string]ID)}
	r.register(Def{ID: Air, Name: "Air", Type: TypeGas, Density: 0.0})
	r.register(Def{
		ID: 1, Name: "Stone", Type: TypeSolid, Density: 2.6,
		Hardness: f32(5), Structural: true, StructuralStrength: 10,
		HeatConductivity: 0.3,
		MeltingPoint: f32(1200), MeltsTo: 8, // lava
		Tags: TagMineral,
	})
	r.register(Def{
		ID: 2, Name: "Sand", Type: TypePowder, Density: 1.6,
		Hardness: f32(1), Friction: 0.6, HeatConductivity: 0.2,
		MeltingPoint: f32(1700), MeltsTo: 12, // glass
		Tags: TagMineral,
	})
	r.register(Def{
		ID: 3, Name: "Water", Type: TypeLiquid, Density: 1.0,
		Viscosity: 0.9, HeatConductivity: 0.6,
		BoilingPoint: f32(100), BoilsTo: 7, // steam
		FreezingPoint: f32(0), FreezesTo: 11, // ice
	})
	r.register(Def{
		ID: 4, Name: "Wood", Type: TypeSolid, Density: 0.7,
		Hardness: f32(2), Structural: true, StructuralStrength: 5,
		Flammable: true,
		HeatConductivity: 0.15, IgnitionTemp: f32(300), BurnsTo: 20, // ash
		BurnRate: 0.05, FuelValue: 4, Tags: TagOrganic | TagFuel,
	})
	r.register(Def{
		ID: 5, Name: "Fire", Type: TypeGas, Density: 0.1,
		HeatConductivity: 0.9, LightEmission: 1.0, BurnsTo: 6,
	})
	r.register(Def{
		ID: 6, Name: "Smoke", Type: TypeGas, Density: 0.05,
		HeatConductivity: 0.1, Opaque: false,
	})
	r.register(Def{
		ID: 7, Name: "Steam", Type: TypeGas, Density: 0.08,
		HeatConductivity: 0.4, FreezingPoint: f32(99), FreezesTo: 3,
	})
	r.register(Def{
		ID: 8, Name: "Lava", Type: TypeLiquid, Density: 3.1,
		Viscosity: 0.3, HeatConductivity: 0.8, LightEmission: 0.8,
		FreezingPoint: f32(700), FreezesTo: 1,
	})
	r.register(Def{
		ID: 9, Name: "Oil", Type: TypeLiquid, Density: 0.8,
		Viscosity: 0.5, Flammable: true, IgnitionTemp: f32(250),
		BurnsTo: 5, BurnRate: 0.2, FuelValue: 6, Tags: TagFuel,
	})
	r.register(Def{
		ID: 10, Name: "Acid", Type: TypeLiquid, Density: 1.2,
		Viscosity: 0.7, Toxicity: 0.8, Tags: TagToxic,
	})
	r.register(Def{
		ID: 11, Name: "Ice", Type: TypeSolid, Density: 0.9,
		Hardness: f32(1), HeatConductivity: 0.4,
		MeltingPoint: f32(0), MeltsTo: 3,
	})
	r.register(Def{
		ID: 12, Name: "Glass", Type: TypeSolid, Density: 2.5,
		Hardness: f32(3), Structural: true, StructuralStrength: 4,
		HeatConductivity: 0.2,
		MeltingPoint: f32(1500), MeltsTo: 12,
	})
	r.register(Def{
		ID: 13, Name: "Metal", Type: TypeSolid, Density: 7.8,
		Hardness: f32(8), Structural: true, StructuralStrength: 14,
		ConductsElectricity: true,
		HeatConductivity: 0.9, MeltingPoint: f32(1500), MeltsTo: 13,
		// Metal doubles as the electrical pass's source material: with
		// no dedicated generator/device material, a conductor needs a
		// concrete origin to push current from.
		Tags: TagMetallic | TagRefined | TagPowerSource,
	})
	r.register(Def{
		ID: 14, Name: "Bedrock", Type: TypeSolid, Density: 10,
		Structural: true, HeatConductivity: 0.1, Tags: TagMineral,
	})

	// Phase-5 organic / ore / refined set.
	r.register(Def{
		ID: 15, Name: "Dirt", Type: TypePowder, Density: 1.3,
		Hardness: f32(0.5), Friction: 0.8, HeatConductivity: 0.2,
		Tags: TagMineral,
	})
	r.register(Def{
		ID: 16, Name: "PlantMatter", Type: TypeSolid, Density: 0.4,
		Hardness: f32(0.2), Flammable: true, IgnitionTemp: f32(280),
		BurnsTo: 20, BurnRate: 0.1, NutritionalValue: 0.3,
		Tags: TagOrganic | TagEdible | TagFuel,
	})
	r.register(Def{
		ID: 17, Name: "Fruit", Type: TypeSolid, Density: 0.5,
		Hardness: f32(0.1), NutritionalValue: 1.0,
		Tags: TagOrganic | TagEdible,
	})
	r.register(Def{
		ID: 18, Name: "Flesh", Type: TypeSolid, Density: 1.0,
		Hardness: f32(0.1), NutritionalValue: 0.8, Flammable: true,
		IgnitionTemp: f32(260), BurnsTo: 20, BurnRate: 0.08,
		Tags: TagOrganic | TagEdible,
	})
	r.register(Def{
		ID: 19, Name: "Bone", Type: TypeSolid, Density: 1.8,
		Hardness: f32(2), Tags: TagOrganic,
	})
	r.register(Def{
		ID: 20, Name: "Ash", Type: TypePowder, Density: 0.6,
		Hardness: f32(0.1), Friction: 0.9,
	})
	r.register(Def{
		ID: 21, Name: "CoalOre", Type: TypeSolid, Density: 1.4,
		Hardness: f32(2), Flammable: true, IgnitionTemp: f32(400),
		BurnsTo: 20, BurnRate: 0.03, FuelValue: 8,
		Tags: TagOre | TagFuel,
	})
	r.register(Def{
		ID: 22, Name: "IronOre", Type: TypeSolid, Density: 4.0,
		Hardness: f32(4), MeltingPoint: f32(1538), MeltsTo: 24,
		Tags: TagOre | TagMetallic,
	})
	r.register(Def{
		ID: 23, Name: "CopperOre", Type: TypeSolid, Density: 3.6,
		Hardness: f32(3), MeltingPoint: f32(1085), MeltsTo: 25, // copper ingot
		Tags: TagOre | TagMetallic,
	})
	r.register(Def{
		ID: 24, Name: "IronIngot", Type: TypeSolid, Density: 7.0,
		Hardness: f32(6), Structural: true, StructuralStrength: 12,
		ConductsElectricity: true,
		Tags: TagMetallic | TagRefined,
	})
	r.register(Def{
		ID: 25, Name: "CopperIngot", Type: TypeSolid, Density: 6.0,
		Hardness: f32(4), Structural: true, StructuralStrength: 8,
		ConductsElectricity: true,
		Tags: TagMetallic | TagRefined,
	})
	r.register(Def{
		ID: 26, Name: "BronzeIngot", Type: TypeSolid, Density: 6.5,
		Hardness: f32(5), Structural: true, StructuralStrength: 10,
		ConductsElectricity: true,
		Tags: TagMetallic | TagRefined,
	})
	r.register(Def{
		ID: 27, Name: "SteelIngot", Type: TypeSolid, Density: 7.2,
		Hardness: f32(9), Structural: true, StructuralStrength: 16,
		ConductsElectricity: true,
		Tags: TagMetallic | TagRefined,
	})
	r.register(Def{
		ID: 28, Name: "Gunpowder", Type: TypePowder, Density: 0.9,
		Hardness: f32(0.1), Flammable: true, IgnitionTemp: f32(180),
		BurnsTo: 29, BurnRate: 1.0, Tags: TagFuel,
	})
	r.register(Def{
		ID: 29, Name: "PoisonGas", Type: TypeGas, Density: 0.09,
		Toxicity: 0.6, Tags: TagToxic,
	})
	r.register(Def{
		ID: 30, Name: "Fertilizer", Type: TypePowder, Density: 0.7,
		Hardness: f32(0.1), Tags: TagMineral,
	})

	// GoldOre: this preserves a documented upstream bug. See DESIGN.md.
	r.register(Def{
		ID: 31, Name: "GoldOre", Type: TypeSolid, Density: 5.0,
		Hardness: f32(3), MeltingPoint: f32(1064),
		MeltsTo: 25, // FIXME: should be GoldIngot; preserved for compatibility
		Tags: TagOre | TagMetallic,
	})
	return r
}

func (r *Registry) register(d Def) {
	for len(r.byID) <= int(d.ID) {
		r.byID = append(r.byID, Def{})
	}
	r.byID[d.ID] = d
	r.byName[d.Name] = d.ID
}

// Get returns the definition for id, falling back to Air for unknown ids.
func (r *Registry) Get(id ID) Def {
	if int(id) < 0 || int(id) >= len(r.byID) {
		return r.byID[Air]
	}
	d := r.byID[id]
	if d.Name == "" {
		return r.byID[Air]
	}
	return d
}

// GetColor returns the display color for id. Purely for downstream
// renderers; the core never uses it for simulation decisions.
func (r *Registry) GetColor(id ID) [4]uint8 {
	return r.Get(id).Color
}

// ByName looks up a material id by its registered name.
func (r *Registry) ByName(name string) (ID, bool) {
	id, ok := r.byName[name]
	return id, ok
}
