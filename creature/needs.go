package creature

// Vitals is a creature's health and hunger pool. Hunger decays every tick;
// once it reaches zero, the creature starts taking starvation damage
// instead.
type Vitals struct {
	Health float64
	Hunger float64
}

// VitalsConfig tunes the hunger-drain and starvation-damage rates.
type VitalsConfig struct {
	MaxHealth      float64
	MaxHunger      float64
	DrainRate      float64
	StarvationRate float64
	HungryBelow    float64
}

// DefaultVitalsConfig is a reasonable starting metabolism.
func DefaultVitalsConfig() VitalsConfig {
	return VitalsConfig{
		MaxHealth:      100,
		MaxHunger:      100,
		DrainRate:      1.5,
		StarvationRate: 4,
		HungryBelow:    40,
	}
}

// NewVitals starts a creature at full health and hunger.
func NewVitals(cfg VitalsConfig) Vitals {
	return Vitals{Health: cfg.MaxHealth, Hunger: cfg.MaxHunger}
}

// Feed restores hunger by amount, capped at MaxHunger.
func (v *Vitals) Feed(cfg VitalsConfig, amount float64) {
	v.Hunger += amount
	if v.Hunger > cfg.MaxHunger {
		v.Hunger = cfg.MaxHunger
	}
}

// Update drains hunger at cfg.DrainRate per second; once hunger hits zero,
// health drains at cfg.StarvationRate instead. Reports whether the
// creature is now dead (health <= 0).
func (v *Vitals) Update(cfg VitalsConfig, dt float64) bool {
	v.Hunger -= cfg.DrainRate * dt
	if v.Hunger < 0 {
		v.Hunger = 0
	}
	if v.Hunger == 0 {
		v.Health -= cfg.StarvationRate * dt
	}
	if v.Health < 0 {
		v.Health = 0
	}
	return v.Health <= 0
}

// IsHungry reports whether hunger has dropped below the threshold that
// makes GOAP treat hunger as the active need.
func (v *Vitals) IsHungry(cfg VitalsConfig) bool { return v.Hunger < cfg.HungryBelow }

// HasEnergy reports whether the creature has enough hunger reserve to
// take exploratory action rather than conserving itself.
func (v *Vitals) HasEnergy(cfg VitalsConfig) bool { return v.Hunger > 0 }
