package creature

import (
	"math"

	"github.com/pthm-cable/grainworld/material"
)

// SensorConfig controls how a creature perceives its surroundings: a fixed
// number of raycasts spread evenly around the body, and the radius over
// which chemical gradients (food, danger) are sampled.
type SensorConfig struct {
	RaycastCount         int
	RaycastRange         float64
	GradientSampleRadius float64
}

// DefaultSensorConfig is a reasonable starting sensor loadout.
func DefaultSensorConfig() SensorConfig {
	return SensorConfig{RaycastCount: 8, RaycastRange: 16, GradientSampleRadius: 24}
}

// Perception is everything Sense gathered this tick: raycast hits, contact
// materials, and direction+distance to the nearest food and nearest
// threat.
type Perception struct {
	RaycastHits      []RaycastHit
	ContactMaterials []material.ID

	NearestFoodDX, NearestFoodDY float64
	NearestFoodDist              float64
	HasFoodNearby                bool

	ThreatDX, ThreatDY float64
	ThreatLevel        float64
}

// MaterialClassifier reports whether a material id belongs to a class of
// interest (food, danger) the scenario defines.
type MaterialClassifier func(materialID material.ID) bool

// Sense gathers raycasts around pos, samples the area out to
// cfg.GradientSampleRadius for the nearest food/danger material, and
// reports as contact materials the non-air ids of the 8 cells around the
// rounded position.
func Sense(w WorldAccess, pos Vec2, cfg SensorConfig, isFood, isDanger MaterialClassifier) Perception {
	p := Perception{}

	count := cfg.RaycastCount
	if count < 1 {
		count = 1
	}
	p.RaycastHits = make([]RaycastHit, 0, count)
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(count)
		dir := Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
		if hit, ok := w.Raycast(pos, dir, cfg.RaycastRange); ok {
			p.RaycastHits = append(p.RaycastHits, hit)
		}
	}

	neighbors := w.Get8Neighbors(int(math.Round(pos.X)), int(math.Round(pos.Y)))
	for _, id := range neighbors {
		if id != material.Air {
			p.ContactMaterials = append(p.ContactMaterials, id)
		}
	}

	nearby := w.PixelsInRadius(int(math.Round(pos.X)), int(math.Round(pos.Y)), cfg.GradientSampleRadius)
	bestFoodDist, bestThreatDist := math.Inf(1), math.Inf(1)
	for _, hit := range nearby {
		dx := float64(hit.X) - pos.X
		dy := float64(hit.Y) - pos.Y
		dist := math.Hypot(dx, dy)

		if isFood != nil && isFood(hit.MaterialID) && dist < bestFoodDist {
			bestFoodDist = dist
			if dist > 0 {
				p.NearestFoodDX, p.NearestFoodDY = dx/dist, dy/dist
			}
			p.NearestFoodDist = dist
			p.HasFoodNearby = true
		}
		if isDanger != nil && isDanger(hit.MaterialID) && dist < bestThreatDist {
			bestThreatDist = dist
			if dist > 0 {
				p.ThreatDX, p.ThreatDY = dx/dist, dy/dist
			}
		}
	}

	if math.IsInf(bestThreatDist, 1) {
		p.ThreatLevel = 0
	} else {
		p.ThreatLevel = clamp01(1 - bestThreatDist/cfg.GradientSampleRadius)
	}
	if !p.HasFoodNearby {
		p.NearestFoodDist = cfg.GradientSampleRadius
	}

	return p
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
