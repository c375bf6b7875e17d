package genome

import "math"

// JointKind distinguishes a rigid joint from one with angle limits.
type JointKind uint8

const (
	JointFixed JointKind = iota
	JointRevolute
)

func (k JointKind) String() string {
	if k == JointRevolute {
		return "revolute"
	}
	return "fixed"
}

// BodyPart is one instantiated cell of a sampled morphology: a local offset
// from the creature's root, a collision radius, and a density.
type BodyPart struct {
	OffsetX, OffsetY float64
	Radius           float64
	Density          float64
	Index            int
}

// Joint connects two existing body parts by index. Self-loops never occur:
// SampleMorphology only links grid-adjacent, distinct parts.
type Joint struct {
	Parent, Child      int
	Kind               JointKind
	AngleMin, AngleMax float64
}

// Morphology is the ordered body-part sequence plus its joints. The root is
// always index 0; (C1) non-empty is guaranteed by SampleMorphology's
// zero-part fallback.
type Morphology struct {
	Parts  []BodyPart
	Joints []Joint
}

// MorphologyParams controls grid resolution and the ranges CPPN outputs
// are rescaled into.
type MorphologyParams struct {
	GridSize               int
	Threshold              float64
	MinRadius, MaxRadius   float64
	MinDensity, MaxDensity float64
	MinAngle, MaxAngle     float64
	MaxParts               int
}

// DefaultMorphologyParams returns reasonable sampling bounds for a creature
// capped at maxParts body parts.
func DefaultMorphologyParams(maxParts int) MorphologyParams {
	return MorphologyParams{
		GridSize:   8,
		Threshold:  0.2,
		MinRadius:  0.5,
		MaxRadius:  3.0,
		MinDensity: 0.5,
		MaxDensity: 2.0,
		MinAngle:   math.Pi / 8,
		MaxAngle:   math.Pi / 2,
		MaxParts:   maxParts,
	}
}

func lerp(t, lo, hi float64) float64 { return lo + t*(hi-lo) }

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// gridCoord maps grid index i out of n cells to a normalized coordinate in
// [-1, 1].
func gridCoord(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return 2*float64(i)/float64(n-1) - 1
}

// SampleMorphology queries cppn over a GridSize×GridSize grid in normalized
// [-1,1] coordinates and instantiates a body part wherever the radius
// output exceeds Threshold, halting generation as soon as MaxParts is
// reached. Adjacent instantiated cells (grid-right and grid-down) are
// joined by a joint whose kind and angle limits come from re-querying the
// CPPN at the pair's midpoint. A morphology with zero sampled parts falls
// back to a single default part at the origin.
func SampleMorphology(c *CPPN, p MorphologyParams) Morphology {
	if p.GridSize < 1 {
		p.GridSize = 1
	}
	if p.MaxParts < 1 {
		p.MaxParts = 1
	}

	partAt := make([][]int, p.GridSize)
	for i := range partAt {
		partAt[i] = make([]int, p.GridSize)
		for j := range partAt[i] {
			partAt[i][j] = -1
		}
	}

	var parts []BodyPart

outer:
	for i := 0; i < p.GridSize; i++ {
		for j := 0; j < p.GridSize; j++ {
			if len(parts) >= p.MaxParts {
				break outer
			}
			x := gridCoord(i, p.GridSize)
			y := gridCoord(j, p.GridSize)
			d := math.Hypot(x, y)
			out := c.Evaluate(x, y, d)
			if out[0] <= p.Threshold {
				continue
			}

			radius := lerp(clamp01((out[0]+1)/2), p.MinRadius, p.MaxRadius)
			density := lerp(clamp01((out[1]+1)/2), p.MinDensity, p.MaxDensity)

			idx := len(parts)
			parts = append(parts, BodyPart{
				OffsetX: x, OffsetY: y, Radius: radius, Density: density, Index: idx,
			})
			partAt[i][j] = idx
		}
	}

	if len(parts) == 0 {
		return Morphology{Parts: []BodyPart{{Radius: p.MinRadius, Density: p.MinDensity, Index: 0}}}
	}

	var joints []Joint
	for i := 0; i < p.GridSize; i++ {
		for j := 0; j < p.GridSize; j++ {
			idx := partAt[i][j]
			if idx < 0 {
				continue
			}
			if i+1 < p.GridSize {
				if rightIdx := partAt[i+1][j]; rightIdx >= 0 {
					joints = append(joints, jointBetween(c, parts[idx], parts[rightIdx], idx, rightIdx, p))
				}
			}
			if j+1 < p.GridSize {
				if downIdx := partAt[i][j+1]; downIdx >= 0 {
					joints = append(joints, jointBetween(c, parts[idx], parts[downIdx], idx, downIdx, p))
				}
			}
		}
	}

	return Morphology{Parts: parts, Joints: joints}
}

func jointBetween(c *CPPN, a, b BodyPart, idxA, idxB int, p MorphologyParams) Joint {
	mx := (a.OffsetX + b.OffsetX) / 2
	my := (a.OffsetY + b.OffsetY) / 2
	md := math.Hypot(mx, my)
	out := c.Evaluate(mx, my, md)

	if out[2] <= 0 {
		return Joint{Parent: idxA, Child: idxB, Kind: JointFixed}
	}

	span := lerp(clamp01((out[3]+1)/2), p.MinAngle, p.MaxAngle)
	return Joint{Parent: idxA, Child: idxB, Kind: JointRevolute, AngleMin: -span, AngleMax: span}
}
