// Package scenario scores a creature's trajectory into a scalar
// fitness and a BehaviorDescriptor, which the evolution package bins
// into its MAP-Elites archive. Concrete scenarios live in scenarios.go.
package scenario

import "math"

// BehaviorDim names one axis of a BehaviorDescriptor: a stable index,
// a human-readable name, and the range its values are expected to fall
// within for linear bin mapping.
type BehaviorDim struct {
	Name     string
	Min, Max float64
}

// BehaviorDescriptor is a scenario's multi-dimensional behavior readout.
// Every scenario in this package reports the same four dimensions, in
// the same order, so the evolution archive can bin any two of them
// regardless of which scenario produced the trajectory — mirroring
// headless/map_elites.rs's BehaviorDescriptor, whose four fields
// (locomotion_efficiency, foraging_efficiency, exploration, activity)
// are shared across every scenario and the archive only ever reads two
// of them by index.
type BehaviorDescriptor struct {
	Dims   []BehaviorDim
	Values []float64
}

// StandardDims is the fixed dimension order every scenario in this
// package reports.
var StandardDims = []BehaviorDim{
	{Name: "Locomotion", Min: 0, Max: 10},
	{Name: "Foraging", Min: 0, Max: 5},
	{Name: "Exploration", Min: 0, Max: 1},
	{Name: "Activity", Min: 0, Max: 1},
}

// Dimension returns the value at index i, or 0 if i is out of range.
func (b BehaviorDescriptor) Dimension(i int) float64 {
	if i < 0 || i >= len(b.Values) {
		return 0
	}
	return b.Values[i]
}

// IndexOf returns the stable index of the named dimension, or -1.
func (b BehaviorDescriptor) IndexOf(name string) int {
	for i, d := range b.Dims {
		if d.Name == name {
			return i
		}
	}
	return -1
}

// Finite clamps every value to its dimension's documented range and
// replaces any non-finite value with the range midpoint, guaranteeing
// "outputs are finite real numbers within documented ranges".
func (b BehaviorDescriptor) Finite() BehaviorDescriptor {
	out := BehaviorDescriptor{Dims: b.Dims, Values: make([]float64, len(b.Values))}
	for i, v := range b.Values {
		dim := b.Dims[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = (dim.Min + dim.Max) / 2
		}
		if v < dim.Min {
			v = dim.Min
		}
		if v > dim.Max {
			v = dim.Max
		}
		out.Values[i] = v
	}
	return out
}

// Result is a scenario's scored evaluation of one trajectory.
type Result struct {
	Fitness  float64
	Behavior BehaviorDescriptor
}
