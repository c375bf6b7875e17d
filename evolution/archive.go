// Package evolution implements the MAP-Elites archive, parent
// selection, genome variation, multi-environment evaluation, and
// curriculum progression that drive quality-diversity training. It is
// grounded on original_source/crates/sunaba/src/headless/map_elites.rs,
// env_distribution.rs, and curriculum.rs.
package evolution

import (
	"math"

	"github.com/pthm-cable/grainworld/genome"
	"github.com/pthm-cable/grainworld/rng"
	"github.com/pthm-cable/grainworld/scenario"
)

// SelectionMethod picks how SampleElite draws from the occupied cells.
type SelectionMethod int

const (
	// SelectionUniform picks any occupied cell with equal probability.
	SelectionUniform SelectionMethod = iota
	// SelectionTournament picks the best of TournamentSize random
	// candidates, biasing reproduction toward higher fitness.
	SelectionTournament
)

// Elite is one individual held in an Archive cell.
type Elite struct {
	Genome     *genome.Genome
	Fitness    float64
	Behavior   scenario.BehaviorDescriptor
	Generation int
	Archetype  string
}

// Archive is a 2D quality-diversity grid over two behavior dimensions,
// keeping the single highest-fitness elite discovered for each cell
// (a MAP-Elites grid).
type Archive struct {
	cells map[[2]int]Elite

	resolution int
	dim0Name   string
	dim1Name   string
	dim0Idx    int
	dim1Idx    int
	dim0Range  [2]float64
	dim1Range  [2]float64

	selection      SelectionMethod
	tournamentSize int
}

// NewArchive builds an empty archive binning dimension dim0Idx/dim1Idx
// of the BehaviorDescriptor each evaluation reports, into a
// resolution×resolution grid over the given ranges.
func NewArchive(resolution int, dim0Name string, dim0Idx int, dim0Range [2]float64, dim1Name string, dim1Idx int, dim1Range [2]float64) *Archive {
	return &Archive{
		cells:          make(map[[2]int]Elite),
		resolution:     resolution,
		dim0Name:       dim0Name,
		dim1Name:       dim1Name,
		dim0Idx:        dim0Idx,
		dim0Range:      dim0Range,
		dim1Idx:        dim1Idx,
		dim1Range:      dim1Range,
		selection:      SelectionTournament,
		tournamentSize: 3,
	}
}

// DefaultArchive bins on Locomotion (range 0-10) and Foraging (range
// 0-5), a 10x10 grid, matching headless/map_elites.rs's default_grid.
func DefaultArchive() *Archive {
	return NewArchive(10,
		"Locomotion", 0, [2]float64{0, 10},
		"Foraging", 1, [2]float64{0, 5},
	)
}

// SetSelectionMethod changes how SampleElite draws candidates.
func (a *Archive) SetSelectionMethod(m SelectionMethod) { a.selection = m }

// SetTournamentSize sets the tournament candidate count, clamped to a
// minimum of 2.
func (a *Archive) SetTournamentSize(size int) {
	if size < 2 {
		size = 2
	}
	a.tournamentSize = size
}

func toCellIdx(value float64, bounds [2]float64, resolution int) int {
	normalized := (value - bounds[0]) / (bounds[1] - bounds[0])
	idx := int(math.Floor(normalized * float64(resolution)))
	if idx < 0 {
		idx = 0
	}
	if idx > resolution-1 {
		idx = resolution - 1
	}
	return idx
}

func (a *Archive) cellOf(behavior scenario.BehaviorDescriptor) [2]int {
	b0 := toCellIdx(behavior.Dimension(a.dim0Idx), a.dim0Range, a.resolution)
	b1 := toCellIdx(behavior.Dimension(a.dim1Idx), a.dim1Range, a.resolution)
	return [2]int{b0, b1}
}

// TryInsert inserts an evaluation into its cell iff the cell is empty or
// fitness exceeds the existing occupant's fitness, returning whether
// the insertion happened.
func (a *Archive) TryInsert(g *genome.Genome, fitness float64, behavior scenario.BehaviorDescriptor, generation int, archetype string) bool {
	cell := a.cellOf(behavior)
	elite := Elite{Genome: g, Fitness: fitness, Behavior: behavior, Generation: generation, Archetype: archetype}

	existing, ok := a.cells[cell]
	if !ok || fitness > existing.Fitness {
		a.cells[cell] = elite
		return true
	}
	return false
}

// CellCount is the number of occupied cells.
func (a *Archive) CellCount() int { return len(a.cells) }

// TotalCells is resolution squared.
func (a *Archive) TotalCells() int { return a.resolution * a.resolution }

// Coverage is CellCount/TotalCells.
func (a *Archive) Coverage() float64 { return float64(a.CellCount()) / float64(a.TotalCells()) }

// BestElite returns the highest-fitness elite in the archive.
func (a *Archive) BestElite() (Elite, bool) {
	var best Elite
	found := false
	for _, e := range a.cells {
		if !found || e.Fitness > best.Fitness {
			best = e
			found = true
		}
	}
	return best, found
}

// Elites returns every occupied cell's elite, in no particular order.
func (a *Archive) Elites() []Elite {
	out := make([]Elite, 0, len(a.cells))
	for _, e := range a.cells {
		out = append(out, e)
	}
	return out
}

func (a *Archive) keys() [][2]int {
	keys := make([][2]int, 0, len(a.cells))
	for k := range a.cells {
		keys = append(keys, k)
	}
	return keys
}

// SampleElite draws one elite using the configured selection method.
func (a *Archive) SampleElite(r rng.Source) (Elite, bool) {
	if len(a.cells) == 0 {
		return Elite{}, false
	}
	switch a.selection {
	case SelectionTournament:
		return a.sampleTournament(r)
	default:
		return a.sampleUniform(r)
	}
}

func (a *Archive) sampleUniform(r rng.Source) (Elite, bool) {
	keys := a.keys()
	idx := int(r.GenF32() * float32(len(keys)))
	if idx >= len(keys) {
		idx = len(keys) - 1
	}
	return a.cells[keys[idx]], true
}

func (a *Archive) sampleTournament(r rng.Source) (Elite, bool) {
	keys := a.keys()
	size := a.tournamentSize
	if size > len(keys) {
		size = len(keys)
	}
	var best Elite
	bestFitness := math.Inf(-1)
	found := false
	for i := 0; i < size; i++ {
		idx := int(r.GenF32() * float32(len(keys)))
		if idx >= len(keys) {
			idx = len(keys) - 1
		}
		e := a.cells[keys[idx]]
		if e.Fitness > bestFitness {
			bestFitness = e.Fitness
			best = e
			found = true
		}
	}
	return best, found
}

// SampleParents draws two distinct elites for crossover, falling back to
// a uniform scan for a different parent if the configured selection
// method keeps returning the same one.
func (a *Archive) SampleParents(r rng.Source) (Elite, Elite, bool) {
	if len(a.cells) < 2 {
		return Elite{}, Elite{}, false
	}
	parent1, ok := a.SampleElite(r)
	if !ok {
		return Elite{}, Elite{}, false
	}
	for attempt := 0; attempt < 10; attempt++ {
		parent2, ok := a.SampleElite(r)
		if ok && parent2.Genome != parent1.Genome {
			return parent1, parent2, true
		}
	}
	keys := a.keys()
	for i := 0; i < len(keys); i++ {
		idx := int(r.GenF32() * float32(len(keys)))
		if idx >= len(keys) {
			idx = len(keys) - 1
		}
		parent2 := a.cells[keys[idx]]
		if parent2.Genome != parent1.Genome {
			return parent1, parent2, true
		}
	}
	return Elite{}, Elite{}, false
}

// GridStats summarizes the archive's current occupancy and fitness
// spread, for reporting alongside telemetry.WindowStats.
type GridStats struct {
	CellCount   int
	TotalCells  int
	Coverage    float64
	BestFitness float64
	AvgFitness  float64
	MinFitness  float64
}

// Stats computes the archive's current GridStats.
func (a *Archive) Stats() GridStats {
	if len(a.cells) == 0 {
		return GridStats{TotalCells: a.TotalCells()}
	}
	best := math.Inf(-1)
	worst := math.Inf(1)
	var sum float64
	for _, e := range a.cells {
		best = math.Max(best, e.Fitness)
		worst = math.Min(worst, e.Fitness)
		sum += e.Fitness
	}
	return GridStats{
		CellCount:   a.CellCount(),
		TotalCells:  a.TotalCells(),
		Coverage:    a.Coverage(),
		BestFitness: best,
		AvgFitness:  sum / float64(len(a.cells)),
		MinFitness:  worst,
	}
}

// Clear empties the archive in place, keeping its configuration.
func (a *Archive) Clear() { a.cells = make(map[[2]int]Elite) }

// AsFitnessGrid renders the archive as a resolution×resolution matrix of
// fitness values, math.Inf(-1) marking unoccupied cells, for heatmap
// reporting.
func (a *Archive) AsFitnessGrid() [][]float64 {
	grid := make([][]float64, a.resolution)
	for i := range grid {
		grid[i] = make([]float64, a.resolution)
		for j := range grid[i] {
			grid[i][j] = math.Inf(-1)
		}
	}
	for cell, e := range a.cells {
		grid[cell[0]][cell[1]] = e.Fitness
	}
	return grid
}

// DiverseElite labels an elite with the strategy it represents, for
// sampling a showcase spread across the archive.
type DiverseElite struct {
	Elite Elite
	Label string
}

// SampleDiverseElites returns up to n elites spread across the
// occupied cells: the global best, then the remaining highest-fitness
// cells in descending order. The first is labeled "best" and every other
// one "runner-up".
func (a *Archive) SampleDiverseElites(n int) []DiverseElite {
	elites := a.Elites()
	// simple selection sort by descending fitness; archive sizes are
	// small (resolution^2 at most) so this never needs to be fast.
	for i := 0; i < len(elites) && i < n; i++ {
		maxIdx := i
		for j := i + 1; j < len(elites); j++ {
			if elites[j].Fitness > elites[maxIdx].Fitness {
				maxIdx = j
			}
		}
		elites[i], elites[maxIdx] = elites[maxIdx], elites[i]
	}
	if n > len(elites) {
		n = len(elites)
	}
	out := make([]DiverseElite, n)
	for i := 0; i < n; i++ {
		label := "runner-up"
		if i == 0 {
			label = "best"
		}
		out[i] = DiverseElite{Elite: elites[i], Label: label}
	}
	return out
}
