package genome

import (
	"sort"

	"github.com/yaricom/goNEAT/v4/neat/genetics"
	"github.com/yaricom/goNEAT/v4/neat/network"

	"github.com/pthm-cable/grainworld/rng"
)

// MutationRates configures the per-generation complexification operators.
type MutationRates struct {
	WeightMutateProb float32
	WeightPower      float64
	AddNodeProb      float32
	AddLinkProb      float32
	ToggleEnableProb float32
	MaxLinkAttempts  int
}

// DefaultMutationRates matches the values DefaultNEATOptions used for the
// analogous brain-genome mutations.
func DefaultMutationRates() MutationRates {
	return MutationRates{
		WeightMutateProb: 0.8,
		WeightPower:      2.5,
		AddNodeProb:      0.10,
		AddLinkProb:      0.15,
		ToggleEnableProb: 0.01,
		MaxLinkAttempts:  20,
	}
}

// Mutate applies weight perturbation and topological complexification in
// place, returning whether any change occurred.
func (c *CPPN) Mutate(r rng.Source, idGen *IDGenerator, rates MutationRates) bool {
	mutated := false

	if r.CheckProbability(rates.WeightMutateProb) {
		mutateWeights(c.Genome, rates.WeightPower, r)
		mutated = true
	}
	if r.CheckProbability(rates.AddNodeProb) {
		if c.addNode(r, idGen) {
			mutated = true
		}
	}
	if r.CheckProbability(rates.AddLinkProb) {
		if addLink(c.Genome, idGen, r, rates.MaxLinkAttempts) {
			mutated = true
		}
	}
	if r.CheckProbability(rates.ToggleEnableProb) {
		toggleEnable(c.Genome, r)
		mutated = true
	}

	return mutated
}

func mutateWeights(g *genetics.Genome, power float64, r rng.Source) {
	for _, gene := range g.Genes {
		delta := (float64(r.GenF32())*2 - 1) * power
		w := gene.Link.ConnectionWeight + delta
		if w > 8 {
			w = 8
		}
		if w < -8 {
			w = -8
		}
		gene.Link.ConnectionWeight = w
	}
}

// addNode splits a random enabled gene with a new hidden node, disabling
// the original connection and wiring in-to-new (weight 1) and new-to-out
// (old weight).
func (c *CPPN) addNode(r rng.Source, idGen *IDGenerator) bool {
	enabled := make([]*genetics.Gene, 0, len(c.Genome.Genes))
	for _, g := range c.Genome.Genes {
		if g.IsEnabled {
			enabled = append(enabled, g)
		}
	}
	if len(enabled) == 0 {
		return false
	}

	toSplit := enabled[int(r.GenF32()*float32(len(enabled)))%len(enabled)]
	toSplit.IsEnabled = false

	newID := idGen.nextNode()
	newNode := network.NewNNode(newID, network.HiddenNeuron)
	c.NodeAct[newID] = randActivation(r)
	c.Genome.Nodes = append(c.Genome.Nodes, newNode)

	c.Genome.Genes = append(c.Genome.Genes,
		genetics.NewGeneWithTrait(nil, 1.0, toSplit.Link.InNode, newNode, false, idGen.NextInnovation(), 0),
		genetics.NewGeneWithTrait(nil, toSplit.Link.ConnectionWeight, newNode, toSplit.Link.OutNode, false, idGen.NextInnovation(), 0),
	)

	return true
}

func addLink(g *genetics.Genome, idGen *IDGenerator, r rng.Source, maxAttempts int) bool {
	var sources, targets []*network.NNode
	for _, n := range g.Nodes {
		switch n.NeuronType {
		case network.InputNeuron, network.BiasNeuron, network.HiddenNeuron:
			sources = append(sources, n)
		}
		switch n.NeuronType {
		case network.HiddenNeuron, network.OutputNeuron:
			targets = append(targets, n)
		}
	}
	if len(sources) == 0 || len(targets) == 0 {
		return false
	}

	existing := make(map[int64]bool, len(g.Genes))
	for _, gene := range g.Genes {
		existing[connectionKey(gene.Link.InNode.Id, gene.Link.OutNode.Id)] = true
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		src := sources[int(r.GenF32()*float32(len(sources)))%len(sources)]
		dst := targets[int(r.GenF32()*float32(len(targets)))%len(targets)]
		if src.Id == dst.Id {
			continue
		}
		key := connectionKey(src.Id, dst.Id)
		if existing[key] {
			continue
		}
		g.Genes = append(g.Genes, genetics.NewGeneWithTrait(
			nil, randWeight(r), src, dst, false, idGen.NextInnovation(), 0,
		))
		return true
	}
	return false
}

func connectionKey(inID, outID int) int64 {
	return int64(inID)<<32 | int64(outID)
}

func toggleEnable(g *genetics.Genome, r rng.Source) {
	if len(g.Genes) == 0 {
		return
	}
	gene := g.Genes[int(r.GenF32()*float32(len(g.Genes)))%len(g.Genes)]
	gene.IsEnabled = !gene.IsEnabled

	if !gene.IsEnabled {
		outID := gene.Link.OutNode.Id
		hasEnabled := false
		for _, other := range g.Genes {
			if other.Link.OutNode.Id == outID && other.IsEnabled {
				hasEnabled = true
				break
			}
		}
		if !hasEnabled {
			gene.IsEnabled = true
		}
	}
}

// Crossover aligns genes by innovation number, matching-gene inheritance
// from a random parent and disjoint/excess genes from the fitter parent.
func Crossover(a, b *CPPN, fitnessA, fitnessB float64, childID int, r rng.Source) *CPPN {
	primary, secondary := a, b
	if fitnessB > fitnessA {
		primary, secondary = b, a
	}

	secondaryByInnov := make(map[int64]*genetics.Gene, len(secondary.Genome.Genes))
	for _, g := range secondary.Genome.Genes {
		secondaryByInnov[g.InnovationNum] = g
	}

	nodeMap := make(map[int]*network.NNode, len(primary.Genome.Nodes))
	nodeAct := make(map[int]Activation, len(primary.NodeAct))
	for _, n := range primary.Genome.Nodes {
		cn := network.NewNNode(n.Id, n.NeuronType)
		nodeMap[n.Id] = cn
		nodeAct[n.Id] = primary.NodeAct[n.Id]
	}

	genes := make([]*genetics.Gene, 0, len(primary.Genome.Genes))
	for _, pg := range primary.Genome.Genes {
		weight := pg.Link.ConnectionWeight
		enabled := pg.IsEnabled
		if sg, ok := secondaryByInnov[pg.InnovationNum]; ok && r.GenBool() {
			weight = sg.Link.ConnectionWeight
			enabled = sg.IsEnabled || pg.IsEnabled
		}
		ng := genetics.NewGeneWithTrait(
			nil, weight, nodeMap[pg.Link.InNode.Id], nodeMap[pg.Link.OutNode.Id], false, pg.InnovationNum, 0,
		)
		ng.IsEnabled = enabled
		genes = append(genes, ng)
	}

	ids := make([]int, 0, len(nodeMap))
	for id := range nodeMap {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	nodes := make([]*network.NNode, 0, len(nodeMap))
	for _, id := range ids {
		nodes = append(nodes, nodeMap[id])
	}

	return &CPPN{Genome: genetics.NewGenome(childID, nil, nodes, genes), NodeAct: nodeAct}
}
