// Package genome implements the creature CPPN genotype, its morphology
// sampling, and the feedforward motor controller built from it.
package genome

import (
	"sort"

	"github.com/yaricom/goNEAT/v4/neat/genetics"
	"github.com/yaricom/goNEAT/v4/neat/network"

	"github.com/pthm-cable/grainworld/rng"
)

// Fixed node ids for the minimal 3-input/4-output CPPN. Hidden nodes added
// by mutation are numbered from firstHiddenID upward.
const (
	InputX = iota
	InputY
	InputD
	OutRadius
	OutDensity
	OutHasJoint
	OutJointType
	firstHiddenID
)

// IDGenerator hands out unique hidden-node ids and innovation numbers
// shared across a population so crossover can align genes by innovation
// number.
type IDGenerator struct {
	nextNodeID     int
	nextInnovation int64
}

// NewIDGenerator starts node numbering above the fixed input/output ids.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{nextNodeID: firstHiddenID, nextInnovation: 1}
}

func (g *IDGenerator) nextNode() int {
	id := g.nextNodeID
	g.nextNodeID++
	return id
}

// NextInnovation returns the next globally unique innovation number.
func (g *IDGenerator) NextInnovation() int64 {
	n := g.nextInnovation
	g.nextInnovation++
	return n
}

// CPPN is a directed acyclic compositional pattern producing network. The
// genotype is stored in goNEAT's genetics.Genome (nodes + innovation-
// numbered genes) so the usual NEAT crossover/complexification operators
// apply unchanged; NodeAct carries each node's activation function from the
// fixed seven-function set, since that set is closed and doesn't map cleanly
// onto goNEAT's own activation enum.
type CPPN struct {
	Genome  *genetics.Genome
	NodeAct map[int]Activation
}

func randWeight(r rng.Source) float64 {
	return float64(r.GenF32())*2 - 1
}

func randActivation(r rng.Source) Activation {
	idx := int(r.GenF32() * float32(len(allActivations)))
	if idx >= len(allActivations) {
		idx = len(allActivations) - 1
	}
	return allActivations[idx]
}

// NewMinimalCPPN builds the fully connected 3-input/4-output starting
// genome every evolved CPPN complexifies from: all inputs connect to all
// outputs with random initial weights.
func NewMinimalCPPN(id int, idGen *IDGenerator, r rng.Source) *CPPN {
	nodeAct := make(map[int]Activation, 7)

	inputs := []int{InputX, InputY, InputD}
	outputs := []int{OutRadius, OutDensity, OutHasJoint, OutJointType}

	nodes := make([]*network.NNode, 0, len(inputs)+len(outputs))
	for _, id := range inputs {
		nodeAct[id] = Linear
		nodes = append(nodes, network.NewNNode(id, network.InputNeuron))
	}
	for _, id := range outputs {
		nodeAct[id] = randActivation(r)
		nodes = append(nodes, network.NewNNode(id, network.OutputNeuron))
	}

	byID := make(map[int]*network.NNode, len(nodes))
	for _, n := range nodes {
		byID[n.Id] = n
	}

	genes := make([]*genetics.Gene, 0, len(inputs)*len(outputs))
	for _, in := range inputs {
		for _, out := range outputs {
			genes = append(genes, genetics.NewGeneWithTrait(
				nil, randWeight(r), byID[in], byID[out], false, idGen.NextInnovation(), 0,
			))
		}
	}

	return &CPPN{Genome: genetics.NewGenome(id, nil, nodes, genes), NodeAct: nodeAct}
}

// Evaluate runs a topological forward pass over the current topology and
// returns (radius, density, has_joint, joint_type).
func (c *CPPN) Evaluate(x, y, d float64) [4]float64 {
	values := map[int]float64{InputX: x, InputY: y, InputD: d}

	incoming := make(map[int][]*genetics.Gene)
	outEdges := make(map[int][]*genetics.Gene)
	indegree := make(map[int]int, len(c.Genome.Nodes))
	for _, n := range c.Genome.Nodes {
		indegree[n.Id] = 0
	}
	for _, g := range c.Genome.Genes {
		if !g.IsEnabled {
			continue
		}
		in, out := g.Link.InNode.Id, g.Link.OutNode.Id
		incoming[out] = append(incoming[out], g)
		outEdges[in] = append(outEdges[in], g)
		indegree[out]++
	}

	queue := make([]int, 0, len(c.Genome.Nodes))
	for _, n := range c.Genome.Nodes {
		if indegree[n.Id] == 0 {
			queue = append(queue, n.Id)
		}
	}
	sort.Ints(queue)

	isInput := func(id int) bool { return id == InputX || id == InputY || id == InputD }

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if !isInput(id) {
			var sum float64
			for _, g := range incoming[id] {
				sum += values[g.Link.InNode.Id] * g.Link.ConnectionWeight
			}
			values[id] = c.NodeAct[id].Apply(sum)
		}

		for _, g := range outEdges[id] {
			out := g.Link.OutNode.Id
			indegree[out]--
			if indegree[out] == 0 {
				queue = append(queue, out)
			}
		}
	}

	return [4]float64{values[OutRadius], values[OutDensity], values[OutHasJoint], values[OutJointType]}
}

// Clone deep-copies the genome and its activation map under a new id.
func (c *CPPN) Clone(newID int) *CPPN {
	nodeMap := make(map[int]*network.NNode, len(c.Genome.Nodes))
	nodes := make([]*network.NNode, 0, len(c.Genome.Nodes))
	for _, n := range c.Genome.Nodes {
		cn := network.NewNNode(n.Id, n.NeuronType)
		cn.ActivationType = n.ActivationType
		nodeMap[n.Id] = cn
		nodes = append(nodes, cn)
	}

	genes := make([]*genetics.Gene, 0, len(c.Genome.Genes))
	for _, g := range c.Genome.Genes {
		ng := genetics.NewGeneWithTrait(
			nil, g.Link.ConnectionWeight, nodeMap[g.Link.InNode.Id], nodeMap[g.Link.OutNode.Id],
			g.Link.IsRecurrent, g.InnovationNum, g.MutationNum,
		)
		ng.IsEnabled = g.IsEnabled
		genes = append(genes, ng)
	}

	act := make(map[int]Activation, len(c.NodeAct))
	for id, a := range c.NodeAct {
		act[id] = a
	}

	return &CPPN{Genome: genetics.NewGenome(newID, nil, nodes, genes), NodeAct: act}
}
