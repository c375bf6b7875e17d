package genome

import (
	"encoding/binary"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/grainworld/rng"
)

// Controller is the deterministic feedforward motor network that drives
// a creature's actions: one or two hidden layers, tanh activation at
// every hidden and output layer, row-major weight matrices.
type Controller struct {
	Layers  []int
	Weights [][][]float64
	Biases  [][]float64
}

// RequiredWeightCount returns how many flat weight+bias values a controller
// with the given layer sizes needs.
func RequiredWeightCount(layers []int) int {
	n := 0
	for l := 0; l < len(layers)-1; l++ {
		n += layers[l]*layers[l+1] + layers[l+1]
	}
	return n
}

// NewController reshapes flat into the row-major weight/bias matrices for
// layers. If flat is shorter than RequiredWeightCount(layers), the
// remainder is filled deterministically from a seed hashed out of flat's
// bytes, so identical genomes always produce identical controllers.
func NewController(layers []int, flat []float64) *Controller {
	need := RequiredWeightCount(layers)
	values := make([]float64, need)
	n := copy(values, flat)
	if n < need {
		fillDeterministic(values[n:], hashWeights(flat))
	}

	c := &Controller{
		Layers:  append([]int(nil), layers...),
		Weights: make([][][]float64, len(layers)-1),
		Biases:  make([][]float64, len(layers)-1),
	}

	cursor := 0
	for l := 0; l < len(layers)-1; l++ {
		fanIn, fanOut := layers[l], layers[l+1]
		c.Weights[l] = make([][]float64, fanOut)
		for j := 0; j < fanOut; j++ {
			c.Weights[l][j] = append([]float64(nil), values[cursor:cursor+fanIn]...)
			cursor += fanIn
		}
		c.Biases[l] = append([]float64(nil), values[cursor:cursor+fanOut]...)
		cursor += fanOut
	}

	return c
}

// hashWeights derives a seed from the genome's weight bytes (FNV-1a over
// each float64's bit pattern) so a short weight vector still reshapes into
// an identical controller every time.
func hashWeights(flat []float64) uint64 {
	var seed uint64 = 14695981039346656037
	buf := make([]byte, 8)
	for _, v := range flat {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
		for _, b := range buf {
			seed ^= uint64(b)
			seed *= 1099511628211
		}
	}
	return seed
}

func fillDeterministic(dst []float64, seed uint64) {
	src := rng.NewSplitmix64(seed)
	for i := range dst {
		dst[i] = float64(src.GenF32())*2 - 1
	}
}

// Forward runs the row-major matrix-vector forward pass with tanh
// activation at every hidden and output layer, using gonum's
// mat.Dense/mat.VecDense for the per-layer matrix-vector multiply instead
// of hand-rolled nested loops.
func (c *Controller) Forward(inputs []float64) []float64 {
	current := inputs
	for l := range c.Weights {
		fanOut := c.Layers[l+1]
		fanIn := len(c.Weights[l][0])

		in := make([]float64, fanIn)
		copy(in, current) // short/long mismatches zero-pad or truncate, as before

		flat := make([]float64, 0, fanOut*fanIn)
		for j := 0; j < fanOut; j++ {
			flat = append(flat, c.Weights[l][j]...)
		}
		w := mat.NewDense(fanOut, fanIn, flat)
		x := mat.NewVecDense(fanIn, in)
		sum := mat.NewVecDense(fanOut, nil)
		sum.MulVec(w, x)

		next := make([]float64, fanOut)
		for j := 0; j < fanOut; j++ {
			next[j] = math.Tanh(sum.AtVec(j) + c.Biases[l][j])
		}
		current = next
	}
	return current
}
