// Package network implements the simulation core: the randomly generated
// synaptic weight matrix, the engine that integrates every neuron's
// (v, u) state in fixed one-millisecond steps, and the spike log the run
// produces.
package network

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/izhinet/izhinet/internal/neuron"
)

// MatrixConfig holds tunable parameters for weight generation.
type MatrixConfig struct {
	// ExcitatoryMax is the exclusive upper bound for weights out of
	// excitatory neurons; weights are uniform in [0, ExcitatoryMax).
	ExcitatoryMax float64

	// InhibitoryMax bounds the magnitude of weights out of inhibitory
	// neurons; weights are uniform in (-InhibitoryMax, 0].
	InhibitoryMax float64

	// SelfConnections permits nonzero diagonal entries. The default keeps
	// the diagonal zero.
	SelfConnections bool
}

// DefaultMatrixConfig returns the weight bounds from the model paper:
// excitatory efficacies in [0, 0.5), inhibitory in (-1, 0].
func DefaultMatrixConfig() MatrixConfig {
	return MatrixConfig{
		ExcitatoryMax:   0.5,
		InhibitoryMax:   1.0,
		SelfConnections: false,
	}
}

func (c MatrixConfig) validate() error {
	if c.ExcitatoryMax < 0 {
		return fmt.Errorf("excitatory weight bound must be non-negative, got %v", c.ExcitatoryMax)
	}
	if c.InhibitoryMax < 0 {
		return fmt.Errorf("inhibitory weight bound must be non-negative, got %v", c.InhibitoryMax)
	}
	return nil
}

// Matrix is the fixed synaptic weight matrix. Weight(post, pre) is the
// efficacy delivered onto post when pre fires; its sign is determined
// solely by pre's type and never changes after generation.
type Matrix struct {
	n int
	w []float64 // row-major, w[post*n+pre]
}

// NewMatrix generates weights for the given population from the random
// source. Each column takes its sign and range from the source neuron's
// type.
func NewMatrix(types []neuron.Type, cfg MatrixConfig, rng *rand.Rand) (*Matrix, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	n := len(types)
	if n == 0 {
		return nil, fmt.Errorf("weight matrix requires at least one neuron")
	}

	m := &Matrix{n: n, w: make([]float64, n*n)}
	for post := 0; post < n; post++ {
		row := m.w[post*n : (post+1)*n]
		for pre := 0; pre < n; pre++ {
			if pre == post && !cfg.SelfConnections {
				continue
			}
			if types[pre] == neuron.Excitatory {
				row[pre] = cfg.ExcitatoryMax * rng.Float64()
			} else {
				row[pre] = -cfg.InhibitoryMax * rng.Float64()
			}
		}
	}
	return m, nil
}

// N returns the number of neurons the matrix couples.
func (m *Matrix) N() int { return m.n }

// Weight returns the synaptic efficacy from pre onto post.
func (m *Matrix) Weight(post, pre int) float64 {
	return m.w[post*m.n+pre]
}
