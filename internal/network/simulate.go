package network

import (
	"context"

	"golang.org/x/exp/rand"

	"github.com/izhinet/izhinet/internal/neuron"
)

// Options configures a complete simulation run.
type Options struct {
	Excitatory int
	Inhibitory int
	DurationMS int

	// Seed initializes the single random source that drives parameter
	// drawing, weight generation, and per-step noise. Identical options
	// produce an identical spike log.
	Seed uint64

	Engine Config
	Matrix MatrixConfig

	// ExcitatoryPreset and InhibitoryPreset, when set, replace the
	// paper's randomized parameter distributions with exact firing-pattern
	// constants for homogeneous populations.
	ExcitatoryPreset neuron.Preset
	InhibitoryPreset neuron.Preset
}

// DefaultOptions returns the reference network: 800 excitatory and 200
// inhibitory neurons for 1000 ms.
func DefaultOptions() Options {
	return Options{
		Excitatory: 800,
		Inhibitory: 200,
		DurationMS: 1000,
		Engine:     DefaultConfig(),
		Matrix:     DefaultMatrixConfig(),
	}
}

// Build constructs a ready-to-step engine from the options: parameters
// first, then weights, then engine state, all drawn from one seeded
// source in that fixed order.
func Build(opts Options) (*Engine, error) {
	rng := rand.New(rand.NewSource(opts.Seed))

	var (
		ps  *neuron.ParameterSet
		err error
	)
	if opts.ExcitatoryPreset != "" || opts.InhibitoryPreset != "" {
		ps, err = neuron.NewHomogeneousParameterSet(opts.Excitatory, opts.Inhibitory, opts.ExcitatoryPreset, opts.InhibitoryPreset)
	} else {
		ps, err = neuron.NewParameterSet(opts.Excitatory, opts.Inhibitory, rng)
	}
	if err != nil {
		return nil, err
	}

	m, err := NewMatrix(ps.Types, opts.Matrix, rng)
	if err != nil {
		return nil, err
	}

	return New(ps, m, opts.Engine, rng)
}

// Simulate runs a full simulation and returns its spike log. This is the
// single entry point external callers need: configuration in, ordered
// (time, neuron) pairs out.
func Simulate(ctx context.Context, opts Options) (SpikeLog, error) {
	eng, err := Build(opts)
	if err != nil {
		return nil, err
	}
	return eng.Run(ctx, opts.DurationMS)
}
