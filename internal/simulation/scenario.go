package simulation

import (
	"github.com/izhinet/izhinet/internal/network"
	"github.com/izhinet/izhinet/internal/neuron"
	"github.com/izhinet/izhinet/internal/store"
)

// Scenario defines a complete simulation experiment.
type Scenario struct {
	Name       string
	Excitatory int
	Inhibitory int
	DurationMS int
	Seed       uint64

	// Engine and Matrix, when non-nil, override the paper defaults.
	// A zero-valued Engine config silences the background drive; a
	// zero-valued Matrix config removes all coupling.
	Engine *network.Config
	Matrix *network.MatrixConfig

	// ExcitatoryPreset and InhibitoryPreset, when set, build homogeneous
	// populations instead of the randomized distributions.
	ExcitatoryPreset neuron.Preset
	InhibitoryPreset neuron.Preset

	// Persist saves the run into an isolated SQLite store and reloads the
	// spike log from it, so Result carries store-backed data.
	Persist bool
}

// options converts the scenario into engine options.
func (s Scenario) options() network.Options {
	opts := network.Options{
		Excitatory:       s.Excitatory,
		Inhibitory:       s.Inhibitory,
		DurationMS:       s.DurationMS,
		Seed:             s.Seed,
		Engine:           network.DefaultConfig(),
		Matrix:           network.DefaultMatrixConfig(),
		ExcitatoryPreset: s.ExcitatoryPreset,
		InhibitoryPreset: s.InhibitoryPreset,
	}
	if s.Engine != nil {
		opts.Engine = *s.Engine
	}
	if s.Matrix != nil {
		opts.Matrix = *s.Matrix
	}
	return opts
}

// Result captures the outcome of a scenario run.
type Result struct {
	Scenario Scenario
	Log      network.SpikeLog

	// RunID and Meta are set when the scenario persisted the run.
	RunID int64
	Meta  *store.RunMeta
}

// N returns the scenario's total neuron count.
func (r Result) N() int {
	return r.Scenario.Excitatory + r.Scenario.Inhibitory
}
