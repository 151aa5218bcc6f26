package network

import (
	"context"
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/izhinet/izhinet/internal/neuron"
)

// SpikeThreshold is the membrane potential (mV) at which a neuron is
// considered to have fired. Reported potentials are clamped here; the
// actual reset uses the neuron's c constant.
const SpikeThreshold = 30.0

// Config holds tunable parameters for the simulation engine.
type Config struct {
	// ExcitatoryNoise scales the N(0,1) thalamic background drive onto
	// excitatory neurons. Default: 5.
	ExcitatoryNoise float64

	// InhibitoryNoise scales the drive onto inhibitory neurons. Default: 2.
	InhibitoryNoise float64
}

// DefaultConfig returns the noise amplitudes from the model paper.
func DefaultConfig() Config {
	return Config{
		ExcitatoryNoise: 5.0,
		InhibitoryNoise: 2.0,
	}
}

func (c Config) validate() error {
	if c.ExcitatoryNoise < 0 {
		return fmt.Errorf("excitatory noise scale must be non-negative, got %v", c.ExcitatoryNoise)
	}
	if c.InhibitoryNoise < 0 {
		return fmt.Errorf("inhibitory noise scale must be non-negative, got %v", c.InhibitoryNoise)
	}
	return nil
}

// Engine advances the whole network in lock-step, one millisecond at a
// time. It exclusively owns the per-neuron state arrays and the weight
// matrix for its entire lifetime; Step is its only mutating operation.
//
// Synaptic coupling is delayed by exactly one step: the input current at
// step t sums weights from neurons whose spike was finalized at step t-1.
// Two fired buffers swapped at the end of each step keep that
// read-after-write ordering explicit.
type Engine struct {
	params  *neuron.ParameterSet
	weights *Matrix
	cfg     Config
	noise   distuv.Normal

	v     []float64
	u     []float64
	input []float64

	firedLast []int // spike indices finalized in the previous step
	firedThis []int

	step int
	log  SpikeLog

	probe      int // neuron whose potential is traced, -1 when disabled
	probeTrace []float64
}

// New creates an engine over the given population and weight matrix. The
// random source drives the per-step thalamic noise; passing the same
// source used for generation keeps a whole run reproducible from one
// seed.
func New(ps *neuron.ParameterSet, m *Matrix, cfg Config, src rand.Source) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	n := ps.N()
	if m.N() != n {
		return nil, fmt.Errorf("weight matrix is %dx%d but population has %d neurons", m.N(), m.N(), n)
	}

	e := &Engine{
		params:  ps,
		weights: m,
		cfg:     cfg,
		noise:   distuv.Normal{Mu: 0, Sigma: 1, Src: src},
		v:       make([]float64, n),
		u:       make([]float64, n),
		input:   make([]float64, n),
		probe:   -1,
	}
	for i := 0; i < n; i++ {
		e.v[i] = neuron.RestingPotential
		e.u[i] = ps.Params[i].B * neuron.RestingPotential
	}
	return e, nil
}

// Step advances the network by one millisecond and returns the indices
// of neurons that spiked during it, in ascending order. The returned
// slice is valid until the next call to Step.
func (e *Engine) Step() []int {
	e.accumulateInput()
	e.integrate()
	fired := e.detectAndReset()

	e.firedLast, e.firedThis = fired, e.firedLast[:0]
	e.step++
	return e.firedLast
}

// accumulateInput fills e.input with this step's current: thalamic noise
// scaled by type plus the summed efficacies of every neuron that fired
// in the previous step.
func (e *Engine) accumulateInput() {
	n := e.params.N()
	for i := 0; i < n; i++ {
		scale := e.cfg.ExcitatoryNoise
		if e.params.Types[i] == neuron.Inhibitory {
			scale = e.cfg.InhibitoryNoise
		}
		e.input[i] = scale * e.noise.Rand()
	}
	if len(e.firedLast) == 0 {
		return
	}
	for i := 0; i < n; i++ {
		row := e.weights.w[i*n : (i+1)*n]
		sum := 0.0
		for _, j := range e.firedLast {
			sum += row[j]
		}
		e.input[i] += sum
	}
}

// integrate applies one millisecond of the Izhikevich update: two
// half-millisecond Euler sub-steps for v (the second recomputed with the
// updated v, which keeps the quadratic term stable), then the recovery
// update for u. The input current is held fixed across the millisecond.
func (e *Engine) integrate() {
	for i := range e.v {
		v, u, in := e.v[i], e.u[i], e.input[i]
		v += 0.5 * (0.04*v*v + 5*v + 140 - u + in)
		v += 0.5 * (0.04*v*v + 5*v + 140 - u + in)
		p := e.params.Params[i]
		u += p.A * (p.B*v - u)
		e.v[i] = v
		e.u[i] = u
	}
}

// detectAndReset logs every neuron at or above threshold as spiking at
// the current timestamp, then resets it: v becomes c exactly and u is
// incremented by d exactly.
func (e *Engine) detectAndReset() []int {
	fired := e.firedThis[:0]
	for i := range e.v {
		if e.v[i] < SpikeThreshold {
			continue
		}
		fired = append(fired, i)
		e.log = append(e.log, Spike{TimeMS: e.step, Neuron: i})
		p := e.params.Params[i]
		e.v[i] = p.C
		e.u[i] += p.D
	}
	if e.probe >= 0 {
		e.recordProbe(fired)
	}
	return fired
}

// recordProbe appends the probed neuron's potential for this step. A
// spiking sample is clamped to the threshold value rather than showing
// the post-reset c, matching how rasters report action potentials.
func (e *Engine) recordProbe(fired []int) {
	sample := e.v[e.probe]
	for _, i := range fired {
		if i == e.probe {
			sample = SpikeThreshold
			break
		}
	}
	e.probeTrace = append(e.probeTrace, sample)
}

// Run advances the engine for durationMS whole milliseconds. The context
// is checked once per millisecond; cancellation returns the log produced
// so far along with the context error. There is no other early exit.
func (e *Engine) Run(ctx context.Context, durationMS int) (SpikeLog, error) {
	if durationMS <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d ms", durationMS)
	}
	for t := 0; t < durationMS; t++ {
		if err := ctx.Err(); err != nil {
			return e.log, err
		}
		e.Step()
	}
	return e.log, nil
}

// Log returns the spikes recorded so far. The returned slice aliases the
// engine's log; callers must not mutate it.
func (e *Engine) Log() SpikeLog { return e.log }

// Time returns the number of whole milliseconds simulated so far.
func (e *Engine) Time() int { return e.step }

// SetProbe enables per-step potential recording for neuron i. Used to
// inspect a single cell's firing pattern.
func (e *Engine) SetProbe(i int) error {
	if i < 0 || i >= e.params.N() {
		return fmt.Errorf("probe index %d out of range [0, %d)", i, e.params.N())
	}
	e.probe = i
	return nil
}

// ProbeTrace returns the recorded potentials, one sample per step.
func (e *Engine) ProbeTrace() []float64 { return e.probeTrace }
