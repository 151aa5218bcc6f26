// Package neuron defines the Izhikevich two-variable neuron model: the
// four per-cell constants (a, b, c, d), the excitatory/inhibitory type
// split, and the randomized parameter drawing that produces a
// heterogeneous cortical-like population.
package neuron

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Type distinguishes excitatory from inhibitory neurons. The type fixes
// the sign of a neuron's outgoing synaptic weights and the scale of its
// thalamic background drive.
type Type uint8

const (
	Excitatory Type = iota
	Inhibitory
)

// String returns the lowercase type name.
func (t Type) String() string {
	switch t {
	case Excitatory:
		return "excitatory"
	case Inhibitory:
		return "inhibitory"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// RestingPotential is the membrane potential (mV) every neuron starts at.
// The recovery variable starts at b times this value.
const RestingPotential = -65.0

// Params holds the four Izhikevich model constants for one neuron.
type Params struct {
	// A is the time scale of the recovery variable u.
	A float64
	// B is the sensitivity of u to subthreshold fluctuations of v.
	B float64
	// C is the after-spike reset value of the membrane potential v.
	C float64
	// D is the after-spike increment of the recovery variable u.
	D float64
}

// DrawExcitatory draws parameters for an excitatory neuron. The uniform
// variate r is squared so the population tends toward regular spiking
// (RS) cells rather than chattering (CH) cells.
func DrawExcitatory(rng *rand.Rand) Params {
	r := rng.Float64()
	return Params{
		A: 0.02,
		B: 0.2,
		C: -65 + 15*r*r,
		D: 8 - 6*r*r,
	}
}

// DrawInhibitory draws parameters for an inhibitory neuron, interpolating
// between the fast spiking (FS) and low-threshold spiking (LTS) corners.
func DrawInhibitory(rng *rand.Rand) Params {
	r := rng.Float64()
	return Params{
		A: 0.02 + 0.08*r,
		B: 0.25 - 0.05*r,
		C: -65,
		D: 2,
	}
}

// ParameterSet fixes the type and model constants for every neuron in a
// network. Excitatory neurons occupy indices [0, Ne), inhibitory neurons
// [Ne, Ne+Ni). Parameters never change once drawn.
type ParameterSet struct {
	Types  []Type
	Params []Params
	Ne     int
	Ni     int
}

// NewParameterSet draws a heterogeneous population of ne excitatory and
// ni inhibitory neurons from the given random source.
func NewParameterSet(ne, ni int, rng *rand.Rand) (*ParameterSet, error) {
	if err := validateCounts(ne, ni); err != nil {
		return nil, err
	}

	n := ne + ni
	ps := &ParameterSet{
		Types:  make([]Type, n),
		Params: make([]Params, n),
		Ne:     ne,
		Ni:     ni,
	}
	for i := 0; i < ne; i++ {
		ps.Types[i] = Excitatory
		ps.Params[i] = DrawExcitatory(rng)
	}
	for i := ne; i < n; i++ {
		ps.Types[i] = Inhibitory
		ps.Params[i] = DrawInhibitory(rng)
	}
	return ps, nil
}

// N returns the total number of neurons.
func (ps *ParameterSet) N() int { return ps.Ne + ps.Ni }

func validateCounts(ne, ni int) error {
	if ne < 0 {
		return fmt.Errorf("excitatory count must be non-negative, got %d", ne)
	}
	if ni < 0 {
		return fmt.Errorf("inhibitory count must be non-negative, got %d", ni)
	}
	if ne+ni <= 0 {
		return fmt.Errorf("network must contain at least one neuron, got %d excitatory + %d inhibitory", ne, ni)
	}
	return nil
}
