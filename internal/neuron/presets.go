package neuron

import (
	"fmt"
	"strings"
)

// Preset names one of the canonical cortical firing patterns from the
// Izhikevich model paper. Unlike the drawn distributions, presets carry
// exact constants, so a homogeneous population built from one behaves
// identically cell to cell.
type Preset string

const (
	RegularSpiking        Preset = "regular-spiking"
	IntrinsicallyBursting Preset = "intrinsically-bursting"
	Chattering            Preset = "chattering"
	FastSpiking           Preset = "fast-spiking"
	LowThresholdSpiking   Preset = "low-threshold-spiking"
)

var presets = map[Preset]struct {
	params Params
	typ    Type
}{
	RegularSpiking:        {Params{A: 0.02, B: 0.2, C: -65, D: 8}, Excitatory},
	IntrinsicallyBursting: {Params{A: 0.02, B: 0.2, C: -55, D: 4}, Excitatory},
	Chattering:            {Params{A: 0.02, B: 0.2, C: -50, D: 2}, Excitatory},
	FastSpiking:           {Params{A: 0.1, B: 0.2, C: -65, D: 2}, Inhibitory},
	LowThresholdSpiking:   {Params{A: 0.1, B: 0.25, C: -55, D: 2}, Inhibitory},
}

// ParsePreset resolves a user-supplied preset name. The full names and
// the paper's abbreviations (rs, ib, ch, fs, lts) are both accepted.
func ParsePreset(s string) (Preset, error) {
	switch strings.ToLower(s) {
	case "rs", string(RegularSpiking):
		return RegularSpiking, nil
	case "ib", string(IntrinsicallyBursting):
		return IntrinsicallyBursting, nil
	case "ch", string(Chattering):
		return Chattering, nil
	case "fs", string(FastSpiking):
		return FastSpiking, nil
	case "lts", string(LowThresholdSpiking):
		return LowThresholdSpiking, nil
	}
	return "", fmt.Errorf("unknown firing-pattern preset %q", s)
}

// Valid reports whether p names a known preset.
func (p Preset) Valid() bool {
	_, ok := presets[p]
	return ok
}

// Params returns the constants for the preset.
func (p Preset) Params() (Params, error) {
	entry, ok := presets[p]
	if !ok {
		return Params{}, fmt.Errorf("unknown firing-pattern preset %q", p)
	}
	return entry.params, nil
}

// NeuronType returns the population a preset belongs to. Excitatory
// patterns are RS, IB, and CH; inhibitory patterns are FS and LTS.
func (p Preset) NeuronType() (Type, error) {
	entry, ok := presets[p]
	if !ok {
		return 0, fmt.Errorf("unknown firing-pattern preset %q", p)
	}
	return entry.typ, nil
}

// NewHomogeneousParameterSet builds a population where every excitatory
// neuron uses excPreset's constants and every inhibitory neuron uses
// inhPreset's. A preset assigned to the wrong population is rejected.
func NewHomogeneousParameterSet(ne, ni int, excPreset, inhPreset Preset) (*ParameterSet, error) {
	if err := validateCounts(ne, ni); err != nil {
		return nil, err
	}

	var excParams, inhParams Params
	if ne > 0 {
		typ, err := excPreset.NeuronType()
		if err != nil {
			return nil, err
		}
		if typ != Excitatory {
			return nil, fmt.Errorf("preset %q is not an excitatory firing pattern", excPreset)
		}
		excParams, _ = excPreset.Params()
	}
	if ni > 0 {
		typ, err := inhPreset.NeuronType()
		if err != nil {
			return nil, err
		}
		if typ != Inhibitory {
			return nil, fmt.Errorf("preset %q is not an inhibitory firing pattern", inhPreset)
		}
		inhParams, _ = inhPreset.Params()
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
		ps.Params[i] = excParams
	}
	for i := ne; i < n; i++ {
		ps.Types[i] = Inhibitory
		ps.Params[i] = inhParams
	}
	return ps, nil
}
