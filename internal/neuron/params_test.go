package neuron

import (
	"testing"

	"golang.org/x/exp/rand"
)

func TestNewParameterSet_CountsAndOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ps, err := NewParameterSet(800, 200, rng)
	if err != nil {
		t.Fatalf("NewParameterSet: %v", err)
	}

	if ps.N() != 1000 {
		t.Errorf("N() = %d, want 1000", ps.N())
	}
	for i := 0; i < 800; i++ {
		if ps.Types[i] != Excitatory {
			t.Fatalf("neuron %d: type %v, want excitatory", i, ps.Types[i])
		}
	}
	for i := 800; i < 1000; i++ {
		if ps.Types[i] != Inhibitory {
			t.Fatalf("neuron %d: type %v, want inhibitory", i, ps.Types[i])
		}
	}
}

func TestNewParameterSet_ExcitatoryRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	ps, err := NewParameterSet(500, 0, rng)
	if err != nil {
		t.Fatalf("NewParameterSet: %v", err)
	}

	for i, p := range ps.Params {
		if p.A != 0.02 {
			t.Errorf("neuron %d: a = %v, want 0.02", i, p.A)
		}
		if p.B != 0.2 {
			t.Errorf("neuron %d: b = %v, want 0.2", i, p.B)
		}
		if p.C < -65 || p.C >= -50 {
			t.Errorf("neuron %d: c = %v, want in [-65, -50)", i, p.C)
		}
		if p.D <= 2 || p.D > 8 {
			t.Errorf("neuron %d: d = %v, want in (2, 8]", i, p.D)
		}
	}
}

func TestNewParameterSet_InhibitoryRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ps, err := NewParameterSet(1, 500, rng)
	if err != nil {
		t.Fatalf("NewParameterSet: %v", err)
	}

	for i := 1; i < ps.N(); i++ {
		p := ps.Params[i]
		if p.A < 0.02 || p.A >= 0.1 {
			t.Errorf("neuron %d: a = %v, want in [0.02, 0.1)", i, p.A)
		}
		if p.B <= 0.2 || p.B > 0.25 {
			t.Errorf("neuron %d: b = %v, want in (0.2, 0.25]", i, p.B)
		}
		if p.C != -65 {
			t.Errorf("neuron %d: c = %v, want -65", i, p.C)
		}
		if p.D != 2 {
			t.Errorf("neuron %d: d = %v, want 2", i, p.D)
		}
	}
}

func TestNewParameterSet_RejectsDegenerateNetworks(t *testing.T) {
	tests := []struct {
		name   string
		ne, ni int
	}{
		{"both zero", 0, 0},
		{"negative excitatory", -1, 10},
		{"negative inhibitory", 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			if _, err := NewParameterSet(tt.ne, tt.ni, rng); err == nil {
				t.Errorf("NewParameterSet(%d, %d) succeeded, want error", tt.ne, tt.ni)
			}
		})
	}
}

func TestNewParameterSet_Deterministic(t *testing.T) {
	a, err := NewParameterSet(50, 20, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewParameterSet: %v", err)
	}
	b, err := NewParameterSet(50, 20, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewParameterSet: %v", err)
	}

	for i := range a.Params {
		if a.Params[i] != b.Params[i] {
			t.Fatalf("neuron %d: params differ under identical seed: %+v vs %+v", i, a.Params[i], b.Params[i])
		}
	}
}

func TestTypeString(t *testing.T) {
	if got := Excitatory.String(); got != "excitatory" {
		t.Errorf("Excitatory.String() = %q", got)
	}
	if got := Inhibitory.String(); got != "inhibitory" {
		t.Errorf("Inhibitory.String() = %q", got)
	}
}
