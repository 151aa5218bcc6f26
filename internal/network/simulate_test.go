package network

import (
	"context"
	"reflect"
	"testing"

	"github.com/izhinet/izhinet/internal/neuron"
)

func TestSimulate_Deterministic(t *testing.T) {
	opts := Options{
		Excitatory: 60,
		Inhibitory: 15,
		DurationMS: 200,
		Seed:       42,
		Engine:     DefaultConfig(),
		Matrix:     DefaultMatrixConfig(),
	}

	a, err := Simulate(context.Background(), opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := Simulate(context.Background(), opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical seed produced different logs: %d vs %d spikes", len(a), len(b))
	}
}

func TestSimulate_SeedChangesLog(t *testing.T) {
	base := Options{
		Excitatory: 60,
		Inhibitory: 15,
		DurationMS: 200,
		Engine:     DefaultConfig(),
		Matrix:     DefaultMatrixConfig(),
	}

	withSeed := func(seed uint64) SpikeLog {
		o := base
		o.Seed = seed
		log, err := Simulate(context.Background(), o)
		if err != nil {
			t.Fatalf("Simulate(seed=%d): %v", seed, err)
		}
		return log
	}

	if reflect.DeepEqual(withSeed(1), withSeed(2)) {
		t.Error("different seeds produced identical logs")
	}
}

func TestSimulate_MonotonicTimestamps(t *testing.T) {
	log, err := Simulate(context.Background(), Options{
		Excitatory: 80,
		Inhibitory: 20,
		DurationMS: 300,
		Seed:       7,
		Engine:     DefaultConfig(),
		Matrix:     DefaultMatrixConfig(),
	})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(log) == 0 {
		t.Fatal("expected a driven network to spike")
	}

	n := 100
	for i, s := range log {
		if s.Neuron < 0 || s.Neuron >= n {
			t.Errorf("spike %d: neuron %d out of range [0, %d)", i, s.Neuron, n)
		}
		if s.TimeMS < 0 || s.TimeMS >= 300 {
			t.Errorf("spike %d: time %d out of range [0, 300)", i, s.TimeMS)
		}
		if i > 0 && s.TimeMS < log[i-1].TimeMS {
			t.Errorf("spike %d: time %d precedes previous %d", i, s.TimeMS, log[i-1].TimeMS)
		}
	}
}

func TestSimulate_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero neurons", Options{DurationMS: 10}},
		{"negative counts", Options{Excitatory: -1, Inhibitory: 5, DurationMS: 10}},
		{"zero duration", Options{Excitatory: 10, Inhibitory: 2}},
		{"negative duration", Options{Excitatory: 10, Inhibitory: 2, DurationMS: -100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Simulate(context.Background(), tt.opts); err == nil {
				t.Error("Simulate succeeded, want error")
			}
		})
	}
}

func TestSimulate_HomogeneousPresets(t *testing.T) {
	log, err := Simulate(context.Background(), Options{
		Excitatory:       40,
		Inhibitory:       10,
		DurationMS:       200,
		Seed:             11,
		Engine:           DefaultConfig(),
		Matrix:           DefaultMatrixConfig(),
		ExcitatoryPreset: neuron.RegularSpiking,
		InhibitoryPreset: neuron.FastSpiking,
	})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(log) == 0 {
		t.Error("homogeneous driven network produced no spikes")
	}
}

func TestSimulate_PresetPopulationMismatch(t *testing.T) {
	_, err := Simulate(context.Background(), Options{
		Excitatory:       10,
		Inhibitory:       5,
		DurationMS:       10,
		Engine:           DefaultConfig(),
		Matrix:           DefaultMatrixConfig(),
		ExcitatoryPreset: neuron.FastSpiking,
		InhibitoryPreset: neuron.FastSpiking,
	})
	if err == nil {
		t.Error("Simulate accepted an inhibitory preset for the excitatory population")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Excitatory != 800 || opts.Inhibitory != 200 || opts.DurationMS != 1000 {
		t.Errorf("DefaultOptions = %d/%d/%dms, want 800/200/1000ms", opts.Excitatory, opts.Inhibitory, opts.DurationMS)
	}
}
