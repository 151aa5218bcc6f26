package network

import "testing"

func TestSpikeLogDuration(t *testing.T) {
	tests := []struct {
		name string
		log  SpikeLog
		want int
	}{
		{"empty", nil, 0},
		{"single spike at zero", SpikeLog{{TimeMS: 0, Neuron: 3}}, 1},
		{"last spike wins", SpikeLog{{TimeMS: 2, Neuron: 0}, {TimeMS: 17, Neuron: 1}}, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.log.Duration(); got != tt.want {
				t.Errorf("Duration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSpikeLogSplitCounts(t *testing.T) {
	log := SpikeLog{
		{TimeMS: 0, Neuron: 0},
		{TimeMS: 0, Neuron: 799},
		{TimeMS: 1, Neuron: 800},
		{TimeMS: 2, Neuron: 999},
		{TimeMS: 2, Neuron: 5},
	}
	exc, inh := log.SplitCounts(800)
	if exc != 3 || inh != 2 {
		t.Errorf("SplitCounts(800) = %d, %d, want 3, 2", exc, inh)
	}
}
