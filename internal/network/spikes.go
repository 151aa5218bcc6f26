package network

// Spike records a single threshold crossing: which neuron fired and at
// which whole-millisecond timestamp.
type Spike struct {
	TimeMS int `json:"time_ms"`
	Neuron int `json:"neuron"`
}

// SpikeLog is the ordered record of every spike in a run. Entries are
// appended in simulation order, so timestamps are non-decreasing; within
// one timestamp, neuron indices are ascending. The log is never mutated
// once the run completes.
type SpikeLog []Spike

// Duration returns the timestamp of the last spike plus one, or zero for
// an empty log.
func (l SpikeLog) Duration() int {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1].TimeMS + 1
}

// SplitCounts returns how many spikes came from the excitatory range
// [0, ne) and how many from the inhibitory range [ne, N).
func (l SpikeLog) SplitCounts(ne int) (exc, inh int) {
	for _, s := range l {
		if s.Neuron < ne {
			exc++
		} else {
			inh++
		}
	}
	return exc, inh
}
