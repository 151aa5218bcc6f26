package simulation

import (
	"testing"
)

// AssertEmpty asserts that the scenario produced no spikes at all.
func AssertEmpty(t *testing.T, result Result) {
	t.Helper()
	if len(result.Log) != 0 {
		t.Errorf("AssertEmpty: scenario %q logged %d spikes, want 0", result.Scenario.Name, len(result.Log))
	}
}

// AssertNonEmpty asserts that the scenario produced at least one spike.
func AssertNonEmpty(t *testing.T, result Result) {
	t.Helper()
	if len(result.Log) == 0 {
		t.Errorf("AssertNonEmpty: scenario %q logged no spikes", result.Scenario.Name)
	}
}

// AssertMonotonicTime asserts that spike timestamps never decrease and
// stay inside the configured duration.
func AssertMonotonicTime(t *testing.T, result Result) {
	t.Helper()
	prev := 0
	for i, s := range result.Log {
		if s.TimeMS < 0 || s.TimeMS >= result.Scenario.DurationMS {
			t.Errorf("AssertMonotonicTime: spike %d at %dms outside [0, %d)", i, s.TimeMS, result.Scenario.DurationMS)
		}
		if s.TimeMS < prev {
			t.Errorf("AssertMonotonicTime: spike %d at %dms precedes previous spike at %dms", i, s.TimeMS, prev)
		}
		prev = s.TimeMS
	}
}

// AssertIndicesInRange asserts that every logged neuron index belongs to
// the scenario's population.
func AssertIndicesInRange(t *testing.T, result Result) {
	t.Helper()
	n := result.N()
	for i, s := range result.Log {
		if s.Neuron < 0 || s.Neuron >= n {
			t.Errorf("AssertIndicesInRange: spike %d names neuron %d outside [0, %d)", i, s.Neuron, n)
		}
	}
}

// AssertBothPopulationsFire asserts that both the excitatory index range
// [0, Ne) and the inhibitory range [Ne, N) appear in the log.
func AssertBothPopulationsFire(t *testing.T, result Result) {
	t.Helper()
	exc, inh := result.Log.SplitCounts(result.Scenario.Excitatory)
	if exc == 0 {
		t.Errorf("AssertBothPopulationsFire: scenario %q: no excitatory spikes", result.Scenario.Name)
	}
	if inh == 0 {
		t.Errorf("AssertBothPopulationsFire: scenario %q: no inhibitory spikes", result.Scenario.Name)
	}
}

// AssertIdenticalLogs asserts two results carry exactly the same spike
// sequence.
func AssertIdenticalLogs(t *testing.T, a, b Result) {
	t.Helper()
	if len(a.Log) != len(b.Log) {
		t.Errorf("AssertIdenticalLogs: %d vs %d spikes", len(a.Log), len(b.Log))
		return
	}
	for i := range a.Log {
		if a.Log[i] != b.Log[i] {
			t.Errorf("AssertIdenticalLogs: spike %d differs: %+v vs %+v", i, a.Log[i], b.Log[i])
			return
		}
	}
}
