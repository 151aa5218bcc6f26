// Package simulation provides a scenario-based test harness for
// validating network-level dynamics of the spiking engine.
//
// The harness exercises the real ParameterSet, Matrix, Engine, and
// RunStore — no mocks. Scenarios are Go builders that describe a
// population, a seed, and optional parameter overrides; the Runner
// executes them end to end and captures the spike log for
// property-based assertions.
//
// Each test that persists gets an isolated SQLite database via
// t.TempDir().
//
// Usage:
//
//	func TestMixedNetworkFires(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:       "mixed-network",
//	        Excitatory: 800,
//	        Inhibitory: 200,
//	        DurationMS: 1000,
//	        Seed:       42,
//	    })
//	    simulation.AssertBothPopulationsFire(t, result)
//	}
package simulation
