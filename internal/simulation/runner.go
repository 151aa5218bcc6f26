package simulation

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/izhinet/izhinet/internal/network"
	"github.com/izhinet/izhinet/internal/store"
)

// Runner executes simulation scenarios against the real engine and, when
// asked, a real SQLite run store.
type Runner struct {
	t     *testing.T
	store *store.RunStore
}

// NewRunner creates a simulation runner with an isolated SQLite store
// under t.TempDir().
func NewRunner(t *testing.T) *Runner {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("NewRunner: failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return &Runner{t: t, store: s}
}

// Store exposes the runner's isolated store for direct inspection.
func (r *Runner) Store() *store.RunStore { return r.store }

// Run executes the scenario and returns the collected result.
func (r *Runner) Run(scenario Scenario) Result {
	r.t.Helper()
	ctx := context.Background()

	log, err := network.Simulate(ctx, scenario.options())
	if err != nil {
		r.t.Fatalf("scenario %q: Simulate: %v", scenario.Name, err)
	}

	result := Result{Scenario: scenario, Log: log}
	if !scenario.Persist {
		return result
	}

	runID, err := r.store.SaveRun(ctx, store.RunMeta{
		Excitatory: scenario.Excitatory,
		Inhibitory: scenario.Inhibitory,
		DurationMS: scenario.DurationMS,
		Seed:       scenario.Seed,
	}, log)
	if err != nil {
		r.t.Fatalf("scenario %q: SaveRun: %v", scenario.Name, err)
	}

	meta, err := r.store.GetRun(ctx, runID)
	if err != nil {
		r.t.Fatalf("scenario %q: GetRun: %v", scenario.Name, err)
	}
	stored, err := r.store.LoadSpikes(ctx, runID)
	if err != nil {
		r.t.Fatalf("scenario %q: LoadSpikes: %v", scenario.Name, err)
	}

	result.RunID = runID
	result.Meta = meta
	result.Log = stored
	return result
}
