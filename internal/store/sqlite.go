// Package store persists simulation runs and their spike logs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/izhinet/izhinet/internal/network"
)

// RunMeta describes one stored simulation run.
type RunMeta struct {
	ID         int64     `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Excitatory int       `json:"excitatory"`
	Inhibitory int       `json:"inhibitory"`
	DurationMS int       `json:"duration_ms"`
	Seed       uint64    `json:"seed"`
	SpikeCount int       `json:"spike_count"`
}

// RunStore persists runs and spikes in a SQLite database.
type RunStore struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if needed) the run database at path.
func Open(path string) (*RunStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := initSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &RunStore{db: db}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at  TEXT NOT NULL,
	excitatory  INTEGER NOT NULL,
	inhibitory  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	seed        INTEGER NOT NULL,
	spike_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS spikes (
	run_id  INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	time_ms INTEGER NOT NULL,
	neuron  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_spikes_run_time ON spikes(run_id, time_ms);
`)
	return err
}

// SaveRun inserts a run and its full spike log in one transaction and
// returns the new run ID.
func (s *RunStore) SaveRun(ctx context.Context, meta RunMeta, log network.SpikeLog) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := meta.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (created_at, excitatory, inhibitory, duration_ms, seed, spike_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		createdAt.Format(time.RFC3339Nano),
		meta.Excitatory, meta.Inhibitory, meta.DurationMS,
		int64(meta.Seed), len(log),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO spikes (run_id, time_ms, neuron) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare spike insert: %w", err)
	}
	defer stmt.Close()

	for _, spike := range log {
		if _, err := stmt.ExecContext(ctx, runID, spike.TimeMS, spike.Neuron); err != nil {
			return 0, fmt.Errorf("failed to insert spike at %dms: %w", spike.TimeMS, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// GetRun returns the metadata for a stored run.
func (s *RunStore) GetRun(ctx context.Context, id int64) (*RunMeta, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, excitatory, inhibitory, duration_ms, seed, spike_count
		FROM runs WHERE id = ?`, id)

	meta, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", id, err)
	}
	return meta, nil
}

// LatestRun returns the most recently stored run, or an error if the
// database is empty.
func (s *RunStore) LatestRun(ctx context.Context) (*RunMeta, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, excitatory, inhibitory, duration_ms, seed, spike_count
		FROM runs ORDER BY id DESC LIMIT 1`)

	meta, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no runs stored")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest run: %w", err)
	}
	return meta, nil
}

// ListRuns returns all stored runs, newest first.
func (s *RunStore) ListRuns(ctx context.Context) ([]RunMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, excitatory, inhibitory, duration_ms, seed, spike_count
		FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunMeta
	for rows.Next() {
		meta, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *meta)
	}
	return runs, rows.Err()
}

// LoadSpikes returns the spike log of a stored run in simulation order.
func (s *RunStore) LoadSpikes(ctx context.Context, runID int64) (network.SpikeLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT time_ms, neuron FROM spikes
		WHERE run_id = ? ORDER BY time_ms, neuron`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query spikes for run %d: %w", runID, err)
	}
	defer rows.Close()

	var log network.SpikeLog
	for rows.Next() {
		var spike network.Spike
		if err := rows.Scan(&spike.TimeMS, &spike.Neuron); err != nil {
			return nil, fmt.Errorf("failed to scan spike: %w", err)
		}
		log = append(log, spike)
	}
	return log, rows.Err()
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*RunMeta, error) {
	var (
		meta      RunMeta
		createdAt string
		seed      int64
	)
	if err := row.Scan(&meta.ID, &createdAt, &meta.Excitatory, &meta.Inhibitory, &meta.DurationMS, &seed, &meta.SpikeCount); err != nil {
		return nil, err
	}
	meta.Seed = uint64(seed)

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	meta.CreatedAt = t
	return &meta, nil
}
