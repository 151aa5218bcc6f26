package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/izhinet/izhinet/internal/network"
)

func TestExportCmd_JSONLToStdout(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "runs.db")
	seedRun(t, dbPath)

	out, err := execute(t, newExportCmd(), "export", "--db", dbPath)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	for i, line := range lines {
		var spike network.Spike
		if err := json.Unmarshal([]byte(line), &spike); err != nil {
			t.Errorf("line %d is not a spike: %v", i, err)
		}
	}
}

func TestExportCmd_ArrowToFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "runs.db")
	seedRun(t, dbPath)
	outPath := filepath.Join(tmpDir, "spikes.arrow")

	out, err := execute(t, newExportCmd(), "export",
		"--db", dbPath, "--format", "arrow", "--out", outPath)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "Exported run #1") {
		t.Errorf("unexpected output: %q", out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	r, err := ipc.NewFileReader(bytes.NewReader(data), ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		t.Fatalf("output is not an Arrow IPC file: %v", err)
	}
	defer r.Close()

	rows := 0
	for i := 0; i < r.NumRecords(); i++ {
		rec, err := r.Record(i)
		if err != nil {
			t.Fatalf("Record(%d): %v", i, err)
		}
		rows += int(rec.NumRows())
	}
	if rows != 3 {
		t.Errorf("got %d rows, want 3", rows)
	}
}

func TestExportCmd_ArrowRequiresOut(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "runs.db")
	seedRun(t, dbPath)

	_, err := execute(t, newExportCmd(), "export", "--db", dbPath, "--format", "arrow")
	if err == nil {
		t.Error("arrow export to stdout was accepted")
	}
}

func TestExportCmd_UnknownFormat(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "runs.db")
	seedRun(t, dbPath)

	_, err := execute(t, newExportCmd(), "export", "--db", dbPath, "--format", "csv")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("err = %v, want unknown format error", err)
	}
}
