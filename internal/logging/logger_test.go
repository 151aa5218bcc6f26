package logging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"info", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"trace", LevelTrace},
		{"Trace", LevelTrace},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", &buf)

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info message missing")
	}
}

func TestNewLogger_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("trace", &buf)

	logger.Log(context.Background(), LevelTrace, "deep detail")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("trace output missing TRACE label: %q", buf.String())
	}
}

func TestNewStepTraceLogger_NilAtInfo(t *testing.T) {
	tl := NewStepTraceLogger(t.TempDir(), "info")
	if tl != nil {
		t.Fatal("expected nil logger at info level")
	}

	// Nil receiver must be safe.
	tl.LogStep(0, []int{1, 2})
	tl.Close()
}

func TestStepTraceLogger_DebugOmitsNeurons(t *testing.T) {
	dir := t.TempDir()
	tl := NewStepTraceLogger(dir, "debug")
	if tl == nil {
		t.Fatal("expected logger at debug level")
	}

	tl.LogStep(7, []int{3, 9, 12})
	tl.Close()

	events := readTrace(t, filepath.Join(dir, "steps.jsonl"))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].TimeMS != 7 || events[0].Fired != 3 {
		t.Errorf("event = %+v, want time_ms=7 fired=3", events[0])
	}
	if events[0].Neurons != nil {
		t.Errorf("debug event carries neuron indices: %v", events[0].Neurons)
	}
}

func TestStepTraceLogger_TraceIncludesNeurons(t *testing.T) {
	dir := t.TempDir()
	tl := NewStepTraceLogger(dir, "trace")
	if tl == nil {
		t.Fatal("expected logger at trace level")
	}

	tl.LogStep(0, []int{5})
	tl.LogStep(1, nil)
	tl.Close()

	events := readTrace(t, filepath.Join(dir, "steps.jsonl"))
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if len(events[0].Neurons) != 1 || events[0].Neurons[0] != 5 {
		t.Errorf("event 0 neurons = %v, want [5]", events[0].Neurons)
	}
	if events[1].Fired != 0 {
		t.Errorf("event 1 fired = %d, want 0", events[1].Fired)
	}
}

func readTrace(t *testing.T, path string) []stepEvent {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open trace: %v", err)
	}
	defer f.Close()

	var events []stepEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev stepEvent
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("parse trace line: %v", err)
		}
		events = append(events, ev)
	}
	return events
}
