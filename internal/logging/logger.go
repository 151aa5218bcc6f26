// Package logging provides leveled logging and step tracing for izhinet.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - A StepTraceLogger for structured JSONL per-step traces (steps.jsonl)
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LevelTrace is a custom slog level below Debug for full content logging.
// At this level, step traces include the individual neuron indices that
// fired, not just the count.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Label the custom trace level
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// StepTraceLogger writes one JSONL line per simulation step. It is safe
// for concurrent use. A nil StepTraceLogger is safe to use; all methods
// are no-ops on nil receiver.
type StepTraceLogger struct {
	mu      sync.Mutex
	file    *os.File
	neurons bool // include fired indices, not just the count
}

// NewStepTraceLogger creates a trace logger writing to dir/steps.jsonl.
// At "info" level (the default), returns nil — no file is created.
// At "debug" level, each line carries the step time and fired count; at
// "trace", the fired neuron indices are included as well.
// Returns nil if the file cannot be opened. All methods are nil-safe.
func NewStepTraceLogger(dir string, level string) *StepTraceLogger {
	lvl := ParseLevel(level)
	if lvl == slog.LevelInfo {
		return nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}

	path := filepath.Join(dir, "steps.jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}

	return &StepTraceLogger{file: f, neurons: lvl == LevelTrace}
}

// stepEvent is the JSONL schema for one simulation step.
type stepEvent struct {
	Time    string `json:"time"`
	TimeMS  int    `json:"time_ms"`
	Fired   int    `json:"fired"`
	Neurons []int  `json:"neurons,omitempty"`
}

// LogStep writes a single step trace line. Safe to call on nil receiver.
func (tl *StepTraceLogger) LogStep(timeMS int, fired []int) {
	if tl == nil || tl.file == nil {
		return
	}

	event := stepEvent{
		Time:   time.Now().UTC().Format(time.RFC3339Nano),
		TimeMS: timeMS,
		Fired:  len(fired),
	}
	if tl.neurons {
		event.Neurons = append([]int(nil), fired...)
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = tl.file.Write(data)
}

// Close closes the underlying file. Safe to call on nil receiver.
func (tl *StepTraceLogger) Close() {
	if tl == nil || tl.file == nil {
		return
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()

	tl.file.Close()
	tl.file = nil
}
