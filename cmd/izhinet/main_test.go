package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/izhinet/izhinet/internal/network"
	"github.com/izhinet/izhinet/internal/store"
)

// newTestRootCmd creates a root command with persistent flags for testing subcommands
func newTestRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "izhinet",
	}
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file path")
	return rootCmd
}

// isolateHome sets HOME to a temp directory to avoid touching real ~/.izhinet/
// MUST be called for any test that loads configuration
func isolateHome(t *testing.T, tmpDir string) {
	t.Helper()
	tmpHome := filepath.Join(tmpDir, "home")
	if err := os.MkdirAll(tmpHome, 0700); err != nil {
		t.Fatalf("Failed to create temp home: %v", err)
	}
	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpHome)
	t.Cleanup(func() {
		os.Setenv("HOME", oldHome)
	})
}

// execute runs a subcommand under a fresh test root and returns its output.
func execute(t *testing.T, sub *cobra.Command, args ...string) (string, error) {
	t.Helper()
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(sub)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// seedRun stores one small run in a fresh database and returns its ID.
func seedRun(t *testing.T, dbPath string) int64 {
	t.Helper()

	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	log := network.SpikeLog{
		{TimeMS: 0, Neuron: 1},
		{TimeMS: 2, Neuron: 8},
		{TimeMS: 5, Neuron: 3},
	}
	meta := store.RunMeta{Excitatory: 8, Inhibitory: 2, DurationMS: 10, Seed: 99}
	id, err := st.SaveRun(context.Background(), meta, log)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	return id
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, newVersionCmd(), "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("output %q missing version %q", out, version)
	}
}

func TestVersionCmd_JSON(t *testing.T) {
	out, err := execute(t, newVersionCmd(), "version", "--json")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got["version"] != version {
		t.Errorf("version = %q, want %q", got["version"], version)
	}
}
