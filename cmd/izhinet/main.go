package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/izhinet/izhinet/internal/config"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "izhinet",
		Short: "Izhikevich spiking neural network simulator",
		Long: `izhinet simulates a network of Izhikevich point-neurons: a mixed
population of excitatory and inhibitory cells with random synaptic
coupling, driven by thalamic background noise.

A run produces an ordered spike log that can be rendered as a raster
plot, persisted to SQLite, and exported as JSONL or Arrow.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for machine consumption)")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default ~/.izhinet/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newRenderCmd(),
		newExportCmd(),
		newRunsCmd(),
		newConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "izhinet version %s\n", version)
			}
		},
	}
}

// loadCmdConfig resolves the effective configuration for a command: the
// --config file when given, otherwise the default locations plus
// environment overrides. The result is validated.
func loadCmdConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
