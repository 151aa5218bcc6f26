package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/izhinet/izhinet/internal/logging"
	"github.com/izhinet/izhinet/internal/network"
	"github.com/izhinet/izhinet/internal/neuron"
	"github.com/izhinet/izhinet/internal/raster"
	"github.com/izhinet/izhinet/internal/store"
)

// progressIntervalMS is how often the run command reports simulated time.
const progressIntervalMS = 100

type runResult struct {
	Excitatory int    `json:"excitatory"`
	Inhibitory int    `json:"inhibitory"`
	DurationMS int    `json:"duration_ms"`
	Seed       uint64 `json:"seed"`
	Spikes     int    `json:"spikes"`
	ExcSpikes  int    `json:"excitatory_spikes"`
	InhSpikes  int    `json:"inhibitory_spikes"`
	Raster     string `json:"raster,omitempty"`
	RunID      int64  `json:"run_id,omitempty"`
	ElapsedMS  int64  `json:"elapsed_ms"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a network simulation",
		Long: `Run simulates a randomly coupled Izhikevich network for the configured
duration and reports the resulting spike counts.

By default the network follows the reference setup: 800 excitatory
neurons with heterogeneous regular-spiking parameters and 200 inhibitory
neurons with heterogeneous fast-spiking parameters. The presets flags
replace the randomized parameter draws with exact firing-pattern
constants (rs, ib, ch, fs, lts) for homogeneous populations.

A fixed seed reproduces a run exactly; when no seed is given one is
taken from the clock and logged so the run can be replayed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCmdConfig(cmd)
			if err != nil {
				return err
			}

			// Flags override the config file.
			if cmd.Flags().Changed("excitatory") {
				cfg.Network.Excitatory, _ = cmd.Flags().GetInt("excitatory")
			}
			if cmd.Flags().Changed("inhibitory") {
				cfg.Network.Inhibitory, _ = cmd.Flags().GetInt("inhibitory")
			}
			if cmd.Flags().Changed("duration") {
				cfg.Network.DurationMS, _ = cmd.Flags().GetInt("duration")
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			seed, _ := cmd.Flags().GetUint64("seed")
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}

			excName, _ := cmd.Flags().GetString("excitatory-preset")
			inhName, _ := cmd.Flags().GetString("inhibitory-preset")
			if (excName == "") != (inhName == "") && cfg.Network.Excitatory > 0 && cfg.Network.Inhibitory > 0 {
				return fmt.Errorf("presets must be given for both populations (or neither)")
			}
			var excPreset, inhPreset neuron.Preset
			if excName != "" {
				if excPreset, err = neuron.ParsePreset(excName); err != nil {
					return err
				}
			}
			if inhName != "" {
				if inhPreset, err = neuron.ParsePreset(inhName); err != nil {
					return err
				}
			}

			outPath, _ := cmd.Flags().GetString("out")
			dbPath, _ := cmd.Flags().GetString("db")
			traceDir, _ := cmd.Flags().GetString("trace-dir")

			logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)

			opts := network.Options{
				Excitatory: cfg.Network.Excitatory,
				Inhibitory: cfg.Network.Inhibitory,
				DurationMS: cfg.Network.DurationMS,
				Seed:       seed,
				Engine: network.Config{
					ExcitatoryNoise: cfg.Noise.ExcitatoryScale,
					InhibitoryNoise: cfg.Noise.InhibitoryScale,
				},
				Matrix: network.MatrixConfig{
					ExcitatoryMax:   cfg.Weights.ExcitatoryMax,
					InhibitoryMax:   cfg.Weights.InhibitoryMax,
					SelfConnections: cfg.Weights.SelfConnections,
				},
				ExcitatoryPreset: excPreset,
				InhibitoryPreset: inhPreset,
			}

			eng, err := network.Build(opts)
			if err != nil {
				return fmt.Errorf("failed to build network: %w", err)
			}

			trace := logging.NewStepTraceLogger(traceDir, cfg.Logging.Level)
			defer trace.Close()

			logger.Info("starting simulation",
				"excitatory", opts.Excitatory,
				"inhibitory", opts.Inhibitory,
				"duration_ms", opts.DurationMS,
				"seed", seed,
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			start := time.Now()
			interrupted := false
			for t := 0; t < opts.DurationMS; t++ {
				if ctx.Err() != nil {
					logger.Warn("interrupted", "time_ms", t)
					interrupted = true
					break
				}
				fired := eng.Step()
				trace.LogStep(t, fired)
				if t > 0 && t%progressIntervalMS == 0 {
					logger.Info("simulated", "time_ms", t, "spikes", len(eng.Log()))
				}
			}
			elapsed := time.Since(start)

			log := eng.Log()
			exc, inh := log.SplitCounts(opts.Excitatory)
			logger.Info("simulation complete",
				"time_ms", eng.Time(),
				"spikes", len(log),
				"elapsed", elapsed.Round(time.Millisecond).String(),
			)

			result := runResult{
				Excitatory: opts.Excitatory,
				Inhibitory: opts.Inhibitory,
				DurationMS: eng.Time(),
				Seed:       seed,
				Spikes:     len(log),
				ExcSpikes:  exc,
				InhSpikes:  inh,
				ElapsedMS:  elapsed.Milliseconds(),
			}

			if dbPath != "" {
				st, err := store.Open(dbPath)
				if err != nil {
					return fmt.Errorf("failed to open run store: %w", err)
				}
				defer st.Close()

				meta := store.RunMeta{
					Excitatory: opts.Excitatory,
					Inhibitory: opts.Inhibitory,
					DurationMS: eng.Time(),
					Seed:       seed,
				}
				runID, err := st.SaveRun(ctx, meta, log)
				if err != nil {
					return fmt.Errorf("failed to save run: %w", err)
				}
				result.RunID = runID
				logger.Info("run saved", "run_id", runID, "db", dbPath)
			}

			if outPath != "" {
				rOpts := raster.Options{
					Excitatory: opts.Excitatory,
					Neurons:    opts.Excitatory + opts.Inhibitory,
					DurationMS: opts.DurationMS,
				}
				if err := raster.Render(log, rOpts, outPath); err != nil {
					return fmt.Errorf("failed to render raster: %w", err)
				}
				result.Raster = outPath
				logger.Info("raster written", "path", outPath)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Simulated %d neurons for %d ms: %d spikes (%d excitatory, %d inhibitory)\n",
					result.Excitatory+result.Inhibitory, result.DurationMS, result.Spikes, result.ExcSpikes, result.InhSpikes)
				if result.Raster != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Raster written to %s\n", result.Raster)
				}
				if result.RunID != 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Run saved as #%d in %s\n", result.RunID, dbPath)
				}
			}

			if interrupted {
				return context.Canceled
			}
			return nil
		},
	}

	cmd.Flags().Int("excitatory", 0, "Number of excitatory neurons (overrides config)")
	cmd.Flags().Int("inhibitory", 0, "Number of inhibitory neurons (overrides config)")
	cmd.Flags().Int("duration", 0, "Simulation duration in ms (overrides config)")
	cmd.Flags().Uint64("seed", 0, "Random seed (default: time-based)")
	cmd.Flags().String("excitatory-preset", "", "Homogeneous excitatory preset (rs, ib, ch)")
	cmd.Flags().String("inhibitory-preset", "", "Homogeneous inhibitory preset (fs, lts)")
	cmd.Flags().String("out", "", "Raster plot output path (e.g. spikes.png)")
	cmd.Flags().String("db", "", "SQLite database to persist the run to")
	cmd.Flags().String("trace-dir", ".izhinet", "Directory for per-step trace output (debug/trace levels)")

	return cmd
}
