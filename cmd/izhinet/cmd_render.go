package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/izhinet/izhinet/internal/raster"
	"github.com/izhinet/izhinet/internal/store"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a stored run as a raster plot",
		Long: `Render reads a persisted run from the database and draws its spike
raster: time on the X axis, neuron index on the Y axis, excitatory
spikes in black and inhibitory spikes in red.

Without --run the most recent run is rendered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			runID, _ := cmd.Flags().GetInt64("run")
			outPath, _ := cmd.Flags().GetString("out")

			st, err := store.Open(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open run store: %w", err)
			}
			defer st.Close()

			meta, err := resolveRun(cmd, st, runID)
			if err != nil {
				return err
			}

			log, err := st.LoadSpikes(cmd.Context(), meta.ID)
			if err != nil {
				return err
			}

			opts := raster.Options{
				Excitatory: meta.Excitatory,
				Neurons:    meta.Excitatory + meta.Inhibitory,
				DurationMS: meta.DurationMS,
			}
			if err := raster.Render(log, opts, outPath); err != nil {
				return fmt.Errorf("failed to render raster: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rendered run #%d (%d spikes) to %s\n", meta.ID, len(log), outPath)
			return nil
		},
	}

	cmd.Flags().String("db", "runs.db", "SQLite database to read from")
	cmd.Flags().Int64("run", 0, "Run ID to render (default: latest)")
	cmd.Flags().String("out", "spikes.png", "Output image path (.png, .svg, .pdf)")

	return cmd
}

// resolveRun returns the metadata for the requested run, or the latest
// run when id is zero.
func resolveRun(cmd *cobra.Command, st *store.RunStore, id int64) (*store.RunMeta, error) {
	if id > 0 {
		return st.GetRun(cmd.Context(), id)
	}
	return st.LatestRun(cmd.Context())
}
