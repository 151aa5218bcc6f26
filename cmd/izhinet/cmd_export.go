package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/izhinet/izhinet/internal/store"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a stored run's spike log",
		Long: `Export writes the spike log of a persisted run as JSONL (one spike
object per line) or as an Arrow IPC file for columnar tooling.

Without --run the most recent run is exported. Without --out, JSONL goes
to stdout; the arrow format always requires --out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			runID, _ := cmd.Flags().GetInt64("run")
			format, _ := cmd.Flags().GetString("format")
			outPath, _ := cmd.Flags().GetString("out")

			if format != "jsonl" && format != "arrow" {
				return fmt.Errorf("unknown format %q (want jsonl or arrow)", format)
			}
			if format == "arrow" && outPath == "" {
				return fmt.Errorf("arrow export requires --out")
			}

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

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer f.Close()
				out = f
			}

			switch format {
			case "jsonl":
				err = store.WriteJSONL(out, log)
			case "arrow":
				err = store.WriteArrow(out, log)
			}
			if err != nil {
				return fmt.Errorf("failed to export run %d: %w", meta.ID, err)
			}

			if outPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported run #%d (%d spikes) to %s\n", meta.ID, len(log), outPath)
			}
			return nil
		},
	}

	cmd.Flags().String("db", "runs.db", "SQLite database to read from")
	cmd.Flags().Int64("run", 0, "Run ID to export (default: latest)")
	cmd.Flags().String("format", "jsonl", "Export format: jsonl or arrow")
	cmd.Flags().String("out", "", "Output file (default: stdout for jsonl)")

	return cmd
}
