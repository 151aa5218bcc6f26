package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/izhinet/izhinet/internal/store"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored simulation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")

			st, err := store.Open(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open run store: %w", err)
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context())
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(runs)
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs stored.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tNEURONS\tDURATION\tSEED\tSPIKES")
			for _, r := range runs {
				fmt.Fprintf(w, "%d\t%s\t%d+%d\t%dms\t%d\t%d\n",
					r.ID, r.CreatedAt.Local().Format(time.DateTime),
					r.Excitatory, r.Inhibitory, r.DurationMS, r.Seed, r.SpikeCount)
			}
			return w.Flush()
		},
	}

	cmd.Flags().String("db", "runs.db", "SQLite database to read from")

	return cmd
}
