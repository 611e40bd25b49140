package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"voxnote/internal/backfill"
)

// NewBackfillCmd creates the backfill command
func NewBackfillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill",
		Short: "Analyze stored sessions that have a transcript but no analysis",
		Long: `Re-run the analysis pipeline over every stored session that has a
transcript but no analysis yet, e.g. after switching models. Sessions that
fail are skipped and left for a later run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			runner := backfill.NewRunner(st, newAnalyzer())
			analyzed, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Backfilled %d session(s)\n", analyzed)
			return nil
		},
	}
}
