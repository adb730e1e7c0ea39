package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/cli"
)

func resetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored matching results",
		Long: `Reset removes the stored match set and run summary. Candidates and
opportunities are kept; run 'allocate run' to produce new results.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")

			ctx := cmd.Context()
			store, cleanup, err := openStore(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			counts, err := store.CountRecords(ctx)
			if err != nil {
				return fmt.Errorf("failed to count records: %w", err)
			}

			out := cmd.OutOrStdout()
			if counts.Matches == 0 {
				writeOut(out, "No matches found. Nothing to reset.\n")
				return nil
			}

			if !force {
				prompts := cli.NewPrompts(nil, nil)
				ok, err := prompts.Confirm(fmt.Sprintf("Delete %d stored matches", counts.Matches))
				if errors.Is(err, cli.ErrAborted) {
					ok, err = false, nil
				}
				if err != nil {
					return err
				}
				if !ok {
					writeOut(out, "Reset canceled.\n")
					return nil
				}
			}

			if err := store.ClearMatches(ctx); err != nil {
				return fmt.Errorf("failed to clear matches: %w", err)
			}

			writeOut(out, "%s\n", cli.FormatSuccess(fmt.Sprintf("Deleted %d matches", counts.Matches)))
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	return cmd
}
