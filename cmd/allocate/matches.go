package main

import (
	"github.com/spf13/cobra"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/report"
)

func matchesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Show the top ranked matches of the last run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Display.Limit
			}

			ctx := cmd.Context()
			store, cleanup, err := openStore(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			_, rows, err := loadRows(ctx, store)
			if err != nil {
				return err
			}

			writeOut(cmd.OutOrStdout(), "%s", report.FormatTopMatches(rows, limit))
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 10, "Number of matches to show (0 shows all)")

	return cmd
}
