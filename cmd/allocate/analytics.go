package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/report"
)

func analyticsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show distributions of the stored records",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "candidates",
			Short: "Candidates by category, sector interest and location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx := cmd.Context()
				store, cleanup, err := openStore(ctx, a.cfg)
				if err != nil {
					return err
				}
				defer cleanup()

				candidates, err := store.GetCandidates(ctx)
				if err != nil {
					return fmt.Errorf("failed to load candidates: %w", err)
				}

				writeOut(cmd.OutOrStdout(), "%s", report.FormatCandidateAnalytics(report.AnalyzeCandidates(candidates)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "opportunities",
			Short: "Opportunity capacity by sector and location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx := cmd.Context()
				store, cleanup, err := openStore(ctx, a.cfg)
				if err != nil {
					return err
				}
				defer cleanup()

				opportunities, err := store.GetOpportunities(ctx)
				if err != nil {
					return fmt.Errorf("failed to load opportunities: %w", err)
				}

				writeOut(cmd.OutOrStdout(), "%s", report.FormatOpportunityAnalytics(report.AnalyzeOpportunities(opportunities)))
				return nil
			},
		},
	)

	return cmd
}
