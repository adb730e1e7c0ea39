package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/cli"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/report"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/tui"
)

func menuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive main menu",
		Long: `Open the interactive menu to run matching, browse results and analytics
and export to CSV. An empty store is seeded with the sample records.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, cleanup, err := openStore(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			return a.menuLoop(ctx, cmd, store)
		},
	}
}

func (a *app) menuLoop(ctx context.Context, cmd *cobra.Command, store service.Storage) error {
	out := cmd.OutOrStdout()
	prompts := cli.NewPrompts(nil, nil)

	for {
		action, err := tui.SelectAction(ctx, tui.Options{Status: menuStatus(ctx, store)})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if action == tui.ActionExit {
			writeOut(out, "%s\n", cli.FormatInfo("Goodbye!"))
			return nil
		}

		err = a.menuAction(ctx, cmd, store, prompts, action)
		switch {
		case errors.Is(err, cli.ErrAborted):
			writeOut(out, "%s\n", cli.FormatWarning("Canceled"))
		case err != nil:
			writeOut(out, "%s\n", cli.FormatError(userMessage(err)))
		}
	}
}

func (a *app) menuAction(ctx context.Context, cmd *cobra.Command, store service.Storage, prompts *cli.Prompts, action tui.Action) error {
	out := cmd.OutOrStdout()

	switch action {
	case tui.ActionRun:
		return a.match(ctx, cmd, store, true, true)
	case tui.ActionTopMatches:
		limit, err := prompts.Number("Number of matches to show", a.cfg.Display.Limit)
		if err != nil {
			return err
		}
		_, rows, err := loadRows(ctx, store)
		if err != nil {
			return err
		}
		writeOut(out, "%s", report.FormatTopMatches(rows, limit))
	case tui.ActionCandidateAnalytics:
		candidates, err := store.GetCandidates(ctx)
		if err != nil {
			return fmt.Errorf("failed to load candidates: %w", err)
		}
		writeOut(out, "%s", report.FormatCandidateAnalytics(report.AnalyzeCandidates(candidates)))
	case tui.ActionOpportunityAnalytics:
		opportunities, err := store.GetOpportunities(ctx)
		if err != nil {
			return fmt.Errorf("failed to load opportunities: %w", err)
		}
		writeOut(out, "%s", report.FormatOpportunityAnalytics(report.AnalyzeOpportunities(opportunities)))
	case tui.ActionExport:
		path, err := prompts.Text(fmt.Sprintf("Filename (default: %s)", a.cfg.Export.CSVPath), a.cfg.Export.CSVPath)
		if err != nil {
			return err
		}
		return a.export(ctx, cmd, store, path, false)
	}
	return nil
}

// menuStatus describes the stored results for the menu header.
func menuStatus(ctx context.Context, store service.Storage) string {
	counts, err := store.CountRecords(ctx)
	if err != nil {
		return ""
	}
	if counts.Matches == 0 {
		return fmt.Sprintf("%d candidates • %d opportunities • no results yet", counts.Candidates, counts.Opportunities)
	}
	return fmt.Sprintf("%d candidates • %d opportunities • %d matches", counts.Candidates, counts.Opportunities, counts.Matches)
}
