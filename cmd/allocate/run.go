package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/cli"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/metrics"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/seed"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"
)

func runCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the matching algorithm",
		Long: `Score every candidate against every opportunity, keep each candidate's
three best opportunities and replace the stored results with the new ranking.

An empty store is seeded with the sample records first unless --no-seed is set.
Interrupting a run leaves the previously stored results untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noSeed, _ := cmd.Flags().GetBool("no-seed")
			noProgress, _ := cmd.Flags().GetBool("no-progress")
			return a.runMatching(cmd, !noSeed, !noProgress)
		},
	}

	cmd.Flags().Bool("no-seed", false, "Do not load sample records into an empty store")
	cmd.Flags().Bool("no-progress", false, "Hide the progress bar")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file after the run")
	_ = a.v.BindPFlag("metrics.textfile", cmd.Flags().Lookup("metrics-file"))

	return cmd
}

func (a *app) runMatching(cmd *cobra.Command, seedEmpty, showProgress bool) error {
	handler := cli.NewInterruptHandler(cmd.OutOrStdout())
	ctx, stop := handler.HandleInterrupts(cmd.Context(), "Matching run")
	defer stop()

	store, cleanup, err := openStore(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return a.match(ctx, cmd, store, seedEmpty, showProgress)
}

// match runs one matching pass on an open store and prints its summary.
func (a *app) match(ctx context.Context, cmd *cobra.Command, store service.Storage, seedEmpty, showProgress bool) error {
	out := cmd.OutOrStdout()

	if seedEmpty {
		seeded, err := seed.IfEmpty(ctx, store)
		if err != nil {
			return err
		}
		if seeded {
			writeOut(out, "%s\n", cli.FormatInfo("Store was empty, loaded sample records"))
		}
	}

	var progress io.Writer
	if showProgress {
		progress = cmd.ErrOrStderr()
	}

	recorder := metrics.NewRecorder()
	run, _, err := newEngine(store, progress, recorder).Run(ctx)
	a.writeMetrics(recorder)
	if err != nil {
		return fmt.Errorf("matching run failed: %w", err)
	}

	writeOut(out, "%s\n", formatRunSummary(run))
	return nil
}

func (a *app) writeMetrics(recorder *metrics.Recorder) {
	path := a.cfg.Metrics.Textfile
	if path == "" {
		return
	}
	if err := recorder.WriteTextfile(path); err != nil {
		slog.Warn("Failed to write metrics", "path", path, "error", err)
	}
}

func formatRunSummary(run *model.Run) string {
	content := fmt.Sprintf(`Candidates:    %d
Opportunities: %d
Matches:       %d

%s Excellent: %d
%s Good:      %d
%s Fair:      %d

Completed in %s`,
		run.CandidateCount,
		run.OpportunityCount,
		run.MatchCount,
		cli.StyleSuccess("●"), run.Excellent,
		cli.StyleInfo("●"), run.Good,
		cli.StyleWarning("●"), run.Fair,
		run.Duration().Round(time.Millisecond))

	return cli.RenderBox("Matching Complete", content)
}
