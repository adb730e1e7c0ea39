package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/cli"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/report"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/sheets"
)

func exportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the last run's matches",
		Long: `Write the ranked matches of the last run to a CSV file and, with --sheets,
to a Google Sheets spreadsheet. Both destinations are written concurrently.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = a.cfg.Export.CSVPath
			}
			toSheets, _ := cmd.Flags().GetBool("sheets")

			ctx := cmd.Context()
			store, cleanup, err := openStore(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			return a.export(ctx, cmd, store, output, toSheets)
		},
	}

	cmd.Flags().StringP("output", "o", "", "CSV file to write (default: export.csv_path)")
	cmd.Flags().Bool("sheets", false, "Also export to Google Sheets")

	return cmd
}

func (a *app) export(ctx context.Context, cmd *cobra.Command, store service.Storage, output string, toSheets bool) error {
	_, rows, err := loadRows(ctx, store)
	if err != nil {
		return err
	}

	reporters := []service.Reporter{report.NewCSVWriter(output)}
	if toSheets {
		writer, err := a.sheetsWriter(ctx)
		if err != nil {
			return err
		}
		reporters = append(reporters, writer)
	}

	if err := report.ExportAll(ctx, rows, reporters...); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	writeOut(out, "%s\n", cli.FormatSuccess(fmt.Sprintf("Exported %d matches to %s", len(rows), output)))
	if toSheets {
		writeOut(out, "%s\n", cli.FormatSuccess("Exported matches to Google Sheets"))
	}
	return nil
}

func (a *app) sheetsWriter(ctx context.Context) (*sheets.Writer, error) {
	cfg, err := a.cfg.SheetsConfig()
	if err != nil {
		return nil, err
	}

	writer, err := sheets.NewWriter(ctx, *cfg, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets writer: %w", err)
	}
	return writer, nil
}
