package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/cli"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/importer"
)

func importCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import records from JSON files",
		Long: `Import candidates or opportunities from a JSON array. Files are checked
against the record schema and validated before anything is written; records
are upserted by ID.`,
	}

	cmd.AddCommand(
		importKindCmd(a, importer.KindCandidates),
		importKindCmd(a, importer.KindOpportunities),
	)

	return cmd
}

func importKindCmd(a *app, kind importer.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind) + " FILE",
		Short: fmt.Sprintf("Import %s from a JSON file", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cleanup, err := openStore(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := importer.ImportFile(ctx, store, kind, args[0])
			if err != nil {
				return err
			}

			writeOut(cmd.OutOrStdout(), "%s\n", cli.FormatSuccess(fmt.Sprintf("Imported %d %s", n, kind)))
			return nil
		},
	}
}
