package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/cli"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/config"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/storage"
)

func migrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the storage schema to the latest version.

Every command migrates on open; this command does it explicitly and with
--status reports the schema version of a SQLite database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, _ := cmd.Flags().GetBool("status")
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if status {
				if a.cfg.Storage.Backend != config.BackendSQLite {
					writeOut(out, "Backend %s has no schema versions.\n", a.cfg.Storage.Backend)
					return nil
				}

				store, err := storage.NewSQLiteStorage(a.cfg.Database.Path)
				if err != nil {
					return fmt.Errorf("failed to open database: %w", err)
				}
				defer func() { _ = store.Close() }()

				version, err := store.SchemaVersion(ctx)
				if err != nil {
					return err
				}
				writeOut(out, "Database:       %s\nSchema version: %d (latest %d)\n",
					store.Path(), version, storage.ExpectedSchemaVersion)
				return nil
			}

			slog.Info("Running migrations", "backend", a.cfg.Storage.Backend)

			_, cleanup, err := openStore(ctx, a.cfg)
			if err != nil {
				return err
			}
			cleanup()

			writeOut(out, "%s\n", cli.FormatSuccess("Migrations completed successfully"))
			return nil
		},
	}

	cmd.Flags().Bool("status", false, "Show the current schema version without migrating")

	return cmd
}
