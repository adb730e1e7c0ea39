package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS candidates (
					id INTEGER PRIMARY KEY,
					name TEXT NOT NULL,
					skills TEXT NOT NULL DEFAULT '[]',
					qualifications TEXT NOT NULL DEFAULT '',
					location TEXT NOT NULL DEFAULT '',
					sector TEXT NOT NULL DEFAULT '',
					category TEXT NOT NULL,
					district TEXT NOT NULL DEFAULT '',
					past_participation BOOLEAN NOT NULL DEFAULT 0,
					cgpa REAL NOT NULL DEFAULT 0,
					experience TEXT NOT NULL DEFAULT '',
					email TEXT NOT NULL DEFAULT '',
					phone TEXT NOT NULL DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS opportunities (
					id INTEGER PRIMARY KEY,
					company TEXT NOT NULL DEFAULT '',
					title TEXT NOT NULL,
					required_skills TEXT NOT NULL DEFAULT '[]',
					location TEXT NOT NULL DEFAULT '',
					sector TEXT NOT NULL DEFAULT '',
					capacity INTEGER NOT NULL DEFAULT 0,
					preferred_qualification TEXT NOT NULL DEFAULT '',
					stipend INTEGER NOT NULL DEFAULT 0,
					duration TEXT NOT NULL DEFAULT '',
					placement_type TEXT NOT NULL DEFAULT '',
					description TEXT NOT NULL DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS matches (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					candidate_id INTEGER NOT NULL,
					opportunity_id INTEGER NOT NULL,
					score REAL NOT NULL,
					factors TEXT NOT NULL,
					status TEXT NOT NULL,
					created_at DATETIME NOT NULL,
					FOREIGN KEY (candidate_id) REFERENCES candidates(id),
					FOREIGN KEY (opportunity_id) REFERENCES opportunities(id)
				)`,
				`CREATE INDEX idx_matches_candidate ON matches(candidate_id)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Add run history and match ranking",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS runs (
					id TEXT PRIMARY KEY,
					started_at DATETIME NOT NULL,
					completed_at DATETIME NOT NULL,
					candidate_count INTEGER NOT NULL DEFAULT 0,
					opportunity_count INTEGER NOT NULL DEFAULT 0,
					match_count INTEGER NOT NULL DEFAULT 0,
					excellent_count INTEGER NOT NULL DEFAULT 0,
					good_count INTEGER NOT NULL DEFAULT 0,
					fair_count INTEGER NOT NULL DEFAULT 0
				)`,
				// Matches from before run tracking cannot be attributed to a run.
				`DELETE FROM matches`,
				`ALTER TABLE matches ADD COLUMN run_id TEXT NOT NULL DEFAULT ''`,
				`ALTER TABLE matches ADD COLUMN position INTEGER NOT NULL DEFAULT 0`,
				`CREATE INDEX idx_matches_run_position ON matches(run_id, position)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Migrate brings the schema up to ExpectedSchemaVersion.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion returns the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
