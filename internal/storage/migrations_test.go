package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigration2_DropsUnattributedMatches(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "v1.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Build a version 1 database by hand.
	tx, err := store.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, migrations[0].Up(tx))
	_, err = tx.Exec("PRAGMA user_version = 1")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	_, err = store.db.ExecContext(ctx, `INSERT INTO candidates (id, name, category) VALUES (1, 'Priya Sharma', 'General')`)
	require.NoError(t, err)
	_, err = store.db.ExecContext(ctx, `INSERT INTO opportunities (id, title) VALUES (1, 'Data Science Intern')`)
	require.NoError(t, err)
	_, err = store.db.ExecContext(ctx, `
		INSERT INTO matches (candidate_id, opportunity_id, score, factors, status, created_at)
		VALUES (1, 1, 72.9, '{}', 'excellent', CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	require.NoError(t, store.Migrate(ctx))

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	counts, err := store.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Candidates)
	assert.Equal(t, 1, counts.Opportunities)
	assert.Zero(t, counts.Matches)
}

func TestMigrate_NilContext(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	//nolint:staticcheck // nil context is the case under test
	assert.ErrorIs(t, store.Migrate(nil), ErrNilContext)
}
