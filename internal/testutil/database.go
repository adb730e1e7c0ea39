// Package testutil provides test utilities for the allocation engine.
// It offers fluent record builders and migrated, isolated test databases.
package testutil

import (
	"context"
	"testing"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage       service.Storage
	t             *testing.T
	Candidates    []model.Candidate
	Opportunities []model.Opportunity
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup   func(context.Context, service.Storage) error
	Candidates    []model.Candidate
	Opportunities []model.Opportunity
}

// SetupTestDB creates a new in-memory SQLite test database seeded with the
// given records. It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.TestDBOptions{
//		Candidates: []model.Candidate{
//			testutil.NewCandidate(1).WithSkills("Python").Build(),
//		},
//	})
func SetupTestDB(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	// Create in-memory SQLite storage
	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	// Run migrations
	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(opts.Candidates) > 0 {
		if err := store.SaveCandidates(ctx, opts.Candidates); err != nil {
			t.Fatalf("failed to seed candidates: %v", err)
		}
	}

	if len(opts.Opportunities) > 0 {
		if err := store.SaveOpportunities(ctx, opts.Opportunities); err != nil {
			t.Fatalf("failed to seed opportunities: %v", err)
		}
	}

	// Run custom setup
	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage:       store,
		Candidates:    opts.Candidates,
		Opportunities: opts.Opportunities,
		t:             t,
	}
}

// MustMatches returns the stored match set or fails the test.
func (db *TestDB) MustMatches() []model.Match {
	db.t.Helper()
	matches, err := db.Storage.GetMatches(context.Background())
	if err != nil {
		db.t.Fatalf("failed to load matches: %v", err)
	}
	return matches
}
