package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

var _ service.Storage = (*SQLiteStorage)(nil)

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	// Validate input
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Open database
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite doesn't benefit from multiple connections
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Test connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewSQLiteStorageFromDB(db, dbPath), nil
}

// NewSQLiteStorageFromDB wraps an already opened database handle.
func NewSQLiteStorageFromDB(db *sql.DB, dbPath string) *SQLiteStorage {
	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// CountRecords returns how many candidates, opportunities and matches are stored.
func (s *SQLiteStorage) CountRecords(ctx context.Context) (service.RecordCounts, error) {
	var counts service.RecordCounts
	if err := validateContext(ctx); err != nil {
		return counts, err
	}

	tables := []struct {
		dest  *int
		table string
	}{
		{&counts.Candidates, "candidates"},
		{&counts.Opportunities, "opportunities"},
		{&counts.Matches, "matches"},
	}

	for _, t := range tables {
		// Table names come from the fixed list above.
		query := "SELECT COUNT(*) FROM " + t.table // #nosec G202
		if err := s.db.QueryRowContext(ctx, query).Scan(t.dest); err != nil {
			return counts, fmt.Errorf("failed to count %s: %w", t.table, err)
		}
	}

	return counts, nil
}

// queryable is satisfied by both *sql.DB and *sql.Tx.
type queryable interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
