package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/common"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

// ReplaceMatches swaps the stored match set for matches in one transaction.
// On any failure the previous run stays in place.
func (s *SQLiteStorage) ReplaceMatches(ctx context.Context, run *model.Run, matches []model.Match) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run, matches); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.clearMatchesTx(ctx, tx); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (
			id, started_at, completed_at, candidate_count, opportunity_count,
			match_count, excellent_count, good_count, fair_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt, run.CompletedAt, run.CandidateCount, run.OpportunityCount,
		run.MatchCount, run.Excellent, run.Good, run.Fair); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	if err := s.insertMatchesTx(ctx, tx, matches); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit matches: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) insertMatchesTx(ctx context.Context, tx *sql.Tx, matches []model.Match) error {
	if len(matches) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches (
			run_id, position, candidate_id, opportunity_id, score, factors, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, m := range matches {
		factors, err := json.Marshal(m.Factors)
		if err != nil {
			return fmt.Errorf("failed to encode factors: %w", err)
		}

		if _, err := stmt.ExecContext(ctx,
			m.RunID, i, m.CandidateID, m.OpportunityID, m.Score, string(factors), string(m.Status), m.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to save match %d/%d: %w", m.CandidateID, m.OpportunityID, err)
		}
	}

	return nil
}

// GetMatches returns the stored match set in ranked order.
func (s *SQLiteStorage) GetMatches(ctx context.Context) ([]model.Match, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getMatchesTx(ctx, s.db)
}

func (s *SQLiteStorage) getMatchesTx(ctx context.Context, q queryable) ([]model.Match, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT run_id, candidate_id, opportunity_id, score, factors, status, created_at
		FROM matches
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []model.Match
	for rows.Next() {
		var m model.Match
		var factors, status string
		if err := rows.Scan(&m.RunID, &m.CandidateID, &m.OpportunityID, &m.Score, &factors, &status, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}

		m.Status = model.Status(status)
		if err := json.Unmarshal([]byte(factors), &m.Factors); err != nil {
			return nil, fmt.Errorf("failed to decode factors: %w", err)
		}
		matches = append(matches, m)
	}

	return matches, rows.Err()
}

// GetLatestRun returns the run that produced the stored match set.
func (s *SQLiteStorage) GetLatestRun(ctx context.Context) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var run model.Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, completed_at, candidate_count, opportunity_count,
		       match_count, excellent_count, good_count, fair_count
		FROM runs
		ORDER BY completed_at DESC
		LIMIT 1
	`).Scan(
		&run.ID, &run.StartedAt, &run.CompletedAt, &run.CandidateCount, &run.OpportunityCount,
		&run.MatchCount, &run.Excellent, &run.Good, &run.Fair,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("latest run: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	return &run, nil
}

// ClearMatches removes the stored match set and its run.
func (s *SQLiteStorage) ClearMatches(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.clearMatchesTx(ctx, tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) clearMatchesTx(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to clear matches: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("failed to clear runs: %w", err)
	}
	return nil
}
