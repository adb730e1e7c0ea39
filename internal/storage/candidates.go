package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

// SaveCandidates inserts or updates candidates by ID.
func (s *SQLiteStorage) SaveCandidates(ctx context.Context, candidates []model.Candidate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCandidates(candidates); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveCandidatesTx(ctx, tx, candidates); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) saveCandidatesTx(ctx context.Context, tx *sql.Tx, candidates []model.Candidate) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO candidates (
			id, name, skills, qualifications, location, sector, category,
			district, past_participation, cgpa, experience, email, phone
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			skills = excluded.skills,
			qualifications = excluded.qualifications,
			location = excluded.location,
			sector = excluded.sector,
			category = excluded.category,
			district = excluded.district,
			past_participation = excluded.past_participation,
			cgpa = excluded.cgpa,
			experience = excluded.experience,
			email = excluded.email,
			phone = excluded.phone
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range candidates {
		skills, err := marshalStrings(c.Skills)
		if err != nil {
			return fmt.Errorf("failed to encode skills for candidate %d: %w", c.ID, err)
		}

		_, err = stmt.ExecContext(ctx,
			c.ID, c.Name, skills, c.Qualifications, c.Location, c.Sector, string(c.Category),
			c.District, c.PastParticipation, c.CGPA, c.Experience, c.Email, c.Phone,
		)
		if err != nil {
			return fmt.Errorf("failed to save candidate %d: %w", c.ID, err)
		}
	}

	return nil
}

// GetCandidates returns every candidate ordered by ID.
func (s *SQLiteStorage) GetCandidates(ctx context.Context) ([]model.Candidate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getCandidatesTx(ctx, s.db)
}

func (s *SQLiteStorage) getCandidatesTx(ctx context.Context, q queryable) ([]model.Candidate, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, skills, qualifications, location, sector, category,
		       district, past_participation, cgpa, experience, email, phone
		FROM candidates
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var candidates []model.Candidate
	for rows.Next() {
		var c model.Candidate
		var skills, category string
		if err := rows.Scan(
			&c.ID, &c.Name, &skills, &c.Qualifications, &c.Location, &c.Sector, &category,
			&c.District, &c.PastParticipation, &c.CGPA, &c.Experience, &c.Email, &c.Phone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}

		c.Category = model.Category(category)
		if c.Skills, err = unmarshalStrings(skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills for candidate %d: %w", c.ID, err)
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalStrings(data string) ([]string, error) {
	var values []string
	if data == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, err
	}
	return values, nil
}
