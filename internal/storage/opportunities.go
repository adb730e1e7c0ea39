package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

// SaveOpportunities inserts or updates opportunities by ID.
func (s *SQLiteStorage) SaveOpportunities(ctx context.Context, opportunities []model.Opportunity) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOpportunities(opportunities); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveOpportunitiesTx(ctx, tx, opportunities); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) saveOpportunitiesTx(ctx context.Context, tx *sql.Tx, opportunities []model.Opportunity) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO opportunities (
			id, company, title, required_skills, location, sector, capacity,
			preferred_qualification, stipend, duration, placement_type, description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			company = excluded.company,
			title = excluded.title,
			required_skills = excluded.required_skills,
			location = excluded.location,
			sector = excluded.sector,
			capacity = excluded.capacity,
			preferred_qualification = excluded.preferred_qualification,
			stipend = excluded.stipend,
			duration = excluded.duration,
			placement_type = excluded.placement_type,
			description = excluded.description
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, o := range opportunities {
		skills, err := marshalStrings(o.RequiredSkills)
		if err != nil {
			return fmt.Errorf("failed to encode skills for opportunity %d: %w", o.ID, err)
		}

		_, err = stmt.ExecContext(ctx,
			o.ID, o.Company, o.Title, skills, o.Location, o.Sector, o.Capacity,
			o.PreferredQualification, o.Stipend, o.Duration, o.Type, o.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to save opportunity %d: %w", o.ID, err)
		}
	}

	return nil
}

// GetOpportunities returns every opportunity ordered by ID.
func (s *SQLiteStorage) GetOpportunities(ctx context.Context) ([]model.Opportunity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getOpportunitiesTx(ctx, s.db)
}

func (s *SQLiteStorage) getOpportunitiesTx(ctx context.Context, q queryable) ([]model.Opportunity, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, company, title, required_skills, location, sector, capacity,
		       preferred_qualification, stipend, duration, placement_type, description
		FROM opportunities
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query opportunities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var opportunities []model.Opportunity
	for rows.Next() {
		var o model.Opportunity
		var skills string
		if err := rows.Scan(
			&o.ID, &o.Company, &o.Title, &skills, &o.Location, &o.Sector, &o.Capacity,
			&o.PreferredQualification, &o.Stipend, &o.Duration, &o.Type, &o.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}

		if o.RequiredSkills, err = unmarshalStrings(skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills for opportunity %d: %w", o.ID, err)
		}
		opportunities = append(opportunities, o)
	}

	return opportunities, rows.Err()
}
