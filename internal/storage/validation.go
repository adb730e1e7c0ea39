// Package storage provides the data persistence layer for the allocation engine.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidCandidate   = errors.New("invalid candidate")
	ErrInvalidOpportunity = errors.New("invalid opportunity")
	ErrInvalidRun         = errors.New("invalid run")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCandidates checks record identity only. Range checks happen
// before a run so that every bad record is reported together.
func validateCandidates(candidates []model.Candidate) error {
	if candidates == nil {
		return fmt.Errorf("%w: candidates", ErrNilParameter)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w: candidates", ErrEmptySlice)
	}

	for i := range candidates {
		if candidates[i].ID <= 0 {
			return fmt.Errorf("%w: candidate at index %d has no ID", ErrInvalidCandidate, i)
		}
		if strings.TrimSpace(candidates[i].Name) == "" {
			return fmt.Errorf("%w: candidate %d has no name", ErrInvalidCandidate, candidates[i].ID)
		}
	}
	return nil
}

// validateOpportunities checks record identity only.
func validateOpportunities(opportunities []model.Opportunity) error {
	if opportunities == nil {
		return fmt.Errorf("%w: opportunities", ErrNilParameter)
	}
	if len(opportunities) == 0 {
		return fmt.Errorf("%w: opportunities", ErrEmptySlice)
	}

	for i := range opportunities {
		if opportunities[i].ID <= 0 {
			return fmt.Errorf("%w: opportunity at index %d has no ID", ErrInvalidOpportunity, i)
		}
		if strings.TrimSpace(opportunities[i].Title) == "" {
			return fmt.Errorf("%w: opportunity %d has no title", ErrInvalidOpportunity, opportunities[i].ID)
		}
	}
	return nil
}

// validateRun checks the run header stored with a match set.
func validateRun(run *model.Run, matches []model.Match) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if err := validateString(run.ID, "run.ID"); err != nil {
		return err
	}
	if run.MatchCount != len(matches) {
		return fmt.Errorf("%w: run %s counts %d matches, got %d", ErrInvalidRun, run.ID, run.MatchCount, len(matches))
	}
	for i := range matches {
		if matches[i].RunID != run.ID {
			return fmt.Errorf("%w: match at index %d belongs to run %q", ErrInvalidRun, i, matches[i].RunID)
		}
	}
	return nil
}
