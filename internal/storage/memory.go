package storage

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/common"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"
)

// MemoryStorage keeps everything in process memory. Contents are lost on exit.
type MemoryStorage struct {
	candidates    map[int64]model.Candidate
	opportunities map[int64]model.Opportunity
	run           *model.Run
	matches       []model.Match
	mu            sync.RWMutex
}

var _ service.Storage = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		candidates:    make(map[int64]model.Candidate),
		opportunities: make(map[int64]model.Opportunity),
	}
}

// SaveCandidates inserts or updates candidates by ID.
func (m *MemoryStorage) SaveCandidates(ctx context.Context, candidates []model.Candidate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCandidates(candidates); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range candidates {
		c.Skills = slices.Clone(c.Skills)
		m.candidates[c.ID] = c
	}
	return nil
}

// GetCandidates returns every candidate ordered by ID.
func (m *MemoryStorage) GetCandidates(ctx context.Context) ([]model.Candidate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.Candidate
	for _, id := range slices.Sorted(maps.Keys(m.candidates)) {
		c := m.candidates[id]
		c.Skills = slices.Clone(c.Skills)
		out = append(out, c)
	}
	return out, nil
}

// SaveOpportunities inserts or updates opportunities by ID.
func (m *MemoryStorage) SaveOpportunities(ctx context.Context, opportunities []model.Opportunity) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOpportunities(opportunities); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range opportunities {
		o.RequiredSkills = slices.Clone(o.RequiredSkills)
		m.opportunities[o.ID] = o
	}
	return nil
}

// GetOpportunities returns every opportunity ordered by ID.
func (m *MemoryStorage) GetOpportunities(ctx context.Context) ([]model.Opportunity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.Opportunity
	for _, id := range slices.Sorted(maps.Keys(m.opportunities)) {
		o := m.opportunities[id]
		o.RequiredSkills = slices.Clone(o.RequiredSkills)
		out = append(out, o)
	}
	return out, nil
}

// ReplaceMatches swaps the stored match set.
func (m *MemoryStorage) ReplaceMatches(ctx context.Context, run *model.Run, matches []model.Match) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run, matches); err != nil {
		return err
	}

	copied := make([]model.Match, len(matches))
	for i, match := range matches {
		match.Factors = maps.Clone(match.Factors)
		copied[i] = match
	}
	r := *run

	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches = copied
	m.run = &r
	return nil
}

// GetMatches returns the stored match set in ranked order.
func (m *MemoryStorage) GetMatches(ctx context.Context) ([]model.Match, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Match, len(m.matches))
	for i, match := range m.matches {
		match.Factors = maps.Clone(match.Factors)
		out[i] = match
	}
	return out, nil
}

// GetLatestRun returns the run that produced the stored match set.
func (m *MemoryStorage) GetLatestRun(ctx context.Context) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.run == nil {
		return nil, fmt.Errorf("latest run: %w", common.ErrNotFound)
	}
	r := *m.run
	return &r, nil
}

// ClearMatches removes the stored match set and its run.
func (m *MemoryStorage) ClearMatches(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches = nil
	m.run = nil
	return nil
}

// CountRecords returns how many records are stored.
func (m *MemoryStorage) CountRecords(ctx context.Context) (service.RecordCounts, error) {
	if err := validateContext(ctx); err != nil {
		return service.RecordCounts{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return service.RecordCounts{
		Candidates:    len(m.candidates),
		Opportunities: len(m.opportunities),
		Matches:       len(m.matches),
	}, nil
}

// Migrate is a no-op for the in-memory store.
func (m *MemoryStorage) Migrate(ctx context.Context) error {
	return validateContext(ctx)
}

// Close is a no-op for the in-memory store.
func (m *MemoryStorage) Close() error {
	return nil
}
