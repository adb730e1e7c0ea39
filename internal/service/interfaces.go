// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Candidate operations
	SaveCandidates(ctx context.Context, candidates []model.Candidate) error
	GetCandidates(ctx context.Context) ([]model.Candidate, error)

	// Opportunity operations
	SaveOpportunities(ctx context.Context, opportunities []model.Opportunity) error
	GetOpportunities(ctx context.Context) ([]model.Opportunity, error)

	// Match operations
	ReplaceMatches(ctx context.Context, run *model.Run, matches []model.Match) error
	GetMatches(ctx context.Context) ([]model.Match, error)
	GetLatestRun(ctx context.Context) (*model.Run, error)
	ClearMatches(ctx context.Context) error

	// Database management
	CountRecords(ctx context.Context) (RecordCounts, error)
	Migrate(ctx context.Context) error
	Close() error
}

// RecordCounts reports how many records a store holds.
type RecordCounts struct {
	Candidates    int
	Opportunities int
	Matches       int
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// Reporter writes a ranked match set to an external destination.
type Reporter interface {
	Write(ctx context.Context, rows []ReportRow) error
}

// ReportRow is one exported match joined with its candidate and opportunity.
type ReportRow struct {
	Factors                map[string]float64
	CandidateName          string
	CandidateQualification string
	CandidateLocation      string
	CandidateCategory      string
	Company                string
	Title                  string
	OpportunityLocation    string
	Duration               string
	Status                 model.Status
	Stipend                int
	Score                  float64
}
