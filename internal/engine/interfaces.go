package engine

import (
	"context"
	"time"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

// RecordStore is the part of storage a run needs.
type RecordStore interface {
	GetCandidates(ctx context.Context) ([]model.Candidate, error)
	GetOpportunities(ctx context.Context) ([]model.Opportunity, error)
	ReplaceMatches(ctx context.Context, run *model.Run, matches []model.Match) error
}

// ResultReader reads back a stored run.
type ResultReader interface {
	GetLatestRun(ctx context.Context) (*model.Run, error)
	GetMatches(ctx context.Context) ([]model.Match, error)
}

// ProgressReporter is told how far a run has got.
type ProgressReporter interface {
	Start(total int)
	Advance(candidate string)
	Finish()
}

// MetricsRecorder observes finished runs. run is nil when err is set.
type MetricsRecorder interface {
	RecordRun(run *model.Run, elapsed time.Duration, err error)
}

type nopProgress struct{}

func (nopProgress) Start(int)      {}
func (nopProgress) Advance(string) {}
func (nopProgress) Finish()        {}

type nopMetrics struct{}

func (nopMetrics) RecordRun(*model.Run, time.Duration, error) {}
