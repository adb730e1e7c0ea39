// Package engine runs the matching pass over every candidate and opportunity.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/common"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/matching"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

// DefaultTopK is how many opportunities are kept per candidate.
const DefaultTopK = 3

// Engine orchestrates matching runs. Runs are serialized; the most recent
// successful result is kept in memory.
type Engine struct {
	store   RecordStore
	scorer  *matching.Scorer
	cfg     Config
	latest  model.Matches
	lastRun *model.Run
	runMu   sync.Mutex
	stateMu sync.RWMutex
}

// Config holds configuration options for the engine.
type Config struct {
	Progress ProgressReporter
	Metrics  MetricsRecorder
	Now      func() time.Time
	NewRunID func() string
	TopK     int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TopK:     DefaultTopK,
		Progress: nopProgress{},
		Metrics:  nopMetrics{},
		Now:      time.Now,
		NewRunID: func() string { return uuid.NewString() },
	}
}

// New creates an engine with the default configuration.
func New(store RecordStore, scorer *matching.Scorer) *Engine {
	return NewWithConfig(store, scorer, DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration. Zero fields fall
// back to their defaults.
func NewWithConfig(store RecordStore, scorer *matching.Scorer, cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.TopK <= 0 {
		cfg.TopK = def.TopK
	}
	if cfg.Progress == nil {
		cfg.Progress = def.Progress
	}
	if cfg.Metrics == nil {
		cfg.Metrics = def.Metrics
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	if cfg.NewRunID == nil {
		cfg.NewRunID = def.NewRunID
	}
	if scorer == nil {
		scorer = matching.NewDefaultScorer()
	}

	return &Engine{
		store:  store,
		scorer: scorer,
		cfg:    cfg,
	}
}

// Run scores every candidate against every opportunity, keeps each
// candidate's best TopK, ranks the combined list and replaces the stored
// match set with it. Nothing is stored unless the whole run succeeds.
func (e *Engine) Run(ctx context.Context) (*model.Run, []model.Match, error) {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	started := e.cfg.Now()

	run, matches, err := e.run(ctx, started)
	if err != nil {
		e.cfg.Metrics.RecordRun(nil, e.cfg.Now().Sub(started), err)
		return nil, nil, err
	}

	e.stateMu.Lock()
	e.latest = matches
	e.lastRun = run
	e.stateMu.Unlock()

	e.cfg.Metrics.RecordRun(run, run.Duration(), nil)

	slog.Info("Matching run complete",
		"run_id", run.ID,
		"candidates", run.CandidateCount,
		"opportunities", run.OpportunityCount,
		"matches", run.MatchCount,
		"excellent", run.Excellent,
		"good", run.Good,
		"fair", run.Fair)

	return run, cloneMatches(matches), nil
}

func (e *Engine) run(ctx context.Context, started time.Time) (*model.Run, model.Matches, error) {
	candidates, err := e.store.GetCandidates(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	opportunities, err := e.store.GetOpportunities(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load opportunities: %w", err)
	}

	if err := model.ValidateSnapshot(candidates, opportunities); err != nil {
		return nil, nil, err
	}

	slog.Debug("Starting matching run",
		"candidates", len(candidates),
		"opportunities", len(opportunities),
		"top_k", e.cfg.TopK)

	run := &model.Run{
		ID:               e.cfg.NewRunID(),
		StartedAt:        started,
		CandidateCount:   len(candidates),
		OpportunityCount: len(opportunities),
	}

	matches, err := e.rank(ctx, run, candidates, opportunities)
	if err != nil {
		return nil, nil, err
	}

	run.Tally(matches)
	run.CompletedAt = e.cfg.Now()

	if err := e.store.ReplaceMatches(ctx, run, matches); err != nil {
		return nil, nil, fmt.Errorf("failed to store matches: %w", err)
	}

	return run, matches, nil
}

// rank builds the ranked match list for one run.
func (e *Engine) rank(ctx context.Context, run *model.Run, candidates []model.Candidate, opportunities []model.Opportunity) (model.Matches, error) {
	e.cfg.Progress.Start(len(candidates))
	defer e.cfg.Progress.Finish()

	all := make(model.Matches, 0, len(candidates)*min(e.cfg.TopK, len(opportunities)))

	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("matching run interrupted: %w", err)
		}

		c := &candidates[i]
		own := make(model.Matches, 0, len(opportunities))
		for j := range opportunities {
			o := &opportunities[j]
			res := e.scorer.Score(c, o)
			own = append(own, model.Match{
				RunID:         run.ID,
				CandidateID:   c.ID,
				OpportunityID: o.ID,
				Score:         res.Score,
				Factors:       res.Factors,
				Status:        res.Status,
				CreatedAt:     run.StartedAt,
			})
		}

		all = append(all, own.TopN(e.cfg.TopK)...)
		e.cfg.Progress.Advance(c.Name)
	}

	all.Sort()
	return all, nil
}

// Latest returns the match list of the last successful run and whether one
// has completed.
func (e *Engine) Latest() ([]model.Match, bool) {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()

	if e.lastRun == nil {
		return nil, false
	}
	return cloneMatches(e.latest), true
}

// cloneMatches copies matches along with their factor breakdowns so callers
// never share state with the engine.
func cloneMatches(matches []model.Match) []model.Match {
	out := slices.Clone(matches)
	for i := range out {
		out[i].Factors = maps.Clone(out[i].Factors)
	}
	return out
}

// LastRun returns the last successful run, or nil.
func (e *Engine) LastRun() *model.Run {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()

	if e.lastRun == nil {
		return nil
	}
	run := *e.lastRun
	return &run
}

// HasRun reports whether a run has completed.
func (e *Engine) HasRun() bool {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.lastRun != nil
}

// LoadLatest restores the last stored run so a fresh process can display
// and export results without recomputing them.
func (e *Engine) LoadLatest(ctx context.Context, r ResultReader) error {
	run, err := r.GetLatestRun(ctx)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load latest run: %w", err)
	}

	matches, err := r.GetMatches(ctx)
	if err != nil {
		return fmt.Errorf("failed to load matches: %w", err)
	}

	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	e.latest = cloneMatches(matches)
	e.lastRun = run
	return nil
}
