package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/matching"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/storage"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/testutil"
)

var runStart = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func fixedConfig() Config {
	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return runStart }
	n := 0
	cfg.NewRunID = func() string {
		n++
		return fmt.Sprintf("run-%d", n)
	}
	return cfg
}

func seededStore(t *testing.T, candidates []model.Candidate, opportunities []model.Opportunity) *storage.MemoryStorage {
	t.Helper()
	store := storage.NewMemoryStorage()
	ctx := context.Background()
	if len(candidates) > 0 {
		require.NoError(t, store.SaveCandidates(ctx, candidates))
	}
	if len(opportunities) > 0 {
		require.NoError(t, store.SaveOpportunities(ctx, opportunities))
	}
	return store
}

func mixedCandidates() []model.Candidate {
	return []model.Candidate{
		testutil.NewCandidate(1).WithSkills("Python", "Data Analysis", "SQL").WithCGPA(8.5).Build(),
		testutil.NewCandidate(2).WithSkills("Marketing", "Content Writing").WithLocation("Mumbai").
			WithSector("Marketing").WithCategory(model.CategoryOBC, "Thane").Build(),
		testutil.NewCandidate(3).WithSkills("Finance", "Excel").WithLocation("Ahmedabad").
			WithSector("Finance").WithCategory(model.CategorySC, "Sabarkantha").PreviouslyPlaced().Build(),
	}
}

func mixedOpportunities() []model.Opportunity {
	return []model.Opportunity{
		testutil.NewOpportunity(1).WithSkills("Python", "Data Analysis", "Machine Learning").Build(),
		testutil.NewOpportunity(2).WithSkills("Marketing", "Analytics").WithLocation("Mumbai").WithSector("Marketing").Build(),
		testutil.NewOpportunity(3).WithSkills("Finance", "Excel").WithLocation("Ahmedabad").WithSector("Finance").Build(),
		testutil.NewOpportunity(4).WithSkills("Java", "Database").WithLocation("Bangalore").Build(),
		testutil.NewOpportunity(5).WithSkills("UI/UX", "Figma").WithLocation("Hyderabad").WithSector("Design").Build(),
	}
}

func TestEngine_Run(t *testing.T) {
	store := seededStore(t, mixedCandidates(), mixedOpportunities())
	e := NewWithConfig(store, nil, fixedConfig())

	run, matches, err := e.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, matches, 9, "three candidates keep three matches each")
	assert.Equal(t, 3, run.CandidateCount)
	assert.Equal(t, 5, run.OpportunityCount)
	assert.Equal(t, 9, run.MatchCount)
	assert.Equal(t, run.Excellent+run.Good+run.Fair, run.MatchCount)

	perCandidate := map[int64]int{}
	for i, m := range matches {
		perCandidate[m.CandidateID]++
		assert.Equal(t, "run-1", m.RunID)
		assert.Equal(t, runStart, m.CreatedAt)
		assert.Equal(t, matching.StatusFor(m.Score), m.Status)
		if i > 0 {
			assert.GreaterOrEqual(t, matches[i-1].Score, m.Score, "ranked by score")
		}
	}
	for id, n := range perCandidate {
		assert.LessOrEqual(t, n, DefaultTopK, "candidate %d", id)
	}

	// each candidate's best opportunity is the one tailored to them
	best := map[int64]int64{}
	for _, m := range matches {
		if _, ok := best[m.CandidateID]; !ok {
			best[m.CandidateID] = m.OpportunityID
		}
	}
	assert.Equal(t, map[int64]int64{1: 1, 2: 2, 3: 3}, best)

	stored, err := store.GetMatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, matches, stored)

	latest, ok := e.Latest()
	assert.True(t, ok)
	assert.Equal(t, matches, latest)
	assert.Equal(t, "run-1", e.LastRun().ID)
}

func TestEngine_RunIsStable(t *testing.T) {
	candidates := []model.Candidate{
		testutil.NewCandidate(1).WithSkills("Python").Build(),
		testutil.NewCandidate(2).WithSkills("Python").Build(),
	}
	opportunities := []model.Opportunity{
		testutil.NewOpportunity(1).WithSkills("Python").Build(),
		testutil.NewOpportunity(2).WithSkills("Python").Build(),
		testutil.NewOpportunity(3).WithSkills("Python").Build(),
		testutil.NewOpportunity(4).WithSkills("Python").Build(),
	}
	e := NewWithConfig(seededStore(t, candidates, opportunities), nil, fixedConfig())

	_, matches, err := e.Run(context.Background())
	require.NoError(t, err)

	type pair struct{ c, o int64 }
	var got []pair
	for _, m := range matches {
		got = append(got, pair{m.CandidateID, m.OpportunityID})
	}

	assert.Equal(t, []pair{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 2}, {2, 3}}, got)
}

func TestEngine_RunIsIdempotent(t *testing.T) {
	e := NewWithConfig(seededStore(t, mixedCandidates(), mixedOpportunities()), nil, fixedConfig())

	_, first, err := e.Run(context.Background())
	require.NoError(t, err)
	_, second, err := e.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].CandidateID, second[i].CandidateID)
		assert.Equal(t, first[i].OpportunityID, second[i].OpportunityID)
		assert.Equal(t, first[i].Score, second[i].Score)
		assert.Equal(t, first[i].Factors, second[i].Factors)
	}
	assert.Equal(t, "run-2", second[0].RunID)
}

func TestEngine_RunTopK(t *testing.T) {
	cfg := fixedConfig()
	cfg.TopK = 1
	e := NewWithConfig(seededStore(t, mixedCandidates(), mixedOpportunities()), nil, cfg)

	_, matches, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestEngine_RunFewerOpportunitiesThanTopK(t *testing.T) {
	opportunities := mixedOpportunities()[:2]
	e := NewWithConfig(seededStore(t, mixedCandidates(), opportunities), nil, fixedConfig())

	_, matches, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, matches, 6)
}

func TestEngine_RunEmptySnapshot(t *testing.T) {
	tests := []struct {
		name          string
		candidates    []model.Candidate
		opportunities []model.Opportunity
	}{
		{name: "nothing stored"},
		{name: "no opportunities", candidates: mixedCandidates()},
		{name: "no candidates", opportunities: mixedOpportunities()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewWithConfig(seededStore(t, tt.candidates, tt.opportunities), nil, fixedConfig())

			run, matches, err := e.Run(context.Background())
			require.NoError(t, err)
			assert.Empty(t, matches)
			assert.Equal(t, 0, run.MatchCount)
			assert.True(t, e.HasRun())
		})
	}
}

func TestEngine_RunRejectsInvalidSnapshot(t *testing.T) {
	candidates := mixedCandidates()
	candidates[0].CGPA = 12
	candidates[1].Category = "Other"
	candidates = append(candidates, testutil.NewCandidate(4).WithCGPA(math.NaN()).Build())
	opportunities := mixedOpportunities()
	opportunities[2].Capacity = -1

	store := seededStore(t, candidates, opportunities)
	e := NewWithConfig(store, nil, fixedConfig())

	_, _, err := e.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidRecord)

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 4)
	assert.Contains(t, err.Error(), "got NaN")

	assert.False(t, e.HasRun())
	stored, err := store.GetMatches(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

// failingStore fails ReplaceMatches once armed.
type failingStore struct {
	*storage.MemoryStorage
	fail bool
}

func (f *failingStore) ReplaceMatches(ctx context.Context, run *model.Run, matches []model.Match) error {
	if f.fail {
		return errors.New("connection reset")
	}
	return f.MemoryStorage.ReplaceMatches(ctx, run, matches)
}

func TestEngine_RunStoreFailureKeepsPreviousResult(t *testing.T) {
	store := &failingStore{MemoryStorage: seededStore(t, mixedCandidates(), mixedOpportunities())}
	e := NewWithConfig(store, nil, fixedConfig())

	_, first, err := e.Run(context.Background())
	require.NoError(t, err)

	store.fail = true
	_, _, err = e.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store matches")

	latest, ok := e.Latest()
	assert.True(t, ok)
	assert.Equal(t, first, latest)
	assert.Equal(t, "run-1", e.LastRun().ID)

	stored, err := store.GetMatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, stored)
}

func TestEngine_RunCancelled(t *testing.T) {
	store := seededStore(t, mixedCandidates(), mixedOpportunities())
	e := NewWithConfig(store, nil, fixedConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := e.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, e.HasRun())
}

// countingStore records how many ReplaceMatches calls overlap.
type countingStore struct {
	*storage.MemoryStorage
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (c *countingStore) ReplaceMatches(ctx context.Context, run *model.Run, matches []model.Match) error {
	n := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		seen := c.maxSeen.Load()
		if n <= seen || c.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)
	return c.MemoryStorage.ReplaceMatches(ctx, run, matches)
}

func TestEngine_RunsAreSerialized(t *testing.T) {
	store := &countingStore{MemoryStorage: seededStore(t, mixedCandidates(), mixedOpportunities())}
	e := New(store, matching.NewDefaultScorer())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := e.Run(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), store.maxSeen.Load())
}

func TestEngine_LoadLatest(t *testing.T) {
	store := seededStore(t, mixedCandidates(), mixedOpportunities())

	fresh := New(store, nil)
	require.NoError(t, fresh.LoadLatest(context.Background(), store))
	assert.False(t, fresh.HasRun(), "nothing stored yet")

	_, matches, err := NewWithConfig(store, nil, fixedConfig()).Run(context.Background())
	require.NoError(t, err)

	require.NoError(t, fresh.LoadLatest(context.Background(), store))
	assert.True(t, fresh.HasRun())
	latest, ok := fresh.Latest()
	assert.True(t, ok)
	assert.Equal(t, matches, latest)
}

func TestEngine_ResultsAreIsolated(t *testing.T) {
	store := seededStore(t, mixedCandidates(), mixedOpportunities())
	e := NewWithConfig(store, nil, fixedConfig())

	_, matches, err := e.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	want := matches[0].Factors[model.FactorSkills]

	tests := []struct {
		name    string
		results func() []model.Match
	}{
		{name: "run result", results: func() []model.Match { return matches }},
		{name: "latest result", results: func() []model.Match {
			latest, ok := e.Latest()
			require.True(t, ok)
			return latest
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.results()
			got[0].Factors[model.FactorSkills] = -1
			got[0].Score = -1

			latest, ok := e.Latest()
			require.True(t, ok)
			assert.InDelta(t, want, latest[0].Factors[model.FactorSkills], 1e-9)
			assert.NotEqual(t, -1.0, latest[0].Score)
		})
	}
}

type recordingProgress struct {
	advanced []string
	total    int
	finished bool
}

func (r *recordingProgress) Start(total int)          { r.total = total }
func (r *recordingProgress) Advance(candidate string) { r.advanced = append(r.advanced, candidate) }
func (r *recordingProgress) Finish()                  { r.finished = true }

type recordingMetrics struct {
	runs []*model.Run
	errs []error
}

func (r *recordingMetrics) RecordRun(run *model.Run, _ time.Duration, err error) {
	r.runs = append(r.runs, run)
	r.errs = append(r.errs, err)
}

func TestEngine_ReportsProgressAndMetrics(t *testing.T) {
	progress := &recordingProgress{}
	metrics := &recordingMetrics{}
	cfg := fixedConfig()
	cfg.Progress = progress
	cfg.Metrics = metrics

	candidates := mixedCandidates()
	e := NewWithConfig(seededStore(t, candidates, mixedOpportunities()), nil, cfg)

	_, _, err := e.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, progress.total)
	assert.Equal(t, []string{candidates[0].Name, candidates[1].Name, candidates[2].Name}, progress.advanced)
	assert.True(t, progress.finished)

	require.Len(t, metrics.runs, 1)
	assert.NotNil(t, metrics.runs[0])
	assert.NoError(t, metrics.errs[0])
}

func TestEngine_ScorerWithAlternateWeights(t *testing.T) {
	cfg := matching.DefaultConfig()
	cfg.Weights = matching.WeightSet{Location: 1}
	scorer, err := matching.NewScorer(cfg)
	require.NoError(t, err)

	e := NewWithConfig(seededStore(t, mixedCandidates()[:1], mixedOpportunities()), scorer, fixedConfig())
	_, matches, err := e.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, matches, 3)
	// only opportunity 1 is in Delhi, the rest tie on the floor in input order
	assert.Equal(t, int64(1), matches[0].OpportunityID)
	assert.InDelta(t, 100.0, matches[0].Score, 1e-9)
	assert.Equal(t, int64(2), matches[1].OpportunityID)
	assert.Equal(t, int64(3), matches[2].OpportunityID)
	assert.InDelta(t, 30.0, matches[1].Score, 1e-9)
}
