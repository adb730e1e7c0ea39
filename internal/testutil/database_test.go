package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"
)

func TestSetupTestDB(t *testing.T) {
	setupCalled := false
	db := SetupTestDB(t, TestDBOptions{
		Candidates: []model.Candidate{
			NewCandidate(1).WithSkills("Python").Build(),
			NewCandidate(2).WithCategory(model.CategorySC, "Sabarkantha").PreviouslyPlaced().Build(),
		},
		Opportunities: []model.Opportunity{
			NewOpportunity(1).WithSkills("Python", "SQL").WithCapacity(3).Build(),
		},
		CustomSetup: func(_ context.Context, _ service.Storage) error {
			setupCalled = true
			return nil
		},
	})

	assert.True(t, setupCalled)

	counts, err := db.Storage.CountRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Candidates)
	assert.Equal(t, 1, counts.Opportunities)
	assert.Empty(t, db.MustMatches())

	candidates, err := db.Storage.GetCandidates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.CategorySC, candidates[1].Category)
	assert.True(t, candidates[1].PastParticipation)
}

func TestBuilders_CopySlices(t *testing.T) {
	b := NewCandidate(1).WithSkills("Python")
	first := b.Build()
	first.Skills[0] = "Go"

	assert.Equal(t, "Python", b.Build().Skills[0])
}
