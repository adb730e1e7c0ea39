package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches_Sort(t *testing.T) {
	m := Matches{
		{CandidateID: 1, OpportunityID: 1, Score: 55.0},
		{CandidateID: 1, OpportunityID: 2, Score: 80.5},
		{CandidateID: 2, OpportunityID: 1, Score: 55.0},
		{CandidateID: 2, OpportunityID: 2, Score: 90.0},
	}

	m.Sort()

	assert.Equal(t, 90.0, m[0].Score)
	assert.Equal(t, 80.5, m[1].Score)
	// equal scores keep input order
	assert.Equal(t, int64(1), m[2].CandidateID)
	assert.Equal(t, int64(2), m[3].CandidateID)
}

func TestMatches_TopN(t *testing.T) {
	m := Matches{
		{OpportunityID: 1, Score: 10},
		{OpportunityID: 2, Score: 30},
		{OpportunityID: 3, Score: 20},
	}

	tests := []struct {
		name string
		want []int64
		n    int
	}{
		{name: "zero", n: 0, want: nil},
		{name: "two", n: 2, want: []int64{2, 3}},
		{name: "more than available", n: 5, want: []int64{2, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := m.TopN(tt.n)
			var ids []int64
			for _, match := range top {
				ids = append(ids, match.OpportunityID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestMatches_ByStatus(t *testing.T) {
	m := Matches{
		{OpportunityID: 1, Status: StatusGood},
		{OpportunityID: 2, Status: StatusFair},
		{OpportunityID: 3, Status: StatusGood},
	}

	good := m.ByStatus(StatusGood)
	require.Len(t, good, 2)
	assert.Equal(t, int64(1), good[0].OpportunityID)
	assert.Equal(t, int64(3), good[1].OpportunityID)
	assert.Empty(t, m.ByStatus(StatusExcellent))
}

func TestMatches_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		matches Matches
		wantErr bool
	}{
		{
			name:    "valid",
			matches: Matches{{CandidateID: 1, OpportunityID: 1, Score: 100}, {CandidateID: 1, OpportunityID: 2}},
		},
		{
			name:    "score out of range",
			matches: Matches{{CandidateID: 1, OpportunityID: 1, Score: 100.1}},
			wantErr: true,
			errMsg:  "score must be between 0 and 100",
		},
		{
			name:    "duplicate pairing",
			matches: Matches{{CandidateID: 1, OpportunityID: 1}, {CandidateID: 1, OpportunityID: 1}},
			wantErr: true,
			errMsg:  "duplicate match for candidate 1 and opportunity 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.matches.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}
