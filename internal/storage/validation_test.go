package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{name: "valid string", str: "test", paramName: "param"},
		{name: "empty string", str: "", paramName: "param", wantErr: true},
		{name: "whitespace only", str: "   ", paramName: "param", wantErr: true},
		{name: "string with spaces", str: "  test  ", paramName: "param"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.paramName) {
				t.Errorf("validateString() error should mention %q, got %v", tt.paramName, err)
			}
		})
	}
}

func TestValidateCandidates(t *testing.T) {
	tests := []struct {
		wantErr    error
		name       string
		candidates []model.Candidate
	}{
		{
			name:       "valid",
			candidates: []model.Candidate{{ID: 1, Name: "Priya Sharma"}},
		},
		{
			name:    "nil slice",
			wantErr: ErrNilParameter,
		},
		{
			name:       "empty slice",
			candidates: []model.Candidate{},
			wantErr:    ErrEmptySlice,
		},
		{
			name:       "missing id",
			candidates: []model.Candidate{{Name: "Priya Sharma"}},
			wantErr:    ErrInvalidCandidate,
		},
		{
			name:       "blank name",
			candidates: []model.Candidate{{ID: 3, Name: "  "}},
			wantErr:    ErrInvalidCandidate,
		},
		{
			// Out of range values are left to snapshot validation.
			name:       "cgpa out of range accepted",
			candidates: []model.Candidate{{ID: 4, Name: "Amit Singh", CGPA: 11}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCandidates(tt.candidates)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateCandidates() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOpportunities(t *testing.T) {
	tests := []struct {
		wantErr       error
		name          string
		opportunities []model.Opportunity
	}{
		{
			name:          "valid",
			opportunities: []model.Opportunity{{ID: 1, Title: "Data Science Intern"}},
		},
		{
			name:    "nil slice",
			wantErr: ErrNilParameter,
		},
		{
			name:          "empty slice",
			opportunities: []model.Opportunity{},
			wantErr:       ErrEmptySlice,
		},
		{
			name:          "negative id",
			opportunities: []model.Opportunity{{ID: -1, Title: "Data Science Intern"}},
			wantErr:       ErrInvalidOpportunity,
		},
		{
			name:          "missing title",
			opportunities: []model.Opportunity{{ID: 2}},
			wantErr:       ErrInvalidOpportunity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOpportunities(tt.opportunities)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateOpportunities() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRun(t *testing.T) {
	matches := []model.Match{{RunID: "run-1"}, {RunID: "run-1"}}

	tests := []struct {
		wantErr error
		run     *model.Run
		name    string
		matches []model.Match
	}{
		{
			name:    "valid",
			run:     &model.Run{ID: "run-1", MatchCount: 2},
			matches: matches,
		},
		{
			name:    "empty match set",
			run:     &model.Run{ID: "run-1"},
			matches: nil,
		},
		{
			name:    "nil run",
			matches: matches,
			wantErr: ErrNilParameter,
		},
		{
			name:    "missing id",
			run:     &model.Run{MatchCount: 2},
			matches: matches,
			wantErr: ErrEmptyString,
		},
		{
			name:    "count mismatch",
			run:     &model.Run{ID: "run-1", MatchCount: 3},
			matches: matches,
			wantErr: ErrInvalidRun,
		},
		{
			name:    "foreign match",
			run:     &model.Run{ID: "run-1", MatchCount: 2},
			matches: []model.Match{{RunID: "run-1"}, {RunID: "run-0"}},
			wantErr: ErrInvalidRun,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRun(tt.run, tt.matches)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateRun() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
