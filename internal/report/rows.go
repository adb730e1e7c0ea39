// Package report turns a ranked match set into exportable rows, CSV files,
// terminal summaries and record analytics.
package report

import (
	"errors"
	"fmt"
	"maps"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"
)

var (
	// ErrUnknownCandidate is returned when a match names a candidate that is not stored.
	ErrUnknownCandidate = errors.New("match references unknown candidate")
	// ErrUnknownOpportunity is returned when a match names an opportunity that is not stored.
	ErrUnknownOpportunity = errors.New("match references unknown opportunity")
)

// BuildRows joins every match with its candidate and opportunity, keeping
// the order of matches.
func BuildRows(matches []model.Match, candidates []model.Candidate, opportunities []model.Opportunity) ([]service.ReportRow, error) {
	byCandidate := make(map[int64]*model.Candidate, len(candidates))
	for i := range candidates {
		byCandidate[candidates[i].ID] = &candidates[i]
	}
	byOpportunity := make(map[int64]*model.Opportunity, len(opportunities))
	for i := range opportunities {
		byOpportunity[opportunities[i].ID] = &opportunities[i]
	}

	rows := make([]service.ReportRow, 0, len(matches))
	for _, m := range matches {
		c, ok := byCandidate[m.CandidateID]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownCandidate, m.CandidateID)
		}
		o, ok := byOpportunity[m.OpportunityID]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownOpportunity, m.OpportunityID)
		}

		rows = append(rows, service.ReportRow{
			CandidateName:          c.Name,
			CandidateQualification: c.Qualifications,
			CandidateLocation:      c.Location,
			CandidateCategory:      string(c.Category),
			Company:                o.Company,
			Title:                  o.Title,
			OpportunityLocation:    o.Location,
			Stipend:                o.Stipend,
			Duration:               o.Duration,
			Score:                  m.Score,
			Status:                 m.Status,
			Factors:                maps.Clone(m.Factors),
		})
	}
	return rows, nil
}
