package model

import "time"

// Status is the quality tier of a match.
type Status string

// Match tiers, best first.
const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusFair      Status = "fair"
)

// Factor names used as keys of Match.Factors.
const (
	FactorSkills        = "skills"
	FactorLocation      = "location"
	FactorSector        = "sector"
	FactorQualification = "qualification"
	FactorDiversity     = "diversity"
	FactorAcademic      = "academic"
)

// FactorOrder is the display order of the score breakdown.
var FactorOrder = []string{
	FactorSkills,
	FactorLocation,
	FactorSector,
	FactorQualification,
	FactorDiversity,
	FactorAcademic,
}

// Match is one scored candidate/opportunity pairing produced by a run.
type Match struct {
	CreatedAt     time.Time          `json:"created_at"`
	Factors       map[string]float64 `json:"factors"`
	RunID         string             `json:"run_id"`
	Status        Status             `json:"status"`
	CandidateID   int64              `json:"candidate_id"`
	OpportunityID int64              `json:"opportunity_id"`
	Score         float64            `json:"score"`
}

// Run describes one completed matching pass.
type Run struct {
	StartedAt        time.Time `json:"started_at"`
	CompletedAt      time.Time `json:"completed_at"`
	ID               string    `json:"id"`
	CandidateCount   int       `json:"candidate_count"`
	OpportunityCount int       `json:"opportunity_count"`
	MatchCount       int       `json:"match_count"`
	Excellent        int       `json:"excellent"`
	Good             int       `json:"good"`
	Fair             int       `json:"fair"`
}

// Tally fills the match and per-status counts from matches.
func (r *Run) Tally(matches []Match) {
	r.MatchCount = len(matches)
	r.Excellent, r.Good, r.Fair = 0, 0, 0
	for _, m := range matches {
		switch m.Status {
		case StatusExcellent:
			r.Excellent++
		case StatusGood:
			r.Good++
		case StatusFair:
			r.Fair++
		}
	}
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}
