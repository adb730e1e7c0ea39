package matching

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

// Status thresholds on the rounded aggregate score.
const (
	ExcellentThreshold = 70.0
	GoodThreshold      = 50.0
)

// MaxScore is the ceiling of the aggregate score.
const MaxScore = 100.0

// Config is the fixed input of a Scorer.
type Config struct {
	Weights               WeightSet
	SkillGroups           SkillGroups
	StateByCity           map[string]string
	AspirationalDistricts []string
}

// DefaultConfig returns the standard weights and lookup tables.
func DefaultConfig() Config {
	return Config{
		Weights:     DefaultWeights(),
		SkillGroups: DefaultSkillGroups(),
		StateByCity: map[string]string{
			"delhi":     "delhi",
			"mumbai":    "maharashtra",
			"bangalore": "karnataka",
			"hyderabad": "telangana",
			"ahmedabad": "gujarat",
			"pune":      "maharashtra",
			"kolkata":   "west bengal",
			"chennai":   "tamil nadu",
		},
		AspirationalDistricts: []string{
			"Rural Karnataka", "Sabarkantha", "Adilabad", "Dantewada",
			"Naxalbari", "Kalahandi", "Nuapada", "Koraput",
		},
	}
}

// Result is the outcome of scoring one pairing.
type Result struct {
	Factors map[string]float64
	Status  model.Status
	Score   float64
	Raw     SubScores
}

// Scorer computes match scores from an immutable Config.
type Scorer struct {
	cfg Config
}

// NewScorer validates cfg and returns a Scorer that owns a private copy of it.
func NewScorer(cfg Config) (*Scorer, error) {
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	if cfg.SkillGroups == nil || cfg.StateByCity == nil {
		return nil, fmt.Errorf("%w: lookup tables are required", ErrInvalidWeights)
	}

	groups := make(SkillGroups, len(cfg.SkillGroups))
	for name, members := range cfg.SkillGroups {
		groups[name] = slices.Clone(members)
	}

	return &Scorer{cfg: Config{
		Weights:               cfg.Weights,
		SkillGroups:           groups,
		StateByCity:           maps.Clone(cfg.StateByCity),
		AspirationalDistricts: slices.Clone(cfg.AspirationalDistricts),
	}}, nil
}

// NewDefaultScorer returns a Scorer built from DefaultConfig.
func NewDefaultScorer() *Scorer {
	s, err := NewScorer(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("default scoring config is invalid: %v", err))
	}
	return s
}

// SubScores computes the six raw factor scores.
func (s *Scorer) SubScores(c *model.Candidate, o *model.Opportunity) SubScores {
	return SubScores{
		Skills:        SkillsScore(c.Skills, o.RequiredSkills, s.cfg.SkillGroups),
		Location:      LocationScore(c.Location, o.Location, s.cfg.StateByCity),
		Sector:        SectorScore(c.Sector, o.Sector),
		Qualification: QualificationScore(c.Qualifications, o.PreferredQualification),
		Diversity:     DiversityScore(c, s.cfg.AspirationalDistricts),
		Academic:      AcademicScore(c.CGPA),
	}
}

// Score rates candidate c against opportunity o.
func (s *Scorer) Score(c *model.Candidate, o *model.Opportunity) Result {
	raw := s.SubScores(c, o)
	score := Round1(min(s.cfg.Weights.Combine(raw)*100, MaxScore))

	return Result{
		Score:   score,
		Status:  StatusFor(score),
		Factors: raw.Breakdown(),
		Raw:     raw,
	}
}

// StatusFor maps a rounded aggregate score to its tier.
func StatusFor(score float64) model.Status {
	switch {
	case score >= ExcellentThreshold:
		return model.StatusExcellent
	case score >= GoodThreshold:
		return model.StatusGood
	default:
		return model.StatusFair
	}
}

// Round1 rounds x to one decimal place, halves away from zero.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}
