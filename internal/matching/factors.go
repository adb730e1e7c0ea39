package matching

import (
	"strings"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

// Factor baselines and bonuses.
const (
	locationExact     = 1.0
	locationSameState = 0.7
	locationFloor     = 0.3

	sectorMatch    = 1.0
	sectorMismatch = 0.3

	qualificationMatch    = 1.0
	qualificationMismatch = 0.5

	diversityReserved     = 0.5
	diversityOBC          = 0.3
	diversityAspirational = 0.3
	diversityRural        = 0.2
	diversityFirstTime    = 0.2
)

// SubScores holds the six raw factor scores, each in [0,1].
type SubScores struct {
	Skills        float64
	Location      float64
	Sector        float64
	Qualification float64
	Diversity     float64
	Academic      float64
}

// Breakdown returns the sub-scores scaled to 0-100, keyed by factor name.
func (s SubScores) Breakdown() map[string]float64 {
	return map[string]float64{
		model.FactorSkills:        s.Skills * 100,
		model.FactorLocation:      s.Location * 100,
		model.FactorSector:        s.Sector * 100,
		model.FactorQualification: s.Qualification * 100,
		model.FactorDiversity:     s.Diversity * 100,
		model.FactorAcademic:      s.Academic * 100,
	}
}

// SkillsScore rates how well candidate skills cover the required skills.
// For each required skill the first candidate skill that relates to it at all
// decides the credit, even if a later one would relate more closely.
func SkillsScore(candidateSkills, requiredSkills []string, groups SkillGroups) float64 {
	if len(candidateSkills) == 0 || len(requiredSkills) == 0 {
		return 0
	}

	var total float64
	for _, req := range requiredSkills {
		for _, have := range candidateSkills {
			if r := Relate(req, have, groups); r != RelatednessNone {
				total += r.Credit()
				break
			}
		}
	}

	return min(total/float64(len(requiredSkills)), 1.0)
}

// LocationScore rates how close the candidate is to the opportunity.
// Unrelated or unknown locations still score the floor.
func LocationScore(candidateLocation, opportunityLocation string, stateByCity map[string]string) float64 {
	a := strings.ToLower(candidateLocation)
	b := strings.ToLower(opportunityLocation)
	if a == b {
		return locationExact
	}

	stateA, okA := stateByCity[a]
	stateB, okB := stateByCity[b]
	if okA && okB && stateA == stateB {
		return locationSameState
	}

	return locationFloor
}

// SectorScore rates whether the candidate's preferred sector matches.
func SectorScore(candidateSector, opportunitySector string) float64 {
	if strings.EqualFold(candidateSector, opportunitySector) {
		return sectorMatch
	}
	return sectorMismatch
}

// QualificationScore rates whether any word of the preferred qualification
// appears in the candidate's qualifications.
func QualificationScore(candidateQualifications, preferred string) float64 {
	have := strings.ToLower(candidateQualifications)
	for _, word := range strings.Fields(strings.ToLower(preferred)) {
		if strings.Contains(have, word) {
			return qualificationMatch
		}
	}
	return qualificationMismatch
}

// DiversityScore rates the candidate's affirmative-action weighting. Bonuses
// add up and the total is capped at 1.
func DiversityScore(c *model.Candidate, aspirationalDistricts []string) float64 {
	var score float64

	switch {
	case c.Category.Reserved():
		score += diversityReserved
	case c.Category == model.CategoryOBC:
		score += diversityOBC
	}

	district := strings.ToLower(c.District)
	for _, d := range aspirationalDistricts {
		if strings.Contains(district, strings.ToLower(d)) {
			score += diversityAspirational
			break
		}
	}

	if strings.Contains(district, "rural") {
		score += diversityRural
	}

	if c.FirstTime() {
		score += diversityFirstTime
	}

	return min(score, 1.0)
}

// AcademicScore normalizes the CGPA to [0,1].
func AcademicScore(cgpa float64) float64 {
	return min(cgpa/model.MaxCGPA, 1.0)
}
