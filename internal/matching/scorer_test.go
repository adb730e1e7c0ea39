package matching

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
	assert.NoError(t, w.Validate())
}

func TestWeightSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		weights WeightSet
		wantErr bool
	}{
		{name: "skills only", weights: WeightSet{Skills: 1}},
		{name: "does not sum to one", weights: WeightSet{Skills: 0.5, Location: 0.4}, wantErr: true, errMsg: "weights sum to 0.9000"},
		{name: "negative weight", weights: WeightSet{Skills: 1.2, Sector: -0.2}, wantErr: true, errMsg: "sector weight is negative"},
		{name: "nan weight", weights: WeightSet{Skills: 1, Diversity: math.NaN()}, wantErr: true, errMsg: "diversity weight is not a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidWeights))
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWeightSet_KeysMatchBreakdown(t *testing.T) {
	weights := DefaultWeights().byFactor()
	breakdown := SubScores{}.Breakdown()

	assert.ElementsMatch(t, model.FactorOrder, keys(weights))
	assert.ElementsMatch(t, keys(breakdown), keys(weights))
}

func keys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		want  model.Status
		score float64
	}{
		{score: 100, want: model.StatusExcellent},
		{score: 70.0, want: model.StatusExcellent},
		{score: 69.9, want: model.StatusGood},
		{score: 50.0, want: model.StatusGood},
		{score: 49.9, want: model.StatusFair},
		{score: 0, want: model.StatusFair},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.score), "score %.1f", tt.score)
	}
}

func TestRound1(t *testing.T) {
	assert.InDelta(t, 72.9, Round1(72.91666), 1e-9)
	assert.InDelta(t, 70.0, Round1(69.95), 1e-9)
	assert.InDelta(t, 49.9, Round1(49.94), 1e-9)
}

func priya() model.Candidate {
	return model.Candidate{
		ID:             1,
		Name:           "Priya Sharma",
		Skills:         []string{"Python", "Data Analysis", "SQL"},
		Qualifications: "B.Tech CSE",
		Location:       "Delhi",
		Sector:         "Technology",
		Category:       model.CategoryGeneral,
		District:       "New Delhi",
		CGPA:           8.5,
	}
}

func dataScienceIntern() model.Opportunity {
	return model.Opportunity{
		ID:                     1,
		Company:                "TechCorp India",
		Title:                  "Data Science Intern",
		RequiredSkills:         []string{"Python", "Data Analysis", "Machine Learning"},
		Location:               "Delhi",
		Sector:                 "Technology",
		Capacity:               10,
		PreferredQualification: "B.Tech/MCA",
		Stipend:                25000,
	}
}

func TestScorer_Score(t *testing.T) {
	s := NewDefaultScorer()
	c := priya()
	o := dataScienceIntern()

	res := s.Score(&c, &o)

	assert.InDelta(t, 2.0/3.0, res.Raw.Skills, 1e-9)
	assert.InDelta(t, 1.0, res.Raw.Location, 1e-9)
	assert.InDelta(t, 1.0, res.Raw.Sector, 1e-9)
	assert.InDelta(t, 0.5, res.Raw.Qualification, 1e-9)
	assert.InDelta(t, 0.2, res.Raw.Diversity, 1e-9)
	assert.InDelta(t, 0.85, res.Raw.Academic, 1e-9)

	assert.InDelta(t, 72.9, res.Score, 1e-9)
	assert.Equal(t, model.StatusExcellent, res.Status)

	require.Len(t, res.Factors, len(model.FactorOrder))
	assert.InDelta(t, 66.6667, res.Factors[model.FactorSkills], 1e-3)
	assert.InDelta(t, 100.0, res.Factors[model.FactorLocation], 1e-9)
	assert.InDelta(t, 50.0, res.Factors[model.FactorQualification], 1e-9)
	assert.InDelta(t, 85.0, res.Factors[model.FactorAcademic], 1e-9)
}

func TestScorer_AlternateWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights = WeightSet{Skills: 1}
	s, err := NewScorer(cfg)
	require.NoError(t, err)

	c := priya()
	o := dataScienceIntern()
	res := s.Score(&c, &o)

	assert.InDelta(t, 66.7, res.Score, 1e-9)
	assert.Equal(t, model.StatusGood, res.Status)
}

func TestNewScorer_RejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Skills = 0.9
	_, err := NewScorer(cfg)
	assert.ErrorIs(t, err, ErrInvalidWeights)

	cfg = DefaultConfig()
	cfg.StateByCity = nil
	_, err = NewScorer(cfg)
	assert.ErrorIs(t, err, ErrInvalidWeights)
}

func TestNewScorer_CopiesConfig(t *testing.T) {
	cfg := DefaultConfig()
	s, err := NewScorer(cfg)
	require.NoError(t, err)

	cfg.StateByCity["surat"] = "delhi"
	cfg.SkillGroups["programming"][0] = "cobol"

	c := priya()
	o := dataScienceIntern()
	o.Location = "Surat"
	res := s.Score(&c, &o)

	assert.InDelta(t, 0.3, res.Raw.Location, 1e-9)
	assert.Equal(t, RelatednessGrouped, Relate("python", "java", s.cfg.SkillGroups))
}

func TestScorer_ScoreIsBounded(t *testing.T) {
	s := NewDefaultScorer()

	candidates := []model.Candidate{
		priya(),
		{ID: 2, Category: model.CategoryST, District: "Rural Karnataka", CGPA: 10, Skills: []string{"Java"}, Location: "Bangalore", Sector: "Technology", Qualifications: "MCA"},
		{ID: 3, Category: model.CategoryGeneral, PastParticipation: true},
	}
	opportunities := []model.Opportunity{
		dataScienceIntern(),
		{ID: 2, RequiredSkills: []string{"Java"}, Location: "Bangalore", Sector: "Technology", PreferredQualification: "MCA"},
		{ID: 3},
	}

	for i := range candidates {
		for j := range opportunities {
			res := s.Score(&candidates[i], &opportunities[j])
			assert.GreaterOrEqual(t, res.Score, 0.0)
			assert.LessOrEqual(t, res.Score, MaxScore)
			assert.Equal(t, StatusFor(res.Score), res.Status)
		}
	}

	perfect := s.Score(&candidates[1], &opportunities[1])
	assert.InDelta(t, 100.0, perfect.Score, 1e-9)
}
