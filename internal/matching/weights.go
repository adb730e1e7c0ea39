package matching

import (
	"errors"
	"fmt"
	"math"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

// ErrInvalidWeights is returned when a WeightSet cannot be used for scoring.
var ErrInvalidWeights = errors.New("invalid weights")

const weightTolerance = 1e-9

// WeightSet holds the contribution of each factor to the aggregate score.
type WeightSet struct {
	Skills        float64
	Location      float64
	Sector        float64
	Qualification float64
	Diversity     float64
	Academic      float64
}

// DefaultWeights returns the standard weighting.
func DefaultWeights() WeightSet {
	return WeightSet{
		Skills:        0.40,
		Location:      0.20,
		Sector:        0.15,
		Qualification: 0.10,
		Diversity:     0.10,
		Academic:      0.05,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.Skills + w.Location + w.Sector + w.Qualification + w.Diversity + w.Academic
}

// Validate checks that no weight is negative and the weights sum to 1.
func (w WeightSet) Validate() error {
	for name, v := range w.byFactor() {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: %s weight is not a number", ErrInvalidWeights, name)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s weight is negative (%.2f)", ErrInvalidWeights, name, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, want 1", ErrInvalidWeights, sum)
	}
	return nil
}

// Combine returns the weighted sum of the sub-scores.
func (w WeightSet) Combine(s SubScores) float64 {
	return s.Skills*w.Skills +
		s.Location*w.Location +
		s.Sector*w.Sector +
		s.Qualification*w.Qualification +
		s.Diversity*w.Diversity +
		s.Academic*w.Academic
}

func (w WeightSet) byFactor() map[string]float64 {
	return map[string]float64{
		model.FactorSkills:        w.Skills,
		model.FactorLocation:      w.Location,
		model.FactorSector:        w.Sector,
		model.FactorQualification: w.Qualification,
		model.FactorDiversity:     w.Diversity,
		model.FactorAcademic:      w.Academic,
	}
}
