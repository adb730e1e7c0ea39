// Package model holds the records the allocation engine reads and produces.
package model

import (
	"fmt"
	"math"
	"strings"
)

// Category is a candidate's affirmative-action category.
type Category string

// Recognized categories.
const (
	CategoryGeneral Category = "General"
	CategoryOBC     Category = "OBC"
	CategorySC      Category = "SC"
	CategoryST      Category = "ST"
)

// Categories lists every recognized category in display order.
var Categories = []Category{CategoryGeneral, CategoryOBC, CategorySC, CategoryST}

// IsValid reports whether c is one of the recognized categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryGeneral, CategoryOBC, CategorySC, CategoryST:
		return true
	}
	return false
}

// Reserved reports whether c is SC or ST.
func (c Category) Reserved() bool {
	return c == CategorySC || c == CategoryST
}

// MaxCGPA is the top of the academic score scale.
const MaxCGPA = 10.0

// Candidate is a person seeking a placement.
type Candidate struct {
	Name              string   `json:"name"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Qualifications    string   `json:"qualifications"`
	Location          string   `json:"location"`
	Sector            string   `json:"sector"`
	Category          Category `json:"category"`
	District          string   `json:"district"`
	Experience        string   `json:"experience,omitempty"`
	Skills            []string `json:"skills"`
	ID                int64    `json:"id"`
	CGPA              float64  `json:"cgpa"`
	PastParticipation bool     `json:"past_participation"`
}

// Validate checks the candidate's fields against the record invariants.
func (c *Candidate) Validate() error {
	var problems []string
	if c.ID <= 0 {
		problems = append(problems, fmt.Sprintf("id must be positive, got %d", c.ID))
	}
	if math.IsNaN(c.CGPA) || c.CGPA < 0 || c.CGPA > MaxCGPA {
		problems = append(problems, fmt.Sprintf("cgpa must be between 0 and %.0f, got %.2f", MaxCGPA, c.CGPA))
	}
	if !c.Category.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown category %q", c.Category))
	}
	if len(problems) > 0 {
		return fmt.Errorf("candidate %d: %s", c.ID, strings.Join(problems, "; "))
	}
	return nil
}

// FirstTime reports whether the candidate has never been placed before.
func (c *Candidate) FirstTime() bool {
	return !c.PastParticipation
}
