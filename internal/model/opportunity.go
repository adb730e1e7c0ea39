package model

import (
	"fmt"
	"strings"
)

// Opportunity is a placement offered by a company.
type Opportunity struct {
	Company                string   `json:"company"`
	Title                  string   `json:"title"`
	Location               string   `json:"location"`
	Sector                 string   `json:"sector"`
	PreferredQualification string   `json:"preferred_qualification"`
	Duration               string   `json:"duration"`
	Type                   string   `json:"type,omitempty"`
	Description            string   `json:"description,omitempty"`
	RequiredSkills         []string `json:"required_skills"`
	ID                     int64    `json:"id"`
	Capacity               int      `json:"capacity"`
	Stipend                int      `json:"stipend"`
}

// Validate checks the opportunity's fields against the record invariants.
func (o *Opportunity) Validate() error {
	var problems []string
	if o.ID <= 0 {
		problems = append(problems, fmt.Sprintf("id must be positive, got %d", o.ID))
	}
	if o.Capacity < 0 {
		problems = append(problems, fmt.Sprintf("capacity must not be negative, got %d", o.Capacity))
	}
	if o.Stipend < 0 {
		problems = append(problems, fmt.Sprintf("stipend must not be negative, got %d", o.Stipend))
	}
	if len(problems) > 0 {
		return fmt.Errorf("opportunity %d: %s", o.ID, strings.Join(problems, "; "))
	}
	return nil
}
