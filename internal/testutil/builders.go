package testutil

import (
	"fmt"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

// CandidateBuilder provides a fluent interface for constructing test candidates.
type CandidateBuilder struct {
	c model.Candidate
}

// NewCandidate starts a General-category, first-time candidate in Delhi.
func NewCandidate(id int64) *CandidateBuilder {
	return &CandidateBuilder{c: model.Candidate{
		ID:             id,
		Name:           fmt.Sprintf("Candidate %d", id),
		Qualifications: "B.Tech CSE",
		Location:       "Delhi",
		Sector:         "Technology",
		Category:       model.CategoryGeneral,
		District:       "New Delhi",
		CGPA:           7.0,
	}}
}

// WithName sets the candidate's name.
func (b *CandidateBuilder) WithName(name string) *CandidateBuilder {
	b.c.Name = name
	return b
}

// WithSkills sets the candidate's skills.
func (b *CandidateBuilder) WithSkills(skills ...string) *CandidateBuilder {
	b.c.Skills = skills
	return b
}

// WithLocation sets the candidate's location.
func (b *CandidateBuilder) WithLocation(location string) *CandidateBuilder {
	b.c.Location = location
	return b
}

// WithSector sets the candidate's preferred sector.
func (b *CandidateBuilder) WithSector(sector string) *CandidateBuilder {
	b.c.Sector = sector
	return b
}

// WithCategory sets the candidate's category and district.
func (b *CandidateBuilder) WithCategory(category model.Category, district string) *CandidateBuilder {
	b.c.Category = category
	b.c.District = district
	return b
}

// WithCGPA sets the candidate's academic score.
func (b *CandidateBuilder) WithCGPA(cgpa float64) *CandidateBuilder {
	b.c.CGPA = cgpa
	return b
}

// PreviouslyPlaced marks the candidate as having past participation.
func (b *CandidateBuilder) PreviouslyPlaced() *CandidateBuilder {
	b.c.PastParticipation = true
	return b
}

// Build returns the candidate.
func (b *CandidateBuilder) Build() model.Candidate {
	c := b.c
	c.Skills = append([]string(nil), b.c.Skills...)
	return c
}

// OpportunityBuilder provides a fluent interface for constructing test opportunities.
type OpportunityBuilder struct {
	o model.Opportunity
}

// NewOpportunity starts a technology opportunity in Delhi.
func NewOpportunity(id int64) *OpportunityBuilder {
	return &OpportunityBuilder{o: model.Opportunity{
		ID:                     id,
		Company:                fmt.Sprintf("Company %d", id),
		Title:                  fmt.Sprintf("Intern %d", id),
		Location:               "Delhi",
		Sector:                 "Technology",
		Capacity:               5,
		PreferredQualification: "B.Tech/MCA",
		Stipend:                20000,
		Duration:               "3 months",
		Type:                   "Full-time",
	}}
}

// WithTitle sets the company and title.
func (b *OpportunityBuilder) WithTitle(company, title string) *OpportunityBuilder {
	b.o.Company = company
	b.o.Title = title
	return b
}

// WithSkills sets the required skills.
func (b *OpportunityBuilder) WithSkills(skills ...string) *OpportunityBuilder {
	b.o.RequiredSkills = skills
	return b
}

// WithLocation sets the location.
func (b *OpportunityBuilder) WithLocation(location string) *OpportunityBuilder {
	b.o.Location = location
	return b
}

// WithSector sets the sector.
func (b *OpportunityBuilder) WithSector(sector string) *OpportunityBuilder {
	b.o.Sector = sector
	return b
}

// WithCapacity sets the capacity.
func (b *OpportunityBuilder) WithCapacity(capacity int) *OpportunityBuilder {
	b.o.Capacity = capacity
	return b
}

// WithStipend sets the stipend.
func (b *OpportunityBuilder) WithStipend(stipend int) *OpportunityBuilder {
	b.o.Stipend = stipend
	return b
}

// Build returns the opportunity.
func (b *OpportunityBuilder) Build() model.Opportunity {
	o := b.o
	o.RequiredSkills = append([]string(nil), b.o.RequiredSkills...)
	return o
}
