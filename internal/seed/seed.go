// Package seed provides the sample records used to bootstrap an empty store.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"
)

// SampleCandidates returns five demo candidates.
func SampleCandidates() []model.Candidate {
	return []model.Candidate{
		{
			ID: 1, Name: "Priya Sharma",
			Skills:         []string{"Python", "Data Analysis", "SQL"},
			Qualifications: "B.Tech CSE", Location: "Delhi", Sector: "Technology",
			Category: model.CategoryGeneral, District: "New Delhi", CGPA: 8.5,
			Experience: "Fresher", Email: "priya@email.com", Phone: "+91-9999999999",
		},
		{
			ID: 2, Name: "Rahul Kumar",
			Skills:         []string{"Marketing", "Content Writing", "Social Media"},
			Qualifications: "MBA Marketing", Location: "Mumbai", Sector: "Marketing",
			Category: model.CategoryOBC, District: "Thane", CGPA: 7.8,
			Experience: "1 year", Email: "rahul@email.com", Phone: "+91-8888888888",
		},
		{
			ID: 3, Name: "Anjali Patel",
			Skills:         []string{"Finance", "Excel", "Financial Modeling"},
			Qualifications: "B.Com", Location: "Ahmedabad", Sector: "Finance",
			Category: model.CategorySC, District: "Sabarkantha", CGPA: 8.2, PastParticipation: true,
			Experience: "Fresher", Email: "anjali@email.com", Phone: "+91-7777777777",
		},
		{
			ID: 4, Name: "Amit Singh",
			Skills:         []string{"Java", "Spring Boot", "Microservices"},
			Qualifications: "MCA", Location: "Bangalore", Sector: "Technology",
			Category: model.CategoryGeneral, District: "Rural Karnataka", CGPA: 9.1,
			Experience: "2 years", Email: "amit@email.com", Phone: "+91-6666666666",
		},
		{
			ID: 5, Name: "Sneha Reddy",
			Skills:         []string{"UI/UX", "Figma", "User Research"},
			Qualifications: "B.Des", Location: "Hyderabad", Sector: "Design",
			Category: model.CategoryST, District: "Adilabad", CGPA: 8.7,
			Experience: "6 months", Email: "sneha@email.com", Phone: "+91-5555555555",
		},
	}
}

// SampleOpportunities returns five demo opportunities.
func SampleOpportunities() []model.Opportunity {
	return []model.Opportunity{
		{
			ID: 1, Company: "TechCorp India", Title: "Data Science Intern",
			RequiredSkills: []string{"Python", "Data Analysis", "Machine Learning"},
			Location:       "Delhi", Sector: "Technology", Capacity: 10,
			PreferredQualification: "B.Tech/MCA", Stipend: 25000, Duration: "6 months", Type: "Full-time",
			Description: "Work on ML projects and data analysis",
		},
		{
			ID: 2, Company: "MarketPro Solutions", Title: "Digital Marketing Intern",
			RequiredSkills: []string{"Marketing", "Content Writing", "Analytics"},
			Location:       "Mumbai", Sector: "Marketing", Capacity: 5,
			PreferredQualification: "MBA/BBA", Stipend: 20000, Duration: "3 months", Type: "Part-time",
			Description: "Digital marketing campaigns and content creation",
		},
		{
			ID: 3, Company: "FinanceHub", Title: "Financial Analyst Intern",
			RequiredSkills: []string{"Finance", "Excel", "Financial Modeling"},
			Location:       "Ahmedabad", Sector: "Finance", Capacity: 8,
			PreferredQualification: "B.Com/MBA Finance", Stipend: 22000, Duration: "4 months", Type: "Full-time",
			Description: "Financial analysis and modeling work",
		},
		{
			ID: 4, Company: "InnovateDesign", Title: "UX Design Intern",
			RequiredSkills: []string{"UI/UX", "Figma", "Prototyping"},
			Location:       "Hyderabad", Sector: "Design", Capacity: 6,
			PreferredQualification: "B.Des/M.Des", Stipend: 18000, Duration: "5 months", Type: "Full-time",
			Description: "User experience design and prototyping",
		},
		{
			ID: 5, Company: "DevSolutions", Title: "Backend Developer Intern",
			RequiredSkills: []string{"Java", "Spring Boot", "Database"},
			Location:       "Bangalore", Sector: "Technology", Capacity: 12,
			PreferredQualification: "B.Tech/MCA", Stipend: 28000, Duration: "6 months", Type: "Full-time",
			Description: "Backend development with Java and Spring Boot",
		},
	}
}

// IfEmpty stores the sample records when the store holds no candidates.
// It reports whether anything was written.
func IfEmpty(ctx context.Context, store service.Storage) (bool, error) {
	counts, err := store.CountRecords(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count records: %w", err)
	}
	if counts.Candidates > 0 {
		return false, nil
	}

	if err := Load(ctx, store); err != nil {
		return false, err
	}
	return true, nil
}

// Load upserts the sample records unconditionally.
func Load(ctx context.Context, store service.Storage) error {
	candidates := SampleCandidates()
	if err := store.SaveCandidates(ctx, candidates); err != nil {
		return fmt.Errorf("failed to seed candidates: %w", err)
	}
	opportunities := SampleOpportunities()
	if err := store.SaveOpportunities(ctx, opportunities); err != nil {
		return fmt.Errorf("failed to seed opportunities: %w", err)
	}

	slog.Info("Seeded sample records",
		"candidates", len(candidates),
		"opportunities", len(opportunities))
	return nil
}
