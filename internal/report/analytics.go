package report

import "github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"

// Count is one entry of a Distribution.
type Count struct {
	Key   string
	Value int
}

// Distribution is a tally in first-seen key order.
type Distribution []Count

func (d Distribution) add(key string, n int) Distribution {
	for i := range d {
		if d[i].Key == key {
			d[i].Value += n
			return d
		}
	}
	return append(d, Count{Key: key, Value: n})
}

// Get returns the tally for key.
func (d Distribution) Get(key string) int {
	for _, c := range d {
		if c.Key == key {
			return c.Value
		}
	}
	return 0
}

// CandidateAnalytics summarizes the candidate pool.
type CandidateAnalytics struct {
	ByCategory  Distribution
	BySector    Distribution
	ByLocation  Distribution
	Total       int
	FirstTime   int
	AverageCGPA float64
}

// OpportunityAnalytics summarizes the open positions.
type OpportunityAnalytics struct {
	CapacityBySector   Distribution
	CapacityByLocation Distribution
	Total              int
	TotalCapacity      int
	AverageStipend     float64
}

// AnalyzeCandidates tallies candidates. Averages of an empty pool are zero.
func AnalyzeCandidates(candidates []model.Candidate) CandidateAnalytics {
	a := CandidateAnalytics{Total: len(candidates)}

	var cgpa float64
	for i := range candidates {
		c := &candidates[i]
		a.ByCategory = a.ByCategory.add(string(c.Category), 1)
		a.BySector = a.BySector.add(c.Sector, 1)
		a.ByLocation = a.ByLocation.add(c.Location, 1)
		cgpa += c.CGPA
		if c.FirstTime() {
			a.FirstTime++
		}
	}

	if a.Total > 0 {
		a.AverageCGPA = cgpa / float64(a.Total)
	}
	return a
}

// AnalyzeOpportunities tallies capacity. Averages of an empty set are zero.
func AnalyzeOpportunities(opportunities []model.Opportunity) OpportunityAnalytics {
	a := OpportunityAnalytics{Total: len(opportunities)}

	var stipend int
	for i := range opportunities {
		o := &opportunities[i]
		a.CapacityBySector = a.CapacityBySector.add(o.Sector, o.Capacity)
		a.CapacityByLocation = a.CapacityByLocation.add(o.Location, o.Capacity)
		a.TotalCapacity += o.Capacity
		stipend += o.Stipend
	}

	if a.Total > 0 {
		a.AverageStipend = float64(stipend) / float64(a.Total)
	}
	return a
}
