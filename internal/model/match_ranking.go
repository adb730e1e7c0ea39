package model

import (
	"fmt"
	"sort"
)

// Matches is a slice of Match that supports ranking.
type Matches []Match

// Len implements sort.Interface.
func (m Matches) Len() int {
	return len(m)
}

// Less implements sort.Interface - higher scores come first.
func (m Matches) Less(i, j int) bool {
	return m[i].Score > m[j].Score
}

// Swap implements sort.Interface.
func (m Matches) Swap(i, j int) {
	m[i], m[j] = m[j], m[i]
}

// Sort orders the matches by score descending. Equal scores keep their
// current relative order.
func (m Matches) Sort() {
	sort.Stable(m)
}

// TopN sorts the matches and returns a copy of the N highest-scoring ones.
func (m Matches) TopN(n int) Matches {
	if n <= 0 {
		return Matches{}
	}

	m.Sort()

	if n > len(m) {
		n = len(m)
	}

	result := make(Matches, n)
	copy(result, m[:n])
	return result
}

// ByStatus returns the matches with the given status, order preserved.
func (m Matches) ByStatus(status Status) Matches {
	var result Matches
	for _, match := range m {
		if match.Status == status {
			result = append(result, match)
		}
	}
	return result
}

// Validate ensures every match is in range and no pairing appears twice.
func (m Matches) Validate() error {
	type pair struct{ c, o int64 }
	seen := make(map[pair]bool, len(m))

	for i, match := range m {
		if match.Score < 0 || match.Score > 100 {
			return fmt.Errorf("invalid match at index %d: score must be between 0 and 100, got %.1f", i, match.Score)
		}
		p := pair{match.CandidateID, match.OpportunityID}
		if seen[p] {
			return fmt.Errorf("duplicate match for candidate %d and opportunity %d", p.c, p.o)
		}
		seen[p] = true
	}

	return nil
}
