package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRecord marks a snapshot that failed validation.
var ErrInvalidRecord = errors.New("invalid record")

// ValidationError lists every problem found in a snapshot.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d invalid record(s): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRecord
}

// ValidateSnapshot checks all candidates and opportunities and reports every
// offending record at once. It returns nil when the snapshot is usable.
func ValidateSnapshot(candidates []Candidate, opportunities []Opportunity) error {
	var problems []string

	seen := make(map[int64]bool, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if err := c.Validate(); err != nil {
			problems = append(problems, err.Error())
		}
		if seen[c.ID] {
			problems = append(problems, fmt.Sprintf("candidate %d: duplicate id", c.ID))
		}
		seen[c.ID] = true
	}

	seen = make(map[int64]bool, len(opportunities))
	for i := range opportunities {
		o := &opportunities[i]
		if err := o.Validate(); err != nil {
			problems = append(problems, err.Error())
		}
		if seen[o.ID] {
			problems = append(problems, fmt.Sprintf("opportunity %d: duplicate id", o.ID))
		}
		seen[o.ID] = true
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
