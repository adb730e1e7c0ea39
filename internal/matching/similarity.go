// Package matching scores a candidate against an opportunity.
//
// Every factor scorer is a pure function of its inputs and a Config value.
// Nothing in this package reads configuration files or global state, so the
// same Config always yields the same score.
package matching

import (
	"slices"
	"strings"
)

// Relatedness is how closely two skill labels match.
type Relatedness int

// Relatedness levels, weakest first.
const (
	RelatednessNone Relatedness = iota
	RelatednessGrouped
	RelatednessPartial
	RelatednessExact
)

// String returns the lower-case name of the level.
func (r Relatedness) String() string {
	switch r {
	case RelatednessExact:
		return "exact"
	case RelatednessPartial:
		return "partial"
	case RelatednessGrouped:
		return "grouped"
	default:
		return "none"
	}
}

// Credit is the skills-factor contribution of one relatedness level.
func (r Relatedness) Credit() float64 {
	switch r {
	case RelatednessExact:
		return 1.0
	case RelatednessPartial:
		return 0.7
	case RelatednessGrouped:
		return 0.5
	default:
		return 0
	}
}

// SkillGroups maps a domain group name to its lower-case member labels.
type SkillGroups map[string][]string

// DefaultSkillGroups returns the built-in domain group table.
func DefaultSkillGroups() SkillGroups {
	return SkillGroups{
		"programming": {"python", "java", "javascript", "c++", "coding", "programming"},
		"data":        {"data analysis", "analytics", "sql", "database", "data science"},
		"design":      {"ui/ux", "figma", "photoshop", "design", "prototyping"},
		"marketing":   {"marketing", "social media", "content writing", "seo"},
		"finance":     {"finance", "accounting", "excel", "financial modeling"},
	}
}

// sameGroup reports whether both lower-case labels belong to one group.
func (g SkillGroups) sameGroup(a, b string) bool {
	for _, members := range g {
		if slices.Contains(members, a) && slices.Contains(members, b) {
			return true
		}
	}
	return false
}

// Relate classifies two skill labels. Comparison is case-insensitive.
func Relate(a, b string, groups SkillGroups) Relatedness {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	switch {
	case a == b:
		return RelatednessExact
	case strings.Contains(a, b) || strings.Contains(b, a):
		return RelatednessPartial
	case groups.sameGroup(a, b):
		return RelatednessGrouped
	default:
		return RelatednessNone
	}
}
