package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelate(t *testing.T) {
	groups := DefaultSkillGroups()

	tests := []struct {
		name string
		a    string
		b    string
		want Relatedness
	}{
		{name: "identical", a: "Python", b: "Python", want: RelatednessExact},
		{name: "case insensitive", a: "python", b: "PYTHON", want: RelatednessExact},
		{name: "substring of the other", a: "Java", b: "JavaScript", want: RelatednessPartial},
		{name: "superstring of the other", a: "Data Analysis", b: "Analysis", want: RelatednessPartial},
		{name: "same data group", a: "SQL", b: "Data Science", want: RelatednessGrouped},
		{name: "same finance group", a: "Excel", b: "Financial Modeling", want: RelatednessGrouped},
		{name: "same design group any case", a: "FIGMA", b: "prototyping", want: RelatednessGrouped},
		{name: "different groups", a: "Python", b: "Figma", want: RelatednessNone},
		{name: "ungrouped label", a: "Machine Learning", b: "Python", want: RelatednessNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Relate(tt.a, tt.b, groups))
			assert.Equal(t, tt.want, Relate(tt.b, tt.a, groups), "relatedness is symmetric")
		})
	}
}

func TestRelate_GroupsArePassedIn(t *testing.T) {
	custom := SkillGroups{"ops": {"kubernetes", "terraform"}}

	assert.Equal(t, RelatednessGrouped, Relate("Kubernetes", "Terraform", custom))
	assert.Equal(t, RelatednessNone, Relate("SQL", "Data Science", custom))
}

func TestRelatedness_Credit(t *testing.T) {
	assert.InDelta(t, 1.0, RelatednessExact.Credit(), 1e-9)
	assert.InDelta(t, 0.7, RelatednessPartial.Credit(), 1e-9)
	assert.InDelta(t, 0.5, RelatednessGrouped.Credit(), 1e-9)
	assert.InDelta(t, 0.0, RelatednessNone.Credit(), 1e-9)
	assert.Equal(t, "partial", RelatednessPartial.String())
}
