package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	var out syncBuffer
	p := NewProgress(&out)

	p.Advance("ignored before start")
	p.Finish()
	assert.Empty(t, out.String())

	p.Start(2)
	p.Advance("Priya Sharma")
	p.Advance("Rahul Kumar")
	p.Finish()

	assert.Contains(t, out.String(), "2/2")
}

func TestParsePositive(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "", want: 10},
		{in: "5", want: 5},
		{in: " 25 ", want: 25},
		{in: "0", want: 10},
		{in: "-3", want: 10},
		{in: "ten", want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePositive(tt.in, 10))
		})
	}
}

func TestAnswerHelpers(t *testing.T) {
	assert.True(t, isYes("Y"))
	assert.True(t, isYes(" yes "))
	assert.False(t, isYes("n"))
	assert.False(t, isYes(""))

	assert.Equal(t, "matching_results.csv", orDefault("  ", "matching_results.csv"))
	assert.Equal(t, "out.csv", orDefault(" out.csv ", "matching_results.csv"))
}

func TestFormatHelpers(t *testing.T) {
	var b bytes.Buffer
	b.WriteString(FormatSuccess("done"))
	b.WriteString(FormatError("failed"))
	b.WriteString(FormatTitle("Top Matches"))

	out := b.String()
	assert.True(t, strings.Contains(out, SuccessIcon+" done"))
	assert.True(t, strings.Contains(out, ErrorIcon+" failed"))
	assert.Contains(t, out, TargetIcon+" Top Matches")
}
