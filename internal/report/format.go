package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/cli"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"
)

var rupees = message.NewPrinter(language.MustParse("en-IN"))

var statusIcons = map[model.Status]string{
	model.StatusExcellent: "🌟",
	model.StatusGood:      "👍",
	model.StatusFair:      "⚠️",
}

// FormatRupees renders an amount with Indian digit grouping.
func FormatRupees(amount float64) string {
	return rupees.Sprintf("₹%.0f", amount)
}

// FormatTopMatches renders the first limit rows with their score breakdown.
// A limit of zero or less renders every row.
func FormatTopMatches(rows []service.ReportRow, limit int) string {
	if limit <= 0 || limit > len(rows) {
		limit = len(rows)
	}

	titleCase := cases.Title(language.English)

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Top Matches"))
	b.WriteString("\n")

	for i, row := range rows[:limit] {
		status := statusStyle(row.Status).Render(fmt.Sprintf("%s MATCH SCORE: %.1f%%", statusIcons[row.Status], row.Score))
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, status)
		fmt.Fprintf(&b, "   👤 %s (%s)\n", cli.BoldStyle.Render(row.CandidateName), row.CandidateQualification)
		fmt.Fprintf(&b, "   🏢 %s at %s\n", row.Title, row.Company)
		fmt.Fprintf(&b, "   📍 %s → %s\n", row.CandidateLocation, row.OpportunityLocation)
		fmt.Fprintf(&b, "   💰 %s/month • %s\n", FormatRupees(float64(row.Stipend)), row.Duration)
		b.WriteString("   📊 Score Breakdown:\n")
		for _, factor := range model.FactorOrder {
			fmt.Fprintf(&b, "      • %s: %.1f\n", titleCase.String(factor), row.Factors[factor])
		}
		b.WriteString(cli.SubtleStyle.Render(strings.Repeat("-", 60)))
		b.WriteString("\n")
	}

	return b.String()
}

func statusStyle(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusExcellent:
		return cli.SuccessStyle
	case model.StatusGood:
		return cli.InfoStyle
	default:
		return cli.WarningStyle
	}
}

// FormatCandidateAnalytics renders candidate distributions.
func FormatCandidateAnalytics(a CandidateAnalytics) string {
	var b strings.Builder
	b.WriteString(cli.FormatTitle("Candidate Analytics"))
	b.WriteString("\n")

	writeDistribution(&b, "📋 Category Distribution", a.ByCategory, "")
	writeDistribution(&b, "🏭 Sector Distribution", a.BySector, "")
	writeDistribution(&b, "📍 Location Distribution", a.ByLocation, "")

	fmt.Fprintf(&b, "\n📚 Average CGPA: %.2f\n", a.AverageCGPA)
	fmt.Fprintf(&b, "🆕 First-time candidates: %d/%d\n", a.FirstTime, a.Total)
	return b.String()
}

// FormatOpportunityAnalytics renders capacity distributions.
func FormatOpportunityAnalytics(a OpportunityAnalytics) string {
	var b strings.Builder
	b.WriteString(cli.FormatTitle("Opportunity Analytics"))
	b.WriteString("\n")

	fmt.Fprintf(&b, "📊 Total Capacity: %d positions\n", a.TotalCapacity)
	writeDistribution(&b, "🏭 Sector-wise Capacity", a.CapacityBySector, " positions")
	writeDistribution(&b, "📍 Location-wise Capacity", a.CapacityByLocation, " positions")

	fmt.Fprintf(&b, "\n💰 Average Stipend: %s/month\n", FormatRupees(a.AverageStipend))
	return b.String()
}

func writeDistribution(b *strings.Builder, title string, d Distribution, unit string) {
	fmt.Fprintf(b, "\n%s:\n", cli.BoldStyle.Render(title))
	if len(d) == 0 {
		fmt.Fprintf(b, "   %s\n", cli.SubtleStyle.Render("(none)"))
		return
	}
	for _, c := range d {
		fmt.Fprintf(b, "   %s: %d%s\n", c.Key, c.Value, unit)
	}
}
