package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"
)

// CSVHeader is the column layout of exported result files.
var CSVHeader = []string{
	"Candidate_Name",
	"Candidate_Qualifications",
	"Candidate_Location",
	"Candidate_Category",
	"Company",
	"Opportunity_Title",
	"Opportunity_Location",
	"Stipend",
	"Duration",
	"Match_Score",
	"Status",
	"Skills_Score",
	"Location_Score",
	"Sector_Score",
	"Diversity_Score",
	"Academic_Score",
}

var csvFactors = []string{
	model.FactorSkills,
	model.FactorLocation,
	model.FactorSector,
	model.FactorDiversity,
	model.FactorAcademic,
}

// CSVWriter is a service.Reporter that writes rows to a file.
type CSVWriter struct {
	Path string
}

// NewCSVWriter returns a writer for path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{Path: path}
}

// Write replaces the file at w.Path with rows. The file is written next to
// its destination and renamed into place.
func (w *CSVWriter) Write(ctx context.Context, rows []service.ReportRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.Path == "" {
		return fmt.Errorf("csv export: empty output path")
	}

	dir := filepath.Dir(w.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.Path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", w.Path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := WriteCSV(tmp, rows); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), w.Path); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.Path, err)
	}
	return nil
}

// WriteCSV writes a header and one record per row.
func WriteCSV(out io.Writer, rows []service.ReportRow) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for i, row := range rows {
		record := []string{
			row.CandidateName,
			row.CandidateQualification,
			row.CandidateLocation,
			row.CandidateCategory,
			row.Company,
			row.Title,
			row.OpportunityLocation,
			strconv.Itoa(row.Stipend),
			row.Duration,
			formatFloat(row.Score),
			string(row.Status),
		}
		for _, factor := range csvFactors {
			record = append(record, formatFloat(row.Factors[factor]))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// formatFloat prints the shortest exact form, always with a decimal point.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
