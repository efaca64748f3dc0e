package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Veraticus/gradcert/internal/model"
)

// SummaryFileName is the batch summary written next to the ledgers.
const SummaryFileName = "certification_summary.csv"

var summaryHeader = []string{
	"Student Name",
	"Student ID",
	"Source",
	"Core Credits",
	"Research Applied",
	"400-Level Applied",
	"Total Credits",
	"Certification",
	"Reason",
}

// SummaryRow is one transcript's line in the batch summary.
type SummaryRow struct {
	StudentName     string
	StudentID       string
	Source          string
	Reason          string
	Core            float64
	ResearchApplied float64
	LevelApplied    float64
	TotalApplied    float64
	Certified       bool
}

// NewSummaryRow summarizes a certified transcript.
func NewSummaryRow(doc *model.TranscriptDocument, verdict model.CertificationVerdict) SummaryRow {
	return SummaryRow{
		StudentName:     doc.StudentName,
		StudentID:       doc.StudentID,
		Source:          doc.Source,
		Reason:          verdict.Reason,
		Core:            verdict.Totals.Core,
		ResearchApplied: verdict.Totals.ResearchApplied,
		LevelApplied:    verdict.Totals.LevelApplied,
		TotalApplied:    verdict.Totals.TotalApplied,
		Certified:       verdict.Passed(),
	}
}

// WriteSummary writes the batch summary CSV.
func WriteSummary(w io.Writer, rows []SummaryRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(summaryHeader); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.StudentName,
			r.StudentID,
			r.Source,
			formatCredits(r.Core),
			formatCredits(r.ResearchApplied),
			formatCredits(r.LevelApplied),
			formatCredits(r.TotalApplied),
			certificationLabel(r.Certified),
			r.Reason,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write summary row for %s: %w", r.Source, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush summary: %w", err)
	}
	return nil
}

// ReadSummary parses a summary CSV written by WriteSummary.
func ReadSummary(r io.Reader) ([]SummaryRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(summaryHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}
	if len(records) == 0 || records[0][0] != summaryHeader[0] {
		return nil, fmt.Errorf("%w: missing summary header", ErrMalformedLedger)
	}

	rows := make([]SummaryRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		var values [4]float64
		for j := range values {
			v, err := parseCredits(rec[3+j])
			if err != nil {
				return nil, fmt.Errorf("%w: summary line %d: %w", ErrMalformedLedger, i+2, err)
			}
			values[j] = v
		}
		rows = append(rows, SummaryRow{
			StudentName:     rec[0],
			StudentID:       rec[1],
			Source:          rec[2],
			Core:            values[0],
			ResearchApplied: values[1],
			LevelApplied:    values[2],
			TotalApplied:    values[3],
			Certified:       rec[7] == certPassed,
			Reason:          rec[8],
		})
	}
	return rows, nil
}
