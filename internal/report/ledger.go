// Package report writes certification results: the per-student ledger CSV, the batch
// summary CSV and the terminal report.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/Veraticus/gradcert/internal/model"
)

// Ledger row labels.
const (
	labelPreparedBy    = "Prepared by"
	labelStudentName   = "Student Name"
	labelStudentID     = "Student ID"
	labelTotalApplied  = "Total Credits Applied"
	labelRequirement   = "Requirement"
	labelCertification = "Certification"

	certPassed = "Passed"
	certFailed = "Failed"
)

var (
	courseHeader      = []string{"Semester", "Course Code", "Title", "Credits", "Classification", "Grade"}
	requirementHeader = []string{labelRequirement, "Value", "Threshold", "Status"}

	// ErrMalformedLedger is returned when a ledger file does not have the expected sections.
	ErrMalformedLedger = errors.New("malformed ledger")
)

// classOrder is the ledger's grouping order.
var classOrder = map[model.Classification]int{
	model.ClassCore:     0,
	model.ClassElective: 1,
	model.ClassResearch: 2,
	model.ClassExcluded: 3,
}

// Ledger is the per-student course ledger with its certification checklist.
type Ledger struct {
	PreparedBy   string
	StudentName  string
	StudentID    string
	Reason       string
	Records      []model.CourseRecord
	Requirements []model.RequirementResult
	TotalApplied float64
	Certified    bool
}

// NewLedger builds the ledger for a certified transcript. Rows are the certification
// scope grouped by classification, document order within a group.
func NewLedger(doc *model.TranscriptDocument, verdict model.CertificationVerdict, preparedBy string) Ledger {
	records := doc.Scope()
	sort.SliceStable(records, func(i, j int) bool {
		return classOrder[records[i].Classification] < classOrder[records[j].Classification]
	})

	return Ledger{
		PreparedBy:   preparedBy,
		StudentName:  doc.StudentName,
		StudentID:    doc.StudentID,
		Records:      records,
		Requirements: verdict.Requirements,
		TotalApplied: verdict.Totals.TotalApplied,
		Certified:    verdict.Passed(),
		Reason:       verdict.Reason,
	}
}

// WriteLedger writes the ledger CSV.
func WriteLedger(w io.Writer, l Ledger) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{labelPreparedBy, l.PreparedBy},
		{labelStudentName, l.StudentName},
		{labelStudentID, quoteID(l.StudentID)},
		courseHeader,
	}
	for _, r := range l.Records {
		rows = append(rows, []string{
			r.Semester,
			r.Code,
			r.Title,
			formatCredits(r.CreditsEarned),
			r.ClassificationLabel(),
			r.Grade,
		})
	}
	rows = append(rows, []string{"", "", labelTotalApplied, formatCredits(l.TotalApplied), "", ""})

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write ledger courses: %w", err)
	}

	// csv.Writer cannot emit an empty record.
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}

	rows = [][]string{requirementHeader}
	for _, req := range l.Requirements {
		rows = append(rows, []string{
			req.Label,
			formatCredits(req.Achieved),
			formatCredits(req.Threshold),
			string(req.Status),
		})
	}
	rows = append(rows, []string{labelCertification, certificationLabel(l.Certified), l.Reason})

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write ledger requirements: %w", err)
	}
	return nil
}

// ReadLedger parses a ledger CSV written by WriteLedger.
func ReadLedger(r io.Reader) (Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return Ledger{}, fmt.Errorf("failed to read ledger: %w", err)
	}

	var l Ledger
	section := "header"

	for i, row := range rows {
		line := i + 1
		switch section {
		case "header":
			switch row[0] {
			case labelPreparedBy:
				l.PreparedBy = cell(row, 1)
			case labelStudentName:
				l.StudentName = cell(row, 1)
			case labelStudentID:
				l.StudentID = unquoteID(cell(row, 1))
			case courseHeader[0]:
				section = "courses"
			default:
				return Ledger{}, fmt.Errorf("%w: line %d: unexpected header row %q", ErrMalformedLedger, line, row[0])
			}

		case "courses":
			if cell(row, 2) == labelTotalApplied && row[0] == "" {
				total, err := parseCredits(cell(row, 3))
				if err != nil {
					return Ledger{}, fmt.Errorf("%w: line %d: %w", ErrMalformedLedger, line, err)
				}
				l.TotalApplied = total
				section = "gap"
				continue
			}
			rec, err := parseCourseRow(row)
			if err != nil {
				return Ledger{}, fmt.Errorf("%w: line %d: %w", ErrMalformedLedger, line, err)
			}
			l.Records = append(l.Records, rec)

		case "gap":
			if row[0] != labelRequirement {
				return Ledger{}, fmt.Errorf("%w: line %d: expected requirement header", ErrMalformedLedger, line)
			}
			section = "requirements"

		case "requirements":
			if row[0] == labelCertification {
				l.Certified = cell(row, 1) == certPassed
				l.Reason = cell(row, 2)
				section = "done"
				continue
			}
			req, err := parseRequirementRow(row)
			if err != nil {
				return Ledger{}, fmt.Errorf("%w: line %d: %w", ErrMalformedLedger, line, err)
			}
			l.Requirements = append(l.Requirements, req)

		case "done":
			return Ledger{}, fmt.Errorf("%w: line %d: content after certification row", ErrMalformedLedger, line)
		}
	}

	if section != "done" {
		return Ledger{}, fmt.Errorf("%w: missing certification row", ErrMalformedLedger)
	}
	return l, nil
}

func parseCourseRow(row []string) (model.CourseRecord, error) {
	if len(row) < len(courseHeader) {
		return model.CourseRecord{}, fmt.Errorf("course row has %d fields, want %d", len(row), len(courseHeader))
	}

	credits, err := parseCredits(row[3])
	if err != nil {
		return model.CourseRecord{}, err
	}
	class, ok := model.ParseClassification(row[4])
	if !ok {
		return model.CourseRecord{}, fmt.Errorf("unknown classification %q", row[4])
	}

	code := model.NormalizeCode(row[1])
	return model.CourseRecord{
		Semester:         row[0],
		Code:             code,
		Title:            row[2],
		CreditsAttempted: credits,
		CreditsEarned:    credits,
		Classification:   class,
		Grade:            row[5],
		Department:       model.DepartmentOf(code),
		IsTransfer:       strings.HasSuffix(row[4], model.TransferSuffix),
	}, nil
}

func parseRequirementRow(row []string) (model.RequirementResult, error) {
	if len(row) < len(requirementHeader) {
		return model.RequirementResult{}, fmt.Errorf("requirement row has %d fields, want %d", len(row), len(requirementHeader))
	}

	achieved, err := parseCredits(row[1])
	if err != nil {
		return model.RequirementResult{}, err
	}
	threshold, err := parseCredits(row[2])
	if err != nil {
		return model.RequirementResult{}, err
	}

	status := model.Status(row[3])
	if status != model.StatusVerified && status != model.StatusFailed {
		return model.RequirementResult{}, fmt.Errorf("unknown status %q", row[3])
	}

	return model.RequirementResult{
		Label:     row[0],
		Achieved:  achieved,
		Threshold: threshold,
		Status:    status,
	}, nil
}

// LedgerFileName names a student's ledger: first initial plus last name, then the
// program, lower case. Without a usable name the transcript's base name is used.
func LedgerFileName(doc *model.TranscriptDocument, program string) string {
	stem := studentStem(doc.StudentName)
	if stem == "" {
		base := filepath.Base(doc.Source)
		stem = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if stem == "" || stem == "." {
		stem = "transcript"
	}
	return strings.ToLower(fmt.Sprintf("%s_%s_track.csv", stem, program))
}

func studentStem(name string) string {
	parts := strings.Fields(strings.ToLower(name))
	if len(parts) == 0 {
		return ""
	}

	first := []rune(strings.TrimFunc(parts[0], unicode.IsPunct))
	if len(first) == 0 {
		return ""
	}

	// The last purely alphabetic word, so trailing digits are skipped.
	last := ""
	for i := len(parts) - 1; i >= 0; i-- {
		word := strings.TrimFunc(parts[i], unicode.IsPunct)
		if word != "" && strings.IndexFunc(word, func(r rune) bool { return !unicode.IsLetter(r) }) < 0 {
			last = word
			break
		}
	}
	if last == "" {
		last = strings.TrimFunc(parts[len(parts)-1], unicode.IsPunct)
	}

	return string(first[0]) + last
}

// quoteID keeps spreadsheets from reading the ID as a number.
func quoteID(id string) string {
	return `="` + id + `"`
}

func unquoteID(s string) string {
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		return s[2 : len(s)-1]
	}
	return s
}

func certificationLabel(passed bool) string {
	if passed {
		return certPassed
	}
	return certFailed
}

func formatCredits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseCredits(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid credits %q: %w", s, err)
	}
	return v, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
