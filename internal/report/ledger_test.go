package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/gradcert/internal/certify"
	"github.com/Veraticus/gradcert/internal/classify"
	"github.com/Veraticus/gradcert/internal/model"
	"github.com/Veraticus/gradcert/internal/policy"
)

func record(p *policy.Policy, semester, code, title string, credits float64, grade string) model.CourseRecord {
	class, _ := classify.New(p).Classify(code)
	code = model.NormalizeCode(code)
	return model.CourseRecord{
		Semester:         semester,
		Code:             code,
		Title:            title,
		Grade:            grade,
		Department:       model.DepartmentOf(code),
		Classification:   class,
		CreditsAttempted: credits,
		CreditsEarned:    credits,
	}
}

// certified returns a document with an undergraduate record, a transfer course and a
// graduate record, evaluated against the default policy.
func certified(t *testing.T) (*model.TranscriptDocument, model.CertificationVerdict) {
	t.Helper()
	p := policy.Default()

	transfer := record(p, "", "PHY 571", "Statistical Mechan", 3, "T")
	transfer.IsTransfer = true

	records := []model.CourseRecord{
		record(p, "F19", "PHY 151", "General Physics I", 4, "A"),
		transfer,
		record(p, "F23", "PHY 543", "Quantum Mechanics I", 3, "A"),
		record(p, "F23", "PHY 412", "Elec & Magnt Fields", 3, "B+"),
		record(p, "S24", "PHY 690", "Graduate Thesis", 6, "A"),
		record(p, "S24", "PHY 544", "Quantum Mechanics II", 3, "A-"),
		record(p, "S24", "EAS 520", "Earth System Science", 3, "A"),
		record(p, "F24", "BIO 520", "Advanced Biology", 3, "A"),
		record(p, "F24", "PHY 521", "Electrodynamics I", 3, "A"),
		record(p, "F24", "PHY 522", "Electrodynamics II", 3, "A"),
		record(p, "F24", "PHY 510", "Mathematical Methods", 3, "A"),
	}
	boundary := 2
	doc := &model.TranscriptDocument{
		StudentName:      "Ada M. Lovelace",
		StudentID:        "00123456",
		Source:           "transcripts/ada.pdf",
		Records:          records,
		GraduateBoundary: &boundary,
		PageCount:        2,
	}
	return doc, certify.New(p).Evaluate(doc)
}

func TestWriteLedger_Layout(t *testing.T) {
	doc, verdict := certified(t)
	var buf bytes.Buffer

	require.NoError(t, WriteLedger(&buf, NewLedger(doc, verdict, "Robert Fisher")))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "Prepared by,Robert Fisher", lines[0])
	assert.Equal(t, "Student Name,Ada M. Lovelace", lines[1])
	assert.Equal(t, `Student ID,"=""00123456"""`, lines[2])
	assert.Equal(t, "Semester,Course Code,Title,Credits,Classification,Grade", lines[3])
	assert.Equal(t, ",PHY 571,Statistical Mechan,3,Core (Transfer),T", lines[4])
	assert.Contains(t, buf.String(), ",,Total Credits Applied,30,,\n\nRequirement,Value,Threshold,Status\n")
	assert.Contains(t, buf.String(), "≥15 Core Credits,15,15,Verified\n")
	assert.NotContains(t, buf.String(), "PHY 151", "undergraduate records stay out of the ledger")
}

func TestNewLedger_GroupsByClassification(t *testing.T) {
	doc, verdict := certified(t)

	l := NewLedger(doc, verdict, "")

	var order []string
	for _, r := range l.Records {
		order = append(order, r.Code)
	}
	assert.Equal(t, []string{
		"PHY 571", "PHY 543", "PHY 412", "PHY 544", "PHY 521", "PHY 522",
		"EAS 520", "PHY 510",
		"PHY 690",
		"BIO 520",
	}, order)
}

func TestLedger_RoundTrip(t *testing.T) {
	doc, verdict := certified(t)
	l := NewLedger(doc, verdict, "Robert Fisher")

	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, l))

	got, err := ReadLedger(&buf)
	require.NoError(t, err)

	assert.Equal(t, l.PreparedBy, got.PreparedBy)
	assert.Equal(t, l.StudentName, got.StudentName)
	assert.Equal(t, l.StudentID, got.StudentID)
	assert.Equal(t, l.Certified, got.Certified)
	assert.Equal(t, l.Reason, got.Reason)
	assert.InDelta(t, l.TotalApplied, got.TotalApplied, 1e-9)

	require.Len(t, got.Records, len(l.Records))
	for i, want := range l.Records {
		assert.Equal(t, want.Code, got.Records[i].Code)
		assert.Equal(t, want.Title, got.Records[i].Title)
		assert.Equal(t, want.Semester, got.Records[i].Semester)
		assert.Equal(t, want.Classification, got.Records[i].Classification)
		assert.Equal(t, want.IsTransfer, got.Records[i].IsTransfer)
		assert.Equal(t, want.Grade, got.Records[i].Grade)
		assert.InDelta(t, want.CreditsEarned, got.Records[i].CreditsEarned, 1e-9)
	}

	require.Len(t, got.Requirements, len(l.Requirements))
	for i, want := range l.Requirements {
		assert.Equal(t, want.Label, got.Requirements[i].Label)
		assert.Equal(t, want.Status, got.Requirements[i].Status)
		assert.InDelta(t, want.Achieved, got.Requirements[i].Achieved, 1e-9)
		assert.InDelta(t, want.Threshold, got.Requirements[i].Threshold, 1e-9)
	}

	// The re-read rows carry everything needed to recompute the totals.
	assert.Equal(t, verdict.Totals, certify.Tally(got.Records, policy.Default()))
}

func TestLedger_RoundTripFailedVerdict(t *testing.T) {
	doc, _ := certified(t)
	doc.GraduateBoundary = nil
	verdict := certify.New(policy.Default()).Evaluate(doc)

	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, NewLedger(doc, verdict, "")))

	got, err := ReadLedger(&buf)
	require.NoError(t, err)
	assert.Empty(t, got.Records)
	assert.False(t, got.Certified)
	assert.Contains(t, got.Reason, "Beginning of Graduate Record")
	assert.Len(t, got.Requirements, 4)
}

func TestReadLedger_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "unexpected header",
			input: "Prepared by,X\nSomething,Else\n",
		},
		{
			name:  "bad credits",
			input: "Semester,Course Code,Title,Credits,Classification,Grade\nF23,PHY 543,QM,three,Core,A\n",
		},
		{
			name:  "unknown classification",
			input: "Semester,Course Code,Title,Credits,Classification,Grade\nF23,PHY 543,QM,3,Invalid,A\n",
		},
		{
			name:  "missing requirement header",
			input: "Semester,Course Code,Title,Credits,Classification,Grade\n,,Total Credits Applied,0,,\nCertification,Failed,x\n",
		},
		{
			name:  "missing certification row",
			input: "Semester,Course Code,Title,Credits,Classification,Grade\n,,Total Credits Applied,0,,\n\nRequirement,Value,Threshold,Status\n",
		},
		{
			name:  "unknown status",
			input: "Semester,Course Code,Title,Credits,Classification,Grade\n,,Total Credits Applied,0,,\n\nRequirement,Value,Threshold,Status\nCore,0,15,Not Met\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadLedger(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrMalformedLedger)
		})
	}
}

func TestLedgerFileName(t *testing.T) {
	tests := []struct {
		name    string
		student string
		source  string
		want    string
	}{
		{"first and last", "Ada Lovelace", "a.pdf", "alovelace_ms_phy_track.csv"},
		{"middle initial", "Ada M. Lovelace", "a.pdf", "alovelace_ms_phy_track.csv"},
		{"suffix is the last word", "Grace Hopper Jr.", "a.pdf", "gjr_ms_phy_track.csv"},
		{"digits skipped", "Test Student 001", "a.pdf", "tstudent_ms_phy_track.csv"},
		{"single name", "Cher", "a.pdf", "ccher_ms_phy_track.csv"},
		{"upper case", "ADA LOVELACE", "a.pdf", "alovelace_ms_phy_track.csv"},
		{"missing name uses source", "", "scans/Transcript 7.pdf", "transcript 7_ms_phy_track.csv"},
		{"nothing at all", "", "", "transcript_ms_phy_track.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &model.TranscriptDocument{StudentName: tt.student, Source: tt.source}
			assert.Equal(t, tt.want, LedgerFileName(doc, "ms_phy"))
		})
	}
}

func TestSaveLedger(t *testing.T) {
	doc, verdict := certified(t)
	dir := filepath.Join(t.TempDir(), "nested", "output")

	path, err := SaveLedger(dir, LedgerFileName(doc, "ms_phy"), NewLedger(doc, verdict, ""))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "alovelace_ms_phy_track.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	l, err := ReadLedger(f)
	require.NoError(t, err)
	assert.Equal(t, "00123456", l.StudentID)
}
