package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscriptDocument_Scope(t *testing.T) {
	records := []CourseRecord{
		{Code: "PHY 151", Semester: "F19"},
		{Code: "PHY 571", IsTransfer: true, Grade: TransferGrade},
		{Code: "PHY 572", IsTransfer: true, Grade: TransferGrade},
		{Code: "PHY 543", Semester: "F23"},
		{Code: "PHY 690", Semester: "S24"},
	}

	tests := []struct {
		name     string
		boundary *int
		want     []string
	}{
		{"no boundary", nil, nil},
		{"boundary out of range", intPtr(5), nil},
		{"negative boundary", intPtr(-1), nil},
		{"transfer run included", intPtr(3), []string{"PHY 571", "PHY 572", "PHY 543", "PHY 690"}},
		{"boundary at start", intPtr(0), []string{"PHY 151", "PHY 571", "PHY 572", "PHY 543", "PHY 690"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &TranscriptDocument{Records: records, GraduateBoundary: tt.boundary}

			var got []string
			for _, r := range doc.Scope() {
				got = append(got, r.Code)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != nil, doc.HasGraduateRecord())
		})
	}
}

func TestTranscriptDocument_ScopeSpansTransferBlockAnomaly(t *testing.T) {
	doc := &TranscriptDocument{
		Records: []CourseRecord{
			{Code: "PHY 151", Semester: "F19"},
			{Code: "PHY 530", IsTransfer: true, InTransferBlock: true, Grade: TransferGrade},
			{Code: "PHY 531", IsTransfer: true, InTransferBlock: true, Grade: TransferGrade},
			{Code: "PHY 532", InTransferBlock: true, Grade: "B"},
			{Code: "PHY 543", Semester: "F23"},
		},
		GraduateBoundary: intPtr(4),
	}

	var got []string
	for _, r := range doc.Scope() {
		got = append(got, r.Code)
	}
	assert.Equal(t, []string{"PHY 530", "PHY 531", "PHY 532", "PHY 543"}, got)
}

func TestTranscriptDocument_ScopeIsACopy(t *testing.T) {
	doc := &TranscriptDocument{
		Records:          []CourseRecord{{Code: "PHY 543"}},
		GraduateBoundary: intPtr(0),
	}

	doc.Scope()[0].Code = "PHY 999"
	assert.Equal(t, "PHY 543", doc.Records[0].Code)

	doc.AddDiagnostic("one")
	doc.AddDiagnostic("two")
	assert.Equal(t, []string{"one", "two"}, doc.Diagnostics)
}

func TestCertificationVerdict_Requirement(t *testing.T) {
	v := CertificationVerdict{
		Overall: OutcomePass,
		Requirements: []RequirementResult{
			{ID: RequirementCore, Status: StatusVerified},
			{ID: RequirementTotal, Status: StatusFailed},
		},
	}

	assert.True(t, v.Passed())

	r, ok := v.Requirement(RequirementTotal)
	assert.True(t, ok)
	assert.False(t, r.Verified())

	_, ok = v.Requirement(RequirementResearch)
	assert.False(t, ok)
}

func intPtr(i int) *int { return &i }
