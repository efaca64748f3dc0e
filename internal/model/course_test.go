package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in, code, dept, number string
	}{
		{"PHY 543", "PHY 543", "PHY", "543"},
		{"phy543", "PHY 543", "PHY", "543"},
		{"  EAS   520 ", "EAS 520", "EAS", "520"},
		{"MTH 573H", "MTH 573H", "MTH", "573"},
		{"EAS", "EAS", "EAS", ""},
		{"Thesis", "THESIS", "THESIS", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.code, NormalizeCode(tt.in))
			assert.Equal(t, tt.dept, DepartmentOf(tt.in))
			assert.Equal(t, tt.number, NumberOf(tt.in))
		})
	}
}

func TestCourseRecord_Level(t *testing.T) {
	assert.Equal(t, 543, CourseRecord{Code: "PHY 543"}.Level())
	assert.Equal(t, 412, CourseRecord{Code: "PHY 412L"}.Level())
	assert.Equal(t, -1, CourseRecord{Code: "SEMINAR"}.Level())
}

func TestParseClassification(t *testing.T) {
	tests := []struct {
		label string
		want  Classification
		ok    bool
	}{
		{"Core", ClassCore, true},
		{"Core (Transfer)", ClassCore, true},
		{" Research ", ClassResearch, true},
		{"Excluded", ClassExcluded, true},
		{"core", "", false},
		{"Invalid", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseClassification(tt.label)
		assert.Equal(t, tt.ok, ok, tt.label)
		assert.Equal(t, tt.want, got, tt.label)
	}
}

func TestCourseRecord_ClassificationLabel(t *testing.T) {
	r := CourseRecord{Classification: ClassElective}
	assert.Equal(t, "Elective", r.ClassificationLabel())
	assert.False(t, r.HasWarnings())

	r.IsTransfer = true
	r.Warnings = []string{"x"}
	assert.Equal(t, "Elective (Transfer)", r.ClassificationLabel())
	assert.True(t, r.HasWarnings())
}
