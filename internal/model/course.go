// Package model defines the core domain models used throughout the application.
package model

import (
	"regexp"
	"strconv"
	"strings"
)

// Classification is the certification bucket assigned to a course.
type Classification string

// Classification constants.
const (
	ClassCore     Classification = "Core"
	ClassElective Classification = "Elective"
	ClassResearch Classification = "Research"
	ClassExcluded Classification = "Excluded"
)

// TransferGrade is the grade token carried by transfer credit.
const TransferGrade = "T"

// ParseClassification converts a ledger label back into a Classification.
// A trailing "(Transfer)" suffix is ignored.
func ParseClassification(label string) (Classification, bool) {
	label = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(label), TransferSuffix))
	switch Classification(label) {
	case ClassCore, ClassElective, ClassResearch, ClassExcluded:
		return Classification(label), true
	}
	return "", false
}

// TransferSuffix is appended to the classification label of transfer records.
const TransferSuffix = " (Transfer)"

var codeRegex = regexp.MustCompile(`^([A-Z]{2,4})\s*(\d{2,4})([A-Z]?)$`)

// CourseRecord represents one transcript line item.
type CourseRecord struct {
	Semester         string
	Code             string
	Title            string
	Grade            string
	Department       string
	Classification   Classification
	Warnings         []string
	CreditsAttempted float64
	CreditsEarned    float64
	QualityPoints    float64
	Page             int
	Column           int
	IsTransfer       bool
	// InTransferBlock is set on every record read while a transfer block was open,
	// including records whose grade is not a transfer grade.
	InTransferBlock  bool
}

// NormalizeCode upper-cases a course code and collapses the separator to one space.
// Codes that do not look like DEPT NNN are returned trimmed and upper-cased.
func NormalizeCode(code string) string {
	code = strings.ToUpper(strings.Join(strings.Fields(code), " "))
	m := codeRegex.FindStringSubmatch(strings.ReplaceAll(code, " ", ""))
	if m == nil {
		return code
	}
	return m[1] + " " + m[2] + m[3]
}

// DepartmentOf returns the department prefix of a course code.
func DepartmentOf(code string) string {
	code = NormalizeCode(code)
	if i := strings.IndexByte(code, ' '); i > 0 {
		return code[:i]
	}
	return code
}

// NumberOf returns the course number part of a code, without any suffix letter.
func NumberOf(code string) string {
	m := codeRegex.FindStringSubmatch(strings.ReplaceAll(NormalizeCode(code), " ", ""))
	if m == nil {
		return ""
	}
	return m[2]
}

// Level returns the numeric course number, or -1 when the code carries none.
func (c CourseRecord) Level() int {
	n, err := strconv.Atoi(NumberOf(c.Code))
	if err != nil {
		return -1
	}
	return n
}

// ClassificationLabel is the ledger label, with the transfer suffix where it applies.
func (c CourseRecord) ClassificationLabel() string {
	if c.IsTransfer {
		return string(c.Classification) + TransferSuffix
	}
	return string(c.Classification)
}

// HasWarnings reports whether the record carries anomaly annotations.
func (c CourseRecord) HasWarnings() bool {
	return len(c.Warnings) > 0
}
