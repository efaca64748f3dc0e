package model

// Status is the outcome of a single requirement.
type Status string

// Requirement status constants.
const (
	StatusVerified Status = "Verified"
	StatusFailed   Status = "Failed"
)

// Outcome is the overall certification decision.
type Outcome string

// Outcome constants.
const (
	OutcomePass Outcome = "Pass"
	OutcomeFail Outcome = "Fail"
)

// RequirementKind describes how Achieved is compared against Threshold.
type RequirementKind string

// Requirement kinds.
const (
	KindMinimum RequirementKind = "minimum" // achieved >= threshold
	KindCap     RequirementKind = "cap"     // applied amount is clamped to threshold
	KindMaximum RequirementKind = "maximum" // achieved <= threshold
)

// Requirement identifiers, in evaluation order.
const (
	RequirementCore     = "core_credits"
	RequirementResearch = "research_applied"
	RequirementLevel    = "level_applied"
	RequirementTotal    = "total_credits"
	RequirementExcluded = "unapproved_courses"
)

// RequirementResult is one row of the certification checklist.
type RequirementResult struct {
	ID        string
	Label     string
	Kind      RequirementKind
	Status    Status
	Achieved  float64
	Threshold float64
}

// Verified reports whether the requirement was met.
func (r RequirementResult) Verified() bool {
	return r.Status == StatusVerified
}

// CreditTotals breaks down the credits seen in the certification scope.
type CreditTotals struct {
	Core            float64
	Elective        float64
	ResearchEarned  float64
	ResearchApplied float64
	LevelEarned     float64
	LevelApplied    float64
	Transfer        float64
	Excluded        float64
	BelowMinimum    float64
	TotalApplied    float64
}

// CertificationVerdict is the outcome of evaluating one transcript against a policy.
type CertificationVerdict struct {
	Overall      Outcome
	Reason       string
	Requirements []RequirementResult
	Diagnostics  []string
	Totals       CreditTotals
}

// Passed reports whether the transcript was certified.
func (v CertificationVerdict) Passed() bool {
	return v.Overall == OutcomePass
}

// Requirement looks up a requirement result by ID.
func (v CertificationVerdict) Requirement(id string) (RequirementResult, bool) {
	for _, r := range v.Requirements {
		if r.ID == id {
			return r, true
		}
	}
	return RequirementResult{}, false
}
