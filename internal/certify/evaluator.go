// Package certify evaluates a parsed transcript against a certification policy.
//
// The checklist is fixed and always fully evaluated: core credits, capped research,
// capped lower-level credits, total applied credits, and a structural check that no
// excluded record contributed.
package certify

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/gradcert/internal/common"
	"github.com/Veraticus/gradcert/internal/model"
	"github.com/Veraticus/gradcert/internal/policy"
)

// epsilon absorbs float rounding when comparing credit sums with thresholds.
const epsilon = 1e-9

// Evaluator applies a policy's checklist to transcripts.
type Evaluator struct {
	policy *policy.Policy
}

// New creates an evaluator for the given policy.
func New(p *policy.Policy) *Evaluator {
	return &Evaluator{policy: p}
}

// Evaluate certifies one transcript. It never returns early: every requirement is
// reported even when the graduate boundary is missing.
func (e *Evaluator) Evaluate(doc *model.TranscriptDocument) model.CertificationVerdict {
	scope := doc.Scope()
	t := tally(scope, e.policy)

	verdict := model.CertificationVerdict{
		Totals:       t.totals,
		Requirements: e.requirements(t.totals),
		Diagnostics:  append([]string(nil), doc.Diagnostics...),
	}

	var reasons []string
	if !doc.HasGraduateRecord() {
		reasons = append(reasons, common.ErrNoGraduateRecord.Error())
	}

	if err := t.check(scope); err != nil {
		common.LogError(err, "Certification invariant violated", common.Fields{
			"source":  doc.Source,
			"student": doc.StudentName,
		})
		verdict.Diagnostics = append(verdict.Diagnostics, err.Error())
		reasons = append(reasons, err.Error())
	}

	var failed []string
	for _, r := range verdict.Requirements {
		if !r.Verified() {
			failed = append(failed, r.Label)
		}
	}
	if len(failed) > 0 {
		reasons = append(reasons, "requirements not met: "+strings.Join(failed, ", "))
	}

	verdict.Overall = model.OutcomePass
	if len(reasons) > 0 {
		verdict.Overall = model.OutcomeFail
		verdict.Reason = strings.Join(reasons, "; ")
	}

	common.LogDebug("Evaluated certification", common.Fields{
		"source":  doc.Source,
		"core":    t.totals.Core,
		"total":   t.totals.TotalApplied,
		"outcome": string(verdict.Overall),
	})

	return verdict
}

func (e *Evaluator) requirements(t model.CreditTotals) []model.RequirementResult {
	p := e.policy

	reqs := []model.RequirementResult{
		minimum(model.RequirementCore,
			fmt.Sprintf("≥%s Core Credits", formatCredits(p.CoreMinimum())),
			t.Core, p.CoreMinimum()),
		capped(model.RequirementResearch,
			fmt.Sprintf("≤%s Research Credits Applied", formatCredits(p.ResearchCap())),
			t.ResearchApplied, p.ResearchCap()),
		capped(model.RequirementLevel,
			fmt.Sprintf("≤%s %d-Level Credits Applied", formatCredits(p.LevelCap()), p.MinimumLevel()),
			t.LevelApplied, p.LevelCap()),
		minimum(model.RequirementTotal,
			fmt.Sprintf("≥%s Total Credits", formatCredits(p.TotalMinimum())),
			t.TotalApplied, p.TotalMinimum()),
	}

	if p.FailOnExcluded() {
		reqs = append(reqs, maximum(model.RequirementExcluded,
			"No Unapproved External Courses", t.Excluded, 0))
	}
	return reqs
}

func minimum(id, label string, achieved, threshold float64) model.RequirementResult {
	return result(id, label, model.KindMinimum, achieved, threshold, achieved+epsilon >= threshold)
}

// capped requirements clamp the applied amount, so they only fail if clamping did not hold.
func capped(id, label string, applied, limit float64) model.RequirementResult {
	return result(id, label, model.KindCap, applied, limit, applied <= limit+epsilon)
}

func maximum(id, label string, achieved, threshold float64) model.RequirementResult {
	return result(id, label, model.KindMaximum, achieved, threshold, achieved <= threshold+epsilon)
}

func result(id, label string, kind model.RequirementKind, achieved, threshold float64, ok bool) model.RequirementResult {
	status := model.StatusFailed
	if ok {
		status = model.StatusVerified
	}
	return model.RequirementResult{
		ID:        id,
		Label:     label,
		Kind:      kind,
		Status:    status,
		Achieved:  achieved,
		Threshold: threshold,
	}
}

// formatCredits prints whole credit counts without a fractional part.
func formatCredits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Tally computes the credit breakdown of a certification scope under a policy.
func Tally(records []model.CourseRecord, p *policy.Policy) model.CreditTotals {
	return tally(records, p).totals
}

type tallyResult struct {
	totals model.CreditTotals
	// contributed holds the credits each scope record added to a bucket, by index.
	contributed []float64
}

func tally(records []model.CourseRecord, p *policy.Policy) tallyResult {
	res := tallyResult{contributed: make([]float64, len(records))}
	t := &res.totals

	for i, rec := range records {
		credits := rec.CreditsEarned

		if rec.Classification == model.ClassExcluded {
			t.Excluded += credits
			continue
		}
		level := rec.Level()
		if p.BelowMinimumLevel(level) {
			t.BelowMinimum += credits
			continue
		}

		res.contributed[i] = credits
		if rec.IsTransfer {
			t.Transfer += credits
		}

		switch {
		case p.IsLevelCapped(level):
			t.LevelEarned += credits
		case rec.Classification == model.ClassResearch:
			t.ResearchEarned += credits
		case rec.Classification == model.ClassElective:
			t.Elective += credits
		default:
			t.Core += credits
		}
	}

	t.ResearchApplied = math.Min(t.ResearchEarned, p.ResearchCap())
	t.LevelApplied = math.Min(t.LevelEarned, p.LevelCap())
	t.TotalApplied = t.Core + t.ResearchApplied + t.LevelApplied + t.Elective
	return res
}

// check verifies that no excluded record contributed and that the buckets account for
// every contributed credit.
func (r tallyResult) check(records []model.CourseRecord) error {
	var sum float64
	for i, rec := range records {
		if rec.Classification == model.ClassExcluded && r.contributed[i] != 0 {
			return fmt.Errorf("%w: excluded course %s contributed %s credits",
				common.ErrInvariant, rec.Code, formatCredits(r.contributed[i]))
		}
		sum += r.contributed[i]
	}

	t := r.totals
	buckets := t.Core + t.Elective + t.ResearchEarned + t.LevelEarned
	if math.Abs(buckets-sum) > epsilon {
		return fmt.Errorf("%w: buckets hold %s credits but records contributed %s",
			common.ErrInvariant, formatCredits(buckets), formatCredits(sum))
	}
	return nil
}
