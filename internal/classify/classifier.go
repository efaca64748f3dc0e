// Package classify assigns certification buckets to parsed course records.
package classify

import (
	"github.com/Veraticus/gradcert/internal/model"
	"github.com/Veraticus/gradcert/internal/policy"
	"github.com/Veraticus/gradcert/internal/tokenizer"
)

// Rule is one step of the classification order.
type Rule struct {
	Match          func(p *policy.Policy, code string) bool
	Name           string
	Classification model.Classification
}

// Rules returns the classification order. The first matching rule wins.
func Rules() []Rule {
	return []Rule{
		{
			Name:           "unapproved department",
			Classification: model.ClassExcluded,
			Match: func(p *policy.Policy, code string) bool {
				return !p.IsHome(model.DepartmentOf(code)) && !p.IsWhitelisted(code)
			},
		},
		{
			Name:           "research course",
			Classification: model.ClassResearch,
			Match: func(p *policy.Policy, code string) bool {
				return p.IsResearch(code)
			},
		},
		{
			Name:           "non-core elective",
			Classification: model.ClassElective,
			Match: func(p *policy.Policy, code string) bool {
				return p.IsElective(code)
			},
		},
		{
			// Core is reserved for the home department.
			Name:           "approved external course",
			Classification: model.ClassElective,
			Match: func(p *policy.Policy, code string) bool {
				return !p.IsHome(model.DepartmentOf(code))
			},
		},
	}
}

// Classifier applies a policy's rules to course codes.
type Classifier struct {
	policy *policy.Policy
	rules  []Rule
}

// New creates a classifier for the given policy.
func New(p *policy.Policy) *Classifier {
	return &Classifier{
		policy: p,
		rules:  Rules(),
	}
}

// Policy returns the policy the classifier was built with.
func (c *Classifier) Policy() *policy.Policy {
	return c.policy
}

// Classify returns the bucket for a course code and the name of the rule that chose it.
// It depends only on the normalized code and the policy.
func (c *Classifier) Classify(code string) (model.Classification, string) {
	code = model.NormalizeCode(code)
	for _, rule := range c.rules {
		if rule.Match(c.policy, code) {
			return rule.Classification, rule.Name
		}
	}
	return model.ClassCore, "home department"
}

// Record builds a classified course record from tokenizer fields.
func (c *Classifier) Record(fields tokenizer.Fields, page, column int) model.CourseRecord {
	code := model.NormalizeCode(fields.Code)
	class, _ := c.Classify(code)

	return model.CourseRecord{
		Code:             code,
		Title:            fields.Title,
		Grade:            fields.Grade,
		Department:       model.DepartmentOf(code),
		Classification:   class,
		CreditsAttempted: nonNegative(fields.CreditsAttempted),
		CreditsEarned:    nonNegative(fields.CreditsEarned),
		QualityPoints:    nonNegative(fields.QualityPoints),
		Page:             page,
		Column:           column,
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
