// Package policy holds the certification rule sets and thresholds for a degree program.
//
// A Policy is built once from a Config and is read-only afterwards; the classifier and
// the evaluator receive it explicitly.
package policy

import (
	"fmt"
	"strings"

	"github.com/Veraticus/gradcert/internal/common"
	"github.com/Veraticus/gradcert/internal/model"
)

// Config is the externally supplied form of a certification policy.
type Config struct {
	Department      string   `yaml:"department"`
	Program         string   `yaml:"program"`
	Whitelist       []string `yaml:"whitelist"`
	ResearchCourses []string `yaml:"research_courses"`
	ElectiveCourses []string `yaml:"elective_courses"`
	MinimumLevel    int      `yaml:"minimum_level"`
	GraduateLevel   int      `yaml:"graduate_level"`
	CoreMinimum     float64  `yaml:"core_minimum"`
	ResearchCap     float64  `yaml:"research_cap"`
	LevelCap        float64  `yaml:"level_cap"`
	TotalMinimum    float64  `yaml:"total_minimum"`
	FailOnExcluded  bool     `yaml:"fail_on_excluded"`
}

// DefaultConfig returns the MS Physics track policy.
func DefaultConfig() Config {
	return Config{
		Department:      "PHY",
		Program:         "ms_phy",
		Whitelist:       []string{"EAS 502", "EAS 520", "MTH 573"},
		ResearchCourses: []string{"PHY 680", "PHY 685", "PHY 690"},
		ElectiveCourses: []string{"PHY 510", "EAS 502", "EAS 520", "MTH 573"},
		MinimumLevel:    400,
		GraduateLevel:   500,
		CoreMinimum:     15,
		ResearchCap:     6,
		LevelCap:        6,
		TotalMinimum:    30,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Department) == "" {
		return fmt.Errorf("%w: department is required", common.ErrInvalidPolicy)
	}
	if c.MinimumLevel < 0 || c.GraduateLevel < 0 {
		return fmt.Errorf("%w: course levels cannot be negative", common.ErrInvalidPolicy)
	}
	if c.GraduateLevel < c.MinimumLevel {
		return fmt.Errorf("%w: graduate level %d is below minimum level %d",
			common.ErrInvalidPolicy, c.GraduateLevel, c.MinimumLevel)
	}
	for name, v := range map[string]float64{
		"core minimum":  c.CoreMinimum,
		"research cap":  c.ResearchCap,
		"level cap":     c.LevelCap,
		"total minimum": c.TotalMinimum,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s cannot be negative", common.ErrInvalidPolicy, name)
		}
	}
	for _, entry := range c.ResearchCourses {
		if !validEntry(entry) {
			return fmt.Errorf("%w: research course %q is not a course code or number", common.ErrInvalidPolicy, entry)
		}
	}
	for _, entry := range c.ElectiveCourses {
		if !validEntry(entry) {
			return fmt.Errorf("%w: elective course %q is not a course code or number", common.ErrInvalidPolicy, entry)
		}
	}
	for _, entry := range c.Whitelist {
		if strings.TrimSpace(entry) == "" {
			return fmt.Errorf("%w: empty whitelist entry", common.ErrInvalidPolicy)
		}
	}
	return nil
}

func validEntry(entry string) bool {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return false
	}
	if isNumber(entry) {
		return true
	}
	return model.NumberOf(entry) != ""
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// courseSet matches course codes by full code or by bare number.
type courseSet struct {
	codes   map[string]struct{}
	numbers map[string]struct{}
}

func newCourseSet(entries []string) courseSet {
	s := courseSet{
		codes:   make(map[string]struct{}),
		numbers: make(map[string]struct{}),
	}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if isNumber(e) {
			s.numbers[e] = struct{}{}
			continue
		}
		s.codes[model.NormalizeCode(e)] = struct{}{}
	}
	return s
}

func (s courseSet) contains(code string) bool {
	code = model.NormalizeCode(code)
	if _, ok := s.codes[code]; ok {
		return true
	}
	_, ok := s.numbers[model.NumberOf(code)]
	return ok
}

// Policy is the compiled, immutable form of a Config.
type Policy struct {
	research   courseSet
	elective   courseSet
	whiteDepts map[string]struct{}
	whiteCodes map[string]struct{}
	config     Config
}

// New validates cfg and compiles it into a Policy.
func New(cfg Config) (*Policy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Department = strings.ToUpper(strings.TrimSpace(cfg.Department))
	cfg.Whitelist = append([]string(nil), cfg.Whitelist...)
	cfg.ResearchCourses = append([]string(nil), cfg.ResearchCourses...)
	cfg.ElectiveCourses = append([]string(nil), cfg.ElectiveCourses...)

	p := &Policy{
		config:     cfg,
		research:   newCourseSet(cfg.ResearchCourses),
		elective:   newCourseSet(cfg.ElectiveCourses),
		whiteDepts: make(map[string]struct{}),
		whiteCodes: make(map[string]struct{}),
	}
	for _, w := range cfg.Whitelist {
		norm := model.NormalizeCode(w)
		if model.NumberOf(norm) == "" {
			p.whiteDepts[norm] = struct{}{}
			continue
		}
		p.whiteCodes[norm] = struct{}{}
	}
	return p, nil
}

// MustNew is New for policies known to be valid, such as DefaultConfig.
func MustNew(cfg Config) *Policy {
	p, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// Default returns the compiled default policy.
func Default() *Policy {
	return MustNew(DefaultConfig())
}

// Config returns a copy of the configuration the policy was built from.
func (p *Policy) Config() Config {
	cfg := p.config
	cfg.Whitelist = append([]string(nil), p.config.Whitelist...)
	cfg.ResearchCourses = append([]string(nil), p.config.ResearchCourses...)
	cfg.ElectiveCourses = append([]string(nil), p.config.ElectiveCourses...)
	return cfg
}

// Department is the program's home department prefix.
func (p *Policy) Department() string { return p.config.Department }

// Program is the short program identifier used in output file names.
func (p *Policy) Program() string { return p.config.Program }

// IsHome reports whether dept is the program's own department.
func (p *Policy) IsHome(dept string) bool {
	return strings.EqualFold(strings.TrimSpace(dept), p.config.Department)
}

// IsWhitelisted reports whether an external course may count toward certification,
// either because its department or its exact code is whitelisted.
func (p *Policy) IsWhitelisted(code string) bool {
	code = model.NormalizeCode(code)
	if _, ok := p.whiteCodes[code]; ok {
		return true
	}
	_, ok := p.whiteDepts[model.DepartmentOf(code)]
	return ok
}

// IsResearch reports whether code is in the research course set.
func (p *Policy) IsResearch(code string) bool { return p.research.contains(code) }

// IsElective reports whether code is in the non-core elective set.
func (p *Policy) IsElective(code string) bool { return p.elective.contains(code) }

// BelowMinimumLevel reports whether a course number never counts toward graduate totals.
// Codes without a number are treated as below the minimum.
func (p *Policy) BelowMinimumLevel(level int) bool {
	return level < 0 || level < p.config.MinimumLevel
}

// IsLevelCapped reports whether a course number falls in the capped band
// [MinimumLevel, GraduateLevel), the "400-level" courses.
func (p *Policy) IsLevelCapped(level int) bool {
	return !p.BelowMinimumLevel(level) && level < p.config.GraduateLevel
}

// MinimumLevel is the lowest course number that can count at all.
func (p *Policy) MinimumLevel() int { return p.config.MinimumLevel }

// GraduateLevel is the lowest course number that counts without the level cap.
func (p *Policy) GraduateLevel() int { return p.config.GraduateLevel }

// CoreMinimum is the required number of core credits.
func (p *Policy) CoreMinimum() float64 { return p.config.CoreMinimum }

// ResearchCap is the most research credit that can be applied.
func (p *Policy) ResearchCap() float64 { return p.config.ResearchCap }

// LevelCap is the most capped-level credit that can be applied.
func (p *Policy) LevelCap() float64 { return p.config.LevelCap }

// TotalMinimum is the required number of applied credits.
func (p *Policy) TotalMinimum() float64 { return p.config.TotalMinimum }

// FailOnExcluded reports whether any unapproved external course fails certification.
func (p *Policy) FailOnExcluded() bool { return p.config.FailOnExcluded }
