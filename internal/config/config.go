// Package config loads the certification policy, pipeline tuning and output settings
// through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/gradcert/internal/common"
	"github.com/Veraticus/gradcert/internal/engine"
	"github.com/Veraticus/gradcert/internal/policy"
)

// EnvPrefix is the prefix of environment variables that override configuration keys.
const EnvPrefix = "GRADCERT"

// DefaultOutputDir is where ledgers and the summary are written unless configured.
const DefaultOutputDir = "output"

// Output holds where and how report files are written.
type Output struct {
	Dir        string
	PreparedBy string
}

// Init prepares v: defaults, GRADCERT_ environment overrides and the config file. When
// cfgFile is empty, config.yaml is searched in $HOME/.config/gradcert and the working
// directory, and a missing file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".config", "gradcert"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("%w: failed to read config: %w", common.ErrInvalidConfig, err)
		}
	}
	return nil
}

// SetDefaults registers the default value of every configuration key on v.
func SetDefaults(v *viper.Viper) {
	p := policy.DefaultConfig()
	v.SetDefault("policy.department", p.Department)
	v.SetDefault("policy.program", p.Program)
	v.SetDefault("policy.whitelist", p.Whitelist)
	v.SetDefault("policy.research_courses", p.ResearchCourses)
	v.SetDefault("policy.elective_courses", p.ElectiveCourses)
	v.SetDefault("policy.minimum_level", p.MinimumLevel)
	v.SetDefault("policy.graduate_level", p.GraduateLevel)
	v.SetDefault("policy.core_minimum", p.CoreMinimum)
	v.SetDefault("policy.research_cap", p.ResearchCap)
	v.SetDefault("policy.level_cap", p.LevelCap)
	v.SetDefault("policy.total_minimum", p.TotalMinimum)
	v.SetDefault("policy.fail_on_excluded", p.FailOnExcluded)

	e := engine.DefaultConfig()
	v.SetDefault("layout.min_gap_width", e.Layout.MinGapWidth)
	v.SetDefault("layout.min_column_width", e.Layout.MinColumnWidth)
	v.SetDefault("layout.max_blocked_ratio", e.Layout.MaxBlockedRatio)
	v.SetDefault("layout.line_tolerance", e.Layout.LineTolerance)
	v.SetDefault("layout.space_ratio", e.Layout.SpaceRatio)
	v.SetDefault("layout.max_columns", e.Layout.MaxColumns)
	v.SetDefault("tokenizer.max_record_lines", e.Tokenizer.MaxRecordLines)
	v.SetDefault("sequence.transfer_window", e.Sequence.TransferWindow)

	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.prepared_by", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// LoadPolicyConfig reads the policy section. Course lists may be YAML lists or, from
// the environment, comma-separated strings.
func LoadPolicyConfig(v *viper.Viper) (policy.Config, error) {
	cfg := policy.Config{
		Department:      strings.TrimSpace(v.GetString("policy.department")),
		Program:         strings.TrimSpace(v.GetString("policy.program")),
		Whitelist:       stringList(v, "policy.whitelist"),
		ResearchCourses: stringList(v, "policy.research_courses"),
		ElectiveCourses: stringList(v, "policy.elective_courses"),
		MinimumLevel:    v.GetInt("policy.minimum_level"),
		GraduateLevel:   v.GetInt("policy.graduate_level"),
		CoreMinimum:     v.GetFloat64("policy.core_minimum"),
		ResearchCap:     v.GetFloat64("policy.research_cap"),
		LevelCap:        v.GetFloat64("policy.level_cap"),
		TotalMinimum:    v.GetFloat64("policy.total_minimum"),
		FailOnExcluded:  v.GetBool("policy.fail_on_excluded"),
	}

	if cfg.Program == "" {
		cfg.Program = policy.DefaultConfig().Program
	}

	if err := cfg.Validate(); err != nil {
		return policy.Config{}, err
	}
	return cfg, nil
}

// LoadPolicy reads and compiles the policy.
func LoadPolicy(v *viper.Viper) (*policy.Policy, error) {
	cfg, err := LoadPolicyConfig(v)
	if err != nil {
		return nil, err
	}
	return policy.New(cfg)
}

// LoadEngineConfig reads the layout, tokenizer and sequence sections.
func LoadEngineConfig(v *viper.Viper) (engine.Config, error) {
	cfg := engine.DefaultConfig()

	cfg.Layout.MinGapWidth = v.GetFloat64("layout.min_gap_width")
	cfg.Layout.MinColumnWidth = v.GetFloat64("layout.min_column_width")
	cfg.Layout.MaxBlockedRatio = v.GetFloat64("layout.max_blocked_ratio")
	cfg.Layout.LineTolerance = v.GetFloat64("layout.line_tolerance")
	cfg.Layout.SpaceRatio = v.GetFloat64("layout.space_ratio")
	cfg.Layout.MaxColumns = v.GetInt("layout.max_columns")
	cfg.Tokenizer.MaxRecordLines = v.GetInt("tokenizer.max_record_lines")
	cfg.Sequence.TransferWindow = v.GetInt("sequence.transfer_window")

	if cfg.Layout.MaxBlockedRatio >= 1 {
		return engine.Config{}, fmt.Errorf("%w: layout.max_blocked_ratio must be below 1, got %g",
			common.ErrInvalidConfig, cfg.Layout.MaxBlockedRatio)
	}
	if cfg.Tokenizer.MaxRecordLines < 0 {
		return engine.Config{}, fmt.Errorf("%w: tokenizer.max_record_lines cannot be negative",
			common.ErrInvalidConfig)
	}
	if cfg.Sequence.TransferWindow < 0 {
		return engine.Config{}, fmt.Errorf("%w: sequence.transfer_window cannot be negative",
			common.ErrInvalidConfig)
	}
	return cfg, nil
}

// LoadOutput reads the output section.
func LoadOutput(v *viper.Viper) Output {
	out := Output{
		Dir:        ExpandPath(v.GetString("output.dir")),
		PreparedBy: v.GetString("output.prepared_by"),
	}
	if out.Dir == "" {
		out.Dir = DefaultOutputDir
	}
	return out
}

func stringList(v *viper.Viper, key string) []string {
	var items []string
	switch raw := v.Get(key).(type) {
	case nil:
		return nil
	case string:
		items = strings.Split(raw, ",")
	case []string:
		items = raw
	case []any:
		for _, item := range raw {
			items = append(items, fmt.Sprint(item))
		}
	default:
		items = []string{fmt.Sprint(raw)}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
