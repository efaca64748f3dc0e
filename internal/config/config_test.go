package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/gradcert/internal/common"
	"github.com/Veraticus/gradcert/internal/engine"
	"github.com/Veraticus/gradcert/internal/policy"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPolicyConfig_Defaults(t *testing.T) {
	cfg, err := LoadPolicyConfig(newViper())

	require.NoError(t, err)
	assert.Equal(t, policy.DefaultConfig(), cfg)
}

func TestLoadEngineConfig_Defaults(t *testing.T) {
	cfg, err := LoadEngineConfig(newViper())

	require.NoError(t, err)
	assert.Equal(t, engine.DefaultConfig(), cfg)
}

func TestLoadOutput_Defaults(t *testing.T) {
	out := LoadOutput(newViper())

	assert.Equal(t, DefaultOutputDir, out.Dir)
	assert.Empty(t, out.PreparedBy)
}

func TestInit_ReadsConfigFile(t *testing.T) {
	path := writeConfig(t, `
policy:
  department: AST
  program: ms_ast
  whitelist: [PHY, "MTH 573"]
  research_courses: ["AST 690", "699"]
  elective_courses: []
  core_minimum: 12
  total_minimum: 24
  fail_on_excluded: true
layout:
  min_gap_width: 24
  max_columns: 3
tokenizer:
  max_record_lines: 6
sequence:
  transfer_window: 5
output:
  dir: reports
  prepared_by: Graduate Office
`)
	v := viper.New()

	require.NoError(t, Init(v, path))

	p, err := LoadPolicy(v)
	require.NoError(t, err)
	assert.Equal(t, "AST", p.Department())
	assert.Equal(t, "ms_ast", p.Program())
	assert.True(t, p.IsWhitelisted("PHY 999"))
	assert.True(t, p.IsWhitelisted("MTH 573"))
	assert.True(t, p.IsResearch("AST 699"))
	assert.InDelta(t, 12.0, p.CoreMinimum(), 1e-9)
	assert.InDelta(t, 6.0, p.ResearchCap(), 1e-9, "unset keys keep their defaults")
	assert.True(t, p.FailOnExcluded())

	cfg, err := LoadEngineConfig(v)
	require.NoError(t, err)
	assert.InDelta(t, 24.0, cfg.Layout.MinGapWidth, 1e-9)
	assert.Equal(t, 3, cfg.Layout.MaxColumns)
	assert.Equal(t, 6, cfg.Tokenizer.MaxRecordLines)
	assert.Equal(t, 5, cfg.Sequence.TransferWindow)

	out := LoadOutput(v)
	assert.Equal(t, "reports", out.Dir)
	assert.Equal(t, "Graduate Office", out.PreparedBy)
}

func TestInit_EnvironmentOverrides(t *testing.T) {
	t.Setenv("GRADCERT_POLICY_DEPARTMENT", "CHM")
	t.Setenv("GRADCERT_POLICY_WHITELIST", "EAS 502, MTH 573 ,BIO")
	t.Setenv("GRADCERT_POLICY_TOTAL_MINIMUM", "32.5")
	t.Setenv("GRADCERT_OUTPUT_DIR", "env-out")
	v := viper.New()

	require.NoError(t, Init(v, writeConfig(t, "policy:\n  department: AST\n")))

	cfg, err := LoadPolicyConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "CHM", cfg.Department)
	assert.Equal(t, []string{"EAS 502", "MTH 573", "BIO"}, cfg.Whitelist)
	assert.InDelta(t, 32.5, cfg.TotalMinimum, 1e-9)
	assert.Equal(t, "env-out", LoadOutput(v).Dir)
}

func TestInit_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		err := Init(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		err := Init(viper.New(), writeConfig(t, "policy: [unclosed"))
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})
}

func TestLoadPolicyConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"empty department", "policy.department", " "},
		{"negative core minimum", "policy.core_minimum", -1},
		{"levels inverted", "policy.graduate_level", 300},
		{"bad research entry", "policy.research_courses", []string{"thesis"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)

			_, err := LoadPolicyConfig(v)
			assert.ErrorIs(t, err, common.ErrInvalidPolicy)

			_, err = LoadPolicy(v)
			assert.ErrorIs(t, err, common.ErrInvalidPolicy)
		})
	}
}

func TestLoadEngineConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"blocked ratio of one", "layout.max_blocked_ratio", 1.0},
		{"negative record lines", "tokenizer.max_record_lines", -2},
		{"negative transfer window", "sequence.transfer_window", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)

			_, err := LoadEngineConfig(v)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestStringList(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{"string slice", []string{"EAS 502", " MTH 573 "}, []string{"EAS 502", "MTH 573"}},
		{"any slice", []any{"EAS 502", 690}, []string{"EAS 502", "690"}},
		{"comma string", "EAS 502,,MTH 573", []string{"EAS 502", "MTH 573"}},
		{"scalar", 690, []string{"690"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set("list", tt.value)
			assert.Equal(t, tt.want, stringList(v, "list"))
		})
	}

	assert.Nil(t, stringList(viper.New(), "unset"))
}
