package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		icon   string
	}{
		{"warning", FormatWarning, WarningIcon},
		{"info", FormatInfo, InfoIcon},
		{"title", FormatTitle, GradIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.format("3 transcripts certified")
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "3 transcripts certified")
		})
	}
}

func TestFormatOutcome(t *testing.T) {
	tests := []struct {
		name   string
		passed bool
		reason string
		want   string
	}{
		{"passed", true, "", SuccessIcon + " a.pdf certified"},
		{"failed with reason", false, "core credits 12 < 15", ErrorIcon + " a.pdf not certified: core credits 12 < 15"},
		{"failed without reason", false, "", ErrorIcon + " a.pdf not certified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, FormatOutcome("a.pdf", tt.passed, tt.reason), tt.want)
		})
	}
}

func TestStyleHelpers(t *testing.T) {
	for _, style := range []func(string) string{StyleTitle, StyleWarning, StyleInfo} {
		assert.Contains(t, style("Verified"), "Verified")
	}
}
