package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("GRADCERT_TEST_DIR", "/srv/transcripts")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "output", "output"},
		{"tilde", "~", home},
		{"tilde prefix", "~/reports", filepath.Join(home, "reports")},
		{"env var", "$GRADCERT_TEST_DIR/out", "/srv/transcripts/out"},
		{"tilde inside name", "a~b", "a~b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
