package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeBranchName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "feature", "feature"},
		{"spaces", "my feature branch", "my-feature-branch"},
		{"punctuation", "fix: crash on start!", "fix-crash-on-start"},
		{"slashes and dots kept", "jo/feature.v2", "jo/feature.v2"},
		{"trailing separators", "feature/..", "feature"},
		{"repeated hyphens", "a---b", "a-b"},
		{"nothing usable", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SanitizeBranchName(tt.input))
		})
	}

	t.Run("long names are cut", func(t *testing.T) {
		t.Parallel()
		got := SanitizeBranchName(strings.Repeat("a", 300))
		assert.Len(t, got, MaxBranchNameByteLength)
	})
}
