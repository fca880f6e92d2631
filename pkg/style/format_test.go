package style_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasek/skyhook/pkg/style"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		name     string
		format   style.Format
		expected string
	}{
		{
			name:     "auto format",
			format:   style.FormatAuto,
			expected: "auto",
		},
		{
			name:     "terminal format",
			format:   style.FormatTerminal,
			expected: "term",
		},
		{
			name:     "text format",
			format:   style.FormatText,
			expected: "text",
		},
		{
			name:     "yaml format",
			format:   style.FormatYAML,
			expected: "yaml",
		},
		{
			name:     "unknown format",
			format:   style.Format(999),
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected style.Format
		wantErr  bool
	}{
		{
			name:     "parse auto",
			input:    "auto",
			expected: style.FormatAuto,
		},
		{
			name:     "parse empty string as auto",
			input:    "",
			expected: style.FormatAuto,
		},
		{
			name:     "parse term",
			input:    "term",
			expected: style.FormatTerminal,
		},
		{
			name:     "parse terminal",
			input:    "terminal",
			expected: style.FormatTerminal,
		},
		{
			name:     "parse text",
			input:    "text",
			expected: style.FormatText,
		},
		{
			name:     "parse plain",
			input:    "plain",
			expected: style.FormatText,
		},
		{
			name:     "parse yaml",
			input:    "yaml",
			expected: style.FormatYAML,
		},
		{
			name:     "parse uppercase TERM",
			input:    "TERM",
			expected: style.FormatTerminal,
		},
		{
			name:     "parse mixed case Yaml",
			input:    "Yaml",
			expected: style.FormatYAML,
		},
		{
			name:    "parse invalid format",
			input:   "invalid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := style.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "unknown format")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, format)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	t.Run("NO_COLOR forces plain text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")

		assert.Equal(t, style.FormatText, style.DetectFormat(os.Stdout))
	})

	t.Run("redirected output is plain text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")

		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		assert.Equal(t, style.FormatText, style.DetectFormat(f))
	})
}
