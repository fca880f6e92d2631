package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyvalUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]interface{}
		wantErr  bool
	}{
		{
			name:  "simple_assignment",
			input: "webdav.url=https://example.com/dav",
			expected: map[string]interface{}{
				"webdav": map[string]interface{}{
					"url": "https://example.com/dav",
				},
			},
		},
		{
			name:  "comments_and_blanks_ignored",
			input: "# header\n\nsmb.host=nas.lan\n   \n# trailing\n",
			expected: map[string]interface{}{
				"smb": map[string]interface{}{
					"host": "nas.lan",
				},
			},
		},
		{
			name:  "whitespace_trimmed_around_key_and_value",
			input: "  sync.schedule = 15 * * * *  ",
			expected: map[string]interface{}{
				"sync": map[string]interface{}{
					"schedule": "15 * * * *",
				},
			},
		},
		{
			name:  "value_may_contain_equals",
			input: "webdav.options=rw,user,uid=1000",
			expected: map[string]interface{}{
				"webdav": map[string]interface{}{
					"options": "rw,user,uid=1000",
				},
			},
		},
		{
			name:  "sibling_keys_share_section",
			input: "smb.host=nas.lan\nsmb.share=backup",
			expected: map[string]interface{}{
				"smb": map[string]interface{}{
					"host":  "nas.lan",
					"share": "backup",
				},
			},
		},
		{
			name:    "line_without_assignment_fails",
			input:   "not an assignment",
			wantErr: true,
		},
		{
			name:    "empty_key_fails",
			input:   "=value",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KeyvalParser().Unmarshal([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestKeyvalMarshal(t *testing.T) {
	in := map[string]interface{}{
		"webdav": map[string]interface{}{
			"url": "https://example.com/dav",
		},
		"smb": map[string]interface{}{
			"host": "nas.lan",
		},
	}

	out, err := KeyvalParser().Marshal(in)
	require.NoError(t, err)

	assert.Equal(t, "smb.host=nas.lan\nwebdav.url=https://example.com/dav\n", string(out))
}

func TestKeyvalRoundTrip(t *testing.T) {
	input := "bridge.local=/home/op/cloud\nbridge.marker=cloudroot\n"

	parsed, err := KeyvalParser().Unmarshal([]byte(input))
	require.NoError(t, err)

	out, err := KeyvalParser().Marshal(parsed)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}
