package main

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/types"
)

// newTestRoot builds a root command whose config and log output are
// redirected into the test's temp space.
func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()
	t.Setenv("SKYHOOK_CONFIG_DIR", t.TempDir())
	t.Setenv("SKYHOOK_STATE_DIR", t.TempDir())
	return NewRootCmd()
}

func TestRootCommandStructure(t *testing.T) {
	rootCmd := NewRootCmd()

	for _, name := range []string{"up", "mount", "bridge", "sync", "status", "config", "topics", "version", "completion", "help"} {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, cmd.Name())
		})
	}

	for _, flag := range []string{"verbose", "debug", "dry-run", "config"} {
		t.Run("flag "+flag, func(t *testing.T) {
			assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag))
		})
	}
}

func TestParseKinds(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []types.MountKind
		wantErr  bool
	}{
		{
			name:     "empty means all",
			input:    nil,
			expected: nil,
		},
		{
			name:     "single kind",
			input:    []string{"webdav"},
			expected: []types.MountKind{types.MountWebDAV},
		},
		{
			name:     "both kinds",
			input:    []string{"webdav", "smb"},
			expected: []types.MountKind{types.MountWebDAV, types.MountSMB},
		},
		{
			name:     "case insensitive",
			input:    []string{"SMB"},
			expected: []types.MountKind{types.MountSMB},
		},
		{
			name:    "unknown kind",
			input:   []string{"nfs"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kinds, err := parseKinds(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kinds)
		})
	}
}

func TestMountRejectsUnknownKind(t *testing.T) {
	rootCmd := newTestRoot(t)
	rootCmd.SetArgs([]string{"mount", "nfs"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestUpRejectsUnknownKindFlag(t *testing.T) {
	rootCmd := newTestRoot(t)
	rootCmd.SetArgs([]string{"up", "--kind", "nfs"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

// captureStdout captures what f writes to stdout.
func captureStdout(f func()) string {
	r, w, _ := os.Pipe()
	stdout := os.Stdout
	os.Stdout = w

	f()

	_ = w.Close()
	os.Stdout = stdout

	out := make([]byte, 16384)
	n, _ := r.Read(out)
	return string(out[:n])
}

func TestConfigShow(t *testing.T) {
	rootCmd := newTestRoot(t)

	output := captureStdout(func() {
		rootCmd.SetArgs([]string{"config", "show"})
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, "[webdav]")
	assert.Contains(t, output, "mountpoint = '/mnt/cloud/personal'")
	assert.Contains(t, output, "[sync]")
}

func TestConfigShowYAML(t *testing.T) {
	rootCmd := newTestRoot(t)

	output := captureStdout(func() {
		rootCmd.SetArgs([]string{"config", "show", "--format", "yaml"})
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, "webdav:")
	assert.Contains(t, output, "mountpoint: /mnt/cloud/personal")
}

func TestConfigShowHonorsEnvironment(t *testing.T) {
	t.Setenv("SKYHOOK_SMB_HOST", "nas.internal")
	rootCmd := newTestRoot(t)

	output := captureStdout(func() {
		rootCmd.SetArgs([]string{"config", "show"})
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, "host = 'nas.internal'")
}

func TestTopicsCommandListsBuiltins(t *testing.T) {
	rootCmd := newTestRoot(t)

	output := captureStdout(func() {
		rootCmd.SetArgs([]string{"topics"})
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, "mount-ordering")
	assert.Contains(t, output, "concurrency")
	assert.Contains(t, output, "--dry-run")
}
