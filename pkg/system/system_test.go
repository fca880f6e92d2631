// pkg/system/system_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (temp dirs), environment variables
// PURPOSE: Test protected-file operations, mount point detection, and
// invoking-user resolution

package system

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasek/skyhook/pkg/types"
)

func TestWriteProtectedFile(t *testing.T) {
	eff := New()
	dir := t.TempDir()

	t.Run("writes_with_exact_mode", func(t *testing.T) {
		path := filepath.Join(dir, "secrets")
		err := eff.WriteProtectedFile(path, []byte("https://dav.example.com op hunter2\n"), 0600)
		require.NoError(t, err)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("creates_parent_directories", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "deeper", "login")
		err := eff.WriteProtectedFile(path, []byte("username=op\n"), 0600)
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "username=op\n", string(content))
	})
}

func TestAppendProtectedLine(t *testing.T) {
	eff := New()
	path := filepath.Join(t.TempDir(), "fstab")

	require.NoError(t, eff.AppendProtectedLine(path, "first line"))
	require.NoError(t, eff.AppendProtectedLine(path, "second line"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line\n", string(content))
}

func TestReadProtectedFile(t *testing.T) {
	eff := New()
	dir := t.TempDir()

	t.Run("missing_file_is_empty_not_error", func(t *testing.T) {
		content, err := eff.ReadProtectedFile(filepath.Join(dir, "absent"))
		require.NoError(t, err)
		assert.Empty(t, content)
	})

	t.Run("reads_existing_content", func(t *testing.T) {
		path := filepath.Join(dir, "present")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

		content, err := eff.ReadProtectedFile(path)
		require.NoError(t, err)
		assert.Equal(t, "data", string(content))
	})
}

func TestIsMountPoint(t *testing.T) {
	eff := New()

	t.Run("root_is_a_mount_point", func(t *testing.T) {
		ok, err := eff.IsMountPoint("/")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("plain_directory_is_not", func(t *testing.T) {
		ok, err := eff.IsMountPoint(t.TempDir())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing_path_is_not", func(t *testing.T) {
		ok, err := eff.IsMountPoint("/definitely/not/here")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestLookPath(t *testing.T) {
	eff := New()

	t.Run("finds_sh", func(t *testing.T) {
		path, ok := eff.LookPath("sh")
		assert.True(t, ok)
		assert.NotEmpty(t, path)
	})

	t.Run("misses_nonsense", func(t *testing.T) {
		_, ok := eff.LookPath("skyhook-no-such-helper")
		assert.False(t, ok)
	})
}

func TestInvokingUser(t *testing.T) {
	t.Run("sudo_identity_wins", func(t *testing.T) {
		t.Setenv("SUDO_USER", "op")
		t.Setenv("SUDO_UID", "1000")
		t.Setenv("SUDO_GID", "1000")

		acct, err := InvokingUser()
		require.NoError(t, err)
		assert.Equal(t, "op", acct.Name)
		assert.Equal(t, 1000, acct.UID)
		assert.Equal(t, 1000, acct.GID)
	})

	t.Run("falls_back_to_current_user", func(t *testing.T) {
		t.Setenv("SUDO_USER", "")
		t.Setenv("SUDO_UID", "")
		t.Setenv("SUDO_GID", "")

		acct, err := InvokingUser()
		require.NoError(t, err)
		assert.NotEmpty(t, acct.Name)
	})
}

func TestDryRunMutatesNothing(t *testing.T) {
	dir := t.TempDir()
	eff := NewDryRun(New())
	ctx := context.Background()

	path := filepath.Join(dir, "fstab")
	require.NoError(t, eff.AppendProtectedLine(path, "a b c d 0 0"))
	require.NoError(t, eff.WriteProtectedFile(filepath.Join(dir, "secrets"), []byte("s"), 0600))
	require.NoError(t, eff.InstallScheduleTable(ctx, "0 * * * * true"))
	require.NoError(t, eff.RunShell(ctx, "touch "+filepath.Join(dir, "marker")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDryRunReadsPassThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	require.NoError(t, os.WriteFile(path, []byte("real content"), 0644))

	eff := NewDryRun(New())

	content, err := eff.ReadProtectedFile(path)
	require.NoError(t, err)
	assert.Equal(t, "real content", string(content))

	_, ok := eff.LookPath("sh")
	assert.True(t, ok)
}

// Interface conformance
var (
	_ types.Effector = (*execEffector)(nil)
	_ types.Effector = (*dryRunEffector)(nil)
)
