package testutil

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFSWriteAndRead(t *testing.T) {
	m := NewMemoryFS()

	err := m.WriteFile("/etc/fstab", []byte("# static file system information\n"), 0644)
	require.NoError(t, err)

	content, err := m.ReadFile("/etc/fstab")
	require.NoError(t, err)
	assert.Equal(t, "# static file system information\n", string(content))

	info, err := m.Stat("/etc/fstab")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, os.FileMode(0644), info.Mode())
}

func TestMemoryFSWriteCreatesParents(t *testing.T) {
	m := NewMemoryFS()

	err := m.WriteFile("/deep/nested/dir/file.txt", []byte("x"), 0600)
	require.NoError(t, err)

	info, err := m.Stat("/deep/nested/dir")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemoryFSSymlinks(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.MkdirAll("/mnt/c/Users/op/cloud", 0755))
	require.NoError(t, m.MkdirAll("/home/op", 0755))

	t.Run("create_and_readlink", func(t *testing.T) {
		require.NoError(t, m.Symlink("/mnt/c/Users/op/cloud", "/home/op/cloud"))

		target, err := m.Readlink("/home/op/cloud")
		require.NoError(t, err)
		assert.Equal(t, "/mnt/c/Users/op/cloud", target)
	})

	t.Run("lstat_sees_link_stat_follows_it", func(t *testing.T) {
		linfo, err := m.Lstat("/home/op/cloud")
		require.NoError(t, err)
		assert.Equal(t, os.ModeSymlink, linfo.Mode()&os.ModeSymlink)

		sinfo, err := m.Stat("/home/op/cloud")
		require.NoError(t, err)
		assert.True(t, sinfo.IsDir())
	})

	t.Run("symlink_over_existing_path_fails", func(t *testing.T) {
		err := m.Symlink("/anywhere", "/home/op/cloud")
		assert.True(t, errors.Is(err, os.ErrExist))
	})

	t.Run("dangling_link_fails_stat_not_lstat", func(t *testing.T) {
		require.NoError(t, m.Symlink("/nowhere", "/home/op/dangling"))

		_, err := m.Stat("/home/op/dangling")
		assert.True(t, errors.Is(err, fs.ErrNotExist))

		_, err = m.Lstat("/home/op/dangling")
		assert.NoError(t, err)
	})

	t.Run("paths_cross_symlinked_directories", func(t *testing.T) {
		require.NoError(t, m.MkdirAll("/mnt/c/Users/op/cloud/backup", 0755))
		require.NoError(t, m.WriteFile("/mnt/c/Users/op/cloud/backup/a.txt", []byte("a"), 0644))

		info, err := m.Stat("/home/op/cloud/backup")
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		data, err := m.ReadFile("/home/op/cloud/backup/a.txt")
		require.NoError(t, err)
		assert.Equal(t, "a", string(data))

		entries, err := m.ReadDir("/home/op/cloud/backup")
		require.NoError(t, err)
		require.Len(t, entries, 1)

		require.NoError(t, m.WriteFile("/home/op/cloud/backup/b.txt", []byte("b"), 0644))
		data, err = m.ReadFile("/mnt/c/Users/op/cloud/backup/b.txt")
		require.NoError(t, err)
		assert.Equal(t, "b", string(data))
	})
}

func TestMemoryFSReadDirSorted(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.MkdirAll("/src", 0755))
	require.NoError(t, m.WriteFile("/src/zebra.txt", []byte("z"), 0644))
	require.NoError(t, m.WriteFile("/src/apple.txt", []byte("a"), 0644))
	require.NoError(t, m.MkdirAll("/src/middle", 0755))

	entries, err := m.ReadDir("/src")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "apple.txt", entries[0].Name())
	assert.Equal(t, "middle", entries[1].Name())
	assert.Equal(t, "zebra.txt", entries[2].Name())
}

func TestMemoryFSRemove(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.WriteFile("/tmp/file", []byte("x"), 0644))

	require.NoError(t, m.Remove("/tmp/file"))
	_, err := m.Stat("/tmp/file")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	t.Run("non_empty_dir_fails", func(t *testing.T) {
		require.NoError(t, m.WriteFile("/tmp/dir/file", []byte("x"), 0644))
		assert.Error(t, m.Remove("/tmp/dir"))
	})
}

func TestMemoryFSErrorInjection(t *testing.T) {
	injected := errors.New("disk exploded")
	m := NewMemoryFS().WithError("/etc/fstab", injected)

	_, err := m.ReadFile("/etc/fstab")
	assert.True(t, errors.Is(err, injected))

	err = m.WriteFile("/etc/fstab", []byte("x"), 0644)
	assert.True(t, errors.Is(err, injected))
}

func TestMockEffectorRecordsAndScripts(t *testing.T) {
	eff := NewMockEffector()

	t.Run("lookpath_misses_then_hits", func(t *testing.T) {
		_, ok := eff.LookPath("mount.davfs")
		assert.False(t, ok)

		eff.WithBinary("mount.davfs", "/sbin/mount.davfs")
		path, ok := eff.LookPath("mount.davfs")
		assert.True(t, ok)
		assert.Equal(t, "/sbin/mount.davfs", path)
	})

	t.Run("append_is_visible_to_read", func(t *testing.T) {
		require.NoError(t, eff.AppendProtectedLine("/etc/fstab", "a b c d 0 0"))

		content, err := eff.ReadProtectedFile("/etc/fstab")
		require.NoError(t, err)
		assert.Equal(t, "a b c d 0 0\n", string(content))
	})

	t.Run("write_records_mode", func(t *testing.T) {
		require.NoError(t, eff.WriteProtectedFile("/etc/davfs2/secrets", []byte("s"), 0600))

		mode, ok := eff.ProtectedMode("/etc/davfs2/secrets")
		require.True(t, ok)
		assert.Equal(t, fs.FileMode(0600), mode)
	})

	t.Run("scripted_error", func(t *testing.T) {
		boom := errors.New("mount failed")
		eff.WithError("MountTarget", boom)

		err := eff.MountTarget(context.Background(), "/mnt/dav")
		assert.True(t, errors.Is(err, boom))
	})

	t.Run("calls_recorded_in_order", func(t *testing.T) {
		assert.True(t, eff.CalledWith("LookPath(mount.davfs)"))
		assert.True(t, eff.CalledWith("AppendProtectedLine(/etc/fstab"))
		assert.Equal(t, 1, eff.CallCount("WriteProtectedFile(/etc/davfs2/secrets"))
	})
}
