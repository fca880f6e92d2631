// pkg/bridge/bridge_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: MemoryFS
// PURPOSE: Test marker translation and bridge symlink reconciliation

package bridge_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasek/skyhook/pkg/bridge"
	"github.com/avasek/skyhook/pkg/config"
	skyerr "github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/testutil"
)

func settings() config.BridgeSettings {
	return config.BridgeSettings{
		Foreign:   "/mnt/host",
		Marker:    "cloudroot",
		Local:     "/home/op/cloud",
		DriveBase: "/mnt",
	}
}

// foreignFS builds a filesystem with the foreign mount prepared: the
// marker symlink exists and the local parent directory is in place.
func foreignFS(t *testing.T, markerTarget string) *testutil.MemoryFS {
	t.Helper()
	fs := testutil.NewMemoryFS()
	require.NoError(t, fs.MkdirAll("/mnt/host", 0o755))
	require.NoError(t, fs.MkdirAll("/home/op", 0o755))
	require.NoError(t, fs.Symlink(markerTarget, "/mnt/host/cloudroot"))
	return fs
}

func TestTranslateForeignPath(t *testing.T) {
	tests := []struct {
		name   string
		target string
		drives map[string]string
		want   string
	}{
		{
			name:   "forward_slash_target",
			target: "C:/Users/Alice/Cloud",
			want:   "/mnt/c/Users/Alice/Cloud",
		},
		{
			name:   "backslash_target",
			target: `C:\Users\Alice\Cloud`,
			want:   "/mnt/c/Users/Alice/Cloud",
		},
		{
			name:   "lowercase_drive_letter",
			target: "c:/work",
			want:   "/mnt/c/work",
		},
		{
			name:   "remainder_casing_kept",
			target: "D:/WORK/Docs",
			want:   "/mnt/d/WORK/Docs",
		},
		{
			name:   "mapped_drive_wins_over_base",
			target: "C:/data",
			drives: map[string]string{"c": "/srv/host-c"},
			want:   "/srv/host-c/data",
		},
		{
			name:   "bare_drive",
			target: "C:",
			want:   "/mnt/c",
		},
		{
			name:   "no_drive_prefix_untouched",
			target: "/srv/share/cloud",
			want:   "/srv/share/cloud",
		},
		{
			name:   "relative_target_untouched",
			target: "data/cloud",
			want:   "data/cloud",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := settings()
			cfg.Drives = tt.drives
			assert.Equal(t, tt.want, bridge.TranslateForeignPath(tt.target, cfg))
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("creates_bridge_symlink", func(t *testing.T) {
		fs := foreignFS(t, "C:/Users/Alice/Cloud")

		got, err := bridge.Resolve(fs, settings(), "")

		require.NoError(t, err)
		assert.False(t, got.AlreadyPresent)
		assert.Equal(t, "/home/op/cloud", got.LocalPath)
		assert.Equal(t, "/mnt/c/Users/Alice/Cloud", got.ResolvedTarget)

		target, err := fs.Readlink("/home/op/cloud")
		require.NoError(t, err)
		assert.Equal(t, "/mnt/c/Users/Alice/Cloud", target)
	})

	t.Run("qualifier_selects_marker", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		require.NoError(t, fs.MkdirAll("/mnt/host", 0o755))
		require.NoError(t, fs.MkdirAll("/home/op", 0o755))
		require.NoError(t, fs.Symlink("D:/Team", "/mnt/host/cloudroot-work"))

		got, err := bridge.Resolve(fs, settings(), "work")

		require.NoError(t, err)
		assert.Equal(t, "/mnt/d/Team", got.ResolvedTarget)
	})

	t.Run("missing_marker_is_fatal", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		require.NoError(t, fs.MkdirAll("/mnt/host", 0o755))
		require.NoError(t, fs.MkdirAll("/home/op", 0o755))

		_, err := bridge.Resolve(fs, settings(), "")

		require.Error(t, err)
		assert.True(t, skyerr.IsErrorCode(err, skyerr.ErrMissingMarker))
		assert.Equal(t, 1, skyerr.ExitCode(err))
		assert.Contains(t, err.Error(), "remote host")
	})

	t.Run("marker_must_be_a_symlink", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		require.NoError(t, fs.MkdirAll("/mnt/host", 0o755))
		require.NoError(t, fs.WriteFile("/mnt/host/cloudroot", []byte("not a link"), 0o644))

		_, err := bridge.Resolve(fs, settings(), "")

		require.Error(t, err)
		assert.True(t, skyerr.IsErrorCode(err, skyerr.ErrMissingMarker))
	})

	t.Run("occupied_path_is_already_satisfied", func(t *testing.T) {
		occupy := map[string]func(t *testing.T, fs *testutil.MemoryFS){
			"file": func(t *testing.T, fs *testutil.MemoryFS) {
				require.NoError(t, fs.WriteFile("/home/op/cloud", []byte("x"), 0o644))
			},
			"directory": func(t *testing.T, fs *testutil.MemoryFS) {
				require.NoError(t, fs.MkdirAll("/home/op/cloud", 0o755))
			},
			"dangling_symlink": func(t *testing.T, fs *testutil.MemoryFS) {
				require.NoError(t, fs.Symlink("/nowhere", "/home/op/cloud"))
			},
		}

		for name, setup := range occupy {
			t.Run(name, func(t *testing.T) {
				fs := foreignFS(t, "C:/Users/Alice/Cloud")
				setup(t, fs)
				_, writesBefore := fs.Stats()

				got, err := bridge.Resolve(fs, settings(), "")

				require.NoError(t, err)
				assert.True(t, got.AlreadyPresent)
				_, writesAfter := fs.Stats()
				assert.Equal(t, writesBefore, writesAfter, "existing object must not be touched")
			})
		}
	})

	t.Run("symlink_failure_is_fatal", func(t *testing.T) {
		fs := foreignFS(t, "C:/Users/Alice/Cloud").
			WithError("/home/op", os.ErrPermission)

		_, err := bridge.Resolve(fs, settings(), "")

		require.Error(t, err)
		assert.True(t, skyerr.IsErrorCode(err, skyerr.ErrSymlinkCreate))
		assert.Equal(t, 1, skyerr.ExitCode(err))
	})

	t.Run("unreadable_bridge_path", func(t *testing.T) {
		fs := foreignFS(t, "C:/Users/Alice/Cloud").
			WithError("/home/op/cloud", os.ErrPermission)

		_, err := bridge.Resolve(fs, settings(), "")

		require.Error(t, err)
		assert.True(t, skyerr.IsErrorCode(err, skyerr.ErrFileAccess))
	})
}
