// pkg/mirror/mirror_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: MemoryFS, MockEffector
// PURPOSE: Test mirror guards, command composition, and crontab registration

package mirror_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasek/skyhook/pkg/config"
	skyerr "github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/mirror"
	"github.com/avasek/skyhook/pkg/testutil"
)

const (
	bridgeLocal = "/home/op/cloud"
	wantCommand = "rsync -a --delete --exclude=.sync-recovery/ /home/op/sync/ /home/op/cloud/backup/"
	wantLine    = wantCommand + " >> /var/log/skyhook-sync.log 2>&1"
)

func syncSettings() config.SyncSettings {
	return config.SyncSettings{
		Source:      "/home/op/sync",
		Destination: "backup",
		LogPath:     "/var/log/skyhook-sync.log",
		Schedule:    "0 * * * *",
		RecoveryDir: ".sync-recovery",
	}
}

// syncFS builds a source with content and an existing destination.
func syncFS(t *testing.T) *testutil.MemoryFS {
	t.Helper()
	fs := testutil.NewMemoryFS()
	require.NoError(t, fs.MkdirAll("/home/op/sync", 0o755))
	require.NoError(t, fs.WriteFile("/home/op/sync/notes.txt", []byte("n"), 0o644))
	require.NoError(t, fs.MkdirAll("/home/op/cloud/backup", 0o755))
	return fs
}

func TestResolveDestination(t *testing.T) {
	assert.Equal(t, "/home/op/cloud/backup", mirror.ResolveDestination(bridgeLocal, "backup"))
	assert.Equal(t, "/srv/backup", mirror.ResolveDestination(bridgeLocal, "/srv/backup"))
}

func TestBuildJob(t *testing.T) {
	job := mirror.BuildJob(syncSettings(), "/home/op/cloud/backup")

	assert.Equal(t, wantCommand, job.Command)
	assert.Equal(t, wantLine, job.CrontabLine())
}

func TestValidateSchedule(t *testing.T) {
	valid := []string{"0 * * * *", "*/5 * * * *", "0 0 * * 0", "15 3 1 * *"}
	for _, expr := range valid {
		assert.NoError(t, mirror.ValidateSchedule(expr), expr)
	}

	invalid := []string{"", "banana", "0 * * *", "60 * * * *", "@hourly"}
	for _, expr := range invalid {
		err := mirror.ValidateSchedule(expr)
		require.Error(t, err, expr)
		assert.True(t, skyerr.IsErrorCode(err, skyerr.ErrScheduleInvalid), expr)
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("mirrors_and_registers", func(t *testing.T) {
		fs := syncFS(t)
		eff := testutil.NewMockEffector()

		result, err := mirror.Run(ctx, eff, fs, syncSettings(), bridgeLocal)

		require.NoError(t, err)
		assert.True(t, result.Mirrored)
		assert.True(t, result.Registered)
		assert.False(t, result.Skipped)
		assert.Equal(t, []string{wantCommand}, eff.ShellRuns())
		assert.Equal(t, wantLine+"\n", eff.ScheduleTable())
	})

	t.Run("registration_is_literal_dedup", func(t *testing.T) {
		fs := syncFS(t)
		eff := testutil.NewMockEffector().WithScheduleTable(wantLine + "\n")

		result, err := mirror.Run(ctx, eff, fs, syncSettings(), bridgeLocal)

		require.NoError(t, err)
		assert.True(t, result.Mirrored, "mirror runs even when already registered")
		assert.False(t, result.Registered)
		assert.Equal(t, 0, eff.CallCount("InstallScheduleTable"))
	})

	t.Run("second_run_appends_once", func(t *testing.T) {
		fs := syncFS(t)
		eff := testutil.NewMockEffector()

		_, err := mirror.Run(ctx, eff, fs, syncSettings(), bridgeLocal)
		require.NoError(t, err)
		_, err = mirror.Run(ctx, eff, fs, syncSettings(), bridgeLocal)
		require.NoError(t, err)

		assert.Equal(t, 1, strings.Count(eff.ScheduleTable(), wantCommand))
	})

	t.Run("preserves_existing_crontab_lines", func(t *testing.T) {
		existing := "0 0 * * * /usr/local/bin/housekeeping.sh"
		fs := syncFS(t)
		eff := testutil.NewMockEffector().WithScheduleTable(existing)

		_, err := mirror.Run(ctx, eff, fs, syncSettings(), bridgeLocal)

		require.NoError(t, err)
		assert.Equal(t, existing+"\n"+wantLine+"\n", eff.ScheduleTable())
	})

	t.Run("missing_destination_skips_everything", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		require.NoError(t, fs.MkdirAll("/home/op/sync", 0o755))
		require.NoError(t, fs.WriteFile("/home/op/sync/notes.txt", []byte("n"), 0o644))
		eff := testutil.NewMockEffector()

		result, err := mirror.Run(ctx, eff, fs, syncSettings(), bridgeLocal)

		require.NoError(t, err)
		assert.True(t, result.Skipped)
		assert.Empty(t, eff.Calls())
	})

	t.Run("destination_must_be_a_directory", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		require.NoError(t, fs.MkdirAll("/home/op/sync", 0o755))
		require.NoError(t, fs.WriteFile("/home/op/sync/notes.txt", []byte("n"), 0o644))
		require.NoError(t, fs.WriteFile("/home/op/cloud/backup", []byte("a file"), 0o644))
		eff := testutil.NewMockEffector()

		result, err := mirror.Run(ctx, eff, fs, syncSettings(), bridgeLocal)

		require.NoError(t, err)
		assert.True(t, result.Skipped)
	})

	t.Run("empty_source_is_a_noop", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		require.NoError(t, fs.MkdirAll("/home/op/sync", 0o755))
		require.NoError(t, fs.MkdirAll("/home/op/cloud/backup", 0o755))
		eff := testutil.NewMockEffector()

		result, err := mirror.Run(ctx, eff, fs, syncSettings(), bridgeLocal)

		require.NoError(t, err)
		assert.True(t, result.SourceEmpty)
		assert.Empty(t, eff.Calls(), "empty source must not mirror or register")
	})

	t.Run("recovery_dir_is_not_content", func(t *testing.T) {
		fs := testutil.NewMemoryFS()
		require.NoError(t, fs.MkdirAll("/home/op/sync/.sync-recovery", 0o755))
		require.NoError(t, fs.MkdirAll("/home/op/cloud/backup", 0o755))
		eff := testutil.NewMockEffector()

		result, err := mirror.Run(ctx, eff, fs, syncSettings(), bridgeLocal)

		require.NoError(t, err)
		assert.True(t, result.SourceEmpty)
	})

	t.Run("recovery_dir_plus_content_mirrors", func(t *testing.T) {
		fs := syncFS(t)
		require.NoError(t, fs.MkdirAll("/home/op/sync/.sync-recovery", 0o755))
		eff := testutil.NewMockEffector()

		result, err := mirror.Run(ctx, eff, fs, syncSettings(), bridgeLocal)

		require.NoError(t, err)
		assert.True(t, result.Mirrored)
	})

	t.Run("invalid_schedule_fails_before_any_mutation", func(t *testing.T) {
		fs := syncFS(t)
		eff := testutil.NewMockEffector()
		cfg := syncSettings()
		cfg.Schedule = "banana"

		_, err := mirror.Run(ctx, eff, fs, cfg, bridgeLocal)

		require.Error(t, err)
		assert.True(t, skyerr.IsErrorCode(err, skyerr.ErrScheduleInvalid))
		assert.Empty(t, eff.Calls())
	})

	t.Run("mirror_failure_aborts_registration", func(t *testing.T) {
		fs := syncFS(t)
		eff := testutil.NewMockEffector().WithError("RunShell", errors.New("rsync: connection refused"))

		result, err := mirror.Run(ctx, eff, fs, syncSettings(), bridgeLocal)

		require.Error(t, err)
		assert.False(t, result.Mirrored)
		assert.Equal(t, 0, eff.CallCount("ReadScheduleTable"))
	})

	t.Run("crontab_read_failure", func(t *testing.T) {
		fs := syncFS(t)
		eff := testutil.NewMockEffector().WithError("ReadScheduleTable", errors.New("crontab: not permitted"))

		_, err := mirror.Run(ctx, eff, fs, syncSettings(), bridgeLocal)

		require.Error(t, err)
		assert.True(t, skyerr.IsErrorCode(err, skyerr.ErrPersistence))
	})

	t.Run("crontab_install_failure", func(t *testing.T) {
		fs := syncFS(t)
		eff := testutil.NewMockEffector().WithError("InstallScheduleTable", errors.New("crontab: not permitted"))

		_, err := mirror.Run(ctx, eff, fs, syncSettings(), bridgeLocal)

		require.Error(t, err)
		assert.True(t, skyerr.IsErrorCode(err, skyerr.ErrPersistence))
	})
}
