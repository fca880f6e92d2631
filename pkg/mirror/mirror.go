package mirror

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/avasek/skyhook/pkg/config"
	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/types"
)

// Result reports what one scheduler run did.
type Result struct {
	// Skipped is true when the destination directory was missing and
	// the whole step was passed over.
	Skipped bool

	// SourceEmpty is true when the source had no content besides the
	// recovery directory; mirroring an empty source would wipe the
	// destination, so nothing ran.
	SourceEmpty bool

	// Mirrored is true when the mirror command ran this invocation.
	Mirrored bool

	// Registered is true when the crontab line was appended this
	// invocation (false when it was already present).
	Registered bool

	Job types.SyncJob
}

// ResolveDestination anchors a relative destination under the bridge's
// local path. Absolute destinations are used as-is.
func ResolveDestination(bridgeLocal, destination string) string {
	if filepath.IsAbs(destination) {
		return destination
	}
	return filepath.Join(bridgeLocal, destination)
}

// BuildJob composes the mirror command and its crontab registration.
// The recovery directory is excluded from both comparison and deletion.
func BuildJob(cfg config.SyncSettings, destination string) types.SyncJob {
	command := fmt.Sprintf("rsync -a --delete --exclude=%s/ %s/ %s/",
		cfg.RecoveryDir, cfg.Source, destination)
	return types.SyncJob{
		Command:  command,
		Schedule: cfg.Schedule,
		LogPath:  cfg.LogPath,
	}
}

// Run mirrors the source into the bridged destination and registers the
// recurring job. Missing destination and empty source are both no-ops,
// not errors: the first means the bridge target is not ready, the
// second would wipe the destination.
func Run(ctx context.Context, eff types.Effector, fs types.FS, cfg config.SyncSettings, bridgeLocal string) (Result, error) {
	logger := logging.GetLogger("mirror")

	if err := ValidateSchedule(cfg.Schedule); err != nil {
		return Result{}, err
	}

	destination := ResolveDestination(bridgeLocal, cfg.Destination)
	job := BuildJob(cfg, destination)
	result := Result{Job: job}

	info, err := fs.Stat(destination)
	if err != nil || !info.IsDir() {
		logger.Warn().Str("destination", destination).
			Msg("Sync destination is not a directory, skipping sync step")
		result.Skipped = true
		return result, nil
	}

	hasContent, err := sourceHasContent(fs, cfg.Source, cfg.RecoveryDir)
	if err != nil {
		logger.Warn().Err(err).Str("source", cfg.Source).
			Msg("Sync source unreadable, skipping sync step")
		result.Skipped = true
		return result, nil
	}
	if !hasContent {
		logger.Warn().Str("source", cfg.Source).
			Msg("Sync source is empty, skipping mirror to protect the destination")
		result.SourceEmpty = true
		return result, nil
	}

	logger.Info().Str("command", job.Command).Msg("Mirroring to bridged destination")
	done := logging.LogOperationStart(logger, "mirror")
	err = eff.RunShell(ctx, job.Command)
	done()
	if err != nil {
		return result, errors.Wrap(err, errors.ErrInternal, "mirror command failed")
	}
	result.Mirrored = true

	registered, err := registerJob(ctx, eff, job)
	if err != nil {
		return result, err
	}
	result.Registered = registered
	return result, nil
}

// sourceHasContent reports whether source holds anything besides the
// reserved recovery directory.
func sourceHasContent(fs types.FS, source, recoveryDir string) (bool, error) {
	entries, err := fs.ReadDir(source)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.Name() != recoveryDir {
			return true, nil
		}
	}
	return false, nil
}

// registerJob appends the crontab line unless the literal command text
// is already somewhere in the table.
func registerJob(ctx context.Context, eff types.Effector, job types.SyncJob) (bool, error) {
	logger := logging.GetLogger("mirror")

	current, err := eff.ReadScheduleTable(ctx)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrPersistence, "failed to read schedule table")
	}

	if strings.Contains(current, job.Command) {
		logger.Info().Msg("Recurring sync already registered")
		return false, nil
	}

	table := current
	if table != "" && !strings.HasSuffix(table, "\n") {
		table += "\n"
	}
	table += job.CrontabLine() + "\n"

	if err := eff.InstallScheduleTable(ctx, table); err != nil {
		return false, errors.Wrap(err, errors.ErrPersistence, "failed to install schedule table")
	}

	logger.Info().Str("schedule", job.Schedule).Msg("Registered recurring sync")
	return true, nil
}
