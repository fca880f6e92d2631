package system

import (
	"context"
	"io/fs"

	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/types"
)

// dryRunEffector logs every mutation at INFO and performs none of
// them. Reads pass through to the wrapped Effector so the plan reflects
// real system state.
type dryRunEffector struct {
	inner types.Effector
}

// NewDryRun wraps an Effector so that mutations are logged but not
// executed.
func NewDryRun(inner types.Effector) types.Effector {
	return &dryRunEffector{inner: inner}
}

func (d *dryRunEffector) PreseedPackage(_ context.Context, _ string) error {
	logging.GetLogger("dry-run").Info().Msg("Would preseed package questions")
	return nil
}

func (d *dryRunEffector) InstallPackage(_ context.Context, name string) error {
	logging.GetLogger("dry-run").Info().Str("package", name).Msg("Would install package")
	return nil
}

func (d *dryRunEffector) LookPath(binary string) (string, bool) {
	return d.inner.LookPath(binary)
}

func (d *dryRunEffector) WriteProtectedFile(path string, data []byte, mode fs.FileMode) error {
	logging.GetLogger("dry-run").Info().
		Str("path", path).
		Int("bytes", len(data)).
		Str("mode", mode.String()).
		Msg("Would write protected file")
	return nil
}

// AppendProtectedLine logs the path only: secret-store lines carry the
// credential in clear text and must never reach the log.
func (d *dryRunEffector) AppendProtectedLine(path, line string) error {
	logging.GetLogger("dry-run").Info().
		Str("path", path).
		Int("bytes", len(line)).
		Msg("Would append line")
	return nil
}

func (d *dryRunEffector) ReadProtectedFile(path string) ([]byte, error) {
	return d.inner.ReadProtectedFile(path)
}

func (d *dryRunEffector) MountTarget(_ context.Context, target string) error {
	logging.GetLogger("dry-run").Info().Str("target", target).Msg("Would mount target")
	return nil
}

func (d *dryRunEffector) MountFilesystem(_ context.Context, fsType, source, target, options string) error {
	logging.GetLogger("dry-run").Info().
		Str("fstype", fsType).
		Str("source", source).
		Str("target", target).
		Str("options", options).
		Msg("Would mount filesystem")
	return nil
}

func (d *dryRunEffector) IsMountPoint(path string) (bool, error) {
	return d.inner.IsMountPoint(path)
}

func (d *dryRunEffector) ReloadServiceManager(_ context.Context) error {
	logging.GetLogger("dry-run").Info().Msg("Would reload service manager")
	return nil
}

func (d *dryRunEffector) AddUserToGroup(_ context.Context, user, group string) error {
	logging.GetLogger("dry-run").Info().
		Str("user", user).
		Str("group", group).
		Msg("Would add user to group")
	return nil
}

func (d *dryRunEffector) ReadScheduleTable(ctx context.Context) (string, error) {
	return d.inner.ReadScheduleTable(ctx)
}

func (d *dryRunEffector) InstallScheduleTable(_ context.Context, content string) error {
	logging.GetLogger("dry-run").Info().
		Int("bytes", len(content)).
		Msg("Would install schedule table")
	return nil
}

func (d *dryRunEffector) RunShell(_ context.Context, command string) error {
	logging.GetLogger("dry-run").Info().Str("command", command).Msg("Would run command")
	return nil
}
