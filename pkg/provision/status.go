package provision

import (
	"context"
	"io/fs"
	"os"
	"strings"

	"github.com/avasek/skyhook/pkg/config"
	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/fstab"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/mirror"
	"github.com/avasek/skyhook/pkg/secrets"
	"github.com/avasek/skyhook/pkg/types"
)

// Bridge path states reported by Status.
const (
	BridgeAbsent    = "absent"
	BridgeSymlink   = "symlink"
	BridgeFile      = "file"
	BridgeDirectory = "directory"
)

// Report is the read-only reconciliation state of every store the
// pipeline manages. Secret stores are reported by subject only; no
// secret value ever reaches a report.
type Report struct {
	WebDAV WebDAVStatus `yaml:"webdav"`
	SMB    SMBStatus    `yaml:"smb"`
	Bridge BridgeStatus `yaml:"bridge"`
	Sync   SyncStatus   `yaml:"sync"`
}

// WebDAVStatus describes the davfs2 mount's stores.
type WebDAVStatus struct {
	MountPoint string   `yaml:"mountpoint"`
	Active     bool     `yaml:"active"`
	FstabEntry bool     `yaml:"fstab"`
	Subjects   []string `yaml:"subjects"`
}

// SMBStatus describes the cifs mount's stores.
type SMBStatus struct {
	MountPoint string `yaml:"mountpoint"`
	Active     bool   `yaml:"active"`
	FstabEntry bool   `yaml:"fstab"`
	LoginFile  bool   `yaml:"login"`
}

// BridgeStatus describes what occupies the local bridging path.
type BridgeStatus struct {
	Path   string `yaml:"path"`
	State  string `yaml:"state"`
	Target string `yaml:"target,omitempty"`
}

// SyncStatus describes the recurring mirror job.
type SyncStatus struct {
	Schedule   string `yaml:"schedule"`
	Command    string `yaml:"command"`
	Registered bool   `yaml:"registered"`
}

// StatusOptions defines the options for the Status command.
type StatusOptions struct {
	Settings *config.Settings

	Effector types.Effector
	FS       types.FS
}

// Status inspects every store without mutating anything.
func Status(ctx context.Context, opts StatusOptions) (*Report, error) {
	logger := logging.GetLogger("provision")
	logger.Debug().Str("command", "status").Msg("Executing command")

	if opts.Settings == nil {
		return nil, errors.New(errors.ErrInternal, "provisioning requires resolved settings")
	}

	cfg := opts.Settings
	eff, fsys := seams(cfg, opts.Effector, opts.FS)
	report := &Report{}

	fstabRaw, err := eff.ReadProtectedFile(cfg.Fstab.Path)
	if err != nil {
		return nil, err
	}
	entries := fstab.Parse(string(fstabRaw))

	report.WebDAV.MountPoint = cfg.WebDAV.MountPoint
	report.WebDAV.FstabEntry = hasTarget(entries, cfg.WebDAV.MountPoint)
	if report.WebDAV.Active, err = eff.IsMountPoint(cfg.WebDAV.MountPoint); err != nil {
		return nil, err
	}
	secretsRaw, err := eff.ReadProtectedFile(cfg.WebDAV.Secrets)
	if err != nil {
		return nil, err
	}
	report.WebDAV.Subjects = secrets.Subjects(string(secretsRaw))

	report.SMB.MountPoint = cfg.SMB.MountPoint
	report.SMB.FstabEntry = hasTarget(entries, cfg.SMB.MountPoint)
	if report.SMB.Active, err = eff.IsMountPoint(cfg.SMB.MountPoint); err != nil {
		return nil, err
	}
	login, err := eff.ReadProtectedFile(cfg.SMB.Credentials)
	if err != nil {
		return nil, err
	}
	report.SMB.LoginFile = len(login) > 0

	if report.Bridge, err = bridgeStatus(fsys, cfg.Bridge.Local); err != nil {
		return nil, err
	}

	destination := mirror.ResolveDestination(cfg.Bridge.Local, cfg.Sync.Destination)
	job := mirror.BuildJob(cfg.Sync, destination)
	report.Sync.Schedule = job.Schedule
	report.Sync.Command = job.Command
	table, err := eff.ReadScheduleTable(ctx)
	if err != nil {
		return nil, err
	}
	report.Sync.Registered = strings.Contains(table, job.Command)

	return report, nil
}

func bridgeStatus(fsys types.FS, path string) (BridgeStatus, error) {
	status := BridgeStatus{Path: path, State: BridgeAbsent}

	info, err := fsys.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return status, nil
		}
		return status, errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect bridge path %s", path)
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		status.State = BridgeSymlink
		// A dangling link still reports its target.
		if target, err := fsys.Readlink(path); err == nil {
			status.Target = target
		}
	case info.IsDir():
		status.State = BridgeDirectory
	default:
		status.State = BridgeFile
	}
	return status, nil
}

func hasTarget(entries []types.FstabEntry, target string) bool {
	for _, e := range entries {
		if e.Target == target {
			return true
		}
	}
	return false
}
