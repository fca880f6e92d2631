package types

import (
	"context"
	"io/fs"
)

// Effector is the narrow capability surface for privileged system
// mutation. Reconciliation logic never shells out directly; it holds an
// Effector so tests can substitute a recording mock and --dry-run can
// substitute a logging decorator.
//
// Implementations assume an already-elevated session obtained once at
// process start; no method re-authenticates.
type Effector interface {
	// PreseedPackage pipes debconf selections in ahead of an install so
	// package questions are pre-answered.
	PreseedPackage(ctx context.Context, selections string) error

	// InstallPackage installs a package non-interactively.
	InstallPackage(ctx context.Context, name string) error

	// LookPath reports whether a helper binary resolves on PATH.
	LookPath(binary string) (string, bool)

	// WriteProtectedFile writes a root-owned file with the given mode,
	// creating parent directories as needed.
	WriteProtectedFile(path string, data []byte, mode fs.FileMode) error

	// AppendProtectedLine appends one line to a root-owned file,
	// creating the file if it does not exist.
	AppendProtectedLine(path, line string) error

	// ReadProtectedFile reads a root-owned file. Missing files return
	// empty content and no error.
	ReadProtectedFile(path string) ([]byte, error)

	// MountTarget mounts a target path whose source is resolved through
	// the filesystem table.
	MountTarget(ctx context.Context, target string) error

	// MountFilesystem mounts source on target with an explicit
	// filesystem type and option string.
	MountFilesystem(ctx context.Context, fsType, source, target, options string) error

	// IsMountPoint reports whether path is an active mount point.
	IsMountPoint(path string) (bool, error)

	// ReloadServiceManager reloads the service manager's unit cache
	// after the filesystem table changes.
	ReloadServiceManager(ctx context.Context) error

	// AddUserToGroup adds user to a supplementary group. Membership
	// takes effect at the user's next login.
	AddUserToGroup(ctx context.Context, user, group string) error

	// ReadScheduleTable returns the invoking user's schedule table.
	// An absent table is empty content, not an error.
	ReadScheduleTable(ctx context.Context) (string, error)

	// InstallScheduleTable replaces the invoking user's schedule table.
	InstallScheduleTable(ctx context.Context, content string) error

	// RunShell runs a shell command line with inherited stdio.
	RunShell(ctx context.Context, command string) error
}
