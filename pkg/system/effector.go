package system

import (
	"context"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/types"
)

// execEffector implements types.Effector by shelling out. It assumes an
// already-elevated session; nothing here re-authenticates.
type execEffector struct{}

// New creates the exec-backed Effector.
func New() types.Effector {
	return &execEffector{}
}

func (e *execEffector) PreseedPackage(ctx context.Context, selections string) error {
	logging.LogCommand("debconf-set-selections", nil)
	cmd := exec.CommandContext(ctx, "debconf-set-selections")
	cmd.Stdin = strings.NewReader(selections)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, errors.ErrInstall, "failed to preseed package questions")
	}
	return nil
}

func (e *execEffector) InstallPackage(ctx context.Context, name string) error {
	logger := logging.GetLogger("system")

	logging.LogCommand("apt-get", []string{"install", "-y", name})
	cmd := exec.CommandContext(ctx, "apt-get", "install", "-y", name)
	cmd.Env = append(os.Environ(), "DEBIAN_FRONTEND=noninteractive")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrInstall, "failed to install package %s", name)
	}

	logger.Info().Str("package", name).Msg("Package installed")
	return nil
}

func (e *execEffector) LookPath(binary string) (string, bool) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", false
	}
	return path, true
}

func (e *execEffector) WriteProtectedFile(path string, data []byte, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent directory for %s", path)
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	// WriteFile honors the umask on creation; force the exact mode.
	if err := os.Chmod(path, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to set mode on %s", path)
	}
	return nil
}

func (e *execEffector) AppendProtectedLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s for append", path)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to append to %s", path)
	}
	return nil
}

func (e *execEffector) ReadProtectedFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	return content, nil
}

func (e *execEffector) MountTarget(ctx context.Context, target string) error {
	logging.LogCommand("mount", []string{target})
	cmd := exec.CommandContext(ctx, "mount", target)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrMount, "failed to mount %s", target)
	}
	return nil
}

func (e *execEffector) MountFilesystem(ctx context.Context, fsType, source, target, options string) error {
	args := []string{"-t", fsType, "-o", options, source, target}
	logging.LogCommand("mount", args)
	cmd := exec.CommandContext(ctx, "mount", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrMount, "failed to mount %s on %s", source, target)
	}
	return nil
}

func (e *execEffector) ReloadServiceManager(ctx context.Context) error {
	logging.LogCommand("systemctl", []string{"daemon-reload"})
	cmd := exec.CommandContext(ctx, "systemctl", "daemon-reload")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to reload service manager")
	}
	return nil
}

func (e *execEffector) AddUserToGroup(ctx context.Context, user, group string) error {
	logging.LogCommand("usermod", []string{"-aG", group, user})
	cmd := exec.CommandContext(ctx, "usermod", "-aG", group, user)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrInstall, "failed to add %s to group %s", user, group)
	}
	return nil
}

func (e *execEffector) ReadScheduleTable(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "crontab", "-l")
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		// crontab -l exits 1 when the user has no table yet
		if strings.Contains(stderr.String(), "no crontab") {
			return "", nil
		}
		return "", errors.Wrap(err, errors.ErrInternal, "failed to read schedule table")
	}
	return string(out), nil
}

func (e *execEffector) InstallScheduleTable(ctx context.Context, content string) error {
	logging.LogCommand("crontab", []string{"-"})
	cmd := exec.CommandContext(ctx, "crontab", "-")
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, errors.ErrPersistence, "failed to install schedule table")
	}
	return nil
}

func (e *execEffector) RunShell(ctx context.Context, command string) error {
	logging.LogCommand("/bin/sh", []string{"-c", command})
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "command failed: %s", command)
	}
	return nil
}
