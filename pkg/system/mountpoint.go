package system

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/avasek/skyhook/pkg/errors"
)

// IsMountPoint reports whether path is an active mount point. The
// primary check compares device numbers with the parent directory; a
// bind mount on the same device is caught by the /proc scan instead.
func (e *execEffector) IsMountPoint(path string) (bool, error) {
	path = filepath.Clean(path)
	if path == "/" {
		return true, nil
	}

	var self, parent unix.Stat_t
	if err := unix.Lstat(path, &self); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path)
	}
	if err := unix.Lstat(filepath.Dir(path), &parent); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat parent of %s", path)
	}

	if self.Dev != parent.Dev {
		return true, nil
	}

	return scanMountTable(path)
}

// scanMountTable checks /proc/self/mounts for an exact target match.
func scanMountTable(target string) (bool, error) {
	f, err := os.Open("/proc/self/mounts")
	if err != nil {
		// Not a Linux-style proc; the device check already said no.
		return false, nil
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && unescapeMountPath(fields[1]) == target {
			return true, nil
		}
	}
	return false, scanner.Err()
}

// unescapeMountPath decodes the octal escapes the kernel uses for
// spaces, tabs, newlines, and backslashes in mount table entries.
func unescapeMountPath(s string) string {
	replacer := strings.NewReplacer(
		`\040`, " ",
		`\011`, "\t",
		`\012`, "\n",
		`\134`, `\`,
	)
	return replacer.Replace(s)
}
