package filesystem

import (
	"io/fs"

	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/types"
)

// dryRunFS wraps a real filesystem, logging every mutation instead of
// performing it. Reads pass through so reconciliation checks still see
// the true state of the machine.
type dryRunFS struct {
	inner types.FS
}

// NewDryRun wraps inner so mutations are logged and skipped.
func NewDryRun(inner types.FS) types.FS {
	return &dryRunFS{inner: inner}
}

func (d *dryRunFS) Stat(name string) (fs.FileInfo, error) {
	return d.inner.Stat(name)
}

func (d *dryRunFS) ReadFile(name string) ([]byte, error) {
	return d.inner.ReadFile(name)
}

func (d *dryRunFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	logging.GetLogger("dry-run").Info().
		Str("path", name).
		Int("bytes", len(data)).
		Str("mode", perm.String()).
		Msg("Would write file")
	return nil
}

func (d *dryRunFS) MkdirAll(path string, perm fs.FileMode) error {
	logging.GetLogger("dry-run").Info().
		Str("path", path).
		Msg("Would create directory")
	return nil
}

func (d *dryRunFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return d.inner.ReadDir(name)
}

func (d *dryRunFS) Symlink(oldname, newname string) error {
	logging.GetLogger("dry-run").Info().
		Str("target", oldname).
		Str("path", newname).
		Msg("Would create symlink")
	return nil
}

func (d *dryRunFS) Readlink(name string) (string, error) {
	return d.inner.Readlink(name)
}

func (d *dryRunFS) Lstat(name string) (fs.FileInfo, error) {
	return d.inner.Lstat(name)
}

func (d *dryRunFS) Remove(name string) error {
	logging.GetLogger("dry-run").Info().
		Str("path", name).
		Msg("Would remove")
	return nil
}
