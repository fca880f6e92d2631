package types

import "io/fs"

// FS is the filesystem surface the reconcilers operate on. The real
// implementation is pkg/filesystem; tests use testutil.MemoryFS.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Lstat reports on the path itself without following symlinks.
	// The bridge resolver depends on this distinction.
	Lstat(name string) (fs.FileInfo, error)

	Remove(name string) error
}
