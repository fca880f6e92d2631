package types

import (
	"fmt"
	"strings"
)

// MountKind identifies the remote-storage protocol behind a mount.
type MountKind string

const (
	// MountWebDAV mounts an HTTP-based WebDAV share through davfs2.
	MountWebDAV MountKind = "webdav"

	// MountSMB mounts an SMB/CIFS share through cifs-utils.
	MountSMB MountKind = "smb"
)

// Valid reports whether k names a known mount kind.
func (k MountKind) Valid() bool {
	return k == MountWebDAV || k == MountSMB
}

// MountSpec describes one remote share and where it lands locally.
type MountSpec struct {
	Kind MountKind

	// RemoteAddress is the full URL for WebDAV, the bare host for SMB.
	RemoteAddress string

	// RemoteSharePath is the share name (SMB) or an optional path below
	// the URL (WebDAV).
	RemoteSharePath string

	LocalMountPoint string

	// CredentialRef names the secret-store file this mount's
	// credentials live in.
	CredentialRef string
}

// Source returns the persistence key for this mount: the string every
// store (secret file, fstab) is searched for as a literal line prefix.
// It is never parsed back, only matched.
func (s MountSpec) Source() string {
	switch s.Kind {
	case MountSMB:
		return "//" + s.RemoteAddress + "/" + strings.Trim(s.RemoteSharePath, "/")
	default:
		if s.RemoteSharePath == "" {
			return s.RemoteAddress
		}
		return strings.TrimRight(s.RemoteAddress, "/") + "/" + strings.TrimLeft(s.RemoteSharePath, "/")
	}
}

// FstabEntry is one line of the filesystem table. Dump and Pass stay
// zero for every mount managed here.
type FstabEntry struct {
	Source  string
	Target  string
	FSType  string
	Options string
	Dump    int
	Pass    int
}

// Line renders the whitespace-separated persisted form.
func (e FstabEntry) Line() string {
	return fmt.Sprintf("%s %s %s %s %d %d", e.Source, e.Target, e.FSType, e.Options, e.Dump, e.Pass)
}
