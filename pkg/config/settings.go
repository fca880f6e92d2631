package config

// Settings is the fully resolved configuration. It is built once by
// Load and handed down by parameter; no package reads it from a global.
type Settings struct {
	WebDAV WebDAVSettings `koanf:"webdav" toml:"webdav" yaml:"webdav"`
	SMB    SMBSettings    `koanf:"smb" toml:"smb" yaml:"smb"`
	Bridge BridgeSettings `koanf:"bridge" toml:"bridge" yaml:"bridge"`
	Sync   SyncSettings   `koanf:"sync" toml:"sync" yaml:"sync"`
	Fstab  FstabSettings  `koanf:"fstab" toml:"fstab" yaml:"fstab"`

	// DryRun is set from the --dry-run flag, never from a file.
	DryRun bool `koanf:"-" toml:"-" yaml:"-"`
}

// WebDAVSettings configures the davfs2-backed mount.
type WebDAVSettings struct {
	// URL of the WebDAV endpoint. Empty means collect interactively.
	URL        string `koanf:"url" toml:"url" yaml:"url"`
	MountPoint string `koanf:"mountpoint" toml:"mountpoint" yaml:"mountpoint"`

	// Secrets is the davfs2 secrets file path.
	Secrets string `koanf:"secrets" toml:"secrets" yaml:"secrets"`
	Options string `koanf:"options" toml:"options" yaml:"options"`
	Package string `koanf:"package" toml:"package" yaml:"package"`
	Helper  string `koanf:"helper" toml:"helper" yaml:"helper"`
	Group   string `koanf:"group" toml:"group" yaml:"group"`

	// Verify enables the pre-flight endpoint probe.
	Verify bool `koanf:"verify" toml:"verify" yaml:"verify"`
}

// SMBSettings configures the cifs-backed mount.
type SMBSettings struct {
	Host       string `koanf:"host" toml:"host" yaml:"host"`
	Share      string `koanf:"share" toml:"share" yaml:"share"`
	MountPoint string `koanf:"mountpoint" toml:"mountpoint" yaml:"mountpoint"`

	// Credentials is the mount.cifs login file path.
	Credentials string `koanf:"credentials" toml:"credentials" yaml:"credentials"`
	Package     string `koanf:"package" toml:"package" yaml:"package"`
	Helper      string `koanf:"helper" toml:"helper" yaml:"helper"`
	Vers        string `koanf:"vers" toml:"vers" yaml:"vers"`
}

// BridgeSettings configures the foreign-namespace symlink bridge.
type BridgeSettings struct {
	// Foreign is the mount point of the foreign host's filesystem.
	Foreign string `koanf:"foreign" toml:"foreign" yaml:"foreign"`

	// Marker is the marker symlink's path relative to Foreign.
	Marker string `koanf:"marker" toml:"marker" yaml:"marker"`

	// Local is where the bridging symlink is created.
	Local string `koanf:"local" toml:"local" yaml:"local"`

	// DriveBase maps drive letter X to <DriveBase>/x unless Drives
	// carries an explicit entry for the letter.
	DriveBase string            `koanf:"drivebase" toml:"drivebase" yaml:"drivebase"`
	Drives    map[string]string `koanf:"drives" toml:"drives,omitempty" yaml:"drives,omitempty"`
}

// SyncSettings configures the recurring one-way mirror.
type SyncSettings struct {
	Source string `koanf:"source" toml:"source" yaml:"source"`

	// Destination is relative to the resolved bridge target.
	Destination string `koanf:"destination" toml:"destination" yaml:"destination"`
	LogPath     string `koanf:"log" toml:"log" yaml:"log"`
	Schedule    string `koanf:"schedule" toml:"schedule" yaml:"schedule"`

	// RecoveryDir is excluded from both comparison and deletion.
	RecoveryDir string `koanf:"recovery" toml:"recovery" yaml:"recovery"`
}

// FstabSettings locates the filesystem table.
type FstabSettings struct {
	Path string `koanf:"path" toml:"path" yaml:"path"`
}
