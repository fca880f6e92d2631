package main

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "First-boot remote storage provisioning"
	MsgUpShort         = "Reconcile mounts, bridge, and sync in one pass"
	MsgMountShort      = "Reconcile a single remote mount"
	MsgMountLong       = "Mount reconciles one protocol only: client tooling, credentials,\nthe persisted boot entry, and the live mount."
	MsgBridgeShort     = "Resolve the foreign marker and create the local symlink"
	MsgBridgeLong      = "Bridge reads the marker link on the foreign side of the mount,\ntranslates its drive-lettered target, and links it under the local home."
	MsgSyncShort       = "Mirror the sync source and register the recurring job"
	MsgSyncLong        = "Sync runs the one-way mirror into the bridged destination and adds\nthe crontab line when it is not already registered. A missing\ndestination or an empty source is skipped, not an error."
	MsgStatusShort     = "Show what is reconciled without changing anything"
	MsgStatusLong      = "Status inspects the secret stores, the filesystem table, the live\nmounts, the bridge path, and the schedule table. Secrets are reported\nby subject only; no secret value appears in any output."
	MsgConfigShort     = "Inspect configuration"
	MsgConfigShowShort = "Print the fully resolved settings"
	MsgConfigShowLong  = "Config show renders the settings after every layer is applied:\nembedded defaults, SKYHOOK_* environment variables, and the\noverrides file."
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgDryRunNotice = "\nDRY RUN MODE - No changes were made"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDebug        = "Force DEBUG level logging"
	MsgFlagDryRun       = "Preview changes without executing them"
	MsgFlagConfig       = "Path to a key=value overrides file"
	MsgFlagKind         = "Restrict reconciliation to the given mount kinds (webdav, smb)"
	MsgFlagQualifier    = "Marker variant to resolve on the foreign side"
	MsgFlagFormat       = "Output format (auto, term, text, yaml)"
	MsgFlagConfigFormat = "Output format (toml, yaml)"
	MsgFlagAddress      = "Override the remote address (WebDAV URL or SMB host)"
	MsgFlagShare        = "Override the SMB share name"
	MsgFlagMountPoint   = "Override the local mount point"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/up-long.txt
	msgUpLongRaw string
	MsgUpLong    = strings.TrimSpace(msgUpLongRaw)

	//go:embed msgs/up-example.txt
	msgUpExampleRaw string
	MsgUpExample    = strings.TrimSpace(msgUpExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
