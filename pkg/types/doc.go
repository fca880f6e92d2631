// Package types defines the core types shared across skyhook: mount
// specifications, credential records, the persisted line formats for the
// secret store, fstab and crontab, and the filesystem interface the
// reconcilers run against.
package types
