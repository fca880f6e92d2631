// Package mount defines the provider model for remote-storage mounts.
// Each protocol (WebDAV, SMB) ships a Provider that reconciles its
// mount end to end and self-registers in init(); the CLI resolves
// providers through the registry instead of branching on kind.
//
// Per-provider install actions (package preseeding, group membership)
// are expressed as optional Hooks attached at registration time, so
// the shared install flow stays free of protocol knowledge.
package mount
