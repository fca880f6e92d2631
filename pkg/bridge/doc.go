// Package bridge connects the foreign host's cloud namespace to the
// local one. The foreign mount exposes a marker symlink whose target is
// a drive-letter path from the remote side; the resolver translates
// that target into the local mount namespace and creates a single
// bridging symlink at a fixed local path.
//
// The bridge owns exactly one object: the local symlink. Anything
// already occupying its path, whatever it is, counts as satisfied and
// is never touched.
package bridge
