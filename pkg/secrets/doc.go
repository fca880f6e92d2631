// Package secrets reconciles the on-disk credential stores: the shared
// davfs2 secrets file and the mount.cifs login file. Both are written
// through the Effector with owner-only permission before any secret
// byte lands on disk.
package secrets
