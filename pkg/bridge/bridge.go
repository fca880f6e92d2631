package bridge

import (
	"os"
	"path/filepath"

	"github.com/avasek/skyhook/pkg/config"
	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/types"
)

// MarkerName returns the marker file name for an optional qualifier,
// e.g. "cloudroot" or "cloudroot-work".
func MarkerName(base, qualifier string) string {
	if qualifier == "" {
		return base
	}
	return base + "-" + qualifier
}

// Resolve reads the foreign marker, translates its target, and ensures
// the local bridging symlink exists. A missing or unreadable marker is
// MISSING_REMOTE_MARKER: the remote host has not been prepared, and the
// run must stop before sync work depends on the bridged namespace.
func Resolve(fs types.FS, cfg config.BridgeSettings, qualifier string) (types.SymlinkBridge, error) {
	logger := logging.GetLogger("bridge")

	markerPath := filepath.Join(cfg.Foreign, MarkerName(cfg.Marker, qualifier))

	target, err := fs.Readlink(markerPath)
	if err != nil {
		return types.SymlinkBridge{}, errors.Wrapf(err, errors.ErrMissingMarker,
			"marker %s not found: the remote host is not prepared for bridging", markerPath).
			WithDetail("foreign", cfg.Foreign)
	}

	resolved := TranslateForeignPath(target, cfg)
	logger.Debug().
		Str("marker", markerPath).
		Str("target", target).
		Str("resolved", resolved).
		Msg("Translated foreign marker")

	bridge := types.SymlinkBridge{
		LocalPath:      cfg.Local,
		ResolvedTarget: resolved,
	}

	// Lstat so a dangling symlink still counts as occupying the path.
	if _, err := fs.Lstat(cfg.Local); err == nil {
		bridge.AlreadyPresent = true
		logger.Info().Str("path", cfg.Local).Msg("Bridge path already occupied, leaving it alone")
		return bridge, nil
	} else if !os.IsNotExist(err) {
		return types.SymlinkBridge{}, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to inspect bridge path %s", cfg.Local)
	}

	if err := fs.Symlink(resolved, cfg.Local); err != nil {
		return types.SymlinkBridge{}, errors.Wrapf(err, errors.ErrSymlinkCreate,
			"failed to create bridge symlink %s", cfg.Local).
			WithDetail("target", resolved)
	}

	logger.Info().Str("path", cfg.Local).Str("target", resolved).Msg("Created bridge symlink")
	return bridge, nil
}
