package provision

import (
	"github.com/avasek/skyhook/pkg/bridge"
	"github.com/avasek/skyhook/pkg/config"
	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/filesystem"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/types"
)

// BridgeOptions defines the options for the Bridge command.
type BridgeOptions struct {
	Settings  *config.Settings
	Qualifier string

	FS types.FS
}

// Bridge resolves the foreign marker and establishes the local symlink
// without touching mounts or the mirror.
func Bridge(opts BridgeOptions) (types.SymlinkBridge, error) {
	logger := logging.GetLogger("provision")
	logger.Debug().Str("command", "bridge").Msg("Executing command")

	if opts.Settings == nil {
		return types.SymlinkBridge{}, errors.New(errors.ErrInternal, "provisioning requires resolved settings")
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	if opts.Settings.DryRun {
		fsys = filesystem.NewDryRun(fsys)
	}

	br, err := bridge.Resolve(fsys, opts.Settings.Bridge, opts.Qualifier)
	if err != nil {
		return br, err
	}

	logger.Info().Str("command", "bridge").Bool("created", !br.AlreadyPresent).Msg("Command finished")
	return br, nil
}
