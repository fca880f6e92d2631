package provision

import (
	"context"

	"github.com/avasek/skyhook/pkg/config"
	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/mirror"
	"github.com/avasek/skyhook/pkg/types"
)

// SyncOptions defines the options for the Sync command.
type SyncOptions struct {
	Settings *config.Settings

	Effector types.Effector
	FS       types.FS
}

// Sync runs the one-way mirror and registers the recurring job. It
// assumes the bridge step has already run; a missing destination is a
// skip, not an error.
func Sync(ctx context.Context, opts SyncOptions) (mirror.Result, error) {
	logger := logging.GetLogger("provision")
	logger.Debug().Str("command", "sync").Msg("Executing command")

	if opts.Settings == nil {
		return mirror.Result{}, errors.New(errors.ErrInternal, "provisioning requires resolved settings")
	}

	eff, fsys := seams(opts.Settings, opts.Effector, opts.FS)
	res, err := mirror.Run(ctx, eff, fsys, opts.Settings.Sync, opts.Settings.Bridge.Local)
	if err != nil {
		return res, err
	}

	logger.Info().
		Str("command", "sync").
		Bool("mirrored", res.Mirrored).
		Bool("registered", res.Registered).
		Msg("Command finished")
	return res, nil
}
