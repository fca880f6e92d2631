package provision

import (
	"context"

	"github.com/avasek/skyhook/pkg/config"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/mount"
	"github.com/avasek/skyhook/pkg/system"
	"github.com/avasek/skyhook/pkg/types"
)

// MountOptions defines the options for the Mount command.
type MountOptions struct {
	Settings *config.Settings
	Kind     types.MountKind

	Effector  types.Effector
	FS        types.FS
	Collector mount.Collector
	User      system.Account
}

// Mount reconciles a single protocol's mount.
func Mount(ctx context.Context, opts MountOptions) (mount.Outcome, error) {
	logger := logging.GetLogger("provision")
	logger.Debug().Str("command", "mount").Str("kind", string(opts.Kind)).Msg("Executing command")

	env, err := buildEnv(opts.Settings, opts.Effector, opts.FS, opts.Collector, opts.User)
	if err != nil {
		return mount.Outcome{}, err
	}

	out, err := ensureMount(ctx, env, opts.Kind)
	if err != nil {
		return out, err
	}

	logger.Info().Str("command", "mount").Str("kind", string(opts.Kind)).Msg("Command finished")
	return out, nil
}
