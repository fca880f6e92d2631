package provision

import (
	"context"

	"github.com/avasek/skyhook/pkg/bridge"
	"github.com/avasek/skyhook/pkg/config"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/mirror"
	"github.com/avasek/skyhook/pkg/mount"
	"github.com/avasek/skyhook/pkg/system"
	"github.com/avasek/skyhook/pkg/types"
)

// DefaultKinds is the order the full pipeline reconciles mounts in.
// WebDAV first: it carries the primary store the bridge and mirror
// steps build on.
var DefaultKinds = []types.MountKind{types.MountWebDAV, types.MountSMB}

// UpOptions defines the options for the Up command.
type UpOptions struct {
	// Settings is the resolved configuration (required).
	Settings *config.Settings

	// Kinds restricts which mounts are reconciled. Empty means all of
	// DefaultKinds.
	Kinds []types.MountKind

	// Qualifier selects a marker variant on the foreign side.
	Qualifier string

	// Seams. Nil values default to the real system implementations.
	Effector  types.Effector
	FS        types.FS
	Collector mount.Collector
	User      system.Account
}

// UpResult reports what the pipeline changed.
type UpResult struct {
	Mounts []mount.Outcome
	Bridge types.SymlinkBridge
	Mirror mirror.Result
}

// Up runs the whole pipeline: every requested mount, then the bridge,
// then the mirror. The first failure aborts the run; idempotency on
// the next invocation picks up where this one stopped.
func Up(ctx context.Context, opts UpOptions) (*UpResult, error) {
	logger := logging.GetLogger("provision")
	logger.Debug().Str("command", "up").Msg("Executing command")

	env, err := buildEnv(opts.Settings, opts.Effector, opts.FS, opts.Collector, opts.User)
	if err != nil {
		return nil, err
	}

	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = DefaultKinds
	}

	result := &UpResult{}
	for _, kind := range kinds {
		out, err := ensureMount(ctx, env, kind)
		if err != nil {
			return result, err
		}
		result.Mounts = append(result.Mounts, out)
	}

	br, err := bridge.Resolve(env.FS, opts.Settings.Bridge, opts.Qualifier)
	if err != nil {
		return result, err
	}
	result.Bridge = br

	mr, err := mirror.Run(ctx, env.Effector, env.FS, opts.Settings.Sync, opts.Settings.Bridge.Local)
	if err != nil {
		return result, err
	}
	result.Mirror = mr

	logger.Info().
		Int("mounts", len(result.Mounts)).
		Bool("bridgeCreated", !br.AlreadyPresent).
		Bool("mirrored", mr.Mirrored).
		Str("command", "up").
		Msg("Command finished")
	return result, nil
}

// ensureMount resolves the provider for kind and runs it with the
// hooks its registration attached.
func ensureMount(ctx context.Context, env mount.Env, kind types.MountKind) (mount.Outcome, error) {
	reg, err := mount.GetProvider(kind)
	if err != nil {
		return mount.Outcome{}, err
	}
	return reg.Provider.Ensure(ctx, env, reg.Hooks)
}
