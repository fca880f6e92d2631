package mount

import (
	"context"

	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/logging"
)

// ClientSpec names the tooling one provider depends on.
type ClientSpec struct {
	// Helper is the mount helper binary looked up on PATH.
	Helper string

	// Package is installed when the helper is missing.
	Package string
}

// EnsureClient installs the client package when its helper binary is
// missing, running the provider's hooks around the install. Returns
// true when an install happened this run.
func EnsureClient(ctx context.Context, env Env, spec ClientSpec, hooks Hooks) (bool, error) {
	logger := logging.GetLogger("mount")

	if path, ok := env.Effector.LookPath(spec.Helper); ok {
		logger.Debug().Str("helper", path).Msg("Client helper already installed")
		return false, nil
	}

	logger.Info().Str("package", spec.Package).Msg("Client helper missing, installing package")

	if hooks.PreInstall != nil {
		if err := hooks.PreInstall(ctx, env); err != nil {
			return false, errors.Wrapf(err, errors.ErrInstall, "pre-install step failed for %s", spec.Package)
		}
	}

	if err := env.Effector.InstallPackage(ctx, spec.Package); err != nil {
		return false, errors.Wrapf(err, errors.ErrInstall, "failed to install %s", spec.Package)
	}

	if hooks.PostInstall != nil {
		if err := hooks.PostInstall(ctx, env); err != nil {
			return false, errors.Wrapf(err, errors.ErrInstall, "post-install step failed for %s", spec.Package)
		}
	}

	return true, nil
}
