package provision

import (
	"github.com/avasek/skyhook/pkg/config"
	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/filesystem"
	"github.com/avasek/skyhook/pkg/mount"
	"github.com/avasek/skyhook/pkg/prompt"
	"github.com/avasek/skyhook/pkg/system"
	"github.com/avasek/skyhook/pkg/types"
)

// seams fills in the real effector and filesystem where the caller
// passed nil, then applies the dry-run decorators last so a supplied
// double is wrapped the same way the real thing would be.
func seams(settings *config.Settings, eff types.Effector, fsys types.FS) (types.Effector, types.FS) {
	if eff == nil {
		eff = system.New()
	}
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	if settings.DryRun {
		eff = system.NewDryRun(eff)
		fsys = filesystem.NewDryRun(fsys)
	}
	return eff, fsys
}

// buildEnv assembles the environment providers reconcile with.
func buildEnv(settings *config.Settings, eff types.Effector, fsys types.FS, col mount.Collector, user system.Account) (mount.Env, error) {
	if settings == nil {
		return mount.Env{}, errors.New(errors.ErrInternal, "provisioning requires resolved settings")
	}

	eff, fsys = seams(settings, eff, fsys)
	if col == nil {
		col = prompt.NewTerminal()
	}
	if user.Name == "" {
		resolved, err := system.InvokingUser()
		if err != nil {
			return mount.Env{}, err
		}
		user = resolved
	}

	return mount.Env{
		Effector:  eff,
		FS:        fsys,
		Collector: col,
		Settings:  settings,
		User:      user,
	}, nil
}
