// Package smb mounts an SMB share through mount.cifs and records it in
// the filesystem table. Unlike the WebDAV flow it mounts directly from
// the composed parameters and persists afterwards, so a boot entry only
// ever describes a share that has mounted at least once.
package smb

import (
	"context"
	"fmt"

	"github.com/avasek/skyhook/pkg/config"
	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/fstab"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/mount"
	"github.com/avasek/skyhook/pkg/prompt"
	"github.com/avasek/skyhook/pkg/secrets"
	"github.com/avasek/skyhook/pkg/system"
	"github.com/avasek/skyhook/pkg/types"
)

func init() {
	mount.RegisterProvider(New(), mount.Hooks{})
}

// Provider reconciles the cifs-backed mount.
type Provider struct{}

// New creates the SMB provider.
func New() *Provider {
	return &Provider{}
}

func (p *Provider) Kind() types.MountKind {
	return types.MountSMB
}

// Ensure brings the SMB share to its mounted state. An already active
// mount point short-circuits the whole flow, credential collection
// included, so repeated runs are silent.
func (p *Provider) Ensure(ctx context.Context, env mount.Env, hooks mount.Hooks) (mount.Outcome, error) {
	logger := logging.GetLogger("smb")
	cfg := env.Settings.SMB
	out := mount.Outcome{Kind: types.MountSMB}

	active, err := env.Effector.IsMountPoint(cfg.MountPoint)
	if err != nil {
		return out, err
	}
	if active {
		logger.Info().Str("target", cfg.MountPoint).Msg("Mount point already active, skipping")
		out.Skipped = true
		return out, nil
	}

	installed, err := mount.EnsureClient(ctx, env, mount.ClientSpec{
		Helper:  cfg.Helper,
		Package: cfg.Package,
	}, hooks)
	if err != nil {
		return out, err
	}
	out.Installed = installed

	fields, err := env.Collector.Collect(prompt.Request{
		AddressLabel: "SMB host",
		WantShare:    true,
		Seed: prompt.Fields{
			Address:    cfg.Host,
			Share:      cfg.Share,
			MountPoint: cfg.MountPoint,
		},
	})
	if err != nil {
		return out, err
	}

	spec := types.MountSpec{
		Kind:            types.MountSMB,
		RemoteAddress:   fields.Address,
		RemoteSharePath: fields.Share,
		LocalMountPoint: fields.MountPoint,
		CredentialRef:   cfg.Credentials,
	}
	out.Spec = spec

	record := types.CredentialRecord{
		Subject:  spec.Source(),
		Username: fields.Username,
		Secret:   fields.Secret,
	}
	if err := secrets.WriteLoginFile(env.Effector, cfg.Credentials, record); err != nil {
		return out, err
	}
	out.SecretAdded = true

	if err := env.FS.MkdirAll(spec.LocalMountPoint, 0o755); err != nil {
		return out, errors.Wrapf(err, errors.ErrDirCreate, "failed to create mount point %s", spec.LocalMountPoint)
	}

	options := mountOptions(cfg, env.User)
	if err := env.Effector.MountFilesystem(ctx, "cifs", spec.Source(), spec.LocalMountPoint, options); err != nil {
		return out, errors.Wrapf(err, errors.ErrMount, "failed to mount %s", spec.Source())
	}
	out.Mounted = true
	logger.Info().Str("source", spec.Source()).Str("target", spec.LocalMountPoint).Msg("SMB share mounted")

	// Persist only after the live mount proves the parameters. A boot
	// entry for a share that never mounted would stall startup.
	fstabAdded, err := fstab.Ensure(env.Effector, env.Settings.Fstab.Path, types.FstabEntry{
		Source:  spec.Source(),
		Target:  spec.LocalMountPoint,
		FSType:  "cifs",
		Options: options,
	})
	if err != nil {
		return out, err
	}
	out.FstabAdded = fstabAdded

	return out, nil
}

// mountOptions composes the option string shared by the live mount and
// the boot entry. Ownership maps to the invoking operator because the
// mount itself runs as root; the credentials file reference keeps the
// secret out of the table.
func mountOptions(cfg config.SMBSettings, u system.Account) string {
	return fmt.Sprintf("vers=%s,uid=%d,gid=%d,credentials=%s", cfg.Vers, u.UID, u.GID, cfg.Credentials)
}
