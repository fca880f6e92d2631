// Package webdav is the WebDAV mount provider. It drives davfs2: the
// client package and its secrets file, the fstab entry, and the mount
// itself.
package webdav

import (
	"context"

	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/fstab"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/mount"
	"github.com/avasek/skyhook/pkg/prompt"
	"github.com/avasek/skyhook/pkg/remote"
	"github.com/avasek/skyhook/pkg/secrets"
	"github.com/avasek/skyhook/pkg/types"
)

func init() {
	mount.RegisterProvider(New(), mount.Hooks{
		PreInstall:  preseedClient,
		PostInstall: grantHelperGroup,
	})
}

// davfsPreseed answers the suid-helper question ahead of the install so
// apt never prompts.
const davfsPreseed = "davfs2 davfs2/suid_file_davfs boolean true"

type prober interface {
	Probe(ctx context.Context, record types.CredentialRecord) (remote.Info, error)
}

// Provider reconciles the WebDAV mount.
type Provider struct {
	prober prober
}

// New creates the provider with a live endpoint prober.
func New() *Provider {
	return &Provider{prober: remote.NewProber()}
}

func (p *Provider) Kind() types.MountKind { return types.MountWebDAV }

// Ensure walks the davfs2 state machine: client installed, credentials
// collected and verified, secret-store line present, fstab entry
// present, target mounted.
func (p *Provider) Ensure(ctx context.Context, env mount.Env, hooks mount.Hooks) (mount.Outcome, error) {
	logger := logging.GetLogger("webdav")
	cfg := env.Settings.WebDAV
	out := mount.Outcome{Kind: types.MountWebDAV}

	installed, err := mount.EnsureClient(ctx, env, mount.ClientSpec{
		Helper:  cfg.Helper,
		Package: cfg.Package,
	}, hooks)
	if err != nil {
		return out, err
	}
	out.Installed = installed

	fields, err := p.collect(ctx, env)
	if err != nil {
		return out, err
	}

	spec := types.MountSpec{
		Kind:            types.MountWebDAV,
		RemoteAddress:   fields.Address,
		LocalMountPoint: fields.MountPoint,
		CredentialRef:   cfg.Secrets,
	}
	out.Spec = spec

	record := types.CredentialRecord{
		Subject:  spec.Source(),
		Username: fields.Username,
		Secret:   fields.Secret,
	}
	secretAdded, err := secrets.EnsureDavfsEntry(env.Effector, cfg.Secrets, record)
	if err != nil {
		return out, err
	}
	out.SecretAdded = secretAdded

	entry := types.FstabEntry{
		Source:  spec.Source(),
		Target:  spec.LocalMountPoint,
		FSType:  "davfs",
		Options: cfg.Options,
	}
	fstabAdded, err := fstab.Ensure(env.Effector, env.Settings.Fstab.Path, entry)
	if err != nil {
		return out, err
	}
	if !fstabAdded {
		logger.Info().Str("source", spec.Source()).
			Msg("Filesystem table already covers this source, assuming mounted or mounted at boot")
		return out, nil
	}
	out.FstabAdded = true

	// The fstab entry must exist before mounting: `mount <target>`
	// resolves the source through the table. A failed mount leaves the
	// appended line behind; the prefix check skips it on the next run.
	if err := env.Effector.ReloadServiceManager(ctx); err != nil {
		return out, err
	}
	if err := env.FS.MkdirAll(spec.LocalMountPoint, 0o755); err != nil {
		return out, errors.Wrapf(err, errors.ErrDirCreate, "failed to create mount point %s", spec.LocalMountPoint)
	}
	if err := env.Effector.MountTarget(ctx, spec.LocalMountPoint); err != nil {
		return out, errors.Wrapf(err, errors.ErrMount, "failed to mount %s", spec.LocalMountPoint)
	}
	out.Mounted = true

	logger.Info().Str("target", spec.LocalMountPoint).Msg("WebDAV share mounted")
	return out, nil
}

// collect runs the credential loop, probing the endpoint when
// verification is enabled. Rejected credentials re-enter the loop; a
// host that cannot be reached only warns, since first boot may happen
// offline.
func (p *Provider) collect(ctx context.Context, env mount.Env) (prompt.Fields, error) {
	logger := logging.GetLogger("webdav")
	cfg := env.Settings.WebDAV

	req := prompt.Request{
		AddressLabel: "WebDAV URL",
		Seed: prompt.Fields{
			Address:    cfg.URL,
			MountPoint: cfg.MountPoint,
		},
	}

	for {
		fields, err := env.Collector.Collect(req)
		if err != nil {
			return prompt.Fields{}, err
		}
		if !cfg.Verify {
			return fields, nil
		}

		_, err = p.prober.Probe(ctx, types.CredentialRecord{
			Subject:  fields.Address,
			Username: fields.Username,
			Secret:   fields.Secret,
		})
		if err == nil {
			logger.Debug().Str("url", fields.Address).Msg("Endpoint verified")
			return fields, nil
		}
		if errors.IsErrorCode(err, errors.ErrAuthFailed) {
			logger.Warn().Str("url", fields.Address).
				Msg("Endpoint rejected the credentials, collecting again")
			continue
		}
		logger.Warn().Err(err).Msg("Could not verify endpoint, continuing without verification")
		return fields, nil
	}
}

func preseedClient(ctx context.Context, env mount.Env) error {
	return env.Effector.PreseedPackage(ctx, davfsPreseed)
}

// grantHelperGroup puts the operator in the davfs2 group so the suid
// helper is usable. Membership takes effect at the next login session;
// that delay is surfaced, not worked around.
func grantHelperGroup(ctx context.Context, env mount.Env) error {
	group := env.Settings.WebDAV.Group
	if err := env.Effector.AddUserToGroup(ctx, env.User.Name, group); err != nil {
		return err
	}
	logging.GetLogger("webdav").Warn().
		Str("user", env.User.Name).
		Str("group", group).
		Msg("Group membership takes effect at the next login session")
	return nil
}
