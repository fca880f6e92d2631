package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/paths"
)

// EnvPrefix selects which environment variables participate in
// resolution. SKYHOOK_WEBDAV_MOUNTPOINT maps to webdav.mountpoint.
const EnvPrefix = "SKYHOOK_"

// Load resolves Settings from embedded defaults, the environment, and
// an optional key=value overrides file.
//
// overridesPath empty means the default location; a missing file there
// is not an error. A present but unreadable or malformed file is logged
// as a warning and resolution continues without it.
func Load(overridesPath string) (*Settings, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 3. Overrides file
	explicit := overridesPath != ""
	if !explicit {
		overridesPath = paths.DefaultOverridesPath()
	}
	if _, err := os.Stat(overridesPath); err == nil {
		if err := k.Load(file.Provider(overridesPath), KeyvalParser()); err != nil {
			logger.Warn().Err(err).Str("path", overridesPath).
				Msg("Ignoring unreadable overrides file, continuing with defaults")
		} else {
			logger.Debug().Str("path", overridesPath).Msg("Loaded overrides file")
		}
	} else if explicit {
		logger.Warn().Str("path", overridesPath).
			Msg("Overrides file not found, continuing with defaults")
	}

	// 4. Unmarshal
	var settings Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &settings,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &settings, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	expandPaths(&settings)

	return &settings, nil
}

// expandPaths expands a leading ~ in every path-valued setting.
func expandPaths(s *Settings) {
	s.WebDAV.MountPoint = paths.ExpandHome(s.WebDAV.MountPoint)
	s.WebDAV.Secrets = paths.ExpandHome(s.WebDAV.Secrets)
	s.SMB.MountPoint = paths.ExpandHome(s.SMB.MountPoint)
	s.SMB.Credentials = paths.ExpandHome(s.SMB.Credentials)
	s.Bridge.Foreign = paths.ExpandHome(s.Bridge.Foreign)
	s.Bridge.Local = paths.ExpandHome(s.Bridge.Local)
	s.Bridge.DriveBase = paths.ExpandHome(s.Bridge.DriveBase)
	for letter, dir := range s.Bridge.Drives {
		s.Bridge.Drives[letter] = paths.ExpandHome(dir)
	}
	s.Sync.Source = paths.ExpandHome(s.Sync.Source)
	s.Sync.LogPath = paths.ExpandHome(s.Sync.LogPath)
	s.Fstab.Path = paths.ExpandHome(s.Fstab.Path)
}
