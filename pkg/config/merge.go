package config

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/avasek/skyhook/pkg/errors"
)

// With returns a copy of the settings with the given dotted-key
// overrides applied on top ("webdav.url", "smb.mountpoint"). It backs
// flag-level overrides, which outrank every file and environment layer.
func (s *Settings) With(overrides map[string]interface{}) (*Settings, error) {
	if len(overrides) == 0 {
		return s, nil
	}

	base, err := s.Dump("toml")
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: base}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to reload settings")
	}
	if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "failed to apply overrides")
	}

	var merged Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &merged,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &merged, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal merged settings")
	}

	expandPaths(&merged)

	// DryRun never round-trips through the file form.
	merged.DryRun = s.DryRun

	return &merged, nil
}
