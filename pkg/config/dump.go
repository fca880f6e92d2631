package config

import (
	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/avasek/skyhook/pkg/errors"
)

// Dump renders the resolved settings in the requested format
// ("toml" or "yaml").
func (s *Settings) Dump(format string) ([]byte, error) {
	switch format {
	case "toml":
		out, err := gotoml.Marshal(s)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to render settings as TOML")
		}
		return out, nil
	case "yaml":
		out, err := yaml.Marshal(s)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to render settings as YAML")
		}
		return out, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %q (want toml or yaml)", format)
	}
}
