package config

import (
	"github.com/arthur-debert/webtc/pkg/errors"
	"github.com/arthur-debert/webtc/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"
)

// Load resolves the configuration for the source root. Overrides use dotted
// keys ("paths.build") and win over every other layer.
func Load(root string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")

	k, err := newKoanf(root, overrides)
	if err != nil {
		return nil, err
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", root).
		Int("installers", len(cfg.Installers)).
		Msg("Configuration loaded")
	return &cfg, nil
}

// Default resolves the configuration without a root config file.
func Default() (*Config, error) {
	return Load("", nil)
}
