package config

import (
	"github.com/pelletier/go-toml/v2"
)

// parseTOML parses TOML data over the defaults.
func parseTOML(path string, data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
	}
	return cfg, nil
}
