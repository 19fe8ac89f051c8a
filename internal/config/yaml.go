package config

import (
	"gopkg.in/yaml.v3"
)

// parseYAML parses YAML data over the defaults.
func parseYAML(path string, data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
	}
	return cfg, nil
}
