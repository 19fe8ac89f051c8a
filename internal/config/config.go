// Package config provides configuration loading for keysearch.
//
// Configuration is read from a TOML, JSON, or YAML file selected by
// extension, then overridden by KEYSEARCH_* environment variables. A
// missing file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SearchConfig holds default query settings for searches.
type SearchConfig struct {
	// Regex treats patterns as regular expressions.
	Regex bool `toml:"regex" yaml:"regex"`

	// CaseSensitive makes matching case-sensitive.
	CaseSensitive bool `toml:"case_sensitive" yaml:"case_sensitive"`

	// WholeWord restricts matches to whole words.
	WholeWord bool `toml:"whole_word" yaml:"whole_word"`

	// WordSeparators is the separator set used for whole-word matching.
	WordSeparators string `toml:"word_separators" yaml:"word_separators"`

	// MaxResults limits the number of matches reported per file (0 = engine default).
	MaxResults int `toml:"max_results" yaml:"max_results"`
}

// Config is the root configuration.
type Config struct {
	Search SearchConfig `toml:"search" yaml:"search"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Search: SearchConfig{
			Regex:          false,
			CaseSensitive:  true,
			WholeWord:      false,
			WordSeparators: "`~!@#$%^&*()-=+[{]}\\|;:'\",.<>/?",
			MaxResults:     0,
		},
	}
}

// ParseError describes a malformed configuration file.
type ParseError struct {
	Path    string // File that failed to parse
	Message string // Human-readable description
	Err     error  // Underlying parser error, if any
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads configuration from path, falling back to defaults when path is
// empty or the file does not exist, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("reading config file %s: %w", path, err)
			}
		} else {
			switch strings.ToLower(filepath.Ext(path)) {
			case ".json":
				cfg, err = parseJSON(path, data)
			case ".yaml", ".yml":
				cfg, err = parseYAML(path, data)
			default:
				cfg, err = parseTOML(path, data)
			}
			if err != nil {
				return Default(), err
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Environment variables recognized by applyEnv.
const (
	envRegex          = "KEYSEARCH_REGEX"
	envCaseSensitive  = "KEYSEARCH_CASE_SENSITIVE"
	envWholeWord      = "KEYSEARCH_WHOLE_WORD"
	envWordSeparators = "KEYSEARCH_WORD_SEPARATORS"
	envMaxResults     = "KEYSEARCH_MAX_RESULTS"
)

// applyEnv overrides settings from KEYSEARCH_* environment variables.
// Unparseable values are ignored; empty strings count as set.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(envRegex); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Search.Regex = b
		}
	}
	if v, ok := os.LookupEnv(envCaseSensitive); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Search.CaseSensitive = b
		}
	}
	if v, ok := os.LookupEnv(envWholeWord); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Search.WholeWord = b
		}
	}
	if v, ok := os.LookupEnv(envWordSeparators); ok {
		c.Search.WordSeparators = v
	}
	if v, ok := os.LookupEnv(envMaxResults); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Search.MaxResults = n
		}
	}
}
