package config

import (
	"github.com/tidwall/gjson"
)

// parseJSON parses JSON data over the defaults using path lookups, so a
// config file may carry keys this tool does not know about.
func parseJSON(path string, data []byte) (Config, error) {
	if !gjson.ValidBytes(data) {
		return Config{}, &ParseError{
			Path:    path,
			Message: "invalid JSON",
		}
	}

	cfg := Default()
	root := gjson.ParseBytes(data)

	if v := root.Get("search.regex"); v.Exists() {
		cfg.Search.Regex = v.Bool()
	}
	if v := root.Get("search.case_sensitive"); v.Exists() {
		cfg.Search.CaseSensitive = v.Bool()
	}
	if v := root.Get("search.whole_word"); v.Exists() {
		cfg.Search.WholeWord = v.Bool()
	}
	if v := root.Get("search.word_separators"); v.Exists() {
		cfg.Search.WordSeparators = v.String()
	}
	if v := root.Get("search.max_results"); v.Exists() {
		cfg.Search.MaxResults = int(v.Int())
	}

	return cfg, nil
}
