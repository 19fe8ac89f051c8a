package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.Search.CaseSensitive {
		t.Error("CaseSensitive = false, want true")
	}
	if cfg.Search.Regex || cfg.Search.WholeWord {
		t.Error("Regex and WholeWord should default to false")
	}
	if cfg.Search.WordSeparators == "" {
		t.Error("WordSeparators should have a default")
	}
	if cfg.Search.MaxResults != 0 {
		t.Errorf("MaxResults = %d, want 0", cfg.Search.MaxResults)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error, got: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[search]
regex = true
case_sensitive = false
whole_word = true
word_separators = ".,"
max_results = 50
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Search.Regex || cfg.Search.CaseSensitive || !cfg.Search.WholeWord {
		t.Errorf("flags = %+v, want regex/whole_word on, case_sensitive off", cfg.Search)
	}
	if cfg.Search.WordSeparators != ".," {
		t.Errorf("WordSeparators = %q, want %q", cfg.Search.WordSeparators, ".,")
	}
	if cfg.Search.MaxResults != 50 {
		t.Errorf("MaxResults = %d, want 50", cfg.Search.MaxResults)
	}
}

func TestLoad_TOMLPartial(t *testing.T) {
	// Keys the file omits keep their defaults.
	path := writeFile(t, "config.toml", "[search]\nregex = true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Search.Regex {
		t.Error("Regex = false, want true")
	}
	if !cfg.Search.CaseSensitive {
		t.Error("CaseSensitive should keep its default")
	}
	if cfg.Search.WordSeparators != Default().Search.WordSeparators {
		t.Error("WordSeparators should keep its default")
	}
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
  "search": {
    "regex": true,
    "case_sensitive": false,
    "max_results": 10
  }
}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Search.Regex || cfg.Search.CaseSensitive {
		t.Errorf("flags = %+v, want regex on, case_sensitive off", cfg.Search)
	}
	if cfg.Search.MaxResults != 10 {
		t.Errorf("MaxResults = %d, want 10", cfg.Search.MaxResults)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
search:
  whole_word: true
  word_separators: "._"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Search.WholeWord {
		t.Error("WholeWord = false, want true")
	}
	if cfg.Search.WordSeparators != "._" {
		t.Errorf("WordSeparators = %q, want %q", cfg.Search.WordSeparators, "._")
	}
}

func TestLoad_ParseError(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "bad.toml", "[search\nregex ="},
		{"json", "bad.json", "{not json"},
		{"yaml", "bad.yaml", "search: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() error = nil, want parse error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
			if perr.Path != path {
				t.Errorf("ParseError.Path = %q, want %q", perr.Path, path)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "config.toml", "[search]\nregex = false\nmax_results = 5\n")

	t.Setenv("KEYSEARCH_REGEX", "true")
	t.Setenv("KEYSEARCH_CASE_SENSITIVE", "false")
	t.Setenv("KEYSEARCH_WORD_SEPARATORS", ";")
	t.Setenv("KEYSEARCH_MAX_RESULTS", "25")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Search.Regex {
		t.Error("Regex = false, want env override true")
	}
	if cfg.Search.CaseSensitive {
		t.Error("CaseSensitive = true, want env override false")
	}
	if cfg.Search.WordSeparators != ";" {
		t.Errorf("WordSeparators = %q, want %q", cfg.Search.WordSeparators, ";")
	}
	if cfg.Search.MaxResults != 25 {
		t.Errorf("MaxResults = %d, want 25", cfg.Search.MaxResults)
	}
}

func TestLoad_EnvIgnoresUnparseable(t *testing.T) {
	t.Setenv("KEYSEARCH_REGEX", "banana")
	t.Setenv("KEYSEARCH_MAX_RESULTS", "-3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Search.Regex {
		t.Error("unparseable bool should be ignored")
	}
	if cfg.Search.MaxResults != 0 {
		t.Error("negative max_results should be ignored")
	}
}
