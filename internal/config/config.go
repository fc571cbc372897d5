// Package config loads the envhist configuration file (YAML or JSON) and
// supplies defaults when no file exists. Precedence is handled by the CLI:
// flag > environment > config file > default.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"envhist/internal/envstore"
)

// Config holds the user-tunable defaults.
type Config struct {
	// StorePath is the record store file. Empty means the built-in default
	// (~/.envhist.json).
	StorePath string `yaml:"store_path" json:"store_path"`
	// RecentN is how many most-recently-used records stats shows.
	RecentN int `yaml:"recent" json:"recent"`
	// UniqueClusterNames makes import reject an already-recorded cluster name.
	UniqueClusterNames bool `yaml:"unique_cluster_names" json:"unique_cluster_names"`
	// DefaultSort is the list ordering when --sort-by is not given.
	DefaultSort string `yaml:"default_sort" json:"default_sort"`
	LogLevel    string `yaml:"log_level" json:"log_level"`
	LogFormat   string `yaml:"log_format" json:"log_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		StorePath:   envstore.DefaultPath(),
		RecentN:     envstore.DefaultRecentN,
		DefaultSort: string(envstore.SortLastUsed),
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// DefaultPath is where Resolve looks when --config is not given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "envhist", "config.yaml")
	}
	return filepath.Join(home, ".config", "envhist", "config.yaml")
}

// Resolve loads the config from path, or from the default location when
// path is empty. A missing file at the default location is not an error;
// a missing file at an explicit path is.
func Resolve(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	cfg, err := LoadFromPath(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads a config file (YAML or JSON) and returns the parsed
// Config with defaults filled in. Format is detected by extension
// (.yaml/.yml/.json) or by content (first non-whitespace char).
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses config from bytes. ext is the file extension for the format
// hint; empty means detect from content.
func Load(data []byte, ext string) (*Config, error) {
	cfg := Default()

	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" {
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			ext = ".json"
		} else {
			ext = ".yaml"
		}
	}

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
	case ".yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config extension %q", ext)
	}

	if cfg.StorePath == "" {
		cfg.StorePath = envstore.DefaultPath()
	}
	if cfg.RecentN <= 0 {
		cfg.RecentN = envstore.DefaultRecentN
	}
	if cfg.DefaultSort == "" {
		cfg.DefaultSort = string(envstore.SortLastUsed)
	}
	return cfg, nil
}
