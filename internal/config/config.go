// Package config provides configuration loading and structs for the
// promptsearch server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/promptdeck/promptsearch/internal/ranking"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool                  `yaml:"debug"`
	Server   ServerConfig          `yaml:"server"`
	Storage  StorageConfig         `yaml:"storage"`
	Search   SearchConfig          `yaml:"search"`
	Ranking  ranking.RankingConfig `yaml:"ranking"`
	Synonyms SynonymsConfig        `yaml:"synonyms"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the prompt database path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// SearchConfig holds search pipeline settings.
type SearchConfig struct {
	DefaultLimit    int `yaml:"default_limit"`     // default: 50
	MaxLimit        int `yaml:"max_limit"`         // default: 100
	OverfetchFactor int `yaml:"overfetch_factor"`  // default: 2
	CandidateCap    int `yaml:"candidate_cap"`     // default: 200
	CacheSize       int `yaml:"cache_size"`        // default: 512 entries
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"` // default: 60, matches the s-maxage cache header
}

// SynonymsConfig points at an optional YAML synonym dictionary that replaces
// the built-in one at startup.
type SynonymsConfig struct {
	Path string `yaml:"path"`
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	if cfg.Synonyms.Path != "" {
		cfg.Synonyms.Path = expandPath(cfg.Synonyms.Path, configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
