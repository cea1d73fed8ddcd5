// Package config loads the bicover TOML configuration file and applies
// defaults for any section left unset.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/methylsight/bicover/pkg/bigraph"
	"github.com/methylsight/bicover/pkg/biclique"
	"github.com/methylsight/bicover/pkg/cache"
	"github.com/methylsight/bicover/pkg/store"
)

// Cache backends selectable in the [cache] section.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// CacheConfig selects and configures the dominating-set cache.
type CacheConfig struct {
	Backend string            `toml:"backend"`
	Dir     string            `toml:"dir"`
	Redis   cache.RedisConfig `toml:"redis"`
}

// Config is the top-level bicover configuration.
type Config struct {
	Thresholds biclique.Thresholds `toml:"thresholds"`
	IDs        bigraph.IDConfig    `toml:"ids"`
	Cache      CacheConfig         `toml:"cache"`
	Mongo      store.MongoConfig   `toml:"mongo"`
}

// Default returns the built-in configuration: reference thresholds and
// ID offsets, file cache under the user cache directory, no archive.
func Default() Config {
	return Config{
		Thresholds: biclique.DefaultThresholds(),
		IDs:        bigraph.DefaultIDConfig(),
		Cache: CacheConfig{
			Backend: CacheBackendFile,
			Dir:     defaultCacheDir(),
		},
	}
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".bicover-cache"
	}
	return filepath.Join(base, "bicover")
}

// Load reads a TOML config file and merges it over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Thresholds.MinInterestingDMRs < 1 || c.Thresholds.MinInterestingGenes < 1 {
		return fmt.Errorf("thresholds must be at least 1")
	}
	if c.IDs.GeneIDStart < 1 {
		return fmt.Errorf("gene_id_start must be positive")
	}
	for tp, off := range c.IDs.TimepointOffsets {
		if off < 0 || off >= c.IDs.GeneIDStart {
			return fmt.Errorf("timepoint %s: offset %d outside DMR ID range", tp, off)
		}
	}
	return nil
}
