// Package config reads shapestack settings from the environment.
//
// Every variable carries the SHAPESTACK_ prefix:
//
//	SHAPESTACK_CACHE_DIR   cache directory (default: XDG cache dir)
//	SHAPESTACK_NO_CACHE    disable the layout and artifact cache
//	SHAPESTACK_CACHE_TTL   lifetime of cache entries (default: 24h)
//	SHAPESTACK_VERBOSE     debug logging
//
// Command-line flags take precedence over the environment.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/matzehuels/shapestack/pkg/errors"
)

// Prefix is the environment variable prefix.
const Prefix = "SHAPESTACK"

// AppName names the per-user cache directory.
const AppName = "shapestack"

// Config holds environment settings.
type Config struct {
	CacheDir string        `envconfig:"CACHE_DIR"`
	NoCache  bool          `envconfig:"NO_CACHE" default:"false"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"24h"`
	Verbose  bool          `envconfig:"VERBOSE" default:"false"`
}

// Load reads the environment and resolves the cache directory.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "read environment")
	}
	if cfg.CacheTTL <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "%s_CACHE_TTL must be positive, got %s", Prefix, cfg.CacheTTL)
	}
	if cfg.CacheDir == "" {
		dir, err := DefaultCacheDir()
		if err != nil {
			return nil, err
		}
		cfg.CacheDir = dir
	}
	return &cfg, nil
}

// DefaultCacheDir returns the cache directory using the XDG convention
// ($XDG_CACHE_HOME/shapestack, else ~/.cache/shapestack).
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "locate home directory")
	}
	return filepath.Join(home, ".cache", AppName), nil
}
