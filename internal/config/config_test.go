package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/shapestack/pkg/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHAPESTACK_CACHE_DIR", "")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheDir != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("CacheDir = %q, want %q", cfg.CacheDir, filepath.Join("/tmp/xdg", AppName))
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %v, want 24h", cfg.CacheTTL)
	}
	if cfg.NoCache || cfg.Verbose {
		t.Errorf("NoCache/Verbose = %v/%v, want false", cfg.NoCache, cfg.Verbose)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("SHAPESTACK_CACHE_DIR", "/srv/cache")
	t.Setenv("SHAPESTACK_NO_CACHE", "true")
	t.Setenv("SHAPESTACK_CACHE_TTL", "90m")
	t.Setenv("SHAPESTACK_VERBOSE", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{CacheDir: "/srv/cache", NoCache: true, CacheTTL: 90 * time.Minute, Verbose: true}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"SHAPESTACK_CACHE_TTL": "soon",
		"SHAPESTACK_NO_CACHE":  "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("Load() with %s=%q error = %v, want %s", key, value, err, errors.ErrCodeInvalidArgument)
			}
		})
	}

	t.Run("non-positive ttl", func(t *testing.T) {
		t.Setenv("SHAPESTACK_CACHE_TTL", "0s")
		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "CACHE_TTL") {
			t.Errorf("Load() with zero ttl error = %v", err)
		}
	})
}

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/home/tester")

	dir, err := DefaultCacheDir()
	if err != nil {
		t.Fatalf("DefaultCacheDir: %v", err)
	}
	if want := filepath.Join("/home/tester", ".cache", AppName); dir != want {
		t.Errorf("DefaultCacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	dir, _ = DefaultCacheDir()
	if want := filepath.Join("/tmp/custom-cache", AppName); dir != want {
		t.Errorf("DefaultCacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}
