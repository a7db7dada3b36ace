// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"bassline/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Archives.Dirs = []string{filepath.Join(base, "archives")}
	cfg.SaveFile.SteamUserdata = filepath.Join(base, "userdata")

	for _, opt := range opts {
		opt(&cfg)
	}

	for _, dir := range append([]string{cfg.Paths.DataDir, cfg.Paths.LogDir}, cfg.Archives.Dirs...) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("create test directory %s: %v", dir, err)
		}
	}
	return &cfg
}

// WithJellyfin enables Jellyfin with the given endpoint.
func WithJellyfin(url, apiKey string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Jellyfin.Enabled = true
		cfg.Jellyfin.URL = url
		cfg.Jellyfin.APIKey = apiKey
	}
}
