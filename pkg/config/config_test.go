package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Sleeper.BaseURL != "https://api.sleeper.app" {
		t.Fatalf("unexpected base url %q", cfg.Sleeper.BaseURL)
	}
	if cfg.Directory.TTL != 24*time.Hour {
		t.Fatalf("unexpected directory ttl %v", cfg.Directory.TTL)
	}
	if cfg.Directory.CacheKey != "sleeper_players_cache" {
		t.Fatalf("unexpected cache key %q", cfg.Directory.CacheKey)
	}
	if cfg.Directory.Backend != "memory" {
		t.Fatalf("unexpected backend %q", cfg.Directory.Backend)
	}
	if cfg.Batch.Interval != 6*time.Hour {
		t.Fatalf("unexpected batch interval %v", cfg.Batch.Interval)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "environment: test\ndirectory:\n  backend: etcd\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected backend validation error")
	}
}

func TestLoadRejectsBatchWithoutLeagues(t *testing.T) {
	path := writeConfig(t, "environment: test\nbatch:\n  enabled: true\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected leagues validation error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\nleagues: [\"111\"]\n")

	t.Setenv("LEAGUES", "222, 333")
	t.Setenv("SLEEPER_BASE_URL", "http://localhost:9999")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Leagues) != 2 || cfg.Leagues[0] != "222" || cfg.Leagues[1] != "333" {
		t.Fatalf("env leagues not applied: %v", cfg.Leagues)
	}
	if cfg.Sleeper.BaseURL != "http://localhost:9999" {
		t.Fatalf("env base url not applied: %q", cfg.Sleeper.BaseURL)
	}
}
