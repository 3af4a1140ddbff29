package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q, want :3000", cfg.Addr)
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("Database.Path = %q, want :memory:", cfg.Database.Path)
	}
	if cfg.Import.MaxSources != 10 {
		t.Errorf("Import.MaxSources = %d, want 10", cfg.Import.MaxSources)
	}
	if cfg.Import.PageSize != 500 {
		t.Errorf("Import.PageSize = %d, want 500", cfg.Import.PageSize)
	}
	if cfg.Scan.Timeout.Duration() != 10*time.Minute {
		t.Errorf("Scan.Timeout = %v, want 10m", cfg.Scan.Timeout.Duration())
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
addr: ":8080"
database:
  path: ./inventory.db
import:
  max_sources: 25
  watch_dir: /srv/drop
scan:
  ports: "22,80"
  timeout: 2m
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, loadedPath, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loadedPath != path {
		t.Errorf("path = %q, want %q", loadedPath, path)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.Database.Path != "./inventory.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Import.MaxSources != 25 {
		t.Errorf("Import.MaxSources = %d, want 25", cfg.Import.MaxSources)
	}
	if cfg.Import.WatchDir != "/srv/drop" {
		t.Errorf("Import.WatchDir = %q", cfg.Import.WatchDir)
	}
	if cfg.Scan.Ports != "22,80" {
		t.Errorf("Scan.Ports = %q", cfg.Scan.Ports)
	}
	if cfg.Scan.Timeout.Duration() != 2*time.Minute {
		t.Errorf("Scan.Timeout = %v, want 2m", cfg.Scan.Timeout.Duration())
	}

	// Unset fields still pick up defaults
	if cfg.Import.PageSize != 500 {
		t.Errorf("Import.PageSize = %d, want 500", cfg.Import.PageSize)
	}
}

func TestLoadFromPathRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("addr: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFindConfigPathEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9999\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvConfigPath, path)
	if got := FindConfigPath(); got != path {
		t.Errorf("FindConfigPath() = %q, want %q", got, path)
	}
}
