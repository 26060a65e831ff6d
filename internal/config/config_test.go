package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LOREDB_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("LOREDB_DB_PATH", "")
	t.Setenv("LOREDB_LOG_LEVEL", "")
	t.Setenv("LOREDB_LOG_FORMAT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Database.Path != "lore.db" {
		t.Errorf("expected default db path lore.db, got %q", cfg.Database.Path)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected default log level warn, got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("expected default log format text, got %q", cfg.Log.Format)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loredb.yaml")
	content := "database:\n  path: /tmp/other.db\nlog:\n  level: debug\n  format: json\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Database.Path != "/tmp/other.db" {
		t.Errorf("expected /tmp/other.db, got %q", cfg.Database.Path)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loredb.yaml")
	if err := os.WriteFile(path, []byte("database:\n  path: from-file.db\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("LOREDB_CONFIG_PATH", path)
	t.Setenv("LOREDB_DB_PATH", "from-env.db")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Database.Path != "from-env.db" {
		t.Errorf("expected env to win, got %q", cfg.Database.Path)
	}
}

func TestLoad_InvalidFormat(t *testing.T) {
	t.Setenv("LOREDB_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("LOREDB_LOG_FORMAT", "xml")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid log format")
	}
}
