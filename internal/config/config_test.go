package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `data_file = "/srv/books.xlsx"
stats_column = "Publisher"

[auth]
secret = "s3cret"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataFile != "/srv/books.xlsx" {
		t.Errorf("Expected data_file /srv/books.xlsx, got %q", cfg.DataFile)
	}
	if cfg.StatsColumn != "Publisher" {
		t.Errorf("Expected stats_column Publisher, got %q", cfg.StatsColumn)
	}
	if cfg.BackupDir != "backups" {
		t.Errorf("Expected default backup_dir, got %q", cfg.BackupDir)
	}
	if cfg.Auth.Secret != "s3cret" {
		t.Errorf("Expected secret s3cret, got %q", cfg.Auth.Secret)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("data_file = ["), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Expected error for malformed TOML")
	}
}

func TestRecorderRememberDataFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	cfg := DefaultConfig()

	dataFile := filepath.Join(dir, "books.xlsx")
	if err := NewRecorder(path, cfg).RememberDataFile(dataFile); err != nil {
		t.Fatalf("RememberDataFile failed: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if reloaded.DataFile != dataFile {
		t.Errorf("Expected data_file %q, got %q", dataFile, reloaded.DataFile)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("Expected temp file to be gone, stat err = %v", err)
	}
}

func TestResolveSecretEnv(t *testing.T) {
	cfg := DefaultConfig()
	t.Setenv(SecretEnv, "from-env")
	if got := cfg.ResolveSecret(); got != "from-env" {
		t.Errorf("Expected from-env, got %q", got)
	}
	t.Setenv(SecretEnv, "")
	if got := cfg.ResolveSecret(); got != "password123" {
		t.Errorf("Expected default secret, got %q", got)
	}
}
