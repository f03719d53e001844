// Package config loads and saves the bookcat configuration record.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file, relative to the working directory.
const DefaultPath = "config.toml"

// SecretEnv overrides the configured librarian secret without touching the file.
const SecretEnv = "BOOKCAT_SECRET"

// AppConfig is the persisted configuration record.
type AppConfig struct {
	// DataFile is the last active catalog file.
	DataFile       string     `toml:"data_file"`
	BackupDir      string     `toml:"backup_dir"`
	StatsColumn    string     `toml:"stats_column"`
	DefaultColumns []string   `toml:"default_columns"`
	Auth           AuthConfig `toml:"auth"`
	Log            LogConfig  `toml:"log"`
}

// AuthConfig holds the librarian credential. SecretHash, a bcrypt hash,
// takes precedence over Secret.
type AuthConfig struct {
	Secret     string `toml:"secret"`
	SecretHash string `toml:"secret_hash"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Path   string `toml:"path"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		BackupDir:      "backups",
		StatsColumn:    "Genre",
		DefaultColumns: []string{"Title", "Author", "Genre", "ISBN", "Publisher", "Publication Year"},
		Auth: AuthConfig{
			Secret: "password123",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path through a temporary file.
func Save(path string, cfg *AppConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ResolveSecret returns the plain secret, honoring SecretEnv.
func (c *AppConfig) ResolveSecret() string {
	if v := os.Getenv(SecretEnv); v != "" {
		return v
	}
	return c.Auth.Secret
}

// Recorder persists the active data file into the config record.
type Recorder struct {
	path string
	cfg  *AppConfig
}

// NewRecorder creates a Recorder writing cfg to path.
func NewRecorder(path string, cfg *AppConfig) *Recorder {
	return &Recorder{path: path, cfg: cfg}
}

// RememberDataFile stores the absolute form of dataFile and rewrites the config.
func (r *Recorder) RememberDataFile(dataFile string) error {
	if abs, err := filepath.Abs(dataFile); err == nil {
		dataFile = abs
	}
	r.cfg.DataFile = dataFile
	return Save(r.path, r.cfg)
}
