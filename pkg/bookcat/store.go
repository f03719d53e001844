package bookcat

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ukaji3/bookcat-go/internal/logging"
	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
	"github.com/ukaji3/bookcat-go/pkg/bookcat/parser"
)

// BackupTimeLayout is the timestamp embedded in backup file names.
const BackupTimeLayout = "20060102150405"

// Store loads, saves and backs up catalog files.
type Store struct {
	backupDir string
	now       func() time.Time
	log       *slog.Logger

	// mu serializes writes so two saves cannot interleave on one file.
	mu sync.Mutex
}

// NewStore creates a Store.
func NewStore(opts Options) *Store {
	opts = opts.withDefaults()
	return &Store{
		backupDir: opts.BackupDir,
		now:       opts.Now,
		log:       logging.WithComponent("store"),
	}
}

// BackupDir returns the directory backups are written to.
func (s *Store) BackupDir() string {
	return s.backupDir
}

// Load reads the catalog at path. On failure it returns an empty catalog
// together with a *LoadError, so callers can keep running with zero rows.
func (s *Store) Load(path string) (*models.Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return models.NewCatalog(nil), NewLoadError(path, err)
	}

	c, err := parser.ReadFile(path)
	if err != nil {
		return models.NewCatalog(nil), NewLoadError(path, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}

	s.log.Info("catalog loaded", "path", path, "columns", c.Width(), "rows", c.Len())
	return c, nil
}

// Save writes the full catalog to path, replacing prior contents. The file
// is written to a temporary sibling first and renamed into place.
func (s *Store) Save(path string, c *models.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path == "" {
		return NewSaveError(path, ErrNoActiveFile)
	}
	if c == nil {
		c = models.NewCatalog(nil)
	}

	format, err := parser.DetectFormat(path)
	if err != nil {
		return NewSaveError(path, err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".bookcat-*.tmp")
	if err != nil {
		return NewSaveError(path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if err := parser.Write(tmp, format, c); err != nil {
		cleanup()
		return NewSaveError(path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return NewSaveError(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return NewSaveError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return NewSaveError(path, err)
	}

	s.log.Info("catalog saved", "path", path, "rows", c.Len())
	return nil
}

// Backup copies path into the backup directory and returns the copy's path.
// A backup with the same name is overwritten.
func (s *Store) Backup(path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path == "" {
		return "", NewBackupError(path, ErrNoActiveFile)
	}

	src, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return "", NewBackupError(path, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", NewBackupError(path, err)
	}

	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return "", NewBackupError(path, err)
	}

	dst := filepath.Join(s.backupDir, BackupName(path, s.now()))
	out, err := os.Create(dst)
	if err != nil {
		return "", NewBackupError(path, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", NewBackupError(path, err)
	}
	if err := out.Close(); err != nil {
		return "", NewBackupError(path, err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		s.log.Warn("backup times not preserved", "path", dst, "error", err)
	}

	s.log.Info("backup created", "path", path, "backup", dst)
	return dst, nil
}

// BackupName returns backup_<file name>_<YYYYMMDDHHMMSS> for path at t.
func BackupName(path string, t time.Time) string {
	return fmt.Sprintf("backup_%s_%s", filepath.Base(path), t.Format(BackupTimeLayout))
}
