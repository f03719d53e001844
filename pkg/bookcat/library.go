package bookcat

import (
	"fmt"
	"log/slog"

	"github.com/ukaji3/bookcat-go/internal/logging"
	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

// PathRecorder remembers the active data file so the next start can resume it.
type PathRecorder interface {
	RememberDataFile(path string) error
}

// Library owns the session state: the active file, its catalog and the
// current role. It is not safe for concurrent use.
type Library struct {
	store    *Store
	auth     Authenticator
	recorder PathRecorder
	opts     Options
	log      *slog.Logger

	path    string
	catalog *models.Catalog
	role    models.Role

	// loadErr is set while the active path failed to load.
	loadErr error
}

// NewLibrary creates a Library with no active file. recorder may be nil.
func NewLibrary(store *Store, auth Authenticator, recorder PathRecorder, opts Options) *Library {
	return &Library{
		store:    store,
		auth:     auth,
		recorder: recorder,
		opts:     opts.withDefaults(),
		log:      logging.WithComponent("library"),
		catalog:  models.NewCatalog(nil),
		role:     models.RoleGuest,
	}
}

// Path returns the active data file, or "" when none is selected.
func (l *Library) Path() string {
	return l.path
}

// Catalog returns the active catalog.
func (l *Library) Catalog() *models.Catalog {
	return l.catalog
}

// Role returns the current role.
func (l *Library) Role() models.Role {
	return l.role
}

// Create starts an empty catalog at path with the given columns (the
// default columns when none are given) and writes it out.
func (l *Library) Create(path string, columns []string) error {
	if len(columns) == 0 {
		columns = l.opts.DefaultColumns
	}
	c := models.NewCatalog(columns)
	if err := l.store.Save(path, c); err != nil {
		return err
	}
	l.activate(path, c)
	l.log.Info("new catalog created", "path", path, "columns", len(columns))
	return nil
}

// Open loads path and makes it the active file. On failure the previous
// file and catalog stay active.
func (l *Library) Open(path string) error {
	c, err := l.store.Load(path)
	if err != nil {
		l.log.Warn("open failed", "path", path, "error", err)
		return err
	}
	l.activate(path, c)
	return nil
}

// Resume makes path active at startup. A load failure leaves an empty
// catalog for path and is returned for reporting; edits stay blocked until
// the file loads.
func (l *Library) Resume(path string) error {
	c, err := l.store.Load(path)
	l.path = path
	l.catalog = c
	l.loadErr = err
	return err
}

// Reload re-reads the active file, discarding unsaved state.
func (l *Library) Reload() error {
	if l.path == "" {
		return ErrNoActiveFile
	}
	return l.Open(l.path)
}

// Backup copies the active file to the backup directory.
func (l *Library) Backup() (string, error) {
	return l.store.Backup(l.path)
}

// Authenticate sets and returns the role for candidate.
func (l *Library) Authenticate(candidate string) models.Role {
	l.role = l.auth.Authenticate(candidate)
	l.log.Info("authentication", "role", l.role.String())
	return l.role
}

// Logout drops back to the guest role.
func (l *Library) Logout() {
	l.role = models.RoleGuest
}

// Search returns the records where any field contains term.
func (l *Library) Search(term string) []models.Record {
	return Filter(l.catalog, MatchAny(term))
}

// SearchColumn returns the records whose column contains term.
func (l *Library) SearchColumn(column, term string) ([]models.Record, error) {
	p, err := MatchColumn(l.catalog.Columns, column, term)
	if err != nil {
		return nil, err
	}
	return Filter(l.catalog, p), nil
}

// Stats returns aggregate statistics. Admin only.
func (l *Library) Stats() (models.Stats, error) {
	if !l.role.CanViewStats() {
		return models.Stats{}, ErrAdminOnly
	}
	return ComputeStats(l.catalog, l.opts.StatsColumn), nil
}

// BeginEdit opens an edit session on the full, unfiltered catalog. Admin only.
func (l *Library) BeginEdit() (*WorkingSet, error) {
	if !l.role.CanEdit() {
		return nil, ErrAdminOnly
	}
	if l.path == "" {
		return nil, ErrNoActiveFile
	}
	if l.loadErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotLoaded, l.loadErr)
	}
	return Begin(l.catalog, Filter(l.catalog, MatchAll()))
}

// Commit saves ws to the active file and, on success, makes its rows the
// active catalog.
func (l *Library) Commit(ws *WorkingSet) error {
	if !l.role.CanEdit() {
		return ErrAdminOnly
	}
	if l.path == "" {
		return ErrNoActiveFile
	}
	if l.loadErr != nil {
		return fmt.Errorf("%w: %v", ErrNotLoaded, l.loadErr)
	}
	c, err := ws.Commit(l.store, l.path)
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	l.catalog = c
	return nil
}

func (l *Library) activate(path string, c *models.Catalog) {
	l.path = path
	l.catalog = c
	l.loadErr = nil
	if l.recorder == nil {
		return
	}
	if err := l.recorder.RememberDataFile(path); err != nil {
		l.log.Warn("data file not remembered", "path", path, "error", err)
	}
}
