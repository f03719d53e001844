package bookcat

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

type memRecorder struct {
	paths []string
}

func (m *memRecorder) RememberDataFile(path string) error {
	m.paths = append(m.paths, path)
	return nil
}

func newTestLibrary(t *testing.T) (*Library, *memRecorder, string) {
	t.Helper()
	opts := testOptions(t)
	store := NewStore(opts)
	path := filepath.Join(t.TempDir(), "books.xlsx")
	if err := store.Save(path, sampleCatalog()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	rec := &memRecorder{}
	return NewLibrary(store, NewSharedSecret(DefaultSecret), rec, opts), rec, path
}

func TestLibraryOpen(t *testing.T) {
	lib, rec, path := newTestLibrary(t)

	if err := lib.Open(path); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if lib.Path() != path || lib.Catalog().Len() != 2 {
		t.Errorf("Expected %s with 2 rows, got %s with %d", path, lib.Path(), lib.Catalog().Len())
	}
	if !reflect.DeepEqual(rec.paths, []string{path}) {
		t.Errorf("Expected path remembered, got %v", rec.paths)
	}

	// A failed open keeps the previous state and records nothing.
	err := lib.Open(filepath.Join(t.TempDir(), "nope.xlsx"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Expected *LoadError, got %v", err)
	}
	if lib.Path() != path || lib.Catalog().Len() != 2 {
		t.Errorf("Failed open changed state: %s, %d rows", lib.Path(), lib.Catalog().Len())
	}
	if len(rec.paths) != 1 {
		t.Errorf("Failed open must not be remembered, got %v", rec.paths)
	}
}

func TestLibraryResumeFailure(t *testing.T) {
	lib, _, _ := newTestLibrary(t)
	missing := filepath.Join(t.TempDir(), "gone.xlsx")

	if err := lib.Resume(missing); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
	if lib.Path() != missing || lib.Catalog().Len() != 0 {
		t.Errorf("Expected empty catalog for %s, got %d rows", lib.Path(), lib.Catalog().Len())
	}
}

func TestLibraryCreate(t *testing.T) {
	lib, rec, _ := newTestLibrary(t)
	path := filepath.Join(t.TempDir(), "fresh.csv")

	if err := lib.Create(path, nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !reflect.DeepEqual(lib.Catalog().Columns, DefaultColumns) {
		t.Errorf("Expected default columns, got %v", lib.Catalog().Columns)
	}
	if lib.Catalog().Len() != 0 {
		t.Errorf("Expected empty catalog, got %d rows", lib.Catalog().Len())
	}
	if rec.paths[len(rec.paths)-1] != path {
		t.Errorf("Expected %s remembered, got %v", path, rec.paths)
	}

	if err := lib.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if !reflect.DeepEqual(lib.Catalog().Columns, DefaultColumns) {
		t.Errorf("Header row not persisted, got %v", lib.Catalog().Columns)
	}
}

func TestLibraryRoleGate(t *testing.T) {
	lib, _, path := newTestLibrary(t)
	if err := lib.Open(path); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if lib.Authenticate("letmein") != models.RoleGuest {
		t.Errorf("Expected guest for wrong password")
	}
	if _, err := lib.Stats(); !errors.Is(err, ErrAdminOnly) {
		t.Errorf("Expected ErrAdminOnly for guest stats, got %v", err)
	}
	if _, err := lib.BeginEdit(); !errors.Is(err, ErrAdminOnly) {
		t.Errorf("Expected ErrAdminOnly for guest edit, got %v", err)
	}
	if got := titles(lib.Search("emma")); !reflect.DeepEqual(got, []string{"Emma"}) {
		t.Errorf("Guest search = %v, expected [Emma]", got)
	}

	if lib.Authenticate("password123") != models.RoleAdmin {
		t.Fatalf("Expected admin for password123")
	}
	stats, err := lib.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 2 || len(stats.Categories) != 2 {
		t.Errorf("Unexpected stats %+v", stats)
	}

	lib.Logout()
	if lib.Role() != models.RoleGuest {
		t.Errorf("Expected guest after logout")
	}
}

func TestLibraryEditCommit(t *testing.T) {
	lib, _, path := newTestLibrary(t)
	if err := lib.Open(path); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	lib.Authenticate(DefaultSecret)

	ws, err := lib.BeginEdit()
	if err != nil {
		t.Fatalf("BeginEdit failed: %v", err)
	}
	if err := ws.AddRow([]string{"Walden", "Thoreau", "Essay"}); err != nil {
		t.Fatalf("AddRow failed: %v", err)
	}

	// Uncommitted edits are invisible.
	if lib.Catalog().Len() != 2 {
		t.Errorf("Expected 2 rows before commit, got %d", lib.Catalog().Len())
	}

	if err := lib.Commit(ws); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if lib.Catalog().Len() != 3 {
		t.Errorf("Expected 3 rows after commit, got %d", lib.Catalog().Len())
	}

	if err := lib.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := titles(lib.Catalog().Records); !reflect.DeepEqual(got, []string{"Dune", "Emma", "Walden"}) {
		t.Errorf("Expected persisted rows, got %v", got)
	}
}

func TestLibraryCommitFailureKeepsCatalog(t *testing.T) {
	lib, _, path := newTestLibrary(t)
	if err := lib.Open(path); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	lib.Authenticate(DefaultSecret)
	ws, _ := lib.BeginEdit()
	ws.ToggleSelection(0)
	ws.DeleteSelected()

	lib.path = filepath.Join(t.TempDir(), "missing-dir", "books.xlsx")
	err := lib.Commit(ws)
	var se *SaveError
	if !errors.As(err, &se) {
		t.Fatalf("Expected *SaveError, got %v", err)
	}
	if lib.Catalog().Len() != 2 {
		t.Errorf("Failed commit replaced the catalog: %d rows", lib.Catalog().Len())
	}
}

func TestLibraryBackup(t *testing.T) {
	lib, _, path := newTestLibrary(t)

	if _, err := lib.Backup(); !errors.Is(err, ErrNoActiveFile) {
		t.Errorf("Expected ErrNoActiveFile, got %v", err)
	}
	if err := lib.Open(path); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	backup, err := lib.Backup()
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if filepath.Base(backup) != "backup_books.xlsx_20240309140507" {
		t.Errorf("Unexpected backup name %s", backup)
	}
}

func TestLibraryCommitBlankRowRoundTrip(t *testing.T) {
	for _, ext := range []string{".xlsx", ".csv"} {
		t.Run(ext, func(t *testing.T) {
			opts := testOptions(t)
			store := NewStore(opts)
			path := filepath.Join(t.TempDir(), "books"+ext)
			if err := store.Save(path, sampleCatalog()); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			lib := NewLibrary(store, NewSharedSecret(DefaultSecret), nil, opts)
			if err := lib.Open(path); err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			lib.Authenticate(DefaultSecret)

			ws, err := lib.BeginEdit()
			if err != nil {
				t.Fatalf("BeginEdit failed: %v", err)
			}
			if err := ws.AddRow([]string{"", "", ""}); err != nil {
				t.Fatalf("AddRow failed: %v", err)
			}
			if err := lib.Commit(ws); err != nil {
				t.Fatalf("Commit failed: %v", err)
			}

			loaded, err := store.Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !reflect.DeepEqual(loaded.Rows(), lib.Catalog().Rows()) {
				t.Errorf("File and memory differ: loaded %v, in memory %v", loaded.Rows(), lib.Catalog().Rows())
			}
			if loaded.Len() != 3 {
				t.Errorf("Expected 3 rows, got %d", loaded.Len())
			}
		})
	}
}

func TestLibraryResumeCorruptFileRefusesWrites(t *testing.T) {
	lib, _, path := newTestLibrary(t)
	garbage := []byte("not a workbook")
	if err := os.WriteFile(path, garbage, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := lib.Resume(path); err == nil {
		t.Fatalf("Expected Resume to fail on a corrupt file")
	}
	lib.Authenticate(DefaultSecret)

	if _, err := lib.BeginEdit(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded from BeginEdit, got %v", err)
	}

	c := sampleCatalog()
	ws, err := Begin(c, Filter(c, MatchAll()))
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := lib.Commit(ws); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded from Commit, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(data, garbage) {
		t.Errorf("Corrupt file was overwritten")
	}

	// A successful reload clears the guard.
	if err := lib.store.Save(path, sampleCatalog()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := lib.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if _, err := lib.BeginEdit(); err != nil {
		t.Errorf("BeginEdit after reload failed: %v", err)
	}
}
