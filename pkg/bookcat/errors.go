package bookcat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound indicates the catalog file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the file could not be read as a catalog spreadsheet.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// ErrNoActiveFile indicates an operation needs a data file but none is selected.
var ErrNoActiveFile = errors.New("no data file selected")

// ErrUnknownColumn indicates a column name that is not in the catalog.
var ErrUnknownColumn = errors.New("unknown column")

// ErrRowOutOfRange indicates a row index outside the working set.
var ErrRowOutOfRange = errors.New("row index out of range")

// ErrFilteredView indicates an edit session was requested on a filtered projection.
var ErrFilteredView = errors.New("editing requires the unfiltered catalog")

// ErrNoColumns indicates an edit was requested on a catalog without a header row.
var ErrNoColumns = errors.New("catalog has no columns")

// ErrNotLoaded indicates the active file failed to load, so writing it back
// would replace its contents with an empty catalog.
var ErrNotLoaded = errors.New("active file is not loaded")

// ErrAdminOnly indicates a guest attempted an admin-only operation.
var ErrAdminOnly = errors.New("librarian login required")

// LoadError represents a failure to read a catalog file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading data from %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(path string, err error) *LoadError {
	return &LoadError{Path: path, Err: err}
}

// SaveError represents a failure to write a catalog file.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("error saving %q: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// NewSaveError creates a new SaveError.
func NewSaveError(path string, err error) *SaveError {
	return &SaveError{Path: path, Err: err}
}

// BackupError represents a failure to copy a catalog file to the backup directory.
type BackupError struct {
	Path string
	Err  error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("error creating backup of %q: %v", e.Path, e.Err)
}

func (e *BackupError) Unwrap() error {
	return e.Err
}

// NewBackupError creates a new BackupError.
func NewBackupError(path string, err error) *BackupError {
	return &BackupError{Path: path, Err: err}
}

// ValidationError reports a new row that does not supply every column.
type ValidationError struct {
	// Want is the number of columns.
	Want int
	// Got is the number of values supplied.
	Got int
	// Missing lists column names without a value, when known.
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing values for columns: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("expected %d values, got %d", e.Want, e.Got)
}
