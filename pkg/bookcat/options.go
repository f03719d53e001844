// Package bookcat implements a spreadsheet-backed book catalog: loading and
// saving, search projections, staged edit sessions and the librarian role gate.
package bookcat

import "time"

const (
	// DefaultBackupDir is the backup directory, relative to the working directory.
	DefaultBackupDir = "backups"
	// DefaultStatsColumn is the column whose values are counted as categories.
	DefaultStatsColumn = "Genre"
)

// DefaultColumns is the column set given to a newly created catalog.
var DefaultColumns = []string{"Title", "Author", "Genre", "ISBN", "Publisher", "Publication Year"}

// Options configures a Store and Library.
type Options struct {
	// BackupDir receives backup copies. Defaults to DefaultBackupDir.
	BackupDir string
	// StatsColumn is counted per value in Stats. Defaults to DefaultStatsColumn.
	StatsColumn string
	// DefaultColumns is used by Create when no columns are given.
	DefaultColumns []string
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		BackupDir:      DefaultBackupDir,
		StatsColumn:    DefaultStatsColumn,
		DefaultColumns: DefaultColumns,
		Now:            time.Now,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.BackupDir == "" {
		o.BackupDir = d.BackupDir
	}
	if o.StatsColumn == "" {
		o.StatsColumn = d.StatsColumn
	}
	if len(o.DefaultColumns) == 0 {
		o.DefaultColumns = d.DefaultColumns
	}
	if o.Now == nil {
		o.Now = d.Now
	}
	return o
}
