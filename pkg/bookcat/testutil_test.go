package bookcat

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func testOptions(t *testing.T) Options {
	t.Helper()
	opts := DefaultOptions()
	opts.BackupDir = filepath.Join(t.TempDir(), "backups")
	opts.Now = func() time.Time { return fixedNow }
	return opts
}

// sampleCatalog returns the Dune/Emma catalog.
func sampleCatalog() *models.Catalog {
	c := models.NewCatalog([]string{"Title", "Author", "Genre"})
	c.Append("Dune", "Herbert", "SciFi")
	c.Append("Emma", "Austen", "Romance")
	return c
}

func titles(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Field(0)
	}
	return out
}
