// Package output renders catalogs and search results as JSON.
package output

import (
	"encoding/json"

	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

// CatalogView is the JSON shape of a catalog or projection. Rows are keyed
// by column name; Columns keeps the column order.
type CatalogView struct {
	BookName string              `json:"book_name,omitempty"`
	Columns  []string            `json:"columns"`
	Rows     []map[string]string `json:"rows"`
}

// NewCatalogView builds a view of records under the given columns.
func NewCatalogView(bookName string, columns []string, records []models.Record) CatalogView {
	view := CatalogView{
		BookName: bookName,
		Columns:  columns,
		Rows:     make([]map[string]string, 0, len(records)),
	}
	for _, r := range records {
		row := make(map[string]string, len(columns))
		for i, name := range columns {
			row[name] = r.Field(i)
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

// ToJSON serializes a whole catalog.
func ToJSON(bookName string, c *models.Catalog, pretty bool) ([]byte, error) {
	return marshal(NewCatalogView(bookName, c.Columns, c.Records), pretty)
}

// RecordsToJSON serializes a projection of c.
func RecordsToJSON(bookName string, columns []string, records []models.Record, pretty bool) ([]byte, error) {
	return marshal(NewCatalogView(bookName, columns, records), pretty)
}

// StatsToJSON serializes statistics.
func StatsToJSON(stats models.Stats, pretty bool) ([]byte, error) {
	return marshal(stats, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
